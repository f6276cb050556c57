// Package commands implements the fac-resolve subcommands.
package commands

import (
	"bufio"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/outpost-tools/fac-resolve/internal/config"
	"github.com/outpost-tools/fac-resolve/internal/localmods"
	"github.com/outpost-tools/fac-resolve/internal/portal"
	"github.com/outpost-tools/fac-resolve/internal/resolve"
)

// Global flags shared by every subcommand, registered as persistent flags
// in main.go and consumed through env().
var (
	ProxyURL   string
	AssumeYes  bool
	AssumeNo   bool
	ConfigPath string
)

// Environment bundles the dependencies every subcommand needs: the
// loaded config, a portal client and a handle onto the local mods
// directory.
type Environment struct {
	Config  *config.Config
	Portal  *portal.Client
	ModsDir *localmods.Directory
}

// ResolvePortal wraps e.Portal in a resolve.CachingPortal so a single
// install/remove/update run shares one cache. Only update, through
// resolve.ResolveConcurrent, prefetches its root requirements
// concurrently; install and remove fetch serially.
func (e *Environment) ResolvePortal() *resolve.CachingPortal {
	return resolve.NewCachingPortal(e.Portal)
}

// env loads the config file, applies --proxy, and opens the mods
// directory, failing fast if any of those cannot be resolved.
func env() (*Environment, error) {
	path := ConfigPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if ProxyURL != "" {
		cfg.ProxyURL = ProxyURL
	}

	client := portal.New(cfg.PortalBaseURL)
	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("parsing proxy URL %q: %w", cfg.ProxyURL, err)
		}
		client.HTTPClient.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	}

	if cfg.ModsDir == "" {
		return nil, fmt.Errorf("mods directory not configured; set mods_dir in %s", path)
	}
	modsDir, err := localmods.Open(cfg.ModsDir)
	if err != nil {
		return nil, err
	}

	return &Environment{Config: cfg, Portal: client, ModsDir: modsDir}, nil
}

// confirm prompts the user for a yes/no decision, honoring --yes/--no as
// an override that skips the prompt entirely.
func confirm(prompt string) (bool, error) {
	switch {
	case AssumeYes:
		return true, nil
	case AssumeNo:
		return false, nil
	}

	fmt.Fprintf(os.Stdout, "%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes", nil
}
