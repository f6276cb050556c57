// Package config loads and persists the CLI's settings: the portal base
// URL, the Factorio installation and mods directory paths, saved login
// credentials and any proxy to use. Settings are read from a YAML file,
// falling back to JSON when the extension says so, the same dual-format
// convention the rest of the corpus's config loaders use.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/outpost-tools/fac-resolve/internal/portal"
)

// Config is the CLI's persisted settings.
type Config struct {
	PortalBaseURL string             `json:"portal_base_url,omitempty" yaml:"portal_base_url,omitempty"`
	FactorioRoot  string             `json:"factorio_root,omitempty" yaml:"factorio_root,omitempty"`
	ModsDir       string             `json:"mods_dir,omitempty" yaml:"mods_dir,omitempty"`
	ProxyURL      string             `json:"proxy_url,omitempty" yaml:"proxy_url,omitempty"`
	Credentials   *portal.Credentials `json:"credentials,omitempty" yaml:"credentials,omitempty"`
}

// DefaultPortalBaseURL is used when a config does not specify one.
const DefaultPortalBaseURL = "https://mods.factorio.com"

// Default returns a Config with the portal base URL set and everything
// else left for the caller to discover (factorio's default install paths
// are too platform-specific to guess safely).
func Default() *Config {
	return &Config{PortalBaseURL: DefaultPortalBaseURL}
}

// DefaultPath returns the conventional config file location under the
// user's config directory, mirroring how the original tool used appdirs
// to find a per-user config home.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(dir, "fac-resolve", "config.yaml"), nil
}

// Load reads a Config from path. A missing file is not an error; it
// yields Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}

	cfg := Default()
	if err := unmarshal(path, data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := marshal(path, cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %q: %w", path, err)
	}
	return nil
}

func unmarshal(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

func marshal(path string, cfg *Config) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.MarshalIndent(cfg, "", "  ")
	}
	return yaml.Marshal(cfg)
}
