package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/outpost-tools/fac-resolve/internal/applog"
	"github.com/outpost-tools/fac-resolve/internal/dep"
	"github.com/outpost-tools/fac-resolve/internal/installable"
	"github.com/outpost-tools/fac-resolve/internal/localmods"
	"github.com/outpost-tools/fac-resolve/internal/plan"
	"github.com/outpost-tools/fac-resolve/internal/resolve"
	"github.com/outpost-tools/fac-resolve/internal/semver"
)

var InstallCmd = &cobra.Command{
	Use:   "install <mod>[=<version requirement>]...",
	Short: "Install mods, resolving their dependencies",
	Long: `Install one or more mods, pulling in whatever dependencies they need.

Every mod already installed is kept in the set of requirements, so a
plain "fac-resolve install newmod" does not drop any installed mod from
the solution. Installed mods are required at any version, so one that
has a newer compatible release is upgraded (its old version removed)
in the same run.

Examples:
  fac-resolve install boblibrary
  fac-resolve install "boblibrary>=2.0.0"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	e, err := env()
	if err != nil {
		return err
	}

	installed, err := e.ModsDir.Installed()
	if err != nil {
		return err
	}

	reqs := resolve.Requirements{}
	for _, m := range installed {
		reqs[m.Name] = semver.Any
	}
	for _, arg := range args {
		name, req, err := parseRequirementArg(arg)
		if err != nil {
			return err
		}
		reqs[name] = req
	}

	gameVersion, err := localmods.GameVersion(e.Config.FactorioRoot)
	if err != nil {
		return err
	}

	ctx := context.Background()
	solution, err := resolve.Resolve(ctx, e.ResolvePortal(), gameVersion, reqs)
	if err != nil {
		return err
	}

	p := plan.Compute(solution, installed)
	printPlan(p)
	if p.Empty() {
		fmt.Println("Nothing to do.")
		return nil
	}

	ok, err := confirm("Proceed?")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Aborted.")
		return nil
	}

	return applyPlan(ctx, e, p)
}

// parseRequirementArg parses "name", "name=1.2.3", "name>=1.2.3" etc. into
// a mod name and version requirement.
func parseRequirementArg(s string) (dep.ModName, semver.Req, error) {
	for _, op := range []string{"<=", ">=", "=", "<", ">"} {
		if idx := strings.Index(s, op); idx >= 0 {
			name := dep.ModName(strings.TrimSpace(s[:idx]))
			req, err := semver.ParseReq(s[idx:])
			if err != nil {
				return "", semver.Req{}, fmt.Errorf("parsing requirement %q: %w", s, err)
			}
			return name, req, nil
		}
	}
	return dep.ModName(strings.TrimSpace(s)), semver.Any, nil
}

func printPlan(p plan.Plan) {
	if len(p.Upgrade) > 0 {
		fmt.Println()
		fmt.Println("The following mods will be upgraded:")
		for _, u := range p.Upgrade {
			fmt.Printf("  %s %s -> %s\n", u.From.Name, u.From.Version, u.To.Version)
		}
	}
	if len(p.Remove) > 0 {
		fmt.Println()
		fmt.Println("The following mods will be removed:")
		for _, m := range p.Remove {
			fmt.Printf("  %s %s\n", m.Name, m.Version)
		}
	}
	if len(p.Install) > 0 {
		fmt.Println()
		fmt.Println("The following new mods will be installed:")
		for _, r := range p.Install {
			fmt.Printf("  %s %s\n", r.Name, r.Version)
		}
	}
}

func applyPlan(ctx context.Context, e *Environment, p plan.Plan) error {
	for _, m := range p.Remove {
		applog.Infof("removing %s %s", m.Name, m.Version)
		if err := e.ModsDir.Remove(m); err != nil {
			return err
		}
	}

	toDownload := append([]installable.Release{}, p.Install...)
	for _, u := range p.Upgrade {
		toDownload = append(toDownload, u.To)
	}
	if len(toDownload) == 0 {
		return nil
	}

	if e.Config.Credentials == nil {
		return fmt.Errorf("no saved credentials; run fac-resolve login first")
	}

	for _, r := range toDownload {
		applog.Infof("downloading %s %s", r.Name, r.Version)
		body, err := e.Portal.Download(ctx, r, *e.Config.Credentials)
		if err != nil {
			return err
		}
		err = e.ModsDir.Install(r, body)
		body.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
