package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outpost-tools/fac-resolve/internal/localmods"
	"github.com/outpost-tools/fac-resolve/internal/plan"
	"github.com/outpost-tools/fac-resolve/internal/resolve"
	"github.com/outpost-tools/fac-resolve/internal/semver"
)

var UpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Re-resolve installed mods against the latest portal releases",
	Long: `Recompute the solution for everything already installed, picking up
any newer releases the portal has published since they were installed.`,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	e, err := env()
	if err != nil {
		return err
	}

	installed, err := e.ModsDir.Installed()
	if err != nil {
		return err
	}
	if len(installed) == 0 {
		fmt.Println("No mods installed.")
		return nil
	}

	reqs := resolve.Requirements{}
	for _, m := range installed {
		reqs[m.Name] = semver.Any
	}

	gameVersion, err := localmods.GameVersion(e.Config.FactorioRoot)
	if err != nil {
		return err
	}

	ctx := context.Background()
	solution, err := resolve.ResolveConcurrent(ctx, e.ResolvePortal(), gameVersion, reqs)
	if err != nil {
		return err
	}

	p := plan.Compute(solution, installed)
	printPlan(p)
	if p.Empty() {
		fmt.Println("Already up to date.")
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
