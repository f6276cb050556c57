package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outpost-tools/fac-resolve/internal/dep"
	"github.com/outpost-tools/fac-resolve/internal/localmods"
	"github.com/outpost-tools/fac-resolve/internal/plan"
	"github.com/outpost-tools/fac-resolve/internal/resolve"
	"github.com/outpost-tools/fac-resolve/internal/semver"
)

var RemoveCmd = &cobra.Command{
	Use:   "remove <mod>...",
	Short: "Remove mods; every other installed mod, dependencies included, stays installed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	e, err := env()
	if err != nil {
		return err
	}

	installed, err := e.ModsDir.Installed()
	if err != nil {
		return err
	}

	toDrop := make(map[dep.ModName]bool, len(args))
	for _, a := range args {
		toDrop[dep.ModName(a)] = true
	}

	reqs := resolve.Requirements{}
	for _, m := range installed {
		if !toDrop[m.Name] {
			reqs[m.Name] = semver.Any
		}
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
