package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outpost-tools/fac-resolve/internal/dep"
)

var ShowCmd = &cobra.Command{
	Use:   "show <mod>",
	Short: "Show details about a mod from the portal",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	e, err := env()
	if err != nil {
		return err
	}

	mod, err := e.Portal.Get(context.Background(), dep.ModName(args[0]))
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", mod.Name)
	for _, r := range mod.Releases {
		fmt.Printf("  %s (factorio %s)\n", r.Version, r.GameVersionReq)
		for _, d := range r.Dependencies {
			fmt.Printf("    %s\n", d)
		}
	}
	return nil
}
