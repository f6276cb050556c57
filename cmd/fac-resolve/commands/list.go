package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed mods",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
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

	sort.Slice(installed, func(i, j int) bool { return installed[i].Name < installed[j].Name })
	for _, m := range installed {
		fmt.Printf("%s %s\n", m.Name, m.Version)
	}
	return nil
}
