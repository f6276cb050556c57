package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outpost-tools/fac-resolve/internal/portal"
)

var searchOrder string

var SearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the mod portal",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	SearchCmd.Flags().StringVar(&searchOrder, "order", "top", "Result order: alpha, top or updated")
}

func runSearch(cmd *cobra.Command, args []string) error {
	e, err := env()
	if err != nil {
		return err
	}

	results, pages, err := e.Portal.Search(context.Background(), args[0], portal.SearchOrder(searchOrder), 1)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No mods found.")
		return nil
	}

	for _, r := range results {
		fmt.Printf("%s: %s\n", r.Name, r.Title)
	}
	if pages > 1 {
		fmt.Printf("(page 1 of %d)\n", pages)
	}
	return nil
}
