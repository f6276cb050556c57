package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/outpost-tools/fac-resolve/cmd/fac-resolve/commands"
	"github.com/outpost-tools/fac-resolve/internal/applog"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "fac-resolve",
	Short: "A dependency-aware mod manager for Factorio",
	Long: `fac-resolve installs, removes and updates Factorio mods, resolving
their dependencies against the mod portal before touching disk.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			applog.SetDefault(applog.New(os.Stderr, applog.LevelDebug))
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&commands.ProxyURL, "proxy", "", "HTTP proxy URL")
	rootCmd.PersistentFlags().BoolVarP(&commands.AssumeYes, "yes", "y", false, "Answer yes to all prompts")
	rootCmd.PersistentFlags().BoolVarP(&commands.AssumeNo, "no", "n", false, "Answer no to all prompts")
	rootCmd.PersistentFlags().StringVar(&commands.ConfigPath, "config", "", "Path to the config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.MarkFlagsMutuallyExclusive("yes", "no")

	rootCmd.AddCommand(commands.InstallCmd)
	rootCmd.AddCommand(commands.RemoveCmd)
	rootCmd.AddCommand(commands.ListCmd)
	rootCmd.AddCommand(commands.SearchCmd)
	rootCmd.AddCommand(commands.ShowCmd)
	rootCmd.AddCommand(commands.UpdateCmd)
	rootCmd.AddCommand(commands.LoginCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
