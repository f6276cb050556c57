package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/outpost-tools/fac-resolve/internal/config"
)

var LoginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in to the mod portal and save credentials for downloads",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	e, err := env()
	if err != nil {
		return err
	}

	fmt.Fprint(os.Stdout, "Password: ")
	passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stdout)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	creds, err := e.Portal.Login(context.Background(), args[0], string(passwordBytes))
	if err != nil {
		return err
	}

	e.Config.Credentials = &creds
	path := ConfigPath
	if path == "" {
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}
	if err := config.Save(path, e.Config); err != nil {
		return err
	}

	fmt.Println("Logged in.")
	return nil
}
