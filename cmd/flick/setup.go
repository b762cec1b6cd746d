package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/flick/internal/config"
)

// runSetupFlow asks for the API token on first run and saves it
func runSetupFlow(cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Welcome to flick!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "flick needs an API read access token for", cfg.API.URL)

	var token string
	for {
		// Prompt for token (hidden input)
		fmt.Fprint(out, "API token: ")
		tokenBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(out) // Add newline after hidden input
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}

		token = strings.TrimSpace(string(tokenBytes))
		if token != "" {
			break
		}
		fmt.Fprintln(out, "Token cannot be empty. Please try again.")
	}

	cfg.API.Token = token
	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "✓ Configuration saved!")
	fmt.Fprintln(out, "Run flick again to start browsing.")
	return nil
}
