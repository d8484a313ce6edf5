package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Check where navigating to a screen would land you",
		Long: `Runs the navigation guard for a screen path (for example /book or
/track) and reports whether the current session may open it, or where it
would be redirected instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			decision := app.guard.Decide(args[0])
			if decision.Allowed {
				fmt.Printf("%s: allowed\n", args[0])
				return nil
			}
			fmt.Printf("%s: redirected to %s\n", args[0], decision.Redirect)
			return nil
		},
	}
}
