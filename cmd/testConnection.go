package cmd

import (
	"fmt"

	"github.com/dsrosen/zendesk-ticket-board/internal/app"
	"github.com/spf13/cobra"
)

// testConnectionCmd represents the testConnection command
var testConnectionCmd = &cobra.Command{
	Use: "testconnection",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Startup(app.StartOpts{Debug: debug})
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.TestConnection(cmd.Context()); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Zendesk connection test successful")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(testConnectionCmd)
}
