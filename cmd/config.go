package cmd

import (
	"fmt"

	"github.com/dsrosen/zendesk-ticket-board/internal/app"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"cfg"},
	Short:   "Set Zendesk credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logFile, err := app.LoadConfig(debug)
		if err != nil {
			return err
		}
		defer logFile.Close()

		if err := cfg.RunCredsForm(); err != nil {
			return err
		}

		a := app.New(cfg, nil)
		if err := a.TestConnection(cmd.Context()); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Zendesk connection test successful")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
