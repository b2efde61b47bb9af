package cmd

import (
	"context"
	"os"

	"github.com/dsrosen/zendesk-ticket-board/internal/app"
	"github.com/spf13/cobra"
)

var (
	debug        bool
	collaborator string
)

var rootCmd = &cobra.Command{
	Use:          "ticket-board",
	Short:        "Searchable list of pending Zendesk tickets per collaborator",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Startup(app.StartOpts{Debug: debug, Interactive: true})
		if err != nil {
			return err
		}
		defer a.Close()

		return a.RunTUI(cmd.Context(), collaborator)
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&app.CfgFile, "config", "", "config file (default is $HOME/ticket-board/board_config.json)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&collaborator, "collaborator", "c", "", "Zendesk view id to open (default is default_collaborator from the config)")
}
