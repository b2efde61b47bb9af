package cmd

import (
	"github.com/dsrosen/zendesk-ticket-board/internal/app"
	"github.com/spf13/cobra"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ticket board as a web page",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Startup(app.StartOpts{Debug: debug})
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Serve(cmd.Context(), listenAddr, collaborator)
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (default is listen_addr from the config)")
	rootCmd.AddCommand(serveCmd)
}
