package cmd

import (
	"github.com/dsrosen/zendesk-ticket-board/internal/app"
	"github.com/spf13/cobra"
)

var (
	search string
	quiet  bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Print the collaborator's tickets once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Startup(app.StartOpts{Debug: debug})
		if err != nil {
			return err
		}
		defer a.Close()

		return a.List(cmd.Context(), cmd.OutOrStdout(), collaborator, search, quiet)
	},
}

func init() {
	listCmd.Flags().StringVarP(&search, "search", "s", "", "only show tickets matching this text")
	listCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "don't show a spinner while fetching")
	rootCmd.AddCommand(listCmd)
}
