package cmd

import (
	"aiwire/internal/config"
	"aiwire/internal/render"

	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the configured topics and their search queries",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Load().TopicsFile
		if flagTopics != "" {
			path = flagTopics
		}
		catalog, err := config.LoadCatalog(path)
		if err != nil {
			return err
		}
		render.NewPrinter(cmd.OutOrStdout(), 0).Topics(catalog.Topics)
		return nil
	},
}
