package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var flagTopics string

var rootCmd = &cobra.Command{
	Use:   "aiwire",
	Short: "AI news aggregator backed by the Hacker News search API",
	Long:  "aiwire searches Hacker News for a fixed set of AI topics, keeps the relevant stories and serves them newest first.",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagTopics, "topics", "", "path to a topics YAML file (overrides TOPICS_FILE)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(topicsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "aiwire %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
