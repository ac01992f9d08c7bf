package cmd

import (
	"io"
	"log"

	"aiwire/internal/board"
	"aiwire/internal/config"
	"aiwire/internal/render"

	"github.com/spf13/cobra"
)

var (
	flagSearch string
	flagTopic  string
	flagWidth  int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run one refresh and print the articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		// keep stdout for the article list
		log.SetOutput(cmd.ErrOrStderr())

		pl, err := buildPipeline(config.Load(), "")
		if err != nil {
			return err
		}

		pl.poller.Refresh(true)
		printBoard(cmd.OutOrStdout(), pl.board, flagSearch, flagTopic, flagWidth)
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVarP(&flagSearch, "search", "s", "", "only show articles whose title, description or source contain this text")
	fetchCmd.Flags().StringVar(&flagTopic, "topic", "", "only show articles fetched for this topic")
	fetchCmd.Flags().IntVar(&flagWidth, "width", 0, "wrap descriptions at this many columns")
}

func printBoard(out io.Writer, b *board.Board, search, topic string, width int) {
	printer := render.NewPrinter(out, width)

	articles := board.FilterTopic(b.Search(search), topic)
	if status := b.Status(); status.Message != "" {
		printer.Status(status)
		if len(articles) == 0 {
			return
		}
	}
	printer.Articles(articles, b.Summary(len(articles)), b.LastUpdated())
}
