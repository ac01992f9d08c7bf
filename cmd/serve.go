package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"aiwire/internal/api"
	"aiwire/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the refresh scheduler and the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	pl, err := buildPipeline(cfg, cfg.RefreshCron)
	if err != nil {
		return err
	}

	pl.poller.Start()

	server := api.NewServer(pl.board, pl.poller, pl.aggregator.Failures(), cfg)

	log.Printf("Starting AI Wire server on port %d", cfg.Port)
	log.Printf("Search API: %s (tags=%s)", cfg.SearchAPIURL, cfg.SearchTags)
	log.Printf("Topic concurrency: %d, attempts per query: %d", cfg.TopicConcurrency, cfg.FetchMaxAttempts)
	if cfg.RefreshCron != "" {
		log.Printf("Refresh schedule: %s", cfg.RefreshCron)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = server.StartWithContext(ctx)
	log.Println("Received shutdown signal, stopping services...")
	pl.poller.Stop()

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
