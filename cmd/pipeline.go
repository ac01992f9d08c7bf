package cmd

import (
	"fmt"
	"log"

	"aiwire/internal/aggregator"
	"aiwire/internal/board"
	"aiwire/internal/cache"
	"aiwire/internal/config"
	"aiwire/internal/fetcher"
	"aiwire/internal/poller"
	"aiwire/internal/relevance"
)

// pipeline is the fetch, filter, merge and present chain shared by serve and fetch
type pipeline struct {
	catalog    *config.Catalog
	aggregator *aggregator.Aggregator
	board      *board.Board
	poller     *poller.Poller
}

func buildPipeline(cfg *config.Config, cronSpec string) (*pipeline, error) {
	topicsPath := cfg.TopicsFile
	if flagTopics != "" {
		topicsPath = flagTopics
	}
	catalog, err := config.LoadCatalog(topicsPath)
	if err != nil {
		return nil, fmt.Errorf("loading topics: %w", err)
	}
	log.Printf("Loaded %d topics and %d keywords", len(catalog.Topics), len(catalog.Keywords))

	client := fetcher.New(cfg.SearchAPIURL, cfg.RequestTimeout, fetcher.WithTags(cfg.SearchTags))
	agg := aggregator.New(
		client,
		relevance.New(catalog.Keywords),
		aggregator.NewFailureCounter(),
		aggregator.WithMaxAttempts(cfg.FetchMaxAttempts),
		aggregator.WithConcurrency(cfg.TopicConcurrency),
	)

	b := board.New(cache.NewManager(cfg.SnapshotTTL), len(catalog.Topics), cfg.SnapshotTTL, cfg.SearchCacheTTL)

	p, err := poller.New(agg, b, catalog.Topics, cronSpec)
	if err != nil {
		return nil, err
	}

	return &pipeline{
		catalog:    catalog,
		aggregator: agg,
		board:      b,
		poller:     p,
	}, nil
}
