package aggregator

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"aiwire/internal/models"
	"aiwire/internal/relevance"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultConcurrency = 4
	DefaultMaxAttempts = 2
)

// Searcher runs one query variant against the search API
type Searcher interface {
	Search(ctx context.Context, query string, maxAttempts int) ([]models.Hit, error)
}

type Aggregator struct {
	searcher    Searcher
	filter      *relevance.Filter
	failures    *FailureCounter
	maxAttempts int
	concurrency int
}

// Option customizes an Aggregator
type Option func(*Aggregator)

// WithMaxAttempts sets the per-variant attempt ceiling
func WithMaxAttempts(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.maxAttempts = n
		}
	}
}

// WithConcurrency sets how many topics are fetched at once
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

func New(searcher Searcher, filter *relevance.Filter, failures *FailureCounter, opts ...Option) *Aggregator {
	if failures == nil {
		failures = NewFailureCounter()
	}
	a := &Aggregator{
		searcher:    searcher,
		filter:      filter,
		failures:    failures,
		maxAttempts: DefaultMaxAttempts,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Failures exposes the per-topic failure counter
func (a *Aggregator) Failures() *FailureCounter {
	return a.failures
}

// variantResult is the outcome of one query variant
type variantResult struct {
	articles []models.Article
	err      error
}

// FetchTopic queries every variant of topic concurrently and returns the
// merged, deduplicated articles, newest first. It never fails: a variant
// that errors contributes nothing.
func (a *Aggregator) FetchTopic(ctx context.Context, topic models.Topic) []models.Article {
	results := a.fetchVariantsParallel(ctx, topic)

	var (
		lists   = make([][]models.Article, 0, len(results))
		total   int
		lastErr error
	)
	for _, result := range results {
		if result.err != nil {
			lastErr = result.err
			continue
		}
		lists = append(lists, result.articles)
		total += len(result.articles)
	}

	if total == 0 && lastErr != nil {
		failures := a.failures.Record(topic.Name)
		if shouldReport(failures) {
			log.Printf("Skipping topic after retries (%s): %v", topic.Name, lastErr)
		}
	} else {
		a.failures.Reset(topic.Name)
	}

	return merge(lists)
}

func (a *Aggregator) fetchVariantsParallel(ctx context.Context, topic models.Topic) []variantResult {
	var wg sync.WaitGroup
	results := make([]variantResult, len(topic.QueryVariants))

	for i, query := range topic.QueryVariants {
		wg.Add(1)
		go func(i int, query string) {
			defer wg.Done()
			results[i] = a.fetchVariant(ctx, topic.Name, query)
		}(i, query)
	}

	wg.Wait()
	return results
}

func (a *Aggregator) fetchVariant(ctx context.Context, topicName, query string) variantResult {
	hits, err := a.searcher.Search(ctx, query, a.maxAttempts)
	if err != nil {
		return variantResult{err: err}
	}
	return variantResult{articles: a.filter.Extract(hits, topicName)}
}

// FetchAll runs FetchTopic over topics with at most a.concurrency topics in
// flight. Workers claim the next unprocessed index from a shared cursor.
// The merged result is deduplicated across topics and sorted newest first.
func (a *Aggregator) FetchAll(ctx context.Context, topics []models.Topic) []models.Article {
	results := make([][]models.Article, len(topics))

	workers := min(a.concurrency, len(topics))
	var next atomic.Int64

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				index := int(next.Add(1) - 1)
				if index >= len(topics) {
					return nil
				}
				results[index] = a.FetchTopic(ctx, topics[index])
			}
		})
	}
	// workers never return an error
	_ = g.Wait()

	return merge(results)
}
