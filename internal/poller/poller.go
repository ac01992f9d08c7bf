package poller

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"aiwire/internal/models"

	"github.com/robfig/cron/v3"
)

const (
	MessageLoading    = "Loading latest AI news…"
	MessageRefreshing = "Refreshing AI news…"
	MessageEmpty      = "No relevant news found. Try again in a bit."
	MessageError      = "Unable to load news right now. Please try refreshing later."
)

// Collector fetches and merges articles for all topics
type Collector interface {
	FetchAll(ctx context.Context, topics []models.Topic) []models.Article
}

// Presenter receives the outcome of every refresh cycle
type Presenter interface {
	ShowLoading(placeholders int)
	SetStatus(message string, severity models.Severity)
	Render(articles []models.Article)
	SetLastUpdated(t time.Time)
}

// Poller runs at most one full refresh at a time. Calls made while a refresh
// is in flight are dropped, not queued.
type Poller struct {
	collector Collector
	presenter Presenter
	topics    []models.Topic
	cronSpec  string
	now       func() time.Time

	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.RWMutex
	isPolling   bool
	refreshing  bool
	current     []models.Article
	lastUpdated time.Time
}

// New creates a Poller. An empty cronSpec disables periodic refreshes.
func New(collector Collector, presenter Presenter, topics []models.Topic, cronSpec string) (*Poller, error) {
	if cronSpec != "" {
		if _, err := cron.ParseStandard(cronSpec); err != nil {
			return nil, fmt.Errorf("invalid refresh schedule %q: %w", cronSpec, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		collector: collector,
		presenter: presenter,
		topics:    topics,
		cronSpec:  cronSpec,
		now:       time.Now,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Start shows the loading state, runs the first refresh in the background
// and schedules periodic quiet refreshes.
func (p *Poller) Start() {
	p.mu.Lock()
	if p.isPolling {
		p.mu.Unlock()
		return
	}
	p.isPolling = true
	if p.ctx.Err() != nil {
		p.ctx, p.cancel = context.WithCancel(context.Background())
	}

	if p.cronSpec != "" {
		log.Printf("Starting news poller with schedule: %s", p.cronSpec)
		p.cron = cron.New()
		// schedule was validated in New
		_, _ = p.cron.AddFunc(p.cronSpec, func() {
			if !p.Refresh(false) {
				log.Println("Scheduled refresh skipped: refresh already in progress")
			}
		})
		p.cron.Start()
	} else {
		log.Println("Starting news poller without periodic refresh")
	}
	p.mu.Unlock()

	p.presenter.ShowLoading(p.placeholderCount())
	p.presenter.SetStatus(MessageLoading, models.SeverityLoading)
	p.RefreshAsync(false)
}

// Stop cancels in-flight fetches and waits for background work to finish
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.isPolling {
		p.mu.Unlock()
		return
	}
	p.isPolling = false
	p.cancel()
	c := p.cron
	p.cron = nil
	p.mu.Unlock()

	log.Println("Stopping news poller...")
	if c != nil {
		<-c.Stop().Done()
	}
	p.wg.Wait()
	log.Println("News poller stopped")
}

// Refresh runs one refresh cycle and reports whether it ran. It returns
// false immediately when another refresh is in progress or the poller was
// stopped.
func (p *Poller) Refresh(showFullLoadingState bool) bool {
	if !p.begin(false) {
		return false
	}
	p.runCycle(showFullLoadingState)
	return true
}

// RefreshAsync claims the refresh slot and runs the cycle in the background.
// It reports false when a refresh is already in progress or the poller was
// stopped.
func (p *Poller) RefreshAsync(showFullLoadingState bool) bool {
	if !p.begin(true) {
		return false
	}
	go func() {
		defer p.wg.Done()
		p.runCycle(showFullLoadingState)
	}()
	return true
}

// begin claims the refresh slot. Background runs are added to wg while mu is
// held, the same lock Stop cancels under.
func (p *Poller) begin(background bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.refreshing || (!p.isPolling && p.ctx.Err() != nil) {
		return false
	}
	p.refreshing = true
	if background {
		p.wg.Add(1)
	}
	return true
}

func (p *Poller) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refreshing = false
}

func (p *Poller) runCycle(showFullLoadingState bool) {
	defer p.finish()

	if showFullLoadingState {
		p.presenter.ShowLoading(p.placeholderCount())
		p.presenter.SetStatus(MessageLoading, models.SeverityLoading)
	} else {
		p.presenter.SetStatus(MessageRefreshing, models.SeverityLoading)
	}

	start := time.Now()
	articles, err := p.collect()
	if err != nil {
		log.Printf("Failed to refresh feeds: %v", err)
		p.presenter.SetStatus(MessageError, models.SeverityError)
		return
	}

	updated := p.now()
	p.mu.Lock()
	p.current = articles
	p.lastUpdated = updated
	p.mu.Unlock()

	p.presenter.SetLastUpdated(updated)
	p.presenter.Render(articles)
	if len(articles) == 0 {
		p.presenter.SetStatus(MessageEmpty, models.SeverityEmpty)
	} else {
		p.presenter.SetStatus("", models.SeverityInfo)
	}

	log.Printf("Refresh completed: %d articles across %d topics in %v", len(articles), len(p.topics), time.Since(start).Round(time.Millisecond))
}

// collect converts a panic or a cancelled context into an error
func (p *Poller) collect() (articles []models.Article, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("collector panicked: %v", r)
		}
	}()

	p.mu.RLock()
	ctx := p.ctx
	p.mu.RUnlock()

	articles = p.collector.FetchAll(ctx, p.topics)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return articles, nil
}

func (p *Poller) placeholderCount() int {
	return len(p.topics) * 2
}

func (p *Poller) IsPolling() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isPolling
}

func (p *Poller) IsRefreshing() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.refreshing
}

// Current returns a copy of the articles from the last successful refresh
func (p *Poller) Current() []models.Article {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.current)
}

func (p *Poller) LastUpdated() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastUpdated
}

func (p *Poller) Topics() []models.Topic {
	return p.topics
}
