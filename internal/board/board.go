// Package board holds the presentation state of the article list: the last
// rendered snapshot, the status line, and the search over fetched articles.
package board

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"aiwire/internal/cache"
	"aiwire/internal/models"
)

const (
	articlesKey     = "board:articles"
	searchKeyPrefix = "search:"

	minPlaceholders = 6
	maxPlaceholders = 30
)

type Board struct {
	cache       *cache.Manager
	snapshotTTL time.Duration
	searchTTL   time.Duration
	topicCount  int

	mu           sync.RWMutex
	status       models.Status
	lastUpdated  time.Time
	placeholders int
}

// New creates a Board. A non-positive snapshotTTL keeps the snapshot until the next render.
func New(cacheManager *cache.Manager, topicCount int, snapshotTTL, searchTTL time.Duration) *Board {
	if snapshotTTL <= 0 {
		snapshotTTL = cache.NoExpiration
	}
	return &Board{
		cache:       cacheManager,
		snapshotTTL: snapshotTTL,
		searchTTL:   searchTTL,
		topicCount:  topicCount,
		status:      models.Status{Severity: models.SeverityInfo},
	}
}

// ShowLoading switches the board to placeholder cards
func (b *Board) ShowLoading(desired int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.placeholders = min(max(desired, minPlaceholders), maxPlaceholders)
}

func (b *Board) SetStatus(message string, severity models.Severity) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = models.Status{Message: message, Severity: severity}
}

// Render replaces the snapshot and drops memoized searches
func (b *Board) Render(articles []models.Article) {
	b.cache.Set(articlesKey, slices.Clone(articles), b.snapshotTTL)
	b.cache.DeletePrefix(searchKeyPrefix)

	b.mu.Lock()
	b.placeholders = 0
	b.mu.Unlock()
}

func (b *Board) SetLastUpdated(t time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastUpdated = t
}

// Articles returns the current snapshot, empty once it has expired
func (b *Board) Articles() []models.Article {
	cached, found := b.cache.Get(articlesKey)
	if !found {
		return []models.Article{}
	}
	articles, ok := cached.([]models.Article)
	if !ok {
		return []models.Article{}
	}
	return slices.Clone(articles)
}

// Search filters the snapshot by a case-insensitive substring of
// title, description and source. An empty query returns everything.
func (b *Board) Search(query string) []models.Article {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return b.Articles()
	}

	key := searchKeyPrefix + query
	if cached, found := b.cache.Get(key); found {
		if articles, ok := cached.([]models.Article); ok {
			return slices.Clone(articles)
		}
	}

	var results []models.Article
	for _, article := range b.Articles() {
		text := strings.ToLower(article.Title + " " + article.Description + " " + article.Source)
		if strings.Contains(text, query) {
			results = append(results, article)
		}
	}
	if results == nil {
		results = []models.Article{}
	}

	b.cache.Set(key, results, b.searchTTL)
	return slices.Clone(results)
}

// FilterTopic keeps articles that were fetched for topic
func FilterTopic(articles []models.Article, topic string) []models.Article {
	if topic == "" {
		return articles
	}
	filtered := make([]models.Article, 0, len(articles))
	for _, article := range articles {
		if strings.EqualFold(article.Topic(), topic) {
			filtered = append(filtered, article)
		}
	}
	return filtered
}

// Summary describes visible against total articles
func (b *Board) Summary(visible int) models.Summary {
	total := len(b.Articles())
	summary := models.Summary{Visible: visible, Total: total, Topics: b.topicCount}

	switch {
	case total == 0:
		summary.Text = "No articles yet"
	case visible == total:
		summary.Text = fmt.Sprintf("%d articles across %d topics", visible, b.topicCount)
	default:
		summary.Text = fmt.Sprintf("%d / %d articles match your search", visible, total)
	}
	return summary
}

func (b *Board) Status() models.Status {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status
}

func (b *Board) LastUpdated() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastUpdated
}

// Placeholders is the number of loading cards to show, 0 when not loading
func (b *Board) Placeholders() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.placeholders
}
