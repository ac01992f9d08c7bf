// Package relevance turns raw search hits into articles and drops the ones
// that do not look like AI news.
package relevance

import (
	"html"
	"net/url"
	"strings"

	"aiwire/internal/models"

	"github.com/microcosm-cc/bluemonday"
)

const (
	DescriptionLimit = 260
	// minWordBreak is the earliest position a truncation may back off to a space
	minWordBreak = 40
	ellipsis     = "…"
	fallbackHost = "news.ycombinator.com"
	permalinkFmt = "https://news.ycombinator.com/item?id="
)

// signalWords mark announcement-style stories even without a keyword
var signalWords = []string{"announce", "introducing", "available", "preview"}

// Filter classifies hits by keyword match
type Filter struct {
	keywords []string
	policy   *bluemonday.Policy
}

// New creates a Filter. Keywords are kept as written and compared against
// lowercased text, so only lowercase keywords can match.
func New(keywords []string) *Filter {
	kept := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k != "" {
			kept = append(kept, k)
		}
	}

	policy := bluemonday.StrictPolicy()
	policy.AddSpaceWhenStrippingTag(true)

	return &Filter{keywords: kept, policy: policy}
}

// Extract converts hits into articles for topicName, keeping only relevant ones
func (f *Filter) Extract(hits []models.Hit, topicName string) []models.Article {
	articles := make([]models.Article, 0, len(hits))

	for _, hit := range hits {
		title := NormalizeWhitespace(firstNonEmpty(hit.Title, hit.StoryTitle))
		if title == "" {
			continue
		}

		link := NormalizeWhitespace(firstNonEmpty(hit.URL, hit.StoryURL, permalinkFmt+hit.ObjectID))
		rawDescription := firstNonEmpty(hit.StoryText, hit.CommentText, title)
		description := Truncate(NormalizeWhitespace(f.StripHTML(rawDescription)), DescriptionLimit)

		if !f.IsRelevant(title + " " + description) {
			continue
		}

		articles = append(articles, models.Article{
			Title:       title,
			Link:        link,
			Description: description,
			Source:      topicName + models.SourceSeparator + HostName(link),
			PublishedAt: hit.CreatedAt,
		})
	}

	return articles
}

// IsRelevant reports whether text contains a keyword or a signal word
func (f *Filter) IsRelevant(text string) bool {
	content := strings.ToLower(text)

	for _, keyword := range f.keywords {
		if strings.Contains(content, keyword) {
			return true
		}
	}

	for _, word := range signalWords {
		if strings.Contains(content, word) {
			return true
		}
	}

	return false
}

// StripHTML removes tags, script and style bodies, and decodes entities
func (f *Filter) StripHTML(s string) string {
	if s == "" {
		return ""
	}
	return NormalizeWhitespace(html.UnescapeString(f.policy.Sanitize(s)))
}

// NormalizeWhitespace collapses whitespace runs to single spaces and trims
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate cuts s to max characters. When the cut lands past minWordBreak it
// backs off to the last space. An ellipsis is appended whenever s was cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	truncated := string(runes[:max])
	if idx := strings.LastIndex(truncated, " "); idx >= 0 && len([]rune(truncated[:idx])) > minWordBreak {
		truncated = truncated[:idx]
	}

	return strings.TrimSpace(truncated) + ellipsis
}

// HostName returns the host of rawURL without a leading "www.".
func HostName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return fallbackHost
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
