package models

import (
	"strings"
	"time"
)

// Topic is a named cluster of search queries
type Topic struct {
	Name          string   `json:"name" yaml:"name"`
	QueryVariants []string `json:"query_variants" yaml:"query_variants"`
}

// Hit is one raw record returned by the search API
type Hit struct {
	Title       string `json:"title"`
	StoryTitle  string `json:"story_title"`
	URL         string `json:"url"`
	StoryURL    string `json:"story_url"`
	ObjectID    string `json:"objectID"`
	StoryText   string `json:"story_text"`
	CommentText string `json:"comment_text"`
	CreatedAt   string `json:"created_at"`
}

// SearchResponse is the body returned for a single query
type SearchResponse struct {
	Hits []Hit `json:"hits"`
}

// Article represents a single relevant story
type Article struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
}

// SourceSeparator joins the topic name and the host in Article.Source
const SourceSeparator = " • "

// Key returns the dedup key: link + "::" + lowercase(title)
func (a Article) Key() string {
	return a.Link + "::" + strings.ToLower(a.Title)
}

// Topic returns the topic part of Source.
func (a Article) Topic() string {
	if idx := strings.Index(a.Source, SourceSeparator); idx >= 0 {
		return a.Source[:idx]
	}
	return a.Source
}

var discussionMarkers = []string{"Show HN:", "Tell HN:", "Launch HN:", "Ask HN:"}

// DisplayTitle strips Hacker News discussion markers for presentation
func (a Article) DisplayTitle() string {
	for _, marker := range discussionMarkers {
		if idx := strings.Index(a.Title, marker); idx >= 0 {
			if rest := strings.TrimSpace(a.Title[idx+len(marker):]); rest != "" {
				return rest
			}
		}
	}
	if a.Title == "" {
		return "Untitled article"
	}
	return a.Title
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp parses PublishedAt. Missing or unparseable values are zero.
func (a Article) Timestamp() time.Time {
	if a.PublishedAt == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, a.PublishedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Severity tags a status message
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityLoading Severity = "loading"
	SeverityError   Severity = "error"
	SeverityEmpty   Severity = "empty"
)

// Status is the last message published by the refresh cycle
type Status struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Summary is the count line shown next to the article list
type Summary struct {
	Visible int    `json:"visible"`
	Total   int    `json:"total"`
	Topics  int    `json:"topics"`
	Text    string `json:"text"`
}
