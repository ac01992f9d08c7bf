package aggregator

import (
	"slices"

	"aiwire/internal/models"
)

// Dedup drops every article whose key was already seen. The first occurrence wins.
func Dedup(articles []models.Article) []models.Article {
	seen := make(map[string]struct{}, len(articles))
	deduped := make([]models.Article, 0, len(articles))

	for _, article := range articles {
		key := article.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, article)
	}

	return deduped
}

// SortByRecency sorts newest first in place. Articles without a parseable
// timestamp sort as the zero time, after everything else.
func SortByRecency(articles []models.Article) {
	slices.SortStableFunc(articles, func(a, b models.Article) int {
		return b.Timestamp().Compare(a.Timestamp())
	})
}

// merge flattens result lists in order, dedups and sorts
func merge(lists [][]models.Article) []models.Article {
	var all []models.Article
	for _, list := range lists {
		all = append(all, list...)
	}

	deduped := Dedup(all)
	SortByRecency(deduped)
	return deduped
}
