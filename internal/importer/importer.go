// Package importer converts RSS/Atom feeds into the site's news JSON
// format. It is an authoring aid: editors pull a press feed in, then curate
// the result by hand (categories, featured flags, translations).
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/Synverta/news/internal/news"
)

type Options struct {
	// Category forces every imported item into one category; empty means
	// guess per item from title and summary keywords.
	Category   string
	SummaryLen int
	Limit      int
}

// FetchRSS parses a remote RSS/Atom feed into news items.
func FetchRSS(ctx context.Context, url string, opts Options) ([]news.Item, error) {
	parser := gofeed.NewParser()
	parsed, err := parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	return convert(parsed, opts), nil
}

// ParseRSS parses feed XML already in memory. Used by tests and piped input.
func ParseRSS(data string, opts Options) ([]news.Item, error) {
	parsed, err := gofeed.NewParser().ParseString(data)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}
	return convert(parsed, opts), nil
}

func convert(parsed *gofeed.Feed, opts Options) []news.Item {
	summaryLen := opts.SummaryLen
	if summaryLen <= 0 {
		summaryLen = 300
	}

	items := make([]news.Item, 0, len(parsed.Items))
	for _, fi := range parsed.Items {
		if opts.Limit > 0 && len(items) == opts.Limit {
			break
		}

		date := ""
		if fi.PublishedParsed != nil {
			date = fi.PublishedParsed.Format("2006-01-02")
		} else if fi.UpdatedParsed != nil {
			date = fi.UpdatedParsed.Format("2006-01-02")
		}

		desc := fi.Description
		if desc == "" {
			desc = fi.Content
		}
		summary := truncate(stripHTML(desc), summaryLen)

		category := opts.Category
		if category == "" {
			category = Categorize(fi.Title, summary)
		}

		items = append(items, news.Item{
			Title:    fi.Title,
			URL:      fi.Link,
			Date:     date,
			Category: category,
			Summary:  summary,
			Tags:     fi.Categories,
		})
	}
	return items
}

// Merge folds imported items into an existing dataset, deduplicating by URL
// (existing entries win, since they may have been hand-curated) and ordering
// newest first.
func Merge(existing, imported []news.Item) []news.Item {
	seen := make(map[string]bool, len(existing))
	out := make([]news.Item, 0, len(existing)+len(imported))
	for _, it := range existing {
		seen[it.URL] = true
		out = append(out, it)
	}
	for _, it := range imported {
		if seen[it.URL] {
			continue
		}
		seen[it.URL] = true
		out = append(out, it)
	}
	return news.SortByDate(out)
}

// LoadFile reads an existing feed JSON file; a missing file is an empty
// dataset.
func LoadFile(path string) ([]news.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var items []news.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return items, nil
}

// WriteFile writes the dataset as indented JSON, diff-friendly for review.
func WriteFile(path string, items []news.Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

var categoryKeywords = map[string][]string{
	"product": {
		"release", "launch", "feature", "version", "update", "beta",
		"available", "introducing", "announce", "changelog", "pricing",
	},
	"company": {
		"hiring", "team", "funding", "partnership", "office", "award",
		"anniversary", "culture", "welcome", "joins", "milestone",
	},
	"industry": {
		"market", "trend", "report", "study", "regulation", "standard",
		"industry", "sector", "forecast", "survey", "analysis",
	},
}

// Categorize guesses a category from title and summary keywords. Title hits
// are weighted double. Unmatched items land in industry, the broadest bucket.
func Categorize(title, summary string) string {
	titleLower := strings.ToLower(title)
	summaryLower := strings.ToLower(summary)

	best := "industry"
	bestScore := 0
	keys := make([]string, 0, len(categoryKeywords))
	for k := range categoryKeywords {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, cat := range keys {
		score := 0
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(titleLower, kw) {
				score += 2
			}
			if strings.Contains(summaryLower, kw) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = cat, score
		}
	}
	return best
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
