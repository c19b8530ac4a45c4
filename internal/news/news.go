package news

import (
	"sort"
	"time"

	"github.com/araddon/dateparse"
)

// Item is one article record in the feed. Items are read-only once decoded;
// every derived sequence below is a fresh slice over the same backing items.
type Item struct {
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Date     string   `json:"date"`
	Category string   `json:"category"`
	Summary  string   `json:"summary"`
	Tags     []string `json:"tags"`
	Featured bool     `json:"featured"`
}

// PublishedAt parses the item's date. Feeds are hand-edited, so the format
// drifts between "2024-03-01", RFC3339, and friends; dateparse covers them
// all. Unparseable dates return the zero time and sort last.
func (it Item) PublishedAt() time.Time {
	t, err := dateparse.ParseAny(it.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SortByDate returns a new slice ordered by parsed date, most recent first.
// Ties keep their input order. Each date is parsed once.
func SortByDate(items []Item) []Item {
	type keyed struct {
		item Item
		at   time.Time
	}
	ks := make([]keyed, len(items))
	for i, it := range items {
		ks[i] = keyed{item: it, at: it.PublishedAt()}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		return ks[i].at.After(ks[j].at)
	})
	out := make([]Item, len(ks))
	for i, k := range ks {
		out[i] = k.item
	}
	return out
}

// Latest returns the first n items of the input, or fewer if the input is
// shorter. The caller is expected to sort first.
func Latest(items []Item, n int) []Item {
	if n > len(items) {
		n = len(items)
	}
	out := make([]Item, n)
	copy(out, items[:n])
	return out
}

// FeaturedItems returns up to n items carrying the featured flag,
// order-preserving.
func FeaturedItems(items []Item, n int) []Item {
	var out []Item
	for _, it := range items {
		if !it.Featured {
			continue
		}
		out = append(out, it)
		if len(out) == n {
			break
		}
	}
	return out
}

// ByCategory returns up to n items of the given category, order-preserving.
func ByCategory(items []Item, category string, n int) []Item {
	var out []Item
	for _, it := range items {
		if it.Category != category {
			continue
		}
		out = append(out, it)
		if len(out) == n {
			break
		}
	}
	return out
}
