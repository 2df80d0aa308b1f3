package feed

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// FilterMatch is a filter hit over the loaded feed
type FilterMatch struct {
	Index          int   // Card index in the container
	MatchedIndexes []int // Rune positions that matched (for highlighting)
	Score          int
}

// cardSource implements fuzzy.Source over card titles for zero-allocation
// matching
type cardSource []Card

func (s cardSource) String(i int) string { return strings.ToLower(s[i].Item.Title) }
func (s cardSource) Len() int            { return len(s) }

// Filter fuzzy-matches the loaded cards against a query without touching
// the network. An empty query matches nothing.
func (f *Feed) Filter(query string) []FilterMatch {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return nil
	}

	f.mu.Lock()
	source := cardSource(append([]Card{}, f.cards...))
	f.mu.Unlock()

	matches := fuzzy.FindFrom(query, source)

	results := make([]FilterMatch, len(matches))
	for i, m := range matches {
		results[i] = FilterMatch{
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}
