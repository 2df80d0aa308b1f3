package suggest

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/api"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/domain"
)

// Suggestion is a single autocomplete entry with highlight metadata
type Suggestion struct {
	Item domain.MediaItem

	// Rune range of the case-insensitive query match within the title,
	// [-1,-1) when the query is not a substring of the title
	MatchStart int
	MatchEnd   int
}

// Result is a rendered suggestion response: entries grouped by kind plus a
// flat list in display order for keyboard navigation.
type Result struct {
	Query  string
	Movies []Suggestion
	Music  []Suggestion
	Flat   []Suggestion
}

// Observer receives suggestion lifecycle events
type Observer interface {
	// OnSuggestLoading signals that a request is in flight (skeleton state)
	OnSuggestLoading(query string)

	// OnSuggestions delivers a rendered suggestion list
	OnSuggestions(Result)

	// OnSuggestionsCleared signals that the list should be dismissed.
	// revertToTrending is true when the input emptied out entirely.
	OnSuggestionsCleared(revertToTrending bool)
}

// autocompleter provides suggestion lookups (consumer-defined interface)
type autocompleter interface {
	Autocomplete(ctx context.Context, query string) (*api.Suggestions, error)
}

// Engine debounces raw input and turns it into suggestion lists. Responses
// are cached per exact query string for the session.
type Engine struct {
	client   autocompleter
	observer Observer
	logger   *slog.Logger

	window    time.Duration
	minLength int

	mu      sync.Mutex
	pending *time.Timer
	cache   map[string]*api.Suggestions
	result  *Result
	cursor  int // index into result.Flat, -1 = nothing focused
}

// NewEngine creates a suggestion engine
func NewEngine(client autocompleter, observer Observer, window time.Duration, minLength int, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		client:    client,
		observer:  observer,
		logger:    logger,
		window:    window,
		minLength: minLength,
		cache:     make(map[string]*api.Suggestions),
		cursor:    -1,
	}
}

// OnInput handles a keystroke. Rapid input within the debounce window
// coalesces into a single request for the final text.
func (e *Engine) OnInput(text string) {
	trimmed := strings.TrimSpace(text)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}

	if len([]rune(trimmed)) < e.minLength {
		e.clearLocked(trimmed == "")
		return
	}

	e.pending = time.AfterFunc(e.window, func() {
		e.run(trimmed)
	})
}

// run serves a query from cache or the autocomplete endpoint
func (e *Engine) run(query string) {
	e.mu.Lock()
	if cached, ok := e.cache[query]; ok {
		e.publishLocked(query, cached)
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	e.observer.OnSuggestLoading(query)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := e.client.Autocomplete(ctx, query)
	if err != nil {
		e.logger.Warn("autocomplete request failed", "query", query, "error", err)
		e.observer.OnSuggestionsCleared(false)
		return
	}

	e.mu.Lock()
	e.cache[query] = resp
	e.publishLocked(query, resp)
	e.mu.Unlock()
}

// publishLocked builds and emits a Result from a raw response
func (e *Engine) publishLocked(query string, resp *api.Suggestions) {
	result := buildResult(query, resp)
	e.result = &result
	e.cursor = -1
	e.observer.OnSuggestions(result)
}

// clearLocked drops the current list and notifies the observer
func (e *Engine) clearLocked(revert bool) {
	e.result = nil
	e.cursor = -1
	e.observer.OnSuggestionsCleared(revert)
}

// Dismiss hides the suggestion list (Escape)
func (e *Engine) Dismiss() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
	e.clearLocked(false)
}

// MoveDown advances the focus, wrapping past the end
func (e *Engine) MoveDown() {
	e.move(1)
}

// MoveUp retreats the focus, wrapping past the start
func (e *Engine) MoveUp() {
	e.move(-1)
}

func (e *Engine) move(delta int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.result == nil || len(e.result.Flat) == 0 {
		return
	}
	n := len(e.result.Flat)
	if e.cursor < 0 {
		// Nothing focused yet: down enters at the top, up at the bottom
		if delta > 0 {
			e.cursor = 0
		} else {
			e.cursor = n - 1
		}
		return
	}
	e.cursor = ((e.cursor+delta)%n + n) % n
}

// Cursor returns the focused flat index, -1 when nothing is focused
func (e *Engine) Cursor() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// Focused returns the focused suggestion, if any
func (e *Engine) Focused() (Suggestion, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.result == nil || e.cursor < 0 || e.cursor >= len(e.result.Flat) {
		return Suggestion{}, false
	}
	return e.result.Flat[e.cursor], true
}

// buildResult groups suggestions by kind, ranks each group by relevance to
// the query, and computes substring highlight ranges.
func buildResult(query string, resp *api.Suggestions) Result {
	result := Result{
		Query:  query,
		Movies: annotate(query, rankByRelevance(query, resp.Movies)),
		Music:  annotate(query, rankByRelevance(query, resp.Music)),
	}
	result.Flat = append(append([]Suggestion{}, result.Movies...), result.Music...)
	return result
}

// rankByRelevance orders items by fuzzy distance to the query. Items the
// matcher rejects keep their server order after the ranked ones.
func rankByRelevance(query string, items []domain.MediaItem) []domain.MediaItem {
	if len(items) < 2 {
		return items
	}

	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Sort(ranks)

	ordered := make([]domain.MediaItem, 0, len(items))
	seen := make(map[int]bool, len(ranks))
	for _, r := range ranks {
		ordered = append(ordered, items[r.OriginalIndex])
		seen[r.OriginalIndex] = true
	}
	for i, item := range items {
		if !seen[i] {
			ordered = append(ordered, item)
		}
	}
	return ordered
}

// annotate computes the case-insensitive matched-substring range per title
func annotate(query string, items []domain.MediaItem) []Suggestion {
	lowerQuery := strings.ToLower(query)
	suggestions := make([]Suggestion, len(items))
	for i, item := range items {
		start, end := -1, -1
		lowerTitle := strings.ToLower(item.Title)
		if idx := strings.Index(lowerTitle, lowerQuery); idx >= 0 {
			// Byte offsets to rune offsets for highlighting
			start = len([]rune(lowerTitle[:idx]))
			end = start + len([]rune(lowerQuery))
		}
		suggestions[i] = Suggestion{Item: item, MatchStart: start, MatchEnd: end}
	}
	return suggestions
}
