package pager

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/domain"
)

// ViewKind identifies the active feed view
type ViewKind int

const (
	ViewNone ViewKind = iota
	ViewTrending
	ViewSearch
)

// String returns a label for logging
func (v ViewKind) String() string {
	switch v {
	case ViewTrending:
		return "trending"
	case ViewSearch:
		return "search"
	default:
		return "none"
	}
}

// discoveryClient fetches result pages (consumer-defined interface)
type discoveryClient interface {
	Search(ctx context.Context, query, kind string, page int) ([]domain.MediaItem, error)
	Trending(ctx context.Context, kind string, limit, page int) ([]domain.MediaItem, error)
}

// renderer places a page of items into the result container
type renderer interface {
	Render(ctx context.Context, items []domain.MediaItem, trendingBadge, appendMode bool)
}

// Observer receives pagination lifecycle events
type Observer interface {
	// OnPageLoading toggles the loading indicator
	OnPageLoading(loading bool)

	// OnPageLoaded reports a successfully appended page
	OnPageLoaded(view ViewKind, page, count int)

	// OnEndOfResults signals that an empty page exhausted the view
	OnEndOfResults()
}

// state is the mutable pagination session. A single instance lives behind
// the controller's mutex; there are no package-level globals.
type state struct {
	view         ViewKind
	query        string // search view only
	kindFilter   string // search type filter: "all", "movie", "music"
	trendingType string // trending view only
	page         int
	loading      bool
	exhausted    bool
	generation   uint64 // bumped by every view switch; stale fetches are dropped
}

// Controller owns the pagination state machine: one in-flight page fetch at
// a time per view, terminal exhaustion on the first empty page, and a
// generation counter that discards responses from superseded views.
type Controller struct {
	client   discoveryClient
	feed     renderer
	observer Observer
	logger   *slog.Logger
	pageSize int

	mu sync.Mutex
	st state
}

// New creates a pagination controller
func New(client discoveryClient, feed renderer, observer Observer, pageSize int, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		client:   client,
		feed:     feed,
		observer: observer,
		logger:   logger,
		pageSize: pageSize,
	}
}

// StartTrending resets the session to page 1 of a trending view and loads it
func (c *Controller) StartTrending(ctx context.Context, trendingType string) {
	c.startView(ctx, state{
		view:         ViewTrending,
		trendingType: trendingType,
	})
}

// StartSearch resets the session to page 1 of a search view and loads it
func (c *Controller) StartSearch(ctx context.Context, query, kindFilter string) {
	c.startView(ctx, state{
		view:       ViewSearch,
		query:      query,
		kindFilter: kindFilter,
	})
}

// Reset clears the session without starting a fetch (e.g. the clear action)
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	gen := c.st.generation + 1
	c.st = state{generation: gen}
}

// startView installs a fresh session and triggers the first page fetch
func (c *Controller) startView(ctx context.Context, next state) {
	c.mu.Lock()
	next.page = 1
	next.generation = c.st.generation + 1
	c.st = next
	c.mu.Unlock()

	c.logger.Debug("view started", "view", next.view.String(), "query", next.query, "type", next.trendingType)

	c.LoadMore(ctx)
}

// LoadMore fetches the next page for the active view. It is a no-op while a
// fetch is in flight or after the view is exhausted; both guards are
// checked atomically at entry. The loading flag is always cleared on the
// way out - success, empty page, or failure - so the indicator can never
// stick.
func (c *Controller) LoadMore(ctx context.Context) {
	c.mu.Lock()
	if c.st.view == ViewNone || c.st.loading || c.st.exhausted {
		c.mu.Unlock()
		return
	}
	c.st.loading = true
	snap := c.st
	c.mu.Unlock()

	c.observer.OnPageLoading(true)

	var (
		items []domain.MediaItem
		err   error
	)
	switch snap.view {
	case ViewTrending:
		items, err = c.client.Trending(ctx, snap.trendingType, c.pageSize, snap.page)
	case ViewSearch:
		items, err = c.client.Search(ctx, snap.query, snap.kindFilter, snap.page)
	}

	c.mu.Lock()
	if c.st.generation != snap.generation {
		// Superseded by a newer view; its own fetch manages the indicator
		c.mu.Unlock()
		return
	}

	empty := err == nil && len(items) == 0
	switch {
	case err != nil:
		// Suppressed: no state corruption, no retry; scrolling again re-fetches
		c.logger.Warn("page fetch failed", "view", snap.view.String(), "page", snap.page, "error", err)
	case empty:
		c.st.exhausted = true
	default:
		c.st.page++
	}
	c.st.loading = false
	c.mu.Unlock()

	if err == nil {
		c.feed.Render(ctx, items, snap.view == ViewTrending, snap.page > 1)
	}

	c.observer.OnPageLoading(false)

	switch {
	case err != nil:
	case empty:
		c.observer.OnEndOfResults()
	default:
		c.observer.OnPageLoaded(snap.view, snap.page, len(items))
	}
}

// MarkExhausted terminates pagination for the current view. The feed calls
// this when it renders an empty page.
func (c *Controller) MarkExhausted() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.view != ViewNone {
		c.st.exhausted = true
	}
}

// View returns the active view kind
func (c *Controller) View() ViewKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.view
}

// Query returns the active search query
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.query
}

// KindFilter returns the active search type filter
func (c *Controller) KindFilter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.kindFilter
}

// Page returns the next page number to fetch
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.page
}

// IsLoading reports whether a page fetch is in flight
func (c *Controller) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.loading
}

// IsExhausted reports whether the view saw an empty page
func (c *Controller) IsExhausted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.exhausted
}
