package pager

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/domain"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/log"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

type pageRequest struct {
	view  ViewKind
	query string
	page  int
}

// fakeClient serves canned pages and can block mid-fetch to simulate a slow
// network
type fakeClient struct {
	mu       sync.Mutex
	requests []pageRequest
	pages    map[int][]domain.MediaItem // by page number; missing = empty
	err      error
	block    chan struct{} // when set, fetches wait until closed
}

func (f *fakeClient) fetch(req pageRequest) ([]domain.MediaItem, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pages[req.page], nil
}

func (f *fakeClient) Search(ctx context.Context, query, kind string, page int) ([]domain.MediaItem, error) {
	return f.fetch(pageRequest{view: ViewSearch, query: query, page: page})
}

func (f *fakeClient) Trending(ctx context.Context, kind string, limit, page int) ([]domain.MediaItem, error) {
	return f.fetch(pageRequest{view: ViewTrending, page: page})
}

func (f *fakeClient) seen() []pageRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]pageRequest{}, f.requests...)
}

// fakeFeed records render calls
type fakeFeed struct {
	mu      sync.Mutex
	renders []int // item count per render
	appends []bool
}

func (f *fakeFeed) Render(ctx context.Context, items []domain.MediaItem, trendingBadge, appendMode bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renders = append(f.renders, len(items))
	f.appends = append(f.appends, appendMode)
}

type pagerEvents struct {
	mu      sync.Mutex
	loading []bool
	loaded  []int // page numbers
	ended   int
}

func (e *pagerEvents) OnPageLoading(loading bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading = append(e.loading, loading)
}

func (e *pagerEvents) OnPageLoaded(view ViewKind, page, count int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loaded = append(e.loaded, page)
}

func (e *pagerEvents) OnEndOfResults() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ended++
}

func (e *pagerEvents) lastLoading() (bool, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.loading) == 0 {
		return false, false
	}
	return e.loading[len(e.loading)-1], true
}

func page(n int) []domain.MediaItem {
	items := make([]domain.MediaItem, n)
	for i := range items {
		items[i] = domain.MediaItem{Title: "item", Kind: domain.KindMovie}
	}
	return items
}

func newTestController(client *fakeClient) (*Controller, *fakeFeed, *pagerEvents) {
	feed := &fakeFeed{}
	events := &pagerEvents{}
	c := New(client, feed, events, 12, log.NullLogger())
	return c, feed, events
}

func TestSearchPagesAdvance(t *testing.T) {
	client := &fakeClient{pages: map[int][]domain.MediaItem{1: page(12), 2: page(12), 3: page(5)}}
	c, feed, events := newTestController(client)

	c.StartSearch(context.Background(), "inception", "all")
	c.LoadMore(context.Background())
	c.LoadMore(context.Background())

	reqs := client.seen()
	if len(reqs) != 3 || reqs[0].page != 1 || reqs[1].page != 2 || reqs[2].page != 3 {
		t.Fatalf("requests = %+v, want pages 1, 2, 3", reqs)
	}
	if reqs[0].query != "inception" {
		t.Errorf("query = %q", reqs[0].query)
	}

	if len(feed.appends) != 3 || feed.appends[0] || !feed.appends[1] || !feed.appends[2] {
		t.Errorf("append flags = %v, want [false true true]", feed.appends)
	}
	if len(events.loaded) != 3 {
		t.Errorf("loaded events = %v", events.loaded)
	}
	if last, ok := events.lastLoading(); !ok || last {
		t.Error("loading indicator must end cleared")
	}
}

func TestLoadMoreIsNoOpWhileInFlight(t *testing.T) {
	client := &fakeClient{
		pages: map[int][]domain.MediaItem{1: page(12)},
		block: make(chan struct{}),
	}
	c, _, _ := newTestController(client)

	done := make(chan struct{})
	go func() {
		c.StartTrending(context.Background(), "all")
		close(done)
	}()

	// Wait until the fetch is in flight, then hammer LoadMore
	waitFor(t, func() bool { return c.IsLoading() })
	c.LoadMore(context.Background())
	c.LoadMore(context.Background())

	close(client.block)
	<-done

	if got := len(client.seen()); got != 1 {
		t.Errorf("requests = %d, want 1 (concurrent LoadMore ignored)", got)
	}
}

func TestEmptyPageExhaustsView(t *testing.T) {
	client := &fakeClient{pages: map[int][]domain.MediaItem{1: page(12)}}
	c, _, events := newTestController(client)

	c.StartSearch(context.Background(), "rare", "all")
	c.LoadMore(context.Background()) // page 2 is empty

	if !c.IsExhausted() {
		t.Fatal("empty page must exhaust the view")
	}
	if events.ended != 1 {
		t.Errorf("end-of-results events = %d, want 1", events.ended)
	}

	// Exhaustion is terminal for this view
	c.LoadMore(context.Background())
	c.LoadMore(context.Background())
	if got := len(client.seen()); got != 2 {
		t.Errorf("requests = %d, want 2 (no fetch after exhaustion)", got)
	}

	// A new view lifts it
	c.StartSearch(context.Background(), "common", "all")
	if c.IsExhausted() {
		t.Error("starting a new view must clear exhaustion")
	}
}

func TestFetchErrorIsSuppressed(t *testing.T) {
	client := &fakeClient{err: errors.New("boom")}
	c, feed, events := newTestController(client)

	c.StartTrending(context.Background(), "all")

	if c.IsExhausted() {
		t.Error("a failed fetch must not exhaust the view")
	}
	if c.IsLoading() {
		t.Error("loading flag must clear after a failed fetch")
	}
	if last, ok := events.lastLoading(); !ok || last {
		t.Error("loading indicator must end cleared after a failure")
	}
	if len(feed.renders) != 0 {
		t.Errorf("failed fetch must not render, got %v", feed.renders)
	}

	// Scrolling again retries the same page
	client.err = nil
	client.mu.Lock()
	client.pages = map[int][]domain.MediaItem{1: page(3)}
	client.mu.Unlock()
	c.LoadMore(context.Background())

	reqs := client.seen()
	if len(reqs) != 2 || reqs[1].page != 1 {
		t.Errorf("requests = %+v, want a retry of page 1", reqs)
	}
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	client := &fakeClient{
		pages: map[int][]domain.MediaItem{1: page(12)},
		block: make(chan struct{}),
	}
	c, feed, _ := newTestController(client)

	slow := make(chan struct{})
	go func() {
		c.StartSearch(context.Background(), "old", "all")
		close(slow)
	}()
	waitFor(t, func() bool { return c.IsLoading() })

	// Supersede the in-flight search before its response lands
	c.Reset()
	close(client.block)
	<-slow

	if len(feed.renders) != 0 {
		t.Errorf("stale response must not render, got %v", feed.renders)
	}
	if c.View() != ViewNone {
		t.Errorf("view = %v after reset, want none", c.View())
	}
	if c.IsLoading() {
		t.Error("stale completion must not touch the fresh session's loading flag")
	}
}

func TestResetClearsSession(t *testing.T) {
	client := &fakeClient{pages: map[int][]domain.MediaItem{1: page(2)}}
	c, _, _ := newTestController(client)

	c.StartSearch(context.Background(), "x", "movie")
	c.Reset()

	if c.View() != ViewNone || c.Query() != "" || c.Page() != 0 {
		t.Errorf("session not cleared: view=%v query=%q page=%d", c.View(), c.Query(), c.Page())
	}

	// LoadMore without a view is a no-op
	c.LoadMore(context.Background())
	if got := len(client.seen()); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
}
