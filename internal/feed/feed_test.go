package feed

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/domain"
)

type stubResolver struct{}

func (stubResolver) ResolveImage(ctx context.Context, item domain.MediaItem) string {
	if item.ImageURL != "" {
		return item.ImageURL
	}
	return "placeholder"
}

type stubRegistry struct {
	mu  sync.Mutex
	ids []string
}

func (r *stubRegistry) Register(id, title, artist string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
}

type stubSink struct {
	mu    sync.Mutex
	calls int
}

func (s *stubSink) MarkExhausted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
}

func (s *stubSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func sampleItems() []domain.MediaItem {
	return []domain.MediaItem{
		{Title: "Inception", Kind: domain.KindMovie, YearOrArtist: "2010", Score: 0.93, TrailerURL: "https://youtube.com/watch?v=x"},
		{Title: "Time", Kind: domain.KindMusic, YearOrArtist: "Hans Zimmer", Score: 0.81},
		{Title: "Tenet", Kind: domain.KindMovie, YearOrArtist: "2020", Score: 0.77},
	}
}

func TestRenderReplacesCards(t *testing.T) {
	f := New(stubResolver{}, &stubRegistry{}, false)

	f.Render(context.Background(), sampleItems(), false, false)
	if f.Len() != 3 {
		t.Fatalf("card count = %d, want 3", f.Len())
	}

	// A fresh render replaces, never accumulates
	f.Render(context.Background(), sampleItems()[:1], false, false)
	if f.Len() != 1 {
		t.Errorf("card count after replace = %d, want 1", f.Len())
	}
}

func TestRenderAppendKeepsExisting(t *testing.T) {
	f := New(stubResolver{}, &stubRegistry{}, false)

	f.Render(context.Background(), sampleItems(), false, false)
	f.Render(context.Background(), sampleItems()[:2], false, true)

	if f.Len() != 5 {
		t.Errorf("card count after append = %d, want 5", f.Len())
	}
	if f.NoMatches() {
		t.Error("noMatches should be false with cards present")
	}
}

func TestRenderEmptyMarksExhaustion(t *testing.T) {
	sink := &stubSink{}

	// Non-append empty page: message shown, pagination exhausted
	f := New(stubResolver{}, &stubRegistry{}, false)
	f.SetExhaustionSink(sink)
	f.Render(context.Background(), nil, false, false)
	if !f.NoMatches() {
		t.Error("empty replace render should show the no-matches message")
	}
	if sink.count() != 1 {
		t.Errorf("sink calls = %d, want 1", sink.count())
	}

	// Append empty page: existing cards stay, no message, still exhausted
	f.Render(context.Background(), sampleItems(), false, false)
	f.Render(context.Background(), nil, false, true)
	if f.NoMatches() {
		t.Error("empty append render must not show the no-matches message")
	}
	if f.Len() != 3 {
		t.Errorf("append of empty page should keep %d cards, has %d", 3, f.Len())
	}
	if sink.count() != 2 {
		t.Errorf("sink calls = %d, want 2", sink.count())
	}
}

func TestCardFields(t *testing.T) {
	reg := &stubRegistry{}
	f := New(stubResolver{}, reg, false)
	f.Render(context.Background(), sampleItems(), false, false)
	cards := f.Cards()

	movie := cards[0]
	if movie.Badge != "93% Match" {
		t.Errorf("movie badge = %q, want 93%% Match", movie.Badge)
	}
	if !movie.TrailerAvailable {
		t.Error("movie with trailer URL should expose the trailer control")
	}
	if movie.Playable {
		t.Error("movies are not playable")
	}

	track := cards[1]
	if !track.Playable || track.PlayerID != "time|hans zimmer" {
		t.Errorf("music card controls = playable=%v id=%q", track.Playable, track.PlayerID)
	}
	if track.TrailerAvailable {
		t.Error("music cards have no trailer control")
	}

	noTrailer := cards[2]
	if noTrailer.TrailerAvailable {
		t.Error("movie without trailer URL should hide the trailer control")
	}

	if len(reg.ids) != 1 || reg.ids[0] != "time|hans zimmer" {
		t.Errorf("registered player ids = %v", reg.ids)
	}
}

func TestTrendingBadgeUsesKindTag(t *testing.T) {
	f := New(stubResolver{}, &stubRegistry{}, false)
	f.Render(context.Background(), sampleItems(), true, false)
	cards := f.Cards()

	if cards[0].Badge != "movie" {
		t.Errorf("trending movie badge = %q, want movie", cards[0].Badge)
	}
	if cards[1].Badge != "music" {
		t.Errorf("trending music badge = %q, want music", cards[1].Badge)
	}
}

func TestDescriptionTruncation(t *testing.T) {
	long := strings.Repeat("a", 300)
	items := []domain.MediaItem{{Title: "Long", Kind: domain.KindMovie, Description: long}}

	full := New(stubResolver{}, &stubRegistry{}, false)
	full.Render(context.Background(), items, false, false)
	if got := full.Cards()[0].Description; len([]rune(got)) != 263 || !strings.HasSuffix(got, "...") {
		t.Errorf("full description length = %d, want 260 runes plus ellipsis", len([]rune(got)))
	}

	compact := New(stubResolver{}, &stubRegistry{}, true)
	compact.Render(context.Background(), items, false, false)
	if got := compact.Cards()[0].Description; len([]rune(got)) != 63 {
		t.Errorf("compact description length = %d, want 60 runes plus ellipsis", len([]rune(got)))
	}
}

func TestMarkVisibleTransitionsOnce(t *testing.T) {
	f := New(stubResolver{}, &stubRegistry{}, false)
	f.Render(context.Background(), sampleItems(), false, false)

	first := f.MarkVisible(0, 2)
	if len(first) != 2 || first[0] != 0 || first[1] != 1 {
		t.Errorf("first pass transitioned %v, want [0 1]", first)
	}

	// Overlapping range only transitions the unseen card
	second := f.MarkVisible(0, 3)
	if len(second) != 1 || second[0] != 2 {
		t.Errorf("second pass transitioned %v, want [2]", second)
	}

	if third := f.MarkVisible(0, 3); len(third) != 0 {
		t.Errorf("third pass transitioned %v, want none", third)
	}
}

func TestFilterMatchesTitles(t *testing.T) {
	f := New(stubResolver{}, &stubRegistry{}, false)
	f.Render(context.Background(), sampleItems(), false, false)

	matches := f.Filter("ten")
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if matches[0].Index != 2 {
		t.Errorf("matched index = %d, want 2 (Tenet)", matches[0].Index)
	}

	if got := f.Filter(""); len(got) != 0 {
		t.Errorf("empty query should match nothing, got %d", len(got))
	}
}
