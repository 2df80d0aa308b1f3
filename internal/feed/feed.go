package feed

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/domain"
)

// Description cutoffs for the full and compact card variants
const (
	fullDescriptionLimit    = 260
	compactDescriptionLimit = 60
)

// Card is one rendered result entry
type Card struct {
	Item        domain.MediaItem
	ImageURL    string // resolved artwork (or placeholder)
	Description string // truncated synopsis
	Badge       string // match percentage or kind tag

	// Movie controls
	TrailerAvailable bool

	// Music controls
	Playable bool
	PlayerID string // playback widget id, set when Playable

	Seen bool // first-visibility transition already fired
}

// artworkResolver resolves a display image for an item
type artworkResolver interface {
	ResolveImage(ctx context.Context, item domain.MediaItem) string
}

// controlRegistry binds music preview controls
type controlRegistry interface {
	Register(id, title, artist string)
}

// exhaustionSink is notified when a render observes an empty result page
type exhaustionSink interface {
	MarkExhausted()
}

// Feed is the in-memory card container the shell renders from. It is the
// analog of the results list on a page: cards are appended in input order
// and cleared when a new view starts.
type Feed struct {
	artwork  artworkResolver
	controls controlRegistry
	sink     exhaustionSink
	compact  bool

	mu        sync.Mutex
	cards     []Card
	noMatches bool
}

// New creates a feed. sink may be nil when no pagination is attached.
func New(artwork artworkResolver, controls controlRegistry, compact bool) *Feed {
	return &Feed{
		artwork:  artwork,
		controls: controls,
		compact:  compact,
	}
}

// SetExhaustionSink attaches the pagination state notified on empty pages
func (f *Feed) SetExhaustionSink(sink exhaustionSink) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sink = sink
}

// PlayerID derives the playback widget id for a music item
func PlayerID(item domain.MediaItem) string {
	return strings.ToLower(item.Title + "|" + item.Artist())
}

// Render builds cards for items and places them in the container.
// trendingBadge selects the kind tag badge instead of the match score.
// When appending, existing cards stay; otherwise the container is cleared
// first. An empty item set marks the attached pagination state exhausted in
// both modes; only a non-append render shows the "no matches" message.
func (f *Feed) Render(ctx context.Context, items []domain.MediaItem, trendingBadge, appendMode bool) {
	// Resolve artwork outside the lock, item by item in input order
	cards := make([]Card, 0, len(items))
	for _, item := range items {
		cards = append(cards, f.buildCard(ctx, item, trendingBadge))
	}

	f.mu.Lock()
	if !appendMode {
		f.cards = nil
		f.noMatches = false
	}

	if len(cards) == 0 {
		if !appendMode {
			f.noMatches = true
		}
		sink := f.sink
		f.mu.Unlock()
		if sink != nil {
			sink.MarkExhausted()
		}
		return
	}

	f.cards = append(f.cards, cards...)
	f.mu.Unlock()

	// (Re)bind preview controls after the cards are in place
	for _, c := range cards {
		if c.Playable {
			f.controls.Register(c.PlayerID, c.Item.Title, c.Item.Artist())
		}
	}
}

// buildCard assembles the display fields for one item
func (f *Feed) buildCard(ctx context.Context, item domain.MediaItem, trendingBadge bool) Card {
	limit := fullDescriptionLimit
	if f.compact {
		limit = compactDescriptionLimit
	}

	card := Card{
		Item:        item,
		ImageURL:    f.artwork.ResolveImage(ctx, item),
		Description: item.TruncateDescription(limit),
	}

	if trendingBadge {
		card.Badge = item.Kind.String()
	} else {
		card.Badge = fmt.Sprintf("%d%% Match", item.ScorePercent())
	}

	switch item.Kind {
	case domain.KindMovie:
		card.TrailerAvailable = item.HasTrailer()
	case domain.KindMusic:
		card.Playable = true
		card.PlayerID = PlayerID(item)
	}

	return card
}

// Cards returns a snapshot of the container
func (f *Feed) Cards() []Card {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Card, len(f.cards))
	copy(out, f.cards)
	return out
}

// Len returns the number of cards in the container
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cards)
}

// NoMatches reports whether the last non-append render was empty
func (f *Feed) NoMatches() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.noMatches
}

// MarkVisible records the first viewport intersection for cards in
// [from, to). Each card transitions once; later calls are no-ops for it.
// Returns the indexes that transitioned this call.
func (f *Feed) MarkVisible(from, to int) []int {
	f.mu.Lock()
	defer f.mu.Unlock()

	var transitioned []int
	for i := from; i < to && i < len(f.cards); i++ {
		if i < 0 || f.cards[i].Seen {
			continue
		}
		f.cards[i].Seen = true
		transitioned = append(transitioned, i)
	}
	return transitioned
}
