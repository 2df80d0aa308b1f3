package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/domain"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/feed"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/tui/styles"
)

// cardHeight is the rendered height of one card including its border
const cardHeight = 7

// CardList renders the result cards with a movable cursor. When a local
// filter is active only the matched subset is shown; display positions then
// map through the filter to card indexes.
type CardList struct {
	cards    []feed.Card
	filtered []int // display position -> card index, nil when unfiltered
	cursor   int   // display position
	offset   int   // first visible display position
	width    int
	height   int

	// PlaybackLabel resolves the preview control label for a widget id
	PlaybackLabel func(id string) string
}

// NewCardList creates an empty card list
func NewCardList() CardList {
	return CardList{}
}

// SetSize updates the component dimensions
func (c *CardList) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.clampScroll()
}

// SetCards replaces the card set. keepPosition preserves the cursor across
// appends; otherwise the list scrolls back to the top.
func (c *CardList) SetCards(cards []feed.Card, keepPosition bool) {
	c.cards = cards
	c.filtered = nil
	if !keepPosition {
		c.cursor = 0
		c.offset = 0
	}
	c.clampScroll()
}

// SetFilter restricts the display to the given card indexes; nil clears it
func (c *CardList) SetFilter(indexes []int) {
	c.filtered = indexes
	c.cursor = 0
	c.offset = 0
}

// Len returns the number of displayed cards
func (c CardList) Len() int {
	if c.filtered != nil {
		return len(c.filtered)
	}
	return len(c.cards)
}

// cardAt maps a display position to its card
func (c CardList) cardAt(pos int) (feed.Card, bool) {
	idx := pos
	if c.filtered != nil {
		if pos < 0 || pos >= len(c.filtered) {
			return feed.Card{}, false
		}
		idx = c.filtered[pos]
	}
	if idx < 0 || idx >= len(c.cards) {
		return feed.Card{}, false
	}
	return c.cards[idx], true
}

// Selected returns the card under the cursor
func (c CardList) Selected() (feed.Card, bool) {
	return c.cardAt(c.cursor)
}

// MoveDown advances the cursor; returns true if it moved
func (c *CardList) MoveDown() bool {
	if c.cursor >= c.Len()-1 {
		return false
	}
	c.cursor++
	c.clampScroll()
	return true
}

// MoveUp retreats the cursor; returns true if it moved
func (c *CardList) MoveUp() bool {
	if c.cursor <= 0 {
		return false
	}
	c.cursor--
	c.clampScroll()
	return true
}

// MoveTop jumps to the first card
func (c *CardList) MoveTop() {
	c.cursor = 0
	c.offset = 0
}

// Cursor returns the cursor display position
func (c CardList) Cursor() int {
	return c.cursor
}

// VisibleRange returns the [from, to) card index range currently on screen.
// The range is empty while a filter is active.
func (c CardList) VisibleRange() (int, int) {
	if c.filtered != nil {
		return 0, 0
	}
	from := c.offset
	to := c.offset + c.visibleCount()
	if to > len(c.cards) {
		to = len(c.cards)
	}
	return from, to
}

// NearEnd reports whether the cursor is within threshold cards of the end
func (c CardList) NearEnd(threshold int) bool {
	return c.Len() > 0 && c.Len()-c.cursor <= threshold
}

func (c CardList) visibleCount() int {
	n := c.height / cardHeight
	if n < 1 {
		n = 1
	}
	return n
}

// clampScroll keeps the cursor inside the visible window
func (c *CardList) clampScroll() {
	if c.cursor >= c.Len() {
		c.cursor = c.Len() - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
	visible := c.visibleCount()
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+visible {
		c.offset = c.cursor - visible + 1
	}
	if c.offset < 0 {
		c.offset = 0
	}
}

// View renders the visible window of cards
func (c CardList) View() string {
	if c.Len() == 0 {
		return ""
	}

	visible := c.visibleCount()
	var blocks []string
	for pos := c.offset; pos < c.offset+visible && pos < c.Len(); pos++ {
		card, ok := c.cardAt(pos)
		if !ok {
			break
		}
		blocks = append(blocks, c.renderCard(card, pos == c.cursor))
	}
	return strings.Join(blocks, "\n")
}

// renderCard builds one bordered card block
func (c CardList) renderCard(card feed.Card, selected bool) string {
	inner := c.width - 4
	if inner < 20 {
		inner = 20
	}

	badge := styles.MatchBadgeStyle.Render(card.Badge)
	if card.Item.Kind == domain.KindMusic {
		badge = styles.KindBadgeStyle.Render(card.Badge)
	}

	title := styles.TitleStyle.Render(styles.Truncate(card.Item.Title, inner-lipgloss.Width(badge)-1))
	header := title + " " + badge

	meta := card.Item.YearOrArtist
	if card.Item.Genre != "" {
		meta += " · " + card.Item.Genre
	}

	lines := []string{
		header,
		styles.SubtitleStyle.Render(styles.Truncate(meta, inner)),
		styles.DimStyle.Render(styles.Truncate(card.Description, inner*2)),
		c.renderControls(card),
	}

	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}
	return style.Width(inner).Render(strings.Join(lines, "\n"))
}

// renderControls builds the per-card action line
func (c CardList) renderControls(card feed.Card) string {
	switch {
	case card.Playable:
		label := "play"
		if c.PlaybackLabel != nil {
			label = c.PlaybackLabel(card.PlayerID)
		}
		if label == "unavailable" || label == "error" {
			return styles.ControlDisabledStyle.Render("▶ " + label)
		}
		return styles.ControlStyle.Render(fmt.Sprintf("▶ %s (space)", label))
	case card.TrailerAvailable:
		return styles.ControlStyle.Render("▶ trailer (t)")
	default:
		return styles.DimStyle.Render("·")
	}
}
