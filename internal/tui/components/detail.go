package components

import (
	"strings"

	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/domain"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/feed"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/tui/styles"
)

// Detail is the single-item view opened from a card
type Detail struct {
	card   feed.Card
	active bool
	width  int
	height int

	// PlaybackLabel resolves the preview control label for a widget id
	PlaybackLabel func(id string) string
}

// NewDetail creates the detail component
func NewDetail() Detail {
	return Detail{}
}

// Show opens the detail view for a card
func (d *Detail) Show(card feed.Card) {
	d.card = card
	d.active = true
}

// Hide closes the detail view
func (d *Detail) Hide() {
	d.active = false
}

// Active reports whether the detail view is open
func (d Detail) Active() bool {
	return d.active
}

// Card returns the displayed card
func (d Detail) Card() feed.Card {
	return d.card
}

// SetSize updates the component dimensions
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the full item details
func (d Detail) View() string {
	if !d.active {
		return ""
	}

	inner := d.width - 6
	if inner < 30 {
		inner = 30
	}
	item := d.card.Item

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(item.Title))
	b.WriteString("  ")
	if item.Kind == domain.KindMusic {
		b.WriteString(styles.KindBadgeStyle.Render(d.card.Badge))
	} else {
		b.WriteString(styles.MatchBadgeStyle.Render(d.card.Badge))
	}
	b.WriteString("\n\n")

	writeField(&b, "Type", item.Kind.String())
	if item.Kind == domain.KindMovie {
		writeField(&b, "Year", item.YearOrArtist)
	} else {
		writeField(&b, "Artist", item.YearOrArtist)
	}
	if item.Genre != "" {
		writeField(&b, "Genre", item.Genre)
	}
	if d.card.ImageURL != "" {
		writeField(&b, "Artwork", styles.Truncate(d.card.ImageURL, inner-10))
	}
	b.WriteString("\n")

	// Full description, wrapped by the outer style width
	if item.Description != "" {
		b.WriteString(styles.SubtitleStyle.Render(item.Description))
		b.WriteString("\n\n")
	}

	switch {
	case d.card.Playable:
		label := "play"
		if d.PlaybackLabel != nil {
			label = d.PlaybackLabel(d.card.PlayerID)
		}
		b.WriteString(styles.ControlStyle.Render("▶ preview: " + label + " (space)"))
	case d.card.TrailerAvailable:
		b.WriteString(styles.ControlStyle.Render("▶ trailer (t)"))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("esc/h back"))

	return styles.CardStyle.Width(inner).Render(b.String())
}

func writeField(b *strings.Builder, name, value string) {
	b.WriteString(styles.DimStyle.Render(name + ": "))
	b.WriteString(styles.SubtitleStyle.Render(value))
	b.WriteString("\n")
}
