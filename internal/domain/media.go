package domain

import (
	"fmt"
	"strings"
)

// MediaKind distinguishes content types
type MediaKind int

const (
	KindMovie MediaKind = iota
	KindMusic
)

// ParseKind converts a wire-format type tag to a MediaKind
func ParseKind(s string) (MediaKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie":
		return KindMovie, nil
	case "music":
		return KindMusic, nil
	default:
		return 0, fmt.Errorf("unknown media kind %q", s)
	}
}

// String returns the wire-format type tag
func (k MediaKind) String() string {
	switch k {
	case KindMovie:
		return "movie"
	case KindMusic:
		return "music"
	default:
		return "unknown"
	}
}

// MediaItem represents a single discoverable title (movie or track).
// Items are produced by the backend and are immutable once received.
type MediaItem struct {
	Title        string    // Display title
	Kind         MediaKind // Movie or Music
	YearOrArtist string    // Release year for movies, artist name for music
	Genre        string    // Genre label, may be empty
	Description  string    // Synopsis or generated blurb
	Score        float64   // Match score in [0,1], search results only
	ImageURL     string    // Server-supplied artwork URL, may be empty
	TrailerURL   string    // Movies only, may be empty
	PreviewURL   string    // Music only, may be empty
}

// ScorePercent returns the match score as a whole percentage for badges
func (m MediaItem) ScorePercent() int {
	return int(m.Score*100 + 0.5)
}

// Artist returns the artist name for music items, empty otherwise
func (m MediaItem) Artist() string {
	if m.Kind == KindMusic {
		return m.YearOrArtist
	}
	return ""
}

// HasTrailer reports whether a movie item carries a trailer link
func (m MediaItem) HasTrailer() bool {
	return m.Kind == KindMovie && m.TrailerURL != ""
}

// TruncateDescription returns the description cut to at most max runes,
// with an ellipsis marker when anything was removed.
func (m MediaItem) TruncateDescription(max int) string {
	runes := []rune(m.Description)
	if len(runes) <= max {
		return m.Description
	}
	return string(runes[:max]) + "..."
}
