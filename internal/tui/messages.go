package tui

import (
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/pager"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/playback"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/suggest"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SuggestLoadingMsg signals that an autocomplete request is in flight
type SuggestLoadingMsg struct {
	Query string
}

// SuggestionsMsg delivers a rendered suggestion list
type SuggestionsMsg struct {
	Result suggest.Result
}

// SuggestionsClearedMsg signals that the dropdown should be dismissed
type SuggestionsClearedMsg struct {
	RevertToTrending bool
}

// PageLoadingMsg toggles the pagination loading indicator
type PageLoadingMsg struct {
	Loading bool
}

// PageLoadedMsg signals that a result page has been appended
type PageLoadedMsg struct {
	View  pager.ViewKind
	Page  int
	Count int
}

// EndOfResultsMsg signals that the active view is exhausted
type EndOfResultsMsg struct{}

// PlaybackChangedMsg reports a preview widget state change
type PlaybackChangedMsg struct {
	Event playback.Event
}

// TrailerOpenedMsg reports the outcome of opening a trailer link
type TrailerOpenedMsg struct {
	Title string
	Err   error
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// TickMsg is a general tick message for animations
type TickMsg struct{}
