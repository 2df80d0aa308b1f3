package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/pager"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/playback"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/suggest"
)

// ChannelObserver adapts the suggestion, pagination, and playback observers
// to a message channel for Bubble Tea. Controller callbacks arrive on their
// own goroutines; the channel serializes them into the update loop.
type ChannelObserver struct {
	ch chan tea.Msg
}

// NewChannelObserver creates a channel-based observer
func NewChannelObserver() *ChannelObserver {
	return &ChannelObserver{ch: make(chan tea.Msg, 64)}
}

// WaitForEvent returns a command that delivers the next controller event
func (o *ChannelObserver) WaitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-o.ch
	}
}

func (o *ChannelObserver) send(msg tea.Msg) {
	select {
	case o.ch <- msg:
	default: // Non-blocking if channel full
	}
}

// OnSuggestLoading implements suggest.Observer
func (o *ChannelObserver) OnSuggestLoading(query string) {
	o.send(SuggestLoadingMsg{Query: query})
}

// OnSuggestions implements suggest.Observer
func (o *ChannelObserver) OnSuggestions(r suggest.Result) {
	o.send(SuggestionsMsg{Result: r})
}

// OnSuggestionsCleared implements suggest.Observer
func (o *ChannelObserver) OnSuggestionsCleared(revertToTrending bool) {
	o.send(SuggestionsClearedMsg{RevertToTrending: revertToTrending})
}

// OnPageLoading implements pager.Observer
func (o *ChannelObserver) OnPageLoading(loading bool) {
	o.send(PageLoadingMsg{Loading: loading})
}

// OnPageLoaded implements pager.Observer
func (o *ChannelObserver) OnPageLoaded(view pager.ViewKind, page, count int) {
	o.send(PageLoadedMsg{View: view, Page: page, Count: count})
}

// OnEndOfResults implements pager.Observer
func (o *ChannelObserver) OnEndOfResults() {
	o.send(EndOfResultsMsg{})
}

// OnPlaybackChange implements playback.Observer
func (o *ChannelObserver) OnPlaybackChange(e playback.Event) {
	o.send(PlaybackChangedMsg{Event: e})
}
