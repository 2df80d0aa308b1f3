package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/pager"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/playback"
)

// TickCmd returns a command that sends a TickMsg after the given duration
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// StartTrendingCmd starts a trending view. Results arrive through the
// observer channel.
func StartTrendingCmd(p *pager.Controller, trendingType string) tea.Cmd {
	return func() tea.Msg {
		p.StartTrending(context.Background(), trendingType)
		return nil
	}
}

// StartSearchCmd starts a search view
func StartSearchCmd(p *pager.Controller, query, kindFilter string) tea.Cmd {
	return func() tea.Msg {
		p.StartSearch(context.Background(), query, kindFilter)
		return nil
	}
}

// LoadMoreCmd requests the next page of the active view
func LoadMoreCmd(p *pager.Controller) tea.Cmd {
	return func() tea.Msg {
		p.LoadMore(context.Background())
		return nil
	}
}

// TogglePlayCmd toggles a preview widget
func TogglePlayCmd(c *playback.Controller, widgetID string) tea.Cmd {
	return func() tea.Msg {
		c.Toggle(context.Background(), widgetID)
		return nil
	}
}

// urlOpener opens a URL externally
type urlOpener interface {
	OpenURL(url string) error
}

// OpenTrailerCmd opens a trailer link in the system browser
func OpenTrailerCmd(opener urlOpener, title, url string) tea.Cmd {
	return func() tea.Msg {
		return TrailerOpenedMsg{Title: title, Err: opener.OpenURL(url)}
	}
}

// ClearStatusCmd clears the status bar after a delay
func ClearStatusCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
