package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/feed"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/pager"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/playback"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/suggest"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/tui/components"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateDetail
	StateHelp
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Options carries the UI tunables from the config file
type Options struct {
	ScrollThreshold int  // cards from the end that trigger the next page
	HideHeader      bool // collapse the header while scrolling down
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Controllers
	Suggest  *suggest.Engine
	Pager    *pager.Controller
	Playback *playback.Controller
	Feed     *feed.Feed
	Opener   urlOpener
	Observer *ChannelObserver

	// UI components
	SearchBar components.SearchBar
	Cards     components.CardList
	Detail    components.Detail

	// Dimensions
	Width  int
	Height int

	// UI state
	HeaderVisible bool
	KindFilter    string // "all", "movie", "music"
	FilterMode    bool   // local filter over loaded cards
	FilterQuery   string
	PrevQuery     string // search to restore when backing out of a suggestion pick
	StatusMsg     string
	StatusIsErr   bool
	Loading       bool
	SpinnerFrame  int
	EndOfResults  bool

	opts Options
}

// NewModel creates a new application model
func NewModel(
	suggestEngine *suggest.Engine,
	pageCtl *pager.Controller,
	playbackCtl *playback.Controller,
	resultFeed *feed.Feed,
	opener urlOpener,
	observer *ChannelObserver,
	opts Options,
) Model {
	if opts.ScrollThreshold <= 0 {
		opts.ScrollThreshold = 6
	}

	m := Model{
		State:         StateBrowsing,
		Suggest:       suggestEngine,
		Pager:         pageCtl,
		Playback:      playbackCtl,
		Feed:          resultFeed,
		Opener:        opener,
		Observer:      observer,
		SearchBar:     components.NewSearchBar(),
		Cards:         components.NewCardList(),
		Detail:        components.NewDetail(),
		HeaderVisible: true,
		KindFilter:    "all",
		opts:          opts,
	}
	m.Cards.PlaybackLabel = m.playbackLabel
	m.Detail.PlaybackLabel = m.playbackLabel
	return m
}

func (m Model) playbackLabel(id string) string {
	return m.Playback.StateOf(id).String()
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.Observer.WaitForEvent(),
		TickCmd(100*time.Millisecond),
		StartTrendingCmd(m.Pager, m.KindFilter),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(100 * time.Millisecond)

	case SuggestLoadingMsg:
		m.SearchBar.SetLoading(true)
		return m, m.Observer.WaitForEvent()

	case SuggestionsMsg:
		result := msg.Result
		m.SearchBar.SetResult(&result)
		return m, m.Observer.WaitForEvent()

	case SuggestionsClearedMsg:
		m.SearchBar.SetResult(nil)
		var cmd tea.Cmd
		if msg.RevertToTrending && m.Pager.View() == pager.ViewSearch {
			cmd = StartTrendingCmd(m.Pager, m.KindFilter)
		}
		return m, tea.Batch(m.Observer.WaitForEvent(), cmd)

	case PageLoadingMsg:
		m.Loading = msg.Loading
		return m, m.Observer.WaitForEvent()

	case PageLoadedMsg:
		if msg.Page == 1 {
			m.EndOfResults = false
			m.clearFilter()
		}
		m.Cards.SetCards(m.Feed.Cards(), msg.Page > 1)
		m.markVisible()
		return m, m.Observer.WaitForEvent()

	case EndOfResultsMsg:
		m.EndOfResults = true
		m.Cards.SetCards(m.Feed.Cards(), true)
		if m.Feed.NoMatches() {
			m.StatusMsg = "No matches found"
			m.StatusIsErr = false
		}
		return m, m.Observer.WaitForEvent()

	case PlaybackChangedMsg:
		var cmd tea.Cmd
		if msg.Event.State == playback.StateErrored {
			m.StatusMsg = "Preview playback failed"
			m.StatusIsErr = true
			cmd = ClearStatusCmd(3 * time.Second)
		}
		return m, tea.Batch(m.Observer.WaitForEvent(), cmd)

	case TrailerOpenedMsg:
		if msg.Err != nil {
			m.StatusMsg = "Could not open trailer"
			m.StatusIsErr = true
		} else {
			m.StatusMsg = fmt.Sprintf("Opened trailer for %s", msg.Title)
			m.StatusIsErr = false
		}
		return m, ClearStatusCmd(3 * time.Second)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case ErrMsg:
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)
	}

	return m, nil
}

// updateLayout recomputes component dimensions
func (m *Model) updateLayout() {
	m.SearchBar.SetSize(m.Width)
	m.Detail.SetSize(m.Width, m.Height)

	chrome := 4 // search bar + footer
	if m.HeaderVisible {
		chrome += 2
	}
	m.Cards.SetSize(m.Width, m.Height-chrome)
}

// markVisible records first-view transitions for the cards on screen
func (m *Model) markVisible() {
	from, to := m.Cards.VisibleRange()
	m.Feed.MarkVisible(from, to)
}

func (m *Model) clearFilter() {
	m.FilterMode = false
	m.FilterQuery = ""
	m.Cards.SetFilter(nil)
}

// handleKeyMsg routes keys by application state
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit, but not while typing
	if key.Matches(msg, Keys.Quit) && !m.SearchBar.Focused() && !m.FilterMode {
		m.Playback.StopAll()
		return m, tea.Quit
	}

	if m.SearchBar.Focused() {
		return m.handleSearchKeys(msg)
	}
	if m.FilterMode {
		return m.handleFilterKeys(msg)
	}

	switch m.State {
	case StateDetail:
		return m.handleDetailKeys(msg)
	case StateHelp:
		m.State = StateBrowsing
		return m, nil
	default:
		return m.handleBrowseKeys(msg)
	}
}

// handleSearchKeys handles input while the search bar owns the keyboard
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		m.Suggest.Dismiss()
		m.SearchBar.Blur()
		return m, nil

	case key.Matches(msg, Keys.Enter):
		query := strings.TrimSpace(m.SearchBar.Value())
		m.PrevQuery = ""
		if s, ok := m.Suggest.Focused(); ok {
			// Picking a suggestion narrows to that title; remember the
			// search it replaces so Escape can restore it
			if m.Pager.View() == pager.ViewSearch {
				m.PrevQuery = m.Pager.Query()
			}
			query = s.Item.Title
		}
		if query == "" {
			return m, nil
		}
		m.SearchBar.SetValue(query)
		m.Suggest.Dismiss()
		m.SearchBar.Blur()
		return m, StartSearchCmd(m.Pager, query, m.KindFilter)

	case key.Matches(msg, Keys.Down):
		m.Suggest.MoveDown()
		return m, nil

	case key.Matches(msg, Keys.Up):
		m.Suggest.MoveUp()
		return m, nil
	}

	var cmd tea.Cmd
	m.SearchBar, cmd = m.SearchBar.Update(msg)
	m.Suggest.OnInput(m.SearchBar.Value())
	return m, cmd
}

// handleFilterKeys handles the local filter over loaded cards
func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.clearFilter()
		return m, nil

	case tea.KeyEnter:
		m.FilterMode = false // keep the filtered view
		return m, nil

	case tea.KeyBackspace:
		if len(m.FilterQuery) > 0 {
			runes := []rune(m.FilterQuery)
			m.FilterQuery = string(runes[:len(runes)-1])
		}

	case tea.KeyRunes, tea.KeySpace:
		m.FilterQuery += string(msg.Runes)

	default:
		return m, nil
	}

	if m.FilterQuery == "" {
		m.Cards.SetFilter(nil)
		return m, nil
	}
	matches := m.Feed.Filter(m.FilterQuery)
	indexes := make([]int, len(matches))
	for i, match := range matches {
		indexes[i] = match.Index
	}
	m.Cards.SetFilter(indexes)
	return m, nil
}

// handleDetailKeys handles the single-item view
func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	card := m.Detail.Card()
	switch {
	case key.Matches(msg, Keys.Escape), key.Matches(msg, Keys.Back):
		m.Detail.Hide()
		m.State = StateBrowsing
		return m, nil

	case key.Matches(msg, Keys.TogglePlay):
		if card.Playable {
			return m, TogglePlayCmd(m.Playback, card.PlayerID)
		}

	case key.Matches(msg, Keys.Trailer):
		if card.TrailerAvailable {
			return m, OpenTrailerCmd(m.Opener, card.Item.Title, card.Item.TrailerURL)
		}
	}
	return m, nil
}

// handleBrowseKeys handles the main card feed
func (m Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Search):
		return m, m.SearchBar.Focus()

	case key.Matches(msg, Keys.Filter):
		if m.Cards.Len() > 0 {
			m.FilterMode = true
			m.FilterQuery = ""
		}
		return m, nil

	case key.Matches(msg, Keys.Down):
		if m.Cards.MoveDown() {
			if m.opts.HideHeader && m.HeaderVisible {
				m.HeaderVisible = false
				m.updateLayout()
			}
			m.markVisible()
			if m.Cards.NearEnd(m.opts.ScrollThreshold) {
				return m, LoadMoreCmd(m.Pager)
			}
		}
		return m, nil

	case key.Matches(msg, Keys.Up):
		if m.Cards.MoveUp() && !m.HeaderVisible {
			m.HeaderVisible = true
			m.updateLayout()
		}
		return m, nil

	case key.Matches(msg, Keys.Top):
		m.Cards.MoveTop()
		if !m.HeaderVisible {
			m.HeaderVisible = true
			m.updateLayout()
		}
		return m, nil

	case key.Matches(msg, Keys.Enter):
		if card, ok := m.Cards.Selected(); ok {
			m.Detail.Show(card)
			m.State = StateDetail
		}
		return m, nil

	case key.Matches(msg, Keys.TogglePlay):
		if card, ok := m.Cards.Selected(); ok && card.Playable {
			return m, TogglePlayCmd(m.Playback, card.PlayerID)
		}
		return m, nil

	case key.Matches(msg, Keys.Trailer):
		if card, ok := m.Cards.Selected(); ok && card.TrailerAvailable {
			return m, OpenTrailerCmd(m.Opener, card.Item.Title, card.Item.TrailerURL)
		}
		return m, nil

	case key.Matches(msg, Keys.Refresh):
		return m, m.restartView()

	case key.Matches(msg, Keys.TabAll):
		return m, m.setKindFilter("all")

	case key.Matches(msg, Keys.TabMovies):
		return m, m.setKindFilter("movie")

	case key.Matches(msg, Keys.TabMusic):
		return m, m.setKindFilter("music")

	case key.Matches(msg, Keys.Escape):
		m.Suggest.Dismiss()
		if m.PrevQuery != "" {
			// Back out of a suggestion pick into the search it replaced
			query := m.PrevQuery
			m.PrevQuery = ""
			m.SearchBar.SetValue(query)
			return m, StartSearchCmd(m.Pager, query, m.KindFilter)
		}
		// Clear the search and go back to trending
		m.SearchBar.Clear()
		if m.Pager.View() == pager.ViewSearch {
			return m, StartTrendingCmd(m.Pager, m.KindFilter)
		}
		return m, nil
	}

	return m, nil
}

// setKindFilter switches the type tab and restarts the active view
func (m *Model) setKindFilter(kind string) tea.Cmd {
	if m.KindFilter == kind {
		return nil
	}
	m.KindFilter = kind
	if m.Pager.View() == pager.ViewSearch {
		return StartSearchCmd(m.Pager, m.Pager.Query(), kind)
	}
	return StartTrendingCmd(m.Pager, kind)
}

// restartView reloads the active view from page 1
func (m *Model) restartView() tea.Cmd {
	if m.Pager.View() == pager.ViewSearch {
		return StartSearchCmd(m.Pager, m.Pager.Query(), m.KindFilter)
	}
	return StartTrendingCmd(m.Pager, m.KindFilter)
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.helpView()
	}

	var sections []string

	if m.HeaderVisible {
		sections = append(sections, m.headerView())
	}

	if m.State == StateDetail {
		sections = append(sections, m.Detail.View())
		return strings.Join(sections, "\n")
	}

	sections = append(sections, m.SearchBar.View(m.Suggest.Cursor()))

	if m.FilterMode || m.FilterQuery != "" {
		sections = append(sections, styles.AccentStyle.Render("filter: ")+m.FilterQuery)
	}

	if m.Cards.Len() == 0 && m.Feed.NoMatches() {
		sections = append(sections, styles.DimStyle.Render("\nNo matches found"))
	} else {
		sections = append(sections, m.Cards.View())
	}

	sections = append(sections, m.footerView())
	return strings.Join(sections, "\n")
}

// headerView renders the title bar with the kind filter tabs
func (m Model) headerView() string {
	title := styles.HeaderStyle.Render("Discover")

	tabs := make([]string, 0, 3)
	for _, tab := range []struct{ key, label string }{
		{"all", "All"},
		{"movie", "Movies"},
		{"music", "Music"},
	} {
		if tab.key == m.KindFilter {
			tabs = append(tabs, styles.TabActiveStyle.Render(tab.label))
		} else {
			tabs = append(tabs, styles.TabInactiveStyle.Render(tab.label))
		}
	}

	view := styles.DimStyle.Render(m.Pager.View().String())
	if m.Pager.View() == pager.ViewSearch {
		view = styles.DimStyle.Render(fmt.Sprintf("search: %s", m.Pager.Query()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", strings.Join(tabs, " "), "  ", view)
}

// footerView renders the status line
func (m Model) footerView() string {
	var parts []string

	switch {
	case m.Loading:
		frame := spinnerFrames[m.SpinnerFrame%len(spinnerFrames)]
		parts = append(parts, styles.SpinnerStyle.Render(frame+" loading"))
	case m.EndOfResults && m.Cards.Len() > 0:
		parts = append(parts, styles.DimStyle.Render("end of results"))
	}

	if m.StatusMsg != "" {
		style := styles.SuccessStyle
		if m.StatusIsErr {
			style = styles.ErrorStyle
		}
		parts = append(parts, style.Render(m.StatusMsg))
	}

	parts = append(parts, styles.DimStyle.Render("/ search · f filter · space preview · t trailer · ? help · q quit"))
	return strings.Join(parts, "  ")
}

// helpView renders the key binding reference
func (m Model) helpView() string {
	rows := []struct{ keys, desc string }{
		{"/", "focus search"},
		{"esc", "clear search, back to trending"},
		{"enter", "open item details / pick suggestion"},
		{"j/k, ↓/↑", "move through results"},
		{"g", "jump to top"},
		{"1 / 2 / 3", "all / movies / music"},
		{"f", "filter loaded results"},
		{"space", "play or pause a preview"},
		{"t", "open trailer in browser"},
		{"r", "reload the current view"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Key bindings"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			styles.HelpKeyStyle.Render(fmt.Sprintf("%-10s", row.keys)),
			styles.HelpDescStyle.Render(row.desc)))
	}
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("press any key to close"))
	return b.String()
}
