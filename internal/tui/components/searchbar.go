package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/suggest"
	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/tui/styles"
)

// SearchBar is the search input plus the autocomplete dropdown beneath it
type SearchBar struct {
	input   textinput.Model
	result  *suggest.Result
	loading bool
	width   int
}

// NewSearchBar creates the search bar component
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search movies & music..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = styles.TitleStyle
	ti.PlaceholderStyle = styles.DimStyle
	return SearchBar{input: ti}
}

// Focus moves keyboard focus into the input
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes keyboard focus from the input
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused reports whether the input owns the keyboard
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Value returns the current input text
func (s SearchBar) Value() string {
	return s.input.Value()
}

// Clear empties the input text
func (s *SearchBar) Clear() {
	s.input.SetValue("")
}

// SetValue replaces the input text, e.g. when a suggestion is picked
func (s *SearchBar) SetValue(value string) {
	s.input.SetValue(value)
}

// SetSize updates the component dimensions
func (s *SearchBar) SetSize(width int) {
	s.width = width
	s.input.Width = width - 6
}

// SetLoading toggles the skeleton row under the input
func (s *SearchBar) SetLoading(loading bool) {
	s.loading = loading
}

// SetResult installs a suggestion list; nil hides the dropdown
func (s *SearchBar) SetResult(r *suggest.Result) {
	s.result = r
	s.loading = false
}

// HasSuggestions reports whether the dropdown is showing entries
func (s SearchBar) HasSuggestions() bool {
	return s.result != nil && len(s.result.Flat) > 0
}

// Update forwards a message to the text input
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the input and dropdown. cursor is the focused flat index
// within the suggestion list, -1 for none.
func (s SearchBar) View(cursor int) string {
	var b strings.Builder
	b.WriteString(s.input.View())

	if s.loading {
		b.WriteString("\n")
		b.WriteString(styles.DropdownStyle.Render(styles.DimStyle.Render("Searching...")))
		return b.String()
	}

	if s.result == nil || len(s.result.Flat) == 0 {
		return b.String()
	}

	var rows []string
	flatIdx := 0

	if len(s.result.Movies) > 0 {
		rows = append(rows, styles.GroupHeaderStyle.Render("Movies"))
		for _, sg := range s.result.Movies {
			rows = append(rows, renderSuggestion(sg, flatIdx == cursor, s.width-6))
			flatIdx++
		}
	}
	if len(s.result.Music) > 0 {
		rows = append(rows, styles.GroupHeaderStyle.Render("Music"))
		for _, sg := range s.result.Music {
			rows = append(rows, renderSuggestion(sg, flatIdx == cursor, s.width-6))
			flatIdx++
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.DropdownStyle.Render(strings.Join(rows, "\n")))
	return b.String()
}

// renderSuggestion builds one dropdown row with the matched substring
// highlighted
func renderSuggestion(sg suggest.Suggestion, selected bool, maxWidth int) string {
	title := styles.Truncate(sg.Item.Title, maxWidth)

	var line string
	runes := []rune(title)
	if sg.MatchStart >= 0 && sg.MatchEnd <= len(runes) {
		line = string(runes[:sg.MatchStart]) +
			styles.MatchHighlightStyle.Render(string(runes[sg.MatchStart:sg.MatchEnd])) +
			string(runes[sg.MatchEnd:])
	} else {
		line = title
	}

	if artist := sg.Item.Artist(); artist != "" {
		line += styles.DimStyle.Render(" · " + artist)
	}

	if selected {
		return styles.SelectedItemStyle.Render(line)
	}
	return styles.NormalItemStyle.Render(line)
}
