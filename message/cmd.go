package message

import (
	tea "charm.land/bubbletea/v2"

	nt "atelier/entity"
)

// ErrorCmd wraps an error for the footer.
func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

// GetPageCmd requests a 0-indexed page.
func GetPageCmd(page int) tea.Cmd {
	return func() tea.Msg {
		return GetPageMsg{Page: page}
	}
}

// SearchCmd submits a filter array.
func SearchCmd(filters []nt.WireFilter) tea.Cmd {
	return func() tea.Msg {
		return SearchMsg{Filters: filters}
	}
}

// StatusCmd shows a transient footer note.
func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text}
	}
}
