// Package message defines the cross-panel messages routed through the root
// model.
package message

import (
	nt "atelier/entity"
)

// ErrorMsg carries a failure to the footer.
type ErrorMsg struct {
	Err error
}

// SearchMsg submits a wire filter array; the receiving screen resets
// pagination to the first page.
type SearchMsg struct {
	Filters []nt.WireFilter
}

// GetPageMsg requests another 0-indexed page.
type GetPageMsg struct {
	Page int
}

// SortMsg applies a sort model.
type SortMsg struct {
	Sorts []nt.Sort
}

// RefetchMsg reloads the current page after a mutation.
type RefetchMsg struct{}

// SelectedMsg reports the selected row for the footer and detail view.
type SelectedMsg struct {
	Row int // 1-indexed for display
	ID  string
}

// LogoutMsg ends the session after an auth failure.
type LogoutMsg struct{}

// StatusMsg shows a transient footer note.
type StatusMsg struct {
	Text string
}
