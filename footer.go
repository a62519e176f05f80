package atelier

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"atelier/style"
)

// RenderFooter renders the status line plus row position and screen title.
func RenderFooter(current, total int, note, title string, width int) string {

	left := fmt.Sprintf("%d/%d", current, total)
	right := title

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}
	info := style.MutedStyle.Render(left + strings.Repeat(" ", padding) + right)

	if note == "" {
		return "\n" + info
	}
	return style.WarnStyle.Render(note) + "\n" + info
}
