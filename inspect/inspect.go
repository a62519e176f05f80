// Package inspect renders the selected record as pretty-printed JSON in a
// scrollable panel.
package inspect

import (
	"encoding/json"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	nt "atelier/entity"
	"atelier/style"
)

type InspectMsg interface {
	isInspectMsg()
}

func (SizeMsg) isInspectMsg()   {}
func (RecordMsg) isInspectMsg() {}

type SizeMsg struct {
	Width  int
	Height int
}

// RecordMsg replaces the displayed record.
type RecordMsg struct {
	Record nt.Record
}

// Panel holds the rendered record and scroll state.
type Panel struct {
	contentLines []string

	width  int
	height int
	offset int
}

func NewPanel() Panel {
	return Panel{}
}

func (pnl Panel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	switch msg := msg.(type) {

	case RecordMsg:
		pnl.contentLines = renderLines(msg.Record)
		pnl.offset = 0

	case SizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height
		pnl.offset = 0

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if pnl.offset > 0 {
				pnl.offset--
			}
		case "down", "j":
			if pnl.viewHeight() > 0 && len(pnl.contentLines) > pnl.viewHeight() {
				maxScroll := len(pnl.contentLines) - pnl.viewHeight()
				if pnl.offset < maxScroll {
					pnl.offset++
				}
			}
		}
	}

	return pnl, nil
}

// Render returns the bordered dialog; the root model positions it.
func (pnl Panel) Render() string {

	body := "Loading record..."
	if pnl.contentLines != nil {
		visible := pnl.contentLines[pnl.offset:]
		if pnl.viewHeight() > 0 && len(visible) > pnl.viewHeight() {
			visible = visible[:pnl.viewHeight()]
		}
		body = strings.Join(visible, "\n")
	}

	hints := "j/k: scroll  esc: close"
	content := body + "\n\n" + style.MutedStyle.Render(hints)

	dialogStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 2).
		Width(70)

	return dialogStyle.Render(content)
}

// unexported

// viewHeight leaves room for the border, padding, and hint line.
func (pnl Panel) viewHeight() int {
	return pnl.height - 8
}

func renderLines(record nt.Record) []string {

	var buf strings.Builder
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	err := encoder.Encode(record)
	if err != nil {
		return []string{"Error pretty-printing record: " + err.Error()}
	}

	content := strings.TrimSuffix(buf.String(), "\n")
	return strings.Split(content, "\n")
}
