package widget

import (
	"strings"

	nt "atelier/entity"
)

// MultiSelect is a checkbox list over options; selection order on the wire
// follows option order, not click order.
type MultiSelect struct {
	options  []nt.Option
	selected map[string]bool
	cursor   int
}

func NewMultiSelect(options []nt.Option, values []string) MultiSelect {
	sel := map[string]bool{}
	for _, val := range values {
		sel[val] = true
	}
	return MultiSelect{options: options, selected: sel}
}

// HandleKey moves the cursor with left/right and toggles with space or t.
func (m MultiSelect) HandleKey(key string) (out MultiSelect, changed bool) {
	switch key {
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case " ", "t":
		if m.cursor < len(m.options) {
			val := m.options[m.cursor].Value
			next := MultiSelect{options: m.options, cursor: m.cursor, selected: map[string]bool{}}
			for k, v := range m.selected {
				next.selected[k] = v
			}
			next.selected[val] = !next.selected[val]
			return next, true
		}
	}
	return m, false
}

// Values returns the selected option values in option order.
func (m MultiSelect) Values() []string {
	vals := []string{}
	for _, opt := range m.options {
		if m.selected[opt.Value] {
			vals = append(vals, opt.Value)
		}
	}
	return vals
}

func (m MultiSelect) Render(focused bool) string {
	var parts []string
	for i, opt := range m.options {
		mark := " "
		if m.selected[opt.Value] {
			mark = "x"
		}
		body := "[" + mark + "] " + opt.Label
		if focused && i == m.cursor {
			body = focusStyle.Render(body)
		}
		parts = append(parts, body)
	}
	if len(parts) == 0 {
		return dimStyle.Render("(none)")
	}
	return strings.Join(parts, "  ")
}
