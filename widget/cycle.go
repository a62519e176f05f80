package widget

import nt "atelier/entity"

// Cycle steps through a list of options with left/right, optionally
// skipping options an enabled callback rejects (used to prevent two filter
// rows landing on the same field).
type Cycle struct {
	options  []nt.Option
	selected int
}

func NewCycle(options []nt.Option, value string) Cycle {
	cyc := Cycle{options: options}
	for i, opt := range options {
		if opt.Value == value {
			cyc.selected = i
			break
		}
	}
	return cyc
}

// HandleKey moves the selection. A nil enabled callback allows everything.
func (c Cycle) HandleKey(key string, enabled func(int) bool) (out Cycle, changed bool) {

	step := 0
	switch key {
	case "left", "h":
		step = -1
	case "right", "l":
		step = 1
	default:
		return c, false
	}

	count := len(c.options)
	if count == 0 {
		return c, false
	}

	next := c.selected
	for range count {
		next = (next + step + count) % count
		if enabled == nil || enabled(next) {
			break
		}
	}
	if next == c.selected {
		return c, false
	}

	c.selected = next
	return c, true
}

// Value returns the selected option's value, or empty when there are no
// options.
func (c Cycle) Value() string {
	if c.selected < 0 || c.selected >= len(c.options) {
		return ""
	}
	return c.options[c.selected].Value
}

func (c Cycle) Label() string {
	if c.selected < 0 || c.selected >= len(c.options) {
		return ""
	}
	return c.options[c.selected].Label
}

func (c Cycle) Render(focused bool) string {
	body := "‹" + c.Label() + "›"
	if focused {
		return focusStyle.Render(body)
	}
	return body
}
