package widget

// Checkbox is a three-state toggle: unset, yes, no. The filter builder
// skips unset entirely.
type Checkbox struct {
	set     bool
	checked bool
}

func NewCheckbox(value any) Checkbox {
	checked, set := value.(bool)
	return Checkbox{set: set, checked: checked}
}

// HandleKey cycles unset → yes → no → unset on space or t.
func (c Checkbox) HandleKey(key string) (out Checkbox, changed bool) {
	if key != " " && key != "t" {
		return c, false
	}

	switch {
	case !c.set:
		c.set = true
		c.checked = true
	case c.checked:
		c.checked = false
	default:
		c.set = false
	}
	return c, true
}

// Value returns nil when unset, otherwise the boolean.
func (c Checkbox) Value() any {
	if !c.set {
		return nil
	}
	return c.checked
}

func (c Checkbox) Render(focused bool) string {
	body := "[ ]"
	switch {
	case c.set && c.checked:
		body = "[x]"
	case c.set:
		body = "[-]"
	}
	if focused {
		return focusStyle.Render(body)
	}
	return body
}
