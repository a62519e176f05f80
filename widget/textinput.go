// Package widget holds the small editable pieces composed into the filter
// rows and form fields: text input, checkbox, option cycler, and a
// checkbox-list multiselect.
package widget

import "charm.land/lipgloss/v2"

var (
	focusStyle = lipgloss.NewStyle().Background(lipgloss.Color("240"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

// TextInput is an editable text field.
type TextInput struct {
	value     string
	cursor    int
	maxLength int
}

func NewTextInput(value string, maxLength int) TextInput {
	if maxLength <= 0 {
		maxLength = 100
	}
	return TextInput{
		value:     value,
		cursor:    len(value),
		maxLength: maxLength,
	}
}

// HandleKey applies a key press; changed reports whether the value moved.
func (t TextInput) HandleKey(key string) (out TextInput, changed bool) {
	oldValue := t.value

	switch key {
	case "backspace":
		if t.cursor > 0 {
			t.value = t.value[:t.cursor-1] + t.value[t.cursor:]
			t.cursor--
		}
	case "delete":
		if t.cursor < len(t.value) {
			t.value = t.value[:t.cursor] + t.value[t.cursor+1:]
		}
	case "left":
		if t.cursor > 0 {
			t.cursor--
		}
	case "right":
		if t.cursor < len(t.value) {
			t.cursor++
		}
	case "home", "ctrl+a":
		t.cursor = 0
	case "end", "ctrl+e":
		t.cursor = len(t.value)
	default:
		if len(key) == 1 && len(t.value) < t.maxLength {
			t.value = t.value[:t.cursor] + key + t.value[t.cursor:]
			t.cursor++
		}
	}

	return t, t.value != oldValue
}

func (t TextInput) Value() string {
	return t.value
}

func (t TextInput) Render(focused bool) string {
	if !focused {
		return t.value
	}
	if t.cursor >= len(t.value) {
		return t.value + focusStyle.Render(" ")
	}
	return t.value[:t.cursor] + focusStyle.Render(string(t.value[t.cursor])) + t.value[t.cursor+1:]
}
