package form

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	nt "atelier/entity"
	"atelier/rest"
	"atelier/style"
	"atelier/widget"
)

// checkDelay is the debounce window for the natural-key uniqueness check.
const checkDelay = 500 * time.Millisecond

// closeDelay keeps the modal open long enough to show a network warning
// before the optimistic close-and-refresh.
const closeDelay = 1500 * time.Millisecond

// slot identifies one focusable input.
type slot struct {
	field string // scalar field name, empty for text slots
	lang  string // language id for text slots
	desc  bool   // description rather than name
}

// Panel is the create/edit/delete modal.
type Panel struct {
	form  *Form
	langs []nt.Language

	slots   []slot
	focused int

	texts   map[string]widget.TextInput // keyed by slot key
	choices map[string]widget.Cycle
	checks  map[string]widget.Checkbox

	seq     int // uniqueness check generation
	closing bool

	width  int
	height int

	ctx    context.Context
	logger nt.Logger
}

func NewPanel(ctx context.Context, frm *Form, langs []nt.Language, lgr nt.Logger) Panel {
	pnl := Panel{
		form:    frm,
		langs:   langs,
		texts:   map[string]widget.TextInput{},
		choices: map[string]widget.Cycle{},
		checks:  map[string]widget.Checkbox{},
		ctx:     ctx,
		logger:  lgr,
	}
	pnl.rebuild()
	return pnl
}

func (pnl Panel) Init() tea.Cmd {
	return nil
}

func (pnl Panel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	switch msg := msg.(type) {

	case SizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height

	case checkTickMsg:
		if msg.seq != pnl.seq {
			return pnl, nil
		}
		code := pnl.codeValue()
		if code == "" {
			return pnl, nil
		}
		return pnl, func() tea.Msg {
			return CheckCodeMsg{Code: code, ExcludeID: pnl.form.RecordID()}
		}

	case CheckedMsg:
		// A response for anything but the current value is stale.
		if msg.Code != pnl.codeValue() {
			return pnl, nil
		}
		pnl.form.SetConflict(msg.Exists)

	case SubmittedMsg:
		return pnl.handleSubmitted(msg.Err)

	case closeDelayMsg:
		return pnl, pnl.cancelCmd()

	case tea.KeyPressMsg:
		if pnl.closing {
			return pnl, nil
		}
		return pnl.handleKey(msg)
	}

	return pnl, nil
}

// handleSubmitted folds the mutation outcome into the modal: success
// closes, a network-class failure warns and still closes after a delay,
// everything else keeps the modal open for correction.
func (pnl Panel) handleSubmitted(err error) (Panel, tea.Cmd) {
	if err == nil {
		return pnl, pnl.cancelCmd()
	}

	flt := rest.Classify(err)
	pnl.form.ApplyFault(flt)
	if CloseAnyway(flt) {
		pnl.closing = true
		return pnl, tea.Tick(closeDelay, func(time.Time) tea.Msg {
			return closeDelayMsg{}
		})
	}
	return pnl, nil
}

func (pnl Panel) handleKey(msg tea.KeyPressMsg) (Panel, tea.Cmd) {
	switch msg.String() {

	case "esc":
		return pnl, pnl.cancelCmd()

	case "enter":
		if pnl.form.Mode() == Delete {
			return pnl, pnl.submitCmd()
		}
		if !pnl.form.Validate() {
			return pnl, nil
		}
		return pnl, pnl.submitCmd()

	case "tab", "down":
		if pnl.focused < len(pnl.slots)-1 {
			pnl.focused++
		}
		return pnl, nil

	case "shift+tab", "up":
		if pnl.focused > 0 {
			pnl.focused--
		}
		return pnl, nil

	case "ctrl+l":
		if pnl.form.Mode() != Delete && pnl.form.AddLanguage(pnl.langs) {
			pnl.rebuild()
		}
		return pnl, nil

	case "ctrl+d":
		if sl, ok := pnl.slot(); ok && sl.lang != "" {
			pnl.form.RemoveLanguage(sl.lang)
			pnl.rebuild()
			if pnl.focused >= len(pnl.slots) {
				pnl.focused = len(pnl.slots) - 1
			}
		}
		return pnl, nil
	}

	if pnl.form.Mode() == Delete {
		return pnl, nil
	}
	return pnl.handleInputKey(msg.String())
}

func (pnl Panel) handleInputKey(key string) (Panel, tea.Cmd) {
	sl, ok := pnl.slot()
	if !ok {
		return pnl, nil
	}
	slotKey := sl.key()

	if sl.lang != "" {
		text, changed := pnl.texts[slotKey].HandleKey(key)
		if !changed {
			return pnl, nil
		}
		pnl.texts[slotKey] = text
		pnl.applyText(sl.lang)
		return pnl, nil
	}

	field, ok := pnl.formField(sl.field)
	if !ok {
		return pnl, nil
	}

	switch field.Kind {
	case nt.KindSelect:
		choice, changed := pnl.choices[slotKey].HandleKey(key, nil)
		if !changed {
			return pnl, nil
		}
		pnl.choices[slotKey] = choice
		pnl.form.SetValue(field.Name, choice.Value())

	case nt.KindBool:
		check, changed := pnl.checks[slotKey].HandleKey(key)
		if !changed {
			return pnl, nil
		}
		pnl.checks[slotKey] = check
		checked, _ := check.Value().(bool)
		pnl.form.SetValue(field.Name, checked)

	default:
		text, changed := pnl.texts[slotKey].HandleKey(key)
		if !changed {
			return pnl, nil
		}
		pnl.texts[slotKey] = text
		pnl.form.SetValue(field.Name, text.Value())
		if field.Unique {
			return pnl, pnl.checkCmd()
		}
	}

	return pnl, nil
}

// Render returns the bordered dialog; the root model positions it.
func (pnl Panel) Render() string {
	var content strings.Builder

	frm := pnl.form
	switch frm.Mode() {
	case Create:
		content.WriteString("New " + frm.schema.Name + "\n\n")
	case Edit:
		content.WriteString("Edit " + frm.schema.Name + "\n\n")
	case Delete:
		content.WriteString("Delete " + frm.schema.Name + "?\n\n")
	}

	if frm.Mode() == Delete {
		for _, field := range frm.schema.Form {
			str, _ := frm.Value(field.Name).(string)
			content.WriteString("  " + field.Label + ": " + str + "\n")
		}
		content.WriteString("\n" + style.MutedStyle.Render("enter: delete  esc: cancel"))
	} else {
		pnl.renderFields(&content)
		hints := "enter: save  tab: next  ctrl+l: add language  ctrl+d: drop language  esc: cancel"
		content.WriteString("\n" + style.MutedStyle.Render(hints))
	}

	if frm.Warning() != "" {
		content.WriteString("\n" + style.WarnStyle.Render(frm.Warning()))
	}

	dialogStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 2).
		Width(70)

	return dialogStyle.Render(content.String())
}

// unexported

func (sl slot) key() string {
	if sl.lang != "" {
		if sl.desc {
			return "desc:" + sl.lang
		}
		return "name:" + sl.lang
	}
	return "field:" + sl.field
}

func (pnl Panel) slot() (slot, bool) {
	if pnl.focused < 0 || pnl.focused >= len(pnl.slots) {
		return slot{}, false
	}
	return pnl.slots[pnl.focused], true
}

func (pnl Panel) formField(name string) (nt.FormField, bool) {
	for _, field := range pnl.form.schema.Form {
		if field.Name == name {
			return field, true
		}
	}
	return nt.FormField{}, false
}

func (pnl Panel) codeValue() string {
	for _, field := range pnl.form.schema.Form {
		if field.Unique {
			str, _ := pnl.form.Value(field.Name).(string)
			return strings.TrimSpace(str)
		}
	}
	return ""
}

// applyText pushes the current name/description widgets for a language
// into the form.
func (pnl Panel) applyText(lang string) {
	name := pnl.texts["name:"+lang].Value()
	desc := pnl.texts["desc:"+lang].Value()
	pnl.form.SetText(lang, name, desc)
}

// rebuild derives slots and widgets from form state after structural
// changes (mode, add/remove language).
func (pnl *Panel) rebuild() {
	frm := pnl.form

	slots := []slot{}
	for _, field := range frm.schema.Form {
		slots = append(slots, slot{field: field.Name})

		key := "field:" + field.Name
		switch field.Kind {
		case nt.KindSelect:
			str, _ := frm.Value(field.Name).(string)
			pnl.choices[key] = widget.NewCycle(field.Options, str)
		case nt.KindBool:
			pnl.checks[key] = widget.NewCheckbox(frm.Value(field.Name))
		default:
			str, _ := frm.Value(field.Name).(string)
			pnl.texts[key] = widget.NewTextInput(str, 60)
		}
	}

	for _, txt := range frm.Texts() {
		slots = append(slots,
			slot{lang: txt.LanguageID},
			slot{lang: txt.LanguageID, desc: true},
		)
		pnl.texts["name:"+txt.LanguageID] = widget.NewTextInput(txt.Name, 60)
		pnl.texts["desc:"+txt.LanguageID] = widget.NewTextInput(txt.Description, 120)
	}

	pnl.slots = slots
	if pnl.focused >= len(slots) {
		pnl.focused = 0
	}
}

func (pnl Panel) renderFields(content *strings.Builder) {
	errs := pnl.form.Errors()

	for i, sl := range pnl.slots {
		focused := i == pnl.focused
		prefix := "  "
		if focused {
			prefix = "> "
		}

		var label, value, errKey string
		if sl.lang != "" {
			lang := pnl.language(sl.lang)
			if sl.desc {
				label = lang + " description"
			} else {
				label = lang + " name"
			}
			value = pnl.texts[sl.key()].Render(focused)
			errKey = "texts:" + sl.lang
		} else {
			field, _ := pnl.formField(sl.field)
			label = field.Label
			errKey = field.Name
			switch field.Kind {
			case nt.KindSelect:
				value = pnl.choices[sl.key()].Render(focused)
			case nt.KindBool:
				value = pnl.checks[sl.key()].Render(focused)
			default:
				value = pnl.texts[sl.key()].Render(focused)
			}
		}

		content.WriteString(prefix + label + ": " + value)
		if msg, ok := errs[errKey]; ok && (sl.lang == "" || !sl.desc) {
			content.WriteString("  " + style.WarnStyle.Render(msg))
		}
		content.WriteString("\n")
	}
}

func (pnl Panel) language(id string) string {
	for _, lang := range pnl.langs {
		if lang.ID == id {
			return lang.Name
		}
	}
	return id
}

func (pnl Panel) submitCmd() tea.Cmd {
	msg := SubmitMsg{
		Mode:    pnl.form.Mode(),
		ID:      pnl.form.RecordID(),
		Payload: pnl.form.Payload(),
	}
	return func() tea.Msg {
		return msg
	}
}

func (pnl Panel) cancelCmd() tea.Cmd {
	return func() tea.Msg {
		return CancelMsg{}
	}
}

func (pnl *Panel) checkCmd() tea.Cmd {
	pnl.seq++
	seq := pnl.seq
	return tea.Tick(checkDelay, func(time.Time) tea.Msg {
		return checkTickMsg{seq: seq}
	})
}
