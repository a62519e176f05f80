package filter

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"atelier/auth"
	nt "atelier/entity"
	"atelier/message"
	"atelier/style"
	"atelier/widget"
)

// autoSearchDelay is the debounce window for the value-commit auto-search
// affordances; superseded ticks are dropped by generation.
const autoSearchDelay = 100 * time.Millisecond

type fieldType int

const (
	fieldSelector fieldType = iota
	fieldValue
	fieldDelete
)

// Panel displays a modal dialog of filter rows, one per active field.
type Panel struct {
	rows  *RowSet
	views map[string]rowView
	langs []nt.Language
	caps  auth.Capabilities

	selected int // which row
	col      fieldType
	seq      int // debounce generation

	width  int
	height int

	ctx    context.Context
	logger nt.Logger
}

// rowView holds the input widgets for one row; bound values live in the
// RowSet, widgets keep only cursor state.
type rowView struct {
	selector widget.Cycle
	text     widget.TextInput
	choice   widget.Cycle
	multi    widget.MultiSelect
	check    widget.Checkbox
}

func NewPanel(ctx context.Context, schema nt.Schema, langs []nt.Language, caps auth.Capabilities, lgr nt.Logger) Panel {
	pnl := Panel{
		rows:   NewRowSet(schema.Filters),
		views:  map[string]rowView{},
		langs:  langs,
		caps:   caps,
		ctx:    ctx,
		logger: lgr,
	}
	pnl.rebuild()
	return pnl
}

func (pnl Panel) Init() tea.Cmd {
	return nil
}

// Filters returns the current wire filter array; the owning screen mirrors
// it into the list store on search.
func (pnl Panel) Filters() []nt.WireFilter {
	return Build(pnl.ctx, pnl.rows, pnl.langs, pnl.caps, pnl.logger)
}

func (pnl Panel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	switch msg := msg.(type) {

	case SizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height

	case debounceMsg:
		if msg.seq == pnl.seq {
			return pnl, pnl.searchCmd()
		}

	case tea.KeyPressMsg:
		return pnl.handleKey(msg)
	}

	return pnl, nil
}

func (pnl Panel) handleKey(msg tea.KeyPressMsg) (Panel, tea.Cmd) {
	rows := pnl.rows.Rows()

	switch msg.String() {
	case "up":
		if pnl.selected > 0 {
			pnl.selected--
			pnl.col = fieldSelector
		}
		return pnl, nil

	case "down":
		if pnl.selected < len(rows)-1 {
			pnl.selected++
			pnl.col = fieldSelector
		}
		return pnl, nil

	case "tab":
		switch pnl.col {
		case fieldSelector:
			pnl.col = fieldValue
		case fieldValue:
			pnl.col = fieldDelete
		case fieldDelete:
			pnl.col = fieldSelector
		}
		return pnl, nil

	case "a":
		if pnl.rows.Add() {
			pnl.rebuild()
			pnl.selected = len(pnl.rows.Rows()) - 1
			pnl.col = fieldSelector
		}
		return pnl, nil

	case "d":
		// Removing a row is itself a search trigger.
		if pnl.col == fieldDelete && pnl.selected < len(rows) {
			pnl.rows.Remove(rows[pnl.selected].ID)
			pnl.rebuild()
			if pnl.selected >= len(pnl.rows.Rows()) {
				pnl.selected = len(pnl.rows.Rows()) - 1
			}
			return pnl, pnl.searchCmd()
		}
		return pnl, nil

	case "c":
		pnl.rows.ClearAll()
		pnl.rebuild()
		pnl.selected = 0
		pnl.col = fieldSelector
		return pnl, pnl.searchCmd()

	case "enter":
		if pnl.rows.AllDenied(pnl.caps) {
			return pnl, nil
		}
		return pnl, pnl.searchCmd()
	}

	if pnl.selected >= len(rows) {
		return pnl, nil
	}
	row := rows[pnl.selected]

	switch pnl.col {
	case fieldSelector:
		return pnl.handleSelectorKey(row, msg.String())
	case fieldValue:
		return pnl.handleValueKey(row, msg.String())
	}
	return pnl, nil
}

// handleSelectorKey rebinds the row's field; already-active fields are
// skipped so no two rows ever share one. Changing the field does not
// auto-search.
func (pnl Panel) handleSelectorKey(row Row, key string) (Panel, tea.Cmd) {
	view := pnl.views[row.ID]
	fields := pnl.rows.Fields()

	enabled := func(i int) bool {
		return fields[i].Field == row.Field || !pnl.rows.Active(fields[i].Field)
	}

	selector, changed := view.selector.HandleKey(key, enabled)
	if !changed {
		return pnl, nil
	}

	pnl.rows.ChangeField(row.ID, selector.Value())
	pnl.rebuild()
	return pnl, nil
}

// handleValueKey edits the row's value. Clearing a text field and any
// select/boolean commit auto-search after the debounce; multiselect waits
// for an explicit search.
func (pnl Panel) handleValueKey(row Row, key string) (Panel, tea.Cmd) {
	ff := pnl.rows.Field(row)
	if denied(ff, pnl.caps) {
		return pnl, nil
	}
	view := pnl.views[row.ID]

	switch ff.Kind {
	case nt.KindText:
		text, changed := view.text.HandleKey(key)
		if !changed {
			return pnl, nil
		}
		view.text = text
		pnl.views[row.ID] = view
		pnl.rows.SetValue(row.ID, text.Value())
		if strings.TrimSpace(text.Value()) == "" {
			return pnl, pnl.debounceCmd()
		}

	case nt.KindSelect:
		choice, changed := view.choice.HandleKey(key, nil)
		if !changed {
			return pnl, nil
		}
		view.choice = choice
		pnl.views[row.ID] = view
		pnl.rows.SetValue(row.ID, choice.Value())
		return pnl, pnl.debounceCmd()

	case nt.KindBool:
		check, changed := view.check.HandleKey(key)
		if !changed {
			return pnl, nil
		}
		view.check = check
		pnl.views[row.ID] = view
		pnl.rows.SetValue(row.ID, check.Value())
		return pnl, pnl.debounceCmd()

	case nt.KindMultiSelect:
		multi, changed := view.multi.HandleKey(key)
		if !changed {
			return pnl, nil
		}
		view.multi = multi
		pnl.views[row.ID] = view
		pnl.rows.SetValue(row.ID, multi.Values())
	}

	return pnl, nil
}

// Render returns the bordered dialog; the root model positions it.
func (pnl Panel) Render() string {
	var content strings.Builder
	content.WriteString("Filters:\n")

	for i, row := range pnl.rows.Rows() {
		ff := pnl.rows.Field(row)
		view := pnl.views[row.ID]
		isSelected := i == pnl.selected

		prefix := "  "
		if isSelected {
			prefix = "> "
		}

		selStr := view.selector.Render(isSelected && pnl.col == fieldSelector)

		var valStr string
		if denied(ff, pnl.caps) {
			valStr = style.MutedStyle.Render("no access to " + ff.Label)
		} else {
			valStr = pnl.renderValue(ff, view, isSelected && pnl.col == fieldValue)
		}

		delStr := "[del]"
		if isSelected && pnl.col == fieldDelete {
			delStr = style.HlCellStyle.Render(delStr)
		}

		content.WriteString(prefix + selStr + " " + valStr + " " + delStr + "\n")
	}

	var hints []string
	if pnl.rows.CanAdd() {
		hints = append(hints, "a: add")
	}
	if !pnl.rows.AllDenied(pnl.caps) {
		hints = append(hints, "enter: search")
	}
	hints = append(hints, "c: clear", "tab: field", "esc: close")
	content.WriteString("\n" + style.MutedStyle.Render(strings.Join(hints, "  ")))

	dialogStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 2).
		Width(70)

	return dialogStyle.Render(content.String())
}

// unexported

func (pnl Panel) renderValue(ff nt.FilterField, view rowView, focused bool) string {
	switch ff.Kind {
	case nt.KindSelect:
		return view.choice.Render(focused)
	case nt.KindBool:
		return view.check.Render(focused)
	case nt.KindMultiSelect:
		return view.multi.Render(focused)
	default:
		return view.text.Render(focused)
	}
}

// rebuild derives widgets from RowSet state after structural changes.
func (pnl *Panel) rebuild() {
	fields := pnl.rows.Fields()
	opts := make([]nt.Option, len(fields))
	for i, ff := range fields {
		opts[i] = nt.Option{Value: ff.Field, Label: ff.Label}
	}

	views := map[string]rowView{}
	for _, row := range pnl.rows.Rows() {
		ff := pnl.rows.Field(row)
		view := rowView{
			selector: widget.NewCycle(opts, ff.Field),
		}
		switch ff.Kind {
		case nt.KindSelect:
			str, _ := pnl.rows.Value(ff.Field).(string)
			view.choice = widget.NewCycle(ff.Options, str)
		case nt.KindBool:
			view.check = widget.NewCheckbox(pnl.rows.Value(ff.Field))
		case nt.KindMultiSelect:
			vals, _ := pnl.rows.Value(ff.Field).([]string)
			view.multi = widget.NewMultiSelect(ff.Options, vals)
		default:
			str, _ := pnl.rows.Value(ff.Field).(string)
			view.text = widget.NewTextInput(str, 60)
		}
		views[row.ID] = view
	}
	pnl.views = views
}

func (pnl Panel) searchCmd() tea.Cmd {
	return message.SearchCmd(pnl.Filters())
}

func (pnl *Panel) debounceCmd() tea.Cmd {
	pnl.seq++
	seq := pnl.seq
	return tea.Tick(autoSearchDelay, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}
