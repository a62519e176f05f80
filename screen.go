package atelier

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"atelier/auth"
	nt "atelier/entity"
	"atelier/filter"
	"atelier/form"
	"atelier/inspect"
	"atelier/message"
	"atelier/rest"
	"atelier/store"
	"atelier/style"
	"atelier/table"
)

// Modal indicates which dialog is open over the grid.
type Modal int

const (
	ModalNone Modal = iota
	ModalFilter
	ModalForm
	ModalInspect
)

// screenModel is implemented by the per-entity screens; it hides their
// record type from the root model.
type screenModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screenModel, tea.Cmd)
	Render() string
	ModalRender() (dialog string, open bool)
	Title() string
	Position() (current, total int)
}

// screen wires one entity's grid, filter dialog, form, and record view to
// its list store.
type screen[T nt.Record] struct {
	schema nt.Schema
	store  *store.Store[T]

	table   table.Panel
	filter  filter.Panel
	form    form.Panel
	hasForm bool
	inspect inspect.Panel
	modal   Modal

	langs    []nt.Language
	caps     auth.Capabilities
	seed     func(T) (values map[string]any, texts []nt.Text)
	selected int // 1-indexed across all pages, for the footer

	ctx    context.Context
	logger nt.Logger
}

func newScreen[T nt.Record](ctx context.Context, schema nt.Schema, clt *rest.Client, caps auth.Capabilities, langs []nt.Language, lgr nt.Logger, pageSize int, seed func(T) (map[string]any, []nt.Text)) *screen[T] {

	return &screen[T]{
		schema:  schema,
		store:   store.New[T](schema, clt, caps, lgr, pageSize),
		table:   table.NewPanel(ctx, schema.Columns, caps, lgr),
		filter:  filter.NewPanel(ctx, schema, langs, caps, lgr),
		inspect: inspect.NewPanel(),
		langs:   langs,
		caps:    caps,
		seed:    seed,
		ctx:     ctx,
		logger:  lgr,
	}
}

func (scr *screen[T]) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return table.LoadingMsg{} },
		scr.fetchCmd(func(ctx context.Context) error { return scr.store.SetPage(ctx, 0) }),
	)
}

func (scr *screen[T]) Title() string {
	return scr.schema.Title
}

func (scr *screen[T]) Position() (current, total int) {
	return scr.selected, scr.store.Page().Total
}

func (scr *screen[T]) Update(msg tea.Msg) (screenModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		var cmds []tea.Cmd
		scr.table, cmd = scr.table.Update(table.SizeMsg{Width: msg.Width, Height: msg.Height})
		cmds = append(cmds, cmd)
		scr.filter, cmd = scr.filter.Update(filter.SizeMsg{Width: msg.Width, Height: msg.Height})
		cmds = append(cmds, cmd)
		scr.inspect, cmd = scr.inspect.Update(inspect.SizeMsg{Width: msg.Width, Height: msg.Height})
		cmds = append(cmds, cmd)
		if scr.hasForm {
			scr.form, cmd = scr.form.Update(form.SizeMsg{Width: msg.Width, Height: msg.Height})
			cmds = append(cmds, cmd)
		}
		return scr, tea.Batch(cmds...)

	case message.SearchMsg:
		filters := msg.Filters
		return scr, tea.Batch(
			func() tea.Msg { return table.LoadingMsg{} },
			func() tea.Msg { return table.ResetMsg{} },
			scr.fetchCmd(func(ctx context.Context) error { return scr.store.Search(ctx, filters) }),
		)

	case message.GetPageMsg:
		page := msg.Page
		if page < 0 {
			return scr, nil
		}
		if pages := scr.store.Page().Pages(); pages > 0 && page >= pages {
			return scr, nil
		}
		return scr, tea.Batch(
			func() tea.Msg { return table.LoadingMsg{} },
			scr.fetchCmd(func(ctx context.Context) error { return scr.store.SetPage(ctx, page) }),
		)

	case message.SortMsg:
		sorts := msg.Sorts
		return scr, scr.fetchCmd(func(ctx context.Context) error { return scr.store.SetSort(ctx, sorts) })

	case message.RefetchMsg:
		return scr, scr.fetchCmd(scr.store.Refetch)

	case message.SelectedMsg:
		scr.selected = msg.Row
		return scr, nil

	case form.FormMsg:
		return scr.updateForm(msg)

	case filter.FilterMsg:
		scr.filter, cmd = scr.filter.Update(msg)
		return scr, cmd

	case table.TableMsg:
		scr.table, cmd = scr.table.Update(msg)
		return scr, cmd

	case inspect.InspectMsg:
		scr.inspect, cmd = scr.inspect.Update(msg)
		return scr, cmd

	case tea.KeyPressMsg:
		return scr.handleKey(msg)
	}

	return scr, nil
}

func (scr *screen[T]) Render() string {
	if scr.store.AccessDenied() {
		denied := style.ErrStyle.Render(scr.store.Message())
		hint := style.MutedStyle.Render("ctrl+r: retry after an access change")
		return denied + "\n" + hint
	}
	return scr.table.Render()
}

func (scr *screen[T]) ModalRender() (dialog string, open bool) {
	switch scr.modal {
	case ModalFilter:
		return scr.filter.Render(), true
	case ModalForm:
		if scr.hasForm {
			return scr.form.Render(), true
		}
	case ModalInspect:
		return scr.inspect.Render(), true
	}
	return "", false
}

// unexported

// updateForm routes form traffic: the lifecycle messages land here, the
// rest goes to the panel.
func (scr *screen[T]) updateForm(msg form.FormMsg) (screenModel, tea.Cmd) {

	switch msg := msg.(type) {

	case form.SubmitMsg:
		return scr, scr.mutateCmd(msg)

	case form.CheckCodeMsg:
		return scr, scr.checkCodeCmd(msg)

	case form.CancelMsg:
		scr.modal = ModalNone
		scr.hasForm = false
		return scr, nil
	}

	if !scr.hasForm {
		return scr, nil
	}
	var cmd tea.Cmd
	scr.form, cmd = scr.form.Update(msg)
	return scr, cmd
}

func (scr *screen[T]) handleKey(msg tea.KeyPressMsg) (screenModel, tea.Cmd) {
	var cmd tea.Cmd

	switch scr.modal {

	case ModalFilter:
		switch msg.String() {
		case "esc":
			scr.modal = ModalNone
			return scr, nil
		case "enter":
			scr.filter, cmd = scr.filter.Update(msg)
			scr.modal = ModalNone
			return scr, cmd
		}
		scr.filter, cmd = scr.filter.Update(msg)
		return scr, cmd

	case ModalForm:
		scr.form, cmd = scr.form.Update(msg)
		return scr, cmd

	case ModalInspect:
		if msg.String() == "esc" {
			scr.modal = ModalNone
			return scr, nil
		}
		scr.inspect, cmd = scr.inspect.Update(msg)
		return scr, cmd
	}

	switch msg.String() {

	case "f", "/":
		scr.modal = ModalFilter
		return scr, nil

	case "n":
		return scr.openCreate()

	case "e":
		return scr.openEdit(form.Edit)

	case "x":
		return scr.openEdit(form.Delete)

	case "enter", "i":
		return scr.openInspect()

	case "r":
		return scr, tea.Batch(
			func() tea.Msg { return table.LoadingMsg{} },
			scr.fetchCmd(scr.store.Refetch),
		)

	case "ctrl+r":
		return scr, scr.fetchCmd(scr.store.Regrant)

	case "shift+up":
		return scr.moveSelected(-1)

	case "shift+down":
		return scr.moveSelected(1)
	}

	scr.table, cmd = scr.table.Update(msg)
	return scr, cmd
}

func (scr *screen[T]) openCreate() (screenModel, tea.Cmd) {
	if !scr.canWrite() {
		return scr, message.StatusCmd("you do not have access to change " + scr.schema.Title)
	}

	scr.form = form.NewPanel(scr.ctx, form.NewCreate(scr.schema), scr.langs, scr.logger)
	scr.hasForm = true
	scr.modal = ModalForm
	return scr, nil
}

func (scr *screen[T]) openEdit(mode form.Mode) (screenModel, tea.Cmd) {
	if !scr.canWrite() {
		return scr, message.StatusCmd("you do not have access to change " + scr.schema.Title)
	}

	rows := scr.store.Rows()
	idx := scr.table.SelectedIndex()
	if idx < 0 || idx >= len(rows) {
		return scr, message.StatusCmd("no row selected")
	}
	row := rows[idx]

	values, texts := scr.seed(row)
	var frm *form.Form
	if mode == form.Delete {
		frm = form.NewDelete(scr.schema, row.RecordID(), values)
	} else {
		frm = form.NewEdit(scr.schema, row.RecordID(), values, texts)
	}

	scr.form = form.NewPanel(scr.ctx, frm, scr.langs, scr.logger)
	scr.hasForm = true
	scr.modal = ModalForm
	return scr, nil
}

func (scr *screen[T]) openInspect() (screenModel, tea.Cmd) {
	record, err := scr.table.Selected()
	if err != nil {
		return scr, nil
	}

	scr.modal = ModalInspect
	var cmd tea.Cmd
	scr.inspect, cmd = scr.inspect.Update(inspect.RecordMsg{Record: record})
	return scr, cmd
}

// moveSelected swaps the selected row with its neighbor and persists the
// new order; only position-ordered entities reorder.
func (scr *screen[T]) moveSelected(delta int) (screenModel, tea.Cmd) {
	if scr.schema.DefaultSort != "position" {
		return scr, nil
	}
	if !scr.canWrite() {
		return scr, message.StatusCmd("you do not have access to change " + scr.schema.Title)
	}

	from := scr.table.SelectedIndex()
	to := from + delta
	moved, ok := store.MoveRow(scr.store.Rows(), from, to)
	if !ok {
		return scr, nil
	}

	return scr, scr.reorderCmd(moved, to)
}

func (scr *screen[T]) canWrite() bool {
	return scr.caps.Has(scr.schema.Module + ":write")
}

func (scr *screen[T]) fetchCmd(op func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		err := op(scr.ctx)
		if err != nil {
			return scr.failMsg()
		}
		return scr.pageMsg()
	}
}

func (scr *screen[T]) mutateCmd(msg form.SubmitMsg) tea.Cmd {
	return func() tea.Msg {
		var err error
		switch msg.Mode {
		case form.Edit:
			err = scr.store.Update(scr.ctx, msg.ID, msg.Payload)
		case form.Delete:
			err = scr.store.Delete(scr.ctx, msg.ID)
		default:
			err = scr.store.Create(scr.ctx, msg.Payload)
		}

		if err != nil {
			flt := rest.Classify(err)
			if flt.Kind == rest.Auth {
				return message.LogoutMsg{}
			}
			if form.CloseAnyway(flt) {
				// The mutation may have landed; show the server's truth
				// once the warning clears.
				return tea.Batch(
					func() tea.Msg { return form.SubmittedMsg{Err: flt} },
					scr.fetchCmd(scr.store.Refetch),
				)()
			}
			return form.SubmittedMsg{Err: flt}
		}

		return tea.Batch(
			func() tea.Msg { return form.SubmittedMsg{} },
			func() tea.Msg { return scr.pageMsg() },
		)()
	}
}

func (scr *screen[T]) checkCodeCmd(msg form.CheckCodeMsg) tea.Cmd {
	code := msg.Code
	excludeID := msg.ExcludeID
	return func() tea.Msg {
		exists := scr.store.CheckCode(scr.ctx, code, excludeID)
		return form.CheckedMsg{Code: code, Exists: exists}
	}
}

func (scr *screen[T]) reorderCmd(moved []T, to int) tea.Cmd {
	return func() tea.Msg {
		err := scr.store.BeginReorder(moved)
		if err != nil {
			return message.ErrorCmd(err)()
		}

		err = scr.store.PersistReorder(scr.ctx)
		scr.store.AckReorder()
		if err != nil {
			return scr.failMsg()
		}

		return tea.Batch(
			func() tea.Msg { return scr.pageMsg() },
			func() tea.Msg { return table.SelectMsg{Index: to} },
		)()
	}
}

// pageMsg snapshots the store for the grid.
func (scr *screen[T]) pageMsg() tea.Msg {

	rows := scr.store.Rows()
	records := make([]nt.Record, len(rows))
	for i, row := range rows {
		records[i] = row
	}

	return table.PageMsg{Rows: records, Page: scr.store.Page()}
}

// failMsg surfaces a store failure; auth failures end the session, the
// rest show the store's message and refresh the grid from whatever state
// the store settled on.
func (scr *screen[T]) failMsg() tea.Msg {

	flt := scr.store.Fault()
	if flt != nil && flt.Kind == rest.Auth {
		return message.LogoutMsg{}
	}

	return tea.Batch(
		message.StatusCmd(scr.store.Message()),
		func() tea.Msg { return scr.pageMsg() },
	)()
}
