// Package table renders one server-side page of records and owns grid
// navigation, pagination requests, and the sort model.
package table

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	lgtable "charm.land/lipgloss/v2/table"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"atelier/auth"
	nt "atelier/entity"
	"atelier/message"
	"atelier/style"
)

const headerHeight = 2

// Panel handles the grid display and navigation state. Pagination here is
// 0-indexed; the list store translates for the wire.
type Panel struct {
	columns []nt.Column
	rows    []nt.Record
	page    nt.Page
	sorts   []nt.Sort

	selected int // index within the current page
	loading  bool

	width  int
	height int

	table *lgtable.Table

	ctx    context.Context
	logger nt.Logger
}

// NewPanel drops permission-denied columns up front; a denied column is
// absent, not an error.
func NewPanel(ctx context.Context, columns []nt.Column, caps auth.Capabilities, lgr nt.Logger) Panel {

	visible := []nt.Column{}
	for _, col := range columns {
		if col.Hidden {
			continue
		}
		if col.Admin && caps != nil && !caps.IsSystemAdmin() {
			continue
		}
		if col.Permission != "" && caps != nil && !caps.Has(col.Permission) {
			continue
		}
		visible = append(visible, col)
	}

	lgt := lgtable.New()
	style.StyleTable(lgt)

	pnl := Panel{
		columns: visible,
		table:   lgt,
		ctx:     ctx,
		logger:  lgr,
	}
	pnl.setHeaders()
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

	case LoadingMsg:
		pnl.loading = true

	case PageMsg:
		pnl.loading = false
		pnl.rows = msg.Rows
		pnl.page = msg.Page
		if pnl.selected >= len(pnl.rows) {
			pnl.selected = len(pnl.rows) - 1
		}
		if pnl.selected < 0 {
			pnl.selected = 0
		}
		return pnl, pnl.selectedCmd()

	case ResetMsg:
		pnl.selected = 0

	case SelectMsg:
		if msg.Index >= 0 && msg.Index < len(pnl.rows) {
			pnl.selected = msg.Index
			return pnl, pnl.selectedCmd()
		}

	case tea.KeyPressMsg:
		return pnl.handleKey(msg)
	}

	return pnl, nil
}

func (pnl Panel) handleKey(msg tea.KeyPressMsg) (Panel, tea.Cmd) {
	switch msg.String() {

	case "up", "k":
		if pnl.selected > 0 {
			pnl.selected--
			return pnl, pnl.selectedCmd()
		}

	case "down", "j":
		if pnl.selected < len(pnl.rows)-1 {
			pnl.selected++
			return pnl, pnl.selectedCmd()
		}

	case "g":
		pnl.selected = 0
		return pnl, pnl.selectedCmd()

	case "G":
		if len(pnl.rows) > 0 {
			pnl.selected = len(pnl.rows) - 1
			return pnl, pnl.selectedCmd()
		}

	case "pgup", "ctrl+u", "left", "h":
		if pnl.page.Page > 0 {
			return pnl, message.GetPageCmd(pnl.page.Page - 1)
		}

	case "pgdown", "ctrl+d", "right", "l":
		if pnl.page.Page < pnl.page.Pages()-1 {
			return pnl, message.GetPageCmd(pnl.page.Page + 1)
		}

	case "o":
		return pnl.cycleSort()
	}

	return pnl, nil
}

// cycleSort walks field-by-field through the visible columns, ascending
// then descending, then back to the server default (empty model).
func (pnl Panel) cycleSort() (Panel, tea.Cmd) {
	if len(pnl.columns) == 0 {
		return pnl, nil
	}

	next := []nt.Sort{}
	if len(pnl.sorts) == 0 {
		next = []nt.Sort{{Field: pnl.columns[0].Field}}
	} else {
		cur := pnl.sorts[0]
		if !cur.Desc {
			next = []nt.Sort{{Field: cur.Field, Desc: true}}
		} else {
			idx := pnl.columnIndex(cur.Field)
			if idx >= 0 && idx < len(pnl.columns)-1 {
				next = []nt.Sort{{Field: pnl.columns[idx+1].Field}}
			}
			// Past the last column the model goes empty and the
			// store falls back to the schema default.
		}
	}

	pnl.sorts = next
	sorts := next
	return pnl, func() tea.Msg {
		return message.SortMsg{Sorts: sorts}
	}
}

// Render returns the grid as a string for the root model's screen layer.
func (pnl Panel) Render() string {
	if pnl.loading {
		return style.MutedStyle.Render("Loading...")
	}

	pnl.table.StyleFunc(style.RowStyler(pnl.selected))
	pnl.setHeaders()

	pnl.table.ClearRows()
	for _, record := range pnl.rows {
		row := make([]string, len(pnl.columns))
		for i, col := range pnl.columns {
			row[i] = truncate(record.Cell(col.Field), col.Width)
		}
		pnl.table.Row(row...)
	}

	return pnl.table.Render()
}

// Selected returns the selected record on the current page.
func (pnl Panel) Selected() (record nt.Record, err error) {
	if len(pnl.rows) == 0 || pnl.selected >= len(pnl.rows) {
		err = errors.Errorf("selection %d out of bounds of %d rows", pnl.selected, len(pnl.rows))
		return
	}
	return pnl.rows[pnl.selected], nil
}

// SelectedIndex returns the selection's index within the page.
func (pnl Panel) SelectedIndex() int {
	return pnl.selected
}

// Rows returns the current page of records.
func (pnl Panel) Rows() []nt.Record {
	return pnl.rows
}

// Page returns the current pagination.
func (pnl Panel) Page() nt.Page {
	return pnl.page
}

// Sorts returns the current sort model.
func (pnl Panel) Sorts() []nt.Sort {
	return pnl.sorts
}

// PageSize returns the number of rows that fit on the panel.
func (pnl Panel) PageSize() int {
	return pnl.height - headerHeight
}

// unexported

func (pnl Panel) selectedCmd() tea.Cmd {
	record, err := pnl.Selected()
	if err != nil {
		return nil
	}

	row := pnl.page.Page*pnl.page.Size + pnl.selected + 1 // 1-indexed for display
	return func() tea.Msg {
		return message.SelectedMsg{Row: row, ID: record.RecordID()}
	}
}

func (pnl Panel) columnIndex(field string) int {
	for i, col := range pnl.columns {
		if col.Field == field {
			return i
		}
	}
	return -1
}

func (pnl Panel) setHeaders() {
	headers := make([]string, len(pnl.columns))
	for i, col := range pnl.columns {
		title := col.Title
		if title == "" {
			title = col.Field
		}
		if len(pnl.sorts) > 0 && pnl.sorts[0].Field == col.Field {
			if pnl.sorts[0].Desc {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		headers[i] = fmt.Sprintf("%-*s", col.Width+1, title)
	}
	pnl.table.Headers(headers...)
}

// truncate shortens by display width so multibyte text is never cut
// mid-rune.
func truncate(in string, width int) string {
	if runewidth.StringWidth(in) <= width {
		return in
	}
	return runewidth.Truncate(in, width-1, "") + style.MutedStyle.Render("…")
}
