package table

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"atelier/auth"
	nt "atelier/entity"
	"atelier/message"
)

func testRecords(codes ...string) []nt.Record {
	records := make([]nt.Record, len(codes))
	for i, code := range codes {
		records[i] = nt.CategoryType{ID: "id-" + code, Code: code, Name: code}
	}
	return records
}

func testPanel() Panel {
	columns := []nt.Column{
		{Field: "code", Title: "Code", Width: 10},
		{Field: "name", Title: "Name", Width: 20},
	}
	return NewPanel(context.Background(), columns, nil, nil)
}

func TestNewPanelDropsHiddenAndDeniedColumns(t *testing.T) {

	columns := nt.CategorySchema(nil, nil).Columns
	caps := auth.NewStatic(false, nil, nil)

	pnl := NewPanel(context.Background(), columns, caps, nil)

	fields := []string{}
	for _, col := range pnl.columns {
		fields = append(fields, col.Field)
	}
	assert.Equal(t, []string{"code", "name"}, fields)
}

func TestNewPanelGatesAdminColumns(t *testing.T) {

	columns := []nt.Column{
		{Field: "id", Width: 10, Admin: true},
		{Field: "code", Width: 12},
	}

	pnl := NewPanel(context.Background(), columns, auth.NewStatic(false, nil, nil), nil)
	assert.Len(t, pnl.columns, 1)
	assert.Equal(t, "code", pnl.columns[0].Field)

	pnl = NewPanel(context.Background(), columns, auth.NewStatic(true, nil, nil), nil)
	assert.Len(t, pnl.columns, 2)
}

func TestPageMsgClampsSelection(t *testing.T) {

	pnl := testPanel()

	pnl, _ = pnl.Update(PageMsg{Rows: testRecords("a", "b", "c"), Page: nt.Page{Size: 3, Total: 3}})
	pnl, _ = pnl.Update(SelectMsg{Index: 2})
	assert.Equal(t, 2, pnl.SelectedIndex())

	pnl, cmd := pnl.Update(PageMsg{Rows: testRecords("a"), Page: nt.Page{Size: 3, Total: 1}})
	assert.Equal(t, 0, pnl.SelectedIndex())

	selected, ok := cmd().(message.SelectedMsg)
	assert.True(t, ok)
	assert.Equal(t, 1, selected.Row)
	assert.Equal(t, "id-a", selected.ID)
}

func TestSelectedRowIsGlobal(t *testing.T) {

	pnl := testPanel()

	pnl, _ = pnl.Update(PageMsg{Rows: testRecords("d", "e"), Page: nt.Page{Page: 2, Size: 2, Total: 6}})
	pnl, cmd := pnl.Update(SelectMsg{Index: 1})

	selected, ok := cmd().(message.SelectedMsg)
	assert.True(t, ok)
	assert.Equal(t, 6, selected.Row)
}

func TestSelectedOutOfBounds(t *testing.T) {

	pnl := testPanel()

	_, err := pnl.Selected()
	assert.Error(t, err)

	pnl, _ = pnl.Update(PageMsg{Rows: testRecords("a"), Page: nt.Page{Size: 3, Total: 1}})
	record, err := pnl.Selected()
	assert.NoError(t, err)
	assert.Equal(t, "id-a", record.RecordID())
}

func TestCycleSortWalksColumns(t *testing.T) {

	pnl := testPanel()

	// empty model, then each column ascending and descending
	expected := []nt.Sort{
		{Field: "code"},
		{Field: "code", Desc: true},
		{Field: "name"},
		{Field: "name", Desc: true},
	}
	var cmd tea.Cmd
	for _, want := range expected {
		pnl, cmd = pnl.cycleSort()
		assert.Equal(t, []nt.Sort{want}, pnl.Sorts())

		sortMsg, ok := cmd().(message.SortMsg)
		assert.True(t, ok)
		assert.Equal(t, []nt.Sort{want}, sortMsg.Sorts)
	}

	// past the last column the model empties for the server default
	pnl, cmd = pnl.cycleSort()
	assert.Empty(t, pnl.Sorts())

	sortMsg := cmd().(message.SortMsg)
	assert.Empty(t, sortMsg.Sorts)
}

func TestTruncateByDisplayWidth(t *testing.T) {

	assert.Equal(t, "café", truncate("café", 10))

	// accented text must not be cut mid-rune
	out := truncate("Prévisualisation", 8)
	assert.True(t, utf8.ValidString(out))
	assert.True(t, strings.HasPrefix(out, "Prévisu"))
	assert.Contains(t, out, "…")
}
