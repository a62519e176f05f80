package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"atelier/auth"
	nt "atelier/entity"
)

func catalogue() []nt.FilterField {
	return []nt.FilterField{
		{Field: nt.FieldName, Label: "Name", Kind: nt.KindText},
		{Field: "code", Label: "Code", Kind: nt.KindText},
		{Field: "type_code", Label: "Type", Kind: nt.KindSelect, Permission: "category_types:read", Exact: true,
			Options: []nt.Option{{Value: "technical", Label: "Technical"}}},
		{Field: nt.FieldLanguage, Label: "Language", Kind: nt.KindMultiSelect,
			Options: []nt.Option{{Value: "lang-en", Label: "English"}, {Value: "lang-fr", Label: "French"}}},
	}
}

func TestNewRowSetStartsWithDefaultRow(t *testing.T) {

	rs := NewRowSet(catalogue())

	rows := rs.Rows()
	assert.Len(t, rows, 1)
	assert.Equal(t, nt.FieldName, rows[0].Field)
	assert.Equal(t, "", rs.Value(nt.FieldName))
}

func TestAddActivatesFirstUnusedField(t *testing.T) {

	rs := NewRowSet(catalogue())

	assert.True(t, rs.Add())
	assert.Equal(t, "code", rs.Rows()[1].Field)

	assert.True(t, rs.Add())
	assert.True(t, rs.Add())
	assert.False(t, rs.CanAdd())
	assert.False(t, rs.Add())
	assert.Len(t, rs.Rows(), 4)
}

func TestChangeFieldRefusesDuplicate(t *testing.T) {

	rs := NewRowSet(catalogue())
	rs.Add()

	codeRow := rs.Rows()[1]
	rs.ChangeField(codeRow.ID, nt.FieldName)

	assert.Equal(t, "code", rs.Rows()[1].Field)
}

func TestChangeFieldResetsBothValues(t *testing.T) {

	rs := NewRowSet(catalogue())
	rs.Add()
	codeRow := rs.Rows()[1]
	rs.SetValue(codeRow.ID, "abc")

	rs.ChangeField(codeRow.ID, nt.FieldLanguage)

	assert.Equal(t, "", rs.Value("code"))
	assert.Equal(t, []string{}, rs.Value(nt.FieldLanguage))
}

func TestRemoveLastRowReinstatesDefault(t *testing.T) {

	rs := NewRowSet(catalogue())
	row := rs.Rows()[0]
	rs.ChangeField(row.ID, "code")
	rs.SetValue(row.ID, "abc")

	rs.Remove(row.ID)

	rows := rs.Rows()
	assert.Len(t, rows, 1)
	assert.Equal(t, nt.FieldName, rows[0].Field)
	assert.Equal(t, "", rs.Value(nt.FieldName))
	assert.Equal(t, "", rs.Value("code"))
}

func TestClearAllResetsToDefault(t *testing.T) {

	rs := NewRowSet(catalogue())
	rs.Add()
	rs.Add()
	rs.SetValue(rs.Rows()[1].ID, "abc")

	rs.ClearAll()

	assert.Len(t, rs.Rows(), 1)
	assert.Equal(t, nt.FieldName, rs.Rows()[0].Field)
	assert.Equal(t, "", rs.Value("code"))
}

func TestAllDenied(t *testing.T) {

	rs := NewRowSet(catalogue())
	row := rs.Rows()[0]
	rs.ChangeField(row.ID, "type_code")

	caps := auth.NewStatic(false, nil, nil)
	assert.True(t, rs.AllDenied(caps))

	rs.Add()
	assert.False(t, rs.AllDenied(caps))
}
