// Package filter is the filter controller: a small catalogue of filterable
// fields per entity, the active rows editing them, and the translation of
// row values into the wire-level filter array.
package filter

import (
	"github.com/google/uuid"

	"atelier/auth"
	nt "atelier/entity"
)

// Row pairs a locally-unique id with the field it currently edits.
type Row struct {
	ID    string
	Field string
}

// RowSet is the model behind the filter panel: active rows, their stored
// values, and the invariant that no two rows reference the same field.
type RowSet struct {
	fields []nt.FilterField
	rows   []Row
	values map[string]any
}

// NewRowSet starts with a single default row, the catalogue's first field,
// holding an empty value.
func NewRowSet(fields []nt.FilterField) *RowSet {
	rs := &RowSet{
		fields: fields,
		values: map[string]any{},
	}
	rs.reinstateDefault()
	return rs
}

// Rows returns the active rows in display order.
func (rs *RowSet) Rows() []Row {
	return rs.rows
}

// Fields returns the full catalogue.
func (rs *RowSet) Fields() []nt.FilterField {
	return rs.fields
}

// Field returns the catalogue entry a row is bound to.
func (rs *RowSet) Field(row Row) nt.FilterField {
	ff, _ := rs.lookup(row.Field)
	return ff
}

// Value returns the stored value for a field, or its typed empty value.
func (rs *RowSet) Value(field string) any {
	val, ok := rs.values[field]
	if ok {
		return val
	}
	ff, _ := rs.lookup(field)
	return ff.EmptyValue()
}

// Active reports whether a field already has a row.
func (rs *RowSet) Active(field string) bool {
	for _, row := range rs.rows {
		if row.Field == field {
			return true
		}
	}
	return false
}

// CanAdd reports whether any catalogue field is still without a row.
func (rs *RowSet) CanAdd() bool {
	return len(rs.rows) < len(rs.fields)
}

// Add activates the first field without a row. Silent no-op when every
// field is taken; the panel disables the action in that state.
func (rs *RowSet) Add() (added bool) {
	for _, ff := range rs.fields {
		if rs.Active(ff.Field) {
			continue
		}
		rs.rows = append(rs.rows, Row{ID: uuid.NewString(), Field: ff.Field})
		rs.values[ff.Field] = ff.EmptyValue()
		return true
	}
	return false
}

// Remove drops a row and clears its value. Removing the last row reinstates
// the single default row with an empty value. Removal is itself a search
// trigger, so the caller must re-submit with the remaining filters.
func (rs *RowSet) Remove(id string) {
	for i, row := range rs.rows {
		if row.ID != id {
			continue
		}
		delete(rs.values, row.Field)
		rs.rows = append(rs.rows[:i], rs.rows[i+1:]...)
		break
	}

	if len(rs.rows) == 0 {
		rs.reinstateDefault()
	}
}

// ChangeField rebinds a row to another field, resetting the stored values of
// both the old and the new field to their typed empty values. No-op when the
// target field already has a row; the panel disables duplicate choices, and
// the model holds the invariant regardless.
func (rs *RowSet) ChangeField(id, field string) {
	if rs.Active(field) {
		return
	}
	ff, ok := rs.lookup(field)
	if !ok {
		return
	}

	for i, row := range rs.rows {
		if row.ID != id {
			continue
		}
		// Old field's value resets to its typed empty value; Value()
		// reports exactly that for unstored fields.
		delete(rs.values, row.Field)

		rs.rows[i].Field = field
		rs.values[field] = ff.EmptyValue()
		return
	}
}

// SetValue stores the raw value for a row's field.
func (rs *RowSet) SetValue(id string, value any) {
	for _, row := range rs.rows {
		if row.ID == id {
			rs.values[row.Field] = value
			return
		}
	}
}

// ClearAll resets to the single default row with an empty value.
func (rs *RowSet) ClearAll() {
	rs.rows = nil
	rs.values = map[string]any{}
	rs.reinstateDefault()
}

// AllDenied reports whether every active row is permission-denied, in which
// case the search action itself is disabled.
func (rs *RowSet) AllDenied(caps auth.Capabilities) bool {
	for _, row := range rs.rows {
		ff, _ := rs.lookup(row.Field)
		if !denied(ff, caps) {
			return false
		}
	}
	return len(rs.rows) > 0
}

// unexported

func (rs *RowSet) reinstateDefault() {
	if len(rs.fields) == 0 {
		return
	}
	first := rs.fields[0]
	rs.rows = []Row{{ID: uuid.NewString(), Field: first.Field}}
	rs.values[first.Field] = first.EmptyValue()
}

func (rs *RowSet) lookup(field string) (nt.FilterField, bool) {
	for _, ff := range rs.fields {
		if ff.Field == field {
			return ff, true
		}
	}
	return nt.FilterField{}, false
}

func denied(ff nt.FilterField, caps auth.Capabilities) bool {
	return ff.Permission != "" && caps != nil && !caps.Has(ff.Permission)
}
