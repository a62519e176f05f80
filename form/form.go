// Package form is the create/edit/delete modal: local validation, the
// language-scoped text sub-editor with its deferred-removal queue, and
// assembly of the submission payload.
package form

import (
	"strings"

	nt "atelier/entity"
	"atelier/rest"
)

// Mode selects the modal body; delete renders a confirmation summary
// instead of editable fields.
type Mode int

const (
	Create Mode = iota
	Edit
	Delete
)

// TextEdit is one language's editable name/description pair.
type TextEdit struct {
	LanguageID  string
	Name        string
	Description string
}

// Form is the modal's state, independent of rendering.
type Form struct {
	schema   nt.Schema
	mode     Mode
	recordID string

	values map[string]any
	texts  []TextEdit

	// original language ids when the record was opened; removing one of
	// these queues it for backend deletion at submit time.
	original map[string]bool
	removed  []string

	errs     map[string]string
	conflict bool
	warning  string
}

// NewCreate opens an empty form.
func NewCreate(schema nt.Schema) *Form {
	return &Form{
		schema:   schema,
		mode:     Create,
		values:   map[string]any{},
		original: map[string]bool{},
		errs:     map[string]string{},
	}
}

// NewEdit opens a form seeded from the record's current values and texts.
func NewEdit(schema nt.Schema, recordID string, values map[string]any, texts []nt.Text) *Form {
	frm := &Form{
		schema:   schema,
		mode:     Edit,
		recordID: recordID,
		values:   values,
		original: map[string]bool{},
		errs:     map[string]string{},
	}
	if frm.values == nil {
		frm.values = map[string]any{}
	}
	for _, txt := range texts {
		frm.texts = append(frm.texts, TextEdit{
			LanguageID:  txt.LanguageID,
			Name:        txt.Name,
			Description: txt.Description,
		})
		frm.original[txt.LanguageID] = true
	}
	return frm
}

// NewDelete opens a confirmation for the record.
func NewDelete(schema nt.Schema, recordID string, values map[string]any) *Form {
	return &Form{
		schema:   schema,
		mode:     Delete,
		recordID: recordID,
		values:   values,
		original: map[string]bool{},
		errs:     map[string]string{},
	}
}

func (frm *Form) Mode() Mode                { return frm.mode }
func (frm *Form) RecordID() string          { return frm.recordID }
func (frm *Form) Texts() []TextEdit         { return frm.texts }
func (frm *Form) Removed() []string         { return frm.removed }
func (frm *Form) Errors() map[string]string { return frm.errs }
func (frm *Form) Warning() string           { return frm.warning }

// Value returns a scalar field value.
func (frm *Form) Value(name string) any {
	return frm.values[name]
}

// SetValue stores a scalar field value.
func (frm *Form) SetValue(name string, value any) {
	frm.values[name] = value
	delete(frm.errs, name)
}

// SetConflict records the uniqueness check outcome for the natural key.
func (frm *Form) SetConflict(conflict bool) {
	frm.conflict = conflict
	name := frm.uniqueField()
	if name == "" {
		return
	}
	if conflict {
		frm.errs[name] = "already in use"
	} else {
		delete(frm.errs, name)
	}
}

// Conflict reports whether the uniqueness check found a collision.
func (frm *Form) Conflict() bool {
	return frm.conflict
}

// AddLanguage attaches the first language not yet present, pre-seeded with
// empty name/description. No-op when every language is attached.
func (frm *Form) AddLanguage(langs []nt.Language) (added bool) {
	for _, lang := range langs {
		if frm.attached(lang.ID) {
			continue
		}
		frm.texts = append(frm.texts, TextEdit{LanguageID: lang.ID})
		// A language removed and re-added must not stay queued for
		// deletion.
		frm.removed = without(frm.removed, lang.ID)
		return true
	}
	return false
}

// RemoveLanguage detaches a language from the editable set. When it existed
// on the original record its id is queued for deletion at submit; texts the
// UI merely dropped are not resubmitted.
func (frm *Form) RemoveLanguage(languageID string) {
	for i, txt := range frm.texts {
		if txt.LanguageID != languageID {
			continue
		}
		frm.texts = append(frm.texts[:i], frm.texts[i+1:]...)
		break
	}

	if frm.original[languageID] && !contains(frm.removed, languageID) {
		frm.removed = append(frm.removed, languageID)
	}
}

// SetText updates one attached language's name/description.
func (frm *Form) SetText(languageID, name, description string) {
	for i := range frm.texts {
		if frm.texts[i].LanguageID == languageID {
			frm.texts[i].Name = name
			frm.texts[i].Description = description
			return
		}
	}
}

// Validate runs local checks: required scalars, plus a name for every
// currently-attached language. Skipped entirely in delete mode. A pending
// natural-key conflict also blocks.
func (frm *Form) Validate() bool {
	if frm.mode == Delete {
		return true
	}

	frm.errs = map[string]string{}
	for _, field := range frm.schema.Form {
		if !field.Required {
			continue
		}
		str, _ := frm.values[field.Name].(string)
		if strings.TrimSpace(str) == "" {
			frm.errs[field.Name] = field.Label + " is required"
		}
	}

	for _, txt := range frm.texts {
		if strings.TrimSpace(txt.Name) == "" {
			frm.errs["texts:"+txt.LanguageID] = "name is required for every selected language"
		}
	}

	if frm.conflict {
		name := frm.uniqueField()
		if name != "" {
			frm.errs[name] = "already in use"
		}
	}

	return len(frm.errs) == 0
}

// Payload assembles the submission body: scalar values, the texts of
// currently-attached languages (membership by language id, not array
// position), and on edit the removed_language_ids queue.
func (frm *Form) Payload() map[string]any {

	payload := map[string]any{}
	for _, field := range frm.schema.Form {
		if val, ok := frm.values[field.Name]; ok {
			payload[field.Name] = val
		}
	}

	if frm.schema.HasTexts() {
		// Membership is by language id: a queued removal keeps its
		// language out even if a stale edit row lingers.
		queued := map[string]bool{}
		for _, id := range frm.removed {
			queued[id] = true
		}

		texts := []nt.Text{}
		for _, txt := range frm.texts {
			if queued[txt.LanguageID] {
				continue
			}
			texts = append(texts, nt.Text{
				LanguageID:  txt.LanguageID,
				Name:        txt.Name,
				Description: txt.Description,
			})
		}
		payload[frm.schema.TextsKey] = texts

		if frm.mode == Edit {
			payload["removed_language_ids"] = frm.removed
		}
	}

	return payload
}

// ApplyFault folds a submit failure into form state per its kind: 422 field
// messages land on their fields, 409 marks the natural key, network-class
// failures warn that the mutation may have completed, anything else advises
// a refresh.
func (frm *Form) ApplyFault(flt *rest.Fault) {
	switch flt.Kind {
	case rest.Validation:
		for field, msg := range flt.Fields {
			frm.errs[field] = msg
		}
		if len(flt.Fields) == 0 {
			frm.warning = flt.Message
		}

	case rest.Conflict:
		frm.SetConflict(true)

	case rest.Network:
		frm.warning = "request may have completed, the list will refresh"

	default:
		frm.warning = "something went wrong, refresh to check"
	}
}

// CloseAnyway reports whether the fault still closes-and-refreshes the
// modal after the warning has been shown.
func CloseAnyway(flt *rest.Fault) bool {
	return flt.Kind == rest.Network
}

// unexported

func (frm *Form) uniqueField() string {
	for _, field := range frm.schema.Form {
		if field.Unique {
			return field.Name
		}
	}
	return ""
}

func (frm *Form) attached(languageID string) bool {
	for _, txt := range frm.texts {
		if txt.LanguageID == languageID {
			return true
		}
	}
	return false
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}

func without(list []string, drop string) []string {
	out := list[:0]
	for _, item := range list {
		if item != drop {
			out = append(out, item)
		}
	}
	return out
}
