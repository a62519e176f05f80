package entity

// FieldKind is the input shape of a filter or form field.
type FieldKind int

const (
	KindText FieldKind = iota
	KindSelect
	KindMultiSelect
	KindBool
)

// Option is one selectable value for select/multiselect fields.
type Option struct {
	Value string
	Label string
}

// Wire operators understood by the backend's filter arrays.
const (
	OpContains = "contains"
	OpEq       = "eq"
)

// Well-known filter fields with special build rules.
const (
	FieldName     = "name"
	FieldLanguage = "language_id"
)

// FilterField describes one filterable field of an entity. Defined statically
// per schema, never persisted.
type FilterField struct {
	Field   string
	Label   string
	Kind    FieldKind
	Options []Option

	// Permission gates the field; empty means unrestricted.
	Permission string

	// Exact fields filter with eq rather than contains (identifier-like
	// values such as type_code).
	Exact bool
}

// EmptyValue returns the type-appropriate empty value for the field.
func (ff FilterField) EmptyValue() any {
	switch ff.Kind {
	case KindMultiSelect:
		return []string{}
	case KindBool:
		return nil
	default:
		return ""
	}
}

// WireFilter is one entry of the submission-format filter array. A name
// filter scoped to a language carries that language's id so the backend
// searches within the matching localized-text rows.
type WireFilter struct {
	Field      string `json:"field"`
	Value      any    `json:"value"`
	Operator   string `json:"operator"`
	LanguageID string `json:"language_id,omitempty"`
}

// Sort is a single sort directive; the grid sends at most one.
type Sort struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc"`
}

// Order is the wire spelling of the sort direction.
func (srt Sort) Order() string {
	if srt.Desc {
		return "desc"
	}
	return "asc"
}

// Page tracks grid pagination. Page is held 0-indexed here and on every
// panel; the list store translates to the backend's 1-indexed pages.
type Page struct {
	Page  int
	Size  int
	Total int
}

// Pages returns the number of pages for the current total.
func (pg Page) Pages() int {
	if pg.Size <= 0 || pg.Total == 0 {
		return 1
	}
	pages := (pg.Total + pg.Size - 1) / pg.Size
	if pages < 1 {
		pages = 1
	}
	return pages
}
