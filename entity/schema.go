package entity

// Column describes one grid column. Width and visibility can be overridden
// from layout.yaml.
type Column struct {
	Field  string `yaml:"field"`
	Title  string `yaml:"title,omitempty"`
	Width  int    `yaml:"width"`
	Hidden bool   `yaml:"hidden,omitempty"`

	// Permission gates visibility; denied columns are dropped, not errored.
	Permission string `yaml:"-"`

	// Admin restricts the column to system administrators.
	Admin bool `yaml:"-"`
}

// FormField describes one editable field of an entity form.
type FormField struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool

	// Unique marks the natural key checked against the exists endpoint.
	Unique bool

	Options []Option
}

// Schema is the per-entity descriptor that parametrizes the filter, list,
// and form family. One Schema per entity instead of per-entity copies of
// the controller logic.
type Schema struct {
	// Name is the singular noun used in messages.
	Name string
	// Title labels the screen.
	Title string
	// Path is the REST collection path, e.g. "/categories".
	Path string
	// Module is the key consulted for module-level access.
	Module string
	// TextsKey is the JSON key of the localized texts array; empty when the
	// entity has no texts.
	TextsKey string
	// DefaultSort is applied when the sort model is empty.
	DefaultSort string

	Columns []Column
	Filters []FilterField
	Form    []FormField
}

// HasTexts reports whether the entity carries localized texts.
func (sch Schema) HasTexts() bool {
	return sch.TextsKey != ""
}

// Filter returns the filter field by key.
func (sch Schema) Filter(field string) (FilterField, bool) {
	for _, ff := range sch.Filters {
		if ff.Field == field {
			return ff, true
		}
	}
	return FilterField{}, false
}

// LanguageOptions converts languages to select options.
func LanguageOptions(langs []Language) []Option {
	opts := make([]Option, 0, len(langs))
	for _, lang := range langs {
		opts = append(opts, Option{Value: lang.ID, Label: lang.Name})
	}
	return opts
}

// TypeOptions converts category types to select options keyed by code.
func TypeOptions(types []CategoryType) []Option {
	opts := make([]Option, 0, len(types))
	for _, ct := range types {
		opts = append(opts, Option{Value: ct.Code, Label: ct.Name})
	}
	return opts
}

// CategorySchema describes categories; type and language options come from
// the already-loaded lookup lists.
func CategorySchema(types []CategoryType, langs []Language) Schema {
	return Schema{
		Name:        "category",
		Title:       "Categories",
		Path:        "/categories",
		Module:      "categories",
		TextsKey:    "category_texts",
		DefaultSort: "code",
		Columns: []Column{
			{Field: "id", Width: 10, Hidden: true, Admin: true},
			{Field: "code", Width: 16},
			{Field: "name", Width: 30},
			{Field: "type_code", Width: 14, Permission: "category_types:read"},
		},
		Filters: []FilterField{
			{Field: FieldName, Label: "Name", Kind: KindText},
			{Field: "code", Label: "Code", Kind: KindText},
			{Field: "type_code", Label: "Type", Kind: KindSelect, Options: TypeOptions(types), Permission: "category_types:read", Exact: true},
			{Field: FieldLanguage, Label: "Language", Kind: KindMultiSelect, Options: LanguageOptions(langs)},
		},
		Form: []FormField{
			{Name: "code", Label: "Code", Kind: KindText, Required: true, Unique: true},
			{Name: "type_code", Label: "Type", Kind: KindSelect, Required: true, Options: TypeOptions(types)},
		},
	}
}

// CategoryTypeSchema describes the category type lookup.
func CategoryTypeSchema() Schema {
	return Schema{
		Name:        "category type",
		Title:       "Category Types",
		Path:        "/category-types",
		Module:      "category_types",
		DefaultSort: "code",
		Columns: []Column{
			{Field: "id", Width: 10, Hidden: true, Admin: true},
			{Field: "code", Width: 16},
			{Field: "name", Width: 40},
		},
		Filters: []FilterField{
			{Field: FieldName, Label: "Name", Kind: KindText},
			{Field: "code", Label: "Code", Kind: KindText},
		},
		Form: []FormField{
			{Name: "code", Label: "Code", Kind: KindText, Required: true, Unique: true},
			{Name: "name", Label: "Name", Kind: KindText, Required: true},
		},
	}
}

// LanguageSchema describes languages.
func LanguageSchema() Schema {
	return Schema{
		Name:        "language",
		Title:       "Languages",
		Path:        "/languages",
		Module:      "languages",
		DefaultSort: "code",
		Columns: []Column{
			{Field: "id", Width: 10, Hidden: true, Admin: true},
			{Field: "code", Width: 10},
			{Field: "name", Width: 30},
			{Field: "is_default", Width: 10},
		},
		Filters: []FilterField{
			{Field: FieldName, Label: "Name", Kind: KindText},
			{Field: "code", Label: "Code", Kind: KindText, Exact: true},
			{Field: "is_default", Label: "Default", Kind: KindBool},
		},
		Form: []FormField{
			{Name: "code", Label: "Code", Kind: KindText, Required: true, Unique: true},
			{Name: "name", Label: "Name", Kind: KindText, Required: true},
			{Name: "is_default", Label: "Default", Kind: KindBool},
		},
	}
}

// SkillSchema describes skills.
func SkillSchema(cats []Category, langs []Language) Schema {
	catOpts := make([]Option, 0, len(cats))
	for _, cat := range cats {
		catOpts = append(catOpts, Option{Value: cat.Code, Label: FirstName(cat.Texts)})
	}

	return Schema{
		Name:        "skill",
		Title:       "Skills",
		Path:        "/skills",
		Module:      "skills",
		TextsKey:    "skill_texts",
		DefaultSort: "code",
		Columns: []Column{
			{Field: "id", Width: 10, Hidden: true, Admin: true},
			{Field: "code", Width: 16},
			{Field: "name", Width: 30},
			{Field: "category_code", Width: 16},
		},
		Filters: []FilterField{
			{Field: FieldName, Label: "Name", Kind: KindText},
			{Field: "code", Label: "Code", Kind: KindText},
			{Field: "category_code", Label: "Category", Kind: KindSelect, Options: catOpts, Exact: true},
			{Field: FieldLanguage, Label: "Language", Kind: KindMultiSelect, Options: LanguageOptions(langs)},
		},
		Form: []FormField{
			{Name: "code", Label: "Code", Kind: KindText, Required: true, Unique: true},
			{Name: "category_code", Label: "Category", Kind: KindSelect, Required: true, Options: catOpts},
		},
	}
}

// PortfolioSchema describes portfolios.
func PortfolioSchema(langs []Language) Schema {
	return Schema{
		Name:        "portfolio",
		Title:       "Portfolios",
		Path:        "/portfolios",
		Module:      "portfolios",
		TextsKey:    "portfolio_texts",
		DefaultSort: "code",
		Columns: []Column{
			{Field: "id", Width: 10, Hidden: true, Admin: true},
			{Field: "code", Width: 16},
			{Field: "name", Width: 40},
		},
		Filters: []FilterField{
			{Field: FieldName, Label: "Name", Kind: KindText},
			{Field: "code", Label: "Code", Kind: KindText},
			{Field: FieldLanguage, Label: "Language", Kind: KindMultiSelect, Options: LanguageOptions(langs)},
		},
		Form: []FormField{
			{Name: "code", Label: "Code", Kind: KindText, Required: true, Unique: true},
		},
	}
}

// ProjectSchema describes projects; the position column reflects drag order.
func ProjectSchema(portfolios []Portfolio, langs []Language) Schema {
	pfOpts := make([]Option, 0, len(portfolios))
	for _, pf := range portfolios {
		pfOpts = append(pfOpts, Option{Value: pf.ID, Label: pf.Code})
	}

	return Schema{
		Name:        "project",
		Title:       "Projects",
		Path:        "/projects",
		Module:      "projects",
		TextsKey:    "project_texts",
		DefaultSort: "position",
		Columns: []Column{
			{Field: "id", Width: 10, Hidden: true, Admin: true},
			{Field: "position", Width: 4},
			{Field: "code", Width: 16},
			{Field: "name", Width: 30},
			{Field: "portfolio_id", Width: 12, Hidden: true},
		},
		Filters: []FilterField{
			{Field: FieldName, Label: "Name", Kind: KindText},
			{Field: "code", Label: "Code", Kind: KindText},
			{Field: "portfolio_id", Label: "Portfolio", Kind: KindSelect, Options: pfOpts, Exact: true},
			{Field: FieldLanguage, Label: "Language", Kind: KindMultiSelect, Options: LanguageOptions(langs)},
		},
		Form: []FormField{
			{Name: "code", Label: "Code", Kind: KindText, Required: true, Unique: true},
			{Name: "portfolio_id", Label: "Portfolio", Kind: KindSelect, Required: true, Options: pfOpts},
		},
	}
}
