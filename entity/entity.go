// Package entity holds the domain model shared by the panels, the list
// stores, and the REST client: the back-office records themselves plus the
// filter, sort, and pagination shapes that travel between them.
package entity

import "strconv"

// Text is a localized name/description sub-record.
// An entity carries at most one Text per language.
type Text struct {
	LanguageID  string `json:"language_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// TextFor returns the text row for a language, if attached.
func TextFor(texts []Text, languageID string) (Text, bool) {
	for _, txt := range texts {
		if txt.LanguageID == languageID {
			return txt, true
		}
	}
	return Text{}, false
}

// FirstName returns the first localized name, for grid display.
func FirstName(texts []Text) string {
	if len(texts) == 0 {
		return ""
	}
	return texts[0].Name
}

// Record is implemented by every entity shown in a grid.
type Record interface {
	// RecordID returns the backend id.
	RecordID() string
	// Cell returns the display value for a column field.
	Cell(field string) string
}

// Category groups skills and carries localized texts.
type Category struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	TypeCode string `json:"type_code"`
	Position int    `json:"position"`
	Texts    []Text `json:"category_texts"`
}

func (cat Category) RecordID() string { return cat.ID }

func (cat Category) Cell(field string) string {
	switch field {
	case "id":
		return cat.ID
	case "code":
		return cat.Code
	case "type_code":
		return cat.TypeCode
	case "position":
		return strconv.Itoa(cat.Position)
	case "name":
		return FirstName(cat.Texts)
	}
	return ""
}

// CategoryType is a flat lookup; no localized texts.
type CategoryType struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

func (ct CategoryType) RecordID() string { return ct.ID }

func (ct CategoryType) Cell(field string) string {
	switch field {
	case "id":
		return ct.ID
	case "code":
		return ct.Code
	case "name":
		return ct.Name
	}
	return ""
}

// Language is a supported content language. Exactly one is flagged default
// server-side; the filter builder falls back to it for unscoped name search.
type Language struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
}

func (lang Language) RecordID() string { return lang.ID }

func (lang Language) Cell(field string) string {
	switch field {
	case "id":
		return lang.ID
	case "code":
		return lang.Code
	case "name":
		return lang.Name
	case "is_default":
		if lang.IsDefault {
			return "yes"
		}
		return "no"
	}
	return ""
}

// DefaultLanguage returns the language flagged as default, if any.
func DefaultLanguage(langs []Language) (Language, bool) {
	for _, lang := range langs {
		if lang.IsDefault {
			return lang, true
		}
	}
	return Language{}, false
}

// Skill belongs to a category and carries localized texts.
type Skill struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	CategoryCode string `json:"category_code"`
	Texts        []Text `json:"skill_texts"`
}

func (sk Skill) RecordID() string { return sk.ID }

func (sk Skill) Cell(field string) string {
	switch field {
	case "id":
		return sk.ID
	case "code":
		return sk.Code
	case "category_code":
		return sk.CategoryCode
	case "name":
		return FirstName(sk.Texts)
	}
	return ""
}

// Portfolio is a published collection of projects.
type Portfolio struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Texts []Text `json:"portfolio_texts"`
}

func (pf Portfolio) RecordID() string { return pf.ID }

func (pf Portfolio) Cell(field string) string {
	switch field {
	case "id":
		return pf.ID
	case "code":
		return pf.Code
	case "name":
		return FirstName(pf.Texts)
	}
	return ""
}

// Project belongs to a portfolio; Position is its display order and is the
// field rewritten by drag reorder.
type Project struct {
	ID          string `json:"id"`
	PortfolioID string `json:"portfolio_id"`
	Code        string `json:"code"`
	Position    int    `json:"position"`
	Texts       []Text `json:"project_texts"`
}

func (pr Project) RecordID() string { return pr.ID }

func (pr Project) Cell(field string) string {
	switch field {
	case "id":
		return pr.ID
	case "code":
		return pr.Code
	case "portfolio_id":
		return pr.PortfolioID
	case "position":
		return strconv.Itoa(pr.Position)
	case "name":
		return FirstName(pr.Texts)
	}
	return ""
}
