// Package atelier is a terminal console for managing portfolio content
// over its REST api: categories, category types, languages, skills,
// portfolios, and projects, each with a filterable grid and modal forms.
package atelier

import (
	"context"

	"atelier/rest"

	nt "atelier/entity"
)

// Config is populated from the environment by the cli.
type Config struct {
	BaseURL     string   `env:"ATL_BASE_URL" envDefault:"http://localhost:8088"`
	Token       string   `env:"ATL_TOKEN"`
	PageSize    int      `env:"ATL_PAGE_SIZE" envDefault:"20"`
	LogPath     string   `env:"ATL_LOG_PATH" envDefault:"atelier.log"`
	LayoutPath  string   `env:"ATL_LAYOUT_PATH" envDefault:"layout.yaml"`
	Admin       bool     `env:"ATL_ADMIN"`
	Permissions []string `env:"ATL_PERMISSIONS" envSeparator:","`
	Modules     []string `env:"ATL_MODULES" envSeparator:","`
}

// Lookups are the reference lists loaded once at startup; they feed the
// select options in filters and forms.
type Lookups struct {
	Types      []nt.CategoryType
	Languages  []nt.Language
	Categories []nt.Category
	Portfolios []nt.Portfolio
}

// lookupSize caps the reference lists; these are small curated tables.
const lookupSize = 200

// LoadLookups fetches the reference lists from the backend.
func LoadLookups(ctx context.Context, clt *rest.Client) (lk Lookups, err error) {

	query := rest.ListQuery{Page: 1, PageSize: lookupSize}

	types, err := rest.List[nt.CategoryType](ctx, clt, "/category-types", query)
	if err != nil {
		return
	}
	langs, err := rest.List[nt.Language](ctx, clt, "/languages", query)
	if err != nil {
		return
	}
	cats, err := rest.List[nt.Category](ctx, clt, "/categories", query)
	if err != nil {
		return
	}
	portfolios, err := rest.List[nt.Portfolio](ctx, clt, "/portfolios", query)
	if err != nil {
		return
	}

	lk = Lookups{
		Types:      types.Items,
		Languages:  langs.Items,
		Categories: cats.Items,
		Portfolios: portfolios.Items,
	}
	return
}
