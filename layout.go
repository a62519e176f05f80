package atelier

import (
	"os"

	"github.com/pkg/errors"

	nt "atelier/entity"
	"atelier/util"
)

// Layout carries per-entity column overrides from layout.yaml, keyed by
// schema name.
type Layout struct {
	Columns map[string][]nt.Column `yaml:"columns,omitempty"`
}

// SampleLayout seeds a layout.yaml for first runs.
var SampleLayout = []byte(`# column overrides per entity, matched by field
columns:
  category:
    - field: type_code
      width: 20
  project:
    - field: portfolio_id
      hidden: false
`)

// LoadLayout reads the layout file; a missing file is an empty layout.
func LoadLayout(path string) (layout *Layout, err error) {

	layout = &Layout{}
	err = util.LoadConfig(layout, path)
	if err != nil && os.IsNotExist(errors.Cause(err)) {
		err = nil
	}
	return
}

// apply merges width and visibility overrides into a schema's columns.
func (layout *Layout) apply(sch *nt.Schema) {

	for _, over := range layout.Columns[sch.Name] {
		for i, col := range sch.Columns {
			if col.Field != over.Field {
				continue
			}
			if over.Width != 0 {
				sch.Columns[i].Width = over.Width
			}
			sch.Columns[i].Hidden = over.Hidden
		}
	}
}
