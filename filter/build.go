package filter

import (
	"context"
	"strings"

	"atelier/auth"
	nt "atelier/entity"
)

// Build converts the active rows' current values into the wire filter
// array. Rules, in order:
//
//  1. A non-empty name value fans out to one contains entry per selected
//     language, each carrying that language's id. With no languages
//     selected it is scoped to the default language; with no default
//     resolvable it goes out unscoped and the degraded condition is logged.
//  2. Selected languages not consumed by a name filter become standalone
//     language_id eq entries.
//  3. Every other non-empty value emits one entry per element: arrays eq
//     per value, trimmed strings contains (eq for exact fields), booleans
//     eq. Permission-denied fields are inert.
func Build(ctx context.Context, rs *RowSet, langs []nt.Language, caps auth.Capabilities, lgr nt.Logger) []nt.WireFilter {

	wire := []nt.WireFilter{}

	var nameVal string
	var langIDs []string
	for _, row := range rs.Rows() {
		ff := rs.Field(row)
		if denied(ff, caps) {
			continue
		}
		switch ff.Field {
		case nt.FieldName:
			nameVal = strings.TrimSpace(asString(rs.Value(ff.Field)))
		case nt.FieldLanguage:
			langIDs = asStrings(rs.Value(ff.Field))
		}
	}

	langConsumed := false
	if nameVal != "" {
		switch {
		case len(langIDs) > 0:
			for _, id := range langIDs {
				wire = append(wire, nt.WireFilter{
					Field:      nt.FieldName,
					Value:      nameVal,
					Operator:   nt.OpContains,
					LanguageID: id,
				})
			}
			langConsumed = true

		default:
			def, ok := nt.DefaultLanguage(langs)
			if ok {
				wire = append(wire, nt.WireFilter{
					Field:      nt.FieldName,
					Value:      nameVal,
					Operator:   nt.OpContains,
					LanguageID: def.ID,
				})
				break
			}
			if lgr != nil {
				lgr.Info(ctx, "no default language resolvable, name filter unscoped", "value", nameVal)
			}
			wire = append(wire, nt.WireFilter{
				Field:    nt.FieldName,
				Value:    nameVal,
				Operator: nt.OpContains,
			})
		}
	}

	if !langConsumed {
		for _, id := range langIDs {
			wire = append(wire, nt.WireFilter{
				Field:    nt.FieldLanguage,
				Value:    id,
				Operator: nt.OpEq,
			})
		}
	}

	for _, row := range rs.Rows() {
		ff := rs.Field(row)
		if ff.Field == nt.FieldName || ff.Field == nt.FieldLanguage {
			continue
		}
		if denied(ff, caps) {
			continue
		}

		switch val := rs.Value(ff.Field).(type) {
		case []string:
			for _, elem := range val {
				wire = append(wire, nt.WireFilter{Field: ff.Field, Value: elem, Operator: nt.OpEq})
			}

		case string:
			trimmed := strings.TrimSpace(val)
			if trimmed == "" {
				continue
			}
			op := nt.OpContains
			if ff.Exact {
				op = nt.OpEq
			}
			wire = append(wire, nt.WireFilter{Field: ff.Field, Value: trimmed, Operator: op})

		case bool:
			wire = append(wire, nt.WireFilter{Field: ff.Field, Value: val, Operator: nt.OpEq})
		}
	}

	return wire
}

// unexported

func asString(val any) string {
	str, _ := val.(string)
	return str
}

func asStrings(val any) []string {
	strs, _ := val.([]string)
	return strs
}
