package filter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"atelier/auth"
	nt "atelier/entity"
)

// recordingLogger captures info messages for assertions.
type recordingLogger struct {
	infos []string
}

func (lgr *recordingLogger) Info(ctx context.Context, msg string, kv ...any) {
	lgr.infos = append(lgr.infos, msg)
}

func (lgr *recordingLogger) Error(ctx context.Context, msg string, err error, kv ...any) {}

func languages() []nt.Language {
	return []nt.Language{
		{ID: "lang-en", Code: "en", Name: "English", IsDefault: true},
		{ID: "lang-fr", Code: "fr", Name: "French"},
	}
}

// activate binds a field to a row and stores its value.
func activate(t *testing.T, rs *RowSet, field string, value any) {
	t.Helper()

	for _, row := range rs.Rows() {
		if row.Field == field {
			rs.SetValue(row.ID, value)
			return
		}
	}

	assert.True(t, rs.Add())
	rows := rs.Rows()
	last := rows[len(rows)-1]
	rs.ChangeField(last.ID, field)
	rs.SetValue(last.ID, value)
}

func TestBuildNameFansOutPerLanguage(t *testing.T) {

	rs := NewRowSet(catalogue())
	activate(t, rs, nt.FieldName, "go")
	activate(t, rs, nt.FieldLanguage, []string{"lang-en", "lang-fr"})

	wire := Build(context.Background(), rs, languages(), nil, nil)

	assert.Len(t, wire, 2)
	for i, id := range []string{"lang-en", "lang-fr"} {
		assert.Equal(t, nt.FieldName, wire[i].Field)
		assert.Equal(t, "go", wire[i].Value)
		assert.Equal(t, nt.OpContains, wire[i].Operator)
		assert.Equal(t, id, wire[i].LanguageID)
	}

	// consumed languages do not appear as standalone entries
	for _, flt := range wire {
		assert.NotEqual(t, nt.FieldLanguage, flt.Field)
	}
}

func TestBuildNameFallsBackToDefaultLanguage(t *testing.T) {

	rs := NewRowSet(catalogue())
	activate(t, rs, nt.FieldName, " go ")

	wire := Build(context.Background(), rs, languages(), nil, nil)

	assert.Len(t, wire, 1)
	assert.Equal(t, "go", wire[0].Value)
	assert.Equal(t, "lang-en", wire[0].LanguageID)
}

func TestBuildNameUnscopedWhenNoDefault(t *testing.T) {

	rs := NewRowSet(catalogue())
	activate(t, rs, nt.FieldName, "go")

	lgr := &recordingLogger{}
	noDefault := []nt.Language{{ID: "lang-fr", Code: "fr", Name: "French"}}
	wire := Build(context.Background(), rs, noDefault, nil, lgr)

	assert.Len(t, wire, 1)
	assert.Equal(t, "", wire[0].LanguageID)
	assert.Contains(t, lgr.infos, "no default language resolvable, name filter unscoped")
}

func TestBuildLanguageAloneIsEqEntry(t *testing.T) {

	rs := NewRowSet(catalogue())
	activate(t, rs, nt.FieldLanguage, []string{"lang-fr"})

	wire := Build(context.Background(), rs, languages(), nil, nil)

	assert.Len(t, wire, 1)
	assert.Equal(t, nt.FieldLanguage, wire[0].Field)
	assert.Equal(t, "lang-fr", wire[0].Value)
	assert.Equal(t, nt.OpEq, wire[0].Operator)
}

func TestBuildScalarOperators(t *testing.T) {

	rs := NewRowSet(catalogue())
	row := rs.Rows()[0]
	rs.ChangeField(row.ID, "code")
	rs.SetValue(row.ID, " ab ")
	activate(t, rs, "type_code", "technical")

	wire := Build(context.Background(), rs, languages(), nil, nil)

	assert.Len(t, wire, 2)
	assert.Equal(t, "code", wire[0].Field)
	assert.Equal(t, "ab", wire[0].Value)
	assert.Equal(t, nt.OpContains, wire[0].Operator)
	assert.Equal(t, "type_code", wire[1].Field)
	assert.Equal(t, nt.OpEq, wire[1].Operator)
}

func TestBuildDeniedFieldIsInert(t *testing.T) {

	rs := NewRowSet(catalogue())
	row := rs.Rows()[0]
	rs.ChangeField(row.ID, "type_code")
	rs.SetValue(row.ID, "technical")

	caps := auth.NewStatic(false, nil, nil)
	wire := Build(context.Background(), rs, languages(), caps, nil)

	assert.Empty(t, wire)
}

func TestBuildEmptyValuesProduceNothing(t *testing.T) {

	rs := NewRowSet(catalogue())
	activate(t, rs, "code", "   ")

	wire := Build(context.Background(), rs, languages(), nil, nil)

	assert.NotNil(t, wire)
	assert.Empty(t, wire)
}
