package form

import (
	"testing"

	"github.com/stretchr/testify/assert"

	nt "atelier/entity"
	"atelier/rest"
)

func editForm() *Form {
	schema := nt.PortfolioSchema(nil)
	texts := []nt.Text{
		{LanguageID: "lang-en", Name: "Main Portfolio"},
		{LanguageID: "lang-fr", Name: "Portfolio Principal"},
	}
	return NewEdit(schema, "pf-main", map[string]any{"code": "main"}, texts)
}

func TestPayloadMembershipByLanguage(t *testing.T) {

	frm := editForm()
	frm.RemoveLanguage("lang-fr")

	payload := frm.Payload()

	texts, ok := payload["portfolio_texts"].([]nt.Text)
	assert.True(t, ok)
	assert.Len(t, texts, 1)
	assert.Equal(t, "lang-en", texts[0].LanguageID)
	assert.Equal(t, []string{"lang-fr"}, payload["removed_language_ids"])
}

func TestRemovedLanguageReattachedIsNotQueued(t *testing.T) {

	frm := editForm()
	frm.RemoveLanguage("lang-fr")
	assert.Equal(t, []string{"lang-fr"}, frm.Removed())

	langs := []nt.Language{
		{ID: "lang-en", Code: "en"},
		{ID: "lang-fr", Code: "fr"},
	}
	added := frm.AddLanguage(langs)
	assert.True(t, added)
	assert.Empty(t, frm.Removed())

	frm.SetText("lang-fr", "Portfolio", "")
	payload := frm.Payload()

	texts := payload["portfolio_texts"].([]nt.Text)
	assert.Len(t, texts, 2)
	assert.Empty(t, payload["removed_language_ids"])
}

func TestCreatePayloadOmitsRemovedQueue(t *testing.T) {

	frm := NewCreate(nt.PortfolioSchema(nil))
	frm.SetValue("code", "side")
	frm.AddLanguage([]nt.Language{{ID: "lang-en", Code: "en"}})
	frm.SetText("lang-en", "Side Projects", "")

	payload := frm.Payload()

	assert.Equal(t, "side", payload["code"])
	assert.NotContains(t, payload, "removed_language_ids")
	assert.Len(t, payload["portfolio_texts"], 1)
}

func TestValidateRequiredScalars(t *testing.T) {

	frm := NewCreate(nt.CategoryTypeSchema())
	assert.False(t, frm.Validate())
	assert.Contains(t, frm.Errors(), "code")
	assert.Contains(t, frm.Errors(), "name")

	frm.SetValue("code", "technical")
	frm.SetValue("name", "Technical")
	assert.True(t, frm.Validate())
}

func TestValidateRequiresNamePerLanguage(t *testing.T) {

	frm := NewCreate(nt.PortfolioSchema(nil))
	frm.SetValue("code", "side")
	frm.AddLanguage([]nt.Language{{ID: "lang-en", Code: "en"}})

	assert.False(t, frm.Validate())
	assert.Contains(t, frm.Errors(), "texts:lang-en")

	frm.SetText("lang-en", "Side Projects", "")
	assert.True(t, frm.Validate())
}

func TestConflictBlocksUntilCleared(t *testing.T) {

	frm := NewCreate(nt.PortfolioSchema(nil))
	frm.SetValue("code", "main")

	frm.SetConflict(true)
	assert.False(t, frm.Validate())
	assert.Equal(t, "already in use", frm.Errors()["code"])

	frm.SetConflict(false)
	assert.True(t, frm.Validate())
}

func TestDeleteModeSkipsValidation(t *testing.T) {

	frm := NewDelete(nt.PortfolioSchema(nil), "pf-main", nil)
	assert.True(t, frm.Validate())
}

func TestApplyFault(t *testing.T) {

	frm := NewCreate(nt.PortfolioSchema(nil))

	frm.ApplyFault(&rest.Fault{Kind: rest.Validation, Fields: map[string]string{"code": "too long"}})
	assert.Equal(t, "too long", frm.Errors()["code"])

	frm.ApplyFault(&rest.Fault{Kind: rest.Conflict})
	assert.True(t, frm.Conflict())

	flt := &rest.Fault{Kind: rest.Network}
	frm.ApplyFault(flt)
	assert.Equal(t, "request may have completed, the list will refresh", frm.Warning())
	assert.True(t, CloseAnyway(flt))

	flt = &rest.Fault{Kind: rest.Unknown}
	frm.ApplyFault(flt)
	assert.Equal(t, "something went wrong, refresh to check", frm.Warning())
	assert.False(t, CloseAnyway(flt))
}
