package stub

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/clarktrimble/sabot"
	"github.com/stretchr/testify/assert"

	nt "atelier/entity"
	"atelier/rest"
)

func testServer(t *testing.T) (clt *rest.Client, done func()) {
	t.Helper()

	lgr := &sabot.Sabot{Writer: io.Discard, MaxLen: 100}
	server := httptest.NewServer(NewServer("tok", lgr).Router())
	return rest.NewClient(server.URL, "tok"), server.Close
}

func TestUpdateReconcilesTexts(t *testing.T) {

	clt, done := testServer(t)
	defer done()
	ctx := context.Background()

	payload := map[string]any{
		"code": "backend",
		"category_texts": []map[string]any{
			{"language_id": "lang-en", "name": "Backend Dev"},
			{"language_id": "lang-de", "name": "Backend Entwicklung"},
		},
		"removed_language_ids": []string{"lang-fr"},
	}

	cat, err := rest.Update[nt.Category](ctx, clt, "/categories", "cat-backend", payload)
	assert.NoError(t, err)

	assert.Len(t, cat.Texts, 2)
	en, ok := nt.TextFor(cat.Texts, "lang-en")
	assert.True(t, ok)
	assert.Equal(t, "Backend Dev", en.Name)

	_, ok = nt.TextFor(cat.Texts, "lang-fr")
	assert.False(t, ok)

	_, ok = nt.TextFor(cat.Texts, "lang-de")
	assert.True(t, ok)
}

func TestReorderRewritesPositions(t *testing.T) {

	clt, done := testServer(t)
	defer done()
	ctx := context.Background()

	err := rest.Reorder(ctx, clt, "/projects", []string{"proj-api", "proj-console", "proj-site"})
	assert.NoError(t, err)

	result, err := rest.List[nt.Project](ctx, clt, "/projects", rest.ListQuery{
		Page: 1, PageSize: 10, SortField: "position", SortOrder: "asc",
	})
	assert.NoError(t, err)

	assert.Equal(t, "api", result.Items[0].Code)
	assert.Equal(t, "console", result.Items[1].Code)
	assert.Equal(t, "site", result.Items[2].Code)
}

func TestReorderUnknownIdConflicts(t *testing.T) {

	clt, done := testServer(t)
	defer done()

	err := rest.Reorder(context.Background(), clt, "/projects", []string{"proj-api", "proj-gone"})
	assert.Error(t, err)
	assert.Equal(t, rest.Conflict, rest.Classify(err).Kind)
}

func TestBadTokenUnauthorized(t *testing.T) {

	lgr := &sabot.Sabot{Writer: io.Discard, MaxLen: 100}
	server := httptest.NewServer(NewServer("tok", lgr).Router())
	defer server.Close()

	clt := rest.NewClient(server.URL, "wrong")
	_, err := rest.Get[nt.Language](context.Background(), clt, "/languages", "lang-en")

	assert.Error(t, err)
	assert.Equal(t, rest.Auth, rest.Classify(err).Kind)
}

func TestUnknownCollectionNotFound(t *testing.T) {

	clt, done := testServer(t)
	defer done()

	_, err := rest.Get[nt.Language](context.Background(), clt, "/widgets", "w1")
	assert.Error(t, err)
	assert.Equal(t, rest.NotFound, rest.Classify(err).Kind)
}
