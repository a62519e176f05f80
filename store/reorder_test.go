package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"atelier/auth"
	nt "atelier/entity"
	"atelier/rest"
	"atelier/stub"
)

func projectStore(t *testing.T) (st *Store[nt.Project], done func()) {
	t.Helper()

	server := httptest.NewServer(stub.NewServer(testToken, testLogger()).Router())
	clt := rest.NewClient(server.URL, testToken)

	schema := nt.ProjectSchema(nil, nil)
	st = New[nt.Project](schema, clt, auth.NewStatic(true, nil, nil), testLogger(), 10)
	return st, server.Close
}

func TestReorderLifecycle(t *testing.T) {

	st, done := projectStore(t)
	defer done()
	ctx := context.Background()

	err := st.Fetch(ctx, 0, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, ReorderSynced, st.Phase())

	rows := st.Rows()
	assert.Equal(t, "console", rows[0].Code)

	moved, ok := MoveRow(rows, 0, 1)
	assert.True(t, ok)

	err = st.BeginReorder(moved)
	assert.NoError(t, err)
	assert.Equal(t, ReorderPending, st.Phase())
	assert.Equal(t, "site", st.Rows()[0].Code)

	// a fetch landing mid-reorder must not clobber the optimistic order
	err = st.Refetch(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "site", st.Rows()[0].Code)

	err = st.PersistReorder(ctx)
	assert.NoError(t, err)
	assert.Equal(t, ReorderConfirmed, st.Phase())

	st.AckReorder()
	assert.Equal(t, ReorderSynced, st.Phase())

	// the backend now serves the new order
	err = st.Refetch(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "site", st.Rows()[0].Code)
	assert.Equal(t, "console", st.Rows()[1].Code)
}

func TestReorderRollbackRestoresOrder(t *testing.T) {

	projects := []nt.Project{
		{ID: "proj-a", Code: "alpha", Position: 1},
		{ID: "proj-b", Code: "beta", Position: 2},
	}

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method == http.MethodPut {
			writer.WriteHeader(http.StatusConflict)
			writer.Write([]byte(`{"error": "stale order"}`))
			return
		}
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(map[string]any{
			"items": projects, "total": 2, "page": 1, "page_size": 10,
		})
	}))
	defer server.Close()

	clt := rest.NewClient(server.URL, testToken)
	st := New[nt.Project](nt.ProjectSchema(nil, nil), clt, auth.NewStatic(true, nil, nil), testLogger(), 10)
	ctx := context.Background()

	err := st.Fetch(ctx, 0, nil, nil)
	assert.NoError(t, err)

	moved, ok := MoveRow(st.Rows(), 0, 1)
	assert.True(t, ok)

	err = st.BeginReorder(moved)
	assert.NoError(t, err)
	assert.Equal(t, "beta", st.Rows()[0].Code)

	err = st.PersistReorder(ctx)
	assert.Error(t, err)

	assert.Equal(t, ReorderRolledBack, st.Phase())
	assert.Equal(t, "alpha", st.Rows()[0].Code)
	assert.Equal(t, rest.Conflict, st.Fault().Kind)

	st.AckReorder()
	assert.Equal(t, ReorderSynced, st.Phase())
}

func TestBeginReorderGuards(t *testing.T) {

	st, done := projectStore(t)
	defer done()
	ctx := context.Background()

	err := st.Fetch(ctx, 0, nil, nil)
	assert.NoError(t, err)

	short := st.Rows()[:1]
	err = st.BeginReorder(short)
	assert.Error(t, err)

	moved, _ := MoveRow(st.Rows(), 0, 1)
	err = st.BeginReorder(moved)
	assert.NoError(t, err)

	err = st.BeginReorder(moved)
	assert.Error(t, err)
}

func TestMoveRowBounds(t *testing.T) {

	rows := []nt.Project{{ID: "a"}, {ID: "b"}}

	_, ok := MoveRow(rows, 0, -1)
	assert.False(t, ok)

	_, ok = MoveRow(rows, 1, 2)
	assert.False(t, ok)

	_, ok = MoveRow(rows, 0, 0)
	assert.False(t, ok)

	moved, ok := MoveRow(rows, 0, 1)
	assert.True(t, ok)
	assert.Equal(t, "b", moved[0].ID)
	assert.Equal(t, "a", rows[0].ID)
}
