package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/clarktrimble/sabot"
	"github.com/stretchr/testify/assert"

	"atelier/auth"
	nt "atelier/entity"
	"atelier/rest"
	"atelier/stub"
)

const testToken = "letmein"

func testLogger() nt.Logger {
	return &sabot.Sabot{Writer: io.Discard, MaxLen: 100}
}

func stubStore(t *testing.T, pageSize int) (st *Store[nt.Category], done func()) {
	t.Helper()

	server := httptest.NewServer(stub.NewServer(testToken, testLogger()).Router())
	clt := rest.NewClient(server.URL, testToken)

	schema := nt.CategorySchema(nil, nil)
	st = New[nt.Category](schema, clt, auth.NewStatic(true, nil, nil), testLogger(), pageSize)
	return st, server.Close
}

func TestFetchTranslatesPageIndexes(t *testing.T) {

	st, done := stubStore(t, 2)
	defer done()
	ctx := context.Background()

	// fixtures hold three categories; second 0-indexed page has one
	err := st.Fetch(ctx, 1, nil, nil)
	assert.NoError(t, err)

	assert.Equal(t, Idle, st.State())
	assert.Len(t, st.Rows(), 1)
	assert.Equal(t, nt.Page{Page: 1, Size: 2, Total: 3}, st.Page())
}

func TestFetchAppliesDefaultSort(t *testing.T) {

	st, done := stubStore(t, 10)
	defer done()

	err := st.Fetch(context.Background(), 0, nil, nil)
	assert.NoError(t, err)

	rows := st.Rows()
	assert.Len(t, rows, 3)
	assert.Equal(t, "backend", rows[0].Code)
	assert.Equal(t, "communication", rows[1].Code)
	assert.Equal(t, "frontend", rows[2].Code)
}

func TestFetchDiscardsSupersededResponse(t *testing.T) {

	// the "slow" search parks at the server until released, so its response
	// lands after a newer search has already resolved
	arrived := make(chan struct{})
	release := make(chan struct{})
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		code := "fast"
		if strings.Contains(request.URL.Query().Get("filters"), "slow") {
			close(arrived)
			<-release
			code = "slow"
		}
		writer.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(writer, `{"items":[{"id":"cat-1","code":%q}],"total":1,"page":1,"page_size":10}`, code)
	})
	server := httptest.NewServer(handler)
	defer server.Close()

	clt := rest.NewClient(server.URL, testToken)
	st := New[nt.Category](nt.CategorySchema(nil, nil), clt, auth.NewStatic(true, nil, nil), testLogger(), 10)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		slow := []nt.WireFilter{{Field: "code", Value: "slow", Operator: nt.OpContains}}
		err := st.Search(ctx, slow)
		assert.NoError(t, err)
	}()
	<-arrived

	fast := []nt.WireFilter{{Field: "code", Value: "fast", Operator: nt.OpContains}}
	err := st.Search(ctx, fast)
	assert.NoError(t, err)

	close(release)
	wg.Wait()

	assert.Equal(t, fast, st.Filters())
	assert.Equal(t, "fast", st.Rows()[0].Code)
	assert.Equal(t, Idle, st.State())
}

func TestSearchResetsToFirstPage(t *testing.T) {

	st, done := stubStore(t, 2)
	defer done()
	ctx := context.Background()

	err := st.Fetch(ctx, 1, nil, nil)
	assert.NoError(t, err)

	filters := []nt.WireFilter{{Field: "code", Value: "end", Operator: nt.OpContains}}
	err = st.Search(ctx, filters)
	assert.NoError(t, err)

	assert.Equal(t, 0, st.Page().Page)
	assert.Equal(t, 2, st.Page().Total)
	assert.Equal(t, filters, st.Filters())
}

func TestLanguageScopedNameSearch(t *testing.T) {

	st, done := stubStore(t, 10)
	defer done()

	// "Serveur" exists only on the french text of the backend category
	filters := []nt.WireFilter{{Field: nt.FieldName, Value: "serveur", Operator: nt.OpContains, LanguageID: "lang-fr"}}
	err := st.Search(context.Background(), filters)
	assert.NoError(t, err)

	rows := st.Rows()
	assert.Len(t, rows, 1)
	assert.Equal(t, "backend", rows[0].Code)

	// scoped to english it matches nothing
	filters[0].LanguageID = "lang-en"
	err = st.Search(context.Background(), filters)
	assert.NoError(t, err)
	assert.Empty(t, st.Rows())
}

func TestDeleteLastRowOnPageStepsBack(t *testing.T) {

	st, done := stubStore(t, 2)
	defer done()
	ctx := context.Background()

	err := st.Fetch(ctx, 1, nil, nil)
	assert.NoError(t, err)
	assert.Len(t, st.Rows(), 1)

	err = st.Delete(ctx, st.Rows()[0].RecordID())
	assert.NoError(t, err)

	assert.Equal(t, 0, st.Page().Page)
	assert.Equal(t, 2, st.Page().Total)
	assert.Len(t, st.Rows(), 2)
}

func TestCreateRefetches(t *testing.T) {

	st, done := stubStore(t, 10)
	defer done()
	ctx := context.Background()

	err := st.Fetch(ctx, 0, nil, nil)
	assert.NoError(t, err)

	payload := map[string]any{
		"code":      "devops",
		"type_code": "technical",
		"category_texts": []map[string]any{
			{"language_id": "lang-en", "name": "DevOps"},
		},
	}
	err = st.Create(ctx, payload)
	assert.NoError(t, err)

	assert.Equal(t, 4, st.Page().Total)
}

func TestCreateConflictFaults(t *testing.T) {

	st, done := stubStore(t, 10)
	defer done()
	ctx := context.Background()

	err := st.Create(ctx, map[string]any{"code": "backend", "type_code": "technical"})
	assert.Error(t, err)

	assert.Equal(t, rest.Conflict, st.Fault().Kind)
}

func TestUnauthenticatedFetchIsSkipped(t *testing.T) {

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests++
	}))
	defer server.Close()

	clt := rest.NewClient(server.URL, "")
	st := New[nt.Category](nt.CategorySchema(nil, nil), clt, auth.NewStatic(true, nil, nil), testLogger(), 10)

	err := st.Fetch(context.Background(), 0, nil, nil)
	assert.NoError(t, err)
	assert.Zero(t, requests)
}

func TestDeniedIsTerminalUntilRegrant(t *testing.T) {

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests++
		writer.WriteHeader(http.StatusForbidden)
		writer.Write([]byte(`{"error": "forbidden"}`))
	}))
	defer server.Close()

	clt := rest.NewClient(server.URL, testToken)
	schema := nt.CategorySchema(nil, nil)
	st := New[nt.Category](schema, clt, auth.NewStatic(true, nil, nil), testLogger(), 10)
	ctx := context.Background()

	err := st.Fetch(ctx, 0, nil, nil)
	assert.Error(t, err)
	assert.Equal(t, Denied, st.State())
	assert.Equal(t, rest.Permission, st.Fault().Kind)
	assert.Contains(t, st.Message(), "you do not have access to")
	assert.Equal(t, 1, requests)

	// denied is terminal, no further traffic
	err = st.Fetch(ctx, 0, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, requests)

	// regrant performs exactly one refetch attempt
	err = st.Regrant(ctx)
	assert.Error(t, err)
	assert.Equal(t, 2, requests)
	assert.Equal(t, Denied, st.State())
}

func TestRegrantWithoutModuleAccessDoesNothing(t *testing.T) {

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests++
		writer.WriteHeader(http.StatusForbidden)
		writer.Write([]byte(`{"error": "forbidden"}`))
	}))
	defer server.Close()

	clt := rest.NewClient(server.URL, testToken)
	st := New[nt.Category](nt.CategorySchema(nil, nil), clt, auth.NewStatic(false, nil, nil), testLogger(), 10)
	ctx := context.Background()

	err := st.Fetch(ctx, 0, nil, nil)
	assert.Error(t, err)
	assert.Equal(t, 1, requests)

	err = st.Regrant(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, requests)
	assert.Equal(t, Denied, st.State())
}

func TestAuthFaultMessage(t *testing.T) {

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		writer.Write([]byte(`{"error": "unauthorized"}`))
	}))
	defer server.Close()

	clt := rest.NewClient(server.URL, "stale")
	st := New[nt.Category](nt.CategorySchema(nil, nil), clt, auth.NewStatic(true, nil, nil), testLogger(), 10)

	err := st.Fetch(context.Background(), 0, nil, nil)
	assert.Error(t, err)
	assert.Equal(t, rest.Auth, st.Fault().Kind)
	assert.Equal(t, "session expired, logging out", st.Message())
}

func TestCheckCode(t *testing.T) {

	st, done := stubStore(t, 10)
	defer done()
	ctx := context.Background()

	assert.True(t, st.CheckCode(ctx, "backend", ""))
	assert.False(t, st.CheckCode(ctx, "backend", "cat-backend"))
	assert.False(t, st.CheckCode(ctx, "brand-new", ""))
}

func TestCheckCodeDegradesToUnique(t *testing.T) {

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	clt := rest.NewClient(server.URL, testToken)
	st := New[nt.Category](nt.CategorySchema(nil, nil), clt, auth.NewStatic(true, nil, nil), testLogger(), 10)

	assert.False(t, st.CheckCode(context.Background(), "backend", ""))
}
