package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {

	cases := []struct {
		status int
		kind   Kind
	}{
		{401, Auth},
		{403, Permission},
		{404, NotFound},
		{409, Conflict},
		{422, Validation},
		{500, Unknown},
		{502, Unknown},
	}

	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(tc.status)
			writer.Write([]byte(`{"error": "nope", "fields": {"code": "bad"}}`))
		}))

		clt := NewClient(server.URL, "token")
		var out map[string]any
		err := clt.doJSON(context.Background(), http.MethodGet, "/things", nil, &out)
		server.Close()

		assert.Error(t, err)
		flt := Classify(err)
		assert.Equal(t, tc.kind, flt.Kind, "status %d", tc.status)
		assert.Equal(t, tc.status, flt.Status)
		assert.Equal(t, "nope", flt.Message)
		assert.Equal(t, "bad", flt.Fields["code"])
	}
}

func TestNonJSONErrorBody(t *testing.T) {

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
		writer.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	clt := NewClient(server.URL, "token")
	err := clt.doJSON(context.Background(), http.MethodGet, "/things", nil, nil)

	flt := Classify(err)
	assert.Equal(t, Unknown, flt.Kind)
	assert.Contains(t, flt.Message, "status 502")
}

func TestTransportFailureIsNetwork(t *testing.T) {

	clt := NewClient("http://127.0.0.1:1", "token")
	err := clt.doJSON(context.Background(), http.MethodGet, "/things", nil, nil)

	flt := Classify(err)
	assert.Equal(t, Network, flt.Kind)
}

func TestClassifyUnwraps(t *testing.T) {

	inner := &Fault{Kind: Conflict, Status: 409}
	wrapped := errors.Wrapf(inner, "saving record")

	flt := Classify(wrapped)
	assert.Equal(t, Conflict, flt.Kind)

	flt = Classify(errors.New("socket closed"))
	assert.Equal(t, Network, flt.Kind)

	assert.Nil(t, Classify(nil))
}

func TestAuthorizationHeaderAndNoContent(t *testing.T) {

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "Bearer token", request.Header.Get("Authorization"))
		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	clt := NewClient(server.URL, "token")
	err := clt.doJSON(context.Background(), http.MethodDelete, "/things/1", nil, nil)
	assert.NoError(t, err)
}
