// Package rest is the HTTP/JSON client for the back-office API. It owns the
// wire format of list queries (1-indexed pages, JSON-encoded filter arrays,
// sort_field/sort_order) and classifies every failure into a Fault.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// Client targets one backend base URL. When token is non-empty it is sent
// as a bearer Authorization header on every request.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Authenticated reports whether a token is configured; list fetches are
// skipped silently without one.
func (clt *Client) Authenticated() bool {
	return clt.token != ""
}

// doJSON performs a request with optional JSON body and decodes the JSON
// response into result when non-nil. Non-2xx responses come back as a Fault.
func (clt *Client) doJSON(ctx context.Context, method, path string, body, result any) (err error) {

	var bodyReader io.Reader
	if body != nil {
		var data []byte
		data, err = json.Marshal(body)
		if err != nil {
			err = errors.Wrapf(err, "failed to marshal request body")
			return
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, clt.baseURL+path, bodyReader)
	if err != nil {
		err = errors.Wrapf(err, "failed to create request")
		return
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if clt.token != "" {
		req.Header.Set("Authorization", "Bearer "+clt.token)
	}

	resp, err := clt.httpClient.Do(req)
	if err != nil {
		err = &Fault{Kind: Network, Message: err.Error()}
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		err = &Fault{Kind: Network, Message: err.Error()}
		return
	}

	if resp.StatusCode >= 400 {
		var eb errorBody
		// Non-JSON error bodies fall through to the generic message.
		_ = json.Unmarshal(respBody, &eb)
		err = fromStatus(resp.StatusCode, eb)
		return
	}

	if result != nil {
		err = json.Unmarshal(respBody, result)
		if err != nil {
			err = errors.Wrapf(err, "failed to decode response")
		}
	}

	return
}
