package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	nt "atelier/entity"
)

// ListQuery carries the wire-level list parameters. Page is 1-indexed here;
// the list store translates from the grid's 0-indexed pages.
type ListQuery struct {
	Page      int
	PageSize  int
	Filters   []nt.WireFilter
	SortField string
	SortOrder string
}

// ListResult is the backend's list envelope.
type ListResult[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// List fetches one page of a collection.
func List[T any](ctx context.Context, clt *Client, path string, query ListQuery) (result ListResult[T], err error) {

	vals := url.Values{}
	vals.Set("page", strconv.Itoa(query.Page))
	vals.Set("page_size", strconv.Itoa(query.PageSize))
	if query.SortField != "" {
		vals.Set("sort_field", query.SortField)
		vals.Set("sort_order", query.SortOrder)
	}
	if len(query.Filters) > 0 {
		var data []byte
		data, err = json.Marshal(query.Filters)
		if err != nil {
			err = errors.Wrapf(err, "failed to marshal filters")
			return
		}
		vals.Set("filters", string(data))
	}

	err = clt.doJSON(ctx, http.MethodGet, path+"?"+vals.Encode(), nil, &result)
	return
}

// Get fetches one record by id.
func Get[T any](ctx context.Context, clt *Client, path, id string) (record T, err error) {
	err = clt.doJSON(ctx, http.MethodGet, path+"/"+url.PathEscape(id), nil, &record)
	return
}

// Create submits a new record and returns the authoritative copy.
func Create[T any](ctx context.Context, clt *Client, path string, payload any) (record T, err error) {
	err = clt.doJSON(ctx, http.MethodPost, path, payload, &record)
	return
}

// Update submits changes to a record and returns the authoritative copy.
func Update[T any](ctx context.Context, clt *Client, path, id string, payload any) (record T, err error) {
	err = clt.doJSON(ctx, http.MethodPatch, path+"/"+url.PathEscape(id), payload, &record)
	return
}

// Delete removes a record.
func Delete(ctx context.Context, clt *Client, path, id string) (err error) {
	err = clt.doJSON(ctx, http.MethodDelete, path+"/"+url.PathEscape(id), nil, nil)
	return
}

// Exists asks the dedicated endpoint whether a natural key is taken,
// optionally excluding the record being edited.
func Exists(ctx context.Context, clt *Client, path, code, excludeID string) (exists bool, err error) {

	vals := url.Values{}
	vals.Set("code", code)
	if excludeID != "" {
		vals.Set("exclude_id", excludeID)
	}

	var result struct {
		Exists bool `json:"exists"`
	}
	err = clt.doJSON(ctx, http.MethodGet, path+"/exists?"+vals.Encode(), nil, &result)
	if err != nil {
		return
	}

	exists = result.Exists
	return
}

// Reorder persists a new display order as the full list of ids.
func Reorder(ctx context.Context, clt *Client, path string, ids []string) (err error) {
	payload := map[string][]string{"ids": ids}
	err = clt.doJSON(ctx, http.MethodPut, path+"/reorder", payload, nil)
	return
}
