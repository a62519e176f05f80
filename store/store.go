// Package store holds the per-entity list stores: the current page of rows,
// the active filter/sort/pagination state, and the fetch/create/update/
// delete operations that keep local state aligned with the backend's
// authoritative responses.
package store

import (
	"context"
	"sync"

	"atelier/auth"
	nt "atelier/entity"
	"atelier/rest"
)

// State of a list store. Denied is terminal until an external permission
// change is reported through Regrant.
type State int

const (
	Idle State = iota
	Loading
	Denied
)

// Store is the source of truth for one entity type's current page. It owns
// the translation between the grid's 0-indexed pages and the backend's
// 1-indexed ones, and refetches after every mutation rather than patching
// rows locally. Methods run from command goroutines, so field access is
// serialized by mu.
type Store[T nt.Record] struct {
	schema nt.Schema
	client *rest.Client
	caps   auth.Capabilities
	logger nt.Logger

	mu  sync.Mutex
	gen int

	rows    []T
	page    nt.Page
	filters []nt.WireFilter
	sorts   []nt.Sort

	state   State
	fault   *rest.Fault
	message string

	phase     ReorderPhase
	lastOrder []T
}

func New[T nt.Record](schema nt.Schema, clt *rest.Client, caps auth.Capabilities, lgr nt.Logger, pageSize int) *Store[T] {
	return &Store[T]{
		schema:  schema,
		client:  clt,
		caps:    caps,
		logger:  lgr,
		page:    nt.Page{Size: pageSize},
		filters: []nt.WireFilter{},
	}
}

func (st *Store[T]) Rows() []T {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.rows
}

func (st *Store[T]) Page() nt.Page {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.page
}

func (st *Store[T]) Filters() []nt.WireFilter {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.filters
}

func (st *Store[T]) Sorts() []nt.Sort {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sorts
}

func (st *Store[T]) State() State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

func (st *Store[T]) Fault() *rest.Fault {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.fault
}

func (st *Store[T]) Message() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.message
}

func (st *Store[T]) Schema() nt.Schema { return st.schema }

func (st *Store[T]) AccessDenied() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state == Denied
}

// Fetch loads one page. Skips silently when unauthenticated, never fetches
// again once denied, and classifies every failure into exactly one fault.
// Each call opens a new generation; a response arriving after a newer fetch
// has started is discarded, outcome and all.
func (st *Store[T]) Fetch(ctx context.Context, page int, filters []nt.WireFilter, sorts []nt.Sort) (err error) {

	if !st.client.Authenticated() {
		st.logger.Info(ctx, "skipping fetch, not authenticated", "entity", st.schema.Name)
		return nil
	}

	st.mu.Lock()
	if st.state == Denied {
		st.mu.Unlock()
		return nil
	}

	st.state = Loading
	st.filters = filters
	st.sorts = sorts
	st.gen++
	gen := st.gen

	srt := st.normalizedSort(sorts)
	query := rest.ListQuery{
		Page:      page + 1,
		PageSize:  st.page.Size,
		Filters:   filters,
		SortField: srt.Field,
		SortOrder: srt.Order(),
	}
	st.mu.Unlock()

	result, err := rest.List[T](ctx, st.client, st.schema.Path, query)

	st.mu.Lock()
	defer st.mu.Unlock()

	if gen != st.gen {
		st.logger.Info(ctx, "discarding superseded fetch", "entity", st.schema.Name)
		return nil
	}
	if err != nil {
		return st.fail(ctx, err)
	}

	st.state = Idle
	st.fault = nil
	st.message = ""

	// A background refresh must not overwrite an optimistic reorder.
	if st.phase == ReorderPending {
		return nil
	}

	st.rows = result.Items
	st.page = nt.Page{Page: page, Size: st.page.Size, Total: result.Total}
	return nil
}

// Search applies a new filter array, resetting to the first page.
func (st *Store[T]) Search(ctx context.Context, filters []nt.WireFilter) error {
	st.mu.Lock()
	sorts := st.sorts
	st.mu.Unlock()
	return st.Fetch(ctx, 0, filters, sorts)
}

// SetSort applies a new sort model, keeping the current page.
func (st *Store[T]) SetSort(ctx context.Context, sorts []nt.Sort) error {
	st.mu.Lock()
	page, filters := st.page.Page, st.filters
	st.mu.Unlock()
	return st.Fetch(ctx, page, filters, sorts)
}

// SetPage moves to another 0-indexed page.
func (st *Store[T]) SetPage(ctx context.Context, page int) error {
	st.mu.Lock()
	filters, sorts := st.filters, st.sorts
	st.mu.Unlock()
	return st.Fetch(ctx, page, filters, sorts)
}

// Refetch reloads the current page with current filters and sort.
func (st *Store[T]) Refetch(ctx context.Context) error {
	st.mu.Lock()
	page, filters, sorts := st.page.Page, st.filters, st.sorts
	st.mu.Unlock()
	return st.Fetch(ctx, page, filters, sorts)
}

// Create submits a new record, then refetches so the grid reflects server
// truth.
func (st *Store[T]) Create(ctx context.Context, payload any) (err error) {
	_, err = rest.Create[T](ctx, st.client, st.schema.Path, payload)
	if err != nil {
		st.mu.Lock()
		defer st.mu.Unlock()
		return st.fail(ctx, err)
	}
	return st.Refetch(ctx)
}

// Update submits changes to a record, then refetches.
func (st *Store[T]) Update(ctx context.Context, id string, payload any) (err error) {
	_, err = rest.Update[T](ctx, st.client, st.schema.Path, id, payload)
	if err != nil {
		st.mu.Lock()
		defer st.mu.Unlock()
		return st.fail(ctx, err)
	}
	return st.Refetch(ctx)
}

// Delete removes a record and refetches. Deleting the last row of a page
// beyond the first steps back one page so the user does not land on an
// empty one.
func (st *Store[T]) Delete(ctx context.Context, id string) (err error) {
	err = rest.Delete(ctx, st.client, st.schema.Path, id)
	if err != nil {
		st.mu.Lock()
		defer st.mu.Unlock()
		return st.fail(ctx, err)
	}

	st.mu.Lock()
	page := st.page.Page
	if len(st.rows) == 1 && page > 0 {
		page--
	}
	filters, sorts := st.filters, st.sorts
	st.mu.Unlock()
	return st.Fetch(ctx, page, filters, sorts)
}

// CheckCode reports whether a natural key is already taken. Transport
// failures degrade to "not a conflict" so a flaky network does not block the
// form; only an explicit exists=true blocks submission.
func (st *Store[T]) CheckCode(ctx context.Context, code, excludeID string) (exists bool) {
	exists, err := rest.Exists(ctx, st.client, st.schema.Path, code, excludeID)
	if err != nil {
		st.logger.Error(ctx, "uniqueness check failed, assuming unique", err, "entity", st.schema.Name, "code", code)
		return false
	}
	return exists
}

// Regrant is called when the host detects an external permission change.
// It leaves the denied state and performs exactly one refetch attempt.
func (st *Store[T]) Regrant(ctx context.Context) (err error) {
	st.mu.Lock()
	if st.state != Denied {
		st.mu.Unlock()
		return nil
	}
	if !st.caps.CanAccessModule(st.schema.Module) {
		st.mu.Unlock()
		return nil
	}

	st.state = Idle
	st.fault = nil
	st.message = ""
	st.mu.Unlock()
	return st.Refetch(ctx)
}

// unexported

func (st *Store[T]) normalizedSort(sorts []nt.Sort) nt.Sort {
	if len(sorts) > 0 && sorts[0].Field != "" {
		return sorts[0]
	}
	return nt.Sort{Field: st.schema.DefaultSort}
}

// fail records the classified fault and a rendered message; nothing
// propagates unclassified past the store. Callers hold mu.
func (st *Store[T]) fail(ctx context.Context, cause error) error {

	flt := rest.Classify(cause)
	st.fault = flt
	st.state = Idle

	switch flt.Kind {
	case rest.Auth:
		st.message = "session expired, logging out"
	case rest.Permission:
		st.state = Denied
		st.message = "you do not have access to " + st.schema.Title
	case rest.Network:
		st.message = "network error, the request may have completed"
	case rest.Unknown:
		st.message = "unexpected error, refresh to check"
	default:
		st.message = flt.Message
	}

	st.logger.Error(ctx, "store operation failed", flt, "entity", st.schema.Name, "kind", flt.Kind.String())
	return flt
}
