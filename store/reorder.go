package store

import (
	"context"

	"github.com/pkg/errors"

	nt "atelier/entity"
	"atelier/rest"
)

// ReorderPhase is the optimistic drag-reorder state machine:
//
//	synced → pending → (confirmed | rolledBack) → synced
//
// The reordered rows are applied locally on Begin, persisted on Persist,
// and restored to the last server-confirmed order when persistence fails.
// While pending, fetch results are not applied to rows.
type ReorderPhase int

const (
	ReorderSynced ReorderPhase = iota
	ReorderPending
	ReorderConfirmed
	ReorderRolledBack
)

func (ph ReorderPhase) String() string {
	switch ph {
	case ReorderPending:
		return "pending"
	case ReorderConfirmed:
		return "confirmed"
	case ReorderRolledBack:
		return "rolledBack"
	}
	return "synced"
}

// Phase returns the current reorder phase.
func (st *Store[T]) Phase() ReorderPhase {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.phase
}

// BeginReorder applies the new order to local state immediately and opens
// the pending window. Only legal from synced.
func (st *Store[T]) BeginReorder(rows []T) (err error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.phase != ReorderSynced {
		return errors.Errorf("reorder begun in phase %s", st.phase)
	}
	if len(rows) != len(st.rows) {
		return errors.Errorf("reorder row count %d does not match page of %d", len(rows), len(st.rows))
	}

	st.lastOrder = st.rows
	st.rows = rows
	st.phase = ReorderPending
	return nil
}

// PersistReorder sends the optimistic order to the backend. On failure the
// last server-confirmed order is restored.
func (st *Store[T]) PersistReorder(ctx context.Context) (err error) {
	st.mu.Lock()
	if st.phase != ReorderPending {
		st.mu.Unlock()
		return errors.Errorf("reorder persisted in phase %s", st.phase)
	}

	ids := make([]string, len(st.rows))
	for i, row := range st.rows {
		ids[i] = row.RecordID()
	}
	st.mu.Unlock()

	err = rest.Reorder(ctx, st.client, st.schema.Path, ids)

	st.mu.Lock()
	defer st.mu.Unlock()
	if err != nil {
		st.rows = st.lastOrder
		st.phase = ReorderRolledBack
		st.lastOrder = nil
		return st.fail(ctx, err)
	}

	st.phase = ReorderConfirmed
	st.lastOrder = nil
	return nil
}

// AckReorder returns to synced once the outcome has been surfaced.
func (st *Store[T]) AckReorder() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.phase == ReorderConfirmed || st.phase == ReorderRolledBack {
		st.phase = ReorderSynced
	}
}

// MoveRow is the keyboard equivalent of a drag: swaps the selected row with
// its neighbor and returns the resulting order for BeginReorder.
func MoveRow[T nt.Record](rows []T, from, to int) (moved []T, ok bool) {
	if from < 0 || from >= len(rows) || to < 0 || to >= len(rows) || from == to {
		return nil, false
	}
	moved = make([]T, len(rows))
	copy(moved, rows)
	moved[from], moved[to] = moved[to], moved[from]
	return moved, true
}
