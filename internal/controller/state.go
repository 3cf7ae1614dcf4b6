// Package controller holds per-page view state: the current record list, the
// loading and submitting flags, and ephemeral selection/hover state. Each
// page owns its list for the duration of a mount; there is no cross-page
// cache, and navigating back re-fetches.
package controller

import (
	"sync"
)

// PageState is the page lifecycle: Idle before the first fetch, Loading while
// a fetch is in flight, Ready once data (live or demo) has settled.
type PageState int

const (
	StateIdle PageState = iota
	StateLoading
	StateReady
)

func (s PageState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "idle"
	}
}

// viewState is the scaffolding shared by every page controller. Handlers may
// run concurrently, so access is mutex-guarded; the sequence counter makes
// "latest issued refresh wins" explicit — a response whose sequence is not
// the newest issued is discarded, so a slow stale fetch can never clobber
// fresher data.
type viewState[T any] struct {
	mu         sync.Mutex
	records    []T
	state      PageState
	submitting bool
	selectedID int64
	hovered    string
	issuedSeq  uint64
}

// beginRefresh marks the page Loading and issues a new sequence number. The
// currently displayed records are intentionally left in place: a refresh
// must not flash the page to empty.
func (v *viewState[T]) beginRefresh() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = StateLoading
	v.issuedSeq++
	return v.issuedSeq
}

// completeRefresh installs records if seq is still the latest issued refresh
// and reports whether it was applied. The Loading→Ready transition happens
// exactly once per cycle regardless of whether live or demo data settled.
func (v *viewState[T]) completeRefresh(seq uint64, records []T) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if seq != v.issuedSeq {
		return false
	}
	v.records = records
	v.state = StateReady
	return true
}

// prepend inserts a synthesized record at the head of the list, the
// optimistic-update path after a successful POST. No refetch follows.
func (v *viewState[T]) prepend(record T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.records = append([]T{record}, v.records...)
}

// setSubmitting flips the orthogonal submit-in-flight flag.
func (v *viewState[T]) setSubmitting(submitting bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.submitting = submitting
}

// Select toggles row selection: selecting the current id clears it,
// selecting another replaces it. Pure UI state.
func (v *viewState[T]) Select(id int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.selectedID == id {
		v.selectedID = 0
		return
	}
	v.selectedID = id
}

// Hover replaces the hovered key. An empty key clears it.
func (v *viewState[T]) Hover(key string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hovered = key
}

// snapshot copies the current state under the lock.
func (v *viewState[T]) snapshot() (records []T, state PageState, submitting bool, selectedID int64, hovered string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	records = make([]T, len(v.records))
	copy(records, v.records)
	return records, v.state, v.submitting, v.selectedID, v.hovered
}
