package collapse

import (
	"errors"
	"time"

	"github.com/colonyops/threads/internal/core/truncate"
)

// ErrStale is returned when a measurement arrives for a comment that has been
// unmounted, remounted, or already received a newer measurement.
var ErrStale = errors.New("collapse: stale measurement")

// Ticket identifies one measurement request for one mount of a comment.
type Ticket struct {
	ID         string
	Generation uint64
	Seq        uint64
}

type entry struct {
	ctrl       *Controller
	generation uint64
	requested  uint64
	applied    uint64
}

// Registry owns one Controller per mounted comment, keyed by comment ID and
// kept apart from comment data so refreshes do not reset interaction state.
type Registry struct {
	entries  map[string]*entry
	nextGen  uint64
	duration time.Duration
}

// NewRegistry returns an empty registry whose controllers animate for d.
func NewRegistry(d time.Duration) *Registry {
	return &Registry{
		entries:  make(map[string]*entry),
		duration: d,
	}
}

// Mount creates a controller for id if one does not exist and returns it.
func (r *Registry) Mount(id string) *Controller {
	if e, ok := r.entries[id]; ok {
		return e.ctrl
	}
	r.nextGen++
	e := &entry{ctrl: NewController(r.duration), generation: r.nextGen}
	r.entries[id] = e
	return e.ctrl
}

// Unmount destroys the controller for id. Pending measurements for it become
// stale.
func (r *Registry) Unmount(id string) {
	delete(r.entries, id)
}

// Sync mounts every id in ids and unmounts everything else. It returns the
// IDs that were unmounted.
func (r *Registry) Sync(ids []string) []string {
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
		r.Mount(id)
	}

	var removed []string
	for id := range r.entries {
		if _, ok := keep[id]; !ok {
			removed = append(removed, id)
			delete(r.entries, id)
		}
	}
	return removed
}

// Get returns the controller for id, or nil if it is not mounted.
func (r *Registry) Get(id string) *Controller {
	if e, ok := r.entries[id]; ok {
		return e.ctrl
	}
	return nil
}

// Len returns the number of mounted controllers.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Request issues a ticket for a new measurement of id. The bool is false if id
// is not mounted.
func (r *Registry) Request(id string) (Ticket, bool) {
	e, ok := r.entries[id]
	if !ok {
		return Ticket{}, false
	}
	e.requested++
	return Ticket{ID: id, Generation: e.generation, Seq: e.requested}, true
}

// Apply writes a measurement into the controller named by the ticket. It
// returns ErrStale and leaves all state untouched when the comment was
// unmounted, remounted, or a newer measurement was already applied. An
// Unmeasured verdict never replaces an earlier measurement.
func (r *Registry) Apply(t Ticket, v truncate.Verdict) error {
	e, ok := r.entries[t.ID]
	if !ok || e.generation != t.Generation || t.Seq < e.applied {
		return ErrStale
	}
	if !v.Measured() {
		return nil
	}
	e.applied = t.Seq
	e.ctrl.Apply(v)
	return nil
}

// ExpandAll expands every overflowing comment and returns how many changed.
func (r *Registry) ExpandAll(now time.Time) int {
	n := 0
	for _, e := range r.entries {
		if e.ctrl.Expand(now) {
			n++
		}
	}
	return n
}

// CollapseAll collapses every expanded comment and returns how many changed.
func (r *Registry) CollapseAll(now time.Time) int {
	n := 0
	for _, e := range r.entries {
		if e.ctrl.Collapse(now) {
			n++
		}
	}
	return n
}

// Animating returns true if any controller has a transition in flight.
func (r *Registry) Animating(now time.Time) bool {
	for _, e := range r.entries {
		if e.ctrl.Animating(now) {
			return true
		}
	}
	return false
}

// Settle drops finished transitions and reports whether any were dropped.
func (r *Registry) Settle(now time.Time) bool {
	changed := false
	for _, e := range r.entries {
		if e.ctrl.Settle(now) {
			changed = true
		}
	}
	return changed
}
