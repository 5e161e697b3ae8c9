package services

import (
	"context"
	"sync"
)

// RouteTracker discards stale day route computations.
//
// Begin hands out a generation token for a day and cancels the context of any
// computation already running for it. Commit accepts a result only while its
// token is still the newest one, so a slow older computation can never
// overwrite a newer result regardless of completion order.
type RouteTracker struct {
	mu   sync.Mutex
	days map[string]*trackedDay
}

type trackedDay struct {
	generation uint64
	cancel     context.CancelFunc
}

func NewRouteTracker() *RouteTracker {
	return &RouteTracker{days: make(map[string]*trackedDay)}
}

// Begin starts a new computation for dayID. The returned context is cancelled
// when a newer computation for the same day begins.
func (t *RouteTracker) Begin(ctx context.Context, dayID string) (context.Context, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	d, ok := t.days[dayID]
	if !ok {
		d = &trackedDay{}
		t.days[dayID] = d
	}
	if d.cancel != nil {
		d.cancel()
	}

	d.generation++
	cctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	return cctx, d.generation
}

// Commit reports whether generation is still current for dayID and, if so,
// runs apply while holding the tracker lock.
func (t *RouteTracker) Commit(dayID string, generation uint64, apply func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	d, ok := t.days[dayID]
	if !ok || d.generation != generation {
		return false
	}
	if apply != nil {
		apply()
	}
	return true
}

// Done releases the context of a finished computation if it is still current.
func (t *RouteTracker) Done(dayID string, generation uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if d, ok := t.days[dayID]; ok && d.generation == generation && d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

// Current returns the newest generation handed out for dayID.
func (t *RouteTracker) Current(dayID string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if d, ok := t.days[dayID]; ok {
		return d.generation
	}
	return 0
}
