// Package inflight provides a tri-state guard against duplicate submissions.
package inflight

import (
	"sync"
	"sync/atomic"
)

// Phase is the guard's current state.
type Phase int32

const (
	// Idle accepts a new operation.
	Idle Phase = iota
	// Pending means an operation is running.
	Pending
	// Done means an operation succeeded; the guard accepts nothing further.
	Done
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Done:
		return "done"
	}
	return "unknown"
}

// Guard tracks one operation at a time. The zero value is Idle.
// INVARIANT: at most one caller holds the guard between Begin and Finish.
type Guard struct {
	phase atomic.Int32
}

// Begin claims the guard.
// POST: returns true only when the guard moved from Idle to Pending.
func (g *Guard) Begin() bool {
	return g.phase.CompareAndSwap(int32(Idle), int32(Pending))
}

// Finish releases the guard. A successful operation moves it to Done;
// a failed one returns it to Idle so the caller may retry.
func (g *Guard) Finish(ok bool) {
	next := Idle
	if ok {
		next = Done
	}
	g.phase.CompareAndSwap(int32(Pending), int32(next))
}

// Release returns a Pending or Done guard to Idle.
func (g *Guard) Release() {
	g.phase.Store(int32(Idle))
}

// Phase returns the current phase.
func (g *Guard) Phase() Phase {
	return Phase(g.phase.Load())
}

// Keyed guards many operations at once, one per key, such as deletes of
// distinct records. The zero value is ready to use.
type Keyed struct {
	mu   sync.Mutex
	busy map[string]bool
}

// Begin claims key.
// POST: returns true only when no other caller holds key
func (k *Keyed) Begin(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.busy[key] {
		return false
	}
	if k.busy == nil {
		k.busy = make(map[string]bool)
	}
	k.busy[key] = true
	return true
}

// Release frees key.
func (k *Keyed) Release(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.busy, key)
}
