package web

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"celula/internal/application/form"
)

// DefaultFormTTL is how long an untouched form stays claimable.
const DefaultFormTTL = 30 * time.Minute

// formRegistry keeps the controllers of rendered forms between the GET that
// shows a form and the POSTs that submit it. The token travels in a hidden
// input, so a double-clicked submit reaches the same controller and its
// in-flight guard.
type formRegistry struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*registered
}

type registered struct {
	ctrl    *form.Controller
	expires time.Time
}

// newFormRegistry starts a registry whose sweeper stops with ctx.
func newFormRegistry(ctx context.Context, ttl time.Duration) *formRegistry {
	if ttl <= 0 {
		ttl = DefaultFormTTL
	}
	reg := &formRegistry{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*registered),
	}
	go func() {
		ticker := time.NewTicker(ttl / 2)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := reg.sweep(); n > 0 {
					slog.Debug("forms_expired", "count", n)
				}
			}
		}
	}()
	return reg
}

// Put registers ctrl and returns its token.
func (fr *formRegistry) Put(ctrl *form.Controller) string {
	token := uuid.NewString()
	fr.mu.Lock()
	defer fr.mu.Unlock()
	fr.entries[token] = &registered{ctrl: ctrl, expires: fr.now().Add(fr.ttl)}
	return token
}

// Get returns the controller behind token and extends its lifetime.
func (fr *formRegistry) Get(token string) (*form.Controller, bool) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, false
	}
	fr.mu.Lock()
	defer fr.mu.Unlock()
	e, ok := fr.entries[token]
	if !ok || !fr.now().Before(e.expires) {
		return nil, false
	}
	e.expires = fr.now().Add(fr.ttl)
	return e.ctrl, true
}

// Len returns the number of registered forms, expired ones included until
// the next sweep.
func (fr *formRegistry) Len() int {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	return len(fr.entries)
}

// sweep drops expired forms and reports how many went.
func (fr *formRegistry) sweep() int {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	now := fr.now()
	n := 0
	for token, e := range fr.entries {
		if !now.Before(e.expires) {
			delete(fr.entries, token)
			n++
		}
	}
	return n
}
