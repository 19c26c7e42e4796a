package web

import (
	"context"
	"sync"

	"celula/internal/application/form"
)

// outcome collects what a controller asked for while serving one request:
// the notice to flash and the route to redirect to.
type outcome struct {
	mu       sync.Mutex
	notice   *form.Notice
	location string
}

func (o *outcome) Notice() (form.Notice, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.notice == nil {
		return form.Notice{}, false
	}
	return *o.notice, true
}

func (o *outcome) Location() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.location
}

type outcomeKey struct{}

func withOutcome(ctx context.Context) (context.Context, *outcome) {
	o := &outcome{}
	return context.WithValue(ctx, outcomeKey{}, o), o
}

// effects implements form.Notifier and form.Navigator by writing into the
// outcome of the request in ctx. Controllers outlive requests, so their
// side effects are routed per call rather than bound at construction.
type effects struct{}

var (
	_ form.Notifier  = effects{}
	_ form.Navigator = effects{}
)

func (effects) Notify(ctx context.Context, n form.Notice) {
	if o, ok := ctx.Value(outcomeKey{}).(*outcome); ok {
		o.mu.Lock()
		o.notice = &n
		o.mu.Unlock()
	}
}

func (effects) Navigate(ctx context.Context, route string) {
	if o, ok := ctx.Value(outcomeKey{}).(*outcome); ok {
		o.mu.Lock()
		o.location = route
		o.mu.Unlock()
	}
}
