// Package listing owns the record collection behind a list screen: loading
// it, filtering it locally and deleting records behind a confirmation step.
package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"celula/internal/adapters/apiclient"
	"celula/internal/application/form"
	"celula/internal/application/inflight"

	"golang.org/x/text/cases"
)

// Sentinel errors returned by the controller.
var (
	ErrLoad            = errors.New("could not load records")
	ErrDelete          = errors.New("could not delete record")
	ErrNoPendingDelete = errors.New("no delete awaiting confirmation for this record")
	ErrDeleteInFlight  = errors.New("a delete is already in progress")
)

// Client is the slice of the resource client the controller needs.
type Client interface {
	GetAll(ctx context.Context, resource, search string) (*apiclient.Response, error)
	Delete(ctx context.Context, resource string, id int64) (*apiclient.Response, error)
}

// Config describes one kind of list.
type Config[T any] struct {
	Resource  string
	ID        func(T) int64
	Haystack  func(T) []string // fields the local filter searches
	EditRoute func(id int64) string

	// Describe builds the notice for a finished delete. Nil selects a
	// generic message.
	Describe func(rec T, ok bool) form.Notice
}

// Deps holds the controller's collaborators.
type Deps struct {
	Client    Client
	Notifier  form.Notifier
	Navigator form.Navigator
}

// Dialog is the delete confirmation state.
type Dialog[T any] struct {
	Open   bool
	Record T
}

// Controller holds the records of one list screen.
// INVARIANT: a failed load leaves the collection empty, never substituted
type Controller[T any] struct {
	mu      sync.Mutex
	cfg     Config[T]
	deps    Deps
	records []T
	loadErr error
	pending *T
	del     inflight.Guard
}

// New creates an empty controller.
func New[T any](cfg Config[T], deps Deps) *Controller[T] {
	return &Controller[T]{cfg: cfg, deps: deps}
}

// Load fetches the whole collection.
func (c *Controller[T]) Load(ctx context.Context) error {
	return c.Search(ctx, "")
}

// Search fetches the collection filtered by the backend's search parameter.
// POST: on failure the collection is empty and LoadErr reports why
func (c *Controller[T]) Search(ctx context.Context, term string) error {
	records, err := c.fetch(ctx, term)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		slog.Error("list_load_failed", "resource", c.cfg.Resource, "error", err)
		c.records = nil
		c.loadErr = err
		return err
	}
	c.records = records
	c.loadErr = nil
	return nil
}

func (c *Controller[T]) fetch(ctx context.Context, term string) ([]T, error) {
	resp, err := c.deps.Client.GetAll(ctx, c.cfg.Resource, term)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	if !resp.OK {
		return nil, fmt.Errorf("%w: status %d", ErrLoad, resp.StatusCode)
	}
	var records []T
	if err := resp.List(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	return records, nil
}

// Records returns a copy of the loaded collection.
func (c *Controller[T]) Records() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.records))
	copy(out, c.records)
	return out
}

// LoadErr returns the error of the last load, nil after a successful one.
func (c *Controller[T]) LoadErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// Filter returns the records whose haystack contains text, ignoring case,
// in collection order. Blank text matches everything.
func (c *Controller[T]) Filter(text string) []T {
	c.mu.Lock()
	records := make([]T, len(c.records))
	copy(records, c.records)
	c.mu.Unlock()
	return Filter(records, text, c.cfg.Haystack)
}

// Filter is the pure form of Controller.Filter.
func Filter[T any](records []T, text string, haystack func(T) []string) []T {
	needle := strings.TrimSpace(text)
	if needle == "" {
		return records
	}
	fold := cases.Fold()
	needle = fold.String(needle)
	out := make([]T, 0, len(records))
	for _, r := range records {
		for _, field := range haystack(r) {
			if strings.Contains(fold.String(field), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// RequestDelete opens the confirmation dialog for rec.
// POST: the collection is unchanged
func (c *Controller[T]) RequestDelete(rec T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = &rec
}

// CancelDelete closes the confirmation dialog.
func (c *Controller[T]) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}

// Dialog returns the confirmation state.
func (c *Controller[T]) Dialog() Dialog[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return Dialog[T]{}
	}
	return Dialog[T]{Open: true, Record: *c.pending}
}

// ConfirmDelete deletes the record awaiting confirmation.
// PRE: RequestDelete was called for a record with this id
// POST: on success the collection is re-fetched and the dialog closed; on
// failure the dialog stays open so the user can retry or cancel
func (c *Controller[T]) ConfirmDelete(ctx context.Context, id int64) error {
	c.mu.Lock()
	if c.pending == nil || c.cfg.ID(*c.pending) != id {
		c.mu.Unlock()
		return ErrNoPendingDelete
	}
	rec := *c.pending
	c.mu.Unlock()

	if !c.del.Begin() {
		return ErrDeleteInFlight
	}
	defer c.del.Release()

	resp, err := c.deps.Client.Delete(ctx, c.cfg.Resource, id)
	if err != nil || !resp.OK {
		c.notify(ctx, c.describe(rec, false))
		if err != nil {
			slog.Error("list_delete_failed", "resource", c.cfg.Resource, "id", id, "error", err)
			return fmt.Errorf("%w: %v", ErrDelete, err)
		}
		slog.Warn("list_delete_rejected", "resource", c.cfg.Resource, "id", id, "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", ErrDelete, resp.StatusCode)
	}

	slog.Info("record_deleted", "resource", c.cfg.Resource, "id", id)
	// a failed refetch is already logged and reflected in LoadErr
	_ = c.Load(ctx)

	c.mu.Lock()
	if c.pending != nil && c.cfg.ID(*c.pending) == id {
		c.pending = nil
	}
	c.mu.Unlock()
	c.notify(ctx, c.describe(rec, true))
	return nil
}

// RequestEdit sends the user to the record's edit screen, carrying only its id.
func (c *Controller[T]) RequestEdit(ctx context.Context, rec T) {
	if c.deps.Navigator != nil && c.cfg.EditRoute != nil {
		c.deps.Navigator.Navigate(ctx, c.cfg.EditRoute(c.cfg.ID(rec)))
	}
}

func (c *Controller[T]) describe(rec T, ok bool) form.Notice {
	if c.cfg.Describe != nil {
		return c.cfg.Describe(rec, ok)
	}
	if ok {
		return form.Notice{Kind: form.NoticeSuccess, Title: "Excluído com sucesso"}
	}
	return form.Notice{Kind: form.NoticeError, Title: "Erro ao excluir"}
}

func (c *Controller[T]) notify(ctx context.Context, n form.Notice) {
	if c.deps.Notifier != nil {
		c.deps.Notifier.Notify(ctx, n)
	}
}
