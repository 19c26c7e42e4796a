// Package form owns the edit buffer of a single record: it validates field
// edits as they arrive, hydrates the buffer from a persisted record in edit
// mode, and submits the validated values to the backend.
package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"celula/internal/adapters/apiclient"
	"celula/internal/application/inflight"
	"celula/internal/application/schema"
)

// Sentinel errors returned by the controller.
var (
	ErrInvalid      = errors.New("form has invalid fields")
	ErrInFlight     = errors.New("form submission already in progress or completed")
	ErrNotReady     = errors.New("form is still loading its record")
	ErrUnknownField = errors.New("unknown form field")
	ErrLoad         = errors.New("could not load record")
	ErrSave         = errors.New("could not save record")
)

// State is the controller's lifecycle position.
type State int

const (
	Empty State = iota
	Hydrating
	Editing
	Validating
	Submitting
	Success
	Failure
)

var stateNames = [...]string{"empty", "hydrating", "editing", "validating", "submitting", "success", "failure"}

// String returns the state name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Client is the slice of the resource client the controller needs.
type Client interface {
	Get(ctx context.Context, resource string, id int64) (*apiclient.Response, error)
	Post(ctx context.Context, resource string, body any) (*apiclient.Response, error)
	Put(ctx context.Context, resource string, id int64, body any) (*apiclient.Response, error)
}

// NoticeKind classifies a user-facing notification.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a toast-style message shown to the user.
type Notice struct {
	Kind        NoticeKind
	Title       string
	Description string
}

// Notifier shows a notice to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// Navigator moves the user to another route.
type Navigator interface {
	Navigate(ctx context.Context, route string)
}

// Saved describes a record the backend accepted.
type Saved struct {
	ID     int64
	Edit   bool
	Values map[string]any
}

// Config describes one kind of form.
type Config struct {
	Resource  string
	Schema    *schema.Schema
	Enrich    map[string]any // constant fields appended at submit, never user-editable
	ListRoute string

	// Describe builds the notice for a finished submit. Nil selects a
	// generic message.
	Describe func(values map[string]any, edit, ok bool) Notice

	// AfterSave runs after a successful submit, before navigation.
	AfterSave func(ctx context.Context, saved Saved)
}

// Deps holds the controller's collaborators.
type Deps struct {
	Client    Client
	Notifier  Notifier
	Navigator Navigator
}

// FieldView is a read-only view of one buffered field.
type FieldView struct {
	Value   any
	Error   string
	Touched bool
}

type fieldState struct {
	value   any
	err     string
	touched bool
}

// Controller is the edit buffer for one record.
// INVARIANT: no request is sent while any field fails validation
// INVARIANT: at most one submit is in flight, and none after a success
type Controller struct {
	mu     sync.Mutex
	cfg    Config
	deps   Deps
	id     *int64
	state  State
	fields map[string]*fieldState
	guard  inflight.Guard
}

// New creates a controller. A non-nil id puts it in edit mode, where Load
// must hydrate the buffer before the form can be submitted.
// PRE: cfg.Schema and deps.Client are non-nil
func New(cfg Config, deps Deps, id *int64) *Controller {
	c := &Controller{
		cfg:    cfg,
		deps:   deps,
		fields: make(map[string]*fieldState),
	}
	for _, f := range cfg.Schema.Fields() {
		c.fields[f.Name] = &fieldState{}
	}
	if id != nil {
		v := *id
		c.id = &v
		c.state = Hydrating
	}
	return c
}

// Resource returns the API collection the form saves to.
func (c *Controller) Resource() string {
	return c.cfg.Resource
}

// IsEdit reports whether the controller updates an existing record.
func (c *Controller) IsEdit() bool {
	return c.id != nil
}

// ID returns the record id in edit mode.
func (c *Controller) ID() (int64, bool) {
	if c.id == nil {
		return 0, false
	}
	return *c.id, true
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Load fetches the record being edited and hydrates the buffer.
// In create mode it does nothing.
// POST: on failure the controller stays Hydrating and cannot be submitted
func (c *Controller) Load(ctx context.Context) error {
	if c.id == nil {
		return nil
	}
	resp, err := c.deps.Client.Get(ctx, c.cfg.Resource, *c.id)
	if err != nil {
		slog.Error("form_load_failed", "resource", c.cfg.Resource, "id", *c.id, "error", err)
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}
	if !resp.OK {
		slog.Warn("form_load_failed", "resource", c.cfg.Resource, "id", *c.id, "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", ErrLoad, resp.StatusCode)
	}
	var record map[string]any
	if err := resp.Record(&record); err != nil {
		slog.Error("form_load_failed", "resource", c.cfg.Resource, "id", *c.id, "error", err)
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}
	c.Hydrate(record)
	return nil
}

// Hydrate sets every field from a persisted record without marking any
// field touched, so no error is visible until the user edits it.
// POST: state is Editing
func (c *Controller) Hydrate(record map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range c.cfg.Schema.Fields() {
		raw := f.Extract(record)
		v, msg := f.Check(raw)
		fs := c.fields[f.Name]
		fs.touched = false
		fs.err = msg
		switch {
		case msg != "":
			fs.value = raw
		case v == nil:
			fs.value = nil
		default:
			fs.value = v
		}
	}
	c.state = Editing
}

// SetField buffers value for name and re-validates that field.
// POST: returns the field's new error message, "" when valid
func (c *Controller) SetField(name string, value any) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fs, ok := c.fields[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	_, msg, _ := c.cfg.Schema.ValidateField(name, value)
	fs.value = value
	fs.err = msg
	fs.touched = true
	if c.state == Empty || c.state == Failure {
		c.state = Editing
	}
	return msg, nil
}

// Values returns a copy of the buffered values, keyed by field name.
// Fields never set are omitted.
func (c *Controller) Values() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]any, len(c.fields))
	for name, fs := range c.fields {
		if fs.value != nil {
			out[name] = fs.value
		}
	}
	return out
}

// Field returns the buffered state of one field.
func (c *Controller) Field(name string) (FieldView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fs, ok := c.fields[name]
	if !ok {
		return FieldView{}, false
	}
	return FieldView{Value: fs.value, Error: fs.err, Touched: fs.touched}, true
}

// VisibleErrors returns the errors of touched fields.
func (c *Controller) VisibleErrors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string)
	for name, fs := range c.fields {
		if fs.touched && fs.err != "" {
			out[name] = fs.err
		}
	}
	return out
}

// Submit validates every field and, when all pass, creates or updates the
// record.
// PRE: state is not Hydrating
// POST: ErrInvalid means no request was sent; ErrSave means the backend
// refused or was unreachable, the user was notified and the buffer is back
// in Editing for a retry; nil means
// the user was notified and sent to the list route
func (c *Controller) Submit(ctx context.Context) error {
	body, err := c.prepare()
	if err != nil {
		return err
	}

	var resp *apiclient.Response
	if c.id != nil {
		resp, err = c.deps.Client.Put(ctx, c.cfg.Resource, *c.id, body)
	} else {
		resp, err = c.deps.Client.Post(ctx, c.cfg.Resource, body)
	}

	ok := err == nil && resp.OK
	c.mu.Lock()
	if ok {
		c.state = Success
	} else {
		c.state = Failure
	}
	c.mu.Unlock()
	c.guard.Finish(ok)

	c.notify(ctx, c.describe(body, ok))
	if !ok {
		// the failure was reported; the buffer is editable again for a retry
		c.mu.Lock()
		c.state = Editing
		c.mu.Unlock()
		if err != nil {
			slog.Error("form_submit_failed", "resource", c.cfg.Resource, "edit", c.IsEdit(), "error", err)
			return fmt.Errorf("%w: %v", ErrSave, err)
		}
		slog.Warn("form_submit_rejected", "resource", c.cfg.Resource, "edit", c.IsEdit(), "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", ErrSave, resp.StatusCode)
	}

	if c.cfg.AfterSave != nil {
		c.cfg.AfterSave(ctx, Saved{ID: c.savedID(resp), Edit: c.IsEdit(), Values: body})
	}
	if c.deps.Navigator != nil {
		c.deps.Navigator.Navigate(ctx, c.cfg.ListRoute)
	}
	return nil
}

// prepare claims the in-flight guard and validates the whole buffer.
// POST: on success the guard is Pending and the returned body holds the
// validated values plus enrichment fields
func (c *Controller) prepare() (map[string]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Hydrating {
		return nil, ErrNotReady
	}
	if !c.guard.Begin() {
		return nil, ErrInFlight
	}

	c.state = Validating
	candidate := make(map[string]any, len(c.fields))
	for name, fs := range c.fields {
		candidate[name] = fs.value
	}
	res := c.cfg.Schema.Validate(candidate)
	for name, fs := range c.fields {
		fs.touched = true
		fs.err = res.Errors[name]
	}
	if !res.Valid() {
		c.state = Editing
		c.guard.Finish(false)
		return nil, ErrInvalid
	}

	body := res.Values
	for k, v := range c.cfg.Enrich {
		body[k] = v
	}
	c.state = Submitting
	return body, nil
}

func (c *Controller) describe(values map[string]any, ok bool) Notice {
	if c.cfg.Describe != nil {
		return c.cfg.Describe(values, c.IsEdit(), ok)
	}
	if ok {
		return Notice{Kind: NoticeSuccess, Title: "Sucesso ao Salvar", Description: "Registro salvo com sucesso"}
	}
	return Notice{Kind: NoticeError, Title: "Erro ao Salvar", Description: "O registro não foi salvo"}
}

func (c *Controller) notify(ctx context.Context, n Notice) {
	if c.deps.Notifier != nil {
		c.deps.Notifier.Notify(ctx, n)
	}
}

// savedID reads the id of the stored record from the reply, falling back to
// the id being edited.
func (c *Controller) savedID(resp *apiclient.Response) int64 {
	var out struct {
		ID json.Number `json:"id"`
	}
	if resp != nil && resp.Record(&out) == nil {
		if n, err := out.ID.Int64(); err == nil {
			return n
		}
	}
	if c.id != nil {
		return *c.id
	}
	return 0
}
