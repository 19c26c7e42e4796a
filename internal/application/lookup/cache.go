// Package lookup caches the {id, nome} candidates that reference fields
// choose from, such as the roles offered by the member form or the members
// offered as preacher and attendees by the report form.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"celula/internal/adapters/apiclient"
	"celula/internal/application/selection"
)

// DefaultTTL is how long fetched candidates are reused.
const DefaultTTL = time.Minute

// ErrFetch wraps a failed candidate fetch.
var ErrFetch = errors.New("could not fetch candidates")

// Fetcher is the slice of the resource client the cache needs.
type Fetcher interface {
	GetAll(ctx context.Context, resource, search string) (*apiclient.Response, error)
}

type entry struct {
	options []selection.Option
	names   map[int64]string
	fetched time.Time
}

// Cache holds candidate lists per resource.
// INVARIANT: a failed refresh never evicts a list fetched earlier
type Cache struct {
	mu      sync.Mutex
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*entry
}

// New returns a cache refreshing lists older than ttl.
// A non-positive ttl selects DefaultTTL.
func New(fetcher Fetcher, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		fetcher: fetcher,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Options returns the candidates of resource, fetching them when the cached
// list is missing or stale. When a refresh fails and an older list exists,
// the older list is returned along with the error.
func (c *Cache) Options(ctx context.Context, resource string) ([]selection.Option, error) {
	c.mu.Lock()
	e := c.entries[resource]
	fresh := e != nil && c.now().Sub(e.fetched) < c.ttl
	c.mu.Unlock()
	if fresh {
		return e.options, nil
	}

	opts, err := c.fetch(ctx, resource)
	if err != nil {
		slog.Warn("lookup_refresh_failed", "resource", resource, "error", err)
		if e != nil {
			return e.options, err
		}
		return nil, err
	}

	names := make(map[int64]string, len(opts))
	for _, o := range opts {
		names[o.ID] = o.Nome
	}
	c.mu.Lock()
	c.entries[resource] = &entry{options: opts, names: names, fetched: c.now()}
	c.mu.Unlock()
	return opts, nil
}

// Name resolves id within resource for display. It reports false when the
// id is unknown or the candidates could not be fetched.
func (c *Cache) Name(ctx context.Context, resource string, id int64) (string, bool) {
	// a failed refresh is logged by Options and may still leave a stale list
	_, _ = c.Options(ctx, resource)

	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[resource]
	if e == nil {
		return "", false
	}
	n, ok := e.names[id]
	return n, ok
}

// Invalidate drops the cached list of resource, for example after a record
// of that resource was created or deleted.
func (c *Cache) Invalidate(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, resource)
}

// Reset drops every cached list.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

func (c *Cache) fetch(ctx context.Context, resource string) ([]selection.Option, error) {
	resp, err := c.fetcher.GetAll(ctx, resource, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, resource, err)
	}
	if !resp.OK {
		return nil, fmt.Errorf("%w: %s: status %d", ErrFetch, resource, resp.StatusCode)
	}
	var opts []selection.Option
	if err := resp.List(&opts); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, resource, err)
	}
	return opts, nil
}
