package lookup

import (
	"context"
	"errors"
	"testing"
	"time"

	"celula/internal/adapters/apiclient"
)

type fakeFetcher struct {
	calls int
	body  string
	err   error
}

func (f *fakeFetcher) GetAll(_ context.Context, resource, search string) (*apiclient.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &apiclient.Response{StatusCode: 200, OK: true, Body: []byte(f.body)}, nil
}

// TestCacheReusesFreshList verifies a second read within the TTL does not refetch.
func TestCacheReusesFreshList(t *testing.T) {
	f := &fakeFetcher{body: `{"data":[{"id":1,"nome":"líder"},{"id":5,"nome":"Membro"}]}`}
	c := New(f, time.Minute)
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	opts, err := c.Options(context.Background(), "cargos")
	if err != nil || len(opts) != 2 {
		t.Fatalf("Options = %v, %v", opts, err)
	}
	if name, ok := c.Name(context.Background(), "cargos", 5); !ok || name != "Membro" {
		t.Errorf("Name(5) = %q, %v", name, ok)
	}
	if _, ok := c.Name(context.Background(), "cargos", 9); ok {
		t.Error("Name(9) resolved an unknown id")
	}
	if f.calls != 1 {
		t.Errorf("fetches = %d, want 1", f.calls)
	}

	now = now.Add(2 * time.Minute)
	if _, err := c.Options(context.Background(), "cargos"); err != nil {
		t.Fatalf("Options after ttl: %v", err)
	}
	if f.calls != 2 {
		t.Errorf("fetches after ttl = %d, want 2", f.calls)
	}
}

// TestCacheKeepsStaleOnFailure verifies a failed refresh serves the older list.
func TestCacheKeepsStaleOnFailure(t *testing.T) {
	f := &fakeFetcher{body: `{"data":[{"id":2,"nome":"Ana"}]}`}
	c := New(f, time.Minute)
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if _, err := c.Options(context.Background(), "membros"); err != nil {
		t.Fatalf("Options: %v", err)
	}
	now = now.Add(time.Hour)
	f.err = errors.New("connection refused")

	opts, err := c.Options(context.Background(), "membros")
	if !errors.Is(err, ErrFetch) {
		t.Errorf("err = %v, want ErrFetch", err)
	}
	if len(opts) != 1 || opts[0].Nome != "Ana" {
		t.Errorf("stale options = %v", opts)
	}
	if name, ok := c.Name(context.Background(), "membros", 2); !ok || name != "Ana" {
		t.Errorf("Name(2) = %q, %v", name, ok)
	}
}

// TestCacheInvalidate verifies Invalidate forces a refetch.
func TestCacheInvalidate(t *testing.T) {
	f := &fakeFetcher{body: `{"data":[]}`}
	c := New(f, time.Hour)
	_, _ = c.Options(context.Background(), "membros")
	c.Invalidate("membros")
	_, _ = c.Options(context.Background(), "membros")
	if f.calls != 2 {
		t.Errorf("fetches = %d, want 2", f.calls)
	}
}

// TestCacheFirstFetchFails verifies nothing resolves without any list.
func TestCacheFirstFetchFails(t *testing.T) {
	c := New(&fakeFetcher{err: errors.New("down")}, time.Minute)
	if _, ok := c.Name(context.Background(), "membros", 1); ok {
		t.Error("Name resolved with no list")
	}
}

// TestCacheReset verifies Reset drops every resource.
func TestCacheReset(t *testing.T) {
	f := &fakeFetcher{body: `{"data":[{"id":1,"nome":"Ana"}]}`}
	c := New(f, time.Minute)
	ctx := context.Background()
	for _, res := range []string{"membros", "cargos"} {
		if _, err := c.Options(ctx, res); err != nil {
			t.Fatalf("Options(%s): %v", res, err)
		}
	}
	c.Reset()
	for _, res := range []string{"membros", "cargos"} {
		if _, err := c.Options(ctx, res); err != nil {
			t.Fatalf("Options(%s) after reset: %v", res, err)
		}
	}
	if f.calls != 4 {
		t.Errorf("fetches = %d, want 4", f.calls)
	}
}
