// Package apiclient issues CRUD requests against the cell REST API.
//
// A non-2xx response is not an error: callers receive a Response with OK set
// to false and decide how to surface it. Only transport failures, such as a
// refused connection or a cancelled context, are returned as errors.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"celula/internal/adapters/http/perf"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBaseURL is the backend address used when none is configured.
const DefaultBaseURL = "http://127.0.0.1:8000"

// maxBody caps how much of a response is read into memory.
const maxBody = 4 << 20

// ErrNoToken is returned by Login when the backend replies without a token.
var ErrNoToken = errors.New("login response carried no access token")

// TokenSource supplies the bearer token for each request.
// An empty token means the request is sent without an Authorization header.
type TokenSource interface {
	Token() string
}

// Client talks to {base}/api/{resource}.
type Client struct {
	base      string
	http      *http.Client
	tokens    TokenSource
	collector *perf.Collector
	slow      time.Duration
	tracer    trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCollector records every call's timing into col.
func WithCollector(col *perf.Collector) Option {
	return func(c *Client) { c.collector = col }
}

// WithSlowThreshold logs a warning for calls slower than d.
func WithSlowThreshold(d time.Duration) Option {
	return func(c *Client) { c.slow = d }
}

// New returns a client rooted at baseURL.
// PRE: tokens may be nil, in which case no request is authenticated
// POST: trailing slashes are dropped from baseURL
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   &http.Client{Timeout: 30 * time.Second},
		tokens: tokens,
		tracer: otel.Tracer("celula/apiclient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response is the outcome of a call that reached the server.
type Response struct {
	StatusCode int
	OK         bool
	Body       []byte
}

// JSON decodes the whole body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// List decodes the list envelope {"data": [...]} into v.
func (r *Response) List(v any) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(r.Body, &env); err != nil {
		return fmt.Errorf("decode list envelope: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		env.Data = json.RawMessage("[]")
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("decode list data: %w", err)
	}
	return nil
}

// Record decodes a single record into v. A body of the form {"data": {...}}
// is unwrapped first; a record whose own "data" field is a scalar is not.
func (r *Response) Record(v any) error {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(r.Body, &env); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	body := r.Body
	if inner, ok := env["data"]; ok && len(env) == 1 && len(inner) > 0 && inner[0] == '{' {
		body = inner
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

// GetAll fetches the resource collection filtered by search.
func (c *Client) GetAll(ctx context.Context, resource, search string) (*Response, error) {
	return c.do(ctx, http.MethodGet, resource, c.url(resource, "")+"?search="+url.QueryEscape(search), nil)
}

// Get fetches one record.
func (c *Client) Get(ctx context.Context, resource string, id int64) (*Response, error) {
	return c.do(ctx, http.MethodGet, resource, c.url(resource, idPath(id)), nil)
}

// Post creates a record from body.
func (c *Client) Post(ctx context.Context, resource string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, resource, c.url(resource, ""), body)
}

// Put replaces the record id with body.
func (c *Client) Put(ctx context.Context, resource string, id int64, body any) (*Response, error) {
	return c.do(ctx, http.MethodPut, resource, c.url(resource, idPath(id)), body)
}

// Delete removes the record id.
func (c *Client) Delete(ctx context.Context, resource string, id int64) (*Response, error) {
	return c.do(ctx, http.MethodDelete, resource, c.url(resource, idPath(id)), nil)
}

// Login exchanges credentials for an access token.
// POST: returns ErrNoToken when the server accepts but sends no token, and
// an error carrying the status for any non-2xx reply
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "login", c.url("login", ""), map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	if !resp.OK {
		return "", fmt.Errorf("login rejected: status %d", resp.StatusCode)
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := resp.JSON(&out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", ErrNoToken
	}
	return out.AccessToken, nil
}

func (c *Client) url(resource, tail string) string {
	u := c.base + "/api/" + url.PathEscape(resource)
	if tail != "" {
		u += "/" + tail
	}
	return u
}

func idPath(id int64) string {
	return strconv.FormatInt(id, 10)
}

// do sends one request and reads the response.
// INVARIANT: the Authorization header is present iff the token source yields
// a non-empty token
func (c *Client) do(ctx context.Context, method, resource, target string, body any) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, "apiclient."+method+" "+resource,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("celula.resource", resource),
		))
	defer span.End()

	start := time.Now()
	status := 0
	defer func() {
		c.observe(method, resource, status, time.Since(start))
	}()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			span.SetStatus(codes.Error, "encode body")
			return nil, fmt.Errorf("encode %s %s body: %w", method, resource, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, resource, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	res, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return nil, fmt.Errorf("%s %s: %w", method, resource, err)
	}
	defer res.Body.Close()

	status = res.StatusCode
	span.SetAttributes(attribute.Int("http.response.status_code", status))

	data, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("read %s %s response: %w", method, resource, err)
	}
	ok := status >= 200 && status < 300
	if !ok {
		span.SetStatus(codes.Error, res.Status)
	}
	return &Response{StatusCode: status, OK: ok, Body: data}, nil
}

func (c *Client) observe(method, resource string, status int, d time.Duration) {
	ms := float64(d.Microseconds()) / 1000
	c.collector.Record(perf.Entry{
		Kind:       perf.KindUpstream,
		Path:       method + " " + resource,
		StatusCode: status,
		DurationMs: ms,
		Timestamp:  time.Now(),
	})
	if c.slow > 0 && d > c.slow {
		slog.Warn("slow_upstream", "method", method, "resource", resource, "status", status, "duration_ms", ms)
	}
}
