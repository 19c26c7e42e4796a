// Package auth holds the process-wide bearer token used for backend calls.
package auth

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptyToken is returned when Login is given no token.
var ErrEmptyToken = errors.New("access token cannot be empty")

// Context is the authentication state shared by every request the front
// end makes. It starts logged out; Login initialises it and Logout tears it
// down. A token whose exp claim has passed is treated as logged out.
type Context struct {
	mu      sync.RWMutex
	token   string
	email   string
	expires time.Time
	now     func() time.Time
}

// NewContext returns a logged-out context.
func NewContext() *Context {
	return &Context{now: time.Now}
}

// Login stores token as the active credential for email.
// PRE: token is non-empty
// POST: when token is a JWT carrying exp, the context expires at that time;
// an opaque token never expires on its own
func (c *Context) Login(token, email string) error {
	if token == "" {
		return ErrEmptyToken
	}
	expires := expiry(token)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.email = email
	c.expires = expires
	slog.Info("auth_event", "event", "session_started", "email", email, "expires", expires)
	return nil
}

// Logout clears the credential.
func (c *Context) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" {
		slog.Info("auth_event", "event", "session_ended", "email", c.email)
	}
	c.token = ""
	c.email = ""
	c.expires = time.Time{}
}

// Token returns the active bearer token, or "" when logged out or expired.
// It satisfies apiclient.TokenSource.
func (c *Context) Token() string {
	c.mu.RLock()
	tok, live := c.token, c.liveLocked()
	c.mu.RUnlock()
	if tok != "" && !live {
		c.expire()
		return ""
	}
	return tok
}

// Authenticated reports whether a live token is held.
func (c *Context) Authenticated() bool {
	return c.Token() != ""
}

// Email returns the address the active token was issued for.
func (c *Context) Email() string {
	if !c.Authenticated() {
		return ""
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.email
}

func (c *Context) liveLocked() bool {
	return c.expires.IsZero() || c.now().Before(c.expires)
}

func (c *Context) expire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == "" || c.liveLocked() {
		return
	}
	slog.Info("auth_event", "event", "session_expired", "email", c.email)
	c.token = ""
	c.email = ""
	c.expires = time.Time{}
}

// expiry reads the exp claim without verifying the signature. The backend
// verifies tokens; the front end only needs to know when to stop sending one.
func expiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
