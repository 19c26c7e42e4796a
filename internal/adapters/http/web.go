// Package web serves the server-rendered cell front end: member and meeting
// report screens backed by the cell REST API.
package web

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"golang.org/x/text/language"

	"celula/internal/adapters/apiclient"
	"celula/internal/adapters/auth"
	"celula/internal/adapters/email"
	"celula/internal/adapters/http/middleware"
	"celula/internal/adapters/http/perf"
	"celula/internal/application/inflight"
	"celula/internal/application/lookup"
	"celula/internal/application/resources"
	"celula/internal/platform/i18n"
)

// Client is the resource client the screens use.
type Client interface {
	GetAll(ctx context.Context, resource, search string) (*apiclient.Response, error)
	Get(ctx context.Context, resource string, id int64) (*apiclient.Response, error)
	Post(ctx context.Context, resource string, body any) (*apiclient.Response, error)
	Put(ctx context.Context, resource string, id int64, body any) (*apiclient.Response, error)
	Delete(ctx context.Context, resource string, id int64) (*apiclient.Response, error)
	Login(ctx context.Context, email, password string) (string, error)
}

var _ Client = (*apiclient.Client)(nil)

// Deps holds the collaborators of the front end.
type Deps struct {
	Client    Client
	Session   *auth.Context
	Lookups   *lookup.Cache
	Mailer    *email.ReportMailer // nil disables report mail
	Collector *perf.Collector
}

// Options configures NewMux.
type Options struct {
	CelulaID       int64
	Lang           language.Tag
	CSRFKey        []byte
	Secure         bool // cookies over HTTPS only
	TrustedOrigins []string
	SlowRequest    time.Duration
	RateLimit      int // requests per second per IP; 0 disables
	FormTTL        time.Duration
}

type server struct {
	deps    Deps
	opts    Options
	forms   *formRegistry
	deletes inflight.Keyed
}

// NewMux wires the screens and the middleware around them. Background work
// such as form expiry stops with ctx.
// PRE: deps.Client, deps.Session and deps.Lookups are set; opts.CSRFKey is 32 bytes
func NewMux(ctx context.Context, deps Deps, opts Options) http.Handler {
	if opts.Lang == (language.Tag{}) {
		opts.Lang = i18n.Default()
	}
	s := &server{
		deps:  deps,
		opts:  opts,
		forms: newFormRegistry(ctx, opts.FormTTL),
	}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /debug/perf", s.handlePerf)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, resources.RouteMemberList, http.StatusSeeOther)
	})
	mux.HandleFunc("GET "+resources.RouteLogin, s.handleLoginPage)
	mux.HandleFunc("POST "+resources.RouteLogin, s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)

	mux.HandleFunc("GET "+resources.RouteMemberList, s.handleMemberList)
	mux.HandleFunc("POST "+resources.RouteMemberList+"/excluir", s.handleMemberDelete)
	mux.HandleFunc("GET "+resources.RouteMemberForm, s.handleFormPage(s.memberForm()))
	mux.HandleFunc("POST "+resources.RouteMemberForm, s.handleFormSubmit(s.memberForm()))

	mux.HandleFunc("GET "+resources.RouteReportList, s.handleReportList)
	mux.HandleFunc("POST "+resources.RouteReportList+"/excluir", s.handleReportDelete)
	mux.HandleFunc("GET "+resources.RouteReportForm, s.handleFormPage(s.reportForm()))
	mux.HandleFunc("POST "+resources.RouteReportForm, s.handleFormSubmit(s.reportForm()))

	chain := []func(http.Handler) http.Handler{
		middleware.RequireLogin(deps.Session, resources.RouteLogin, "/static/", "/healthz"),
		s.locale,
		middleware.CSRF(opts.CSRFKey, opts.Secure, opts.TrustedOrigins),
		middleware.SecurityHeaders,
	}
	if opts.RateLimit > 0 {
		chain = append(chain, middleware.RateLimit(middleware.NewRateLimiter(ctx, opts.RateLimit, time.Second)))
	}
	chain = append(chain, middleware.Timing(deps.Collector, opts.SlowRequest))

	// Timing is outermost so rejected requests are measured too.
	return middleware.Chain(mux, chain...)
}
