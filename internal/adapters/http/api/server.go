// Package api serves the cell REST API: members, meeting reports and roles
// behind bearer-token authentication.
package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"celula/internal/adapters/http/middleware"
	"celula/internal/adapters/http/perf"
	accountStore "celula/internal/adapters/storage/account"
	memberStore "celula/internal/adapters/storage/member"
	reportStore "celula/internal/adapters/storage/report"
	roleStore "celula/internal/adapters/storage/role"
)

// maxBody caps request bodies.
const maxBody = 1 << 20

// Stores holds the storage dependencies of the API.
type Stores struct {
	Accounts accountStore.Store
	Members  memberStore.Store
	Reports  reportStore.Store
	Roles    roleStore.Store
}

// Options configures NewHandler.
type Options struct {
	Tokens      *Tokens
	Collector   *perf.Collector
	SlowRequest time.Duration
	RateLimit   int // requests per second per IP; 0 disables
}

type server struct {
	stores Stores
	tokens *Tokens
}

type claimsKey struct{}

func claimsFrom(ctx context.Context) Claims {
	c, _ := ctx.Value(claimsKey{}).(Claims)
	return c
}

// NewHandler wires the API routes.
// PRE: opts.Tokens is set
func NewHandler(ctx context.Context, stores Stores, opts Options) http.Handler {
	s := &server{stores: stores, tokens: opts.Tokens}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	protected := http.NewServeMux()
	protected.HandleFunc("GET /api/membros", s.handleListMembers)
	protected.HandleFunc("POST /api/membros", s.handleSaveMember)
	protected.HandleFunc("GET /api/membros/{id}", s.handleGetMember)
	protected.HandleFunc("PUT /api/membros/{id}", s.handleSaveMember)
	protected.HandleFunc("DELETE /api/membros/{id}", s.handleDeleteMember)
	protected.HandleFunc("GET /api/relatorios", s.handleListReports)
	protected.HandleFunc("POST /api/relatorios", s.handleSaveReport)
	protected.HandleFunc("GET /api/relatorios/{id}", s.handleGetReport)
	protected.HandleFunc("PUT /api/relatorios/{id}", s.handleSaveReport)
	protected.HandleFunc("DELETE /api/relatorios/{id}", s.handleDeleteReport)
	protected.HandleFunc("GET /api/cargos", s.handleListRoles)
	protected.HandleFunc("GET /api/cargos/{id}", s.handleGetRole)
	mux.Handle("/api/", s.bearer(protected))

	chain := []func(http.Handler) http.Handler{
		middleware.SecurityHeaders,
	}
	if opts.RateLimit > 0 {
		chain = append(chain, middleware.RateLimit(middleware.NewRateLimiter(ctx, opts.RateLimit, time.Second)))
	}
	chain = append(chain, middleware.Timing(opts.Collector, opts.SlowRequest))
	return middleware.Chain(mux, chain...)
}

// bearer rejects requests without a valid access token.
func (s *server) bearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := s.tokens.Verify(strings.TrimSpace(raw))
		if err != nil {
			slog.Info("auth_event", "event", "token_rejected", "path", r.URL.Path, "error", err)
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	})
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response_encode_failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// storeError maps not-found to 404 and everything else to 500.
func storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	internalError(w, err)
}

// strictDecode decodes a JSON body, rejecting unknown fields.
func strictDecode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// pathID reads the {id} wildcard; ok is false when absent.
func pathID(r *http.Request) (int64, bool, error) {
	raw := r.PathValue("id")
	if raw == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, true, errors.New("invalid id")
	}
	return id, true, nil
}
