package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"celula/internal/application/resources"
)

// handleLoginPage shows the login form, or skips it when already signed in.
func (s *server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r.URL.Query().Get("next"))
	if s.deps.Session.Authenticated() {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	s.renderTemplate(w, r, http.StatusOK, "login.html", map[string]any{
		"Title": s.printer(r.Context()).Sprintf("login.title"),
		"Next":  next,
	})
}

// handleLogin exchanges the posted credentials for a backend token and
// starts the process-wide session with it.
func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	next := safeNext(r.PostFormValue("next"))

	token, err := s.deps.Client.Login(r.Context(), email, r.PostFormValue("password"))
	if err == nil {
		err = s.deps.Session.Login(token, email)
	}
	if err != nil {
		slog.Warn("auth_event", "event", "login_failed", "email", email, "error", err)
		p := s.printer(r.Context())
		s.renderTemplate(w, r, http.StatusUnauthorized, "login.html", map[string]any{
			"Title": p.Sprintf("login.title"),
			"Next":  next,
			"Email": email,
			"Error": p.Sprintf("notice.login_failed"),
		})
		return
	}

	// candidates fetched under another account must not leak across sessions
	s.deps.Lookups.Reset()
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// handleLogout ends the session.
func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.deps.Session.Logout()
	s.deps.Lookups.Reset()
	http.Redirect(w, r, resources.RouteLogin, http.StatusSeeOther)
}

// handlePerf reports request, upstream and query timings of the last hour.
func (s *server) handlePerf(w http.ResponseWriter, r *http.Request) {
	if s.deps.Collector == nil {
		http.NotFound(w, r)
		return
	}
	snap := s.deps.Collector.Snapshot(time.Now().Add(-time.Hour), 10)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		slog.Error("perf_encode_failed", "error", err)
	}
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return resources.RouteMemberList
	}
	return next
}
