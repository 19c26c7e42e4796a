package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"celula/internal/adapters/auth"
)

// RequireLogin redirects browser requests to loginPath while the process-wide
// authentication context holds no usable token. Paths under any of the public
// prefixes pass through.
// INVARIANT: An expired token counts as logged out
func RequireLogin(session *auth.Context, loginPath string, public ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session.Authenticated() || isPublic(r.URL.Path, loginPath, public) {
				next.ServeHTTP(w, r)
				return
			}
			target := loginPath
			if r.Method == http.MethodGet && r.URL.Path != "/" {
				target += "?" + url.Values{"next": {r.URL.RequestURI()}}.Encode()
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
		})
	}
}

func isPublic(path, loginPath string, public []string) bool {
	if path == loginPath {
		return true
	}
	for _, p := range public {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
