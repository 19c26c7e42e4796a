// Package flash carries one notice across a redirect in a short-lived cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"celula/internal/application/form"
)

// CookieName is the cookie holding the pending notice.
const CookieName = "celula_flash"

// maxAge bounds how long an unread notice survives.
const maxAge = 60

type payload struct {
	Kind        form.NoticeKind `json:"k"`
	Title       string          `json:"t"`
	Description string          `json:"d,omitempty"`
}

// Set stores n for the next page render.
func Set(w http.ResponseWriter, n form.Notice) {
	raw, err := json.Marshal(payload{Kind: n.Kind, Title: n.Title, Description: n.Description})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending notice and clears it.
// POST: a malformed cookie is cleared and reported as absent
func Pop(w http.ResponseWriter, r *http.Request) (form.Notice, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return form.Notice{}, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return form.Notice{}, false
	}
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil || p.Title == "" {
		return form.Notice{}, false
	}
	return form.Notice{Kind: p.Kind, Title: p.Title, Description: p.Description}, true
}
