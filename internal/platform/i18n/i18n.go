// Package i18n registers the UI message catalog with x/text/message and
// resolves the language of a request.
package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter that switches language.
	LangParam = "lang"
	// LangCookie remembers the chosen language.
	LangCookie = "celula_lang"
)

var supported = []language.Tag{language.BrazilianPortuguese, language.AmericanEnglish}

var matcher = language.NewMatcher(supported)

// Default is the language used when nothing else matches.
func Default() language.Tag {
	return language.BrazilianPortuguese
}

// Supported lists the languages with a catalog.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Parse maps value onto a supported tag.
func Parse(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Default(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return Default(), false
	}
	return Match(tag), true
}

// Match picks the closest supported tag.
func Match(tags ...language.Tag) language.Tag {
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default()
	}
	return supported[idx]
}

// Resolve picks the request language from the lang query parameter, the
// language cookie, then Accept-Language, falling back to fallback.
// The bool reports whether the choice came from the query and should be
// remembered in a cookie.
func Resolve(r *http.Request, fallback language.Tag) (language.Tag, bool) {
	if tag, ok := Parse(r.URL.Query().Get(LangParam)); ok {
		return tag, true
	}
	if c, err := r.Cookie(LangCookie); err == nil {
		if tag, ok := Parse(c.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return Match(tags...), false
		}
	}
	return fallback, false
}

// SetCookie remembers tag on the response.
func SetCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookie,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// Printer returns a printer for tag backed by the registered catalog.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(Match(tag))
}
