package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"celula/internal/adapters/email"
	"celula/internal/adapters/http/flash"
	"celula/internal/application/listutil"
	"celula/internal/domain/mask"
	"celula/internal/platform/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// pages are parsed once; each render clones one and binds request funcs.
var pages = func() map[string]*template.Template {
	names := []string{
		"login.html",
		"members.html",
		"member_form.html",
		"reports.html",
		"report_form.html",
	}
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		out[name] = template.Must(template.New("layout.html").
			Funcs(requestFuncs(nil, nil, nil, false, "")).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name))
	}
	return out
}()

type localeKey struct{}

// locale resolves the request language, remembering an explicit choice.
func (s *server) locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag, persist := i18n.Resolve(r, s.opts.Lang)
		if persist {
			i18n.SetCookie(w, tag)
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), localeKey{}, tag)))
	})
}

func (s *server) langOf(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(localeKey{}).(language.Tag); ok {
		return tag
	}
	return s.opts.Lang
}

func (s *server) printer(ctx context.Context) *message.Printer {
	return i18n.Printer(s.langOf(ctx))
}

// internalError logs the real error and shows a generic page.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func requestFuncs(r *http.Request, p *message.Printer, tag *language.Tag, loggedIn bool, userEmail string) template.FuncMap {
	return template.FuncMap{
		"csrfField": func() template.HTML {
			if r == nil {
				return ""
			}
			return csrf.TemplateField(r)
		},
		"t": func(key string, args ...any) string {
			if p == nil {
				return key
			}
			return p.Sprintf(key, args...)
		},
		"lang": func() string {
			if tag == nil {
				return i18n.Default().String()
			}
			return tag.String()
		},
		"isLoggedIn":     func() bool { return loggedIn },
		"currentEmail":   func() string { return userEmail },
		"renderMarkdown": email.RenderMarkdown,
		"dateBR": func(iso string) string {
			t, err := mask.ParseDate(iso)
			if err != nil {
				return iso
			}
			return mask.FormatBR(t)
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"pageQuery": func(params listutil.Params, page int) template.URL {
			return template.URL("?" + params.WithPage(page).Query().Encode())
		},
		"itoa": func(n int64) string { return strconv.FormatInt(n, 10) },
	}
}

// renderTemplate renders name inside the layout. A pending flash notice is
// shown unless data already carries one.
func (s *server) renderTemplate(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	base, ok := pages[name]
	if !ok {
		internalError(w, errUnknownPage(name))
		return
	}
	tpl, err := base.Clone()
	if err != nil {
		internalError(w, err)
		return
	}
	tag := s.langOf(r.Context())
	session := s.deps.Session
	tpl.Funcs(requestFuncs(r, i18n.Printer(tag), &tag, session.Authenticated(), session.Email()))

	if data == nil {
		data = map[string]any{}
	}
	if _, set := data["Flash"]; !set {
		if n, ok := flash.Pop(w, r); ok {
			data["Flash"] = n
		}
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

type errUnknownPage string

func (e errUnknownPage) Error() string { return "unknown page template " + string(e) }
