package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"golang.org/x/text/message"

	"celula/internal/adapters/http/flash"
	"celula/internal/application/form"
	"celula/internal/application/resources"
	"celula/internal/application/schema"
	"celula/internal/application/selection"
	"celula/internal/domain/member"
	"celula/internal/domain/report"
	"celula/internal/domain/role"
)

// formScreen describes one create/edit screen.
type formScreen struct {
	resource  string
	route     string
	listRoute string
	template  string
	prefix    string // message key prefix, "member" or "report"
	schema    *schema.Schema
	config    func(ctx context.Context) form.Config
	// decorate adds the choices reference fields offer.
	decorate func(ctx context.Context, ctrl *form.Controller, data map[string]any)
}

type fieldView struct {
	Name  string
	Label string
	Value string
	Error string
}

type optionView struct {
	ID       int64
	Nome     string
	Selected bool
}

func (s *server) formDeps() form.Deps {
	return form.Deps{Client: s.deps.Client, Notifier: effects{}, Navigator: effects{}}
}

func (s *server) memberForm() formScreen {
	return formScreen{
		resource:  member.Resource,
		route:     resources.RouteMemberForm,
		listRoute: resources.RouteMemberList,
		template:  "member_form.html",
		prefix:    "member",
		schema:    resources.MemberSchema,
		config: func(ctx context.Context) form.Config {
			return resources.MemberForm(s.opts.CelulaID, s.printer(ctx), func(context.Context, form.Saved) {
				s.deps.Lookups.Invalidate(member.Resource)
			})
		},
		decorate: s.decorateMemberForm,
	}
}

func (s *server) reportForm() formScreen {
	return formScreen{
		resource:  report.Resource,
		route:     resources.RouteReportForm,
		listRoute: resources.RouteReportList,
		template:  "report_form.html",
		prefix:    "report",
		schema:    resources.ReportSchema,
		config: func(ctx context.Context) form.Config {
			return resources.ReportForm(s.opts.CelulaID, s.printer(ctx), s.mailReport)
		},
		decorate: s.decorateReportForm,
	}
}

// handleFormPage shows an empty form, or with ?id= the record to edit.
func (s *server) handleFormPage(fs formScreen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, ok := parseOptionalID(r.URL.Query().Get("id"))
		if !ok {
			http.Redirect(w, r, fs.listRoute, http.StatusSeeOther)
			return
		}

		ctrl := form.New(fs.config(ctx), s.formDeps(), id)
		if err := ctrl.Load(ctx); err != nil {
			s.renderForm(w, r, http.StatusBadGateway, fs, ctrl, "", map[string]any{"LoadFailed": true})
			return
		}
		s.renderForm(w, r, http.StatusOK, fs, ctrl, s.forms.Put(ctrl), nil)
	}
}

// handleFormSubmit feeds the posted fields into the registered controller
// and submits it.
// POST: a duplicate post of a submit in flight or already accepted sends no
// request and lands on the list
// POST: a token that is unknown, expired or issued for another screen sends
// no request and reopens the form with the expired notice
func (s *server) handleFormSubmit(fs formScreen) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		token := r.PostFormValue("form_token")
		ctrl, ok := s.forms.Get(token)
		if !ok || ctrl.Resource() != fs.resource {
			if ok {
				slog.Warn("form_token_mismatch", "route", fs.route, "resource", ctrl.Resource())
			}
			flash.Set(w, form.Notice{Kind: form.NoticeError, Title: s.printer(r.Context()).Sprintf("notice.form_expired")})
			http.Redirect(w, r, r.URL.RequestURI(), http.StatusSeeOther)
			return
		}

		for _, f := range fs.schema.Fields() {
			var value any = r.PostFormValue(f.Name)
			if f.Kind == schema.Array {
				value = r.PostForm[f.Name]
			}
			if _, err := ctrl.SetField(f.Name, value); err != nil {
				internalError(w, err)
				return
			}
		}

		ctx, out := withOutcome(r.Context())
		err := ctrl.Submit(ctx)
		switch {
		case err == nil:
			if n, ok := out.Notice(); ok {
				flash.Set(w, n)
			}
			target := out.Location()
			if target == "" {
				target = fs.listRoute
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
		case errors.Is(err, form.ErrInFlight):
			http.Redirect(w, r, fs.listRoute, http.StatusSeeOther)
		case errors.Is(err, form.ErrInvalid):
			s.renderForm(w, r, http.StatusUnprocessableEntity, fs, ctrl, token, nil)
		case errors.Is(err, form.ErrSave):
			data := map[string]any{}
			if n, ok := out.Notice(); ok {
				data["Flash"] = n
			}
			s.renderForm(w, r, http.StatusOK, fs, ctrl, token, data)
		default:
			internalError(w, err)
		}
	}
}

func (s *server) renderForm(w http.ResponseWriter, r *http.Request, status int, fs formScreen, ctrl *form.Controller, token string, data map[string]any) {
	ctx := r.Context()
	p := s.printer(ctx)
	if data == nil {
		data = map[string]any{}
	}

	mode := "create"
	action := fs.route
	if id, ok := ctrl.ID(); ok {
		mode = "edit"
		action = resources.EditRoute(fs.route, id)
	}
	data["Title"] = p.Sprintf(fs.prefix + ".title." + mode)
	data["Action"] = action
	data["Token"] = token
	data["Fields"] = fieldViews(ctrl, fs.schema, p, fs.prefix)
	if fs.decorate != nil {
		fs.decorate(ctx, ctrl, data)
	}
	s.renderTemplate(w, r, status, fs.template, data)
}

func (s *server) decorateMemberForm(ctx context.Context, ctrl *form.Controller, data map[string]any) {
	// a failed fetch is logged by the cache; the select is then empty
	roles, _ := s.deps.Lookups.Options(ctx, role.Resource)
	v, _ := ctrl.Field("cargo_id")
	picked := idOf(v.Value)
	data["Roles"] = optionViews(roles, func(id int64) bool { return id == picked })
}

func (s *server) decorateReportForm(ctx context.Context, ctrl *form.Controller, data map[string]any) {
	p := s.printer(ctx)
	members, _ := s.deps.Lookups.Options(ctx, member.Resource)

	v, _ := ctrl.Field("presentes")
	present := selection.NewSet(idsOf(v.Value)...)
	data["Members"] = optionViews(members, present.IsSelected)
	data["Summary"] = present.Summary(members, p.Sprintf("report.placeholder.members"))
	data["Attendance"] = p.Sprintf("report.attendance", present.Count())

	pv, _ := ctrl.Field("pregador_id")
	preacher := idOf(pv.Value)
	data["Preachers"] = optionViews(members, func(id int64) bool { return id == preacher })
}

func (s *server) loadFailedNotice(ctx context.Context) form.Notice {
	p := s.printer(ctx)
	return form.Notice{Kind: form.NoticeError, Title: p.Sprintf("notice.delete_failed"), Description: p.Sprintf("notice.load_failed")}
}

func fieldViews(ctrl *form.Controller, sch *schema.Schema, p *message.Printer, prefix string) map[string]fieldView {
	visible := ctrl.VisibleErrors()
	out := make(map[string]fieldView, len(sch.Fields()))
	for _, f := range sch.Fields() {
		v, _ := ctrl.Field(f.Name)
		out[f.Name] = fieldView{
			Name:  f.Name,
			Label: p.Sprintf(prefix + ".field." + f.Name),
			Value: displayValue(v.Value),
			Error: visible[f.Name],
		}
	}
	return out
}

func optionViews(opts []selection.Option, selected func(int64) bool) []optionView {
	out := make([]optionView, len(opts))
	for i, o := range opts {
		out[i] = optionView{ID: o.ID, Nome: o.Nome, Selected: selected(o.ID)}
	}
	return out
}

// parseOptionalID reads an id query value. Blank means create mode.
func parseOptionalID(raw string) (*int64, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return nil, false
	}
	return &id, true
}

// displayValue renders a buffered scalar for an input's value attribute.
func displayValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	}
	return ""
}

// idOf reads a buffered reference, 0 when absent or malformed.
func idOf(v any) int64 {
	n, err := strconv.ParseInt(displayValue(v), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// idsOf reads a buffered reference list in either its posted or its
// coerced form.
func idsOf(v any) []int64 {
	var out []int64
	switch x := v.(type) {
	case []int64:
		out = append(out, x...)
	case []string:
		for _, s := range x {
			if n := idOf(s); n > 0 {
				out = append(out, n)
			}
		}
	case []any:
		for _, e := range x {
			if n := idOf(e); n > 0 {
				out = append(out, n)
			}
		}
	}
	return out
}
