package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"celula/internal/adapters/http/flash"
	"celula/internal/application/listing"
	"celula/internal/application/listutil"
	"celula/internal/application/resources"
	"celula/internal/domain/member"
	"celula/internal/domain/report"
)

// listScreen describes one table screen.
type listScreen[T any] struct {
	route    string
	template string
	title    string // message key
	rows     string // template data key for the page of records
	config   listing.Config[T]
	// afterDelete runs once a record was deleted.
	afterDelete func()
}

func (s *server) listDeps() listing.Deps {
	return listing.Deps{Client: s.deps.Client, Notifier: effects{}, Navigator: effects{}}
}

func (s *server) memberScreen(ctx context.Context) listScreen[member.Member] {
	return listScreen[member.Member]{
		route:       resources.RouteMemberList,
		template:    "members.html",
		title:       "member.title.list",
		rows:        "Members",
		config:      resources.MemberList(s.printer(ctx)),
		afterDelete: func() { s.deps.Lookups.Invalidate(member.Resource) },
	}
}

func (s *server) reportScreen(ctx context.Context) listScreen[report.Report] {
	return listScreen[report.Report]{
		route:    resources.RouteReportList,
		template: "reports.html",
		title:    "report.title.list",
		rows:     "Reports",
		config:   resources.ReportList(s.printer(ctx)),
	}
}

func (s *server) handleMemberList(w http.ResponseWriter, r *http.Request) {
	showList(s, w, r, s.memberScreen(r.Context()))
}

func (s *server) handleReportList(w http.ResponseWriter, r *http.Request) {
	showList(s, w, r, s.reportScreen(r.Context()))
}

func (s *server) handleMemberDelete(w http.ResponseWriter, r *http.Request) {
	confirmDelete(s, w, r, s.memberScreen(r.Context()))
}

func (s *server) handleReportDelete(w http.ResponseWriter, r *http.Request) {
	confirmDelete(s, w, r, s.reportScreen(r.Context()))
}

// showList loads the collection, filters it locally by ?search= and renders
// one page. ?excluir={id} opens the delete confirmation for that record.
func showList[T any](s *server, w http.ResponseWriter, r *http.Request, screen listScreen[T]) {
	ctx := r.Context()
	params := listutil.Parse(r.URL.Query())

	ctrl := listing.New(screen.config, s.listDeps())
	// a failed load is logged by the controller and shown through LoadErr
	_ = ctrl.Load(ctx)
	rows := ctrl.Filter(params.Search)

	if raw := r.URL.Query().Get("excluir"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			if rec, ok := findRecord(rows, screen.config.ID, id); ok {
				ctrl.RequestDelete(rec)
			}
		}
	}

	page, info := listutil.Paginate(rows, params.Page, params.PerPage)
	s.renderTemplate(w, r, http.StatusOK, screen.template, map[string]any{
		"Title":      s.printer(ctx).Sprintf(screen.title),
		screen.rows:  page,
		"PageInfo":   info,
		"Params":     params,
		"Dialog":     ctrl.Dialog(),
		"LoadFailed": ctrl.LoadErr() != nil,
		"EditLink":   func(rec T) string { return editLink(ctx, ctrl, rec) },
	})
}

// editLink returns the route the controller sends the user to for editing
// rec, captured instead of followed.
func editLink[T any](ctx context.Context, ctrl *listing.Controller[T], rec T) string {
	ctx, out := withOutcome(ctx)
	ctrl.RequestEdit(ctx, rec)
	return out.Location()
}

// confirmDelete deletes the record named by the posted id. On failure the
// user lands back on the list with the confirmation still open.
// INVARIANT: concurrent posts for the same record issue one DELETE
func confirmDelete[T any](s *server, w http.ResponseWriter, r *http.Request, screen listScreen[T]) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(r.PostFormValue("id"), 10, 64)
	if err != nil || id < 1 {
		http.Error(w, "Invalid record id", http.StatusBadRequest)
		return
	}

	key := screen.config.Resource + "/" + strconv.FormatInt(id, 10)
	if !s.deletes.Begin(key) {
		slog.Info("delete_duplicate_ignored", "resource", screen.config.Resource, "id", id)
		http.Redirect(w, r, screen.route, http.StatusSeeOther)
		return
	}
	defer s.deletes.Release(key)

	ctx, out := withOutcome(r.Context())
	ctrl := listing.New(screen.config, s.listDeps())
	if err := ctrl.Load(ctx); err != nil {
		flash.Set(w, s.loadFailedNotice(ctx))
		http.Redirect(w, r, screen.route, http.StatusSeeOther)
		return
	}
	rec, ok := findRecord(ctrl.Records(), screen.config.ID, id)
	if !ok {
		// already gone, e.g. a repeated confirmation after a success
		http.Redirect(w, r, screen.route, http.StatusSeeOther)
		return
	}

	ctrl.RequestDelete(rec)
	err = ctrl.ConfirmDelete(ctx, id)
	if n, ok := out.Notice(); ok {
		flash.Set(w, n)
	}
	if err != nil {
		if !errors.Is(err, listing.ErrDelete) {
			slog.Error("delete_failed", "resource", screen.config.Resource, "id", id, "error", err)
		}
		http.Redirect(w, r, screen.route+"?"+url.Values{"excluir": {strconv.FormatInt(id, 10)}}.Encode(), http.StatusSeeOther)
		return
	}
	if screen.afterDelete != nil {
		screen.afterDelete()
	}
	http.Redirect(w, r, screen.route, http.StatusSeeOther)
}

func findRecord[T any](records []T, idOf func(T) int64, id int64) (T, bool) {
	for _, rec := range records {
		if idOf(rec) == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}
