package web

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"celula/internal/adapters/email"
	"celula/internal/application/form"
	"celula/internal/domain/mask"
	"celula/internal/domain/member"
)

// mailTimeout bounds delivery of one summary.
const mailTimeout = 15 * time.Second

// mailReport tells the supervisor about a saved report. Delivery problems
// are logged and never reach the user.
func (s *server) mailReport(ctx context.Context, saved form.Saved) {
	if s.deps.Mailer == nil {
		return
	}
	summary := s.reportSummary(ctx, saved)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mailTimeout)
	defer cancel()
	if err := s.deps.Mailer.Send(ctx, summary); err != nil {
		slog.Error("report_mail_failed", "report_id", saved.ID, "error", err)
		return
	}
	slog.Info("report_mailed", "report_id", saved.ID, "attendees", len(summary.Attendees))
}

// reportSummary resolves the member references of a saved report to names.
func (s *server) reportSummary(ctx context.Context, saved form.Saved) email.ReportSummary {
	v := saved.Values
	str := func(key string) string {
		x, _ := v[key].(string)
		return x
	}

	sum := email.ReportSummary{
		CelulaID:    s.opts.CelulaID,
		Date:        str("data"),
		LongDate:    str("data"),
		Local:       str("local"),
		Tema:        str("tema"),
		Observation: str("observacao"),
		Updated:     saved.Edit,
	}
	if t, err := mask.ParseDate(sum.Date); err == nil {
		sum.Date = mask.FormatBR(t)
		sum.LongDate = mask.LongDate(s.opts.Lang, t)
	}
	if id := idOf(v["pregador_id"]); id > 0 {
		sum.Preacher, _ = s.deps.Lookups.Name(ctx, member.Resource, id)
	}
	for _, id := range idsOf(v["presentes"]) {
		name, ok := s.deps.Lookups.Name(ctx, member.Resource, id)
		if !ok {
			name = "#" + strconv.FormatInt(id, 10)
		}
		sum.Attendees = append(sum.Attendees, name)
	}
	return sum
}
