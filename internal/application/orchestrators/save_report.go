package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"celula/internal/domain/mask"
	"celula/internal/domain/member"
	"celula/internal/domain/report"
)

// ReportStoreForSave defines the store interface needed by SaveReport.
type ReportStoreForSave interface {
	GetByID(ctx context.Context, id int64) (report.Report, error)
	Create(ctx context.Context, r report.Report) (int64, error)
	Update(ctx context.Context, r report.Report) error
}

// MemberStoreForLookup resolves member references.
type MemberStoreForLookup interface {
	GetByID(ctx context.Context, id int64) (member.Member, error)
}

// SaveReportDeps holds dependencies for SaveReport.
type SaveReportDeps struct {
	ReportStore ReportStoreForSave
	MemberStore MemberStoreForLookup
}

// ErrUnknownMember is returned when the preacher or an attendee names no stored member.
var ErrUnknownMember = errors.New("referenced member does not exist")

// ExecuteSaveReport creates a report when r.ID is zero and updates it otherwise.
// PRE: r comes from a decoded request body
// POST: Returns the stored report with attendee names
// INVARIANT: Data is stored as yyyy-MM-dd
func ExecuteSaveReport(ctx context.Context, r report.Report, deps SaveReportDeps) (report.Report, error) {
	r.Local = strings.TrimSpace(r.Local)
	r.Tema = strings.TrimSpace(r.Tema)
	if err := r.Validate(); err != nil {
		return report.Report{}, err
	}
	day, _ := mask.ParseDate(r.Data)
	r.Data = mask.FormatISO(day)

	refs := append([]int64{r.PregadorID}, r.AttendeeIDs()...)
	for _, id := range refs {
		if _, err := deps.MemberStore.GetByID(ctx, id); err != nil {
			return report.Report{}, fmt.Errorf("%w: %d", ErrUnknownMember, id)
		}
	}

	id := r.ID
	if id == 0 {
		newID, err := deps.ReportStore.Create(ctx, r)
		if err != nil {
			return report.Report{}, fmt.Errorf("create report: %w", err)
		}
		id = newID
		slog.Info("report_event", "event", "report_created", "report_id", id, "attendees", len(r.Presentes))
	} else {
		if err := deps.ReportStore.Update(ctx, r); err != nil {
			return report.Report{}, fmt.Errorf("update report: %w", err)
		}
		slog.Info("report_event", "event", "report_updated", "report_id", id)
	}
	return deps.ReportStore.GetByID(ctx, id)
}
