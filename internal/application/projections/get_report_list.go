package projections

import (
	"context"

	"celula/internal/adapters/storage/report"
	"celula/internal/application/listing"
	domainReport "celula/internal/domain/report"
)

// GetReportListQuery carries query parameters.
type GetReportListQuery struct {
	CelulaID int64
	Search   string
}

// GetReportListDeps holds dependencies for GetReportList.
type GetReportListDeps struct {
	ReportStore ReportStore
}

// QueryGetReportList returns the reports of a cell matching the search term, newest first.
// POST: Search matches tema or local, case-insensitively
func QueryGetReportList(ctx context.Context, query GetReportListQuery, deps GetReportListDeps) ([]domainReport.Report, error) {
	reports, err := deps.ReportStore.List(ctx, report.ListFilter{CelulaID: query.CelulaID})
	if err != nil {
		return nil, err
	}
	return listing.Filter(reports, query.Search, func(r domainReport.Report) []string {
		return []string{r.Tema, r.Local}
	}), nil
}
