package projections

import (
	"context"

	"celula/internal/adapters/storage/member"
	"celula/internal/adapters/storage/report"
	domainMember "celula/internal/domain/member"
	domainReport "celula/internal/domain/report"
	domainRole "celula/internal/domain/role"
)

// MemberStore interface for member queries.
type MemberStore interface {
	List(ctx context.Context, filter member.ListFilter) ([]domainMember.Member, error)
}

// ReportStore interface for report queries.
type ReportStore interface {
	List(ctx context.Context, filter report.ListFilter) ([]domainReport.Report, error)
}

// RoleStore interface for role queries.
type RoleStore interface {
	List(ctx context.Context) ([]domainRole.Role, error)
}
