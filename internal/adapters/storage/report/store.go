package report

import (
	"context"

	domain "celula/internal/domain/report"
)

// Store persists meeting reports.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Report, error)
	Create(ctx context.Context, value domain.Report) (int64, error)
	Update(ctx context.Context, value domain.Report) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListFilter) ([]domain.Report, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	CelulaID int64
}
