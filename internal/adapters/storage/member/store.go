package member

import (
	"context"

	domain "celula/internal/domain/member"
)

// Store persists Member state.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Member, error)
	Create(ctx context.Context, value domain.Member) (int64, error)
	Update(ctx context.Context, value domain.Member) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListFilter) ([]domain.Member, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	CelulaID   int64
	ActiveOnly bool
}
