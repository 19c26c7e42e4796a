package role

import (
	"context"

	domain "celula/internal/domain/role"
)

// Store persists Role state.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Role, error)
	EnsureByName(ctx context.Context, value domain.Role) (int64, error)
	List(ctx context.Context) ([]domain.Role, error)
	Count(ctx context.Context) (int, error)
}
