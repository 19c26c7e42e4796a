package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"celula/internal/domain/role"
)

// RoleStoreForSeed defines the store interface needed by SeedRoles.
type RoleStoreForSeed interface {
	EnsureByName(ctx context.Context, r role.Role) (int64, error)
}

// SeedRolesDeps holds dependencies for SeedRoles.
type SeedRolesDeps struct {
	RoleStore RoleStoreForSeed
}

// ExecuteSeedRoles makes sure every default role exists.
// POST: Each role in role.Defaults is stored exactly once
func ExecuteSeedRoles(ctx context.Context, deps SeedRolesDeps) error {
	for _, r := range role.Defaults {
		if _, err := deps.RoleStore.EnsureByName(ctx, r); err != nil {
			return fmt.Errorf("seed role %q: %w", r.Nome, err)
		}
	}
	slog.Info("seed_event", "event", "roles_seeded", "count", len(role.Defaults))
	return nil
}
