package projections

import (
	"context"

	domainRole "celula/internal/domain/role"
)

// GetRoleListDeps holds dependencies for GetRoleList.
type GetRoleListDeps struct {
	RoleStore RoleStore
}

// QueryGetRoleList returns the active roles.
func QueryGetRoleList(ctx context.Context, deps GetRoleListDeps) ([]domainRole.Role, error) {
	roles, err := deps.RoleStore.List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]domainRole.Role, 0, len(roles))
	for _, r := range roles {
		if r.Ativo != 0 {
			active = append(active, r)
		}
	}
	return active, nil
}
