package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"celula/internal/domain/mask"
	"celula/internal/domain/member"
	"celula/internal/domain/role"
)

// MemberStoreForSave defines the store interface needed by SaveMember.
type MemberStoreForSave interface {
	GetByID(ctx context.Context, id int64) (member.Member, error)
	Create(ctx context.Context, m member.Member) (int64, error)
	Update(ctx context.Context, m member.Member) error
}

// RoleStoreForLookup resolves role references.
type RoleStoreForLookup interface {
	GetByID(ctx context.Context, id int64) (role.Role, error)
}

// SaveMemberDeps holds dependencies for SaveMember.
type SaveMemberDeps struct {
	MemberStore MemberStoreForSave
	RoleStore   RoleStoreForLookup
}

// ErrUnknownRole is returned when cargo_id names no stored role.
var ErrUnknownRole = errors.New("member role does not exist")

// ExecuteSaveMember creates a member when m.ID is zero and updates it otherwise.
// PRE: m comes from a decoded request body
// POST: Returns the stored member with its roles
// INVARIANT: Telefone is stored in its formatted shape
func ExecuteSaveMember(ctx context.Context, m member.Member, deps SaveMemberDeps) (member.Member, error) {
	m.Nome = strings.TrimSpace(m.Nome)
	m.Endereco = strings.TrimSpace(m.Endereco)
	m.Telefone = mask.FormatPhone(m.Telefone)
	if m.CargoID == 0 && len(m.Cargos) > 0 {
		m.CargoID = m.Cargos[0].ID
	}
	if err := m.Validate(); err != nil {
		return member.Member{}, err
	}
	if _, err := deps.RoleStore.GetByID(ctx, m.CargoID); err != nil {
		return member.Member{}, fmt.Errorf("%w: %d", ErrUnknownRole, m.CargoID)
	}

	id := m.ID
	if id == 0 {
		m.Ativo = 1
		newID, err := deps.MemberStore.Create(ctx, m)
		if err != nil {
			return member.Member{}, fmt.Errorf("create member: %w", err)
		}
		id = newID
		slog.Info("member_event", "event", "member_created", "member_id", id, "celula_id", m.CelulaID)
	} else {
		existing, err := deps.MemberStore.GetByID(ctx, id)
		if err != nil {
			return member.Member{}, err
		}
		m.Ativo = existing.Ativo
		if err := deps.MemberStore.Update(ctx, m); err != nil {
			return member.Member{}, fmt.Errorf("update member: %w", err)
		}
		slog.Info("member_event", "event", "member_updated", "member_id", id)
	}
	return deps.MemberStore.GetByID(ctx, id)
}
