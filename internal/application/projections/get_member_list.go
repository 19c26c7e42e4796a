package projections

import (
	"context"

	"celula/internal/adapters/storage/member"
	"celula/internal/application/listing"
	domainMember "celula/internal/domain/member"
)

// GetMemberListQuery carries query parameters.
type GetMemberListQuery struct {
	CelulaID int64
	Search   string
}

// GetMemberListDeps holds dependencies for GetMemberList.
type GetMemberListDeps struct {
	MemberStore MemberStore
}

// QueryGetMemberList returns the members of a cell matching the search term.
// PRE: CelulaID > 0
// POST: Search matches nome, telefone or endereco, case-insensitively; order is by name
func QueryGetMemberList(ctx context.Context, query GetMemberListQuery, deps GetMemberListDeps) ([]domainMember.Member, error) {
	members, err := deps.MemberStore.List(ctx, member.ListFilter{CelulaID: query.CelulaID})
	if err != nil {
		return nil, err
	}
	return listing.Filter(members, query.Search, func(m domainMember.Member) []string {
		return []string{m.Nome, m.Telefone, m.Endereco}
	}), nil
}
