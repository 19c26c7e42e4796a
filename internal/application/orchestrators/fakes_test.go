package orchestrators

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"celula/internal/domain/account"
	"celula/internal/domain/member"
	"celula/internal/domain/report"
	"celula/internal/domain/role"
)

// --- in-memory test doubles ---

type memAcctStore struct {
	accounts map[string]account.Account // keyed by lower-case email
	saves    int
}

func newMemAcctStore() *memAcctStore {
	return &memAcctStore{accounts: make(map[string]account.Account)}
}

func (s *memAcctStore) Save(_ context.Context, a account.Account) error {
	s.accounts[strings.ToLower(a.Email)] = a
	s.saves++
	return nil
}

func (s *memAcctStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	a, ok := s.accounts[strings.ToLower(email)]
	if !ok {
		return account.Account{}, fmt.Errorf("account not found: %w", sql.ErrNoRows)
	}
	return a, nil
}

func (s *memAcctStore) Count(context.Context) (int, error) {
	return len(s.accounts), nil
}

type memRoleStore struct {
	roles []role.Role
}

func (s *memRoleStore) GetByID(_ context.Context, id int64) (role.Role, error) {
	for _, r := range s.roles {
		if r.ID == id {
			return r, nil
		}
	}
	return role.Role{}, fmt.Errorf("role not found: %w", sql.ErrNoRows)
}

func (s *memRoleStore) EnsureByName(_ context.Context, r role.Role) (int64, error) {
	for _, existing := range s.roles {
		if existing.Nome == r.Nome {
			return existing.ID, nil
		}
	}
	r.ID = int64(len(s.roles) + 1)
	s.roles = append(s.roles, r)
	return r.ID, nil
}

type memMemberStore struct {
	members map[int64]member.Member
	next    int64
}

func newMemMemberStore(existing ...member.Member) *memMemberStore {
	s := &memMemberStore{members: make(map[int64]member.Member)}
	for _, m := range existing {
		s.members[m.ID] = m
		if m.ID > s.next {
			s.next = m.ID
		}
	}
	return s
}

func (s *memMemberStore) GetByID(_ context.Context, id int64) (member.Member, error) {
	m, ok := s.members[id]
	if !ok {
		return member.Member{}, fmt.Errorf("member not found: %w", sql.ErrNoRows)
	}
	return m, nil
}

func (s *memMemberStore) Create(_ context.Context, m member.Member) (int64, error) {
	s.next++
	m.ID = s.next
	s.members[m.ID] = m
	return m.ID, nil
}

func (s *memMemberStore) Update(_ context.Context, m member.Member) error {
	if _, ok := s.members[m.ID]; !ok {
		return fmt.Errorf("member not found: %w", sql.ErrNoRows)
	}
	s.members[m.ID] = m
	return nil
}

func (s *memMemberStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.members[id]; !ok {
		return fmt.Errorf("member not found: %w", sql.ErrNoRows)
	}
	delete(s.members, id)
	return nil
}

type memReportStore struct {
	reports map[int64]report.Report
	next    int64
}

func newMemReportStore() *memReportStore {
	return &memReportStore{reports: make(map[int64]report.Report)}
}

func (s *memReportStore) GetByID(_ context.Context, id int64) (report.Report, error) {
	r, ok := s.reports[id]
	if !ok {
		return report.Report{}, fmt.Errorf("report not found: %w", sql.ErrNoRows)
	}
	return r, nil
}

func (s *memReportStore) Create(_ context.Context, r report.Report) (int64, error) {
	s.next++
	r.ID = s.next
	s.reports[r.ID] = r
	return r.ID, nil
}

func (s *memReportStore) Update(_ context.Context, r report.Report) error {
	if _, ok := s.reports[r.ID]; !ok {
		return fmt.Errorf("report not found: %w", sql.ErrNoRows)
	}
	s.reports[r.ID] = r
	return nil
}
