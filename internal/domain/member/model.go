package member

import (
	"errors"
	"strings"
	"unicode/utf8"

	"celula/internal/domain/mask"
)

// Length rules for user-editable fields.
const (
	MinNameLength    = 2
	MaxNameLength    = 120
	MinAddressLength = 5
)

// Resource is the API collection holding members.
const Resource = "membros"

// NoRole is displayed when a member has no role assigned.
const NoRole = "N/A"

// Domain errors
var (
	ErrNameTooShort    = errors.New("member name must have at least 2 characters")
	ErrNameTooLong     = errors.New("member name cannot exceed 120 characters")
	ErrAddressTooShort = errors.New("member address must have at least 5 characters")
	ErrInvalidPhone    = errors.New("member phone must be formatted as (XX)XXXXX-XXXX or (XX)XXXX-XXXX")
	ErrInvalidSemester = errors.New("conversion date must be formatted as YYYY.S")
	ErrInvalidDate     = errors.New("member dates must be valid calendar dates")
	ErrRoleRequired    = errors.New("member role must be selected")
)

// RoleRef is the embedded view of a role assigned to a member.
type RoleRef struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}

// Member is one person registered in a cell.
type Member struct {
	ID               int64     `json:"id"`
	Nome             string    `json:"nome"`
	Endereco         string    `json:"endereco"`
	Telefone         string    `json:"telefone"`
	DataConversao    string    `json:"data_conversao"`
	DataInicioCelula string    `json:"data_inicio_celula"`
	Aniversario      string    `json:"aniversario"`
	Ativo            int       `json:"ativo"`
	CelulaID         int64     `json:"celula_id"`
	NomeCelula       string    `json:"nome_celula,omitempty"`
	CargoID          int64     `json:"cargo_id,omitempty"`
	Cargos           []RoleRef `json:"cargos"`
}

// Validate checks if the Member has valid data.
// PRE: Member struct is populated
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Telefone is stored formatted; dates are calendar dates
func (m *Member) Validate() error {
	n := utf8.RuneCountInString(strings.TrimSpace(m.Nome))
	if n < MinNameLength {
		return ErrNameTooShort
	}
	if n > MaxNameLength {
		return ErrNameTooLong
	}
	if utf8.RuneCountInString(strings.TrimSpace(m.Endereco)) < MinAddressLength {
		return ErrAddressTooShort
	}
	if !mask.IsPhone(m.Telefone) {
		return ErrInvalidPhone
	}
	if !mask.IsSemester(m.DataConversao) {
		return ErrInvalidSemester
	}
	if _, err := mask.ParseDate(m.DataInicioCelula); err != nil {
		return ErrInvalidDate
	}
	if m.Aniversario != "" {
		if _, err := mask.ParseDate(m.Aniversario); err != nil {
			return ErrInvalidDate
		}
	}
	if m.CargoID < 1 {
		return ErrRoleRequired
	}
	return nil
}

// PrimaryRole returns the name of the first assigned role, or NoRole.
// INVARIANT: Member fields are not mutated
func (m *Member) PrimaryRole() string {
	if len(m.Cargos) == 0 || m.Cargos[0].Nome == "" {
		return NoRole
	}
	return m.Cargos[0].Nome
}

// IsActive returns true unless the member was deactivated.
func (m *Member) IsActive() bool {
	return m.Ativo != 0
}

// SearchFields lists the values a free-text filter matches against.
// INVARIANT: Member fields are not mutated
func (m Member) SearchFields() []string {
	fields := []string{m.Nome, m.Telefone, m.DataConversao, m.Endereco}
	for _, c := range m.Cargos {
		fields = append(fields, c.Nome)
	}
	return fields
}
