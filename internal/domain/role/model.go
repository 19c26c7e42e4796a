package role

import (
	"errors"
	"strings"
)

// Resource is the API collection holding roles.
const Resource = "cargos"

// ErrNameRequired is returned when a role has no name.
var ErrNameRequired = errors.New("role name cannot be empty")

// Role is a function a member holds inside the cell.
type Role struct {
	ID        int64  `json:"id"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
	Ativo     int    `json:"ativo"`
}

// Validate checks if the Role has valid data.
// PRE: Role struct is populated
// POST: Returns error if validation fails, nil otherwise
func (r *Role) Validate() error {
	if strings.TrimSpace(r.Nome) == "" {
		return ErrNameRequired
	}
	return nil
}

// Defaults are the roles every new cell starts with.
var Defaults = []Role{
	{Nome: "líder", Descricao: "Responsável por administrar a célula, tem acesso as reuniões com supervisores e repassa aos membros.", Ativo: 1},
	{Nome: "vice-líder", Descricao: "Responsável por auxiliar na administração da célula, está constantemente aprendendo com o líder.", Ativo: 1},
	{Nome: "secretário", Descricao: "Responsável por organizar a documentação da célula e fazer relatórios da mesma.", Ativo: 1},
	{Nome: "Anfitrião", Descricao: "Responsável por disponibilizar sua casa para uma reunião, organiza o espaço e prepara o ambiente para louvor ao Senhor.", Ativo: 1},
	{Nome: "Membro", Descricao: "Responsável por participar da Grande Comissão ativamente, aprendendo na célula e convidando amigos.", Ativo: 1},
}
