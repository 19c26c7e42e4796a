package member

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"celula/internal/adapters/storage"
	domain "celula/internal/domain/member"
)

const selectMember = "SELECT id, nome, endereco, telefone, data_conversao, data_inicio_celula, aniversario, ativo, celula_id FROM membro"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new member store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Member and its roles.
// PRE: id > 0
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Member, error) {
	entity, err := scanMember(s.db.QueryRowContext(ctx, selectMember+" WHERE id = ?", id).Scan)
	if err == sql.ErrNoRows {
		return domain.Member{}, fmt.Errorf("member not found: %w", err)
	}
	if err != nil {
		return domain.Member{}, err
	}
	members := []domain.Member{entity}
	if err := s.attachRoles(ctx, members); err != nil {
		return domain.Member{}, err
	}
	return members[0], nil
}

// Create inserts a Member and links its role.
// PRE: entity has been validated
// POST: Returns the new autoincrement id
func (s *SQLiteStore) Create(ctx context.Context, entity domain.Member) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO membro (nome, endereco, telefone, data_conversao, data_inicio_celula, aniversario, ativo, celula_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entity.Nome, entity.Endereco, entity.Telefone, entity.DataConversao,
		entity.DataInicioCelula, nullable(entity.Aniversario), entity.Ativo, entity.CelulaID,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := linkRole(ctx, tx, id, entity.CargoID); err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

// Update overwrites a Member and replaces its role link.
// PRE: entity.ID refers to an existing member; entity has been validated
// POST: Returns an error wrapping sql.ErrNoRows when no row matched
func (s *SQLiteStore) Update(ctx context.Context, entity domain.Member) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE membro SET nome = ?, endereco = ?, telefone = ?, data_conversao = ?,
		 data_inicio_celula = ?, aniversario = ?, ativo = ?, celula_id = ? WHERE id = ?`,
		entity.Nome, entity.Endereco, entity.Telefone, entity.DataConversao,
		entity.DataInicioCelula, nullable(entity.Aniversario), entity.Ativo, entity.CelulaID, entity.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("member not found: %w", sql.ErrNoRows)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM membro_cargo WHERE membro_id = ?", entity.ID); err != nil {
		return err
	}
	if err := linkRole(ctx, tx, entity.ID, entity.CargoID); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a Member. Role links and attendance rows cascade.
// POST: Returns an error wrapping sql.ErrNoRows when no row matched
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM membro WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("member not found: %w", sql.ErrNoRows)
	}
	return nil
}

// List retrieves the members of a cell ordered by name.
// POST: Each member carries its roles
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Member, error) {
	var query strings.Builder
	var args []any
	query.WriteString(selectMember + " WHERE 1 = 1")
	if filter.CelulaID > 0 {
		query.WriteString(" AND celula_id = ?")
		args = append(args, filter.CelulaID)
	}
	if filter.ActiveOnly {
		query.WriteString(" AND ativo = 1")
	}
	query.WriteString(" ORDER BY nome COLLATE NOCASE, id")

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Member{}
	for rows.Next() {
		entity, err := scanMember(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attachRoles(ctx, results); err != nil {
		return nil, err
	}
	return results, nil
}

// attachRoles fills Cargos and CargoID for every member in place.
func (s *SQLiteStore) attachRoles(ctx context.Context, members []domain.Member) error {
	if len(members) == 0 {
		return nil
	}
	index := make(map[int64]int, len(members))
	args := make([]any, len(members))
	for i, m := range members {
		index[m.ID] = i
		args[i] = m.ID
	}
	query := fmt.Sprintf(
		`SELECT mc.membro_id, c.id, c.nome FROM membro_cargo mc
		 JOIN cargo c ON c.id = mc.cargo_id
		 WHERE mc.membro_id IN (%s) ORDER BY c.id`,
		strings.TrimSuffix(strings.Repeat("?, ", len(args)), ", "),
	)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var memberID int64
		var ref domain.RoleRef
		if err := rows.Scan(&memberID, &ref.ID, &ref.Nome); err != nil {
			return err
		}
		m := &members[index[memberID]]
		m.Cargos = append(m.Cargos, ref)
		if m.CargoID == 0 {
			m.CargoID = ref.ID
		}
	}
	for i := range members {
		if members[i].Cargos == nil {
			members[i].Cargos = []domain.RoleRef{}
		}
	}
	return rows.Err()
}

func linkRole(ctx context.Context, tx *sql.Tx, memberID, roleID int64) error {
	if roleID < 1 {
		return nil
	}
	_, err := tx.ExecContext(ctx, "INSERT INTO membro_cargo (membro_id, cargo_id) VALUES (?, ?)", memberID, roleID)
	return err
}

// scanMember extracts a Member from a row scanner function.
func scanMember(scan func(dest ...any) error) (domain.Member, error) {
	var entity domain.Member
	var aniversario sql.NullString
	err := scan(
		&entity.ID,
		&entity.Nome,
		&entity.Endereco,
		&entity.Telefone,
		&entity.DataConversao,
		&entity.DataInicioCelula,
		&aniversario,
		&entity.Ativo,
		&entity.CelulaID,
	)
	if err != nil {
		return domain.Member{}, err
	}
	entity.Aniversario = aniversario.String
	return entity, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
