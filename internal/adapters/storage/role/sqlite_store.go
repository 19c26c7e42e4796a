package role

import (
	"context"
	"database/sql"
	"fmt"

	"celula/internal/adapters/storage"
	domain "celula/internal/domain/role"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new role store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Role by its ID.
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Role, error) {
	var r domain.Role
	err := s.db.QueryRowContext(ctx, "SELECT id, nome, descricao, ativo FROM cargo WHERE id = ?", id).
		Scan(&r.ID, &r.Nome, &r.Descricao, &r.Ativo)
	if err == sql.ErrNoRows {
		return domain.Role{}, fmt.Errorf("role not found: %w", err)
	}
	return r, err
}

// EnsureByName inserts the role unless one with the same name exists.
// PRE: value has been validated
// POST: Returns the id of the stored role with that name
func (s *SQLiteStore) EnsureByName(ctx context.Context, value domain.Role) (int64, error) {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO cargo (nome, descricao, ativo) VALUES (?, ?, ?) ON CONFLICT(nome) DO NOTHING",
		value.Nome, value.Descricao, value.Ativo,
	)
	if err != nil {
		return 0, err
	}
	var id int64
	err = s.db.QueryRowContext(ctx, "SELECT id FROM cargo WHERE nome = ?", value.Nome).Scan(&id)
	return id, err
}

// List returns all roles ordered by id.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Role, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, nome, descricao, ativo FROM cargo ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Role{}
	for rows.Next() {
		var r domain.Role
		if err := rows.Scan(&r.ID, &r.Nome, &r.Descricao, &r.Ativo); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Count returns the number of roles.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cargo").Scan(&n)
	return n, err
}
