package report

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"celula/internal/adapters/storage"
	domain "celula/internal/domain/report"
)

const selectReport = `SELECT r.id, r.data, r.local, r.tema, r.observacao, r.pregador_id, COALESCE(m.nome, ''), r.celula_id
	FROM relatorio r LEFT JOIN membro m ON m.id = r.pregador_id`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new report store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Report with its attendees.
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Report, error) {
	entity, err := scanReport(s.db.QueryRowContext(ctx, selectReport+" WHERE r.id = ?", id).Scan)
	if err == sql.ErrNoRows {
		return domain.Report{}, fmt.Errorf("report not found: %w", err)
	}
	if err != nil {
		return domain.Report{}, err
	}
	reports := []domain.Report{entity}
	if err := s.attachAttendees(ctx, reports); err != nil {
		return domain.Report{}, err
	}
	return reports[0], nil
}

// Create inserts a Report and its attendance list.
// PRE: entity has been validated
// POST: Returns the new autoincrement id
func (s *SQLiteStore) Create(ctx context.Context, entity domain.Report) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO relatorio (data, local, tema, observacao, pregador_id, celula_id) VALUES (?, ?, ?, ?, ?, ?)`,
		entity.Data, entity.Local, entity.Tema, entity.Observacao, entity.PregadorID, entity.CelulaID,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := writeAttendees(ctx, tx, id, entity.AttendeeIDs()); err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

// Update overwrites a Report and replaces its attendance list.
// POST: Returns an error wrapping sql.ErrNoRows when no row matched
func (s *SQLiteStore) Update(ctx context.Context, entity domain.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE relatorio SET data = ?, local = ?, tema = ?, observacao = ?, pregador_id = ?, celula_id = ? WHERE id = ?`,
		entity.Data, entity.Local, entity.Tema, entity.Observacao, entity.PregadorID, entity.CelulaID, entity.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("report not found: %w", sql.ErrNoRows)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM relatorio_presente WHERE relatorio_id = ?", entity.ID); err != nil {
		return err
	}
	if err := writeAttendees(ctx, tx, entity.ID, entity.AttendeeIDs()); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a Report and, by cascade, its attendance rows.
// POST: Returns an error wrapping sql.ErrNoRows when no row matched
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM relatorio WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("report not found: %w", sql.ErrNoRows)
	}
	return nil
}

// List retrieves reports newest first.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Report, error) {
	query := selectReport
	var args []any
	if filter.CelulaID > 0 {
		query += " WHERE r.celula_id = ?"
		args = append(args, filter.CelulaID)
	}
	query += " ORDER BY r.data DESC, r.id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Report{}
	for rows.Next() {
		entity, err := scanReport(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attachAttendees(ctx, results); err != nil {
		return nil, err
	}
	return results, nil
}

// attachAttendees fills Presentes in recorded order for every report in place.
func (s *SQLiteStore) attachAttendees(ctx context.Context, reports []domain.Report) error {
	if len(reports) == 0 {
		return nil
	}
	index := make(map[int64]int, len(reports))
	args := make([]any, len(reports))
	for i, r := range reports {
		index[r.ID] = i
		args[i] = r.ID
		reports[i].Presentes = []domain.Attendee{}
	}
	query := fmt.Sprintf(
		`SELECT p.relatorio_id, m.id, m.nome FROM relatorio_presente p
		 JOIN membro m ON m.id = p.membro_id
		 WHERE p.relatorio_id IN (%s) ORDER BY p.relatorio_id, p.posicao`,
		strings.TrimSuffix(strings.Repeat("?, ", len(args)), ", "),
	)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var reportID int64
		var a domain.Attendee
		if err := rows.Scan(&reportID, &a.ID, &a.Nome); err != nil {
			return err
		}
		r := &reports[index[reportID]]
		r.Presentes = append(r.Presentes, a)
	}
	return rows.Err()
}

func writeAttendees(ctx context.Context, tx *sql.Tx, reportID int64, memberIDs []int64) error {
	for pos, id := range memberIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO relatorio_presente (relatorio_id, membro_id, posicao) VALUES (?, ?, ?)",
			reportID, id, pos,
		); err != nil {
			return err
		}
	}
	return nil
}

// scanReport extracts a Report from a row scanner function.
func scanReport(scan func(dest ...any) error) (domain.Report, error) {
	var entity domain.Report
	err := scan(
		&entity.ID,
		&entity.Data,
		&entity.Local,
		&entity.Tema,
		&entity.Observacao,
		&entity.PregadorID,
		&entity.Pregador,
		&entity.CelulaID,
	)
	return entity, err
}
