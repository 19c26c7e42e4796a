package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode and foreign keys enabled
func InitDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		celula_id INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS cargo (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nome TEXT NOT NULL UNIQUE,
		descricao TEXT NOT NULL DEFAULT '',
		ativo INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS membro (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nome TEXT NOT NULL,
		endereco TEXT NOT NULL,
		telefone TEXT NOT NULL,
		data_conversao TEXT NOT NULL,
		data_inicio_celula TEXT NOT NULL,
		aniversario TEXT,
		ativo INTEGER NOT NULL DEFAULT 1,
		celula_id INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS membro_cargo (
		membro_id INTEGER NOT NULL,
		cargo_id INTEGER NOT NULL,
		PRIMARY KEY (membro_id, cargo_id),
		FOREIGN KEY (membro_id) REFERENCES membro(id) ON DELETE CASCADE,
		FOREIGN KEY (cargo_id) REFERENCES cargo(id)
	);

	CREATE TABLE IF NOT EXISTS relatorio (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		data TEXT NOT NULL,
		local TEXT NOT NULL,
		tema TEXT NOT NULL,
		observacao TEXT NOT NULL,
		pregador_id INTEGER NOT NULL,
		celula_id INTEGER NOT NULL,
		FOREIGN KEY (pregador_id) REFERENCES membro(id)
	);

	CREATE TABLE IF NOT EXISTS relatorio_presente (
		relatorio_id INTEGER NOT NULL,
		membro_id INTEGER NOT NULL,
		posicao INTEGER NOT NULL,
		PRIMARY KEY (relatorio_id, membro_id),
		FOREIGN KEY (relatorio_id) REFERENCES relatorio(id) ON DELETE CASCADE,
		FOREIGN KEY (membro_id) REFERENCES membro(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_membro_celula ON membro(celula_id);
	CREATE INDEX IF NOT EXISTS idx_relatorio_celula ON relatorio(celula_id, data);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
