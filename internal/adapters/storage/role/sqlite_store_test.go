package role

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"celula/internal/adapters/storage"
	domain "celula/internal/domain/role"
)

// TestSQLiteStore_EnsureByName verifies seeding is idempotent per name.
func TestSQLiteStore_EnsureByName(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	defer db.Close()
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("init db: %v", err)
	}
	store := NewSQLiteStore(db)
	ctx := context.Background()

	first, err := store.EnsureByName(ctx, domain.Defaults[0])
	if err != nil {
		t.Fatalf("EnsureByName: %v", err)
	}
	again, err := store.EnsureByName(ctx, domain.Defaults[0])
	if err != nil {
		t.Fatalf("EnsureByName again: %v", err)
	}
	if first != again {
		t.Errorf("ids differ: %d vs %d", first, again)
	}
	if n, _ := store.Count(ctx); n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}

	got, err := store.GetByID(ctx, first)
	if err != nil || got.Nome != "líder" || got.Ativo != 1 {
		t.Errorf("GetByID = %+v, %v", got, err)
	}
	if _, err := store.GetByID(ctx, 42); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("missing role err = %v", err)
	}
	list, _ := store.List(ctx)
	if len(list) != 1 {
		t.Errorf("List = %+v", list)
	}
}
