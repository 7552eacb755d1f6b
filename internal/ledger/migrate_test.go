package ledger

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestRunMigrationsIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "gastos.db")

	if err := runMigrations(dbPath); err != nil {
		t.Fatalf("first run: %v", err)
	}
	// A second run must see the schema as current and do nothing
	if err := runMigrations(dbPath); err != nil {
		t.Fatalf("second run: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'gastos'`).Scan(&name)
	if err != nil {
		t.Fatalf("gastos table missing after migration: %v", err)
	}
}

func TestMigrateUpRejectsBrokenSource(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "gastos.db")

	src := fstest.MapFS{
		"broken/000001_bad.up.sql": &fstest.MapFile{Data: []byte("CREATE TABLE (")},
	}
	if err := migrateUp(dbPath, src, "broken"); err == nil {
		t.Fatal("expected error for invalid migration SQL")
	}
}
