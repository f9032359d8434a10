package source

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	appErrors "arbor/internal/errors"
	"arbor/internal/tree"

	"github.com/google/go-cmp/cmp"
	_ "modernc.org/sqlite"
)

// testTreeDB creates a database with a records table named table and
// returns its path.
func testTreeDB(t *testing.T, table string, inserts ...string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "tree.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	schema := `
		CREATE TABLE ` + table + ` (
			id TEXT PRIMARY KEY,
			parent_id TEXT,
			sort_order REAL,
			name TEXT,
			disabled INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE notes (body TEXT);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	for _, stmt := range inserts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("insert %q: %v", stmt, err)
		}
	}
	return dbPath
}

func TestSQLiteSourceRecords(t *testing.T) {
	dbPath := testTreeDB(t, "nodes",
		`INSERT INTO nodes VALUES ('asia', NULL, 1, 'Asia', 0)`,
		`INSERT INTO nodes VALUES ('jp', 'asia', 2, 'Japan', 1)`,
		`INSERT INTO nodes VALUES ('cn', 'asia', 1, 'China', 0)`,
		`INSERT INTO nodes VALUES ('eu', '', NULL, NULL, 0)`,
	)

	src, err := NewSQLiteSource(dbPath, "")
	if err != nil {
		t.Fatalf("NewSQLiteSource: %v", err)
	}
	got, err := src.Records(context.Background())
	if err != nil {
		t.Fatalf("Records returned error: %v", err)
	}
	want := []tree.Record{
		{ID: "eu"},
		{ID: "asia", Order: 1, Name: "Asia"},
		{ID: "cn", ParentID: "asia", Order: 1, Name: "China"},
		{ID: "jp", ParentID: "asia", Order: 2, Name: "Japan", Disabled: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}

	roots, err := tree.Build(got)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(roots) != 2 || roots[0].ID != "eu" || roots[1].Children[0].ID != "cn" {
		t.Fatalf("unexpected forest %+v", roots)
	}
}

func TestSQLiteSourceWithoutRowidTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "norowid.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	stmts := []string{
		`CREATE TABLE nodes (
			id TEXT PRIMARY KEY,
			parent_id TEXT,
			sort_order REAL,
			name TEXT,
			disabled INTEGER NOT NULL DEFAULT 0
		) WITHOUT ROWID`,
		`INSERT INTO nodes VALUES ('b', NULL, 2, 'B', 0)`,
		`INSERT INTO nodes VALUES ('a', NULL, 1, 'A', 0)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	_ = db.Close()

	src, err := NewSQLiteSource(dbPath, "nodes")
	if err != nil {
		t.Fatalf("NewSQLiteSource: %v", err)
	}
	got, err := src.Records(context.Background())
	if err != nil {
		t.Fatalf("Records returned error: %v", err)
	}
	want := []tree.Record{
		{ID: "a", Order: 1, Name: "A"},
		{ID: "b", Order: 2, Name: "B"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteSourceCustomTableAndListing(t *testing.T) {
	dbPath := testTreeDB(t, "categories",
		`INSERT INTO categories VALUES ('a', NULL, 0, 'A', 0)`,
	)

	src, err := NewSQLiteSource(dbPath, "nodes")
	if err != nil {
		t.Fatalf("NewSQLiteSource: %v", err)
	}
	if _, err := src.Records(context.Background()); !appErrors.IsCode(err, appErrors.CodeSourceFailed) {
		t.Fatalf("expected source_failed for missing table, got %v", err)
	}

	tables, err := src.Tables(context.Background())
	if err != nil {
		t.Fatalf("Tables returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"categories", "notes"}, tables); diff != "" {
		t.Fatalf("tables mismatch (-want +got):\n%s", diff)
	}

	src, err = src.WithTable("categories")
	if err != nil {
		t.Fatalf("WithTable: %v", err)
	}
	got, err := src.Records(context.Background())
	if err != nil {
		t.Fatalf("Records returned error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("unexpected records %+v", got)
	}
}

func TestNewSQLiteSourceRejectsBadInput(t *testing.T) {
	for _, table := range []string{"nodes; DROP TABLE x", "1abc", "a-b", `"quoted"`} {
		if _, err := NewSQLiteSource("/tmp/x.db", table); !appErrors.IsCode(err, appErrors.CodeConfigurationError) {
			t.Errorf("table %q: expected configuration_error, got %v", table, err)
		}
	}
	if _, err := NewSQLiteSource("  ", ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSQLiteSourceMissingDatabase(t *testing.T) {
	src, err := NewSQLiteSource(filepath.Join(t.TempDir(), "missing.db"), "")
	if err != nil {
		t.Fatalf("NewSQLiteSource: %v", err)
	}
	if _, err := src.Records(context.Background()); !appErrors.IsCode(err, appErrors.CodeSourceFailed) {
		t.Fatalf("expected source_failed, got %v", err)
	}
}

func TestBuildSQLiteDSNIsReadOnly(t *testing.T) {
	dsn := buildSQLiteDSN("/data/tree.db")
	for _, want := range []string{"file:///data/tree.db?", "mode=ro", "_journal_mode=WAL", "_busy_timeout=3000"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("expected %q in DSN %q", want, dsn)
		}
	}
}
