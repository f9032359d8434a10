package source

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"arbor/internal/debug"
	appErrors "arbor/internal/errors"
	"arbor/internal/tree"

	_ "modernc.org/sqlite" // Pure Go SQLite driver, WAL-friendly
)

// DefaultTable is read when no table is configured.
const DefaultTable = "nodes"

// SQLiteSource reads records from a table with the columns
// id, parent_id, sort_order, name and disabled. The database is opened
// read-only in WAL mode so a writer may hold it concurrently.
type SQLiteSource struct {
	dbPath string
	dsn    string
	table  string
}

// NewSQLiteSource validates table and builds the read-only DSN for dbPath.
func NewSQLiteSource(dbPath, table string) (*SQLiteSource, error) {
	trimmed := strings.TrimSpace(dbPath)
	if trimmed == "" {
		return nil, appErrors.Newf(appErrors.CodeConfigurationError, "sqlite source requires a database path")
	}
	table = strings.TrimSpace(table)
	if table == "" {
		table = DefaultTable
	}
	if !validIdentifier(table) {
		return nil, appErrors.Newf(appErrors.CodeConfigurationError, "invalid table name %q", table)
	}
	return &SQLiteSource{
		dbPath: trimmed,
		dsn:    buildSQLiteDSN(trimmed),
		table:  table,
	}, nil
}

// Table returns the table records are read from.
func (s *SQLiteSource) Table() string { return s.table }

// buildSQLiteDSN creates a read-only WAL DSN for the given path.
func buildSQLiteDSN(dbPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	q.Set("mode", "ro")
	q.Set("_journal_mode", "WAL")
	q.Set("_busy_timeout", "3000")
	u.RawQuery = q.Encode()
	return u.String()
}

// validIdentifier accepts plain SQL identifiers so the table name can be
// interpolated into the query.
func validIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func (s *SQLiteSource) openDB(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.dsn)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeSourceFailed, "", fmt.Errorf("open sqlite db: %w", err))
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, appErrors.New(appErrors.CodeSourceFailed, "", fmt.Errorf("ping sqlite db %s: %w", s.dbPath, err))
	}
	return db, nil
}

// Records implements Source. NULL parent ids become roots, NULL orders sort
// as 0 and NULL names fall back to the id in the builder. Rows come back by
// sort_order then id, so WITHOUT ROWID tables read the same as plain ones.
func (s *SQLiteSource) Records(ctx context.Context) ([]tree.Record, error) {
	db, err := s.openDB(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = db.Close()
	}()

	//nolint:gosec // G201: table name is validated by validIdentifier
	query := fmt.Sprintf(`
		SELECT id, parent_id, sort_order, name, disabled
		FROM %s
		ORDER BY sort_order, id
	`, s.table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeSourceFailed, "", fmt.Errorf("query %s: %w", s.table, err))
	}
	defer func() {
		_ = rows.Close()
	}()

	records := []tree.Record{}
	for rows.Next() {
		var (
			id       string
			parentID sql.NullString
			order    sql.NullFloat64
			name     sql.NullString
			disabled sql.NullBool
		)
		if err := rows.Scan(&id, &parentID, &order, &name, &disabled); err != nil {
			return nil, appErrors.New(appErrors.CodeParseFailed, "", fmt.Errorf("scan %s row: %w", s.table, err))
		}
		records = append(records, tree.Record{
			ID:       id,
			ParentID: parentID.String,
			Order:    order.Float64,
			Name:     name.String,
			Disabled: disabled.Bool,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.New(appErrors.CodeSourceFailed, "", fmt.Errorf("read %s: %w", s.table, err))
	}
	debug.Logf("source: read %d records from %s (table %s)", len(records), s.dbPath, s.table)
	return records, nil
}

// Tables lists the user tables in the database, for interactive table choice.
func (s *SQLiteSource) Tables(ctx context.Context) ([]string, error) {
	db, err := s.openDB(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = db.Close()
	}()

	rows, err := db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeSourceFailed, "", fmt.Errorf("list tables: %w", err))
	}
	defer func() {
		_ = rows.Close()
	}()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, appErrors.New(appErrors.CodeSourceFailed, "", fmt.Errorf("scan table name: %w", err))
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// WithTable returns a copy reading from a different table.
func (s *SQLiteSource) WithTable(table string) (*SQLiteSource, error) {
	return NewSQLiteSource(s.dbPath, table)
}
