// Package source loads flat tree records from SQLite databases and JSON or
// YAML files.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	appErrors "arbor/internal/errors"
	"arbor/internal/tree"
)

// Source yields the records a tree is built from.
type Source interface {
	Records(ctx context.Context) ([]tree.Record, error)
}

// Format names a record encoding.
type Format string

const (
	FormatAuto   Format = "auto"
	FormatSQLite Format = "sqlite"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
)

// ParseFormat accepts the names used in flags and config. Empty means auto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatSQLite, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "db", "sqlite3":
		return FormatSQLite, nil
	default:
		return "", appErrors.Newf(appErrors.CodeConfigurationError, "unknown source format %q (want auto, sqlite, json or yaml)", s)
	}
}

// Options configures Open.
type Options struct {
	Format Format
	// Table is the SQLite table holding records.
	Table string
	// Fields maps nested file data onto records.
	Fields tree.FieldNames
}

const sqliteMagic = "SQLite format 3\x00"

// Detect resolves FormatAuto for path, first by extension and then by
// sniffing the SQLite header.
func Detect(path string, format Format) (Format, error) {
	if format != "" && format != FormatAuto {
		return format, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}

	//nolint:gosec // G304: path comes from the user's --source flag
	f, err := os.Open(path)
	if err != nil {
		return "", appErrors.New(appErrors.CodeSourceFailed, fmt.Sprintf("open %s", path), err)
	}
	defer func() {
		_ = f.Close()
	}()
	head := make([]byte, len(sqliteMagic))
	n, err := io.ReadFull(f, head)
	if err == nil && string(head) == sqliteMagic {
		return FormatSQLite, nil
	}
	trimmed := bytes.TrimSpace(head[:n])
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return FormatJSON, nil
	}
	return "", appErrors.Newf(appErrors.CodeSourceFailed, "cannot detect format of %s; pass --format", path)
}

// Open returns the Source for path.
func Open(path string, opts Options) (Source, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, appErrors.Newf(appErrors.CodeConfigurationError, "no source given; pass --source or set source.path")
	}
	format, err := Detect(path, opts.Format)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatSQLite:
		return NewSQLiteSource(path, opts.Table)
	case FormatJSON, FormatYAML:
		return NewFileSource(path, format, opts.Fields), nil
	default:
		return nil, appErrors.Newf(appErrors.CodeConfigurationError, "unsupported source format %q", format)
	}
}
