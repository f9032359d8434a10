package source

import (
	"context"
	"fmt"
	"os"

	"arbor/internal/debug"
	appErrors "arbor/internal/errors"
	"arbor/internal/tree"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// FileSource reads a JSON or YAML document holding either a flat record
// array or a nested tree. A document is nested when any top-level item has
// the children field or no item has an "id" key.
type FileSource struct {
	path   string
	format Format
	fields tree.FieldNames
}

// NewFileSource creates a FileSource; format must be FormatJSON or FormatYAML.
func NewFileSource(path string, format Format, fields tree.FieldNames) *FileSource {
	return &FileSource{path: path, format: format, fields: fields}
}

// Records implements Source.
func (s *FileSource) Records(ctx context.Context) ([]tree.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	//nolint:gosec // G304: path comes from the user's --source flag
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeSourceFailed, "", fmt.Errorf("read %s: %w", s.path, err))
	}
	records, err := DecodeRecords(data, s.format, s.fields)
	if err != nil {
		return nil, err
	}
	debug.Logf("source: read %d records from %s", len(records), s.path)
	return records, nil
}

// DecodeRecords parses data as a flat or nested document.
func DecodeRecords(data []byte, format Format, fields tree.FieldNames) ([]tree.Record, error) {
	var items []map[string]any
	if err := unmarshal(data, format, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []tree.Record{}, nil
	}

	if isNested(items, fields) {
		records, err := tree.FromNested(items, fields)
		if err != nil {
			return nil, err
		}
		return records, nil
	}

	var records []tree.Record
	if err := unmarshal(data, format, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func unmarshal(data []byte, format Format, v any) error {
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, v)
	case FormatYAML:
		err = yaml.Unmarshal(data, v)
	default:
		return appErrors.Newf(appErrors.CodeConfigurationError, "file source cannot decode %q", format)
	}
	if err != nil {
		return appErrors.New(appErrors.CodeParseFailed, "", fmt.Errorf("decode %s: %w", format, err))
	}
	return nil
}

func isNested(items []map[string]any, fields tree.FieldNames) bool {
	children := fields.Children
	if children == "" {
		children = tree.DefaultFieldNames().Children
	}
	hasID := false
	for _, item := range items {
		if _, ok := item[children]; ok {
			return true
		}
		if _, ok := item["id"]; ok {
			hasID = true
		}
	}
	return !hasID
}
