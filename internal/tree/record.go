package tree

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Record is the flat, parent-pointer shape trees are stored in. An empty
// ParentID marks a root.
type Record struct {
	ID       string  `json:"id" yaml:"id"`
	ParentID string  `json:"parentId" yaml:"parentId"`
	Order    float64 `json:"order" yaml:"order"`
	Name     string  `json:"name" yaml:"name"`
	Disabled bool    `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// FieldNames remaps the keys of pre-nested source data.
type FieldNames struct {
	Value    string
	Title    string
	Children string
}

// DefaultFieldNames returns the {value, title, children} mapping.
func DefaultFieldNames() FieldNames {
	return FieldNames{Value: "value", Title: "title", Children: "children"}
}

func (f FieldNames) withDefaults() FieldNames {
	def := DefaultFieldNames()
	if strings.TrimSpace(f.Value) == "" {
		f.Value = def.Value
	}
	if strings.TrimSpace(f.Title) == "" {
		f.Title = def.Title
	}
	if strings.TrimSpace(f.Children) == "" {
		f.Children = def.Children
	}
	return f
}

// Validate reports every record Build would skip or patch: empty ids, empty
// names and duplicate ids. The returned error joins one coded
// invalid_record error per problem.
func Validate(records []Record) error {
	var errs []error
	seen := make(map[string]int, len(records))
	for i, rec := range records {
		id := strings.TrimSpace(rec.ID)
		if id == "" {
			errs = append(errs, invalidRecordError(i, "missing id"))
			continue
		}
		if strings.TrimSpace(rec.Name) == "" {
			errs = append(errs, invalidRecordError(i, fmt.Sprintf("missing name for %q", id)))
		}
		if first, dup := seen[id]; dup {
			errs = append(errs, invalidRecordError(i, fmt.Sprintf("duplicate id %q (first at record %d)", id, first)))
			continue
		}
		seen[id] = i
	}
	return errors.Join(errs...)
}

// FromNested converts pre-nested items into flat records. Sibling position
// becomes Order. Values may be strings or numbers; anything else is rejected
// rather than coerced.
func FromNested(items []map[string]any, fields FieldNames) ([]Record, error) {
	fields = fields.withDefaults()
	var out []Record
	var walk func(items []any, parentID, path string) error
	walk = func(items []any, parentID, path string) error {
		for i, raw := range items {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			item, ok := raw.(map[string]any)
			if !ok {
				return nestedItemError(itemPath, fmt.Sprintf("expected object, got %T", raw))
			}
			id, err := scalarString(item[fields.Value])
			if err != nil {
				return nestedItemError(itemPath, fmt.Sprintf("field %q: %v", fields.Value, err))
			}
			var title string
			switch raw := item[fields.Title].(type) {
			case nil:
			case string:
				title = raw
			default:
				if title, err = scalarString(raw); err != nil {
					return nestedItemError(itemPath, fmt.Sprintf("field %q: %v", fields.Title, err))
				}
			}
			disabled, _ := item["disabled"].(bool)
			out = append(out, Record{
				ID:       id,
				ParentID: parentID,
				Order:    float64(i),
				Name:     title,
				Disabled: disabled,
			})

			children, present := item[fields.Children]
			if !present || children == nil {
				continue
			}
			list, ok := children.([]any)
			if !ok {
				return nestedItemError(itemPath, fmt.Sprintf("field %q: expected list, got %T", fields.Children, children))
			}
			if err := walk(list, id, itemPath+"."+fields.Children); err != nil {
				return err
			}
		}
		return nil
	}

	top := make([]any, len(items))
	for i, item := range items {
		top[i] = item
	}
	if err := walk(top, "", ""); err != nil {
		return nil, err
	}
	return out, nil
}

func scalarString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			return "", fmt.Errorf("empty value")
		}
		return val, nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case nil:
		return "", fmt.Errorf("missing value")
	default:
		return "", fmt.Errorf("unsupported type %T", v)
	}
}
