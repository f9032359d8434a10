package tree

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"arbor/internal/debug"
	appErrors "arbor/internal/errors"

	"github.com/google/go-cmp/cmp"
)

func TestBuilderBuildSimpleForest(t *testing.T) {
	records := []Record{
		{ID: "eu", Order: 2, Name: "Europe"},
		{ID: "asia", Order: 1, Name: "Asia"},
		{ID: "jp", ParentID: "asia", Order: 2, Name: "Japan"},
		{ID: "cn", ParentID: "asia", Order: 1, Name: "China"},
		{ID: "fr", ParentID: "eu", Order: 0, Name: "France"},
	}

	roots, err := NewBuilder().Build(records)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[0].ID != "asia" || roots[1].ID != "eu" {
		t.Fatalf("expected roots sorted asia, eu; got %s, %s", roots[0].ID, roots[1].ID)
	}
	asia := roots[0]
	if len(asia.Children) != 2 {
		t.Fatalf("expected asia to have 2 children, got %d", len(asia.Children))
	}
	if asia.Children[0].Label != "China" || asia.Children[1].Label != "Japan" {
		t.Fatalf("expected China before Japan, got %s, %s", asia.Children[0].Label, asia.Children[1].Label)
	}
	if !asia.Children[0].IsLeaf() {
		t.Fatal("expected China to be a leaf")
	}
}

func TestBuilderFlatListScenario(t *testing.T) {
	roots, err := Build([]Record{
		{ID: "1", ParentID: "", Order: 0, Name: "Root"},
		{ID: "2", ParentID: "1", Order: 1, Name: "Child"},
	})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	want := []*Node{{
		ID: "1", Order: 0, Label: "Root",
		Children: []*Node{{ID: "2", ParentID: "1", Order: 1, Label: "Child"}},
	}}
	if diff := cmp.Diff(want, roots); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderEqualOrdersKeepInputOrder(t *testing.T) {
	roots, err := Build([]Record{
		{ID: "p", Name: "P"},
		{ID: "c", ParentID: "p", Name: "C"},
		{ID: "a", ParentID: "p", Name: "A"},
		{ID: "b", ParentID: "p", Name: "B"},
	})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	var got []string
	for _, c := range roots[0].Children {
		got = append(got, c.ID)
	}
	if strings.Join(got, ",") != "c,a,b" {
		t.Fatalf("expected stable order c,a,b; got %v", got)
	}
}

func TestBuilderPromotesOrphans(t *testing.T) {
	var logs bytes.Buffer
	debug.InitWriter(&logs)
	t.Cleanup(func() { debug.InitWriter(nil) })

	roots, err := Build([]Record{
		{ID: "a", Name: "A"},
		{ID: "lost", ParentID: "ghost", Order: -1, Name: "Lost"},
	})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("expected orphan to become a root, got %d roots", len(roots))
	}
	if roots[0].ID != "lost" {
		t.Fatalf("expected orphan sorted first by order, got %s", roots[0].ID)
	}
	if roots[0].ParentID != "ghost" {
		t.Fatalf("expected declared parent to be preserved, got %q", roots[0].ParentID)
	}
	if !strings.Contains(logs.String(), `parent "ghost" of "lost" not found`) {
		t.Fatalf("expected orphan promotion to be logged, got %q", logs.String())
	}
}

func TestBuilderDetectsCycles(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		loop    []string
	}{
		{
			name:    "self parent",
			records: []Record{{ID: "a", ParentID: "a", Name: "A"}},
			loop:    []string{"a", "a"},
		},
		{
			name: "two node loop",
			records: []Record{
				{ID: "a", ParentID: "b", Name: "A"},
				{ID: "b", ParentID: "a", Name: "B"},
			},
			loop: []string{"a", "b", "a"},
		},
		{
			name: "loop below a healthy root",
			records: []Record{
				{ID: "root", Name: "Root"},
				{ID: "x", ParentID: "root", Name: "X"},
				{ID: "y", ParentID: "z", Name: "Y"},
				{ID: "z", ParentID: "w", Name: "Z"},
				{ID: "w", ParentID: "y", Name: "W"},
			},
			loop: []string{"y", "z", "w", "y"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.records)
			if err == nil {
				t.Fatal("expected cyclic error")
			}
			var cyc *CyclicTreeError
			if !errors.As(err, &cyc) {
				t.Fatalf("expected *CyclicTreeError, got %T", err)
			}
			if diff := cmp.Diff(tt.loop, cyc.Path); diff != "" {
				t.Fatalf("loop mismatch (-want +got):\n%s", diff)
			}
			if !appErrors.IsCode(err, appErrors.CodeCyclicTree) {
				t.Fatalf("expected code %s, got %s", appErrors.CodeCyclicTree, appErrors.CodeOf(err))
			}
		})
	}
}

func TestBuilderMalformedRecords(t *testing.T) {
	records := []Record{
		{ID: "  ", Name: "No id"},
		{ID: "a", Name: ""},
		{ID: "b", Name: "B"},
	}

	t.Run("lenient skips and patches", func(t *testing.T) {
		roots, err := Build(records)
		if err != nil {
			t.Fatalf("Build returned error: %v", err)
		}
		if len(roots) != 2 {
			t.Fatalf("expected 2 roots, got %d", len(roots))
		}
		if roots[0].Label != "a" {
			t.Fatalf("expected id fallback label, got %q", roots[0].Label)
		}
	})

	t.Run("strict rejects", func(t *testing.T) {
		_, err := NewBuilder(WithStrict(true)).Build(records)
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !appErrors.IsCode(err, appErrors.CodeInvalidRecord) {
			t.Fatalf("expected invalid_record, got %s", appErrors.CodeOf(err))
		}
		if !strings.Contains(err.Error(), "record 0: missing id") {
			t.Fatalf("expected missing id message, got %v", err)
		}
		if !strings.Contains(err.Error(), `record 1: missing name for "a"`) {
			t.Fatalf("expected missing name message, got %v", err)
		}
	})
}

func TestBuilderDuplicateIDsLastWriteWins(t *testing.T) {
	roots, err := Build([]Record{
		{ID: "a", Order: 0, Name: "First"},
		{ID: "b", Order: 1, Name: "B"},
		{ID: "a", Order: 0, Name: "Second"},
	})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("expected duplicates to collapse, got %d roots", len(roots))
	}
	if roots[0].Label != "Second" {
		t.Fatalf("expected last record to win, got %q", roots[0].Label)
	}
	if err := Validate([]Record{{ID: "a", Name: "A"}, {ID: "a", Name: "A"}}); !appErrors.IsCode(err, appErrors.CodeInvalidRecord) {
		t.Fatalf("expected Validate to flag duplicates, got %v", err)
	}
}

func TestBuilderEmptyInput(t *testing.T) {
	roots, err := Build(nil)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if roots == nil || len(roots) != 0 {
		t.Fatalf("expected empty non-nil forest, got %#v", roots)
	}
}

func TestBuilderIsIdempotent(t *testing.T) {
	records := []Record{
		{ID: "b", ParentID: "a", Order: 3, Name: "B"},
		{ID: "a", Order: 1, Name: "A"},
		{ID: "c", ParentID: "a", Order: 2, Name: "C"},
		{ID: "d", ParentID: "c", Order: 0, Name: "D"},
	}
	first, err := Build(records)
	if err != nil {
		t.Fatalf("first Build: %v", err)
	}
	second, err := Build(records)
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("builds differ (-first +second):\n%s", diff)
	}
}
