package tree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// sampleForest builds:
//
//	asia
//	  china
//	  japan
//	europe
//	  west
//	    france
//	    spain
//	  poland
//	antarctica
func sampleForest(t *testing.T) []*Node {
	t.Helper()
	roots, err := Build([]Record{
		{ID: "asia", Order: 0, Name: "Asia"},
		{ID: "china", ParentID: "asia", Order: 0, Name: "China"},
		{ID: "japan", ParentID: "asia", Order: 1, Name: "Japan"},
		{ID: "europe", Order: 1, Name: "Europe"},
		{ID: "west", ParentID: "europe", Order: 0, Name: "Western Europe"},
		{ID: "france", ParentID: "west", Order: 0, Name: "France"},
		{ID: "spain", ParentID: "west", Order: 1, Name: "Spain"},
		{ID: "poland", ParentID: "europe", Order: 1, Name: "Poland"},
		{ID: "antarctica", Order: 2, Name: "Antarctica"},
	})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	return roots
}

func mustNode(t *testing.T, ix *Index, id string) *Node {
	t.Helper()
	n, ok := ix.Node(id)
	if !ok {
		t.Fatalf("node %q not in index", id)
	}
	return n
}

func TestDescendantsPreOrder(t *testing.T) {
	ix := NewIndex(sampleForest(t))
	got := Descendants(mustNode(t, ix, "europe"))
	want := []string{"europe", "west", "france", "spain", "poland"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("descendants mismatch (-want +got):\n%s", diff)
	}
	if Descendants(nil) != nil {
		t.Fatal("expected nil descendants for nil node")
	}
}

func TestToggleChecksWholeSubtree(t *testing.T) {
	ix := NewIndex(sampleForest(t))
	start := NewSelection("china")

	got := Toggle(mustNode(t, ix, "west"), true, start)
	want := []string{"china", "france", "spain", "west"}
	if diff := cmp.Diff(want, got.IDs()); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"china"}, start.IDs()); diff != "" {
		t.Fatalf("input selection was mutated (-want +got):\n%s", diff)
	}
}

func TestToggleUncheckClearsSubtreeOnly(t *testing.T) {
	ix := NewIndex(sampleForest(t))
	start := NewSelection("china", "japan", "france", "spain", "poland")

	got := Toggle(mustNode(t, ix, "europe"), false, start)
	if diff := cmp.Diff([]string{"china", "japan"}, got.IDs()); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleRoundTripDoesNotLeak(t *testing.T) {
	ix := NewIndex(sampleForest(t))
	west := mustNode(t, ix, "west")
	start := NewSelection("china", "poland", "antarctica")

	checked := Toggle(west, true, start)
	back := Toggle(west, false, checked)
	if !back.Equal(start) {
		t.Fatalf("expected round trip to restore %v, got %v", start.IDs(), back.IDs())
	}
}

func TestApplySingleMode(t *testing.T) {
	ix := NewIndex(sampleForest(t))
	europe := mustNode(t, ix, "europe")
	japan := mustNode(t, ix, "japan")

	sel := Apply(ModeSingle, europe, true, NewSelection("china", "japan"))
	if diff := cmp.Diff([]string{"europe"}, sel.IDs()); diff != "" {
		t.Fatalf("single select should replace selection (-want +got):\n%s", diff)
	}

	if got := Apply(ModeSingle, japan, false, sel); !got.Equal(sel) {
		t.Fatalf("unchecking an unselected node should be a no-op, got %v", got.IDs())
	}
	if got := Apply(ModeSingle, europe, false, sel); got.Len() != 0 {
		t.Fatalf("unchecking the selected node should clear, got %v", got.IDs())
	}
}

func TestApplyMultipleDelegatesToToggle(t *testing.T) {
	ix := NewIndex(sampleForest(t))
	asia := mustNode(t, ix, "asia")
	got := Apply(ModeMultiple, asia, true, Selection{})
	if diff := cmp.Diff([]string{"asia", "china", "japan"}, got.IDs()); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
	if same := Apply(ModeMultiple, nil, true, got); !same.Equal(got) {
		t.Fatal("nil node should leave selection unchanged")
	}
}

func TestSelectionOrderedFollowsTree(t *testing.T) {
	ix := NewIndex(sampleForest(t))
	sel := NewSelection("poland", "zz-unknown", "china", "antarctica", "aa-unknown")
	want := []string{"china", "poland", "antarctica", "aa-unknown", "zz-unknown"}
	if diff := cmp.Diff(want, sel.Ordered(ix)); diff != "" {
		t.Fatalf("ordered mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectionFingerprint(t *testing.T) {
	a, err := NewSelection("x", "y").Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	b, err := NewSelection("y", "x", "").Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	c, err := NewSelection("x").Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if a != b {
		t.Fatal("expected equal sets to share a fingerprint")
	}
	if a == c {
		t.Fatal("expected different sets to differ")
	}
}

func TestIndexLookups(t *testing.T) {
	ix := NewIndex(sampleForest(t))
	if ix.Len() != 9 {
		t.Fatalf("expected 9 nodes, got %d", ix.Len())
	}
	if d := ix.Depth("spain"); d != 2 {
		t.Fatalf("expected spain depth 2, got %d", d)
	}
	if d := ix.Depth("nowhere"); d != -1 {
		t.Fatalf("expected -1 for unknown id, got %d", d)
	}
	if p := ix.Parent("spain"); p == nil || p.ID != "west" {
		t.Fatalf("expected spain parent west, got %v", p)
	}
	if ix.Parent("asia") != nil {
		t.Fatal("expected roots to have no parent")
	}
	var chain []string
	for _, n := range ix.Ancestors("spain") {
		chain = append(chain, n.ID)
	}
	if diff := cmp.Diff([]string{"europe", "west"}, chain); diff != "" {
		t.Fatalf("ancestors mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkStopsOnRevisit(t *testing.T) {
	a := &Node{ID: "a", Label: "A"}
	b := &Node{ID: "b", Label: "B", Children: []*Node{a}}
	a.Children = []*Node{b}

	var seen []string
	Walk([]*Node{a}, func(n *Node, _ int, _ *Node) bool {
		seen = append(seen, n.ID)
		return true
	})
	if diff := cmp.Diff([]string{"a", "b"}, seen); diff != "" {
		t.Fatalf("walk mismatch (-want +got):\n%s", diff)
	}
}

func TestLeafIDs(t *testing.T) {
	ix := NewIndex(sampleForest(t))
	got := LeafIDs(mustNode(t, ix, "europe"))
	if diff := cmp.Diff([]string{"france", "spain", "poland"}, got); diff != "" {
		t.Fatalf("leaf ids mismatch (-want +got):\n%s", diff)
	}
}
