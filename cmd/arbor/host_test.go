package main

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"arbor/internal/source"
	"arbor/internal/tree"
	"arbor/internal/ui"
)

func continentRecords() []tree.Record {
	return []tree.Record{
		{ID: "asia", Name: "Asia"},
		{ID: "china", ParentID: "asia", Name: "China"},
		{ID: "japan", ParentID: "asia", Order: 1, Name: "Japan"},
		{ID: "antarctica", Order: 1, Name: "Antarctica"},
	}
}

func loadedHost(t *testing.T, opts runtimeOptions) *hostModel {
	t.Helper()
	src := source.NewStaticSource(continentRecords()...)
	m := newHostModel(context.Background(), src, tree.NewBuilder(), opts)
	if m.Init() == nil {
		t.Fatal("expected Init to start loading")
	}

	msg := ui.LoadRecords(context.Background(), src, nil)()
	next, _ := m.Update(msg)
	return next.(*hostModel)
}

func TestHostModelAppliesSelection(t *testing.T) {
	m := loadedHost(t, runtimeOptions{mode: tree.ModeMultiple, labelOpts: tree.DefaultLabelOptions()})
	if m.selector.Loading() {
		t.Fatal("expected records to be loaded")
	}

	next, cmd := m.Update(ui.SelectionChangedMsg{IDs: []string{"china", "japan"}})
	if cmd != nil {
		t.Fatal("expected no command after applying a selection")
	}
	m = next.(*hostModel)
	if diff := cmp.Diff([]string{"china", "japan"}, m.selector.SelectedIDs()); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]tree.Tag{{ID: "asia", Label: "Asia"}}, m.selector.Tags()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestHostModelInitialSelection(t *testing.T) {
	m := loadedHost(t, runtimeOptions{mode: tree.ModeSingle, selected: []string{"japan", "china"}})
	if diff := cmp.Diff([]string{"japan"}, m.selector.SelectedIDs()); diff != "" {
		t.Fatalf("single mode should keep the first id (-want +got):\n%s", diff)
	}
}

func TestHostModelSavesTheme(t *testing.T) {
	m := loadedHost(t, runtimeOptions{})
	var saved string
	m.saveTheme = func(name string) error {
		saved = name
		return errors.New("read-only home")
	}

	if _, cmd := m.Update(ui.ThemeChangedMsg{Name: "nord"}); cmd != nil {
		t.Fatal("expected no command")
	}
	if saved != "nord" {
		t.Fatalf("expected theme to be saved, got %q", saved)
	}
}

func TestHostModelQuitKeys(t *testing.T) {
	m := loadedHost(t, runtimeOptions{filterable: true})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected ctrl+c to quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected QuitMsg from ctrl+c")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected q to quit")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	m = next.(*hostModel)
	if !m.selector.Filtering() {
		t.Fatal("expected / to focus search")
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(*hostModel)
	if m.selector.Query() != "q" {
		t.Fatalf("expected q to be typed into search, got %q", m.selector.Query())
	}
}
