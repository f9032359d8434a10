package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"arbor/internal/debug"
	"arbor/internal/source"
	"arbor/internal/tree"
)

// SelectionChangedMsg carries the selection the user asked for. The widget
// never applies it; the host decides and calls SetValue. In multiple mode
// IDs is in tree pre-order; in single mode it holds one id or none.
type SelectionChangedMsg struct {
	IDs []string
}

// RecordsLoadedMsg delivers a built forest to the widget.
type RecordsLoadedMsg struct {
	Roots []*tree.Node
}

// RecordsFailedMsg reports that loading or building failed.
type RecordsFailedMsg struct {
	Err error
}

// ThemeChangedMsg is emitted after the user cycles themes.
type ThemeChangedMsg struct {
	Name string
}

type statusClearMsg struct {
	seq int
}

// LoadRecords reads src and builds the forest off the update loop.
func LoadRecords(ctx context.Context, src source.Source, builder *tree.Builder) tea.Cmd {
	return func() tea.Msg {
		records, err := src.Records(ctx)
		if err != nil {
			debug.Logf("ui: load records failed: %v", err)
			return RecordsFailedMsg{Err: err}
		}
		if builder == nil {
			builder = tree.NewBuilder()
		}
		roots, err := builder.Build(records)
		if err != nil {
			debug.Logf("ui: build tree failed: %v", err)
			return RecordsFailedMsg{Err: err}
		}
		return RecordsLoadedMsg{Roots: roots}
	}
}
