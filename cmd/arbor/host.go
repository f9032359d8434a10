package main

import (
	"context"

	"arbor/internal/config"
	"arbor/internal/debug"
	"arbor/internal/source"
	"arbor/internal/tree"
	"arbor/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// hostModel owns the selection and feeds it back into the selector, which
// only reports what the user asked for.
type hostModel struct {
	selector ui.TreeSelect
	initCmd  tea.Cmd

	// saveTheme persists theme changes; swapped in tests.
	saveTheme func(string) error
}

func newHostModel(ctx context.Context, src source.Source, builder *tree.Builder, opts runtimeOptions) *hostModel {
	uiOpts := ui.DefaultOptions()
	uiOpts.Mode = opts.mode
	uiOpts.Filterable = opts.filterable
	uiOpts.Labels = opts.labelOpts
	uiOpts.MaxTagCount = opts.maxTagCount

	selected := opts.selected
	if opts.mode == tree.ModeSingle && len(selected) > 1 {
		selected = selected[:1]
	}

	selector, cmd := ui.NewTreeSelect(uiOpts).SetValue(selected).StartLoading(ctx, src, builder)
	return &hostModel{
		selector:  selector,
		initCmd:   cmd,
		saveTheme: config.SaveTheme,
	}
}

func (m *hostModel) Init() tea.Cmd {
	return m.initCmd
}

func (m *hostModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if msg.String() == "q" && !m.selector.Filtering() {
			return m, tea.Quit
		}
	case ui.SelectionChangedMsg:
		debug.Logf("host: selection now %v", msg.IDs)
		m.selector = m.selector.SetValue(msg.IDs)
		return m, nil
	case ui.ThemeChangedMsg:
		if m.saveTheme != nil {
			if err := m.saveTheme(msg.Name); err != nil {
				debug.Logf("host: save theme %s: %v", msg.Name, err)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.selector, cmd = m.selector.Update(msg)
	return m, cmd
}

func (m *hostModel) View() string {
	return m.selector.View()
}
