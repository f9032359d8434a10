// Demo program to visually test the TreeSelect component
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"arbor/internal/tree"
	"arbor/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type model struct {
	selector ui.TreeSelect
	ids      []string
	quit     bool
}

func continents() []tree.Record {
	return []tree.Record{
		{ID: "asia", Name: "Asia", Order: 0},
		{ID: "cn", ParentID: "asia", Name: "China", Order: 0},
		{ID: "jp", ParentID: "asia", Name: "Japan", Order: 1},
		{ID: "in", ParentID: "asia", Name: "India", Order: 2},
		{ID: "europe", Name: "Europe", Order: 1},
		{ID: "west", ParentID: "europe", Name: "Western Europe", Order: 0},
		{ID: "fr", ParentID: "west", Name: "France", Order: 0},
		{ID: "es", ParentID: "west", Name: "Spain", Order: 1},
		{ID: "pt", ParentID: "west", Name: "Portugal", Order: 2, Disabled: true},
		{ID: "pl", ParentID: "europe", Name: "Poland", Order: 1},
		{ID: "de", ParentID: "europe", Name: "Germany", Order: 2},
		{ID: "americas", Name: "Americas", Order: 2},
		{ID: "br", ParentID: "americas", Name: "Brazil", Order: 0},
		{ID: "mx", ParentID: "americas", Name: "Mexico", Order: 1},
		{ID: "aq", Name: "Antarctica", Order: 3},
	}
}

func initialModel(single bool, maxTags int) (model, error) {
	roots, err := tree.Build(continents())
	if err != nil {
		return model{}, err
	}

	opts := ui.DefaultOptions()
	if single {
		opts.Mode = tree.ModeSingle
	}
	opts.MaxTagCount = maxTags
	opts.Placeholder = "Pick countries…"

	return model{
		selector: ui.NewTreeSelect(opts).WithSize(64, 20).SetRoots(roots),
	}, nil
}

func (m model) Init() tea.Cmd {
	return m.selector.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quit = true
			return m, tea.Quit
		case "q":
			// q is a search character while the filter is focused.
			if !m.selector.Filtering() {
				m.quit = true
				return m, tea.Quit
			}
		}

	case ui.SelectionChangedMsg:
		m.ids = msg.IDs
		m.selector = m.selector.SetValue(msg.IDs)
		return m, nil
	}

	var cmd tea.Cmd
	m.selector, cmd = m.selector.Update(msg)
	return m, cmd
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)
)

func (m model) View() string {
	if m.quit {
		return ""
	}

	s := titleStyle.Render("TreeSelect Demo")
	s += "\n\n"
	s += "Countries:\n"
	s += m.selector.View()
	s += "\n\n"

	if len(m.ids) > 0 {
		s += "Value: " + selectedStyle.Render(strings.Join(m.ids, ", "))
		s += "\n"
	}

	s += helpStyle.Render("\nenter open • space toggle • / search • ? help • q quit")

	return s
}

func main() {
	single := flag.Bool("single", false, "single selection")
	maxTags := flag.Int("max-tags", 3, "collapse tags past this count")
	flag.Parse()

	m, err := initialModel(*single, *maxTags)
	if err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
