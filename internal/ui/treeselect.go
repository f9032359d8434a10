package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"arbor/internal/source"
	"arbor/internal/tree"
	"arbor/internal/ui/theme"
)

const statusDuration = 2 * time.Second

// clipboardWriteAll is swapped out in tests.
var clipboardWriteAll = clipboard.WriteAll

// Options configures a TreeSelect.
type Options struct {
	Mode        tree.Mode
	Filterable  bool
	Labels      tree.LabelOptions
	MaxTagCount int // 0 shows every tag
	Placeholder string
	// MarkdownStyle is the glamour style for the help overlay ("dark",
	// "light", "notty" or "plain").
	MarkdownStyle string
}

// DefaultOptions returns multi-select with search and both label policies on.
func DefaultOptions() Options {
	return Options{
		Mode:          tree.ModeMultiple,
		Filterable:    true,
		Labels:        tree.DefaultLabelOptions(),
		Placeholder:   "Select…",
		MarkdownStyle: "dark",
	}
}

type row struct {
	node  *tree.Node
	depth int
}

// TreeSelect is a controlled hierarchical selector. It renders the value the
// host gives it through SetValue and reports user intent as
// SelectionChangedMsg without applying it.
type TreeSelect struct {
	opts Options
	keys KeyMap
	help help.Model

	roots   []*tree.Node
	index   *tree.Index
	entries []tree.Entry
	agg     *tree.Aggregator

	value    tree.Selection
	expanded map[string]bool

	open   bool
	cursor int
	offset int

	filter    textinput.Model
	filtering bool
	matches   []tree.Entry
	matchCur  int
	// reveal is the id the cursor jumps to once the query is cleared.
	reveal string

	loading bool
	loadErr error
	spinner spinner.Model

	showHelp  bool
	status    string
	statusSeq int

	width  int
	height int
}

// NewTreeSelect creates an empty, closed selector.
func NewTreeSelect(opts Options) TreeSelect {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search"
	ti.CharLimit = 256

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	if strings.TrimSpace(opts.Placeholder) == "" {
		opts.Placeholder = DefaultOptions().Placeholder
	}

	return TreeSelect{
		opts:     opts,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		index:    tree.NewIndex(nil),
		agg:      tree.NewAggregator(),
		expanded: map[string]bool{},
		filter:   ti,
		spinner:  sp,
		width:    60,
		height:   16,
	}
}

// WithSize sets the render area.
func (m TreeSelect) WithSize(width, height int) TreeSelect {
	m.width, m.height = width, height
	m.help.Width = width
	m.filter.Width = width - 6
	return m.ensureVisible()
}

// WithKeyMap replaces the key bindings.
func (m TreeSelect) WithKeyMap(keys KeyMap) TreeSelect {
	m.keys = keys
	return m
}

// SetRoots replaces the forest. Expansion state survives for ids that still
// exist.
func (m TreeSelect) SetRoots(roots []*tree.Node) TreeSelect {
	m.roots = roots
	m.index = tree.NewIndex(roots)
	m.entries = tree.Flatten(roots)
	m.agg = tree.NewAggregator()
	m.loading = false
	m.loadErr = nil

	expanded := make(map[string]bool, len(m.expanded))
	for id := range m.expanded {
		if _, ok := m.index.Node(id); ok {
			expanded[id] = true
		}
	}
	m.expanded = expanded
	m = m.refreshMatches()
	m.cursor = clamp(m.cursor, 0, len(m.visibleRows())-1)
	return m.ensureVisible()
}

// SetValue sets the selection to render.
func (m TreeSelect) SetValue(ids []string) TreeSelect {
	m.value = tree.NewSelection(ids...)
	return m
}

// Value returns the selection currently rendered.
func (m TreeSelect) Value() tree.Selection {
	return m.value
}

// SelectedIDs returns the rendered selection in tree order.
func (m TreeSelect) SelectedIDs() []string {
	return m.value.Ordered(m.index)
}

// Tags returns the labels shown in the closed box. In single mode the one
// selected node is shown whatever its kind.
func (m TreeSelect) Tags() []tree.Tag {
	if m.opts.Mode == tree.ModeSingle {
		var tags []tree.Tag
		for _, id := range m.value.IDs() {
			if n, ok := m.index.Node(id); ok {
				tags = append(tags, tree.Tag{ID: n.ID, Label: n.Label, Depth: m.index.Depth(id)})
			}
		}
		return tags
	}
	return tree.ResolveLabels(m.roots, m.value, m.opts.Labels)
}

// StartLoading shows the spinner and loads records from src.
func (m TreeSelect) StartLoading(ctx context.Context, src source.Source, builder *tree.Builder) (TreeSelect, tea.Cmd) {
	m.loading = true
	m.loadErr = nil
	return m, tea.Batch(m.spinner.Tick, LoadRecords(ctx, src, builder))
}

// IsOpen reports whether the panel is showing.
func (m TreeSelect) IsOpen() bool { return m.open }

// Loading reports whether records are pending.
func (m TreeSelect) Loading() bool { return m.loading }

// Err returns the last load error.
func (m TreeSelect) Err() error { return m.loadErr }

// Filtering reports whether the search box has focus.
func (m TreeSelect) Filtering() bool { return m.filtering }

// Query returns the search text.
func (m TreeSelect) Query() string { return m.filter.Value() }

// Matches returns the current search hits.
func (m TreeSelect) Matches() []tree.Entry { return m.matches }

// Expanded reports whether id is expanded.
func (m TreeSelect) Expanded(id string) bool { return m.expanded[id] }

// CurrentID returns the id under the cursor.
func (m TreeSelect) CurrentID() string {
	if m.query() != "" {
		if m.matchCur < len(m.matches) {
			return m.matches[m.matchCur].ID()
		}
		return ""
	}
	rows := m.visibleRows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return ""
	}
	return rows[m.cursor].node.ID
}

// Init implements tea.Model-like interface.
func (m TreeSelect) Init() tea.Cmd {
	if m.loading {
		return m.spinner.Tick
	}
	return nil
}

// Update handles messages and returns updated state.
func (m TreeSelect) Update(msg tea.Msg) (TreeSelect, tea.Cmd) {
	switch msg := msg.(type) {
	case RecordsLoadedMsg:
		return m.SetRoots(msg.Roots), nil

	case RecordsFailedMsg:
		m.loading = false
		m.loadErr = msg.Err
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.WithSize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.filtering {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m TreeSelect) handleKey(msg tea.KeyMsg) (TreeSelect, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Escape) {
			m.showHelp = false
		}
		return m, nil
	}
	if m.loading || m.loadErr != nil {
		return m, nil
	}
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	if !m.open {
		switch {
		case key.Matches(msg, m.keys.Open, m.keys.Down, m.keys.Toggle):
			m.open = true
			return m.ensureVisible(), nil
		case key.Matches(msg, m.keys.Filter) && m.opts.Filterable:
			m.open = true
			m.filtering = true
			return m, m.filter.Focus()
		case key.Matches(msg, m.keys.Copy):
			return m.copySelection()
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		return m.moveCursor(-1), nil
	case key.Matches(msg, m.keys.Down):
		return m.moveCursor(1), nil
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
		return m.ensureVisible(), nil
	case key.Matches(msg, m.keys.End):
		m.cursor = len(m.visibleRows()) - 1
		return m.ensureVisible(), nil
	case key.Matches(msg, m.keys.Left):
		return m.collapseOrParent(), nil
	case key.Matches(msg, m.keys.Right):
		return m.expandOrChild(), nil
	case key.Matches(msg, m.keys.Toggle):
		return m.toggle(m.currentNode())
	case key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Escape):
		m.open = false
		return m, nil
	case key.Matches(msg, m.keys.Filter) && m.opts.Filterable:
		m.filtering = true
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.Copy):
		return m.copySelection()
	case key.Matches(msg, m.keys.Theme):
		name := theme.Cycle()
		return m, func() tea.Msg { return ThemeChangedMsg{Name: name} }
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}
	return m, nil
}

// handleFilterKey routes keys while the search box has focus. Letters go to
// the input, so only non-printing keys navigate.
func (m TreeSelect) handleFilterKey(msg tea.KeyMsg) (TreeSelect, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.query() != "" {
			return m.clearQuery(), nil
		}
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyUp:
		if m.query() == "" {
			return m.moveCursor(-1), nil
		}
		m.matchCur = clamp(m.matchCur-1, 0, len(m.matches)-1)
		return m, nil
	case tea.KeyDown:
		if m.query() == "" {
			return m.moveCursor(1), nil
		}
		m.matchCur = clamp(m.matchCur+1, 0, len(m.matches)-1)
		return m, nil
	case tea.KeyEnter:
		if m.query() == "" {
			return m.toggle(m.currentNode())
		}
		if len(m.matches) == 0 {
			return m, nil
		}
		id := m.matches[m.matchCur].ID()
		m = m.revealNode(id)
		n, _ := m.index.Node(id)
		return m.toggle(n)
	}

	before := m.query()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.query() != before {
		m.matchCur = 0
		m = m.refreshMatches()
		if m.query() == "" {
			m = m.applyReveal()
		}
	}
	return m, cmd
}

func (m TreeSelect) query() string {
	return m.filter.Value()
}

func (m TreeSelect) refreshMatches() TreeSelect {
	if m.query() == "" {
		m.matches = nil
		m.matchCur = 0
		return m
	}
	m.matches = tree.Filter(m.entries, m.query())
	m.matchCur = clamp(m.matchCur, 0, len(m.matches)-1)
	return m
}

func (m TreeSelect) clearQuery() TreeSelect {
	m.filter.SetValue("")
	m = m.refreshMatches()
	return m.applyReveal()
}

// revealNode expands every ancestor of id and remembers it so the cursor
// lands on it when the hierarchy comes back.
func (m TreeSelect) revealNode(id string) TreeSelect {
	expanded := cloneSet(m.expanded)
	for _, anc := range m.index.Ancestors(id) {
		expanded[anc.ID] = true
	}
	m.expanded = expanded
	m.reveal = id
	return m
}

func (m TreeSelect) applyReveal() TreeSelect {
	if m.reveal == "" {
		return m
	}
	for i, r := range m.visibleRows() {
		if r.node.ID == m.reveal {
			m.cursor = i
			break
		}
	}
	m.reveal = ""
	return m.ensureVisible()
}

// toggle reports the selection the user asked for on n. It never changes
// m.value.
func (m TreeSelect) toggle(n *tree.Node) (TreeSelect, tea.Cmd) {
	if n == nil {
		return m, nil
	}
	if n.Disabled {
		return m.flash(fmt.Sprintf("%s is disabled", n.Label))
	}

	var next tree.Selection
	if m.opts.Mode == tree.ModeSingle {
		checked := !m.value.Has(n.ID)
		next = tree.Apply(tree.ModeSingle, n, checked, m.value)
		if checked {
			m.open = false
			m.filtering = false
			m.filter.Blur()
			m = m.clearQuery()
		}
	} else {
		checked := m.agg.Status(n, m.value) != tree.Checked
		next = tree.Apply(tree.ModeMultiple, n, checked, m.value)
	}

	ids := next.Ordered(m.index)
	return m, func() tea.Msg {
		return SelectionChangedMsg{IDs: ids}
	}
}

func (m TreeSelect) copySelection() (TreeSelect, tea.Cmd) {
	ids := m.SelectedIDs()
	if len(ids) == 0 {
		return m.flash("Nothing selected")
	}
	if err := clipboardWriteAll(strings.Join(ids, "\n")); err != nil {
		return m.flash(fmt.Sprintf("Copy failed: %v", err))
	}
	return m.flash(fmt.Sprintf("Copied %d id(s)", len(ids)))
}

func (m TreeSelect) flash(text string) (TreeSelect, tea.Cmd) {
	m.statusSeq++
	seq := m.statusSeq
	m.status = text
	return m, tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

func (m TreeSelect) visibleRows() []row {
	var rows []row
	tree.Walk(m.roots, func(n *tree.Node, depth int, _ *tree.Node) bool {
		rows = append(rows, row{node: n, depth: depth})
		return m.expanded[n.ID]
	})
	return rows
}

func (m TreeSelect) currentNode() *tree.Node {
	rows := m.visibleRows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return nil
	}
	return rows[m.cursor].node
}

func (m TreeSelect) moveCursor(delta int) TreeSelect {
	m.cursor = clamp(m.cursor+delta, 0, len(m.visibleRows())-1)
	return m.ensureVisible()
}

func (m TreeSelect) collapseOrParent() TreeSelect {
	n := m.currentNode()
	if n == nil {
		return m
	}
	if !n.IsLeaf() && m.expanded[n.ID] {
		m.expanded = cloneSet(m.expanded)
		delete(m.expanded, n.ID)
		return m.ensureVisible()
	}
	if parent := m.index.Parent(n.ID); parent != nil {
		for i, r := range m.visibleRows() {
			if r.node == parent {
				m.cursor = i
				break
			}
		}
	}
	return m.ensureVisible()
}

func (m TreeSelect) expandOrChild() TreeSelect {
	n := m.currentNode()
	if n == nil || n.IsLeaf() {
		return m
	}
	if !m.expanded[n.ID] {
		m.expanded = cloneSet(m.expanded)
		m.expanded[n.ID] = true
		return m
	}
	return m.moveCursor(1)
}

// listHeight is the number of rows the panel can show below the box, the
// search line, the footer and the status line.
func (m TreeSelect) listHeight() int {
	h := m.height - 6
	if m.opts.Filterable {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m TreeSelect) ensureVisible() TreeSelect {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
	return m
}

func cloneSet(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in)+1)
	for k, v := range in {
		if v {
			out[k] = true
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
