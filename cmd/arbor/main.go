package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	appErrors "arbor/internal/errors"
	"arbor/internal/config"
	"arbor/internal/debug"
	"arbor/internal/source"
	"arbor/internal/tree"
	"arbor/internal/ui/theme"

	tea "github.com/charmbracelet/bubbletea"
)

// loadTimeout bounds reading and building records. It starts after the
// source is resolved so time spent in the table prompt does not count.
var loadTimeout = 30 * time.Second

func main() {
	if err := config.Initialize(); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	versionFlag := flag.Bool("version", false, "Print version information and exit")
	sourceFlag := flag.String("source", config.GetString(config.KeySourcePath), "Record file or SQLite database")
	formatFlag := flag.String("format", config.GetString(config.KeySourceFormat), "Source format (auto, sqlite, json, yaml)")
	tableFlag := flag.String("table", config.GetString(config.KeySourceTable), "SQLite table holding the records")
	singleFlag := flag.Bool("single", !config.GetBool(config.KeyMultiple), "Select at most one node")
	noFilterFlag := flag.Bool("no-filter", !config.GetBool(config.KeyFilterable), "Disable the search box")
	showParentFlag := flag.Bool("show-parent", config.GetBool(config.KeyShowParent), "Show a fully checked group as one tag")
	showChildFlag := flag.Bool("show-child", config.GetBool(config.KeyShowChild), "Show checked leaves as tags")
	maxTagsFlag := flag.Int("max-tags", config.GetInt(config.KeyMaxTagCount), "Collapse tags past this count into +N (0 shows all)")
	selectFlag := flag.String("select", "", "Comma-separated ids selected at start")
	strictFlag := flag.Bool("strict", false, "Fail on malformed records instead of skipping them")
	debugFlag := flag.Bool("debug", false, "Write a debug log to ~/.arbor/debug.log")
	printTreeFlag := flag.Bool("print-tree", false, "Print the tree with check states and exit")
	searchFlag := flag.String("search", "", "Print leaves whose path contains QUERY and exit")
	labelsFlag := flag.Bool("labels", false, "Print the tags for --select and exit")
	jsonFlag := flag.Bool("json", false, "Write output as JSON")
	flag.Parse()

	if *versionFlag {
		printVersion(os.Stdout)
		os.Exit(0)
	}

	visited := map[string]struct{}{}
	flag.CommandLine.Visit(func(f *flag.Flag) {
		visited[f.Name] = struct{}{}
	})

	opts := computeRuntimeOptions(runtimeFlags{
		sourcePath: sourceFlag,
		format:     formatFlag,
		table:      tableFlag,
		single:     singleFlag,
		noFilter:   noFilterFlag,
		showParent: showParentFlag,
		showChild:  showChildFlag,
		maxTags:    maxTagsFlag,
		selected:   selectFlag,
		strict:     strictFlag,
		debug:      debugFlag,
		printTree:  printTreeFlag,
		search:     searchFlag,
		labels:     labelsFlag,
		jsonOutput: jsonFlag,
	}, visited)

	if err := debug.Init(opts.debug); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log disabled: %v\n", err)
	}
	code := run(opts, os.Stdout, os.Stderr)
	debug.Close()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code.
func run(opts runtimeOptions, stdout, stderr io.Writer) int {
	if name := config.GetString(config.KeyTheme); name != "" && !theme.Set(name) {
		debug.Logf("main: unknown theme %q, keeping %s", name, theme.Current().Name)
	}

	src, err := openSource(context.Background(), opts)
	if err != nil {
		reportError(stderr, err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	builder := tree.NewBuilder(tree.WithStrict(opts.strict))

	if opts.oneShot() {
		records, err := src.Records(ctx)
		if err != nil {
			reportError(stderr, err)
			return 1
		}
		roots, err := builder.Build(records)
		if err != nil {
			reportError(stderr, err)
			return 1
		}
		if err := runOneShot(stdout, roots, opts); err != nil {
			reportError(stderr, err)
			return 1
		}
		return 0
	}

	start := time.Now()
	model := newHostModel(ctx, src, builder, opts)
	final, err := runProgram(model, func(m *hostModel) programRunner {
		return tea.NewProgram(m, tea.WithAltScreen())
	})
	if err != nil {
		reportError(stderr, err)
		return 1
	}
	if final.selector.Err() != nil {
		reportError(stderr, final.selector.Err())
		return 1
	}

	printExitSummary(stderr, ExitSummary{
		Version:  Version,
		Duration: time.Since(start),
		Tags:     final.selector.Tags(),
		Selected: len(final.selector.SelectedIDs()),
	})
	if err := writeIDs(stdout, final.selector.SelectedIDs(), opts.jsonOutput); err != nil {
		reportError(stderr, err)
		return 1
	}
	return 0
}

// openSource resolves the record source, letting the user pick a table when
// the configured one is missing from a SQLite database.
func openSource(ctx context.Context, opts runtimeOptions) (source.Source, error) {
	format, err := source.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	src, err := source.Open(opts.sourcePath, source.Options{
		Format: format,
		Table:  opts.table,
		Fields: opts.fields,
	})
	if err != nil {
		return nil, err
	}
	if db, ok := src.(*source.SQLiteSource); ok {
		return resolveTable(ctx, db)
	}
	return src, nil
}

func reportError(w io.Writer, err error) {
	debug.Logf("main: %v", err)
	code := appErrors.CodeOf(err)
	if code == appErrors.CodeUnknown {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Error [%s]: %v\n", code, err)
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*hostModel) programRunner

func runProgram(model *hostModel, factory programFactory) (*hostModel, error) {
	if model == nil {
		return nil, fmt.Errorf("model is nil")
	}
	if factory == nil {
		return nil, fmt.Errorf("program factory is nil")
	}
	prog := factory(model)
	if prog == nil {
		return nil, fmt.Errorf("program is nil")
	}
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("run UI: %w", err)
	}
	if m, ok := final.(*hostModel); ok && m != nil {
		return m, nil
	}
	return model, nil
}

type runtimeFlags struct {
	sourcePath *string
	format     *string
	table      *string
	single     *bool
	noFilter   *bool
	showParent *bool
	showChild  *bool
	maxTags    *int
	selected   *string
	strict     *bool
	debug      *bool
	printTree  *bool
	search     *string
	labels     *bool
	jsonOutput *bool
}

type runtimeOptions struct {
	sourcePath  string
	format      string
	table       string
	mode        tree.Mode
	filterable  bool
	labelOpts   tree.LabelOptions
	maxTagCount int
	fields      tree.FieldNames
	selected    []string
	strict      bool
	debug       bool
	printTree   bool
	search      string
	labels      bool
	jsonOutput  bool
}

// oneShot reports whether a print mode replaces the interactive selector.
func (o runtimeOptions) oneShot() bool {
	return o.printTree || o.search != "" || o.labels
}

func computeRuntimeOptions(flags runtimeFlags, visited map[string]struct{}) runtimeOptions {
	sourcePath := strings.TrimSpace(config.GetString(config.KeySourcePath))
	if flagWasExplicitlySet("source", visited) {
		sourcePath = strings.TrimSpace(*flags.sourcePath)
	}

	format := strings.TrimSpace(config.GetString(config.KeySourceFormat))
	if flagWasExplicitlySet("format", visited) {
		format = strings.TrimSpace(*flags.format)
	}

	table := strings.TrimSpace(config.GetString(config.KeySourceTable))
	if flagWasExplicitlySet("table", visited) {
		table = strings.TrimSpace(*flags.table)
	}
	if table == "" {
		table = config.DefaultSourceTable
	}

	mode := config.Mode()
	if flagWasExplicitlySet("single", visited) {
		mode = tree.ModeMultiple
		if *flags.single {
			mode = tree.ModeSingle
		}
	}

	filterable := config.GetBool(config.KeyFilterable)
	if flagWasExplicitlySet("no-filter", visited) {
		filterable = !*flags.noFilter
	}

	labelOpts := config.LabelOptions()
	if flagWasExplicitlySet("show-parent", visited) {
		labelOpts.ShowParent = *flags.showParent
	}
	if flagWasExplicitlySet("show-child", visited) {
		labelOpts.ShowChild = *flags.showChild
	}

	maxTagCount := config.MaxTagCount()
	if flagWasExplicitlySet("max-tags", visited) {
		maxTagCount = sanitizeMaxTags(*flags.maxTags)
	}

	return runtimeOptions{
		sourcePath:  sourcePath,
		format:      format,
		table:       table,
		mode:        mode,
		filterable:  filterable,
		labelOpts:   labelOpts,
		maxTagCount: maxTagCount,
		fields:      config.FieldNames(),
		selected:    splitIDs(derefString(flags.selected)),
		strict:      derefBool(flags.strict),
		debug:       derefBool(flags.debug),
		printTree:   derefBool(flags.printTree),
		search:      strings.TrimSpace(derefString(flags.search)),
		labels:      derefBool(flags.labels),
		jsonOutput:  derefBool(flags.jsonOutput),
	}
}

func flagWasExplicitlySet(name string, visited map[string]struct{}) bool {
	if _, ok := visited[name]; ok {
		return true
	}
	f := flag.CommandLine.Lookup(name)
	if f == nil {
		return false
	}
	return f.Value.String() != f.DefValue
}

func sanitizeMaxTags(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// splitIDs parses a comma-separated id list, dropping blanks and repeats.
func splitIDs(raw string) []string {
	var ids []string
	seen := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefBool(p *bool) bool {
	return p != nil && *p
}
