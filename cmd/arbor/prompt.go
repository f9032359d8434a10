package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	appErrors "arbor/internal/errors"
	"arbor/internal/source"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

var (
	// isInteractiveTTYFunc is used to check if stdin is a TTY.
	isInteractiveTTYFunc = isInteractiveTTY

	// promptTableFunc is used for interactive table selection.
	promptTableFunc = promptTable
)

// resolveTable checks that the source's table exists. When it does not and
// stdin is a terminal, the user picks one of the database's tables.
func resolveTable(ctx context.Context, src *source.SQLiteSource) (*source.SQLiteSource, error) {
	tables, err := src.Tables(ctx)
	if err != nil {
		return nil, err
	}
	if slices.Contains(tables, src.Table()) {
		return src, nil
	}
	if len(tables) == 0 {
		return nil, appErrors.Newf(appErrors.CodeSourceFailed, "database has no tables")
	}
	if !isInteractiveTTYFunc() {
		return nil, appErrors.Newf(appErrors.CodeSourceFailed,
			"table %q not found (available: %s); pass --table", src.Table(), strings.Join(tables, ", "))
	}

	choice, err := promptTableFunc(src.Table(), tables)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeConfigurationError, "", fmt.Errorf("choose table: %w", err))
	}
	if !slices.Contains(tables, choice) {
		return nil, appErrors.Newf(appErrors.CodeConfigurationError, "table %q not found", choice)
	}
	return src.WithTable(choice)
}

func promptTable(missing string, tables []string) (string, error) {
	choice := tables[0]
	form := huh.NewSelect[string]().
		Title(fmt.Sprintf("Table %q not found. Which table holds the records?", missing)).
		Description("Set source.table in .arbor/config.yaml to skip this question.").
		Options(huh.NewOptions(tables...)...).
		Value(&choice)

	if err := form.Run(); err != nil {
		return "", err
	}
	return choice, nil
}

// isInteractiveTTY returns true if stdin is connected to a terminal.
func isInteractiveTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
