package tree

import (
	"fmt"
	"strings"

	appErrors "arbor/internal/errors"
)

// CyclicTreeError is returned by Build when parent references loop back on
// themselves. Path lists the ids around the loop, first id repeated last.
type CyclicTreeError struct {
	Path []string
}

func (e *CyclicTreeError) Error() string {
	return "cyclic parent reference: " + strings.Join(e.Path, " -> ")
}

// Unwrap exposes the coded form so appErrors.IsCode(err, CodeCyclicTree) holds.
func (e *CyclicTreeError) Unwrap() error {
	return appErrors.New(appErrors.CodeCyclicTree, e.Error(), nil)
}

func invalidRecordError(index int, reason string) error {
	return appErrors.New(appErrors.CodeInvalidRecord, fmt.Sprintf("record %d: %s", index, reason), nil)
}

func nestedItemError(path string, reason string) error {
	return appErrors.New(appErrors.CodeInvalidRecord, fmt.Sprintf("item %s: %s", path, reason), nil)
}
