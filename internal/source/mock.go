package source

import (
	"context"
	"errors"
	"sync"

	"arbor/internal/tree"
)

// ErrMockNotImplemented is returned when MockSource lacks RecordsFn.
var ErrMockNotImplemented = errors.New("source.MockSource: RecordsFn not set")

// MockSource is a test double for Source.
type MockSource struct {
	RecordsFn func(context.Context) ([]tree.Record, error)

	mu               sync.Mutex
	RecordsCallCount int
}

// NewStaticSource returns a MockSource that always yields records.
func NewStaticSource(records ...tree.Record) *MockSource {
	return &MockSource{
		RecordsFn: func(context.Context) ([]tree.Record, error) {
			return append([]tree.Record(nil), records...), nil
		},
	}
}

// Records invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockSource) Records(ctx context.Context) ([]tree.Record, error) {
	m.mu.Lock()
	m.RecordsCallCount++
	m.mu.Unlock()

	if m.RecordsFn == nil {
		return nil, ErrMockNotImplemented
	}
	return m.RecordsFn(ctx)
}

// Calls returns how many times Records ran.
func (m *MockSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RecordsCallCount
}
