package notification

import (
	"context"
	"sync"
)

// MockSink implements Sink in memory for unit tests.
type MockSink struct {
	mu      sync.Mutex
	records []Record

	Err error
}

// NewMockSink creates a new mock sink.
func NewMockSink() *MockSink {
	return &MockSink{}
}

// Insert appends the record or returns the configured error.
func (m *MockSink) Insert(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.records = append(m.records, rec)
	return nil
}

// Records returns a copy of everything inserted so far.
func (m *MockSink) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// Compile-time interface check
var _ Sink = (*MockSink)(nil)
