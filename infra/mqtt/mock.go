package mqtt

import (
	"fmt"
	"sync"
)

// MockPublisher records published reports for tests.
type MockPublisher struct {
	mu      sync.Mutex
	Reports []any
	Fail    bool
	Closed  bool
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishReport records the report or returns an error if configured to
// fail.
func (m *MockPublisher) PublishReport(report any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("publish failed")
	}
	m.Reports = append(m.Reports, report)
	return nil
}

// Close marks the publisher as closed.
func (m *MockPublisher) Close() {
	m.mu.Lock()
	m.Closed = true
	m.mu.Unlock()
}

// Count returns how many reports were published.
func (m *MockPublisher) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Reports)
}
