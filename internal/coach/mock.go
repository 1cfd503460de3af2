package coach

import (
	"context"
	"fmt"
	"sync"
)

// MockCall records one Complete invocation.
type MockCall struct {
	System string
	User   string
}

// MockProvider is a deterministic Provider for testing. It returns canned
// replies in FIFO order and records all calls.
type MockProvider struct {
	mu      sync.Mutex
	replies []string
	err     error
	Calls   []MockCall
}

// NewMockProvider creates a MockProvider with the given canned replies.
func NewMockProvider(replies ...string) *MockProvider {
	return &MockProvider{replies: replies}
}

// Fail makes every subsequent Complete call return err.
func (m *MockProvider) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockProvider) Complete(_ context.Context, system, user string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{System: system, User: user})

	if m.err != nil {
		return "", m.err
	}
	if len(m.replies) == 0 {
		return "", fmt.Errorf("mock provider out of replies")
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return reply, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}
