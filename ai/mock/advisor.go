package mock

import (
	"context"
	"errors"
	"sync"

	"github.com/poiesic/grantmatch/ai"
)

// MockAdvisor is a test double for ai.Advisor.
// It allows custom behavior injection via function fields.
type MockAdvisor struct {
	// ReplyFunc is called by Reply if set.
	// If nil, echoes the last message wrapped in a paragraph.
	ReplyFunc func(ctx context.Context, history []ai.Message) (string, error)

	mu          sync.Mutex
	callCount   int
	lastHistory []ai.Message
}

// NewMockAdvisor creates a mock advisor with default echo behavior.
// Note: Returns concrete type to allow test assertions via GetMockAdvisor().
func NewMockAdvisor() *MockAdvisor {
	return &MockAdvisor{}
}

// Reply records the history it was given and returns a canned answer.
func (m *MockAdvisor) Reply(ctx context.Context, history []ai.Message) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.lastHistory = append([]ai.Message(nil), history...)
	m.mu.Unlock()

	if m.ReplyFunc != nil {
		return m.ReplyFunc(ctx, history)
	}

	if len(history) == 0 {
		return "", errors.New("mock advisor: empty history")
	}
	return "<p>" + history[len(history)-1].Content + "</p>", nil
}

// CallCount returns the number of times Reply was called.
func (m *MockAdvisor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastHistory returns a copy of the history passed to the most recent Reply.
func (m *MockAdvisor) LastHistory() []ai.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ai.Message(nil), m.lastHistory...)
}

// Reset clears the call count and custom behavior.
func (m *MockAdvisor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastHistory = nil
	m.ReplyFunc = nil
}
