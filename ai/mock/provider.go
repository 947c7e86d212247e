package mock

import "github.com/poiesic/grantmatch/ai"

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock embedder and advisor instances.
type MockProvider struct {
	embedder *MockEmbedder
	advisor  *MockAdvisor
	closed   bool
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use GetMockEmbedder()/GetMockAdvisor() to access concrete types for test assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		embedder: NewMockEmbedder(),
		advisor:  NewMockAdvisor(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(embedder *MockEmbedder, advisor *MockAdvisor) *MockProvider {
	return &MockProvider{
		embedder: embedder,
		advisor:  advisor,
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Advisor returns the mock advisor.
func (p *MockProvider) Advisor() ai.Advisor {
	return p.advisor
}

// Close marks the provider closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close was called.
func (p *MockProvider) Closed() bool {
	return p.closed
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockAdvisor returns the underlying mock advisor for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockAdvisor() *MockAdvisor {
	return p.advisor
}
