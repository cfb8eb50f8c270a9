package llm

import (
	"context"
	"sync"
)

// MockProvider is a test double that returns canned responses and
// records the prompts it received.
type MockProvider struct {
	Response string
	Err      error

	mu      sync.Mutex
	prompts []Prompt
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Generate(_ context.Context, prompt Prompt, _ Settings) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	return m.Response, m.Err
}

// Prompts returns the prompts received so far.
func (m *MockProvider) Prompts() []Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Prompt(nil), m.prompts...)
}
