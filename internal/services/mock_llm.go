package services

import (
	"context"
	"sync"
)

// MockLLMAPI is a mock implementation of LLMService for testing.
type MockLLMAPI struct {
	InitModelFunc func(ctx context.Context, modelName string) error
	GenerateFunc  func(ctx context.Context, req GenerateRequest) (string, error)

	// Track calls for testing
	InitModelCalls []string
	GenerateCalls  []GenerateRequest

	mu sync.Mutex // protects all fields above
}

// NewMockLLMAPI creates a new mock LLM service.
func NewMockLLMAPI() *MockLLMAPI {
	return &MockLLMAPI{
		InitModelCalls: make([]string, 0),
		GenerateCalls:  make([]GenerateRequest, 0),
	}
}

// InitModel mocks model initialization.
func (m *MockLLMAPI) InitModel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InitModelCalls = append(m.InitModelCalls, modelName)

	if m.InitModelFunc != nil {
		return m.InitModelFunc(ctx, modelName)
	}
	return nil
}

// Generate mocks narrative generation.
func (m *MockLLMAPI) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GenerateCalls = append(m.GenerateCalls, req)

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return "Mock response.", nil
}

// GenerateCallCount returns the number of Generate calls made.
func (m *MockLLMAPI) GenerateCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.GenerateCalls)
}

// SetGenerateError makes every Generate call fail with err.
func (m *MockLLMAPI) SetGenerateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateFunc = func(ctx context.Context, req GenerateRequest) (string, error) {
		return "", err
	}
}
