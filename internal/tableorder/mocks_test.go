package tableorder

import (
	"context"
	"sync"
)

// MockPublisher is a mock implementation of events.Publisher for testing
type MockPublisher struct {
	mu          sync.Mutex
	PublishFunc func(ctx context.Context, topic string, msg []byte) error
	topics      []string
	messages    [][]byte
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	m.mu.Lock()
	m.topics = append(m.topics, topic)
	m.messages = append(m.messages, msg)
	m.mu.Unlock()

	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, msg)
	}
	return nil
}

func (m *MockPublisher) Published() ([]string, [][]byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	topics := make([]string, len(m.topics))
	copy(topics, m.topics)
	messages := make([][]byte, len(m.messages))
	copy(messages, m.messages)
	return topics, messages
}

// MockMenuFetcher is a mock implementation of MenuFetcher for testing
type MockMenuFetcher struct {
	mu        sync.Mutex
	FetchFunc func(ctx context.Context) ([]MenuItem, error)
	calls     int
}

func NewMockMenuFetcher() *MockMenuFetcher {
	return &MockMenuFetcher{}
}

func (m *MockMenuFetcher) FetchMenu(ctx context.Context) ([]MenuItem, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.FetchFunc != nil {
		return m.FetchFunc(ctx)
	}
	return nil, nil
}

func (m *MockMenuFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockItemDispatcher is a mock implementation of ItemDispatcher for testing
type MockItemDispatcher struct {
	mu         sync.Mutex
	SubmitFunc func(ctx context.Context, req SubmitItemRequest) error
	requests   []SubmitItemRequest
}

func NewMockItemDispatcher() *MockItemDispatcher {
	return &MockItemDispatcher{}
}

func (m *MockItemDispatcher) SubmitItem(ctx context.Context, req SubmitItemRequest) error {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	return nil
}

func (m *MockItemDispatcher) Requests() []SubmitItemRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SubmitItemRequest, len(m.requests))
	copy(out, m.requests)
	return out
}
