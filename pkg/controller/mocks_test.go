package controller

import (
	"context"
	"sync"

	"github.com/shouni/gemini-ementa-kit/pkg/domain"
)

// --- Mocks ---

type mockSummarizer struct {
	summarizeFunc func(ctx context.Context, req domain.SummaryRequest) (*domain.SummaryResult, error)

	mu    sync.Mutex
	calls int
}

func (m *mockSummarizer) Summarize(ctx context.Context, req domain.SummaryRequest) (*domain.SummaryResult, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.summarizeFunc != nil {
		return m.summarizeFunc(ctx, req)
	}
	return &domain.SummaryResult{}, nil
}

func (m *mockSummarizer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type alert struct {
	title   string
	message string
}

type mockAlerter struct {
	mu     sync.Mutex
	alerts []alert
}

func (m *mockAlerter) Alert(title, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts = append(m.alerts, alert{title: title, message: message})
}

func (m *mockAlerter) all() []alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]alert(nil), m.alerts...)
}

type mockPicker struct {
	data string
	err  error
}

func (m *mockPicker) Pick(ctx context.Context) (string, error) {
	return m.data, m.err
}
