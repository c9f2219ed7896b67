package summary

import (
	"context"

	"github.com/shouni/gemini-ementa-kit/pkg/domain"
)

// mockClient は client.SummaryClient のテスト用モックです。
type mockClient struct {
	requestFunc func(req domain.Request) (string, error)
	calls       int
	last        domain.Request
}

func (m *mockClient) RequestSummary(ctx context.Context, req domain.Request) (string, error) {
	m.calls++
	m.last = req
	if m.requestFunc != nil {
		return m.requestFunc(req)
	}
	return "", nil
}
