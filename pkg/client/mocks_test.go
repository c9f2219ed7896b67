package client

import (
	"context"

	"google.golang.org/genai"
)

// --- Mocks ---

// mockGenerator は ContentGenerator のテスト用モックです。
type mockGenerator struct {
	generateFunc func(model string, contents []*genai.Content) (*genai.GenerateContentResponse, error)
	calls        int
}

func (m *mockGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls++
	if m.generateFunc != nil {
		return m.generateFunc(model, contents)
	}
	return nil, nil
}

// textResponse は parts[0].text に text を持つレスポンスを作ります。
func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}
