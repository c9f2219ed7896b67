package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shouni/gemini-ementa-kit/pkg/domain"
	"github.com/shouni/gemini-ementa-kit/pkg/payload"
	"google.golang.org/genai"
)

// ContentGenerator は genai.Models が満たすインターフェースです。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenAIClient は google.golang.org/genai SDK 経由で要約を取得する SummaryClient です。
type GenAIClient struct {
	models ContentGenerator
	model  string
	log    *slog.Logger
}

// NewGenAIClient は ContentGenerator を注入して GenAIClient を初期化します。
func NewGenAIClient(models ContentGenerator, model string, logger *slog.Logger) (*GenAIClient, error) {
	if models == nil {
		return nil, fmt.Errorf("models (ContentGenerator) is required")
	}
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GenAIClient{models: models, model: model, log: logger}, nil
}

// NewGenAIClientFromKey は API キーから genai.Client を作成して GenAIClient を返します。
func NewGenAIClientFromKey(ctx context.Context, apiKey, model, baseURL string, logger *slog.Logger) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" && baseURL != DefaultBaseURL {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	c, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("genai クライアントの作成に失敗しました: %w", err)
	}
	return NewGenAIClient(c.Models, model, logger)
}

// RequestSummary は SDK でリクエストを送信し、要約テキストを返します。
func (c *GenAIClient) RequestSummary(ctx context.Context, req domain.Request) (string, error) {
	contents, err := payload.ToGenAI(req)
	if err != nil {
		return "", err
	}

	resp, err := c.models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", c.classify(ctx, err)
	}
	return ExtractText(resp)
}

// classify は SDK のエラーを domain のエラー分類に変換します。
func (c *GenAIClient) classify(ctx context.Context, err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}

	c.log.WarnContext(ctx, "Gemini API がエラーを返しました", "status", apiErr.Code, "detail", apiErr.Status+": "+apiErr.Message)
	switch {
	case apiErr.Code == http.StatusUnauthorized, apiErr.Code == http.StatusForbidden:
		return fmt.Errorf("%w: status %d: %s", domain.ErrAuth, apiErr.Code, apiErr.Message)
	case apiErr.Code == http.StatusBadRequest && strings.Contains(apiErr.Message, "API key"):
		return fmt.Errorf("%w: status %d: %s", domain.ErrAuth, apiErr.Code, apiErr.Message)
	}
	return fmt.Errorf("%w: status %d: %s", domain.ErrNetwork, apiErr.Code, apiErr.Message)
}
