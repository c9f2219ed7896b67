// Package summary は入力検証から API 呼び出しまでの一連の流れをまとめます。
package summary

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/gemini-ementa-kit/pkg/client"
	"github.com/shouni/gemini-ementa-kit/pkg/domain"
	"github.com/shouni/gemini-ementa-kit/pkg/payload"
	"github.com/shouni/gemini-ementa-kit/pkg/prompt"
)

// Summarizer はコントローラや HTTP ハンドラが利用する統合窓口です。
type Summarizer interface {
	Summarize(ctx context.Context, req domain.SummaryRequest) (*domain.SummaryResult, error)
}

// Service は PromptBuilder → PayloadAssembler → SummaryClient を順に呼び出します。
type Service struct {
	client client.SummaryClient
	log    *slog.Logger
}

// NewService は SummaryClient を注入して Service を初期化します。
func NewService(c client.SummaryClient, logger *slog.Logger) (*Service, error) {
	if c == nil {
		return nil, fmt.Errorf("client (SummaryClient) is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: c, log: logger}, nil
}

// Summarize は1回分の要約を実行します。入力が無い場合は通信せずに ErrValidation を返します。
func (s *Service) Summarize(ctx context.Context, req domain.SummaryRequest) (*domain.SummaryResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.HasImage() {
		if _, err := base64.StdEncoding.DecodeString(req.ImageData); err != nil {
			return nil, fmt.Errorf("%w: 画像データが base64 ではありません: %v", domain.ErrInvalidPayload, err)
		}
	}

	body := payload.Assemble(req.RawText, req.ImageData)
	if err := domain.ValidateParts(body.Parts()); err != nil {
		return nil, fmt.Errorf("リクエストの組み立てに失敗しました: %w", err)
	}

	mode := prompt.ModeFor(req.HasImage())
	start := time.Now()
	// 画像データやキーはログに出さない
	s.log.InfoContext(ctx, "要約をリクエストします", "mode", mode.String(), "parts", len(body.Parts()), "text_len", len(req.RawText))

	text, err := s.client.RequestSummary(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("要約の取得に失敗しました: %w", err)
	}

	s.log.InfoContext(ctx, "要約を受信しました", "mode", mode.String(), "duration", time.Since(start), "summary_len", len(text))
	return &domain.SummaryResult{Text: text}, nil
}
