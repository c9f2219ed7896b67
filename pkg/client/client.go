// Package client は Gemini の generateContent を呼び出し、要約テキストを取り出します。
package client

import (
	"context"
	"fmt"

	"github.com/shouni/gemini-ementa-kit/pkg/domain"
	"google.golang.org/genai"
)

// SummaryClient は組み立て済みのリクエストを送信し、要約テキストを返すインターフェースです。
// 返すエラーは domain.ErrNetwork / domain.ErrAuth / domain.ErrMalformedResponse のいずれかをラップします。
type SummaryClient interface {
	RequestSummary(ctx context.Context, req domain.Request) (string, error)
}

// ExtractText は candidates[0].content.parts[0].text を取り出します。
// 経路が欠けている場合は panic させず ErrMalformedResponse を返すのだ。
func ExtractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: レスポンスが空です", domain.ErrMalformedResponse)
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: candidates がありません (BlockReason: %s)", domain.ErrMalformedResponse, resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: candidates がありません", domain.ErrMalformedResponse)
	}

	// 最初の候補のみを利用する。
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 || candidate.Content.Parts[0] == nil {
		reason := genai.FinishReasonUnspecified
		if candidate != nil {
			reason = candidate.FinishReason
		}
		return "", fmt.Errorf("%w: content.parts がありません (FinishReason: %s)", domain.ErrMalformedResponse, reason)
	}

	text := candidate.Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("%w: parts[0].text が空です (FinishReason: %s)", domain.ErrMalformedResponse, candidate.FinishReason)
	}
	return text, nil
}
