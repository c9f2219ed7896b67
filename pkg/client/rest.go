package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/shouni/gemini-ementa-kit/pkg/domain"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"google.golang.org/genai"
)

const (
	// DefaultBaseURL は Gemini API のホストです。
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultModel は要約に使うモデルです。
	DefaultModel = "gemini-2.0-flash"

	maxResponseBytes = 8 << 20
	detailLimit      = 512
	redacted         = "REDACTED"
)

// HTTPDoer は httpkit.Client と *http.Client が満たす最小限のインターフェースです。
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RESTClient は REST エンドポイントに直接 POST する SummaryClient です。
// API キーはクエリパラメータ key で渡します。
type RESTClient struct {
	httpClient HTTPDoer
	endpoint   string
	apiKey     string
	log        *slog.Logger
}

// NewRESTClient は RESTClient を初期化します。httpClient が nil の場合は httpkit.Client を使います。
// 既定以外の baseURL（ローカルのモックサーバー等）ではネットワーク検証を無効にします。
func NewRESTClient(apiKey, model, baseURL string, httpClient HTTPDoer, logger *slog.Logger) (*RESTClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = newDefaultDoer(baseURL)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &RESTClient{
		httpClient: httpClient,
		endpoint:   fmt.Sprintf("%s/v1beta/models/%s:generateContent", strings.TrimRight(baseURL, "/"), model),
		apiKey:     apiKey,
		log:        logger,
	}, nil
}

func newDefaultDoer(baseURL string) HTTPDoer {
	if strings.TrimRight(baseURL, "/") == DefaultBaseURL {
		return httpkit.New(0)
	}
	return httpkit.New(0, httpkit.WithSkipNetworkValidation(true))
}

// Endpoint はキーを含まないエンドポイント URL を返します。
func (c *RESTClient) Endpoint() string {
	return c.endpoint
}

// RequestSummary はリクエストを1回だけ送信し、要約テキストを返します。リトライは行いません。
func (c *RESTClient) RequestSummary(ctx context.Context, req domain.Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("%w: リクエストのエンコードに失敗しました: %v", domain.ErrInvalidPayload, err)
	}

	q := url.Values{}
	q.Set("key", c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?"+q.Encode(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: リクエストの作成に失敗しました: %v", domain.ErrNetwork, c.redact(err.Error()))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// *url.Error はキー付きの URL を含むため、原因だけを取り出す
		cause := err
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			cause = urlErr.Err
		}
		return "", fmt.Errorf("%w: POST %s: %s", domain.ErrNetwork, c.endpoint, c.redact(cause.Error()))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: レスポンスの読み込みに失敗しました: %v", domain.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := c.redact(apiErrorDetail(raw))
		c.log.WarnContext(ctx, "Gemini API がエラーを返しました", "status", resp.StatusCode, "detail", detail)
		if isAuthFailure(resp.StatusCode, raw) {
			return "", fmt.Errorf("%w: status %d: %s", domain.ErrAuth, resp.StatusCode, detail)
		}
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrNetwork, resp.StatusCode, detail)
	}

	var out genai.GenerateContentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: JSON のデコードに失敗しました: %v", domain.ErrMalformedResponse, err)
	}
	return ExtractText(&out)
}

func (c *RESTClient) redact(s string) string {
	s = strings.ReplaceAll(s, c.apiKey, redacted)
	return strings.ReplaceAll(s, url.QueryEscape(c.apiKey), redacted)
}

type apiErrorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
		Details []struct {
			Reason string `json:"reason"`
		} `json:"details"`
	} `json:"error"`
}

// apiErrorDetail はエラーボディからログ用の要約を作ります。
func apiErrorDetail(raw []byte) string {
	var env apiErrorEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Error.Message == "" {
		return strings.TrimSpace(string(truncateUTF8(raw, detailLimit)))
	}
	if env.Error.Status != "" {
		return env.Error.Status + ": " + env.Error.Message
	}
	return env.Error.Message
}

// truncateUTF8 は limit バイト以内に収まるよう、文字の途中で切らずに切り詰めます。
func truncateUTF8(b []byte, limit int) []byte {
	if len(b) <= limit {
		return b
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(b[cut]) {
		cut--
	}
	return b[:cut]
}

// isAuthFailure は API キーが拒否されたかどうかを判定します。
// Gemini は不正なキーに対して 400 + API_KEY_INVALID を返すことがあるのだ。
func isAuthFailure(status int, raw []byte) bool {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return true
	case http.StatusBadRequest:
		var env apiErrorEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return false
		}
		for _, d := range env.Error.Details {
			if d.Reason == "API_KEY_INVALID" {
				return true
			}
		}
	}
	return false
}
