package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shouni/gemini-ementa-kit/pkg/domain"
	"github.com/shouni/gemini-ementa-kit/pkg/payload"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-api-key"

func newTestRESTClient(t *testing.T, handler http.HandlerFunc) *RESTClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewRESTClient(testKey, "gemini-2.0-flash", srv.URL, srv.Client(), nil)
	require.NoError(t, err)
	return c
}

func TestRESTClient_RequestSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("成功: 仕様どおりのリクエストを送りテキストを返す", func(t *testing.T) {
		c := newTestRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
			assert.Equal(t, testKey, r.URL.Query().Get("key"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			body, _ := io.ReadAll(r.Body)
			var got struct {
				Contents []struct {
					Parts []map[string]any `json:"parts"`
				} `json:"contents"`
			}
			require.NoError(t, json.Unmarshal(body, &got))
			require.Len(t, got.Contents, 1)
			require.Len(t, got.Contents[0].Parts, 2)
			assert.Contains(t, got.Contents[0].Parts[0], "text")
			inline, ok := got.Contents[0].Parts[1]["inline_data"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "image/jpeg", inline["mime_type"])
			assert.Equal(t, "aGVsbG8=", inline["data"])

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"X"}],"role":"model"},"finishReason":"STOP"}]}`))
		})

		got, err := c.RequestSummary(ctx, payload.Assemble("", "aGVsbG8="))
		require.NoError(t, err)
		assert.Equal(t, "X", got)
	})

	t.Run("失敗: 401 は ErrAuth", func(t *testing.T) {
		c := newTestRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":401,"message":"unauthorized","status":"UNAUTHENTICATED"}}`))
		})

		_, err := c.RequestSummary(ctx, payload.Assemble("ementa", ""))
		assert.ErrorIs(t, err, domain.ErrAuth)
		assert.ErrorIs(t, err, domain.ErrNetwork)
	})

	t.Run("失敗: 400 + API_KEY_INVALID は ErrAuth", func(t *testing.T) {
		c := newTestRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid.","status":"INVALID_ARGUMENT","details":[{"reason":"API_KEY_INVALID"}]}}`))
		})

		_, err := c.RequestSummary(ctx, payload.Assemble("ementa", ""))
		assert.ErrorIs(t, err, domain.ErrAuth)
	})

	t.Run("失敗: 500 は ErrNetwork だが ErrAuth ではない", func(t *testing.T) {
		c := newTestRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		_, err := c.RequestSummary(ctx, payload.Assemble("ementa", ""))
		assert.ErrorIs(t, err, domain.ErrNetwork)
		assert.NotErrorIs(t, err, domain.ErrAuth)
	})

	t.Run("失敗: candidates が空なら ErrMalformedResponse", func(t *testing.T) {
		c := newTestRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		})

		_, err := c.RequestSummary(ctx, payload.Assemble("ementa", ""))
		assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	})

	t.Run("失敗: JSON でないボディは ErrMalformedResponse", func(t *testing.T) {
		c := newTestRESTClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		})

		_, err := c.RequestSummary(ctx, payload.Assemble("ementa", ""))
		assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	})
}

func TestRESTClient_NetworkErrorDoesNotLeakKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	c, err := NewRESTClient(testKey, "", baseURL, nil, nil)
	require.NoError(t, err)

	_, err = c.RequestSummary(context.Background(), payload.Assemble("ementa", ""))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.NotContains(t, err.Error(), testKey)
	assert.Contains(t, c.Endpoint(), "/v1beta/models/"+DefaultModel+":generateContent")
}

func TestNewRESTClient(t *testing.T) {
	t.Run("API キーが無い場合はエラー", func(t *testing.T) {
		_, err := NewRESTClient("", "", "", nil, nil)
		assert.Error(t, err)
	})

	t.Run("HTTP クライアント未指定なら httpkit.Client を使う", func(t *testing.T) {
		c, err := NewRESTClient(testKey, "", "", nil, nil)
		require.NoError(t, err)
		_, ok := c.httpClient.(*httpkit.Client)
		assert.True(t, ok, "got %T", c.httpClient)
	})
}

func TestRESTClient_DefaultDoerAgainstLocalServer(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != testKey {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":401,"message":"unauthorized","status":"UNAUTHENTICATED"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"X"}]}}]}`))
	}))
	t.Cleanup(srv.Close)

	t.Run("httpkit 経由でもテキストを取り出せる", func(t *testing.T) {
		c, err := NewRESTClient(testKey, "", srv.URL, nil, nil)
		require.NoError(t, err)

		got, err := c.RequestSummary(ctx, payload.Assemble("ementa", ""))
		require.NoError(t, err)
		assert.Equal(t, "X", got)
	})

	t.Run("httpkit 経由でも 401 は ErrAuth", func(t *testing.T) {
		c, err := NewRESTClient("wrong-key", "", srv.URL, nil, nil)
		require.NoError(t, err)

		_, err = c.RequestSummary(ctx, payload.Assemble("ementa", ""))
		assert.ErrorIs(t, err, domain.ErrAuth)
	})
}

func TestApiErrorDetail_TruncatesOnRuneBoundary(t *testing.T) {
	// "ã" は2バイトなので 512 バイト目で文字が分断される
	raw := []byte("a" + strings.Repeat("ã", 600))

	got := apiErrorDetail(raw)

	assert.True(t, utf8.ValidString(got), "切り詰め後も有効な UTF-8 であるべき")
	assert.LessOrEqual(t, len(got), detailLimit)
	assert.Len(t, got, 511)
}
