package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shouni/gemini-ementa-kit/pkg/domain"
	"github.com/shouni/gemini-ementa-kit/pkg/summary"
)

const shutdownTimeout = 10 * time.Second

// SummarizeRequest はモバイル側から送られる要約要求です。
type SummarizeRequest struct {
	Text        string `json:"text"`
	ImageBase64 string `json:"image_base64"`
}

// NewRouter は要約 API のルーティングを組み立てます。
func NewRouter(s summary.Summarizer, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/v1/summaries", SummarizeHandler(s, logger))
	return r
}

// POST /v1/summaries
func SummarizeHandler(s summary.Summarizer, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SummarizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}

		ctx := c.Request.Context()
		res, err := s.Summarize(ctx, domain.SummaryRequest{RawText: req.Text, ImageData: req.ImageBase64})
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": domain.AlertMessage(err)}})
				return
			}
			if errors.Is(err, domain.ErrInvalidPayload) {
				c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid image data"}})
				return
			}
			logger.ErrorContext(ctx, "要約に失敗しました", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": gin.H{"message": domain.AlertMessage(err)}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"summary": res.Text})
	}
}

// Run は ctx がキャンセルされるまで HTTP サーバーを動かします。
func Run(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "HTTP サーバーを起動しました", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP サーバーが停止しました: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.InfoContext(ctx, "HTTP サーバーを停止します", "addr", addr)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP サーバーの停止に失敗しました: %w", err)
	}
	return nil
}
