// Package cli はコマンドラインの表示層です。
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/gemini-ementa-kit/internal/config"
	"github.com/shouni/gemini-ementa-kit/pkg/client"
	"github.com/shouni/gemini-ementa-kit/pkg/domain"
	"github.com/shouni/gemini-ementa-kit/pkg/summary"
	"github.com/spf13/cobra"
)

// NewRootCmd はルートコマンドを組み立てます。
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "resumementa",
		Short:         "Resume ementas e decisões judiciais em linguagem simples",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSummarizeCmd(), newServeCmd())
	return root
}

// reportedError はアラートやログで既に利用者へ表示済みのエラーです。
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }

func (e reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return reportedError{err: err}
}

// Run はコマンドを実行し、まだ表示していないエラーを標準エラーに書き出します。
func Run(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var r reportedError
	if !errors.As(err, &r) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", domain.AlertTitle, err)
	}
	return err
}

// Execute はルートコマンドを実行します。
func Execute() {
	if err := Run(context.Background(), NewRootCmd()); err != nil {
		os.Exit(1)
	}
}

// setup は設定を読み込み、ロガーと要約サービスを組み立てます。
func setup(ctx context.Context, cmd *cobra.Command) (config.Config, *slog.Logger, *summary.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return config.Config{}, nil, nil, reported(err)
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	logger.DebugContext(ctx, "設定を読み込みました", "config", cfg)

	sc, err := newSummaryClient(ctx, cfg, logger)
	if err != nil {
		logger.ErrorContext(ctx, "要約クライアントの初期化に失敗しました", "error", err, "backend", cfg.Backend)
		return config.Config{}, nil, nil, reported(err)
	}

	svc, err := summary.NewService(sc, logger)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, logger, svc, nil
}

func newSummaryClient(ctx context.Context, cfg config.Config, logger *slog.Logger) (client.SummaryClient, error) {
	switch cfg.Backend {
	case config.BackendGenAI:
		return client.NewGenAIClientFromKey(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL, logger)
	default:
		return client.NewRESTClient(cfg.APIKey, cfg.Model, cfg.BaseURL, nil, logger)
	}
}
