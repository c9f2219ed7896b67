package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// 要約バックエンドの種類
const (
	BackendREST  = "rest"
	BackendGenAI = "genai"
)

// Config は環境変数から読み込む設定です。API キーはログに出しません。
type Config struct {
	APIKey     string `env:"GEMINI_API_KEY,required,notEmpty"`
	Model      string `env:"GEMINI_MODEL"        envDefault:"gemini-2.0-flash"`
	BaseURL    string `env:"GEMINI_BASE_URL"     envDefault:"https://generativelanguage.googleapis.com"`
	Backend    string `env:"EMENTA_BACKEND"      envDefault:"rest"`
	ListenAddr string `env:"EMENTA_LISTEN_ADDR"  envDefault:":8080"`
	LogLevel   string `env:"EMENTA_LOG_LEVEL"    envDefault:"info"`
}

// Load は環境変数を解析して Config を返します。
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("設定の読み込みに失敗しました: %w", err)
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch cfg.Backend {
	case BackendREST, BackendGenAI:
	default:
		return Config{}, fmt.Errorf("EMENTA_BACKEND は %q か %q である必要があります: %q", BackendREST, BackendGenAI, cfg.Backend)
	}
	return cfg, nil
}

// Level は LogLevel を slog.Level に変換します。不正な値は Info 扱いです。
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// LogValue は API キーを除いた内容をログに出します。
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("model", c.Model),
		slog.String("base_url", c.BaseURL),
		slog.String("backend", c.Backend),
		slog.String("listen_addr", c.ListenAddr),
		slog.String("log_level", c.LogLevel),
	)
}
