// Package controller は画面とやり取りする1つの対話状態（入力・画像・結果・読み込み中）を管理します。
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shouni/gemini-ementa-kit/pkg/domain"
	"github.com/shouni/gemini-ementa-kit/pkg/summary"
)

// Alerter はユーザーにアラートを表示する表示層の窓口です。
type Alerter interface {
	Alert(title, message string)
}

// ImagePicker は画像を選択させ、base64 の JPEG を返します。
// キャンセルされた場合は空文字を返します。
type ImagePicker interface {
	Pick(ctx context.Context) (string, error)
}

// Snapshot は表示層に公開する状態です。
type Snapshot struct {
	Text     string
	HasImage bool
	Summary  string
	Loading  bool
}

// Display は要約があればそれを、無ければプレースホルダを返します。
func (s Snapshot) Display() string {
	if s.Summary == "" {
		return domain.PlaceholderSummary
	}
	return s.Summary
}

type state struct {
	text    string
	image   string
	summary string
	loading bool
	// 実行中の要約を識別する。Clear や次の要約で置き換わる
	inflight uuid.UUID
}

// Controller は Idle → Loading → Idle の状態遷移を管理します。
type Controller struct {
	summarizer summary.Summarizer
	alerter    Alerter
	log        *slog.Logger

	mu    sync.Mutex
	state state
}

// New は依存関係を注入して Controller を初期化します。
func New(s summary.Summarizer, alerter Alerter, logger *slog.Logger) (*Controller, error) {
	if s == nil {
		return nil, fmt.Errorf("summarizer is required")
	}
	if alerter == nil {
		return nil, fmt.Errorf("alerter is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{summarizer: s, alerter: alerter, log: logger}, nil
}

// Snapshot は現在の状態のコピーを返します。
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Text:     c.state.text,
		HasImage: c.state.image != "",
		Summary:  c.state.summary,
		Loading:  c.state.loading,
	}
}

// SetText は入力テキストを置き換えます。
func (c *Controller) SetText(text string) {
	c.mu.Lock()
	c.state.text = text
	c.mu.Unlock()
}

// SetImage は保持している画像を置き換えます。テキストや結果には触れません。
func (c *Controller) SetImage(imageBase64 string) {
	c.mu.Lock()
	c.state.image = imageBase64
	c.mu.Unlock()
}

// PickImage は picker で画像を選択させ、選ばれた場合だけ保持中の画像を置き換えます。
func (c *Controller) PickImage(ctx context.Context, picker ImagePicker) error {
	data, err := picker.Pick(ctx)
	if err != nil {
		c.log.ErrorContext(ctx, "画像の選択に失敗しました", "error", err)
		c.alerter.Alert(domain.AlertTitle, domain.MessageImagePicker)
		return fmt.Errorf("画像の選択に失敗しました: %w", err)
	}
	if data == "" {
		return nil
	}
	c.SetImage(data)
	return nil
}

// Clear はテキスト・画像・結果・読み込み状態を初期状態に戻します。
// 実行中の要約は中断しませんが、その結果は破棄されます。
func (c *Controller) Clear() {
	c.mu.Lock()
	c.state = state{}
	c.mu.Unlock()
}

// Summarize は現在の入力で要約を実行し、結果を状態に反映します。
// 失敗時はアラートを1回だけ表示し、詳細はログにのみ残します。
func (c *Controller) Summarize(ctx context.Context) error {
	c.mu.Lock()
	if c.state.loading {
		c.mu.Unlock()
		return domain.ErrBusy
	}
	req := domain.SummaryRequest{RawText: c.state.text, ImageData: c.state.image}
	if err := req.Validate(); err != nil {
		c.mu.Unlock()
		c.alerter.Alert(domain.AlertTitle, domain.MessageMissingInput)
		return err
	}

	id := uuid.New()
	c.state.inflight = id
	c.state.loading = true
	c.state.summary = ""
	c.mu.Unlock()

	res, err := c.summarizer.Summarize(ctx, req)

	c.mu.Lock()
	if c.state.inflight != id {
		c.mu.Unlock()
		c.log.InfoContext(ctx, "古い要約結果を破棄しました", "interaction_id", id.String(), "error", err)
		return nil
	}
	c.state.loading = false
	c.state.inflight = uuid.Nil
	if err == nil && res != nil {
		c.state.summary = res.Text
	}
	c.mu.Unlock()

	if err != nil {
		c.log.ErrorContext(ctx, "Gemini API の呼び出しに失敗しました", "interaction_id", id.String(), "error", err)
		c.alerter.Alert(domain.AlertTitle, domain.AlertMessage(err))
		return err
	}
	return nil
}
