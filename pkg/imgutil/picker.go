package imgutil

import (
	"context"
	"fmt"
	"os"
)

// FilePicker はローカルファイルから写真を読み込む画像ピッカーです。
// Path が空の場合は選択がキャンセルされたものとして扱います。
type FilePicker struct {
	Path string
}

// Pick はファイルを読み込み、base64 の JPEG を返します。
func (p FilePicker) Pick(ctx context.Context) (string, error) {
	if p.Path == "" {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(p.Path)
	if err != nil {
		return "", fmt.Errorf("画像ファイルの読み込みに失敗しました: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("画像ファイルが空です: %s", p.Path)
	}
	return EncodeBase64JPEG(data), nil
}
