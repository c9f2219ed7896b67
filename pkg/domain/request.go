package domain

import (
	"fmt"
	"strings"
)

// SummaryRequest は1回の要約要求です。
// RawText と ImageData の少なくとも一方が空でない必要があります。
type SummaryRequest struct {
	RawText   string
	ImageData string // base64 エンコード済みの JPEG
}

// HasImage は画像が添付されているかを返します。
func (r SummaryRequest) HasImage() bool {
	return r.ImageData != ""
}

// Validate は通信を始める前の入力チェックなのだ。
func (r SummaryRequest) Validate() error {
	if strings.TrimSpace(r.RawText) == "" && r.ImageData == "" {
		return fmt.Errorf("%w: テキストも画像も指定されていません", ErrValidation)
	}
	return nil
}

// SummaryResult は API から返された要約テキストです。
type SummaryResult struct {
	Text string
}
