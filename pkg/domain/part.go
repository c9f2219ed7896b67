package domain

import (
	"encoding/json"
	"fmt"
)

// MIMETypeJPEG は画像パーツに付与する固定の MIME タイプです。
// 画像形式の判定は行わず、常に JPEG とみなします。
const MIMETypeJPEG = "image/jpeg"

// PromptPart はプロバイダに送るパーツ（テキストまたはインライン画像）です。
// TextPart と ImagePart 以外は実装できません。
type PromptPart interface {
	isPromptPart()
}

// TextPart は指示文を運ぶパーツです。
type TextPart struct {
	Text string
}

// ImagePart は base64 の画像データを運ぶパーツです。
type ImagePart struct {
	MIMEType string
	Data     string
}

func (TextPart) isPromptPart()  {}
func (ImagePart) isPromptPart() {}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

// MarshalJSON は {"text": "..."} 形式で出力します。
func (p TextPart) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Text string `json:"text"`
	}{Text: p.Text})
}

// MarshalJSON は {"inline_data": {"mime_type": "...", "data": "..."}} 形式で出力します。
func (p ImagePart) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		InlineData inlineData `json:"inline_data"`
	}{InlineData: inlineData{MIMEType: p.MIMEType, Data: p.Data}})
}

// Content は順序付きのパーツ列です。
type Content struct {
	Parts []PromptPart `json:"parts"`
}

// Request は generateContent に送るリクエストボディ全体です。
type Request struct {
	Contents []Content `json:"contents"`
}

// Parts は最初の Content のパーツ列を返します。
func (r Request) Parts() []PromptPart {
	if len(r.Contents) == 0 {
		return nil
	}
	return r.Contents[0].Parts
}

// ValidateParts はパーツ列の並びを検証します。
// 先頭はテキストであり、画像パーツの前には必ずテキストパーツが存在しなければなりません。
func ValidateParts(parts []PromptPart) error {
	if len(parts) == 0 {
		return fmt.Errorf("%w: パーツが空です", ErrInvalidPayload)
	}
	seenText := false
	for i, p := range parts {
		switch v := p.(type) {
		case TextPart:
			seenText = true
		case ImagePart:
			if !seenText {
				return fmt.Errorf("%w: 画像パーツ(index=%d)の前にテキストパーツがありません", ErrInvalidPayload, i)
			}
			if v.Data == "" {
				return fmt.Errorf("%w: 画像パーツ(index=%d)のデータが空です", ErrInvalidPayload, i)
			}
		default:
			return fmt.Errorf("%w: 未知のパーツ型 %T", ErrInvalidPayload, p)
		}
	}
	return nil
}
