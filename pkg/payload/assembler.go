package payload

import (
	"encoding/base64"
	"fmt"

	"github.com/shouni/gemini-ementa-kit/pkg/domain"
	"github.com/shouni/gemini-ementa-kit/pkg/prompt"
	"google.golang.org/genai"
)

// Assemble は入力テキストと画像から generateContent のリクエストボディを組み立てます。
// 画像がある場合は [指示文, 画像] の順、無い場合は [指示文] のみになります。
func Assemble(input, imageBase64 string) domain.Request {
	mode := prompt.ModeFor(imageBase64 != "")

	parts := []domain.PromptPart{
		domain.TextPart{Text: prompt.Build(input, mode)},
	}
	if mode == prompt.ModeImage {
		parts = append(parts, domain.ImagePart{
			MIMEType: domain.MIMETypeJPEG,
			Data:     imageBase64,
		})
	}

	return domain.Request{Contents: []domain.Content{{Parts: parts}}}
}

// ToGenAI は SDK 用の Content 列に変換します。
// 画像データは base64 をデコードして Blob に詰め直すのだ。
func ToGenAI(req domain.Request) ([]*genai.Content, error) {
	contents := make([]*genai.Content, 0, len(req.Contents))
	for _, c := range req.Contents {
		parts := make([]*genai.Part, 0, len(c.Parts))
		for i, p := range c.Parts {
			switch v := p.(type) {
			case domain.TextPart:
				parts = append(parts, &genai.Part{Text: v.Text})
			case domain.ImagePart:
				data, err := base64.StdEncoding.DecodeString(v.Data)
				if err != nil {
					return nil, fmt.Errorf("%w: 画像パーツ(index=%d)の base64 デコードに失敗しました: %v", domain.ErrInvalidPayload, i, err)
				}
				parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: v.MIMEType, Data: data}})
			default:
				return nil, fmt.Errorf("%w: 未知のパーツ型 %T", domain.ErrInvalidPayload, p)
			}
		}
		contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
	}
	return contents, nil
}
