package imgutil

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
)

// DefaultQuality は写真を送る前に再エンコードする際の JPEG 品質です。
const DefaultQuality = 75

// CompressToJPEG は画像データ（PNG, GIF, JPEG等）をJPEG形式に圧縮します。
// image.Decodeがサポートするフォーマットに対応しています。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeBase64JPEG は画像を JPEG に揃えてから base64 文字列にします。
// デコードできないデータは image/jpeg として送られる前提のまま、そのまま符号化します。
func EncodeBase64JPEG(data []byte) string {
	if compressed, err := CompressToJPEG(data, DefaultQuality); err == nil {
		data = compressed
	}
	return base64.StdEncoding.EncodeToString(data)
}
