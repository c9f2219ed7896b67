package domain

import "errors"

var (
	// ErrValidation は入力不足など、通信前に検出されるエラーです。
	ErrValidation = errors.New("validation error")
	// ErrNetwork は通信失敗または非 2xx ステータスです。
	ErrNetwork = errors.New("network error")
	// ErrMalformedResponse は成功ステータスなのに要約テキストが取り出せない場合です。
	ErrMalformedResponse = errors.New("malformed response")
	// ErrInvalidPayload はパーツ列の組み立てに失敗した場合です。
	ErrInvalidPayload = errors.New("invalid payload")
	// ErrBusy は要約処理の実行中に再度要約が要求された場合です。
	ErrBusy = errors.New("summary already in progress")
)

// ErrAuth は API キーが拒否された場合のエラーです。
// errors.Is(err, ErrNetwork) も true になります。
var ErrAuth error = authError{}

type authError struct{}

func (authError) Error() string { return "auth error" }

func (authError) Is(target error) bool { return target == ErrNetwork }

// ユーザー向けに表示する固定メッセージ
const (
	AlertTitle          = "Erro"
	MessageMissingInput = "Por favor, insira o texto da ementa ou selecione uma imagem para resumir."
	MessageGeneric      = "Houve um problema ao tentar resumir. Verifique sua chave de API e a conexão."
	MessageImagePicker  = "Não foi possível selecionar a imagem."
	PlaceholderSummary  = "O resumo aparecerá aqui."
)

// AlertMessage はエラーをユーザー向けの汎用メッセージに変換します。
// 詳細な原因はログにのみ残し、画面には出しません。
func AlertMessage(err error) string {
	if errors.Is(err, ErrValidation) {
		return MessageMissingInput
	}
	return MessageGeneric
}
