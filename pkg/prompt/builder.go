// Package prompt は、ementa を平易な要約に変換させるための指示文を組み立てます。
package prompt

import (
	"fmt"
	"strings"
)

// Mode は入力の種類（テキスト貼り付けか画像か）です。
type Mode int

const (
	ModeText Mode = iota
	ModeImage
)

// ModeFor は画像の有無からモードを決めます。
func ModeFor(hasImage bool) Mode {
	if hasImage {
		return ModeImage
	}
	return ModeText
}

func (m Mode) String() string {
	if m == ModeImage {
		return "image"
	}
	return "text"
}

// 要約の3項目。この順序で出力させます。
const (
	FieldTheme    = "Tema Principal"
	FieldDecision = "Decisão do Tribunal"
	FieldMeaning  = "O que isso significa para você"
)

// 有効な ementa でない場合にモデルへ返させる定型文
const (
	RefusalText  = "O texto fornecido não é uma ementa ou decisão judicial válida. Por favor, forneça um texto jurídico para que eu possa gerar o resumo."
	RefusalImage = "O texto encontrado na imagem não parece ser uma ementa ou decisão judicial válida. Por favor, forneça uma imagem contendo texto jurídico para que eu possa gerar o resumo."
)

// ArtifactMarker は画像解析時に混入する検出結果の見出しで、無視させます。
const ArtifactMarker = "Here are the bounding box detections:"

type modeText struct {
	subject   string
	extract   string
	condition string
	refusal   string
	formatted string
}

var modes = map[Mode]modeText{
	ModeText: {
		subject:   "o texto de uma ementa ou decisão judicial",
		condition: "Se o texto fornecido não for uma ementa ou decisão judicial válida",
		refusal:   RefusalText,
		formatted: "Siga este formato para o resumo, usando frases curtas e diretas:",
	},
	ModeImage: {
		subject:   "o texto presente em uma imagem de uma ementa ou decisão judicial",
		extract:   fmt.Sprintf("Primeiro, **extraia todo o texto relevante da imagem**. Se houver informações como %q, ignore essa parte e foque no texto jurídico propriamente dito.", ArtifactMarker),
		condition: "Se o texto extraído não for uma ementa ou decisão judicial válida",
		refusal:   RefusalImage,
		formatted: "Caso contrário, siga este formato para o resumo, usando frases curtas e diretas:",
	},
}

// Build は入力を末尾の一文にそのまま埋め込んだ指示文を返します。
// エスケープは行わず、引用符を含む入力もそのまま埋め込みます。
func Build(input string, mode Mode) string {
	m, ok := modes[mode]
	if !ok {
		m = modes[ModeText]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Você é um assistente jurídico especializado em simplificar textos complexos para o público leigo, com base no direito brasileiro. Sua tarefa é analisar %s e gerar um resumo extremamente conciso, focado nos pontos essenciais, em formato de tópicos.\n\n", m.subject)
	if m.extract != "" {
		b.WriteString(m.extract)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "%s, responda apenas com a seguinte frase: \"%s\"\n\n", m.condition, m.refusal)
	b.WriteString(m.formatted)
	b.WriteString("\n")
	fmt.Fprintf(&b, "- **%s:** [frase curta e direta sobre o assunto principal]\n", FieldTheme)
	fmt.Fprintf(&b, "- **%s:** [frase curta explicando o veredito ou entendimento do tribunal]\n", FieldDecision)
	fmt.Fprintf(&b, "- **%s:** [frase curta e prática, sem juridiquês, explicando as implicações da decisão]\n\n", FieldMeaning)
	b.WriteString("Substitua jargões jurídicos por explicações simples e diretas. Por exemplo, em vez de \"honorários de sucumbência\", use \"as custas que a parte perdedora paga para o advogado da parte vencedora\".\n")
	b.WriteString("O texto a ser analisado é: \"")
	b.WriteString(input)
	b.WriteString("\"")
	return b.String()
}
