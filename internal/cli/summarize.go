package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shouni/gemini-ementa-kit/pkg/controller"
	"github.com/shouni/gemini-ementa-kit/pkg/imgutil"
	"github.com/spf13/cobra"
)

// writerAlerter はアラートをテキストとして書き出します。
type writerAlerter struct {
	w io.Writer
}

func (a writerAlerter) Alert(title, message string) {
	fmt.Fprintf(a.w, "%s: %s\n", title, message)
}

func newSummarizeCmd() *cobra.Command {
	var (
		text      string
		textFile  string
		imagePath string
	)

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Resume o texto de uma ementa ou a foto de uma ementa",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input, err := readInput(cmd.InOrStdin(), text, textFile)
			if err != nil {
				return err
			}

			_, logger, svc, err := setup(ctx, cmd)
			if err != nil {
				return err
			}

			c, err := controller.New(svc, writerAlerter{w: cmd.ErrOrStderr()}, logger)
			if err != nil {
				return err
			}

			c.SetText(input)
			// 失敗時はコントローラがアラートを出している
			if err := c.PickImage(ctx, imgutil.FilePicker{Path: imagePath}); err != nil {
				return reported(err)
			}
			if err := c.Summarize(ctx); err != nil {
				return reported(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), c.Snapshot().Display())
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", `texto da ementa ("-" lê da entrada padrão)`)
	cmd.Flags().StringVarP(&textFile, "file", "f", "", "arquivo com o texto da ementa")
	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "foto da ementa")
	cmd.MarkFlagsMutuallyExclusive("text", "file")
	return cmd
}

// readInput はフラグに応じて入力テキストを読み込みます。
func readInput(stdin io.Reader, text, textFile string) (string, error) {
	switch {
	case textFile != "":
		b, err := os.ReadFile(textFile)
		if err != nil {
			return "", fmt.Errorf("テキストファイルの読み込みに失敗しました: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	case text == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("標準入力の読み込みに失敗しました: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	default:
		return text, nil
	}
}
