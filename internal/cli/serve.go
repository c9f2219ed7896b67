package cli

import (
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/shouni/gemini-ementa-kit/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Inicia a API HTTP de resumos para o aplicativo",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, logger, svc, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.ListenAddr
			}

			gin.SetMode(gin.ReleaseMode)
			return server.Run(ctx, addr, server.NewRouter(svc, logger), logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "endereço de escuta (padrão: EMENTA_LISTEN_ADDR)")
	return cmd
}
