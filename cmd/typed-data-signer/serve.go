package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/quantumauth-io/quantum-go-utils/log"
	"github.com/spf13/cobra"

	"github.com/quantumauth-io/typed-data-signer/cmd/typed-data-signer/config"
	"github.com/quantumauth-io/typed-data-signer/internal/eventlog"
	apihttp "github.com/quantumauth-io/typed-data-signer/internal/http"
	"github.com/quantumauth-io/typed-data-signer/internal/session"
	"github.com/quantumauth-io/typed-data-signer/internal/signer"
)

func newServeCmd() *cobra.Command {
	var noConnect bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local signing API",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info("typed-data-signer",
				"version", Version,
				"commit", Commit,
				"build_date", BuildDate,
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load()
			if err != nil {
				log.Error("failed to parse config", "error", err)
				return err
			}
			return serve(ctx, cfg, !noConnect)
		},
	}

	cmd.Flags().BoolVar(&noConnect, "no-connect", false, "Start without connecting the configured wallet")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, connect bool) error {
	sess := session.New(cfg.Wallet, nil)
	defer sess.Disconnect()

	if connect {
		if _, err := sess.Connect(ctx, ""); err != nil {
			// the UI can retry through /api/wallet/connect
			log.Warn("wallet not connected at startup", "error", err)
		}
	}

	service := signer.NewService(eventlog.New())
	router := apihttp.NewRouter(apihttp.NewHandler(service, sess), cfg.Server.AllowedOrigins)

	return apihttp.NewServer(cfg.Addr(), router).Run(ctx)
}
