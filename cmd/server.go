package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/deskbird-auto/internal/booking"
	"github.com/example/deskbird-auto/internal/config"
	"github.com/example/deskbird-auto/internal/deskbird"
	"github.com/example/deskbird-auto/internal/web"
)

func newServerCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the booking API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}
			if !cfg.HasCredentials() {
				log.Printf("warning: platform credentials incomplete; /run will answer 500 until DESKBIRD_EMAIL, DESKBIRD_PASSWORD and DESKBIRD_APP_KEY are set")
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			runner := &booking.Runner{
				Client:       newClient(cfg),
				AttemptDelay: cfg.AttemptDelay,
			}
			ws := &web.Server{
				Run:              runner.Run,
				CredentialsReady: cfg.HasCredentials(),
			}
			return web.Start(ctx, cfg.ListenAddr, ws.Routes())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides LISTEN_ADDR)")
	return cmd
}

func newClient(cfg config.Config) *deskbird.Client {
	return deskbird.New(deskbird.Config{
		Credentials: deskbird.Credentials{
			Email:    cfg.Email,
			Password: cfg.Password,
			AppKey:   cfg.AppKey,
		},
		BaseURL:   cfg.BaseURL,
		StartHour: cfg.BookingStartHour,
		EndHour:   cfg.BookingEndHour,
	})
}
