package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/deskbird-auto/internal/booking"
	"github.com/example/deskbird-auto/internal/config"
)

// newRunCmd executes one booking pass without the HTTP server, for cron
// setups that prefer a binary over an endpoint.
func newRunCmd() *cobra.Command {
	var requestPath string

	c := &cobra.Command{
		Use:   "run",
		Short: "Execute one booking pass from a JSON request file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if !cfg.HasCredentials() {
				return fmt.Errorf("missing credentials in environment")
			}

			b, err := os.ReadFile(requestPath)
			if err != nil {
				return err
			}
			var req booking.RunRequest
			if err := json.Unmarshal(b, &req); err != nil {
				return fmt.Errorf("parse %s: %w", requestPath, err)
			}
			if err := req.Validate(); err != nil {
				return err
			}

			runner := &booking.Runner{
				Client:       newClient(cfg),
				AttemptDelay: cfg.AttemptDelay,
			}
			rep, err := runner.Run(context.Background(), req)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(rep, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, string(out))
			return nil
		},
	}

	c.Flags().StringVar(&requestPath, "request", "", "path to a run request JSON file")
	_ = c.MarkFlagRequired("request")
	return c
}
