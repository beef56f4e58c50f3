package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/telekom/logmail/pkg/server"
)

const shutdownTimeout = 10 * time.Second

func NewRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Install the mail handler and serve metrics until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.installer.OnStart(); err != nil {
				return err
			}
			defer a.installer.OnStop()

			srv := server.NewServer(a.log, a.cfg.Server.ListenAddress, opts.debug, a.installer.Started)
			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			select {
			case <-ctx.Done():
			case err := <-errCh:
				if err != nil {
					return err
				}
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
