package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/mdxblog"
)

const shutdownTimeout = 10 * time.Second

func (c *cli) newServeCmd() *cobra.Command {
	var staticDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := mdxblog.New(c.cfg, mdxblog.WithStaticDir(staticDir))
			if err := app.Setup(); err != nil {
				return fmt.Errorf("%w (set session_secret in config.yaml or MDXBLOG_SESSION_SECRET)", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				errc <- app.Start()
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			c.log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return app.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :3000, or :$PORT)")
	cmd.Flags().StringVar(&staticDir, "static", "public", "directory of static assets served under /public/")
	return cmd
}
