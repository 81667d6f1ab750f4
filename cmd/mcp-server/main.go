// mcp-server exposes the gopoly tools over HTTP for AI agent frameworks.
//
// Usage:
//
//	mcp-server --port 8080
//	mcp-server --config ./polycalc.yaml
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
// Metrics endpoint:   GET  /metrics
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/njchilds90/gopoly/internal/config"
	"github.com/njchilds90/gopoly/internal/logging"
	"github.com/njchilds90/gopoly/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newServeCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)
	cmd := &cobra.Command{
		Use:          "mcp-server",
		Short:        "Serve the gopoly tool interface over HTTP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
				if err := config.Validate(cfg); err != nil {
					return fmt.Errorf("invalid flags: %w", err)
				}
			}
			logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg.Server, logger)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.polycalc/config.yaml)")
	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on")
	return cmd
}

// serve runs the HTTP server until ctx is done, then shuts it down.
func serve(ctx context.Context, cfg config.ServerConfig, log *slog.Logger) error {
	gin.SetMode(gin.ReleaseMode)
	srv := server.New(cfg, log).HTTPServer()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("gopoly MCP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
