package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/assetboard/internal/config"
	"github.com/rpggio/assetboard/internal/mcp"
	"github.com/rpggio/assetboard/internal/transport"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	transport string
	host      string
	port      int
	project   string
}

func newServeCmd(global *globalOptions) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board as MCP tools",
		Long:  "Serve the board over MCP, on stdio or streamable HTTP. HTTP mode also exposes /health and /status.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := global.cfg
			if opts.transport != "" {
				cfg.Transport.Mode = opts.transport
			}
			if opts.host != "" {
				cfg.Server.Host = opts.host
			}
			if opts.port != 0 {
				cfg.Server.Port = opts.port
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			return runServe(cmd.Context(), cfg, global.logger, opts.project)
		},
	}
	cmd.Flags().StringVar(&opts.transport, "transport", "", "stdio or http (overrides config)")
	cmd.Flags().StringVar(&opts.host, "host", "", "HTTP listen host (overrides config)")
	cmd.Flags().IntVar(&opts.port, "port", 0, "HTTP listen port (overrides config)")
	cmd.Flags().StringVar(&opts.project, "project", "", "project to start retrieving immediately")
	return cmd
}

func runServe(parent context.Context, cfg config.Config, logger *slog.Logger, project string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg, logger, activityPersistent)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("closing app", "error", err)
		}
	}()

	if project != "" {
		a.board.Select(ctx, project)
	}

	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Board:    a.board,
			Reviews:  a.reviews,
			Activity: a.activity,
		},
		Version: version,
		Logger:  logger,
	})

	if cfg.Transport.Mode == config.TransportHTTP {
		return runHTTPMode(ctx, logger, server, a, net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)))
	}
	return runStdioMode(ctx, logger, server)
}

func runStdioMode(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server) error {
	logger.Info("starting stdio transport")
	// Run blocks until stdin closes or ctx is cancelled.
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server, a *app, addr string) error {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           transport.NewServer(mcpHandler, a.board, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
