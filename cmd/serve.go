package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oss-mcp/core/config"
	"oss-mcp/core/loader"
	"oss-mcp/core/logger"
	"oss-mcp/core/server"
	"oss-mcp/core/storage"
	"oss-mcp/feature/configs"
	"oss-mcp/feature/upload"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func runServer(cmd *cobra.Command) error {
	env, err := bootstrap(cmd, config.EnvSource{})
	if err != nil {
		return err
	}
	defer env.logger.Sync()

	stdio := stdioFlag || env.app.StdioRequested()
	// stdout carries the protocol in stdio mode
	if !stdio {
		config.PrintSummary(os.Stdout, env.server)
	}

	mcpSrv := server.New(server.DefaultConfig())

	// Entries reach connected clients as log notifications from here on.
	logg := logger.WithProtocol(env.logger, mcpSrv, server.Name)

	if err := loadFeatures(mcpSrv, env.registry(logg), logg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if stdio {
		return server.ServeStdio(ctx, mcpSrv, logg, os.Stdin, os.Stdout)
	}
	return serveHTTP(ctx, mcpSrv, env.server.Port, logg)
}

func loadFeatures(r loader.ToolRegistrar, registry *storage.Registry, logg *zap.Logger) error {
	mgr := loader.NewManager(logg)
	mgr.Register(upload.NewFeature(registry, logg))
	mgr.Register(configs.NewFeature(registry, logg))

	if err := mgr.LoadAll(r); err != nil {
		return fmt.Errorf("failed to load features: %w", err)
	}
	return nil
}

func serveHTTP(ctx context.Context, srv *mcpserver.MCPServer, port int, logg *zap.Logger) error {
	transport := server.NewSSETransport(srv, logg)
	app := server.NewApp(transport, logg)

	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.Int("port", port))
		logg.Info("SSE endpoint", zap.String("url", fmt.Sprintf("http://localhost:%d%s", port, server.SSEPath)))
		logg.Info("Message endpoint", zap.String("url", fmt.Sprintf("http://localhost:%d%s", port, server.MessagePath)))
		errCh <- app.Listen(fmt.Sprintf(":%d", port))
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	logg.Info("Shutting down server...")
	return app.ShutdownWithTimeout(shutdownTimeout)
}
