package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_ytsum/internal/engine"
	"github.com/anatolykoptev/go_ytsum/internal/ytserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP summarize endpoint",
	Long: `Serve POST / (and POST /api/summarize) taking {"videoUrl": "..."}.
GET /health and GET /metrics are also exposed. When MCP_PORT is set the
same pipeline is served as MCP tools on that port.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	svc, err := setup()
	if err != nil {
		return err
	}
	c := engine.Cfg

	srv := &http.Server{
		Addr:              ":" + c.HTTPPort,
		Handler:           ytserver.NewHandler(svc),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      5 * time.Minute,
	}
	slog.Info("starting go_ytsum",
		slog.String("http_port", c.HTTPPort),
		slog.String("mcp_port", c.MCPPort),
		slog.String("version", version),
	)

	if c.MCPPort != "" {
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("http server failed", slog.Any("error", err))
			}
		}()

		server := mcp.NewServer(&mcp.Implementation{
			Name:    "go_ytsum",
			Version: version,
		}, nil)
		ytserver.RegisterTools(server, svc)
		slog.Info("tools registered", slog.Int("count", 2))

		return mcpserver.Run(server, mcpserver.Config{
			Name:         "go_ytsum",
			Version:      version,
			Port:         c.MCPPort,
			WriteTimeout: 300 * time.Second,
			Metrics:      engine.FormatMetrics,
		})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
