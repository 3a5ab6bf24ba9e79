package cmd

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

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/receiptly/internal/pipeline"
	"github.com/MeKo-Tech/receiptly/internal/server"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for receipt parsing and expenses",
	Long: `Start an HTTP server exposing the receipt parsing pipeline and the
expense store.

Endpoints:
  POST   /receipts/parse        - Parse an uploaded receipt image
  POST   /receipts/save         - Parse and persist as an expense
  GET    /expenses              - List stored expenses
  GET    /expenses/{id}         - Fetch one expense
  DELETE /expenses/{id}         - Delete an expense
  GET    /analytics/monthly     - Monthly spending summary
  GET    /analytics/categories  - Spending by category
  GET    /ws/parse              - WebSocket parsing endpoint
  GET    /health                - Health check
  GET    /metrics               - Prometheus metrics

Examples:
  receiptly serve
  receiptly serve --port 8080
  receiptly serve --host 0.0.0.0 --port 3000 --db expenses.db`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	host := cfg.Server.Host
	if cmd.Flags().Changed("host") {
		host, _ = cmd.Flags().GetString("host")
	}

	port := cfg.Server.Port
	if cmd.Flags().Changed("port") {
		port, _ = cmd.Flags().GetInt("port")
	}

	corsOrigin := cfg.Server.CORSOrigin
	if cmd.Flags().Changed("cors-origin") {
		corsOrigin, _ = cmd.Flags().GetString("cors-origin")
	}

	maxUploadMB := cfg.Server.MaxUploadMB
	if cmd.Flags().Changed("max-upload-size") {
		maxUploadMB, _ = cmd.Flags().GetInt64("max-upload-size")
	}

	timeout := cfg.Server.TimeoutSec
	if cmd.Flags().Changed("timeout") {
		timeout, _ = cmd.Flags().GetInt("timeout")
	}

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if cmd.Flags().Changed("shutdown-timeout") {
		shutdownTimeout, _ = cmd.Flags().GetInt("shutdown-timeout")
	}

	storePath := cfg.Store.Path
	if cmd.Flags().Changed("db") {
		storePath, _ = cmd.Flags().GetString("db")
	}

	rateLimitEnabled := cfg.Server.RateLimitEnabled
	if cmd.Flags().Changed("rate-limit-enabled") {
		rateLimitEnabled, _ = cmd.Flags().GetBool("rate-limit-enabled")
	}

	requestsPerMinute := cfg.Server.RequestsPerMinute
	if cmd.Flags().Changed("requests-per-minute") {
		requestsPerMinute, _ = cmd.Flags().GetInt("requests-per-minute")
	}

	maxRequestsPerDay := cfg.Server.MaxRequestsPerDay
	if cmd.Flags().Changed("max-requests-per-day") {
		maxRequestsPerDay, _ = cmd.Flags().GetInt("max-requests-per-day")
	}

	maxDataPerDay := cfg.Server.MaxDataPerDay
	if cmd.Flags().Changed("max-data-per-day") {
		maxDataPerDay, _ = cmd.Flags().GetInt64("max-data-per-day")
	}

	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", port)
	}

	pCfg := pipeline.DefaultConfig()
	pCfg.Preprocess = cfg.Pipeline.Preprocess
	if cfg.Pipeline.Recognizer.Binary != "" {
		pCfg.Recognizer.Binary = cfg.Pipeline.Recognizer.Binary
	}
	if cfg.Pipeline.Recognizer.Language != "" {
		pCfg.Recognizer.Language = cfg.Pipeline.Recognizer.Language
	}
	if cfg.Pipeline.Recognizer.PSM != "" {
		pCfg.Recognizer.PSM = cfg.Pipeline.Recognizer.PSM
	}

	srv, err := server.NewServer(server.Config{
		Host:              host,
		Port:              port,
		CORSOrigin:        corsOrigin,
		MaxUploadMB:       maxUploadMB,
		TimeoutSec:        timeout,
		PipelineConfig:    pCfg,
		StorePath:         storePath,
		RateLimitEnabled:  rateLimitEnabled,
		RequestsPerMinute: requestsPerMinute,
		MaxRequestsPerDay: maxRequestsPerDay,
		MaxDataPerDay:     maxDataPerDay,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}
	defer func() { _ = srv.Close() }()

	mux := http.NewServeMux()
	srv.SetupRoutes(mux)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(timeout) * time.Second,
		WriteTimeout:      time.Duration(timeout) * time.Second,
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	go func() {
		slog.Info("Starting receipt server", "host", host, "port", port, "store", storePath)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(shutdownTimeout)*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "localhost", "host to bind the server to")
	serveCmd.Flags().IntP("port", "p", 8080, "port to listen on")
	serveCmd.Flags().String("cors-origin", "*", "allowed CORS origin")
	serveCmd.Flags().Int64("max-upload-size", 10, "maximum upload size in MB")
	serveCmd.Flags().Int("timeout", 30, "request timeout in seconds")
	serveCmd.Flags().Int("shutdown-timeout", 10, "graceful shutdown timeout in seconds")
	serveCmd.Flags().String("db", "receiptly.db", "path to the expense database file")
	serveCmd.Flags().Bool("rate-limit-enabled", false, "enable per-client rate limiting")
	serveCmd.Flags().Int("requests-per-minute", 60, "per-client requests per minute (0 disables)")
	serveCmd.Flags().Int("max-requests-per-day", 1000, "per-client requests per day (0 disables)")
	serveCmd.Flags().Int64("max-data-per-day", 100*1024*1024, "per-client upload bytes per day (0 disables)")
}
