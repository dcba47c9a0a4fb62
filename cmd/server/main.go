package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dgallion1/docnav/internal/api"
	"github.com/dgallion1/docnav/internal/chunker"
	"github.com/dgallion1/docnav/internal/config"
	"github.com/dgallion1/docnav/internal/docstore"
	"github.com/dgallion1/docnav/internal/filestore"
	"github.com/dgallion1/docnav/internal/navigator"
	"github.com/dgallion1/docnav/internal/oracle"
	"github.com/dgallion1/docnav/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage.
	docs, err := docstore.Open(filepath.Join(cfg.DataDir, "docnav.db"), log)
	if err != nil {
		log.Error("failed to open document catalog", "error", err)
		os.Exit(1)
	}
	files, err := filestore.New(filepath.Join(cfg.DataDir, "uploads"))
	if err != nil {
		log.Error("failed to create upload directory", "error", err)
		os.Exit(1)
	}

	// Initialize the oracle client for the configured provider.
	stats := oracle.NewLLMStats(time.Hour)
	var orc oracle.Oracle
	var closeOracle func()
	switch cfg.OracleProvider {
	case "anthropic":
		client := oracle.NewAnthropicClient(oracle.AnthropicConfig{
			APIKey:  cfg.AnthropicAPIKey,
			Model:   cfg.AnthropicModel,
			Timeout: cfg.OracleTimeout,
		}, stats)
		orc = client
		closeOracle = client.Close
	default:
		client := oracle.NewOpenAIClient(oracle.OpenAIConfig{
			BaseURL: cfg.OpenAIBaseURL,
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.OracleTimeout,
		}, stats)
		orc = client
		closeOracle = client.Close
	}
	orc = oracle.WithRetry(orc, cfg.OracleRetries)

	nav := navigator.New(orc, navigator.Config{
		Chunk: chunker.Config{
			MinTokens:   cfg.MinChunkTokens,
			TargetCount: cfg.TargetChunkCount,
		},
		SubChunk: chunker.Config{
			MinTokens:   cfg.SubChunkMinTokens,
			TargetCount: cfg.TargetChunkCount,
		},
		PreviewTokens: cfg.PreviewTokens,
		MaxDepth:      cfg.MaxDepthLimit,
	}, log)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, docs, files, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, docs, files, nav, stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
		closeOracle()
		if err := docs.Close(); err != nil {
			log.Warn("catalog close failed", "error", err)
		}
	}()

	log.Info("starting docnav", "port", cfg.Port, "provider", cfg.OracleProvider, "model", cfg.Model())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
