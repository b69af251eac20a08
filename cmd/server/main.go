// Package main provides the underwriting assistant API server entry point.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bull/underwriting-assistant/internal/analyzer"
	"github.com/bull/underwriting-assistant/internal/chunker"
	"github.com/bull/underwriting-assistant/internal/config"
	"github.com/bull/underwriting-assistant/internal/embedding"
	"github.com/bull/underwriting-assistant/internal/indexer"
	"github.com/bull/underwriting-assistant/internal/llm"
	"github.com/bull/underwriting-assistant/internal/pdftext"
	"github.com/bull/underwriting-assistant/internal/retriever"
	"github.com/bull/underwriting-assistant/internal/server"
)

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Create context that cancels on SIGTERM/SIGINT
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg := config.FromEnv()
	logger := slog.Default()

	// Model server client, shared by embedding and generation
	apiClient := embedding.NewClient(cfg.OllamaBaseURL, cfg.OllamaAPIKey)
	embedder := embedding.NewEmbedder(apiClient, cfg.EmbedModel, 0) // Use default batch size

	// Build the guideline index before accepting requests. If this fails the
	// process must not serve requests claiming readiness.
	logger.Info("Building knowledge base", "guidelines", cfg.GuidelinesPath)
	builder := indexer.NewBuilder(chunker.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap), embedder, logger)
	idx, buildResult, err := builder.Build(ctx, cfg.GuidelinesPath)
	if err != nil {
		log.Fatalf("failed to build guideline index: %v", err)
	}

	// Assemble the analysis pipeline
	ret := retriever.New(embedder, idx, cfg.TopK)
	generator := llm.NewGenerator(apiClient.Client(), cfg.GenModel)
	pipeline := analyzer.New(pdftext.Extract, ret, generator, logger)

	handlers := server.NewHandlers(pipeline, buildResult.Chunks, logger)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.NewMux(handlers),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown error", "error", err)
		}
	}()

	logger.Info("Server listening", "addr", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server error: %v", err)
	}
}
