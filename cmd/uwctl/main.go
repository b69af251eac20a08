// Package main provides the maintenance CLI for the underwriting assistant.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bull/underwriting-assistant/internal/analyzer"
	"github.com/bull/underwriting-assistant/internal/chunker"
	"github.com/bull/underwriting-assistant/internal/client"
	"github.com/bull/underwriting-assistant/internal/config"
	"github.com/bull/underwriting-assistant/internal/embedding"
	"github.com/bull/underwriting-assistant/internal/index"
	"github.com/bull/underwriting-assistant/internal/indexer"
	"github.com/bull/underwriting-assistant/internal/llm"
	"github.com/bull/underwriting-assistant/internal/pdftext"
	"github.com/bull/underwriting-assistant/internal/retriever"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "uwctl",
	Short: "Underwriting assistant maintenance tool",
	Long:  "CLI for building the guideline index and analyzing loan applications from the command line",
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the guideline index and report statistics",
	Long: `Loads the guidelines document, splits it into chunks, generates
embeddings and builds the in-memory index, then reports statistics.

The index is not persisted; this command validates the document and the
embedding model before starting the server.

Environment variables:
  GUIDELINES_PATH  Guidelines document (default: data/guidelines.txt)
  OLLAMA_BASE_URL  OpenAI-compatible endpoint (default: http://localhost:11434/v1)
  EMBED_MODEL      Embedding model name (default: mistral)
  CHUNK_SIZE       Chunk size in characters (default: 1000)
  CHUNK_OVERLAP    Chunk overlap in characters (default: 200)`,
	RunE: runIndex,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <application.pdf>",
	Short: "Analyze a loan application PDF",
	Long: `Analyzes a loan application against the underwriting guidelines and
prints the model's verdict.

By default the full pipeline runs locally (index build included). With
--server the file is sent to a running API server instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&serverURL, "server", "", "analyze via a running API server instead of locally")
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.FromEnv()

	fmt.Printf("Building index from %s...\n", cfg.GuidelinesPath)

	_, result, err := buildIndex(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Index built!")
	fmt.Printf("  Chunks:    %d\n", result.Chunks)
	fmt.Printf("  Dimension: %d\n", result.Dimension)
	fmt.Printf("  Duration:  %s\n", result.Duration.Round(time.Millisecond))

	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read application: %w", err)
	}

	var analysis string
	if serverURL != "" {
		analysis, err = client.New(serverURL).Analyze(path, data)
		if err != nil {
			return fmt.Errorf("analyze via server: %w", err)
		}
	} else {
		analysis, err = analyzeLocally(context.Background(), data)
		if err != nil {
			return err
		}
	}

	fmt.Println(analysis)
	return nil
}

// analyzeLocally assembles the whole pipeline in-process: build the guideline
// index, then run the analysis once.
func analyzeLocally(ctx context.Context, pdfBytes []byte) (string, error) {
	cfg := config.FromEnv()

	idx, _, err := buildIndex(ctx, cfg)
	if err != nil {
		return "", err
	}

	apiClient := embedding.NewClient(cfg.OllamaBaseURL, cfg.OllamaAPIKey)
	embedder := embedding.NewEmbedder(apiClient, cfg.EmbedModel, 0)
	ret := retriever.New(embedder, idx, cfg.TopK)
	generator := llm.NewGenerator(apiClient.Client(), cfg.GenModel)
	pipeline := analyzer.New(pdftext.Extract, ret, generator, slog.Default())

	return pipeline.Analyze(ctx, pdfBytes)
}

func buildIndex(ctx context.Context, cfg config.Config) (*index.Index, *indexer.BuildResult, error) {
	apiClient := embedding.NewClient(cfg.OllamaBaseURL, cfg.OllamaAPIKey)
	embedder := embedding.NewEmbedder(apiClient, cfg.EmbedModel, 0)
	builder := indexer.NewBuilder(chunker.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap), embedder, slog.Default())
	return builder.Build(ctx, cfg.GuidelinesPath)
}
