// Package config collects the static per-process configuration from the
// environment.
package config

import (
	"fmt"
	"os"
)

// Config holds everything the binaries need. All values are static per
// process; there is no runtime reconfiguration.
type Config struct {
	// Addr is the backend listen address.
	Addr string
	// FrontendAddr is the upload UI listen address.
	FrontendAddr string
	// BackendURL is where the frontend and CLI reach the backend.
	BackendURL string
	// GuidelinesPath is the underwriting guidelines source document.
	GuidelinesPath string
	// OllamaBaseURL is the OpenAI-compatible endpoint of the model server.
	OllamaBaseURL string
	// OllamaAPIKey is sent as the bearer token; Ollama accepts any value.
	OllamaAPIKey string
	// EmbedModel generates embedding vectors.
	EmbedModel string
	// GenModel generates the analysis text.
	GenModel string
	// ChunkSize and ChunkOverlap control guideline splitting, in characters.
	ChunkSize    int
	ChunkOverlap int
	// TopK is how many guideline chunks each retrieval returns.
	TopK int
}

// FromEnv reads the configuration, falling back to defaults suitable for a
// local Ollama running the mistral model.
func FromEnv() Config {
	return Config{
		Addr:           getEnv("ADDR", ":8000"),
		FrontendAddr:   getEnv("FRONTEND_ADDR", ":8501"),
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:8000"),
		GuidelinesPath: getEnv("GUIDELINES_PATH", "data/guidelines.txt"),
		OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434/v1"),
		OllamaAPIKey:   getEnv("OLLAMA_API_KEY", "ollama"),
		EmbedModel:     getEnv("EMBED_MODEL", "mistral"),
		GenModel:       getEnv("GEN_MODEL", "mistral"),
		ChunkSize:      getEnvInt("CHUNK_SIZE", 1000),
		ChunkOverlap:   getEnvInt("CHUNK_OVERLAP", 200),
		TopK:           getEnvInt("RETRIEVAL_TOP_K", 3),
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}
