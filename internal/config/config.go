package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Storage
	DataDir string

	// Oracle provider: "openai" or "anthropic"
	OracleProvider string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	AnthropicAPIKey string
	AnthropicModel  string

	OracleTimeout time.Duration
	OracleRetries int

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Chunking
	MinChunkTokens    int
	SubChunkMinTokens int
	TargetChunkCount  int
	PreviewTokens     int

	// Navigation depth
	MaxDepthLimit   int
	DefaultMaxDepth int

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("DOCNAV_API_KEY"),

		DataDir: envOr("DATA_DIR", "./data"),

		OracleProvider: envOr("ORACLE_PROVIDER", "openai"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envOr("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),

		OracleTimeout: envDuration("ORACLE_TIMEOUT", 120*time.Second),
		OracleRetries: envInt("ORACLE_RETRIES", 1),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		MinChunkTokens:    envInt("MIN_CHUNK_TOKENS", 500),
		SubChunkMinTokens: envInt("SUB_CHUNK_MIN_TOKENS", 200),
		TargetChunkCount:  envInt("TARGET_CHUNK_COUNT", 20),
		PreviewTokens:     envInt("PREVIEW_TOKENS", 900),

		MaxDepthLimit:   envInt("MAX_DEPTH_LIMIT", 3),
		DefaultMaxDepth: envInt("DEFAULT_MAX_DEPTH", 2),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.MinChunkTokens <= 0 {
		cfg.MinChunkTokens = 500
	}
	if cfg.SubChunkMinTokens <= 0 {
		cfg.SubChunkMinTokens = 200
	}
	if cfg.TargetChunkCount <= 0 {
		cfg.TargetChunkCount = 20
	}
	if cfg.PreviewTokens <= 0 {
		cfg.PreviewTokens = 900
	}
	if cfg.MaxDepthLimit < 0 {
		cfg.MaxDepthLimit = 3
	}
	if cfg.DefaultMaxDepth < 0 || cfg.DefaultMaxDepth > cfg.MaxDepthLimit {
		cfg.DefaultMaxDepth = cfg.MaxDepthLimit
	}
	if cfg.OracleRetries < 0 {
		cfg.OracleRetries = 1
	}
	if cfg.OracleTimeout <= 0 {
		cfg.OracleTimeout = 120 * time.Second
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("DOCNAV_API_KEY is required")
	}
	switch c.OracleProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when ORACLE_PROVIDER=openai")
		}
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required when ORACLE_PROVIDER=anthropic")
		}
	default:
		return fmt.Errorf("unknown ORACLE_PROVIDER %q (want openai or anthropic)", c.OracleProvider)
	}
	return nil
}

// Model returns the model name for the configured provider.
func (c Config) Model() string {
	if c.OracleProvider == "anthropic" {
		return c.AnthropicModel
	}
	return c.OpenAIModel
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
