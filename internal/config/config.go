package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config collects every tunable the service reads from the environment.
// It is resolved once in main; nothing re-reads os.Getenv afterwards.
type Config struct {
	// Postgres
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Embedding
	EmbeddingProvider string
	EmbeddingModelID  string
	EmbeddingDim      int
	AWSRegion         string
	OpenAIBaseURL     string
	OpenAIAPIKey      string

	// Chunking
	ChunkMinWords   int
	ChunkMaxWords   int
	IngestBatchSize int

	// Search
	RRFK               float64
	RRFPoolMultiplier  int
	SearchDefaultLimit int

	// Optional Redis search cache; empty RedisAddr disables caching
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	// HTTP
	SearchAPIPort string
}

func Load() (Config, error) {
	cfg := Config{
		DBHost:     getEnv("VIETRAG_DB_HOST", "localhost"),
		DBPort:     getEnv("VIETRAG_DB_PORT", "5432"),
		DBUser:     getEnv("VIETRAG_DB_USER", "postgres"),
		DBPassword: os.Getenv("VIETRAG_DB_PASSWORD"),
		DBName:     getEnv("VIETRAG_DB_NAME", "vietrag"),
		DBSSLMode:  getEnv("VIETRAG_DB_SSLMODE", "disable"),

		EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "bedrock"),
		EmbeddingModelID:  getEnv("EMBEDDING_MODEL_ID", "amazon.titan-embed-text-v2:0"),
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "http://localhost:11434/v1"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SearchAPIPort: getEnv("SEARCH_API_PORT", "8082"),
	}

	var err error
	if cfg.EmbeddingDim, err = getEnvInt("EMBEDDING_DIM", 1024); err != nil {
		return Config{}, err
	}
	if cfg.ChunkMinWords, err = getEnvInt("CHUNK_MIN_WORDS", 10); err != nil {
		return Config{}, err
	}
	if cfg.ChunkMaxWords, err = getEnvInt("CHUNK_MAX_WORDS", 200); err != nil {
		return Config{}, err
	}
	if cfg.IngestBatchSize, err = getEnvInt("INGEST_BATCH_SIZE", 25); err != nil {
		return Config{}, err
	}
	if cfg.RRFK, err = getEnvFloat("RRF_K", 60.0); err != nil {
		return Config{}, err
	}
	if cfg.RRFPoolMultiplier, err = getEnvInt("RRF_POOL_MULTIPLIER", 4); err != nil {
		return Config{}, err
	}
	if cfg.SearchDefaultLimit, err = getEnvInt("SEARCH_DEFAULT_LIMIT", 10); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = getEnvDuration("CACHE_TTL", 15*time.Minute); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.EmbeddingDim <= 0 {
		return fmt.Errorf("EMBEDDING_DIM must be positive, got %d", c.EmbeddingDim)
	}
	if c.ChunkMinWords <= 0 || c.ChunkMaxWords <= c.ChunkMinWords {
		return fmt.Errorf("invalid chunk bounds: min=%d max=%d", c.ChunkMinWords, c.ChunkMaxWords)
	}
	if c.IngestBatchSize <= 0 {
		return fmt.Errorf("INGEST_BATCH_SIZE must be positive, got %d", c.IngestBatchSize)
	}
	if c.RRFK <= 0 {
		return fmt.Errorf("RRF_K must be positive, got %g", c.RRFK)
	}
	if c.RRFPoolMultiplier < 1 {
		return fmt.Errorf("RRF_POOL_MULTIPLIER must be at least 1, got %d", c.RRFPoolMultiplier)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
	return parsed, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
	return parsed, nil
}
