package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.EmbeddingDim != 1024 {
		t.Errorf("expected default dim 1024, got %d", cfg.EmbeddingDim)
	}
	if cfg.ChunkMinWords != 10 || cfg.ChunkMaxWords != 200 {
		t.Errorf("expected default chunk bounds 10/200, got %d/%d", cfg.ChunkMinWords, cfg.ChunkMaxWords)
	}
	if cfg.RRFK != 60.0 {
		t.Errorf("expected default RRF k 60, got %g", cfg.RRFK)
	}
	if cfg.RRFPoolMultiplier != 4 {
		t.Errorf("expected default pool multiplier 4, got %d", cfg.RRFPoolMultiplier)
	}
	if cfg.CacheTTL != 15*time.Minute {
		t.Errorf("expected default cache TTL 15m, got %s", cfg.CacheTTL)
	}
}

func TestLoad_InvalidInt(t *testing.T) {
	t.Setenv("EMBEDDING_DIM", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric EMBEDDING_DIM")
	}
}

func TestLoad_InvalidChunkBounds(t *testing.T) {
	t.Setenv("CHUNK_MIN_WORDS", "200")
	t.Setenv("CHUNK_MAX_WORDS", "10")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when min >= max")
	}
}

func TestLoad_OverridesFromEnv(t *testing.T) {
	t.Setenv("RRF_K", "30")
	t.Setenv("RRF_POOL_MULTIPLIER", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.RRFK != 30.0 {
		t.Errorf("expected RRF k 30, got %g", cfg.RRFK)
	}
	if cfg.RRFPoolMultiplier != 2 {
		t.Errorf("expected pool multiplier 2, got %d", cfg.RRFPoolMultiplier)
	}
}
