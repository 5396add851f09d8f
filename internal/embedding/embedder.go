package embedding

import (
	"context"
	"fmt"
)

// Embedder maps text to fixed-dimension vectors. Dimension reports the
// width the provider is configured for, which must match the vector column
// in the schema.
type Embedder interface {
	GenerateEmbeddings(ctx context.Context, text string) ([]float32, error)
	GenerateBatchEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// Provider selects the embedding backend. It is parsed once at startup;
// nothing dispatches on the raw string afterwards.
type Provider string

const (
	ProviderBedrock Provider = "bedrock"
	ProviderOpenAI  Provider = "openai"
)

func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderBedrock:
		return ProviderBedrock, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("unknown embedding provider %q (expected %q or %q)", s, ProviderBedrock, ProviderOpenAI)
	}
}

// Options carries provider configuration. BaseURL and APIKey apply to the
// openai provider (any OpenAI-compatible server, including local ones);
// Region applies to bedrock.
type Options struct {
	ModelID   string
	Dimension int
	Region    string
	BaseURL   string
	APIKey    string
}

func New(ctx context.Context, provider Provider, opts Options) (Embedder, error) {
	if opts.Dimension <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", opts.Dimension)
	}

	switch provider {
	case ProviderBedrock:
		return NewBedrockEmbedder(ctx, opts)
	case ProviderOpenAI:
		return NewOpenAIEmbedder(opts), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
}

// EnsureDimension rejects a vector whose width does not match the schema's
// declared vector column. Ingestion calls this before any insert so a
// misconfigured model fails fast instead of truncating or padding.
func EnsureDimension(vec []float32, want int) error {
	if len(vec) != want {
		return fmt.Errorf("embedding dimension mismatch: model returned %d values but schema expects vector(%d); check EMBEDDING_MODEL_ID and EMBEDDING_DIM", len(vec), want)
	}
	return nil
}
