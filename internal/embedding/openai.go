package embedding

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIEmbedder talks to any OpenAI-compatible embeddings endpoint. With
// BaseURL pointed at a local model server this keeps embedding fully
// on-machine.
type OpenAIEmbedder struct {
	client    openai.Client
	modelID   string
	dimension int
}

func NewOpenAIEmbedder(opts Options) *OpenAIEmbedder {
	clientOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}

	return &OpenAIEmbedder{
		client:    openai.NewClient(clientOpts...),
		modelID:   opts.ModelID,
		dimension: opts.Dimension,
	}
}

func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

func (e *OpenAIEmbedder) GenerateEmbeddings(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.GenerateBatchEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

func (e *OpenAIEmbedder) GenerateBatchEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	response, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model: openai.EmbeddingModel(e.modelID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke embedding model %s: %w", e.modelID, err)
	}

	if len(response.Data) != len(texts) {
		return nil, fmt.Errorf("embedding response has %d vectors for %d inputs", len(response.Data), len(texts))
	}

	embeddings := make([][]float32, 0, len(texts))
	for _, item := range response.Data {
		vec := make([]float32, len(item.Embedding))
		for i, v := range item.Embedding {
			vec[i] = float32(v)
		}
		embeddings = append(embeddings, vec)
	}

	return embeddings, nil
}
