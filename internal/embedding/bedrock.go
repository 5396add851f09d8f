package embedding

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// BedrockEmbedder calls an Amazon Titan embedding model through the Bedrock
// runtime API.
type BedrockEmbedder struct {
	client    *bedrockruntime.Client
	modelID   string
	dimension int
}

type titanEmbedRequest struct {
	InputText string `json:"inputText"`
	// Titan v2 accepts 256, 512 or 1024; v1 ignores the field.
	Dimensions int `json:"dimensions,omitempty"`
}

type titanEmbedResponse struct {
	Embedding           []float32 `json:"embedding"`
	InputTextTokenCount int       `json:"inputTextTokenCount"`
}

func NewBedrockEmbedder(ctx context.Context, opts Options) (*BedrockEmbedder, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	return &BedrockEmbedder{
		client:    bedrockruntime.NewFromConfig(cfg),
		modelID:   opts.ModelID,
		dimension: opts.Dimension,
	}, nil
}

func (e *BedrockEmbedder) Dimension() int {
	return e.dimension
}

func (e *BedrockEmbedder) GenerateEmbeddings(ctx context.Context, text string) ([]float32, error) {
	payload, err := json.Marshal(titanEmbedRequest{
		InputText:  text,
		Dimensions: e.dimension,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedding request: %w", err)
	}

	output, err := e.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(e.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke embedding model %s: %w", e.modelID, err)
	}

	var response titanEmbedResponse
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal embedding response: %w", err)
	}

	return response.Embedding, nil
}

func (e *BedrockEmbedder) GenerateBatchEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	// Titan has no batch endpoint; invoke per text.
	embeddings := make([][]float32, 0, len(texts))
	for i, text := range texts {
		embedding, err := e.GenerateEmbeddings(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed text %d of %d: %w", i+1, len(texts), err)
		}
		embeddings = append(embeddings, embedding)
	}
	return embeddings, nil
}
