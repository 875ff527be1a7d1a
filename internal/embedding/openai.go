// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embedding

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"github.com/pdiddy/citeguard/pkg/types"
)

const (
	defaultBaseURL = "http://localhost:11434/v1"
	defaultModel   = "all-minilm"

	// Local OpenAI-compatible servers ignore the token but the client requires one.
	placeholderToken = "none"
)

// OpenAI embeds text through any OpenAI-compatible /embeddings endpoint
// (OpenAI, Ollama, llama.cpp, vLLM).
type OpenAI struct {
	embedder embeddings.Embedder
	model    string
	logger   *zap.Logger
}

// NewOpenAI constructs the client. No network call is made until Embed.
func NewOpenAI(cfg types.EmbeddingConfig, logger *zap.Logger) (*OpenAI, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	token := cfg.APIKey
	if token == "" {
		token = placeholderToken
	}

	client, err := openai.New(
		openai.WithBaseURL(baseURL),
		openai.WithToken(token),
		openai.WithEmbeddingModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("creating embedding client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	return &OpenAI{
		embedder: embedder,
		model:    model,
		logger:   logger.With(zap.String("component", "openai-embedder")),
	}, nil
}

// Embed returns one vector per text.
func (o *OpenAI) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	o.logger.Debug("generating embeddings", zap.Int("count", len(texts)))

	vectors, err := o.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding %d texts with %s: %w", len(texts), o.model, err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding %d texts with %s: %w", len(texts), o.model,
			errors.New("backend returned wrong number of vectors"))
	}
	return vectors, nil
}
