// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paraphrase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"github.com/pdiddy/citeguard/pkg/types"
)

// ErrNoChoices is returned when the model answers with no content.
var ErrNoChoices = errors.New("model returned no choices")

const (
	defaultBaseURL = "http://localhost:11434/v1"
	defaultModel   = "llama3.2"
	maxTokens      = 1024
)

const systemPrompt = "You rewrite text so that it keeps the same meaning but uses different words " +
	"and sentence structure. Reply with the rewritten text only."

// LLM rewrites text through an OpenAI-compatible chat endpoint.
type LLM struct {
	client llms.Model
	model  string
	logger *zap.Logger
}

// NewLLM builds an LLM rewriter from cfg. The base URL defaults to a local
// Ollama endpoint.
func NewLLM(cfg types.ParaphraseConfig, logger *zap.Logger) (*LLM, error) {
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
		token = "none"
	}

	client, err := openai.New(
		openai.WithBaseURL(baseURL),
		openai.WithToken(token),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("creating chat client: %w", err)
	}
	return &LLM{client: client, model: model, logger: logger.With(zap.String("component", "paraphrase-llm"))}, nil
}

// Rewrite implements Rewriter.
func (l *LLM) Rewrite(ctx context.Context, text string, style Style) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman,
			fmt.Sprintf("Paraphrase the following text in a %s style.\n\nText: %s", style, text)),
	}

	resp, err := l.client.GenerateContent(ctx, content, llms.WithMaxTokens(maxTokens))
	if err != nil {
		return "", fmt.Errorf("generating paraphrase with %s: %w", l.model, err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	out := strings.TrimSpace(resp.Choices[0].Content)
	out = strings.Trim(out, "\"")
	l.logger.Debug("paraphrase generated", zap.String("style", string(style)), zap.Int("chars", len(out)))
	return out, nil
}
