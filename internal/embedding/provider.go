// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embedding defines the text-embedding capability consumed by the
// similarity scorer and resolves the configured backend once at startup.
// A nil Provider means the capability is absent and callers must use a
// non-semantic strategy.
package embedding

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/pdiddy/citeguard/pkg/types"
)

// ErrDisabled is returned by New when embeddings are turned off in config.
var ErrDisabled = errors.New("embedding provider disabled")

// Provider turns texts into fixed-length vectors. Implementations must
// return exactly one vector per input text, in input order, and fail the
// whole call when the backend is unavailable.
type Provider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Func adapts an ordinary function to the Provider interface.
type Func func(ctx context.Context, texts []string) ([][]float32, error)

// Embed calls f(ctx, texts).
func (f Func) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return f(ctx, texts)
}

// New builds the provider described by cfg. It returns ErrDisabled when
// embeddings are not enabled.
func New(cfg types.EmbeddingConfig, logger *zap.Logger) (Provider, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	return NewOpenAI(cfg, logger)
}

// Resolve is New with failures logged and collapsed into an absent
// provider. The returned handle is shared read-only for the life of the
// process.
func Resolve(cfg types.EmbeddingConfig, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	p, err := New(cfg, logger)
	if err != nil {
		if errors.Is(err, ErrDisabled) {
			logger.Debug("embedding provider disabled, lexical scoring only")
		} else {
			logger.Warn("embedding provider unavailable, lexical scoring only", zap.Error(err))
		}
		return nil
	}
	logger.Info("embedding provider ready",
		zap.String("base_url", cfg.BaseURL),
		zap.String("model", cfg.Model))
	return p
}
