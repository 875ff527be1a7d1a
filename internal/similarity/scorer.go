// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package similarity scores a candidate document against reference sources.
// When an embedding provider is present the score comes from cosine
// similarity of document and source vectors; otherwise, or when the
// provider fails, it comes from word-set overlap. Both strategies aggregate
// per-source similarities the same way, as the average of the maximum and
// the mean, so the score keeps one meaning whichever backend ran.
package similarity

import (
	"context"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/citeguard/internal/embedding"
	"github.com/pdiddy/citeguard/pkg/types"
)

// DefaultHighThreshold is the semantic score above which the
// high-similarity warning is issued.
const DefaultHighThreshold = 0.85

// Scorer is an immutable scoring service. It holds no per-call state and
// is safe for concurrent use.
type Scorer struct {
	provider embedding.Provider
	timeout  time.Duration
	workers  int
	logger   *zap.Logger
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithLogger sets the logger. Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scorer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProviderTimeout bounds each embedding call. A call that exceeds it
// is treated as provider unavailable and the lexical strategy is used.
func WithProviderTimeout(d time.Duration) Option {
	return func(s *Scorer) {
		s.timeout = d
	}
}

// WithWorkers sets the pool size used by ScoreBatch.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithWorkers(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewScorer returns a scorer. A nil provider selects lexical scoring for
// every call; presence is decided here, not per call.
func NewScorer(provider embedding.Provider, opts ...Option) *Scorer {
	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}
	s := &Scorer{
		provider: provider,
		workers:  workers,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Semantic reports whether an embedding provider is configured.
func (s *Scorer) Semantic() bool {
	return s.provider != nil
}

// ScoreOption adjusts a single Score call.
type ScoreOption func(*scoreParams)

type scoreParams struct {
	highThreshold float64
}

// WithHighThreshold sets the semantic high-similarity threshold for one
// call. Values outside (0, 1] are ignored.
func WithHighThreshold(t float64) ScoreOption {
	return func(p *scoreParams) {
		if t > 0 && t <= 1 {
			p.highThreshold = t
		}
	}
}

// Score compares document against sources.
//
// Degenerate inputs (no sources, blank document, no source with content)
// are not errors; they return a zero score with one explanatory
// recommendation. Provider failures fall back to lexical scoring. An error
// is returned only when the caller's context is done or the aggregation
// produced an invalid score.
func (s *Scorer) Score(ctx context.Context, document string, sources []types.SourceText, opts ...ScoreOption) (types.SimilarityResult, error) {
	if err := ctx.Err(); err != nil {
		return types.SimilarityResult{}, err
	}
	params := scoreParams{highThreshold: DefaultHighThreshold}
	for _, opt := range opts {
		opt(&params)
	}

	if len(sources) == 0 {
		return degenerate(msgNoSources), nil
	}
	if strings.TrimSpace(document) == "" {
		return degenerate(msgEmptyText), nil
	}
	valid := withContent(sources)
	if len(valid) == 0 {
		return degenerate(msgNoValidSources), nil
	}

	if s.provider != nil {
		res, err := s.semantic(ctx, document, valid, params)
		if err == nil {
			return res, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return types.SimilarityResult{}, ctxErr
		}
		s.logger.Warn("semantic scoring failed, falling back to lexical", zap.Error(err))
	}

	return s.lexical(document, valid)
}

// withContent drops sources whose content is blank.
func withContent(sources []types.SourceText) []types.SourceText {
	out := make([]types.SourceText, 0, len(sources))
	for _, src := range sources {
		if strings.TrimSpace(src.Content) != "" {
			out = append(out, src)
		}
	}
	return out
}

func degenerate(reason string) types.SimilarityResult {
	return types.SimilarityResult{
		Recommendations: []string{reason},
		Strategy:        types.StrategyNone,
	}
}
