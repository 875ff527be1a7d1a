// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similarity

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/citeguard/pkg/types"
)

// semantic embeds the document and every source in one provider call and
// scores by cosine similarity. Any provider failure, short result, or
// dimension mismatch is returned so Score can fall back.
func (s *Scorer) semantic(ctx context.Context, document string, sources []types.SourceText, p scoreParams) (types.SimilarityResult, error) {
	texts := make([]string, 0, len(sources)+1)
	texts = append(texts, document)
	for _, src := range sources {
		texts = append(texts, src.Content)
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	vectors, err := s.provider.Embed(callCtx, texts)
	if err != nil {
		return types.SimilarityResult{}, fmt.Errorf("embedding document and %d sources: %w", len(sources), err)
	}
	if len(vectors) != len(texts) {
		return types.SimilarityResult{}, fmt.Errorf("%w: got %d, want %d", ErrVectorCount, len(vectors), len(texts))
	}

	doc := vectors[0]
	sims := make([]float64, len(sources))
	for i := range sources {
		c, err := cosine(doc, vectors[i+1])
		if err != nil {
			return types.SimilarityResult{}, fmt.Errorf("source %d: %w", i, err)
		}
		// Opposed vectors carry no more similarity than orthogonal ones.
		if c < 0 {
			c = 0
		}
		sims[i] = c
	}

	score, err := aggregate(sims)
	if err != nil {
		return types.SimilarityResult{}, err
	}

	s.logger.Debug("semantic score",
		zap.Float64("score", score),
		zap.Int("sources", len(sources)))

	return types.SimilarityResult{
		Score:           score,
		FlaggedCount:    countAbove(sims, semanticFlagged),
		Recommendations: []string{semanticRecommendation(score, p.highThreshold)},
		TotalMatches:    countAbove(sims, semanticMatch),
		SourcesChecked:  len(sources),
		Strategy:        types.StrategySemantic,
	}, nil
}
