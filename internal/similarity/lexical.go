// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similarity

import (
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/citeguard/pkg/types"
)

const untitled = "Unknown"

type sourceOverlap struct {
	title      string
	similarity float64
	common     int
}

// wordSet lower-cases text and splits it on whitespace.
func wordSet(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// lexical scores each source by the fraction of the document's distinct
// words it also contains. The caller guarantees a non-blank document and
// at least one source with content.
func (s *Scorer) lexical(document string, sources []types.SourceText) (types.SimilarityResult, error) {
	docWords := wordSet(document)
	docCount := float64(len(docWords))

	sims := make([]float64, len(sources))
	overlaps := make([]sourceOverlap, len(sources))
	for i, src := range sources {
		common := 0
		for w := range wordSet(src.Content) {
			if _, ok := docWords[w]; ok {
				common++
			}
		}
		sims[i] = float64(common) / docCount

		title := src.Title
		if strings.TrimSpace(title) == "" {
			title = untitled
		}
		overlaps[i] = sourceOverlap{title: title, similarity: sims[i], common: common}
	}

	score, err := aggregate(sims)
	if err != nil {
		return types.SimilarityResult{}, err
	}

	s.logger.Debug("lexical score",
		zap.Float64("score", score),
		zap.Int("doc_words", len(docWords)),
		zap.Int("sources", len(sources)))

	return types.SimilarityResult{
		Score:           score,
		FlaggedCount:    countAbove(sims, lexicalFlagged),
		Recommendations: lexicalRecommendations(score, overlaps),
		TotalMatches:    countAbove(sims, lexicalMatch),
		SourcesChecked:  len(sources),
		Strategy:        types.StrategyLexical,
	}, nil
}
