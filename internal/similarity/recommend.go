// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similarity

import "fmt"

const (
	msgNoSources      = "No sources to compare against"
	msgEmptyText      = "Empty text provided"
	msgNoValidSources = "No valid source content to compare"

	msgLowRisk    = "✓ Low plagiarism risk"
	msgLowOverlap = "✓ Low similarity with stored documents"
)

// Semantic thresholds. All comparisons are strict.
const (
	semanticModerate = 0.70
	semanticFlagged  = 0.75
	semanticMatch    = 0.5
)

// Lexical thresholds. All comparisons are strict.
const (
	lexicalWarning = 0.4
	lexicalFlagged = 0.3
	lexicalMatch   = 0.15
)

// semanticRecommendation returns exactly one tiered message.
func semanticRecommendation(score, high float64) string {
	switch {
	case score > high:
		return fmt.Sprintf("⚠️ High similarity detected (%s) - Review content carefully", percent(score))
	case score > semanticModerate:
		return fmt.Sprintf("📋 Moderate similarity (%s) - Consider paraphrasing", percent(score))
	default:
		return msgLowRisk
	}
}

// lexicalRecommendations returns the overlap warning followed by one bullet
// per flagged source in input order, or a single low-overlap message.
func lexicalRecommendations(score float64, matches []sourceOverlap) []string {
	if score <= lexicalWarning {
		return []string{msgLowOverlap}
	}
	recs := []string{fmt.Sprintf("⚠️ Significant word overlap (%s) detected", percent(score))}
	for _, m := range matches {
		if m.similarity > lexicalFlagged {
			recs = append(recs, fmt.Sprintf("  • %s: %d matching words", m.title, m.common))
		}
	}
	return recs
}
