// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Strategy records which scoring path produced a SimilarityResult.
type Strategy string

const (
	// StrategyNone marks degenerate inputs that were never scored.
	StrategyNone     Strategy = "none"
	StrategySemantic Strategy = "semantic"
	StrategyLexical  Strategy = "lexical"
)

// SimilarityResult is the outcome of comparing one document against a set
// of sources. Score is always within [0, 1].
type SimilarityResult struct {
	Score           float64  `json:"score" yaml:"score"`
	FlaggedCount    int      `json:"flagged_count" yaml:"flagged_count"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
	TotalMatches    int      `json:"total_matches" yaml:"total_matches"`

	// SourcesChecked counts only sources with non-empty content.
	SourcesChecked int `json:"sources_checked" yaml:"sources_checked"`

	Strategy Strategy `json:"strategy" yaml:"strategy"`
}

// SectionResult pairs a batch-scored section with its position in the input.
type SectionResult struct {
	SectionIndex int              `json:"section_index" yaml:"section_index"`
	Result       SimilarityResult `json:"result" yaml:"result"`
}

// AnalysisRecord is a persisted snapshot of one similarity analysis.
type AnalysisRecord struct {
	ID            int64            `json:"id" yaml:"id"`
	DocumentTitle string           `json:"document_title" yaml:"document_title"`
	Result        SimilarityResult `json:"result" yaml:"result"`
	AnalyzedAt    time.Time        `json:"analyzed_at" yaml:"analyzed_at"`
}
