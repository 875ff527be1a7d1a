// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similarity

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citeguard/internal/embedding"
	"github.com/pdiddy/citeguard/internal/embedding/embeddingtest"
	"github.com/pdiddy/citeguard/pkg/types"
)

// fixedVectors returns a provider that maps each text to a preset vector.
func fixedVectors(m map[string][]float32) embedding.Provider {
	return embedding.Func(func(_ context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, t := range texts {
			v, ok := m[t]
			if !ok {
				return nil, errors.New("no vector for " + t)
			}
			out[i] = v
		}
		return out, nil
	})
}

func src(title, content string) types.SourceText {
	return types.SourceText{Title: title, Content: content}
}

func TestScore_Degenerate(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		sources []types.SourceText
		wantRec string
	}{
		{"no sources", "some text", nil, "No sources to compare against"},
		{"empty document", "", []types.SourceText{src("a", "x")}, "Empty text provided"},
		{"blank document", "  \n\t", []types.SourceText{src("a", "x")}, "Empty text provided"},
		{"empty document and no sources", "", nil, "No sources to compare against"},
		{"all empty content", "some text", []types.SourceText{src("a", ""), src("b", "   ")}, "No valid source content to compare"},
	}
	for _, provider := range []embedding.Provider{nil, embeddingtest.New(0)} {
		s := NewScorer(provider)
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := s.Score(context.Background(), tt.doc, tt.sources)
				require.NoError(t, err)
				assert.Equal(t, 0.0, got.Score)
				assert.Equal(t, 0, got.FlaggedCount)
				assert.Equal(t, 0, got.TotalMatches)
				assert.Equal(t, 0, got.SourcesChecked)
				assert.Equal(t, []string{tt.wantRec}, got.Recommendations)
				assert.Equal(t, types.StrategyNone, got.Strategy)
			})
		}
	}
}

func TestScore_LexicalFullOverlap(t *testing.T) {
	s := NewScorer(nil)
	got, err := s.Score(context.Background(), "the cat sat", []types.SourceText{src("Mat", "the cat sat on the mat")})
	require.NoError(t, err)

	assert.Equal(t, types.StrategyLexical, got.Strategy)
	assert.Equal(t, 1.0, got.Score)
	assert.Equal(t, 1, got.FlaggedCount)
	assert.Equal(t, 1, got.TotalMatches)
	assert.Equal(t, 1, got.SourcesChecked)
	assert.Equal(t, []string{
		"⚠️ Significant word overlap (100.0%) detected",
		"  • Mat: 3 matching words",
	}, got.Recommendations)
}

func TestScore_LexicalBoundaryIsExclusive(t *testing.T) {
	s := NewScorer(nil)
	doc := "one two three four five six seven eight nine ten"
	got, err := s.Score(context.Background(), doc, []types.SourceText{src("S", "one two three alpha beta")})
	require.NoError(t, err)

	assert.InDelta(t, 0.3, got.Score, 1e-12)
	assert.Equal(t, 0, got.FlaggedCount, "similarity of exactly 0.3 must not be flagged")
	assert.Equal(t, 1, got.TotalMatches)
	assert.Equal(t, []string{"✓ Low similarity with stored documents"}, got.Recommendations)
}

func TestScore_LexicalCaseInsensitiveDistinctWords(t *testing.T) {
	s := NewScorer(nil)
	got, err := s.Score(context.Background(), "Cat cat CAT dog", []types.SourceText{src("S", "cat")})
	require.NoError(t, err)
	// Distinct document words are {cat, dog}; one is shared.
	assert.InDelta(t, 0.5, got.Score, 1e-12)
}

func TestScore_LexicalAggregation(t *testing.T) {
	s := NewScorer(nil)
	doc := "alpha beta gamma delta"
	sources := []types.SourceText{
		src("Full", "alpha beta gamma delta"),
		src("", "alpha"),
		src("Skipped", ""),
		src("None", "omega"),
	}
	got, err := s.Score(context.Background(), doc, sources)
	require.NoError(t, err)

	// sims = 1.0, 0.25, 0.0; max 1.0, mean 0.41666…
	assert.InDelta(t, (1.0+1.25/3)/2, got.Score, 1e-12)
	assert.Equal(t, 3, got.SourcesChecked)
	assert.Equal(t, 1, got.FlaggedCount)
	assert.Equal(t, 2, got.TotalMatches)
	require.Len(t, got.Recommendations, 2)
	assert.True(t, strings.HasPrefix(got.Recommendations[0], "⚠️ Significant word overlap (70.8%)"))
	assert.Equal(t, "  • Full: 4 matching words", got.Recommendations[1])
}

func TestScore_LexicalUntitledBullet(t *testing.T) {
	s := NewScorer(nil)
	got, err := s.Score(context.Background(), "a b", []types.SourceText{src("", "a b")})
	require.NoError(t, err)
	assert.Contains(t, got.Recommendations, "  • Unknown: 2 matching words")
}

func TestScore_SemanticTiers(t *testing.T) {
	doc := []float32{1, 0}
	tests := []struct {
		name        string
		sources     map[string][]float32
		wantScore   float64
		wantFlagged int
		wantMatches int
		wantPrefix  string
	}{
		{
			name:        "identical source is high",
			sources:     map[string][]float32{"s1": {1, 0}},
			wantScore:   1.0,
			wantFlagged: 1,
			wantMatches: 1,
			wantPrefix:  "⚠️ High similarity detected (100.0%)",
		},
		{
			name:        "moderate",
			sources:     map[string][]float32{"s1": {0.8, 0.6}},
			wantScore:   0.8,
			wantFlagged: 1,
			wantMatches: 1,
			wantPrefix:  "📋 Moderate similarity (80.0%)",
		},
		{
			name:        "orthogonal is low",
			sources:     map[string][]float32{"s1": {0, 1}},
			wantScore:   0,
			wantFlagged: 0,
			wantMatches: 0,
			wantPrefix:  "✓ Low plagiarism risk",
		},
		{
			name:        "opposed vectors clamp to zero",
			sources:     map[string][]float32{"s1": {-1, 0}},
			wantScore:   0,
			wantFlagged: 0,
			wantMatches: 0,
			wantPrefix:  "✓ Low plagiarism risk",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vecs := map[string][]float32{"doc": doc}
			var sources []types.SourceText
			for k, v := range tt.sources {
				vecs[k] = v
				sources = append(sources, src(k, k))
			}
			s := NewScorer(fixedVectors(vecs))
			got, err := s.Score(context.Background(), "doc", sources)
			require.NoError(t, err)

			assert.Equal(t, types.StrategySemantic, got.Strategy)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-6)
			assert.Equal(t, tt.wantFlagged, got.FlaggedCount)
			assert.Equal(t, tt.wantMatches, got.TotalMatches)
			require.Len(t, got.Recommendations, 1)
			assert.True(t, strings.HasPrefix(got.Recommendations[0], tt.wantPrefix), got.Recommendations[0])
		})
	}
}

func TestScore_SemanticAggregation(t *testing.T) {
	vecs := map[string][]float32{
		"doc": {1, 0},
		"a":   {1, 0},   // 1.0
		"b":   {0.6, 0.8}, // 0.6
		"c":   {0, 1},   // 0.0
	}
	s := NewScorer(fixedVectors(vecs))
	got, err := s.Score(context.Background(), "doc", []types.SourceText{src("A", "a"), src("B", "b"), src("C", "c")})
	require.NoError(t, err)

	assert.InDelta(t, (1.0+1.6/3)/2, got.Score, 1e-6)
	assert.Equal(t, 1, got.FlaggedCount)
	assert.Equal(t, 2, got.TotalMatches)
	assert.Equal(t, 3, got.SourcesChecked)
}

func TestScore_HighThresholdPerCall(t *testing.T) {
	vecs := map[string][]float32{"doc": {1, 0}, "s": {0.8, 0.6}}
	s := NewScorer(fixedVectors(vecs))
	sources := []types.SourceText{src("S", "s")}

	def, err := s.Score(context.Background(), "doc", sources)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(def.Recommendations[0], "📋 Moderate"))

	low, err := s.Score(context.Background(), "doc", sources, WithHighThreshold(0.75))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(low.Recommendations[0], "⚠️ High similarity"))

	again, err := s.Score(context.Background(), "doc", sources)
	require.NoError(t, err)
	assert.Equal(t, def, again, "threshold must not persist between calls")
}

func TestScore_FallbackToLexical(t *testing.T) {
	tests := []struct {
		name     string
		provider embedding.Provider
	}{
		{
			name: "provider error",
			provider: embedding.Func(func(context.Context, []string) ([][]float32, error) {
				return nil, errors.New("backend down")
			}),
		},
		{
			name: "wrong vector count",
			provider: embedding.Func(func(context.Context, []string) ([][]float32, error) {
				return [][]float32{{1}}, nil
			}),
		},
		{
			name: "dimension mismatch",
			provider: embedding.Func(func(_ context.Context, texts []string) ([][]float32, error) {
				out := make([][]float32, len(texts))
				for i := range texts {
					out[i] = make([]float32, i+1)
					out[i][0] = 1
				}
				return out, nil
			}),
		},
		{
			name: "provider timeout",
			provider: embedding.Func(func(ctx context.Context, _ []string) ([][]float32, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScorer(tt.provider, WithProviderTimeout(10*time.Millisecond))
			got, err := s.Score(context.Background(), "the cat sat", []types.SourceText{src("Mat", "the cat sat on the mat")})
			require.NoError(t, err)
			assert.Equal(t, types.StrategyLexical, got.Strategy)
			assert.Equal(t, 1.0, got.Score)
		})
	}
}

func TestScore_CallerCancellationPropagates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScorer(nil)
	_, err := s.Score(ctx, "text", []types.SourceText{src("a", "text")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScore_CancelledDuringEmbedDoesNotFallBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := embedding.Func(func(context.Context, []string) ([][]float32, error) {
		cancel()
		return nil, context.Canceled
	})
	s := NewScorer(p)
	_, err := s.Score(ctx, "text", []types.SourceText{src("a", "text")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScore_NaNVectorsFail(t *testing.T) {
	nan := float32(math.NaN())
	s := NewScorer(fixedVectors(map[string][]float32{"doc": {nan, 1}, "s": {1, 1}}))
	_, err := s.Score(context.Background(), "doc", []types.SourceText{src("S", "s")})
	// The semantic path fails and the lexical fallback then scores normally.
	require.NoError(t, err)

	_, err = aggregate([]float64{math.NaN()})
	assert.ErrorIs(t, err, ErrInvalidScore)
}

func TestScore_Properties(t *testing.T) {
	fake := embeddingtest.New(32)
	docs := []string{
		"the quick brown fox jumps over the lazy dog",
		"completely unrelated words here",
		"fox",
	}
	sources := []types.SourceText{
		src("A", "the quick brown fox"),
		src("B", "lazy dogs sleep all day"),
		src("C", ""),
		src("D", "jumps over"),
	}
	for _, provider := range []embedding.Provider{nil, fake} {
		s := NewScorer(provider)
		for _, doc := range docs {
			first, err := s.Score(context.Background(), doc, sources)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, first.Score, 0.0)
			assert.LessOrEqual(t, first.Score, 1.0)
			assert.LessOrEqual(t, first.SourcesChecked, len(sources))
			assert.Equal(t, 3, first.SourcesChecked)
			assert.NotEmpty(t, first.Recommendations)

			second, err := s.Score(context.Background(), doc, sources)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		}
	}
}

func TestScorer_Semantic(t *testing.T) {
	assert.False(t, NewScorer(nil).Semantic())
	assert.True(t, NewScorer(embeddingtest.New(0)).Semantic())
}

func TestCosine(t *testing.T) {
	c, err := cosine([]float32{1, 2, 3}, []float32{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c, 1e-9)

	c, err = cosine([]float32{0, 0}, []float32{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, c)

	_, err = cosine([]float32{1}, []float32{1, 2})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
