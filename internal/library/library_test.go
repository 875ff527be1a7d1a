// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citeguard/internal/citation"
	"github.com/pdiddy/citeguard/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.LibraryConfig{Dir: t.TempDir(), MaxResults: 10}, nil)
	require.NoError(t, err)
	store.now = func() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC) }
	t.Cleanup(func() { store.Close() })
	return store
}

var (
	attention = types.SourceMetadata{
		Title:           "Attention Is All You Need",
		Authors:         []string{"Ashish Vaswani", "Noam Shazeer"},
		Year:            2017,
		PublicationName: "arXiv",
		DOI:             "10.48550/arXiv.1706.03762",
	}
	gardening = types.SourceMetadata{
		Title:      "Raised Bed Gardening",
		Authors:    []string{"Mary Gold"},
		Year:       2020,
		SourceType: types.SourceBook,
	}
)

func seed(t *testing.T, s *Store) (Source, Source) {
	t.Helper()
	ctx := context.Background()
	a, err := s.AddSource(ctx, attention, "transformers rely entirely on self attention mechanisms")
	require.NoError(t, err)
	g, err := s.AddSource(ctx, gardening, "compost and soil drainage keep raised beds productive")
	require.NoError(t, err)
	return a, g
}

// --- tests ---

func TestNewStoreCreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "lib")
	store, err := NewStore(types.LibraryConfig{Dir: dir}, nil)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(dir, dbFile))
	assert.NoError(t, err)
	assert.Equal(t, 20, store.maxResults)
}

func TestNewStoreReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(types.LibraryConfig{Dir: dir}, nil)
	require.NoError(t, err)
	_, err = store.AddSource(context.Background(), attention, "content")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = NewStore(types.LibraryConfig{Dir: dir}, nil)
	require.NoError(t, err)
	defer store.Close()

	sources, err := store.ListSources(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, sources, 1)
}

func TestAddAndGetSource(t *testing.T) {
	s := testStore(t)
	a, g := seed(t, s)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, g.ID)

	got, err := s.GetSource(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, attention.Title, got.Title)
	assert.Equal(t, attention.Authors, got.Authors)
	assert.Equal(t, 2017, got.Year)
	assert.Equal(t, types.SourceArticle, got.SourceType)
	assert.Equal(t, "transformers rely entirely on self attention mechanisms", got.Content)
	assert.Equal(t, time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC), got.AddedAt)
}

func TestAddSourceRequiresTitle(t *testing.T) {
	s := testStore(t)
	_, err := s.AddSource(context.Background(), types.SourceMetadata{Title: "  "}, "x")
	assert.Error(t, err)
}

func TestAddSourceSameDOIUpdates(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	first, err := s.AddSource(ctx, attention, "old text")
	require.NoError(t, err)

	updated := attention
	updated.Title = "Attention Is All You Need (v7)"
	second, err := s.AddSource(ctx, updated, "new text")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	sources, err := s.ListSources(ctx, 0)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "new text", sources[0].Content)

	results, err := s.SearchSources(ctx, "new", 0)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	results, err = s.SearchSources(ctx, "old", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGetSourceNotFound(t *testing.T) {
	s := testStore(t)
	_, err := s.GetSource(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveSource(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	a, _ := seed(t, s)

	require.NoError(t, s.RemoveSource(ctx, a.ID))
	assert.ErrorIs(t, s.RemoveSource(ctx, a.ID), ErrNotFound)

	results, err := s.SearchSources(ctx, "attention", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestListSourcesOrderAndLimit(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	all, err := s.ListSources(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, attention.Title, all[0].Title)
	assert.Equal(t, gardening.Title, all[1].Title)

	one, err := s.ListSources(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestSearchSources(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	tests := []struct {
		query string
		want  []string
	}{
		{"attention", []string{attention.Title}},
		{"compost", []string{gardening.Title}},
		{"gardening", []string{gardening.Title}},
		{"quantum", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results, err := s.SearchSources(context.Background(), tt.query, 0)
			require.NoError(t, err)
			var titles []string
			for _, r := range results {
				titles = append(titles, r.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestSourceTexts(t *testing.T) {
	s := testStore(t)
	a, _ := seed(t, s)

	texts, err := s.SourceTexts(context.Background())
	require.NoError(t, err)
	require.Len(t, texts, 2)
	assert.Equal(t, a.ID, texts[0].ID)
	assert.Equal(t, attention.Title, texts[0].Title)
	assert.True(t, strings.HasPrefix(texts[0].Content, "transformers"))
}

func TestRecordAndListAnalyses(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first := types.SimilarityResult{
		Score: 0.2, Recommendations: []string{"✓ Low plagiarism risk"},
		SourcesChecked: 2, Strategy: types.StrategyLexical,
	}
	second := types.SimilarityResult{
		Score: 0.9, FlaggedCount: 1, TotalMatches: 2, SourcesChecked: 2,
		Recommendations: []string{"⚠️ High similarity detected (90.0%) - Review content carefully"},
		Strategy:        types.StrategySemantic,
	}
	rec, err := s.RecordAnalysis(ctx, "essay.txt", first)
	require.NoError(t, err)
	assert.Positive(t, rec.ID)
	_, err = s.RecordAnalysis(ctx, "draft.md", second)
	require.NoError(t, err)

	records, err := s.ListAnalyses(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "draft.md", records[0].DocumentTitle)
	assert.Equal(t, second, records[0].Result)
	assert.Equal(t, "essay.txt", records[1].DocumentTitle)
	assert.Equal(t, first, records[1].Result)
	assert.Equal(t, time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC), records[1].AnalyzedAt)

	records, err = s.ListAnalyses(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestCorruptRowsReturnErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("authors", func(t *testing.T) {
		s := testStore(t)
		a, _ := seed(t, s)
		_, err := s.db.ExecContext(ctx, `UPDATE sources SET authors = '["Ashish' WHERE id = ?`, a.ID)
		require.NoError(t, err)

		_, err = s.GetSource(ctx, a.ID)
		assert.ErrorContains(t, err, "decoding authors")
		_, err = s.ListSources(ctx, 0)
		assert.Error(t, err)
	})

	t.Run("added_at", func(t *testing.T) {
		s := testStore(t)
		a, _ := seed(t, s)
		_, err := s.db.ExecContext(ctx, `UPDATE sources SET added_at = 'yesterday' WHERE id = ?`, a.ID)
		require.NoError(t, err)

		_, err = s.GetSource(ctx, a.ID)
		assert.ErrorContains(t, err, "parsing added_at")
	})

	t.Run("recommendations", func(t *testing.T) {
		s := testStore(t)
		_, err := s.RecordAnalysis(ctx, "essay.txt", types.SimilarityResult{Strategy: types.StrategyLexical})
		require.NoError(t, err)
		_, err = s.db.ExecContext(ctx, `UPDATE analyses SET recommendations = '{'`)
		require.NoError(t, err)

		_, err = s.ListAnalyses(ctx, 0)
		assert.ErrorContains(t, err, "decoding recommendations")
	})

	t.Run("analyzed_at", func(t *testing.T) {
		s := testStore(t)
		_, err := s.RecordAnalysis(ctx, "essay.txt", types.SimilarityResult{Strategy: types.StrategyLexical})
		require.NoError(t, err)
		_, err = s.db.ExecContext(ctx, `UPDATE analyses SET analyzed_at = ''`)
		require.NoError(t, err)

		_, err = s.ListAnalyses(ctx, 0)
		assert.ErrorContains(t, err, "parsing analyzed_at")
	})
}

func TestExport(t *testing.T) {
	s := testStore(t)
	a, _ := seed(t, s)
	ctx := context.Background()
	outDir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		path, err := s.Export(ctx, ExportYAML, outDir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(outDir, "export.yaml"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var entries []ExportEntry
		require.NoError(t, yaml.Unmarshal(data, &entries))
		require.Len(t, entries, 2)
		assert.Equal(t, a.ID, entries[0].ID)
		assert.Equal(t, attention.Title, entries[0].Title)
		assert.NotContains(t, string(data), "self attention")
	})

	t.Run("json", func(t *testing.T) {
		path, err := s.Export(ctx, ExportJSON, outDir)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var entries []ExportEntry
		require.NoError(t, json.Unmarshal(data, &entries))
		require.Len(t, entries, 2)
		assert.Equal(t, gardening.Authors, entries[1].Authors)
	})

	t.Run("csl", func(t *testing.T) {
		path, err := s.Export(ctx, ExportCSL, outDir)
		require.NoError(t, err)
		assert.Equal(t, "references.yaml", filepath.Base(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var items []citation.CSLItem
		require.NoError(t, yaml.Unmarshal(data, &items))
		require.Len(t, items, 2)
		assert.Equal(t, "article-journal", items[0].Type)
		assert.Equal(t, "Vaswani", items[0].Author[0].Family)
		assert.Equal(t, "book", items[1].Type)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := s.Export(ctx, ExportFormat("toml"), outDir)
		assert.Error(t, err)
	})
}
