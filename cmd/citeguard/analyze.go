// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/citeguard/internal/document"
	"github.com/pdiddy/citeguard/internal/embedding"
	"github.com/pdiddy/citeguard/internal/library"
	"github.com/pdiddy/citeguard/internal/similarity"
	"github.com/pdiddy/citeguard/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <document>",
	Short: "Score a document's similarity against reference sources",
	Long: `Analyze compares a document against reference sources and reports a
similarity score between 0 and 1, how many sources are flagged, and
recommendations.

Sources are files passed with --source (text, Markdown, HTML, PDF, DOCX)
and, with --library, every source stored in the library. Use "-" to read
the document from stdin. With --sections the document is split at headings
(or paragraphs) and each section is scored separately; --record then saves
one history entry per section.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runAnalyze(cmd, args[0]); err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		return nil
	},
}

func runAnalyze(cmd *cobra.Command, docPath string) error {
	ctx := cmd.Context()
	sourcePaths, _ := cmd.Flags().GetStringSlice("source")
	useLibrary, _ := cmd.Flags().GetBool("library")
	sections, _ := cmd.Flags().GetBool("sections")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	record, _ := cmd.Flags().GetBool("record")

	threshold := cfg.Similarity.HighThreshold
	if cmd.Flags().Changed("threshold") {
		threshold, _ = cmd.Flags().GetFloat64("threshold")
		if threshold <= 0 || threshold > 1 {
			return fmt.Errorf("threshold must be in (0, 1], got %v", threshold)
		}
	}

	loader := document.NewLoader(cfg.Document, document.WithLogger(logger))
	doc, err := loadDocument(ctx, loader, docPath, cmd.InOrStdin())
	if err != nil {
		return err
	}

	sources, err := loadSources(ctx, loader, sourcePaths)
	if err != nil {
		return err
	}

	var store *library.Store
	if useLibrary || record {
		store, err = library.NewStore(cfg.Library, logger)
		if err != nil {
			return err
		}
		defer store.Close()
	}
	if useLibrary {
		stored, err := store.SourceTexts(ctx)
		if err != nil {
			return err
		}
		sources = append(sources, stored...)
	}

	scorer := newScorer()
	out := cmd.OutOrStdout()

	if sections {
		parts := document.Sections(doc.Text)
		results, err := scorer.ScoreBatch(ctx, parts, sources, similarity.WithHighThreshold(threshold))
		if err != nil {
			return err
		}
		if store != nil && record {
			for _, r := range results {
				recordAnalysis(ctx, store, fmt.Sprintf("%s (section %d)", doc.Title, r.SectionIndex+1), r.Result)
			}
		}
		if jsonOutput {
			return writeJSON(out, results)
		}
		for _, r := range results {
			fmt.Fprintf(out, "Section %d\n", r.SectionIndex+1)
			printResult(out, r.Result)
			fmt.Fprintln(out)
		}
		return nil
	}

	result, err := scorer.Score(ctx, doc.Text, sources, similarity.WithHighThreshold(threshold))
	if err != nil {
		return err
	}

	if store != nil && record {
		recordAnalysis(ctx, store, doc.Title, result)
	}

	if jsonOutput {
		return writeJSON(out, result)
	}
	printResult(out, result)
	return nil
}

// recordAnalysis saves result to the history. Failures are logged, not
// returned, so a scored document is still printed.
func recordAnalysis(ctx context.Context, store *library.Store, title string, result types.SimilarityResult) {
	if _, err := store.RecordAnalysis(ctx, title, result); err != nil {
		logger.Warn("could not record analysis", zap.String("document", title), zap.Error(err))
	}
}

// newScorer resolves the embedding provider once and builds the scorer.
func newScorer() *similarity.Scorer {
	provider := embedding.Resolve(cfg.Embedding, logger)
	return similarity.NewScorer(provider,
		similarity.WithLogger(logger),
		similarity.WithProviderTimeout(cfg.Similarity.ProviderTimeout),
		similarity.WithWorkers(cfg.Similarity.Workers),
	)
}

func loadDocument(ctx context.Context, loader *document.Loader, path string, stdin io.Reader) (document.Document, error) {
	if path != "-" {
		return loader.Load(ctx, path)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return document.Document{}, fmt.Errorf("reading stdin: %w", err)
	}
	if err := loader.Check(string(data)); err != nil {
		return document.Document{}, err
	}
	return document.Document{Path: path, Title: "stdin", Format: document.FormatText, Text: string(data)}, nil
}

// loadSources reads every path; directories contribute their supported
// files. Unsupported files inside a directory are skipped. Sources are not
// subject to the document length bound.
func loadSources(ctx context.Context, loader *document.Loader, paths []string) ([]types.SourceText, error) {
	var sources []types.SourceText
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading source %s: %w", p, err)
		}
		if !info.IsDir() {
			doc, err := loader.LoadSource(ctx, p)
			if err != nil {
				return nil, err
			}
			sources = append(sources, doc.Source())
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("reading source directory %s: %w", p, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			doc, err := loader.LoadSource(ctx, filepath.Join(p, e.Name()))
			if errors.Is(err, document.ErrUnsupported) {
				logger.Debug("skipping unsupported source", zap.String("file", e.Name()))
				continue
			}
			if err != nil {
				return nil, err
			}
			sources = append(sources, doc.Source())
		}
	}
	return sources, nil
}

func printResult(w io.Writer, r types.SimilarityResult) {
	fmt.Fprintf(w, "Similarity score: %.1f%% (%s)\n", r.Score*100, r.Strategy)
	fmt.Fprintf(w, "Sources checked:  %d\n", r.SourcesChecked)
	fmt.Fprintf(w, "Matches:          %d\n", r.TotalMatches)
	fmt.Fprintf(w, "Flagged:          %d\n", r.FlaggedCount)
	for _, rec := range r.Recommendations {
		fmt.Fprintln(w, rec)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	addAnalyzeFlags(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func addAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("source", "s", nil, "source file or directory to compare against (repeatable)")
	cmd.Flags().Bool("library", false, "compare against every source in the library")
	cmd.Flags().Bool("sections", false, "score each section of the document separately")
	cmd.Flags().Float64("threshold", 0, "semantic high-similarity threshold in (0, 1] (default from config, 0.85)")
	cmd.Flags().Bool("record", false, "save the result to the library's analysis history")
	cmd.Flags().Bool("json", false, "output JSON")
}
