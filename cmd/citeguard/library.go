// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citeguard/internal/document"
	"github.com/pdiddy/citeguard/internal/library"
	"github.com/pdiddy/citeguard/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the local source library (add, list, search, remove, export, history)",
	Long: `Library manages a local SQLite database of reference sources. Each source
holds citation metadata and the full text used for similarity analysis.
"citeguard analyze --library" compares a document against every stored
source.`,
}

func openLibrary() (*library.Store, error) {
	return library.NewStore(cfg.Library, logger)
}

// --- add ---

var libraryAddCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Add a source file with its citation metadata",
	Long: `Add stores the text of a source file along with its metadata. Metadata
comes from --identifier (DOI, arXiv ID, or URL) and the metadata flags;
without a title the file's own title or name is used. A source whose DOI is
already stored is updated in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		doc, err := document.NewLoader(cfg.Document, document.WithLogger(logger)).LoadSource(ctx, args[0])
		if err != nil {
			return err
		}

		var base types.SourceMetadata
		if id, _ := cmd.Flags().GetString("identifier"); id != "" {
			base, err = resolveIdentifier(ctx, id)
			if err != nil {
				return err
			}
		}
		m := metadataFromFlags(cmd, base)
		if strings.TrimSpace(m.Title) == "" {
			m.Title = doc.Title
		}

		store, err := openLibrary()
		if err != nil {
			return err
		}
		defer store.Close()

		src, err := store.AddSource(ctx, m, doc.Text)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added: %s  %s\n", src.ID, src.Title)
		return nil
	},
}

// --- list ---

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		store, err := openLibrary()
		if err != nil {
			return err
		}
		defer store.Close()

		sources, err := store.ListSources(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if json, _ := cmd.Flags().GetBool("json"); json {
			return writeJSON(cmd.OutOrStdout(), sources)
		}
		printSources(cmd, sources, nil)
		return nil
	},
}

// --- search ---

var librarySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over source titles and text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxResults, _ := cmd.Flags().GetInt("max-results")
		store, err := openLibrary()
		if err != nil {
			return err
		}
		defer store.Close()

		results, err := store.SearchSources(cmd.Context(), strings.Join(args, " "), maxResults)
		if err != nil {
			return err
		}
		if json, _ := cmd.Flags().GetBool("json"); json {
			return writeJSON(cmd.OutOrStdout(), results)
		}
		sources := make([]library.Source, len(results))
		for i, r := range results {
			sources[i] = r.Source
		}
		printSources(cmd, sources, results)
		return nil
	},
}

func printSources(cmd *cobra.Command, sources []library.Source, ranked []library.SearchResult) {
	out := cmd.OutOrStdout()
	if len(sources) == 0 {
		fmt.Fprintln(out, "No sources found.")
		return
	}
	fmt.Fprintf(out, "%-36s  %-50s  %-20s  %s\n", "ID", "Title", "First author", "Year")
	fmt.Fprintln(out, strings.Repeat("-", 116))
	for _, s := range sources {
		title := truncate(s.Title, 50)
		author := ""
		if len(s.Authors) > 0 {
			author = truncate(s.Authors[0], 20)
		}
		year := "n.d."
		if s.Year > 0 {
			year = fmt.Sprint(s.Year)
		}
		fmt.Fprintf(out, "%-36s  %-50s  %-20s  %s\n", s.ID, title, author, year)
	}
	noun := "sources"
	if ranked != nil {
		noun = "results"
	}
	fmt.Fprintf(out, "\n%d %s\n", len(sources), noun)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- remove ---

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove <id>...",
	Short: "Remove sources by ID",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLibrary()
		if err != nil {
			return err
		}
		defer store.Close()

		for _, id := range args {
			if err := store.RemoveSource(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed: %s\n", id)
		}
		return nil
	},
}

// --- export ---

var libraryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export source metadata to YAML, JSON, or CSL-YAML",
	Long: `Export writes every source's metadata (without full text) to
export.yaml, export.json, or references.yaml (CSL-YAML, usable by pandoc
--citeproc) in the library directory or --out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outDir, _ := cmd.Flags().GetString("out")

		switch library.ExportFormat(format) {
		case library.ExportYAML, library.ExportJSON, library.ExportCSL:
		default:
			return fmt.Errorf("unsupported format %q: use yaml, json, or csl", format)
		}

		store, err := openLibrary()
		if err != nil {
			return err
		}
		defer store.Close()

		path, err := store.Export(cmd.Context(), library.ExportFormat(format), outDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
		return nil
	},
}

// --- history ---

var libraryHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded similarity analyses, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		store, err := openLibrary()
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.ListAnalyses(cmd.Context(), limit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if json, _ := cmd.Flags().GetBool("json"); json {
			return writeJSON(out, records)
		}
		if len(records) == 0 {
			fmt.Fprintln(out, "No analyses recorded.")
			return nil
		}
		fmt.Fprintf(out, "%-5s  %-20s  %-30s  %-7s  %-8s  %s\n", "ID", "When", "Document", "Score", "Strategy", "Flagged")
		fmt.Fprintln(out, strings.Repeat("-", 90))
		for _, r := range records {
			fmt.Fprintf(out, "%-5d  %-20s  %-30s  %6.1f%%  %-8s  %d/%d\n",
				r.ID, r.AnalyzedAt.Local().Format("2006-01-02 15:04"), truncate(r.DocumentTitle, 30),
				r.Result.Score*100, r.Result.Strategy, r.Result.FlaggedCount, r.Result.SourcesChecked)
		}
		return nil
	},
}

func init() {
	addMetadataFlags(libraryAddCmd)
	libraryAddCmd.Flags().String("identifier", "", "DOI, arXiv ID, or URL to look up metadata from")

	libraryListCmd.Flags().Int("limit", 0, "maximum sources to list (0 for all)")
	libraryListCmd.Flags().Bool("json", false, "output JSON")

	librarySearchCmd.Flags().Int("max-results", 0, "maximum results (default from config, 20)")
	librarySearchCmd.Flags().Bool("json", false, "output JSON")

	libraryExportCmd.Flags().String("format", "yaml", "export format: yaml, json, or csl")
	libraryExportCmd.Flags().String("out", "", "output directory (default: library directory)")

	libraryHistoryCmd.Flags().Int("limit", 0, "maximum records (default from config, 20)")
	libraryHistoryCmd.Flags().Bool("json", false, "output JSON")

	libraryCmd.AddCommand(libraryAddCmd, libraryListCmd, librarySearchCmd,
		libraryRemoveCmd, libraryExportCmd, libraryHistoryCmd)
	rootCmd.AddCommand(libraryCmd)
}
