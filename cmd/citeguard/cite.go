// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citeguard/internal/citation"
	"github.com/pdiddy/citeguard/internal/library"
	"github.com/pdiddy/citeguard/internal/resolve"
	"github.com/pdiddy/citeguard/pkg/types"
)

var citeCmd = &cobra.Command{
	Use:   "cite [identifier]",
	Short: "Format a citation from metadata flags or a DOI, arXiv ID, or URL",
	Long: `Cite renders a bibliography entry and in-text citation for a source.

Metadata comes from flags (--title, --author, --year, ...) or is looked up
from an identifier: DOIs through Crossref, arXiv IDs through the arXiv API,
and other URLs from the page itself. Flags override looked-up fields.

Styles: apa (default), mla, chicago, harvard, ieee. Unknown styles fall
back to APA. Use --all to print every style.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCite(cmd, args); err != nil {
			return fmt.Errorf("citation failed: %w", err)
		}
		return nil
	},
}

func runCite(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	style, _ := cmd.Flags().GetString("style")
	all, _ := cmd.Flags().GetBool("all")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	add, _ := cmd.Flags().GetBool("add")

	var base types.SourceMetadata
	if len(args) == 1 {
		m, err := resolveIdentifier(ctx, args[0])
		if err != nil {
			return err
		}
		base = m
	}
	m := metadataFromFlags(cmd, base)

	f := citation.NewFormatter()
	var results []types.CitationResult
	if all {
		rs, err := f.FormatAll(m)
		if err != nil {
			return err
		}
		results = rs
	} else {
		r, err := f.Format(m, types.CitationStyle(style))
		if err != nil {
			return err
		}
		results = []types.CitationResult{r}
	}

	if add {
		store, err := library.NewStore(cfg.Library, logger)
		if err != nil {
			return err
		}
		defer store.Close()
		src, err := store.AddSource(ctx, m, "")
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "added to library: %s\n", src.ID)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if all {
			return writeJSON(out, results)
		}
		return writeJSON(out, results[0])
	}
	printCitations(out, results)
	return nil
}

func resolveIdentifier(ctx context.Context, identifier string) (types.SourceMetadata, error) {
	return resolve.New(cfg.Resolve, logger).Resolve(ctx, identifier)
}

func printCitations(w io.Writer, results []types.CitationResult) {
	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "[%s]\n", strings.ToUpper(string(r.Style)))
		}
		fmt.Fprintf(w, "Full:    %s\n", r.FullCitation)
		fmt.Fprintf(w, "In-text: %s\n", r.InTextCitation)
	}
}

// addMetadataFlags registers the source metadata flags shared by cite and
// library add.
func addMetadataFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("title", "", "work title")
	f.StringArrayP("author", "a", nil, `author as "First Last" (repeatable, in order)`)
	f.Int("year", 0, "publication year")
	f.String("publication", "", "journal, publisher, or website name")
	f.String("volume", "", "volume")
	f.String("issue", "", "issue")
	f.String("pages", "", "page range")
	f.String("url", "", "URL")
	f.String("doi", "", "DOI")
	f.String("access-date", "", "access date for web sources (YYYY-MM-DD, default today for websites)")
	f.String("type", "", "source type: article, book, website, conference")
}

// metadataFromFlags overlays explicitly set flags onto base.
func metadataFromFlags(cmd *cobra.Command, base types.SourceMetadata) types.SourceMetadata {
	f := cmd.Flags()
	m := base
	str := func(name string, dst *string) {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	str("title", &m.Title)
	str("publication", &m.PublicationName)
	str("volume", &m.Volume)
	str("issue", &m.Issue)
	str("pages", &m.Pages)
	str("url", &m.URL)
	str("doi", &m.DOI)
	str("access-date", &m.AccessDate)
	if f.Changed("type") {
		t, _ := f.GetString("type")
		m.SourceType = types.SourceType(t)
	}
	if f.Changed("author") {
		m.Authors, _ = f.GetStringArray("author")
	}
	if f.Changed("year") {
		m.Year, _ = f.GetInt("year")
	}
	if m.SourceType.Normalize() == types.SourceWebsite && m.AccessDate == "" {
		m.AccessDate = time.Now().Format(time.DateOnly)
	}
	return m
}

func init() {
	addMetadataFlags(citeCmd)
	citeCmd.Flags().String("style", string(types.StyleAPA), "citation style: apa, mla, chicago, harvard, ieee")
	citeCmd.Flags().Bool("all", false, "print every style")
	citeCmd.Flags().Bool("add", false, "also store the source in the library")
	citeCmd.Flags().Bool("json", false, "output JSON")
	rootCmd.AddCommand(citeCmd)
}
