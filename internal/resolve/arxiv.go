// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/citeguard/pkg/types"
)

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
	DOI       string        `xml:"http://arxiv.org/schemas/atom doi"`
	Journal   string        `xml:"http://arxiv.org/schemas/atom journal_ref"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

// arxivDOIPrefix is the DataCite prefix arXiv assigns to every preprint.
const arxivDOIPrefix = "10.48550/arXiv."

func (r *Resolver) arxiv(ctx context.Context, id string) (types.SourceMetadata, error) {
	apiURL := arxivAPIBase + "?id_list=" + url.QueryEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return types.SourceMetadata{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := r.client.Do(ctx, req)
	if err != nil {
		return types.SourceMetadata{}, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.SourceMetadata{}, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return types.SourceMetadata{}, fmt.Errorf("parsing arXiv response: %w", err)
	}
	if len(feed.Entries) == 0 || strings.TrimSpace(feed.Entries[0].Title) == "" {
		return types.SourceMetadata{}, ErrNotFound
	}

	entry := feed.Entries[0]
	m := types.SourceMetadata{
		Title:           strings.Join(strings.Fields(entry.Title), " "),
		PublicationName: "arXiv",
		URL:             arxivAbsBase + id,
		DOI:             arxivDOIPrefix + id,
		SourceType:      types.SourceArticle,
	}
	if entry.DOI != "" {
		// A journal DOI supersedes the preprint DOI.
		m.DOI = strings.TrimSpace(entry.DOI)
	}
	for _, a := range entry.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			m.Authors = append(m.Authors, name)
		}
	}
	if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
		m.Year = t.Year()
	}
	return m, nil
}
