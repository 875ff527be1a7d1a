// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/citeguard/pkg/types"
)

// Crossref API JSON structures.
type crossrefResponse struct {
	Message crossrefWork `json:"message"`
}

type crossrefWork struct {
	Title          []string         `json:"title"`
	Author         []crossrefAuthor `json:"author"`
	ContainerTitle []string         `json:"container-title"`
	Publisher      string           `json:"publisher"`
	Volume         string           `json:"volume"`
	Issue          string           `json:"issue"`
	Page           string           `json:"page"`
	Type           string           `json:"type"`
	Issued         crossrefDate     `json:"issued"`
	Created        crossrefDate     `json:"created"`
	URL            string           `json:"URL"`
	DOI            string           `json:"DOI"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	Name   string `json:"name"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

func (d crossrefDate) year() int {
	if len(d.DateParts) > 0 && len(d.DateParts[0]) > 0 {
		return d.DateParts[0][0]
	}
	return 0
}

var crossrefTypes = map[string]types.SourceType{
	"journal-article":     types.SourceArticle,
	"book":                types.SourceBook,
	"monograph":           types.SourceBook,
	"edited-book":         types.SourceBook,
	"reference-book":      types.SourceBook,
	"proceedings-article": types.SourceConference,
}

func (r *Resolver) crossref(ctx context.Context, doi string) (types.SourceMetadata, error) {
	apiURL := crossrefAPIBase + doi
	if r.mailTo != "" {
		apiURL += "?mailto=" + url.QueryEscape(r.mailTo)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return types.SourceMetadata{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := r.client.Do(ctx, req)
	if err != nil {
		return types.SourceMetadata{}, fmt.Errorf("Crossref API request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return types.SourceMetadata{}, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return types.SourceMetadata{}, fmt.Errorf("Crossref API returned HTTP %d", resp.StatusCode)
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return types.SourceMetadata{}, fmt.Errorf("parsing Crossref response: %w", err)
	}
	w := cr.Message
	if len(w.Title) == 0 || strings.TrimSpace(w.Title[0]) == "" {
		return types.SourceMetadata{}, ErrNotFound
	}

	m := types.SourceMetadata{
		Title:      strings.TrimSpace(w.Title[0]),
		Volume:     w.Volume,
		Issue:      w.Issue,
		Pages:      strings.ReplaceAll(w.Page, "–", "-"),
		DOI:        doi,
		URL:        w.URL,
		SourceType: types.SourceArticle,
	}
	if st, ok := crossrefTypes[w.Type]; ok {
		m.SourceType = st
	}
	if m.SourceType == types.SourceBook {
		m.PublicationName = w.Publisher
	} else if len(w.ContainerTitle) > 0 {
		m.PublicationName = w.ContainerTitle[0]
	}
	if w.DOI != "" {
		m.DOI = w.DOI
	}

	for _, a := range w.Author {
		name := strings.TrimSpace(a.Given + " " + a.Family)
		if name == "" {
			name = strings.TrimSpace(a.Name)
		}
		if name != "" {
			m.Authors = append(m.Authors, name)
		}
	}

	m.Year = w.Issued.year()
	if m.Year == 0 {
		m.Year = w.Created.year()
	}
	return m, nil
}
