// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the value objects shared by the citeguard scorer,
// citation formatter, source library, and CLI.
package types

import "strings"

// SourceType selects the bibliography layout used for a source.
type SourceType string

const (
	SourceArticle    SourceType = "article"
	SourceBook       SourceType = "book"
	SourceWebsite    SourceType = "website"
	SourceConference SourceType = "conference"
)

// Normalize returns the lower-cased source type, resolving the empty value
// to SourceArticle. Unrecognized values are returned lower-cased so the
// formatter can pick its minimal layout for them.
func (t SourceType) Normalize() SourceType {
	s := strings.ToLower(strings.TrimSpace(string(t)))
	if s == "" {
		return SourceArticle
	}
	return SourceType(s)
}

// SourceMetadata describes one citable work. Authors are "First Last"
// strings; their order is significant because the first author drives the
// in-text abbreviation rules. A zero Year means the year is unknown.
type SourceMetadata struct {
	// Title is the work's title. Required.
	Title string `json:"title" yaml:"title"`

	// Authors lists author names in citation order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Year is the publication year; zero renders as "n.d.".
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// PublicationName is the journal, publisher, or website name.
	PublicationName string `json:"publication_name,omitempty" yaml:"publication_name,omitempty"`

	Volume string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue  string `json:"issue,omitempty" yaml:"issue,omitempty"`
	Pages  string `json:"pages,omitempty" yaml:"pages,omitempty"`
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
	DOI    string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// AccessDate is the date a web source was retrieved (YYYY-MM-DD).
	AccessDate string `json:"access_date,omitempty" yaml:"access_date,omitempty"`

	// SourceType selects article, book, website, or conference layouts.
	SourceType SourceType `json:"source_type,omitempty" yaml:"source_type,omitempty"`
}

// SourceText is one comparison target for similarity scoring. Entries with
// empty Content are skipped by the scorer.
type SourceText struct {
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}
