// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import "github.com/pdiddy/citeguard/pkg/types"

// apa renders APA 7th edition references.
type apa struct{}

func (apa) Name() types.CitationStyle { return types.StyleAPA }

func (apa) Full(m types.SourceMetadata) string {
	lead := authorsOr(apaAuthors(m.Authors)) + " (" + year(m.Year) + "). "

	switch m.SourceType {
	case types.SourceArticle:
		entry := lead + sentence(m.Title)
		if c := apaContainer(m); c != "" {
			entry += " " + c + "."
		}
		return joinNonEmpty(" ", entry, link(m.DOI, m.URL))
	case types.SourceBook:
		return joinNonEmpty(" ", lead+italicSentence(m.Title), sentence(m.PublicationName), link(m.DOI, m.URL))
	case types.SourceWebsite:
		return joinNonEmpty(" ", lead+italicSentence(m.Title), sentence(m.PublicationName), m.URL)
	default:
		return minimal(apaAuthors(m.Authors), m.Year, m.Title)
	}
}

// apaContainer renders "*Journal*, *Volume*(Issue), Pages".
func apaContainer(m types.SourceMetadata) string {
	c := joinNonEmpty(", ", italic(m.PublicationName), italic(m.Volume))
	if m.Issue != "" {
		c += "(" + m.Issue + ")"
	}
	return joinNonEmpty(", ", c, m.Pages)
}

func (apa) InText(m types.SourceMetadata) string {
	return "(" + surnames(m.Authors, "&") + ", " + year(m.Year) + ")"
}
