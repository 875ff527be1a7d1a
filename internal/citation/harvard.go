// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import "github.com/pdiddy/citeguard/pkg/types"

type harvard struct{}

func (harvard) Name() types.CitationStyle { return types.StyleHarvard }

func (harvard) Full(m types.SourceMetadata) string {
	lead := authorsOr(apaAuthors(m.Authors)) + " (" + year(m.Year) + ") "

	switch m.SourceType {
	case types.SourceArticle:
		volIssue := m.Volume
		if m.Issue != "" {
			volIssue += "(" + m.Issue + ")"
		}
		entry := lead + "'" + m.Title + "'"
		if c := joinNonEmpty(", ", italic(m.PublicationName), volIssue, prefixed("pp. ", m.Pages)); c != "" {
			entry += ", " + c
		}
		entry += "."
		if m.DOI != "" {
			return entry + " doi:" + m.DOI
		}
		return joinNonEmpty(" ", entry, prefixed("Available at: ", m.URL))
	case types.SourceBook:
		return joinNonEmpty(" ", lead+italicSentence(m.Title), sentence(m.PublicationName))
	case types.SourceWebsite:
		avail := prefixed("Available at: ", m.URL)
		if m.AccessDate != "" {
			avail = joinNonEmpty(" ", avail, "(Accessed: "+m.AccessDate+").")
		}
		return joinNonEmpty(" ", lead+italicSentence(m.Title), sentence(m.PublicationName), avail)
	default:
		return minimal(apaAuthors(m.Authors), m.Year, m.Title)
	}
}

func (harvard) InText(m types.SourceMetadata) string {
	return "(" + surnames(m.Authors, "and") + ", " + year(m.Year) + ")"
}
