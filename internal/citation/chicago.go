// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import "github.com/pdiddy/citeguard/pkg/types"

// chicago renders Chicago author-date references. The bibliography author
// list uses the APA shape.
type chicago struct{}

func (chicago) Name() types.CitationStyle { return types.StyleChicago }

func (chicago) Full(m types.SourceMetadata) string {
	head := sentence(authorsOr(apaAuthors(m.Authors))) + " " + sentence(year(m.Year))

	switch m.SourceType {
	case types.SourceArticle:
		entry := head + " " + quoted(m.Title, ".")
		if c := chicagoContainer(m); c != "" {
			entry += " " + c + "."
		}
		return joinNonEmpty(" ", entry, sentence(link(m.DOI, m.URL)))
	case types.SourceBook:
		return joinNonEmpty(" ", head, italicSentence(m.Title), sentence(m.PublicationName))
	case types.SourceWebsite:
		return joinNonEmpty(" ", head, quoted(m.Title, "."), sentence(m.PublicationName),
			sentence(prefixed("Accessed ", m.AccessDate)), sentence(m.URL))
	default:
		return minimal(apaAuthors(m.Authors), m.Year, m.Title)
	}
}

// chicagoContainer renders "*Journal* Volume (Issue): Pages".
func chicagoContainer(m types.SourceMetadata) string {
	c := joinNonEmpty(" ", italic(m.PublicationName), m.Volume, prefixed("(", m.Issue))
	if m.Issue != "" {
		c += ")"
	}
	if m.Pages == "" {
		return c
	}
	if c == "" {
		return m.Pages
	}
	return c + ": " + m.Pages
}

func (chicago) InText(m types.SourceMetadata) string {
	return "(" + surnames(m.Authors, "and") + " " + year(m.Year) + ")"
}
