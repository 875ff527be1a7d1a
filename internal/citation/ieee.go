// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import "github.com/pdiddy/citeguard/pkg/types"

// ieeeMarker is the in-text reference. Sequence numbers depend on where a
// source first appears in the citing document, which the formatter does
// not see, so every source is rendered as [1].
const ieeeMarker = "[1]"

type ieee struct{}

func (ieee) Name() types.CitationStyle { return types.StyleIEEE }

func (ieee) Full(m types.SourceMetadata) string {
	authors := authorsOr(ieeeAuthors(m.Authors))

	switch m.SourceType {
	case types.SourceArticle:
		details := joinNonEmpty(", ",
			italic(m.PublicationName),
			prefixed("vol. ", m.Volume),
			prefixed("no. ", m.Issue),
			prefixed("pp. ", m.Pages),
			year(m.Year),
		)
		return joinNonEmpty(" ", authors+", "+quoted(m.Title, ","), sentence(details), sentence(prefixed("doi: ", m.DOI)))
	case types.SourceBook:
		return joinNonEmpty(" ", authors+", "+italicSentence(m.Title), sentence(joinNonEmpty(", ", m.PublicationName, year(m.Year))))
	case types.SourceWebsite:
		entry := joinNonEmpty(" ", authors+", "+quoted(m.Title, "."), sentence(joinNonEmpty(", ", italic(m.PublicationName), year(m.Year))))
		if m.URL != "" {
			entry += " [Online]. Available: " + m.URL
		}
		if m.AccessDate != "" {
			entry += " (accessed " + m.AccessDate + ")."
		}
		return entry
	default:
		return minimal(ieeeAuthors(m.Authors), m.Year, m.Title)
	}
}

func (ieee) InText(types.SourceMetadata) string {
	return ieeeMarker
}
