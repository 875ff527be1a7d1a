// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import "github.com/pdiddy/citeguard/pkg/types"

// shortTitleRunes bounds the title used in author-less MLA in-text citations.
const shortTitleRunes = 20

// mla renders MLA 9th edition works-cited entries. MLA starts with the
// title when no author is known.
type mla struct{}

func (mla) Name() types.CitationStyle { return types.StyleMLA }

func (mla) Full(m types.SourceMetadata) string {
	head := sentence(mlaAuthors(m.Authors))

	switch m.SourceType {
	case types.SourceArticle:
		container := joinNonEmpty(", ",
			italic(m.PublicationName),
			prefixed("vol. ", m.Volume),
			prefixed("no. ", m.Issue),
			year(m.Year),
			prefixed("pp. ", m.Pages),
		)
		return joinNonEmpty(" ", head, quoted(m.Title, "."), sentence(container), sentence(doiURL(m.DOI)))
	case types.SourceBook:
		return joinNonEmpty(" ", head, italicSentence(m.Title), sentence(joinNonEmpty(", ", m.PublicationName, year(m.Year))))
	case types.SourceWebsite:
		container := joinNonEmpty(", ", italic(m.PublicationName), year(m.Year), m.URL)
		return joinNonEmpty(" ", head, quoted(m.Title, "."), sentence(container), sentence(prefixed("Accessed ", m.AccessDate)))
	default:
		return minimal(mlaAuthors(m.Authors), m.Year, m.Title)
	}
}

// InText omits the year and appends the page range when present.
func (mla) InText(m types.SourceMetadata) string {
	if len(m.Authors) == 0 {
		return `("` + shortTitle(m.Title) + `")`
	}
	return "(" + surnames(m.Authors, "and") + prefixed(" ", m.Pages) + ")"
}

func shortTitle(title string) string {
	r := []rune(title)
	if len(r) <= shortTitleRunes {
		return title
	}
	return string(r[:shortTitleRunes]) + "..."
}
