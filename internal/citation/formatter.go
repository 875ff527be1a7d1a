// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation renders bibliography entries and in-text citations for
// source metadata in APA, MLA, Chicago, Harvard, and IEEE styles.
//
// Each style is one Style implementation; the author-list shapes are
// shared helpers. Italics are rendered with Markdown asterisks. Absent
// optional fields are omitted, except the year, which renders as "n.d.".
// Formatting is a pure function of its inputs.
package citation

import (
	"fmt"
	"strings"

	"github.com/pdiddy/citeguard/pkg/types"
)

// Style renders one citation style.
type Style interface {
	Name() types.CitationStyle

	// Full returns the bibliography entry.
	Full(m types.SourceMetadata) string

	// InText returns the inline reference.
	InText(m types.SourceMetadata) string
}

// Formatter dispatches metadata to the registered styles.
type Formatter struct {
	styles map[types.CitationStyle]Style
}

// NewFormatter returns a formatter with all supported styles registered.
func NewFormatter() *Formatter {
	f := &Formatter{styles: make(map[types.CitationStyle]Style)}
	for _, s := range []Style{apa{}, mla{}, chicago{}, harvard{}, ieee{}} {
		f.styles[s.Name()] = s
	}
	return f
}

// Format renders m in style. Unknown styles, including differently cased
// names, resolve through types.ParseCitationStyle, so anything
// unrecognized is rendered as APA. Metadata with no title or a blank
// author is rejected with ErrMissingTitle or ErrMalformedAuthor. A zero
// Formatter renders every style as APA.
func (f *Formatter) Format(m types.SourceMetadata, style types.CitationStyle) (types.CitationResult, error) {
	s, ok := f.styles[types.ParseCitationStyle(string(style))]
	if !ok {
		s = apa{}
	}

	norm, err := normalize(m)
	if err != nil {
		return types.CitationResult{}, fmt.Errorf("formatting %s citation: %w", s.Name(), err)
	}

	return types.CitationResult{
		FullCitation:   s.Full(norm),
		InTextCitation: s.InText(norm),
		Style:          s.Name(),
	}, nil
}

// FormatAll renders m in every supported style, in display order.
func (f *Formatter) FormatAll(m types.SourceMetadata) ([]types.CitationResult, error) {
	out := make([]types.CitationResult, 0, len(types.CitationStyles))
	for _, st := range types.CitationStyles {
		res, err := f.Format(m, st)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

// normalize trims every field and validates the title and author list.
func normalize(m types.SourceMetadata) (types.SourceMetadata, error) {
	m.Title = strings.TrimSpace(m.Title)
	if m.Title == "" {
		return m, ErrMissingTitle
	}

	authors := make([]string, len(m.Authors))
	for i, a := range m.Authors {
		a = strings.Join(strings.Fields(a), " ")
		if a == "" {
			return m, fmt.Errorf("%w at position %d", ErrMalformedAuthor, i+1)
		}
		authors[i] = a
	}
	m.Authors = authors

	m.PublicationName = strings.TrimSpace(m.PublicationName)
	m.Volume = strings.TrimSpace(m.Volume)
	m.Issue = strings.TrimSpace(m.Issue)
	m.Pages = strings.TrimSpace(m.Pages)
	m.URL = strings.TrimSpace(m.URL)
	m.DOI = strings.TrimSpace(m.DOI)
	m.AccessDate = strings.TrimSpace(m.AccessDate)
	m.SourceType = m.SourceType.Normalize()
	return m, nil
}
