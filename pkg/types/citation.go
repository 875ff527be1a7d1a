// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// CitationStyle names an academic citation style.
type CitationStyle string

const (
	StyleAPA     CitationStyle = "APA"
	StyleMLA     CitationStyle = "MLA"
	StyleChicago CitationStyle = "Chicago"
	StyleHarvard CitationStyle = "Harvard"
	StyleIEEE    CitationStyle = "IEEE"
)

// CitationStyles lists the supported styles in display order.
var CitationStyles = []CitationStyle{StyleAPA, StyleMLA, StyleChicago, StyleHarvard, StyleIEEE}

// ParseCitationStyle matches s against the supported styles ignoring case.
// Unknown or empty values resolve to StyleAPA.
func ParseCitationStyle(s string) CitationStyle {
	s = strings.TrimSpace(s)
	for _, st := range CitationStyles {
		if strings.EqualFold(s, string(st)) {
			return st
		}
	}
	return StyleAPA
}

// CitationResult holds the two renderings of one source in one style.
type CitationResult struct {
	// FullCitation is the bibliography entry.
	FullCitation string `json:"full_citation" yaml:"full_citation"`

	// InTextCitation is the short inline reference.
	InTextCitation string `json:"in_text_citation" yaml:"in_text_citation"`

	// Style is the style that was applied.
	Style CitationStyle `json:"style" yaml:"style"`
}
