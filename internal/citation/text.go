// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"strconv"
	"strings"
)

const noDate = "n.d."

func year(y int) string {
	if y <= 0 {
		return noDate
	}
	return strconv.Itoa(y)
}

func italic(s string) string {
	if s == "" {
		return ""
	}
	return "*" + s + "*"
}

func endsTerminal(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "?") || strings.HasSuffix(s, "!")
}

// sentence terminates s with a period unless it already ends in terminal
// punctuation.
func sentence(s string) string {
	if s == "" || endsTerminal(s) {
		return s
	}
	return s + "."
}

// quoted wraps title in double quotes with punct inside the closing quote,
// dropping punct when the title already ends in terminal punctuation.
func quoted(title, punct string) string {
	if endsTerminal(title) {
		return `"` + title + `"`
	}
	return `"` + title + punct + `"`
}

// joinNonEmpty joins the non-empty parts with sep.
func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func prefixed(prefix, s string) string {
	if s == "" {
		return ""
	}
	return prefix + s
}

func doiURL(doi string) string {
	if doi == "" {
		return ""
	}
	if strings.HasPrefix(doi, "http://") || strings.HasPrefix(doi, "https://") {
		return doi
	}
	return "https://doi.org/" + doi
}

// link returns the DOI URL when a DOI is present, otherwise the plain URL.
func link(doi, url string) string {
	if d := doiURL(doi); d != "" {
		return d
	}
	return url
}

// minimal renders the "Authors (Year). Title." fallback shape used for
// source types without a dedicated layout.
func minimal(authors string, y int, title string) string {
	return authorsOr(authors) + " (" + year(y) + "). " + sentence(title)
}

// italicSentence italicizes title and terminates it with a period outside
// the emphasis markers.
func italicSentence(title string) string {
	if endsTerminal(title) {
		return italic(title)
	}
	return italic(title) + "."
}
