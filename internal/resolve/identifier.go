// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"net/url"
	"regexp"
	"strings"
)

// Kind classifies an input identifier.
type Kind int

const (
	KindUnknown Kind = iota
	KindArxiv
	KindDOI
	KindURL
)

func (k Kind) String() string {
	switch k {
	case KindArxiv:
		return "arxiv"
	case KindDOI:
		return "doi"
	case KindURL:
		return "url"
	default:
		return "unknown"
	}
}

var (
	// arxivPattern matches "2301.07041", "arXiv:2301.07041", "2301.07041v2".
	arxivPattern = regexp.MustCompile(`^(?i:arXiv:)?(\d{4}\.\d{4,5})(?:v\d+)?$`)

	// arxivInURL finds an arXiv ID inside an arxiv.org URL path.
	arxivInURL = regexp.MustCompile(`(\d{4}\.\d{4,5})(?:v\d+)?`)

	// doiPattern matches a bare DOI: "10.1145/1234567.1234568".
	doiPattern = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)

	// doiInText finds a DOI anywhere in a string, e.g. a doi.org or publisher URL.
	doiInText = regexp.MustCompile(`10\.\d{4,9}/[^\s?#]+`)
)

// Classify determines the identifier kind and returns its normalized form:
// the bare arXiv ID without version, the bare DOI, or the URL. DOIs and
// arXiv IDs embedded in URLs are extracted.
func Classify(identifier string) (Kind, string) {
	identifier = strings.TrimSpace(identifier)
	lower := strings.ToLower(identifier)
	for _, p := range []string{"doi:", "https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/"} {
		if strings.HasPrefix(lower, p) {
			identifier = identifier[len(p):]
			break
		}
	}

	if m := arxivPattern.FindStringSubmatch(identifier); m != nil {
		return KindArxiv, m[1]
	}
	if doiPattern.MatchString(identifier) {
		return KindDOI, identifier
	}

	u, err := url.Parse(identifier)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return KindUnknown, identifier
	}
	if strings.HasSuffix(u.Hostname(), "arxiv.org") {
		if m := arxivInURL.FindStringSubmatch(u.Path); m != nil {
			return KindArxiv, m[1]
		}
	}
	if m := doiInText.FindString(u.Path); m != "" {
		return KindDOI, strings.TrimSuffix(m, ".pdf")
	}
	return KindURL, identifier
}
