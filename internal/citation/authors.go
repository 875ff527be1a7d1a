// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"strings"
	"unicode/utf8"
)

const (
	apaAuthorLimit  = 20
	ieeeAuthorLimit = 6

	unknownAuthor = "Unknown"
)

// surname returns the last whitespace-delimited token of a "First Last" name.
func surname(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// initial returns the first rune of s followed by a period.
func initial(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	return string(r) + "."
}

// apaName rewrites "First Middle Last" as "Last, F.M.". Single-token names
// are returned unchanged.
func apaName(name string) string {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return strings.Join(parts, " ")
	}
	var b strings.Builder
	for _, p := range parts[:len(parts)-1] {
		b.WriteString(initial(p))
	}
	return parts[len(parts)-1] + ", " + b.String()
}

// apaAuthors joins up to 20 authors in APA shape: "A, & B" for two and
// "A, B, & Z" for three or more. Harvard and Chicago reuse it.
func apaAuthors(authors []string) string {
	if len(authors) == 0 {
		return ""
	}
	n := min(len(authors), apaAuthorLimit)
	names := make([]string, n)
	for i := range n {
		names[i] = apaName(authors[i])
	}
	if n == 1 {
		return names[0]
	}
	return strings.Join(names[:n-1], ", ") + ", & " + names[n-1]
}

// invertName rewrites "First Middle Last" as "Last, First Middle".
func invertName(name string) string {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return strings.Join(parts, " ")
	}
	return parts[len(parts)-1] + ", " + strings.Join(parts[:len(parts)-1], " ")
}

// mlaAuthors inverts only the first author. A second author follows "and"
// uninverted; three or more collapse to "et al.".
func mlaAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return invertName(authors[0])
	case 2:
		return invertName(authors[0]) + ", and " + strings.Join(strings.Fields(authors[1]), " ")
	default:
		return invertName(authors[0]) + ", et al."
	}
}

// ieeeName rewrites "First Middle Last" as "F. M. Last".
func ieeeName(name string) string {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return strings.Join(parts, " ")
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts[:len(parts)-1] {
		out = append(out, initial(p))
	}
	return strings.Join(append(out, parts[len(parts)-1]), " ")
}

// ieeeAuthors comma-joins up to six authors and appends ", et al." when
// more are present.
func ieeeAuthors(authors []string) string {
	if len(authors) == 0 {
		return ""
	}
	n := min(len(authors), ieeeAuthorLimit)
	names := make([]string, n)
	for i := range n {
		names[i] = ieeeName(authors[i])
	}
	s := strings.Join(names, ", ")
	if len(authors) > ieeeAuthorLimit {
		s += ", et al."
	}
	return s
}

// authorsOr returns s, or "Unknown" when s is empty.
func authorsOr(s string) string {
	if s == "" {
		return unknownAuthor
	}
	return s
}

// surnames renders the first one or two surnames joined by and, or the
// first surname followed by "et al." for three or more authors.
func surnames(authors []string, and string) string {
	switch len(authors) {
	case 0:
		return unknownAuthor
	case 1:
		return surname(authors[0])
	case 2:
		return surname(authors[0]) + " " + and + " " + surname(authors[1])
	default:
		return surname(authors[0]) + " et al."
	}
}
