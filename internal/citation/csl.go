// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citeguard/pkg/types"
)

// CSLItem is a bibliographic entry in CSL (Citation Style Language) form.
// Field names follow the CSL-YAML schema so exports can be read by Pandoc
// and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Publisher      string    `yaml:"publisher,omitempty"`
	Volume         string    `yaml:"volume,omitempty"`
	Issue          string    `yaml:"issue,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
	Accessed       *CSLDate  `yaml:"accessed,omitempty"`
}

// CSLName is a person's name in CSL form.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate is a date in CSL date-parts form.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

var cslTypes = map[types.SourceType]string{
	types.SourceArticle:    "article-journal",
	types.SourceBook:       "book",
	types.SourceWebsite:    "webpage",
	types.SourceConference: "paper-conference",
}

// ToCSL converts metadata to a CSL item with the given citation key.
func ToCSL(id string, m types.SourceMetadata) CSLItem {
	st := m.SourceType.Normalize()
	item := CSLItem{
		ID:     id,
		Type:   "article",
		Title:  m.Title,
		Volume: m.Volume,
		Issue:  m.Issue,
		Page:   m.Pages,
		DOI:    m.DOI,
		URL:    m.URL,
	}
	if t, ok := cslTypes[st]; ok {
		item.Type = t
	}
	if st == types.SourceBook {
		item.Publisher = m.PublicationName
	} else {
		item.ContainerTitle = m.PublicationName
	}

	for _, a := range m.Authors {
		if n := parseAuthorName(a); n != (CSLName{}) {
			item.Author = append(item.Author, n)
		}
	}

	if m.Year > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{m.Year}}}
	}
	if d, err := time.Parse(time.DateOnly, m.AccessDate); err == nil {
		item.Accessed = &CSLDate{DateParts: [][]int{{d.Year(), int(d.Month()), d.Day()}}}
	}
	return item
}

// WriteCSL writes items as a CSL-YAML list to w.
func WriteCSL(w io.Writer, items []CSLItem) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encoding CSL: %w", err)
	}
	return enc.Close()
}

// parseAuthorName splits a full name into CSL family/given parts on the
// last space. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
