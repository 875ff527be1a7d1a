// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/citeguard/internal/citation"
	"github.com/pdiddy/citeguard/pkg/types"
)

// ExportFormat selects the file layout written by Export.
type ExportFormat string

const (
	ExportYAML ExportFormat = "yaml"
	ExportJSON ExportFormat = "json"
	ExportCSL  ExportFormat = "csl"
)

// ExportEntry is a source's metadata as written to YAML and JSON exports.
// Full text is left out.
type ExportEntry struct {
	ID string `json:"id" yaml:"id"`

	types.SourceMetadata `yaml:",inline"`
}

// Export writes every source to dir in the given format and returns the
// path written. An empty dir writes next to the database.
func (s *Store) Export(ctx context.Context, format ExportFormat, dir string) (string, error) {
	if dir == "" {
		dir = s.dir
	}
	sources, err := s.ListSources(ctx, 0)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}

	var (
		name string
		data []byte
	)
	switch format {
	case ExportYAML:
		name = "export.yaml"
		data, err = yaml.Marshal(exportEntries(sources))
	case ExportJSON:
		name = "export.json"
		data, err = json.MarshalIndent(exportEntries(sources), "", "  ")
	case ExportCSL:
		name = "references.yaml"
		items := make([]citation.CSLItem, len(sources))
		for i, src := range sources {
			items[i] = citation.ToCSL(src.ID, src.SourceMetadata)
		}
		var buf bytes.Buffer
		err = citation.WriteCSL(&buf, items)
		data = buf.Bytes()
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("marshaling %s: %w", format, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func exportEntries(sources []Source) []ExportEntry {
	entries := make([]ExportEntry, len(sources))
	for i, src := range sources {
		entries[i] = ExportEntry{ID: src.ID, SourceMetadata: src.SourceMetadata}
	}
	return entries
}
