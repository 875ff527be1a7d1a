// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/citeguard/internal/container"
)

// DefaultImage is the markitdown container image.
const DefaultImage = "markitdown:latest"

// MarkitdownConverter pipes files through the markitdown image on a
// container runtime.
type MarkitdownConverter struct {
	runtime container.Runtime
	image   string
}

// NewMarkitdownConverter checks that image exists in rt.
func NewMarkitdownConverter(ctx context.Context, rt container.Runtime, image string) (*MarkitdownConverter, error) {
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownConverter{runtime: rt, image: image}, nil
}

// DetectMarkitdown finds a container runtime and builds a converter on it.
func DetectMarkitdown(ctx context.Context, image string, logger *zap.Logger) (*MarkitdownConverter, error) {
	rt, err := container.Detect(ctx, logger)
	if err != nil {
		return nil, err
	}
	return NewMarkitdownConverter(ctx, rt, image)
}

// Convert returns the Markdown text markitdown produces for path.
func (m *MarkitdownConverter) Convert(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := m.runtime.Run(ctx, m.image, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with markitdown: %w", path, err)
	}
	if strings.TrimSpace(out.String()) == "" {
		return "", fmt.Errorf("markitdown produced empty output for %s", path)
	}
	return out.String(), nil
}
