// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve turns a DOI, arXiv ID, or web URL into citable source
// metadata. DOIs are looked up in Crossref, arXiv IDs in the arXiv API,
// and other URLs become website entries titled from the page itself.
// Requests share one paced, retrying HTTP client.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/citeguard/internal/httputil"
	"github.com/pdiddy/citeguard/pkg/types"
)

// Base URLs for metadata lookups. Declared as vars so tests can substitute
// httptest servers.
var (
	crossrefAPIBase = "https://api.crossref.org/works/"
	arxivAPIBase    = "https://export.arxiv.org/api/query"
	arxivAbsBase    = "https://arxiv.org/abs/"
)

// ErrUnrecognized is returned for identifiers that are not a DOI, arXiv ID,
// or http(s) URL.
var ErrUnrecognized = errors.New("unrecognized identifier")

// ErrNotFound is returned when a lookup service has no record.
var ErrNotFound = errors.New("no metadata found")

// Resolver fetches metadata for identifiers.
type Resolver struct {
	client *httputil.Client
	mailTo string
	now    func() time.Time
	logger *zap.Logger
}

// New builds a resolver from cfg. RequestsPerSecond defaults to 1.
func New(cfg types.ResolveConfig, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "citeguard/0.1"
	}
	return &Resolver{
		client: httputil.NewClient(cfg.HTTPConfig, rps, logger),
		mailTo: cfg.MailTo,
		now:    time.Now,
		logger: logger.With(zap.String("component", "resolver")),
	}
}

// Resolve classifies identifier and fetches its metadata.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (types.SourceMetadata, error) {
	kind, norm := Classify(identifier)
	r.logger.Debug("resolving identifier",
		zap.String("identifier", identifier),
		zap.Stringer("kind", kind))

	var (
		m   types.SourceMetadata
		err error
	)
	switch kind {
	case KindDOI:
		m, err = r.crossref(ctx, norm)
	case KindArxiv:
		m, err = r.arxiv(ctx, norm)
	case KindURL:
		m, err = r.website(ctx, norm)
	default:
		return types.SourceMetadata{}, fmt.Errorf("%w: %q", ErrUnrecognized, identifier)
	}
	if err != nil {
		return types.SourceMetadata{}, fmt.Errorf("resolving %s %s: %w", kind, norm, err)
	}
	return m, nil
}
