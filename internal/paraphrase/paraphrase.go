// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paraphrase rewrites passages flagged by the similarity scorer.
// An LLM rewriter is used when one is configured; the offline rewriter
// covers every other case, including LLM failures.
package paraphrase

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pdiddy/citeguard/pkg/types"
)

// Style selects the register of the rewritten text.
type Style string

const (
	StyleStandard Style = "standard"
	StyleAcademic Style = "academic"
	StyleFormal   Style = "formal"
	StyleCasual   Style = "casual"
	StyleSimple   Style = "simple"
)

// Styles lists every supported style.
var Styles = []Style{StyleStandard, StyleAcademic, StyleFormal, StyleCasual, StyleSimple}

// ParseStyle maps a case-insensitive name to a Style. Unknown names give
// StyleStandard.
func ParseStyle(name string) Style {
	s := Style(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Styles {
		if s == known {
			return s
		}
	}
	return StyleStandard
}

// Rewriter rewrites text in a style.
type Rewriter interface {
	Rewrite(ctx context.Context, text string, style Style) (string, error)
}

// minLength is the shortest text, in characters, worth rewriting.
const minLength = 5

// Result is a rewrite and the method that produced it.
type Result struct {
	Text   string `json:"text" yaml:"text"`
	Style  Style  `json:"style" yaml:"style"`
	Method string `json:"method" yaml:"method"`
}

const (
	MethodLLM   = "llm"
	MethodLocal = "local"
	MethodNone  = "none"
)

// Service chooses between the LLM and local rewriters.
type Service struct {
	llm    Rewriter
	local  Rewriter
	logger *zap.Logger
}

// NewService builds a service. llm may be nil.
func NewService(llm Rewriter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{llm: llm, local: Local{}, logger: logger.With(zap.String("component", "paraphrase"))}
}

// New builds a service from cfg, attaching an LLM rewriter when enabled.
// A rewriter that cannot be built is logged and skipped.
func New(cfg types.ParaphraseConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		return NewService(nil, logger)
	}
	llm, err := NewLLM(cfg, logger)
	if err != nil {
		logger.Warn("LLM paraphrasing unavailable, using local rewriter", zap.Error(err))
		return NewService(nil, logger)
	}
	return NewService(llm, logger)
}

// UsesLLM reports whether an LLM rewriter is attached.
func (s *Service) UsesLLM() bool { return s.llm != nil }

// Paraphrase rewrites text in style. Text shorter than five characters is
// returned unchanged.
func (s *Service) Paraphrase(ctx context.Context, text string, style Style) (Result, error) {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minLength {
		return Result{Text: text, Style: style, Method: MethodNone}, nil
	}

	if s.llm != nil {
		out, err := s.llm.Rewrite(ctx, text, style)
		if err == nil && strings.TrimSpace(out) != "" {
			return Result{Text: out, Style: style, Method: MethodLLM}, nil
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		s.logger.Warn("LLM paraphrasing failed, falling back to local", zap.Error(err))
	}

	out, err := s.local.Rewrite(ctx, text, style)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: out, Style: style, Method: MethodLocal}, nil
}
