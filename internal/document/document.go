// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document loads candidate documents and source files as plain text.
// Text and Markdown are read directly, HTML is stripped of markup, and PDF or
// DOCX files are converted through a markitdown container.
package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pdiddy/citeguard/pkg/types"
)

// DefaultMaxLength bounds documents when the configuration leaves it unset.
const DefaultMaxLength = 100000

var (
	// ErrTooLong is returned when a document exceeds the configured length.
	ErrTooLong = errors.New("document too long")

	// ErrUnsupported is returned for file extensions the loader cannot read.
	ErrUnsupported = errors.New("unsupported document format")
)

// Format names how a document's text was obtained.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
)

var formats = map[string]Format{
	"":          FormatText,
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".html":     FormatHTML,
	".htm":      FormatHTML,
	".pdf":      FormatPDF,
	".docx":     FormatDOCX,
}

// Document is a loaded file's plain text.
type Document struct {
	Path   string
	Title  string
	Format Format
	Text   string
}

// Source returns the document as a similarity comparison target.
func (d Document) Source() types.SourceText {
	return types.SourceText{Title: d.Title, Content: d.Text}
}

// Converter extracts text from binary document formats.
type Converter interface {
	Convert(ctx context.Context, path string) (string, error)
}

// Loader reads documents from disk.
type Loader struct {
	maxLength    int
	image        string
	newConverter func(ctx context.Context) (Converter, error)
	logger       *zap.Logger

	once      sync.Once
	converter Converter
	convErr   error
}

// Option configures a Loader.
type Option func(*Loader)

// WithConverter sets the converter used for PDF and DOCX files instead of
// detecting a container runtime on first use.
func WithConverter(c Converter) Option {
	return func(l *Loader) {
		l.newConverter = func(context.Context) (Converter, error) { return c, nil }
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader returns a loader bounded by cfg.MaxLength characters.
func NewLoader(cfg types.DocumentConfig, opts ...Option) *Loader {
	l := &Loader{
		maxLength: cfg.MaxLength,
		image:     cfg.ConverterImage,
		logger:    zap.NewNop(),
	}
	if l.maxLength <= 0 {
		l.maxLength = DefaultMaxLength
	}
	if l.image == "" {
		l.image = DefaultImage
	}
	l.newConverter = func(ctx context.Context) (Converter, error) {
		return DetectMarkitdown(ctx, l.image, l.logger)
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load reads path and returns its text, bounded by the loader's maximum
// length. The title is the HTML title when present, otherwise the file name
// without extension.
func (l *Loader) Load(ctx context.Context, path string) (Document, error) {
	doc, err := l.read(ctx, path)
	if err != nil {
		return Document{}, err
	}
	if err := l.Check(doc.Text); err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadSource is Load without the length bound, for reference material
// such as converted books.
func (l *Loader) LoadSource(ctx context.Context, path string) (Document, error) {
	return l.read(ctx, path)
}

func (l *Loader) read(ctx context.Context, path string) (Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := formats[ext]
	if !ok {
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}

	doc := Document{Path: path, Title: titleFromFilename(path), Format: format}

	switch format {
	case FormatPDF, FormatDOCX:
		conv, err := l.converterFor(ctx)
		if err != nil {
			return Document{}, fmt.Errorf("loading %s: %w", path, err)
		}
		text, err := conv.Convert(ctx, path)
		if err != nil {
			return Document{}, fmt.Errorf("loading %s: %w", path, err)
		}
		doc.Text = text
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return Document{}, fmt.Errorf("reading %s: %w", path, err)
		}
		doc.Text = string(data)
		if format == FormatHTML {
			if t := htmlTitle(doc.Text); t != "" {
				doc.Title = t
			}
			doc.Text = stripHTML(doc.Text)
		}
	}

	l.logger.Debug("document loaded",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("chars", utf8.RuneCountInString(doc.Text)))
	return doc, nil
}

// Check returns ErrTooLong when text exceeds the loader's length bound.
func (l *Loader) Check(text string) error {
	if n := utf8.RuneCountInString(text); n > l.maxLength {
		return fmt.Errorf("%w: %d characters, limit %d", ErrTooLong, n, l.maxLength)
	}
	return nil
}

func (l *Loader) converterFor(ctx context.Context) (Converter, error) {
	l.once.Do(func() {
		l.converter, l.convErr = l.newConverter(ctx)
	})
	return l.converter, l.convErr
}

func titleFromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.NewReplacer("_", " ", "-", " ").Replace(base)
}

// Sections splits text into sections at Markdown headings. Text without
// headings is split into blank-line separated paragraphs. Empty sections
// are dropped.
func Sections(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	hasHeading := false
	for _, line := range lines {
		if isHeading(line) {
			hasHeading = true
			break
		}
	}

	var (
		sections []string
		current  []string
	)
	flush := func() {
		if s := strings.TrimSpace(strings.Join(current, "\n")); s != "" {
			sections = append(sections, s)
		}
		current = current[:0]
	}
	for _, line := range lines {
		switch {
		case hasHeading && isHeading(line):
			flush()
		case !hasHeading && strings.TrimSpace(line) == "":
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return sections
}

func isHeading(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "# ") || strings.HasPrefix(t, "## ") || strings.HasPrefix(t, "### ")
}
