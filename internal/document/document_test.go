// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citeguard/pkg/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type converterFunc func(ctx context.Context, path string) (string, error)

func (f converterFunc) Convert(ctx context.Context, path string) (string, error) { return f(ctx, path) }

// fakeRuntime echoes stdin back with a prefix.
type fakeRuntime struct {
	hasImage bool
	output   string
}

func (f *fakeRuntime) Name() string { return "docker" }

func (f *fakeRuntime) ImageExists(_ context.Context, image string) error {
	if !f.hasImage {
		return fmt.Errorf("image %s not found", image)
	}
	return nil
}

func (f *fakeRuntime) Run(_ context.Context, _ string, stdin io.Reader, stdout io.Writer) error {
	if f.output != "" {
		_, err := io.WriteString(stdout, f.output)
		return err
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "# converted\n\n%s", data)
	return err
}

func TestLoadText(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		content    string
		wantTitle  string
		wantFormat Format
		wantText   string
	}{
		{"plain text", "my_essay.txt", "The cat sat.", "my essay", FormatText, "The cat sat."},
		{"markdown", "draft-two.md", "# Intro\n\nBody", "draft two", FormatMarkdown, "# Intro\n\nBody"},
		{"uppercase extension", "NOTES.TXT", "note", "NOTES", FormatText, "note"},
		{
			"html",
			"page.html",
			`<html><head><title>Tom &amp; Jerry</title><style>p{}</style></head>
<body><script>var x=1;</script><h1>Heading</h1><p>First   para</p><!-- hidden --><p>Second<br/>line</p></body></html>`,
			"Tom & Jerry",
			FormatHTML,
			"Heading\nFirst para\nSecond\nline",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			doc, err := NewLoader(types.DocumentConfig{}).Load(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, doc.Title)
			assert.Equal(t, tt.wantFormat, doc.Format)
			assert.Equal(t, tt.wantText, doc.Text)
		})
	}
}

func TestLoadUnsupported(t *testing.T) {
	path := writeFile(t, "sheet.xlsx", "x")
	_, err := NewLoader(types.DocumentConfig{}).Load(context.Background(), path)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader(types.DocumentConfig{}).Load(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestLoadTooLong(t *testing.T) {
	l := NewLoader(types.DocumentConfig{MaxLength: 5})

	path := writeFile(t, "long.txt", "abcdef")
	_, err := l.Load(context.Background(), path)
	assert.ErrorIs(t, err, ErrTooLong)

	// Length counts characters, not bytes.
	path = writeFile(t, "runes.txt", "héllo")
	_, err = l.Load(context.Background(), path)
	assert.NoError(t, err)
}

func TestLoadSourceIgnoresMaxLength(t *testing.T) {
	l := NewLoader(types.DocumentConfig{})
	path := writeFile(t, "book.txt", strings.Repeat("a", DefaultMaxLength+5))

	_, err := l.Load(context.Background(), path)
	require.ErrorIs(t, err, ErrTooLong)

	doc, err := l.LoadSource(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, doc.Text, DefaultMaxLength+5)
	assert.Equal(t, "book", doc.Title)
}

func TestDefaultMaxLength(t *testing.T) {
	l := NewLoader(types.DocumentConfig{})
	assert.NoError(t, l.Check(strings.Repeat("a", DefaultMaxLength)))
	assert.ErrorIs(t, l.Check(strings.Repeat("a", DefaultMaxLength+1)), ErrTooLong)
}

func TestLoadPDFUsesConverter(t *testing.T) {
	path := writeFile(t, "paper.pdf", "%PDF-1.4")
	var calls int
	conv := converterFunc(func(_ context.Context, p string) (string, error) {
		calls++
		assert.Equal(t, path, p)
		return "extracted text", nil
	})
	l := NewLoader(types.DocumentConfig{}, WithConverter(conv))

	doc, err := l.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "extracted text", doc.Text)
	assert.Equal(t, FormatPDF, doc.Format)
	assert.Equal(t, "paper", doc.Title)

	_, err = l.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestLoadDOCXConverterError(t *testing.T) {
	path := writeFile(t, "report.docx", "PK")
	boom := errors.New("container exited")
	l := NewLoader(types.DocumentConfig{}, WithConverter(converterFunc(func(context.Context, string) (string, error) {
		return "", boom
	})))
	_, err := l.Load(context.Background(), path)
	assert.ErrorIs(t, err, boom)
}

func TestMarkitdownConverter(t *testing.T) {
	path := writeFile(t, "paper.pdf", "raw bytes")

	t.Run("image missing", func(t *testing.T) {
		_, err := NewMarkitdownConverter(context.Background(), &fakeRuntime{}, DefaultImage)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "markitdown image not available in docker")
	})

	t.Run("converts", func(t *testing.T) {
		c, err := NewMarkitdownConverter(context.Background(), &fakeRuntime{hasImage: true}, DefaultImage)
		require.NoError(t, err)
		out, err := c.Convert(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "# converted\n\nraw bytes", out)
	})

	t.Run("empty output", func(t *testing.T) {
		c, err := NewMarkitdownConverter(context.Background(), &fakeRuntime{hasImage: true, output: "  \n"}, DefaultImage)
		require.NoError(t, err)
		_, err = c.Convert(context.Background(), path)
		assert.ErrorContains(t, err, "empty output")
	})
}

func TestSections(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "headings",
			in:   "preamble\n# One\nalpha\n\nbeta\n## Two\ngamma\n",
			want: []string{"preamble", "# One\nalpha\n\nbeta", "## Two\ngamma"},
		},
		{
			name: "paragraphs",
			in:   "first para\nstill first\n\n\nsecond para\r\n\r\nthird",
			want: []string{"first para\nstill first", "second para", "third"},
		},
		{
			name: "blank",
			in:   " \n\n ",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sections(tt.in))
		})
	}
}

func TestDocumentSource(t *testing.T) {
	d := Document{Title: "t", Text: "body"}
	assert.Equal(t, types.SourceText{Title: "t", Content: "body"}, d.Source())
}
