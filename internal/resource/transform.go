package resource

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ReadFunc reads the raw bytes of a file. The loader takes reads as a
// function so generated overlay content is visible to it, not just
// files on disk.
type ReadFunc func(path string) ([]byte, error)

// TransformLoader compiles template and style assets into ES-module
// source: markdown templates are rendered to HTML first, everything
// else is embedded as-is.
type TransformLoader struct {
	read ReadFunc
	md   goldmark.Markdown
}

// NewTransformLoader creates a TransformLoader that reads files
// through the given function.
func NewTransformLoader(read ReadFunc) *TransformLoader {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Strikethrough,
			extension.TaskList,
			highlighting.NewHighlighting(
				highlighting.WithStyle("monokai"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			html.WithUnsafe(),
		),
	)
	return &TransformLoader{read: read, md: md}
}

// Get reads the asset at path and returns its emitted module source.
func (l *TransformLoader) Get(path string) (string, error) {
	data, err := l.read(path)
	if err != nil {
		return "", fmt.Errorf("resource %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		var buf bytes.Buffer
		if err := l.md.Convert(data, &buf); err != nil {
			return "", fmt.Errorf("resource %s: %w", path, err)
		}
		return moduleSource(buf.String()), nil
	default:
		return moduleSource(string(data)), nil
	}
}

// moduleSource wraps content as a default-exporting module so the
// bundler can load the asset like any other unit.
func moduleSource(content string) string {
	return "export default " + strconv.Quote(content) + ";\n"
}
