package resource

import (
	"os"
	"strings"
	"testing"
)

func fixedReader(files map[string]string) ReadFunc {
	return func(path string) ([]byte, error) {
		content, ok := files[path]
		if !ok {
			return nil, os.ErrNotExist
		}
		return []byte(content), nil
	}
}

func TestGet_Markdown(t *testing.T) {
	l := NewTransformLoader(fixedReader(map[string]string{
		"tpl.md": "# Hello World\n\nThis is a *test*.",
	}))

	out, err := l.Get("tpl.md")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if !strings.HasPrefix(out, "export default ") {
		t.Error("expected a default-exporting module")
	}
	if !strings.Contains(out, "Hello World") {
		t.Error("expected rendered heading text in module source")
	}
	if !strings.Contains(out, "<em>") {
		t.Error("expected rendered emphasis markup in module source")
	}
}

func TestGet_Stylesheet(t *testing.T) {
	l := NewTransformLoader(fixedReader(map[string]string{
		"app.css": ".title { color: red; }",
	}))

	out, err := l.Get("app.css")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !strings.HasPrefix(out, "export default ") {
		t.Error("expected a default-exporting module")
	}
	if !strings.Contains(out, ".title { color: red; }") {
		t.Errorf("expected stylesheet embedded verbatim, got %q", out)
	}
}

func TestGet_Missing(t *testing.T) {
	l := NewTransformLoader(fixedReader(nil))

	if _, err := l.Get("missing.md"); err == nil {
		t.Error("expected error for missing resource")
	}
}
