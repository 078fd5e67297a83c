package markdown

import (
	"strings"
	"testing"
)

func TestParseFrontMatter(t *testing.T) {
	source := []byte("---\ntitle: Hello World\nslug: hello-world\n---\n# Hello\n")

	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("parse frontmatter: %v", err)
	}
	if meta.Title != "Hello World" {
		t.Errorf("expected title, got %q", meta.Title)
	}
	if meta.Slug != "hello-world" {
		t.Errorf("expected slug, got %q", meta.Slug)
	}
	if got := strings.TrimSpace(string(body)); got != "# Hello" {
		t.Errorf("expected body without delimiters, got %q", got)
	}
}

func TestParseFrontMatterAbsent(t *testing.T) {
	source := []byte("# Just Markdown\n")

	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("parse frontmatter: %v", err)
	}
	if meta.Title != "" || meta.Slug != "" {
		t.Errorf("expected empty metadata, got %+v", meta)
	}
	if got := strings.TrimSpace(string(body)); got != "# Just Markdown" {
		t.Errorf("expected source unchanged, got %q", got)
	}
}
