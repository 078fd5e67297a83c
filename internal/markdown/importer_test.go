package markdown_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/testsupport"
	"github.com/goliatone/go-blog/posts"
)

func newImportTarget(t *testing.T) (posts.Service, *markdown.Importer) {
	t.Helper()

	db := testsupport.MustNewBlogDB(t)
	svc := posts.NewService(posts.NewBunPostRepository(db))
	importer := markdown.NewImporter(markdown.ImporterConfig{Posts: svc})
	return svc, importer
}

func TestImporterCreatesPosts(t *testing.T) {
	svc, importer := newImportTarget(t)

	fsys := testsupport.MarkdownFixtureFS(map[string]string{
		"hello.md":        "---\ntitle: Hello World\nslug: hello-world\n---\n# Hello\n",
		"plain-notes.md":  "# Notes without frontmatter\n",
		"ignore/file.txt": "not markdown",
	})

	result, err := importer.ImportDirectory(context.Background(), fsys, ".")
	if err != nil {
		t.Fatalf("import directory: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no document errors, got %v", result.Errors)
	}
	if len(result.Created) != 2 {
		t.Fatalf("expected 2 created posts, got %v", result.Created)
	}

	post, err := svc.Get(context.Background(), "hello-world")
	if err != nil {
		t.Fatalf("get imported post: %v", err)
	}
	if post.Title != "Hello World" {
		t.Errorf("expected frontmatter title, got %q", post.Title)
	}

	// Slug and title fall back to the file name when frontmatter is absent.
	fallback, err := svc.Get(context.Background(), "plain-notes")
	if err != nil {
		t.Fatalf("get fallback post: %v", err)
	}
	if fallback.Title != "Plain Notes" {
		t.Errorf("expected title derived from file name, got %q", fallback.Title)
	}
}

func TestImporterUpdatesExistingPosts(t *testing.T) {
	svc, importer := newImportTarget(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, posts.CreatePostRequest{
		Title:    "Old Title",
		Slug:     "hello-world",
		Markdown: "old body",
	}); err != nil {
		t.Fatalf("seed post: %v", err)
	}

	fsys := testsupport.MarkdownFixtureFS(map[string]string{
		"hello.md": "---\ntitle: New Title\nslug: hello-world\n---\nnew body\n",
	})

	result, err := importer.ImportDirectory(ctx, fsys, ".")
	if err != nil {
		t.Fatalf("import directory: %v", err)
	}
	if len(result.Updated) != 1 || result.Updated[0] != "hello-world" {
		t.Fatalf("expected update for hello-world, got %+v", result)
	}

	post, err := svc.Get(ctx, "hello-world")
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if post.Title != "New Title" || post.Markdown != "new body" {
		t.Errorf("expected replaced fields, got %+v", post)
	}
}

func TestImporterCollectsDocumentErrors(t *testing.T) {
	svc, importer := newImportTarget(t)

	fsys := testsupport.MarkdownFixtureFS(map[string]string{
		"empty.md": "---\ntitle: Empty\nslug: empty\n---\n",
		"good.md":  "---\ntitle: Good\nslug: good\n---\nbody\n",
	})

	result, err := importer.ImportDirectory(context.Background(), fsys, ".")
	if err != nil {
		t.Fatalf("import directory: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected one document error, got %v", result.Errors)
	}
	if len(result.Created) != 1 || result.Created[0] != "good" {
		t.Fatalf("expected good document imported, got %+v", result)
	}

	if _, err := svc.Get(context.Background(), "good"); err != nil {
		t.Errorf("expected good post stored: %v", err)
	}
}

func TestImporterHonorsContextCancellation(t *testing.T) {
	_, importer := newImportTarget(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fsys := testsupport.MarkdownFixtureFS(map[string]string{
		"hello.md": "---\ntitle: Hello\nslug: hello\n---\nbody\n",
	})

	start := time.Now()
	_, err := importer.ImportDirectory(ctx, fsys, ".")
	if err == nil {
		t.Fatal("expected context error")
	}
	if time.Since(start) > time.Second {
		t.Error("cancelled import should return promptly")
	}
}
