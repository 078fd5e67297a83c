package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/posts"
)

var (
	// ErrPostServiceRequired is returned when an importer is used without a post service.
	ErrPostServiceRequired = errors.New("markdown importer: post service is required")
)

// ImporterConfig encapsulates dependencies required to persist markdown documents.
type ImporterConfig struct {
	Posts  posts.Service
	Logger logging.Logger
}

// Importer converts markdown documents on disk into blog posts. Documents may
// carry a frontmatter block with title and slug; both fall back to values
// derived from the file name.
type Importer struct {
	posts  posts.Service
	logger logging.Logger
}

// ImportResult summarizes an import run.
type ImportResult struct {
	Created []string
	Updated []string
	Errors  []error
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) *Importer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{
		posts:  cfg.Posts,
		logger: logger,
	}
}

// ImportDirectory walks filesystem for markdown files and upserts a post per
// document. Per-document failures are collected rather than aborting the run.
func (i *Importer) ImportDirectory(ctx context.Context, filesystem fs.FS, dir string) (*ImportResult, error) {
	if i.posts == nil {
		return nil, ErrPostServiceRequired
	}

	var paths []string
	err := fs.WalkDir(filesystem, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(path.Ext(p), ".md") {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(paths)

	result := &ImportResult{}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := i.importFile(ctx, filesystem, p, result); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", p, err))
			i.logger.Error("markdown.import.document_failed", "path", p, "error", err)
		}
	}

	return result, nil
}

func (i *Importer) importFile(ctx context.Context, filesystem fs.FS, p string, result *ImportResult) error {
	source, err := fs.ReadFile(filesystem, p)
	if err != nil {
		return err
	}

	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return err
	}

	slug := strings.TrimSpace(meta.Slug)
	if slug == "" {
		base := strings.TrimSuffix(path.Base(p), path.Ext(p))
		slug, err = posts.NormalizeSlug(base)
		if err != nil {
			return err
		}
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = fallbackTitle(slug)
	}

	markdown := strings.TrimSpace(string(body))
	fields := posts.PostFields{Title: title, Slug: slug, Markdown: markdown}

	if _, err := i.posts.Get(ctx, slug); err == nil {
		if _, err := i.posts.Update(ctx, posts.UpdatePostRequest{Slug: slug, Fields: fields}); err != nil {
			return err
		}
		result.Updated = append(result.Updated, slug)
		i.logger.Info("markdown.import.updated", "slug", slug, "path", p)
		return nil
	} else if !posts.IsNotFound(err) {
		return err
	}

	if _, err := i.posts.Create(ctx, posts.CreatePostRequest(fields)); err != nil {
		return err
	}
	result.Created = append(result.Created, slug)
	i.logger.Info("markdown.import.created", "slug", slug, "path", p)
	return nil
}

func fallbackTitle(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for idx, word := range words {
		if word == "" {
			continue
		}
		words[idx] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
