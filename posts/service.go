package posts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service exposes the post management use-cases.
type Service interface {
	Get(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context) ([]*Post, error)
	Create(ctx context.Context, req CreatePostRequest) (*Post, error)
	Update(ctx context.Context, req UpdatePostRequest) (*Post, error)
	Delete(ctx context.Context, req DeletePostRequest) error
}

// PostRepository abstracts storage operations for post entities. Update
// addresses the row by rowID because a rename rekeys the record: the stored
// primary key changes along with the slug.
type PostRepository interface {
	Create(ctx context.Context, record *Post) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context) ([]*Post, error)
	Update(ctx context.Context, record *Post, rowID uuid.UUID) (*Post, error)
	Delete(ctx context.Context, record *Post) error
}

// IDGenerator derives the primary key for a new post from its slug.
type IDGenerator func(slug string) uuid.UUID

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides how primary keys are derived for new posts.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// service implements Service.
type service struct {
	repo PostRepository
	now  func() time.Time
	id   IDGenerator
}

// NewService constructs a post service backed by the supplied repository.
func NewService(repo PostRepository, opts ...ServiceOption) Service {
	s := &service{
		repo: repo,
		now:  time.Now,
		id:   func(string) uuid.UUID { return uuid.New() },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get fetches a post by its slug. Missing records surface as *NotFoundError.
func (s *service) Get(ctx context.Context, slug string) (*Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrPostRequired
	}
	return s.repo.GetBySlug(ctx, slug)
}

// List returns all posts in the repository's stable order.
func (s *service) List(ctx context.Context) ([]*Post, error) {
	return s.repo.List(ctx)
}

// Create validates the supplied fields and persists a new post. A slug held
// by an existing post fails with *ConflictError and leaves that record
// untouched.
func (s *service) Create(ctx context.Context, req CreatePostRequest) (*Post, error) {
	fields, err := normalizeFields(PostFields{
		Title:    req.Title,
		Slug:     req.Slug,
		Markdown: req.Markdown,
	})
	if err != nil {
		return nil, err
	}

	if err := s.ensureSlugFree(ctx, fields.Slug); err != nil {
		return nil, err
	}

	now := s.now()
	record := &Post{
		ID:        s.id(fields.Slug),
		Slug:      fields.Slug,
		Title:     fields.Title,
		Markdown:  fields.Markdown,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.repo.Create(ctx, record)
}

// Update replaces the title, slug, and markdown of the post addressed by the
// request's original slug. CreatedAt is preserved; the slug may change. A
// rename also rekeys the record so the primary key keeps tracking the slug
// and a later create under the freed slug cannot collide on the old key.
func (s *service) Update(ctx context.Context, req UpdatePostRequest) (*Post, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		return nil, ErrPostRequired
	}

	fields, err := normalizeFields(req.Fields)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	rowID := record.ID
	if fields.Slug != record.Slug {
		if err := s.ensureSlugFree(ctx, fields.Slug); err != nil {
			return nil, err
		}
		record.ID = s.id(fields.Slug)
	}

	record.Slug = fields.Slug
	record.Title = fields.Title
	record.Markdown = fields.Markdown
	record.UpdatedAt = s.now()

	return s.repo.Update(ctx, record, rowID)
}

// Delete removes the post addressed by the request's slug. Deleting a slug
// that does not exist fails with *NotFoundError.
func (s *service) Delete(ctx context.Context, req DeletePostRequest) error {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		return ErrPostRequired
	}

	record, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, record)
}

func (s *service) ensureSlugFree(ctx context.Context, slug string) error {
	existing, err := s.repo.GetBySlug(ctx, slug)
	if err == nil && existing != nil {
		return &ConflictError{Slug: slug}
	}
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

func normalizeFields(fields PostFields) (PostFields, error) {
	fields.Title = strings.TrimSpace(fields.Title)
	fields.Slug = strings.TrimSpace(fields.Slug)
	fields.Markdown = strings.TrimSpace(fields.Markdown)

	if fields.Title == "" {
		return PostFields{}, ErrTitleRequired
	}
	if fields.Slug == "" {
		return PostFields{}, ErrSlugRequired
	}
	if !IsValidSlug(fields.Slug) {
		return PostFields{}, ErrSlugInvalid
	}
	if fields.Markdown == "" {
		return PostFields{}, ErrMarkdownRequired
	}

	return fields, nil
}
