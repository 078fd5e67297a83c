package posts

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunPostRepository implements PostRepository on top of go-repository-bun.
type BunPostRepository struct {
	repo repository.Repository[*Post]
}

// NewBunPostRepository constructs a post repository bound to the supplied DB.
func NewBunPostRepository(db *bun.DB) *BunPostRepository {
	return &BunPostRepository{repo: NewPostRepository(db)}
}

func (r *BunPostRepository) Create(ctx context.Context, record *Post) (*Post, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "post", record.Slug)
	}
	return created, nil
}

func (r *BunPostRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "post", slug)
	}
	return result, nil
}

// List returns every post ordered by creation time, slug breaking ties, so
// listings stay deterministic across stores.
func (r *BunPostRepository) List(ctx context.Context) ([]*Post, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.created_at ASC, ?TableAlias.slug ASC")
	}))
	if err != nil {
		return nil, fmt.Errorf("post repository error: %w", err)
	}
	return records, nil
}

// Update rewrites the row addressed by rowID. The id column is part of the
// update because renames rekey the record.
func (r *BunPostRepository) Update(ctx context.Context, record *Post, rowID uuid.UUID) (*Post, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(rowID.String()),
		repository.UpdateColumns(
			"id",
			"slug",
			"title",
			"markdown",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "post", record.Slug)
	}
	return updated, nil
}

func (r *BunPostRepository) Delete(ctx context.Context, record *Post) error {
	if err := r.repo.Delete(ctx, record); err != nil {
		return mapRepositoryError(err, "post", record.Slug)
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	// Unique-index violations back the service's slug pre-check; the race
	// loser gets the same conflict the pre-check would have reported.
	if goerrors.IsCategory(err, repository.CategoryDatabaseDuplicate) {
		return &ConflictError{Slug: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
