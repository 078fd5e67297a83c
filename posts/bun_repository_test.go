package posts_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/pkg/testsupport"
	"github.com/goliatone/go-blog/posts"
)

func seedPost(t *testing.T, repo posts.PostRepository, slug, title string, createdAt time.Time) *posts.Post {
	t.Helper()

	created, err := repo.Create(context.Background(), &posts.Post{
		ID:        identity.PostUUID(slug),
		Slug:      slug,
		Title:     title,
		Markdown:  "# " + title,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("seed post %s: %v", slug, err)
	}
	return created
}

func TestBunRepositoryRoundTrip(t *testing.T) {
	db := testsupport.MustNewBlogDB(t)
	repo := posts.NewBunPostRepository(db)
	ctx := context.Background()

	created := seedPost(t, repo, "hello-world", "Hello World", time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC))

	fetched, err := repo.GetBySlug(ctx, "hello-world")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if fetched.ID != created.ID {
		t.Errorf("expected id %s, got %s", created.ID, fetched.ID)
	}
	if fetched.Title != "Hello World" || fetched.Markdown != "# Hello World" {
		t.Errorf("unexpected record: %+v", fetched)
	}
}

func TestBunRepositoryGetMissing(t *testing.T) {
	db := testsupport.MustNewBlogDB(t)
	repo := posts.NewBunPostRepository(db)

	_, err := repo.GetBySlug(context.Background(), "does-not-exist")

	var notFound *posts.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
	if notFound.Key != "does-not-exist" {
		t.Errorf("expected key to carry the slug, got %q", notFound.Key)
	}
}

func TestBunRepositoryListOrder(t *testing.T) {
	db := testsupport.MustNewBlogDB(t)
	repo := posts.NewBunPostRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seedPost(t, repo, "newest", "Newest", base.Add(48*time.Hour))
	seedPost(t, repo, "oldest", "Oldest", base)
	seedPost(t, repo, "middle", "Middle", base.Add(24*time.Hour))

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(records))
	}

	want := []string{"oldest", "middle", "newest"}
	for i, slug := range want {
		if records[i].Slug != slug {
			t.Errorf("position %d: expected %s, got %s", i, slug, records[i].Slug)
		}
	}
}

func TestBunRepositoryUpdateRename(t *testing.T) {
	db := testsupport.MustNewBlogDB(t)
	repo := posts.NewBunPostRepository(db)
	ctx := context.Background()

	record := seedPost(t, repo, "before", "Before", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	rowID := record.ID
	record.ID = identity.PostUUID("after")
	record.Slug = "after"
	record.Title = "After"
	record.UpdatedAt = time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	if _, err := repo.Update(ctx, record, rowID); err != nil {
		t.Fatalf("update post: %v", err)
	}

	if _, err := repo.GetBySlug(ctx, "before"); !posts.IsNotFound(err) {
		t.Errorf("expected old slug to be gone, got %v", err)
	}

	renamed, err := repo.GetBySlug(ctx, "after")
	if err != nil {
		t.Fatalf("get renamed post: %v", err)
	}
	if renamed.ID != identity.PostUUID("after") {
		t.Errorf("rename must store the rekeyed id, got %s", renamed.ID)
	}
	if renamed.Title != "After" {
		t.Errorf("expected updated title, got %q", renamed.Title)
	}
}

func TestBunRepositoryCreateDuplicateSlugConflict(t *testing.T) {
	db := testsupport.MustNewBlogDB(t)
	repo := posts.NewBunPostRepository(db)
	ctx := context.Background()

	seedPost(t, repo, "taken", "Original", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	// A second writer that passed the service pre-check still loses on the
	// unique index and must see a conflict, not an opaque storage error.
	_, err := repo.Create(ctx, &posts.Post{
		ID:        identity.PostUUID("taken-racer"),
		Slug:      "taken",
		Title:     "Racer",
		Markdown:  "body",
		CreatedAt: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	})
	if !posts.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestServiceRenameThenCreateReusesSlug(t *testing.T) {
	db := testsupport.MustNewBlogDB(t)
	svc := posts.NewService(posts.NewBunPostRepository(db), posts.WithIDGenerator(identity.PostUUID))
	ctx := context.Background()

	if _, err := svc.Create(ctx, posts.CreatePostRequest{
		Title:    "First",
		Slug:     "first",
		Markdown: "body",
	}); err != nil {
		t.Fatalf("create post: %v", err)
	}

	renamed, err := svc.Update(ctx, posts.UpdatePostRequest{
		Slug: "first",
		Fields: posts.PostFields{
			Title:    "First",
			Slug:     "second",
			Markdown: "body",
		},
	})
	if err != nil {
		t.Fatalf("rename post: %v", err)
	}
	if renamed.ID != identity.PostUUID("second") {
		t.Errorf("rename must rekey the stored record, got %s", renamed.ID)
	}

	// The freed slug must be usable again without tripping the primary key.
	recreated, err := svc.Create(ctx, posts.CreatePostRequest{
		Title:    "Fresh",
		Slug:     "first",
		Markdown: "body",
	})
	if err != nil {
		t.Fatalf("create under freed slug: %v", err)
	}
	if recreated.ID != identity.PostUUID("first") {
		t.Errorf("expected deterministic id for the freed slug, got %s", recreated.ID)
	}

	records, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(records))
	}
}

func TestBunRepositoryDelete(t *testing.T) {
	db := testsupport.MustNewBlogDB(t)
	repo := posts.NewBunPostRepository(db)
	ctx := context.Background()

	record := seedPost(t, repo, "gone", "Gone", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	if err := repo.Delete(ctx, record); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if _, err := repo.GetBySlug(ctx, "gone"); !posts.IsNotFound(err) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}
