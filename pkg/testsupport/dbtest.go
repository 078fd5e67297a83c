package testsupport

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-blog/posts"
)

// NewSQLiteMemoryDB opens a shared in-memory sqlite database wrapped in bun.
func NewSQLiteMemoryDB() (*bun.DB, error) {
	sqlDB, err := sql.Open("sqlite3", "file::memory:?cache=shared")
	if err != nil {
		return nil, err
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	return db, nil
}

// MustNewBlogDB opens an in-memory database with the posts schema applied and
// registers cleanup on the test.
func MustNewBlogDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open sqlite memory db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	ctx := context.Background()
	if _, err := db.NewCreateTable().Model((*posts.Post)(nil)).IfNotExists().Exec(ctx); err != nil {
		t.Fatalf("create posts table: %v", err)
	}
	if _, err := db.ExecContext(ctx, "CREATE UNIQUE INDEX IF NOT EXISTS idx_posts_slug_unique ON posts (slug)"); err != nil {
		t.Fatalf("create slug index: %v", err)
	}
	return db
}
