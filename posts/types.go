package posts

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Post is the canonical record for a blog entry. The slug doubles as the
// public identifier; rendered HTML is derived at read time and never stored.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID        uuid.UUID `bun:",pk,type:uuid"         json:"id"`
	Slug      string    `bun:"slug,notnull,unique"   json:"slug"`
	Title     string    `bun:"title,notnull"         json:"title"`
	Markdown  string    `bun:"markdown,notnull"      json:"markdown"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// PostFields carries the author supplied values for a create or update.
type PostFields struct {
	Title    string
	Slug     string
	Markdown string
}

// CreatePostRequest captures the information required to create a post.
type CreatePostRequest struct {
	Title    string
	Slug     string
	Markdown string
}

// UpdatePostRequest addresses an existing post by its current slug. The
// submitted fields may carry a different slug, which changes the post's
// public identity while preserving its record.
type UpdatePostRequest struct {
	Slug   string
	Fields PostFields
}

// DeletePostRequest captures the information required to remove a post.
type DeletePostRequest struct {
	Slug string
}
