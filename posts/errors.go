package posts

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTitleRequired    = errors.New("posts: title is required")
	ErrSlugRequired     = errors.New("posts: slug is required")
	ErrSlugInvalid      = errors.New("posts: slug contains invalid characters")
	ErrSlugExists       = errors.New("posts: slug already exists")
	ErrMarkdownRequired = errors.New("posts: markdown is required")
	ErrPostRequired     = errors.New("posts: post slug required")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return "record not found"
	}
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// ConflictError captures duplicate slug conflicts surfaced by create.
type ConflictError struct {
	Slug string
}

func (e *ConflictError) Error() string {
	if e == nil {
		return ErrSlugExists.Error()
	}
	slug := strings.TrimSpace(e.Slug)
	if slug != "" {
		return fmt.Sprintf("%s: slug=%s", ErrSlugExists.Error(), slug)
	}
	return ErrSlugExists.Error()
}

func (e *ConflictError) Unwrap() error {
	return ErrSlugExists
}

// IsNotFound reports whether err represents a missing post.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// IsConflict reports whether err represents a duplicate slug.
func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}
