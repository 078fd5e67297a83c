package http

import (
	"errors"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Intent discriminates which mutation a form submission performs.
const (
	IntentCreate = "create"
	IntentUpdate = "update"
	IntentDelete = "delete"
)

// postForm is the typed boundary for admin form submissions. Fields are
// trimmed once at parse time so downstream code never re-checks presence.
type postForm struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Markdown string `json:"markdown"`
	Intent   string `json:"intent"`
}

func parsePostForm(r *http.Request) (postForm, error) {
	if err := r.ParseForm(); err != nil {
		return postForm{}, err
	}
	return postForm{
		Title:    strings.TrimSpace(r.PostFormValue("title")),
		Slug:     strings.TrimSpace(r.PostFormValue("slug")),
		Markdown: strings.TrimSpace(r.PostFormValue("markdown")),
		Intent:   strings.TrimSpace(r.PostFormValue("intent")),
	}, nil
}

// FieldErrors carries one message per invalid field. Nil entries mean the
// field passed, mirroring the error map the form re-renders inline.
type FieldErrors struct {
	Title    *string
	Slug     *string
	Markdown *string
}

// HasErrors reports whether any field failed validation.
func (e FieldErrors) HasErrors() bool {
	return e.Title != nil || e.Slug != nil || e.Markdown != nil
}

// validate checks every field independently so all errors surface in a
// single round trip, not just the first.
func (f postForm) validate() FieldErrors {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required.Error("Title is required")),
		validation.Field(&f.Slug, validation.Required.Error("slug is required")),
		validation.Field(&f.Markdown, validation.Required.Error("markdown is required")),
	)

	var fieldErrs FieldErrors
	var issues validation.Errors
	if errors.As(err, &issues) {
		if issue, ok := issues["title"]; ok && issue != nil {
			fieldErrs.Title = stringPtr(issue.Error())
		}
		if issue, ok := issues["slug"]; ok && issue != nil {
			fieldErrs.Slug = stringPtr(issue.Error())
		}
		if issue, ok := issues["markdown"]; ok && issue != nil {
			fieldErrs.Markdown = stringPtr(issue.Error())
		}
	}
	return fieldErrs
}

func stringPtr(value string) *string {
	return &value
}
