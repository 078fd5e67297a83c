package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/goliatone/go-blog/internal/auth"
	"github.com/goliatone/go-blog/posts"
)

// fieldErrorsFor translates service-level input failures into inline field
// messages. Slug conflicts are shown on the form like any other field error
// rather than as a transport failure.
func fieldErrorsFor(err error) (FieldErrors, bool) {
	switch {
	case posts.IsConflict(err):
		return FieldErrors{Slug: stringPtr("slug already exists")}, true
	case errors.Is(err, posts.ErrSlugInvalid):
		return FieldErrors{Slug: stringPtr("slug contains invalid characters")}, true
	case errors.Is(err, posts.ErrTitleRequired):
		return FieldErrors{Title: stringPtr("Title is required")}, true
	case errors.Is(err, posts.ErrSlugRequired):
		return FieldErrors{Slug: stringPtr("slug is required")}, true
	case errors.Is(err, posts.ErrMarkdownRequired):
		return FieldErrors{Markdown: stringPtr("markdown is required")}, true
	}
	return FieldErrors{}, false
}

// renderError is the top-level boundary: not-found renders its own page with
// the offending slug, auth failures bounce to the login entry point, and
// anything else becomes a generic error page with the detail kept in logs.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *posts.NotFoundError
	if errors.As(err, &notFound) {
		s.renderNotFound(w, notFound.Key)
		return
	}

	if errors.Is(err, auth.ErrNotAuthenticated) || errors.Is(err, auth.ErrNotAdmin) {
		s.redirectLogin(w, r)
		return
	}

	s.logger.Error("http.request.failed", "path", r.URL.Path, "error", err)
	s.render(w, http.StatusInternalServerError, "error.html", nil)
}

func (s *Server) renderNotFound(w http.ResponseWriter, slug string) {
	s.render(w, http.StatusNotFound, "not_found.html", notFoundView{Slug: slug})
}

func (s *Server) redirectLogin(w http.ResponseWriter, r *http.Request) {
	target := s.urls.Login()
	if r.Method == http.MethodGet && r.URL.Path != "" {
		target += "?next=" + url.QueryEscape(r.URL.Path)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
