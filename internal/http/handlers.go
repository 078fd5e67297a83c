package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-blog/internal/auth"
	"github.com/goliatone/go-blog/posts"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.urls.Posts(), http.StatusSeeOther)
}

func (s *Server) handlePostList(w http.ResponseWriter, r *http.Request) {
	records, err := s.posts.List(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	identity, _ := auth.FromContext(r.Context())
	s.render(w, http.StatusOK, "posts.html", listView{
		Posts:    s.postItems(records),
		Admin:    identity != nil && identity.Admin,
		AdminURL: s.urls.Admin(),
	})
}

func (s *Server) handlePostShow(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(r.PathValue("slug"))
	if slug == "" {
		// Unreachable given the route pattern; kept as a boundary check.
		s.renderNotFound(w, slug)
		return
	}

	record, err := s.posts.Get(r.Context(), slug)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	s.render(w, http.StatusOK, "post.html", postView{
		Title:     record.Title,
		CreatedAt: record.CreatedAt,
		Body:      s.renderer.Render(record.Markdown),
		BackURL:   s.urls.Posts(),
	})
}

func (s *Server) handleAdminList(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r.Context()); err != nil {
		s.redirectLogin(w, r)
		return
	}

	records, err := s.posts.List(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	s.render(w, http.StatusOK, "admin.html", s.adminView(records, nil))
}

func (s *Server) handleAdminNew(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r.Context()); err != nil {
		s.redirectLogin(w, r)
		return
	}

	records, err := s.posts.List(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	s.render(w, http.StatusOK, "admin.html", s.adminView(records, &formView{
		Action: s.urls.AdminNew(),
		IsNew:  true,
	}))
}

func (s *Server) handleAdminEdit(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r.Context()); err != nil {
		s.redirectLogin(w, r)
		return
	}

	slug := strings.TrimSpace(r.PathValue("slug"))
	record, err := s.posts.Get(r.Context(), slug)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	records, err := s.posts.List(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	s.render(w, http.StatusOK, "admin.html", s.adminView(records, &formView{
		Action: s.urls.AdminEdit(record.Slug),
		Values: postForm{
			Title:    record.Title,
			Slug:     record.Slug,
			Markdown: record.Markdown,
		},
	}))
}

// handleAdminCreate persists a new post from the create form.
func (s *Server) handleAdminCreate(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r.Context()); err != nil {
		s.redirectLogin(w, r)
		return
	}

	form, err := parsePostForm(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	if form.Intent != IntentCreate {
		http.Error(w, "unsupported intent", http.StatusBadRequest)
		return
	}

	if fieldErrs := form.validate(); fieldErrs.HasErrors() {
		s.rerenderForm(w, r, formView{Action: s.urls.AdminNew(), Values: form, Errors: fieldErrs, IsNew: true})
		return
	}

	_, err = s.posts.Create(r.Context(), posts.CreatePostRequest{
		Title:    form.Title,
		Slug:     form.Slug,
		Markdown: form.Markdown,
	})
	if err != nil {
		if fieldErrs, ok := fieldErrorsFor(err); ok {
			s.rerenderForm(w, r, formView{Action: s.urls.AdminNew(), Values: form, Errors: fieldErrs, IsNew: true})
			return
		}
		s.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, s.urls.Admin(), http.StatusSeeOther)
}

// handleAdminAction updates or deletes the post addressed by the route slug,
// discriminated by the submitted intent. Delete skips field validation.
func (s *Server) handleAdminAction(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r.Context()); err != nil {
		s.redirectLogin(w, r)
		return
	}

	slug := strings.TrimSpace(r.PathValue("slug"))
	form, err := parsePostForm(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	if form.Intent == IntentDelete {
		if err := s.posts.Delete(r.Context(), posts.DeletePostRequest{Slug: slug}); err != nil {
			s.renderError(w, r, err)
			return
		}
		http.Redirect(w, r, s.urls.Admin(), http.StatusSeeOther)
		return
	}

	if form.Intent != IntentUpdate {
		http.Error(w, "unsupported intent", http.StatusBadRequest)
		return
	}

	if fieldErrs := form.validate(); fieldErrs.HasErrors() {
		s.rerenderForm(w, r, formView{Action: s.urls.AdminEdit(slug), Values: form, Errors: fieldErrs})
		return
	}

	// The route slug addresses the record; the submitted slug may rename it.
	_, err = s.posts.Update(r.Context(), posts.UpdatePostRequest{
		Slug: slug,
		Fields: posts.PostFields{
			Title:    form.Title,
			Slug:     form.Slug,
			Markdown: form.Markdown,
		},
	})
	if err != nil {
		if fieldErrs, ok := fieldErrorsFor(err); ok {
			s.rerenderForm(w, r, formView{Action: s.urls.AdminEdit(slug), Values: form, Errors: fieldErrs})
			return
		}
		s.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, s.urls.Admin(), http.StatusSeeOther)
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "login.html", loginView{Action: s.urls.Login()})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, err)
		return
	}

	identity, err := s.sessions.Login(r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		s.render(w, http.StatusOK, "login.html", loginView{
			Action: s.urls.Login(),
			Error:  "Invalid email or password",
		})
		return
	}

	if err := s.sessions.Issue(w, identity); err != nil {
		s.renderError(w, r, err)
		return
	}

	next := strings.TrimSpace(r.URL.Query().Get("next"))
	if next == "" || !strings.HasPrefix(next, "/") {
		next = s.urls.Admin()
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Clear(w)
	http.Redirect(w, r, s.urls.Posts(), http.StatusSeeOther)
}

func (s *Server) adminView(records []*posts.Post, form *formView) adminView {
	return adminView{
		Posts:     s.postItems(records),
		Form:      form,
		NewURL:    s.urls.AdminNew(),
		PostsURL:  s.urls.Posts(),
		LogoutURL: s.urls.Logout(),
	}
}

// rerenderForm responds with the admin page and inline field errors. Errors
// are data here, so the status stays 200.
func (s *Server) rerenderForm(w http.ResponseWriter, r *http.Request, form formView) {
	records, err := s.posts.List(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, http.StatusOK, "admin.html", s.adminView(records, &form))
}
