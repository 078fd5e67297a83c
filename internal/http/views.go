package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/goliatone/go-blog/posts"
)

//go:embed templates/*.html
var templateFS embed.FS

var views = template.Must(template.New("views").ParseFS(templateFS, "templates/*.html"))

type postItem struct {
	Title     string
	Slug      string
	CreatedAt time.Time
	URL       string
	EditURL   string
}

type listView struct {
	Posts    []postItem
	Admin    bool
	AdminURL string
}

type postView struct {
	Title     string
	CreatedAt time.Time
	Body      template.HTML
	BackURL   string
}

type formView struct {
	Action string
	Values postForm
	Errors FieldErrors
	IsNew  bool
}

type adminView struct {
	Posts     []postItem
	Form      *formView
	NewURL    string
	PostsURL  string
	LogoutURL string
}

type loginView struct {
	Action string
	Error  string
}

type notFoundView struct {
	Slug string
}

func (s *Server) postItems(records []*posts.Post) []postItem {
	items := make([]postItem, 0, len(records))
	for _, record := range records {
		items = append(items, postItem{
			Title:     record.Title,
			Slug:      record.Slug,
			CreatedAt: record.CreatedAt,
			URL:       s.urls.Post(record.Slug),
			EditURL:   s.urls.AdminEdit(record.Slug),
		})
	}
	return items
}

// render buffers the template execution so a failure mid-render can still
// fall back to the generic error page with clean headers.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := views.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("http.render.failed", "template", name, "error", err)
		http.Error(w, "Oh no, something went wrong!", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
