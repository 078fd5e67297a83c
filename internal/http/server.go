package http

import (
	"errors"
	"net/http"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-blog/internal/auth"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/posts"
)

// ServerConfig wires the collaborators the HTTP surface depends on.
type ServerConfig struct {
	Posts    posts.Service
	Renderer *markdown.Renderer
	Sessions *auth.Sessions
	URLs     *URLBuilder
	Logger   logging.Logger
}

// Server renders the public blog pages and the admin workflow.
type Server struct {
	posts    posts.Service
	renderer *markdown.Renderer
	sessions *auth.Sessions
	urls     *URLBuilder
	logger   logging.Logger
}

// NewServer validates the configuration and builds the HTTP surface.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Posts == nil {
		return nil, errors.New("http: post service is required")
	}
	if cfg.Renderer == nil {
		return nil, errors.New("http: markdown renderer is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("http: session manager is required")
	}

	urls := cfg.URLs
	if urls == nil {
		urls = NewURLBuilder("")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Server{
		posts:    cfg.Posts,
		renderer: cfg.Renderer,
		sessions: cfg.Sessions,
		urls:     urls,
		logger:   logger,
	}, nil
}

// Routes registers every handler on the supplied mux. Static path segments
// win over wildcards, so /posts/admin/new never reaches the slug handlers.
func (s *Server) Routes(mux *http.ServeMux) {
	if mux == nil {
		return
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /posts", s.handlePostList)
	mux.HandleFunc("GET /posts/{slug}", s.handlePostShow)

	mux.HandleFunc("GET /posts/admin", s.handleAdminList)
	mux.HandleFunc("GET /posts/admin/new", s.handleAdminNew)
	mux.HandleFunc("GET /posts/admin/{slug}", s.handleAdminEdit)
	mux.HandleFunc("POST /posts/admin/new", s.handleAdminCreate)
	mux.HandleFunc("POST /posts/admin/{slug}", s.handleAdminAction)

	mux.HandleFunc("GET /login", s.handleLoginForm)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)
}

// Handler returns the routed handler wrapped with the session middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Routes(mux)
	return auth.Middleware(s.sessions)(mux)
}

// URLBuilder resolves application routes through go-urlkit so redirects and
// template links share one definition.
type URLBuilder struct {
	group *urlkit.Group
}

// NewURLBuilder constructs the route manager for the blog surface. baseURL
// may be empty for host-relative links.
func NewURLBuilder(baseURL string) *URLBuilder {
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    "blog",
				BaseURL: baseURL,
				Paths: map[string]string{
					"posts":      "/posts",
					"post":       "/posts/:slug",
					"admin":      "/posts/admin",
					"admin_new":  "/posts/admin/new",
					"admin_edit": "/posts/admin/:slug",
					"login":      "/login",
					"logout":     "/logout",
				},
			},
		},
	})
	return &URLBuilder{group: manager.Group("blog")}
}

func (b *URLBuilder) build(route string, params map[string]any) string {
	builder := b.group.Builder(route)
	for key, value := range params {
		builder.WithParam(key, value)
	}
	url, err := builder.Build()
	if err != nil {
		return "/"
	}
	return url
}

// Posts returns the public listing URL.
func (b *URLBuilder) Posts() string { return b.build("posts", nil) }

// Post returns the public URL for a slug.
func (b *URLBuilder) Post(slug string) string {
	return b.build("post", map[string]any{"slug": slug})
}

// Admin returns the admin listing URL.
func (b *URLBuilder) Admin() string { return b.build("admin", nil) }

// AdminNew returns the create form URL.
func (b *URLBuilder) AdminNew() string { return b.build("admin_new", nil) }

// AdminEdit returns the edit form URL for a slug.
func (b *URLBuilder) AdminEdit(slug string) string {
	return b.build("admin_edit", map[string]any{"slug": slug})
}

// Login returns the session entry URL.
func (b *URLBuilder) Login() string { return b.build("login", nil) }

// Logout returns the session exit URL.
func (b *URLBuilder) Logout() string { return b.build("logout", nil) }
