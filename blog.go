package blog

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-blog/internal/auth"
	bloghttp "github.com/goliatone/go-blog/internal/http"
	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/posts"
)

// PostService exports the post service contract for consumers of the blog package.
type PostService = posts.Service

// Post exports the post entity.
type Post = posts.Post

// Module is the top level blog runtime: storage, services, and HTTP surface.
type Module struct {
	config   Config
	db       *bun.DB
	ownsDB   bool
	posts    posts.Service
	renderer *markdown.Renderer
	importer *markdown.Importer
	sessions *auth.Sessions
	server   *bloghttp.Server
	logger   logging.Provider
}

// Option overrides module collaborators at construction time.
type Option func(*Module)

// WithLoggerProvider injects a logger provider instead of the configured one.
func WithLoggerProvider(provider logging.Provider) Option {
	return func(m *Module) {
		if provider != nil {
			m.logger = provider
		}
	}
}

// WithDB injects an existing bun database handle. The module will not close
// injected handles.
func WithDB(db *bun.DB) Option {
	return func(m *Module) {
		if db != nil {
			m.db = db
			m.ownsDB = false
		}
	}
}

// New constructs a blog module using the provided configuration. It opens the
// database, applies migrations, and wires the services and HTTP surface.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{config: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		provider, err := logging.NewGologgerProvider(logging.GologgerConfig{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
		m.logger = provider
	}

	if m.db == nil {
		db, err := openDatabase(cfg.Database)
		if err != nil {
			return nil, err
		}
		m.db = db
		m.ownsDB = true
	}

	if err := RunMigrations(context.Background(), m.db); err != nil {
		if m.ownsDB {
			_ = m.db.Close()
		}
		return nil, err
	}

	repo := posts.NewBunPostRepository(m.db)
	m.posts = posts.NewService(repo, posts.WithIDGenerator(identity.PostUUID))

	m.renderer = markdown.NewRenderer(markdown.Options{
		Extensions: cfg.Markdown.Extensions,
		HardWraps:  cfg.Markdown.HardWraps,
		SafeMode:   cfg.Markdown.SafeMode,
	})

	m.importer = markdown.NewImporter(markdown.ImporterConfig{
		Posts:  m.posts,
		Logger: logging.ModuleLogger(m.logger, "blog.markdown"),
	})

	sessions, err := auth.NewSessions(auth.SessionsConfig{
		Secret:        cfg.Auth.SessionSecret,
		CookieName:    cfg.Auth.SessionCookie,
		TTL:           cfg.Auth.SessionTTL,
		AdminEmail:    cfg.Auth.AdminEmail,
		AdminPassword: cfg.Auth.AdminPasswordHash,
		Secure:        cfg.Auth.SecureCookies,
	})
	if err != nil {
		if m.ownsDB {
			_ = m.db.Close()
		}
		return nil, err
	}
	m.sessions = sessions

	server, err := bloghttp.NewServer(bloghttp.ServerConfig{
		Posts:    m.posts,
		Renderer: m.renderer,
		Sessions: m.sessions,
		URLs:     bloghttp.NewURLBuilder(cfg.HTTP.BaseURL),
		Logger:   logging.ModuleLogger(m.logger, "blog.http"),
	})
	if err != nil {
		if m.ownsDB {
			_ = m.db.Close()
		}
		return nil, err
	}
	m.server = server

	return m, nil
}

// Posts exposes the post service.
func (m *Module) Posts() posts.Service {
	return m.posts
}

// Renderer exposes the markdown renderer.
func (m *Module) Renderer() *markdown.Renderer {
	return m.renderer
}

// Importer exposes the markdown importer.
func (m *Module) Importer() *markdown.Importer {
	return m.importer
}

// Sessions exposes the admin session manager.
func (m *Module) Sessions() *auth.Sessions {
	return m.sessions
}

// Handler returns the HTTP surface with session middleware applied.
func (m *Module) Handler() http.Handler {
	return m.server.Handler()
}

// DB exposes the underlying database handle for advanced integrations.
func (m *Module) DB() *bun.DB {
	return m.db
}

// Close releases the database when the module owns it.
func (m *Module) Close() error {
	if m.db == nil || !m.ownsDB {
		return nil
	}
	return m.db.Close()
}

func openDatabase(cfg DatabaseConfig) (*bun.DB, error) {
	switch strings.TrimSpace(cfg.Driver) {
	case DriverSQLite:
		sqlDB, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		db := bun.NewDB(sqlDB, sqlitedialect.New())
		db.SetMaxOpenConns(1)
		return db, nil
	case DriverPostgres:
		sqlDB, err := sql.Open("pgx", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres database: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, ErrDatabaseDriverUnknown
	}
}
