package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	blog "github.com/goliatone/go-blog"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("blog: %v", err)
	}
}

func run(args []string) error {
	cfg := blog.DefaultConfig()

	fs := flag.NewFlagSet("blog", flag.ExitOnError)
	fs.StringVar(&cfg.HTTP.Addr, "addr", envOr("BLOG_ADDR", cfg.HTTP.Addr), "Address the HTTP server listens on")
	fs.StringVar(&cfg.HTTP.BaseURL, "base-url", envOr("BLOG_BASE_URL", cfg.HTTP.BaseURL), "Public base URL used when building links")
	fs.StringVar(&cfg.Database.Driver, "db-driver", envOr("BLOG_DB_DRIVER", cfg.Database.Driver), "Database driver (sqlite3 or postgres)")
	fs.StringVar(&cfg.Database.DSN, "db-dsn", envOr("BLOG_DB_DSN", cfg.Database.DSN), "Database DSN")
	fs.StringVar(&cfg.Auth.AdminEmail, "admin-email", os.Getenv("BLOG_ADMIN_EMAIL"), "Admin account email")
	fs.StringVar(&cfg.Auth.AdminPasswordHash, "admin-password-hash", os.Getenv("BLOG_ADMIN_PASSWORD_HASH"), "Bcrypt hash of the admin password")
	fs.StringVar(&cfg.Auth.SessionSecret, "session-secret", os.Getenv("BLOG_SESSION_SECRET"), "Secret used to sign session cookies")
	fs.BoolVar(&cfg.Auth.SecureCookies, "secure-cookies", os.Getenv("BLOG_SECURE_COOKIES") == "true", "Mark session cookies as Secure")
	fs.StringVar(&cfg.Logging.Level, "log-level", envOr("BLOG_LOG_LEVEL", cfg.Logging.Level), "Log level")
	fs.StringVar(&cfg.Logging.Format, "log-format", envOr("BLOG_LOG_FORMAT", cfg.Logging.Format), "Log format (json, console, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := blog.New(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           module.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stdout, "blog listening on %s\n", cfg.HTTP.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
