package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/internal/commands/importcmd"
)

func main() {
	if err := runImport(os.Args[1:]); err != nil {
		log.Fatalf("blog import: %v", err)
	}
}

func runImport(args []string) error {
	cfg := blog.DefaultConfig()

	fs := flag.NewFlagSet("blog-import", flag.ExitOnError)
	directory := fs.String("directory", "content", "Directory to load markdown documents from")
	fs.StringVar(&cfg.Database.Driver, "db-driver", envOr("BLOG_DB_DRIVER", cfg.Database.Driver), "Database driver (sqlite3 or postgres)")
	fs.StringVar(&cfg.Database.DSN, "db-dsn", envOr("BLOG_DB_DSN", cfg.Database.DSN), "Database DSN")
	fs.StringVar(&cfg.Logging.Level, "log-level", envOr("BLOG_LOG_LEVEL", cfg.Logging.Level), "Log level")
	fs.StringVar(&cfg.Logging.Format, "log-format", envOr("BLOG_LOG_FORMAT", cfg.Logging.Format), "Log format (json, console, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// The importer only needs storage; auth settings are irrelevant here but
	// config validation still expects them.
	cfg.Auth.AdminEmail = envOr("BLOG_ADMIN_EMAIL", "admin@localhost")
	cfg.Auth.AdminPasswordHash = envOr("BLOG_ADMIN_PASSWORD_HASH", "$2a$10$000000000000000000000uPlaceholderNotAUsableLoginHash0")
	cfg.Auth.SessionSecret = envOr("BLOG_SESSION_SECRET", "import-only")

	module, err := blog.New(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	handler := importcmd.NewImportDirectoryHandler(module.Importer(), nil)
	cmd := importcmd.ImportDirectoryCommand{Directory: *directory}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute import command: %w", err)
	}

	fmt.Fprintln(os.Stdout, "markdown import completed")
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
