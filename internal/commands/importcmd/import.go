package importcmd

import (
	"context"
	"errors"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
)

const importDirectoryMessageType = "blog.markdown.import_directory"

// ErrImporterRequired is returned when a handler is constructed without an importer.
var ErrImporterRequired = errors.New("import command: importer is required")

// ImportDirectoryCommand triggers a filesystem walk for markdown documents
// under the provided Directory, creating or updating one post per document.
type ImportDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to load markdown files from.
	Directory string `json:"directory"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("blog.markdown.import_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

var _ command.Commander[ImportDirectoryCommand] = (*ImportDirectoryHandler)(nil)

// ImportDirectoryHandler executes markdown imports against the post service.
type ImportDirectoryHandler struct {
	importer *markdown.Importer
	logger   logging.Logger
}

// NewImportDirectoryHandler creates a handler bound to the supplied importer.
func NewImportDirectoryHandler(importer *markdown.Importer, logger logging.Logger) *ImportDirectoryHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &ImportDirectoryHandler{
		importer: importer,
		logger:   logger,
	}
}

// Execute satisfies command.Commander[ImportDirectoryCommand].
func (h *ImportDirectoryHandler) Execute(ctx context.Context, msg ImportDirectoryCommand) error {
	if h.importer == nil {
		return ErrImporterRequired
	}
	if err := command.ValidateMessage(msg); err != nil {
		return err
	}

	result, err := h.importer.ImportDirectory(ctx, os.DirFS(msg.Directory), ".")
	if err != nil {
		h.logger.Error("blog.command.import_directory.failed", "directory", msg.Directory, "error", err)
		return err
	}

	h.logger.Info("blog.command.import_directory.completed",
		"directory", msg.Directory,
		"created_count", len(result.Created),
		"updated_count", len(result.Updated),
		"error_count", len(result.Errors),
	)
	if len(result.Errors) > 0 {
		return result.Errors[0]
	}
	return nil
}
