package driving

import (
	"context"

	"github.com/custodia-labs/mailblocks/internal/core/domain"
)

// TemplateService imports markup and manages the stored results.
type TemplateService interface {
	// Import converts markup and stores it under name.
	// A failed import stores nothing.
	Import(ctx context.Context, req ImportRequest) (*domain.Template, error)

	// Get retrieves a template by ID.
	Get(ctx context.Context, id string) (*domain.Template, error)

	// List returns all stored templates.
	List(ctx context.Context) ([]domain.Template, error)

	// Delete removes a template.
	Delete(ctx context.Context, id string) error
}

// ImportRequest describes markup to import and store.
type ImportRequest struct {
	// ID replaces an existing template when set. Empty creates a new one.
	ID string

	// Name is the template name. Defaults to the source file name.
	Name string

	// SourcePath is where the markup was read from, if a file.
	SourcePath string

	// Markup is the raw input.
	Markup string
}
