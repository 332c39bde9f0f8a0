package driven

import (
	"context"

	"github.com/custodia-labs/mailblocks/internal/core/domain"
)

// TemplateStore persists imported templates.
// Backed by SQLite, or memory for tests and ephemeral sessions.
type TemplateStore interface {
	// Save stores or updates a template.
	Save(ctx context.Context, tmpl *domain.Template) error

	// Get retrieves a template by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Template, error)

	// List returns all templates, most recently updated first.
	List(ctx context.Context) ([]domain.Template, error)

	// Delete removes a template.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}
