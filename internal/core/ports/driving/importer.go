package driving

import (
	"context"

	"github.com/custodia-labs/mailblocks/internal/core/domain"
)

// ImportService turns raw markup into a Block tree.
type ImportService interface {
	// Import runs preprocessing, parsing and conversion.
	// Every failure is a *domain.ImportError.
	Import(ctx context.Context, markup string) (*domain.ImportResult, error)

	// Preprocess returns the repaired markup without parsing it.
	Preprocess(markup string) string
}
