package driven

import "github.com/custodia-labs/mailblocks/internal/core/domain"

// MarkupParser parses repaired markup into a generic element tree.
// Implementations are strict: any syntax violation is returned as an
// error carrying the parser's diagnostic, and no partial tree is returned.
type MarkupParser interface {
	// Parse returns the root element of the document.
	Parse(markup string) (*domain.Element, error)
}
