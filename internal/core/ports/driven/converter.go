package driven

import "github.com/custodia-labs/mailblocks/internal/core/domain"

// BlockConverter maps a parsed element tree to the typed Block tree.
// It is only called with a diagnostic-free tree whose root is the
// document wrapper.
type BlockConverter interface {
	// Convert returns a freshly allocated block tree.
	Convert(root *domain.Element) (*domain.Block, error)
}
