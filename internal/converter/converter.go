// Package converter maps a parsed element tree to the typed Block tree.
//
// Each element type is resolved once to a domain.ElementCategory.
// Content-preserving categories keep their raw inner markup as content;
// structural elements are walked recursively into child blocks.
package converter

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/mailblocks/internal/core/domain"
	"github.com/custodia-labs/mailblocks/internal/core/ports/driven"
)

// Ensure Converter implements the interface.
var _ driven.BlockConverter = (*Converter)(nil)

// Converter converts parsed elements into blocks.
type Converter struct {
	newID func() string
}

// Option configures the converter.
type Option func(*Converter)

// WithIDFunc replaces the block id generator.
func WithIDFunc(fn func() string) Option {
	return func(c *Converter) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// New creates a converter that assigns random UUIDs to blocks.
func New(opts ...Option) *Converter {
	c := &Converter{
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert returns the block tree for root.
func (c *Converter) Convert(root *domain.Element) (*domain.Block, error) {
	if root == nil {
		return nil, domain.ErrInvalidInput
	}
	return c.convert(root), nil
}

func (c *Converter) convert(el *domain.Element) *domain.Block {
	block := &domain.Block{
		ID:         c.newID(),
		Type:       strings.ToLower(el.Name),
		Attributes: normalizeAttributes(el.Attrs),
	}

	switch domain.CategoryOf(block.Type) {
	case domain.CategoryRichText:
		block.Content = richTextContent(el.Inner)
	case domain.CategoryContent:
		block.Content = strings.TrimSpace(el.Inner)
	case domain.CategoryStructural:
		c.convertChildren(el, block)
	}

	return block
}

// convertChildren fills Children, or Content when there are no child
// elements. Text interleaved with child elements is dropped.
func (c *Converter) convertChildren(el *domain.Element, block *domain.Block) {
	var text strings.Builder
	for _, node := range el.Nodes {
		switch n := node.(type) {
		case *domain.Element:
			block.Children = append(block.Children, c.convert(n))
		case *domain.Text:
			text.WriteString(strings.TrimSpace(n.Data))
		}
	}
	if len(block.Children) == 0 {
		block.Content = text.String()
	}
}

// richTextContent trims inner markup and wraps bare text in a paragraph.
func richTextContent(inner string) string {
	content := strings.TrimSpace(inner)
	if content == "" || strings.HasPrefix(content, "<") {
		return content
	}
	return "<p>" + content + "</p>"
}

func normalizeAttributes(attrs []domain.Attribute) domain.Attributes {
	out := make(domain.Attributes, 0, len(attrs))
	for _, attr := range attrs {
		out.Set(NormalizeAttributeName(attr.Name), attr.Value)
	}
	return out
}

// NormalizeAttributeName converts a hyphen-separated markup name to its
// joined form: background-color becomes backgroundColor. The first
// segment is lower-cased, every later segment has its first letter
// upper-cased, and names without hyphens pass through unchanged.
func NormalizeAttributeName(name string) string {
	if !strings.Contains(name, "-") {
		return name
	}

	segments := strings.Split(name, "-")
	var b strings.Builder
	b.Grow(len(name))
	b.WriteString(strings.ToLower(segments[0]))
	for _, seg := range segments[1:] {
		if seg == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(seg)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(seg[size:])
	}
	return b.String()
}
