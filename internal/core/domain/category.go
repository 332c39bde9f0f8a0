package domain

import "strings"

// Element types of the MJML vocabulary referenced by the import pipeline.
const (
	// TypeDocument is the required document wrapper.
	TypeDocument = "mjml"

	TypeHead    = "mj-head"
	TypeBody    = "mj-body"
	TypeSection = "mj-section"
	TypeColumn  = "mj-column"
	TypeImage   = "mj-image"

	// Content-preserving types.
	TypeRaw     = "mj-raw"
	TypeText    = "mj-text"
	TypeButton  = "mj-button"
	TypeTitle   = "mj-title"
	TypePreview = "mj-preview"
)

// ElementCategory decides how an element's content is converted.
type ElementCategory int

const (
	// CategoryStructural elements are walked recursively into child blocks.
	CategoryStructural ElementCategory = iota

	// CategoryContent elements keep their inner markup verbatim as content.
	CategoryContent

	// CategoryRichText elements keep their inner markup as content,
	// wrapping bare text in a paragraph.
	CategoryRichText
)

// elementCategories is the closed table of non-structural types.
// Every type not listed here is structural.
var elementCategories = map[string]ElementCategory{
	TypeRaw:     CategoryContent,
	TypeText:    CategoryRichText,
	TypeButton:  CategoryContent,
	TypeTitle:   CategoryContent,
	TypePreview: CategoryContent,
}

// CategoryOf resolves the category of an element type.
func CategoryOf(elementType string) ElementCategory {
	if c, ok := elementCategories[strings.ToLower(elementType)]; ok {
		return c
	}
	return CategoryStructural
}

// PreservesContent returns true if children are not traversed.
func (c ElementCategory) PreservesContent() bool {
	return c == CategoryContent || c == CategoryRichText
}

// String returns the string representation.
func (c ElementCategory) String() string {
	switch c {
	case CategoryStructural:
		return "structural"
	case CategoryContent:
		return "content"
	case CategoryRichText:
		return "rich_text"
	default:
		return "unknown"
	}
}
