package domain

import "time"

// Template is a stored, successfully imported document.
type Template struct {
	// ID is the unique identifier for the template.
	ID string

	// Name is the human-readable name.
	Name string

	// SourcePath is where the markup was read from, if a file.
	SourcePath string

	// Markup is the original, unrepaired input.
	Markup string

	// Root is the converted document-wrapper block.
	Root *Block

	// BlockCount is the number of blocks in Root.
	BlockCount int

	// CreatedAt is when the template was first saved.
	CreatedAt time.Time

	// UpdatedAt is when the template was last saved.
	UpdatedAt time.Time
}

// ImportResult is a converted tree plus statistics about the import.
type ImportResult struct {
	// Root is the document-wrapper block.
	Root *Block

	// Repaired is true if preprocessing changed the input.
	Repaired bool

	// BlockCount is the number of blocks in Root.
	BlockCount int

	// Depth is the number of levels in Root.
	Depth int
}
