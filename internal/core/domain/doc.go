// Package domain defines the core entities of the markup import pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Block: A typed node of the editor's content tree
//   - Attributes: The ordered attribute mapping carried by a Block
//   - Element: A node of the generic tree produced by the markup parser
//   - ElementCategory: How an element type's content is converted
//   - Template: A stored, successfully imported document
//   - Settings: Import, output, storage and MCP configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
