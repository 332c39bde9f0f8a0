package mcp

import (
	"github.com/custodia-labs/mailblocks/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Import runs the markup import pipeline.
	Import driving.ImportService

	// Templates stores imports. Optional: without it the save flag and
	// template resources are unavailable.
	Templates driving.TemplateService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Import == nil {
		return ErrMissingImportService
	}
	return nil
}
