// Package mcp provides an MCP (Model Context Protocol) server adapter for mailblocks.
// It lets AI assistants import, repair and inspect email template markup.
package mcp

import "errors"

// ErrMissingImportService is returned when the import service is not provided.
var ErrMissingImportService = errors.New("mcp: import service is required")

// ErrTemplatesUnavailable is returned when saving is requested without a template service.
var ErrTemplatesUnavailable = errors.New("mcp: template storage is not configured")
