package domain

import "fmt"

const unknownDescription = "Unknown"

// DefaultMaxInputBytes bounds markup read from files, stdin and MCP calls.
const DefaultMaxInputBytes = 5 << 20

// OutputFormat defines how an imported block tree is printed.
type OutputFormat string

// Available output formats.
const (
	// OutputFormatAuto prints a tree on a terminal and JSON otherwise.
	OutputFormatAuto OutputFormat = "auto"

	// OutputFormatJSON prints the block tree as JSON.
	OutputFormatJSON OutputFormat = "json"

	// OutputFormatTree prints an indented, styled outline.
	OutputFormatTree OutputFormat = "tree"
)

// IsValid returns true if the output format is recognised.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatAuto, OutputFormatJSON, OutputFormatTree:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// Description returns a human-readable description of the format.
func (f OutputFormat) Description() string {
	switch f {
	case OutputFormatAuto:
		return "Auto (tree on a terminal, JSON otherwise)"
	case OutputFormatJSON:
		return "JSON"
	case OutputFormatTree:
		return "Tree outline"
	default:
		return unknownDescription
	}
}

// StorageBackend identifies where imported templates are persisted.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite persists templates in a local SQLite database.
	StorageSQLite StorageBackend = "sqlite"

	// StorageMemory keeps templates for the lifetime of the process.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the storage backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageSQLite || b == StorageMemory
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// ImportSettings bounds the import pipeline's input.
type ImportSettings struct {
	// MaxInputBytes is the largest accepted input. Zero means unbounded.
	MaxInputBytes int
}

// OutputSettings controls CLI rendering.
type OutputSettings struct {
	// Format selects JSON or tree output.
	Format OutputFormat

	// Indent is the number of spaces per nesting level.
	Indent int

	// Color enables styled tree output on terminals.
	Color bool
}

// StorageSettings selects the template store.
type StorageSettings struct {
	// Backend is the store implementation.
	Backend StorageBackend

	// DataDir overrides the default data directory.
	DataDir string
}

// MCPSettings configures the MCP server.
type MCPSettings struct {
	// RateLimit is the number of imports accepted per second.
	RateLimit int
}

// Settings is the complete application configuration.
type Settings struct {
	Import  ImportSettings
	Output  OutputSettings
	Storage StorageSettings
	MCP     MCPSettings
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Import: ImportSettings{
			MaxInputBytes: DefaultMaxInputBytes,
		},
		Output: OutputSettings{
			Format: OutputFormatAuto,
			Indent: 2,
			Color:  true,
		},
		Storage: StorageSettings{
			Backend: StorageSQLite,
		},
		MCP: MCPSettings{
			RateLimit: 5,
		},
	}
}

// Validate checks the settings for unusable values.
func (s Settings) Validate() error {
	if s.Import.MaxInputBytes < 0 {
		return fmt.Errorf("%w: import.max_input_bytes must not be negative", ErrInvalidInput)
	}
	if !s.Output.Format.IsValid() {
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidInput, s.Output.Format)
	}
	if s.Output.Indent < 0 || s.Output.Indent > 8 {
		return fmt.Errorf("%w: output.indent must be between 0 and 8", ErrInvalidInput)
	}
	if !s.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidInput, s.Storage.Backend)
	}
	if s.MCP.RateLimit <= 0 {
		return fmt.Errorf("%w: mcp.rate_limit must be positive", ErrInvalidInput)
	}
	return nil
}
