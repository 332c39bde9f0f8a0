package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/mailblocks/internal/core/domain"
	"github.com/custodia-labs/mailblocks/internal/core/ports/driving"
)

// ImportInput is the input schema for the import_markup tool.
type ImportInput struct {
	Markup string `json:"markup" jsonschema:"the MJML markup to import"`
	Save   bool   `json:"save,omitempty" jsonschema:"store the result as a template"`
	Name   string `json:"name,omitempty" jsonschema:"template name when saving"`
}

// ImportOutput is the output schema for the import_markup tool.
type ImportOutput struct {
	// Tree is the block tree encoded as JSON.
	Tree       string `json:"tree"`
	BlockCount int    `json:"block_count"`
	Depth      int    `json:"depth"`
	Repaired   bool   `json:"repaired"`
	TemplateID string `json:"template_id,omitempty"`
}

// PreprocessInput is the input schema for the preprocess_markup tool.
type PreprocessInput struct {
	Markup string `json:"markup" jsonschema:"the markup to repair"`
}

// PreprocessOutput is the output schema for the preprocess_markup tool.
type PreprocessOutput struct {
	Markup  string `json:"markup"`
	Changed bool   `json:"changed"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "import_markup",
		Description: "Repair and convert MJML markup into the editor's block tree",
	}, s.handleImport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "preprocess_markup",
		Description: "Apply the markup repairs without parsing",
	}, s.handlePreprocess)
}

// handleImport handles the import_markup tool invocation.
func (s *Server) handleImport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ImportInput,
) (*mcp.CallToolResult, ImportOutput, error) {
	if err := s.checkSize(input.Markup); err != nil {
		return nil, ImportOutput{}, err
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, ImportOutput{}, fmt.Errorf("rate limited: %w", err)
	}

	if input.Save {
		return s.importAndSave(ctx, input)
	}

	result, err := s.ports.Import.Import(ctx, input.Markup)
	if err != nil {
		return nil, ImportOutput{}, err
	}

	tree, err := encodeTree(result.Root)
	if err != nil {
		return nil, ImportOutput{}, err
	}

	return nil, ImportOutput{
		Tree:       tree,
		BlockCount: result.BlockCount,
		Depth:      result.Depth,
		Repaired:   result.Repaired,
	}, nil
}

func (s *Server) importAndSave(ctx context.Context, input ImportInput) (*mcp.CallToolResult, ImportOutput, error) {
	if s.ports.Templates == nil {
		return nil, ImportOutput{}, ErrTemplatesUnavailable
	}

	tmpl, err := s.ports.Templates.Import(ctx, driving.ImportRequest{
		Name:   input.Name,
		Markup: input.Markup,
	})
	if err != nil {
		return nil, ImportOutput{}, err
	}

	tree, err := encodeTree(tmpl.Root)
	if err != nil {
		return nil, ImportOutput{}, err
	}

	return nil, ImportOutput{
		Tree:       tree,
		BlockCount: tmpl.BlockCount,
		Depth:      tmpl.Root.Depth(),
		Repaired:   s.ports.Import.Preprocess(input.Markup) != input.Markup,
		TemplateID: tmpl.ID,
	}, nil
}

// handlePreprocess handles the preprocess_markup tool invocation.
func (s *Server) handlePreprocess(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input PreprocessInput,
) (*mcp.CallToolResult, PreprocessOutput, error) {
	if err := s.checkSize(input.Markup); err != nil {
		return nil, PreprocessOutput{}, err
	}

	repaired := s.ports.Import.Preprocess(input.Markup)
	return nil, PreprocessOutput{
		Markup:  repaired,
		Changed: repaired != input.Markup,
	}, nil
}

func (s *Server) checkSize(markup string) error {
	if s.config.MaxInputBytes > 0 && len(markup) > s.config.MaxInputBytes {
		return fmt.Errorf("%w: %d bytes exceeds the %d byte limit",
			domain.ErrInputTooLarge, len(markup), s.config.MaxInputBytes)
	}
	return nil
}

func encodeTree(root *domain.Block) (string, error) {
	data, err := json.Marshal(root)
	if err != nil {
		return "", fmt.Errorf("marshalling tree: %w", err)
	}
	return string(data), nil
}
