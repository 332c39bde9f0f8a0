package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for mailblocks resources.
	uriScheme = "mailblocks://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "templates",
		Name:        "templates",
		Description: "List of stored templates",
		MIMEType:    "application/json",
	}, s.handleTemplatesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "templates/{templateId}",
		Name:        "template-tree",
		Description: "Block tree of a stored template",
		MIMEType:    "application/json",
	}, s.handleTemplateResource)
}

// handleTemplatesResource returns a summary of every stored template.
func (s *Server) handleTemplatesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Templates == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	templates, err := s.ports.Templates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}

	type templateInfo struct {
		ID         string    `json:"id"`
		Name       string    `json:"name"`
		BlockCount int       `json:"block_count"`
		UpdatedAt  time.Time `json:"updated_at"`
		URI        string    `json:"uri"`
	}

	infos := make([]templateInfo, len(templates))
	for i := range templates {
		infos[i] = templateInfo{
			ID:         templates[i].ID,
			Name:       templates[i].Name,
			BlockCount: templates[i].BlockCount,
			UpdatedAt:  templates[i].UpdatedAt,
			URI:        uriScheme + "templates/" + templates[i].ID,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling templates: %w", err)
	}

	return jsonResult(req.Params.URI, string(data)), nil
}

// handleTemplateResource returns the block tree of one template.
func (s *Server) handleTemplateResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Templates == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractTemplateID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	tmpl, err := s.ports.Templates.Get(ctx, id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.MarshalIndent(tmpl.Root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling tree: %w", err)
	}

	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractTemplateID extracts the ID from a URI like mailblocks://templates/{templateId}.
func extractTemplateID(uri string) string {
	const prefix = uriScheme + "templates/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
