package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mailblocks/internal/adapters/driven/parser/xmltree"
	"github.com/custodia-labs/mailblocks/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/mailblocks/internal/converter"
	"github.com/custodia-labs/mailblocks/internal/core/domain"
	"github.com/custodia-labs/mailblocks/internal/core/ports/driving"
	"github.com/custodia-labs/mailblocks/internal/core/services"
	"github.com/custodia-labs/mailblocks/internal/preprocessors"
)

const validMarkup = `<mjml><mj-body><mj-section><mj-column><mj-text>Hi</mj-text></mj-column></mj-section></mj-body></mjml>`

// newTestPorts wires the real pipeline over an in-memory template store.
func newTestPorts() *Ports {
	importer := services.NewImportService(preprocessors.DefaultPipeline(), xmltree.New(), converter.New())
	return &Ports{
		Import:    importer,
		Templates: services.NewTemplateService(importer, memory.NewTemplateStore()),
	}
}

func newTestServer(t *testing.T, ports *Ports, cfg Config) *Server {
	t.Helper()
	server, err := NewServer(ports, cfg)
	require.NoError(t, err)
	return server
}

// makeReadResourceRequest creates a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

// failingTemplates implements driving.TemplateService, failing every call.
type failingTemplates struct {
	err error
}

func (f *failingTemplates) Import(_ context.Context, _ driving.ImportRequest) (*domain.Template, error) {
	return nil, f.err
}

func (f *failingTemplates) Get(_ context.Context, _ string) (*domain.Template, error) {
	return nil, f.err
}

func (f *failingTemplates) List(_ context.Context) ([]domain.Template, error) {
	return nil, f.err
}

func (f *failingTemplates) Delete(_ context.Context, _ string) error {
	return f.err
}
