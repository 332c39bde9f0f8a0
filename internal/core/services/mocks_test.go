package services

import (
	"context"

	"github.com/custodia-labs/mailblocks/internal/core/domain"
	"github.com/custodia-labs/mailblocks/internal/core/ports/driven"
	"github.com/custodia-labs/mailblocks/internal/core/ports/driving"
)

// mockConverter implements driven.BlockConverter for testing.
type mockConverter struct {
	block *domain.Block
	err   error
	panic any
}

var _ driven.BlockConverter = (*mockConverter)(nil)

func (m *mockConverter) Convert(_ *domain.Element) (*domain.Block, error) {
	if m.panic != nil {
		panic(m.panic)
	}
	return m.block, m.err
}

// mockImporter implements driving.ImportService for testing.
type mockImporter struct {
	result *domain.ImportResult
	err    error
	calls  []string
}

var _ driving.ImportService = (*mockImporter)(nil)

func (m *mockImporter) Import(_ context.Context, markup string) (*domain.ImportResult, error) {
	m.calls = append(m.calls, markup)
	return m.result, m.err
}

func (m *mockImporter) Preprocess(markup string) string {
	return markup
}

// failingTemplateStore implements driven.TemplateStore, failing every call.
type failingTemplateStore struct {
	err error
}

var _ driven.TemplateStore = (*failingTemplateStore)(nil)

func (m *failingTemplateStore) Save(_ context.Context, _ *domain.Template) error {
	return m.err
}

func (m *failingTemplateStore) Get(_ context.Context, _ string) (*domain.Template, error) {
	return nil, m.err
}

func (m *failingTemplateStore) List(_ context.Context) ([]domain.Template, error) {
	return nil, m.err
}

func (m *failingTemplateStore) Delete(_ context.Context, _ string) error {
	return m.err
}
