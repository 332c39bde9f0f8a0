package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/mailblocks/internal/core/domain"
	"github.com/custodia-labs/mailblocks/internal/core/ports/driven"
	"github.com/custodia-labs/mailblocks/internal/core/ports/driving"
	"github.com/custodia-labs/mailblocks/internal/logger"
)

// Ensure TemplateService implements the interface.
var _ driving.TemplateService = (*TemplateService)(nil)

// defaultTemplateName is used when neither a name nor a path is given.
const defaultTemplateName = "untitled"

// TemplateService imports markup and persists successful results.
type TemplateService struct {
	importer driving.ImportService
	store    driven.TemplateStore
	now      func() time.Time
}

// NewTemplateService creates a new template service.
func NewTemplateService(importer driving.ImportService, store driven.TemplateStore) *TemplateService {
	return &TemplateService{
		importer: importer,
		store:    store,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Import converts the markup and stores the result. Import errors are
// returned unchanged and nothing is written.
func (s *TemplateService) Import(ctx context.Context, req driving.ImportRequest) (*domain.Template, error) {
	result, err := s.importer.Import(ctx, req.Markup)
	if err != nil {
		return nil, err
	}

	now := s.now()
	tmpl := &domain.Template{
		ID:         req.ID,
		Name:       templateName(req.Name, req.SourcePath),
		SourcePath: req.SourcePath,
		Markup:     req.Markup,
		Root:       result.Root,
		BlockCount: result.BlockCount,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if tmpl.ID == "" {
		tmpl.ID = uuid.New().String()
	} else {
		existing, err := s.store.Get(ctx, tmpl.ID)
		switch {
		case err == nil:
			tmpl.CreatedAt = existing.CreatedAt
			if req.Name == "" {
				tmpl.Name = existing.Name
			}
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("get template: %w", err)
		}
	}

	if err := s.store.Save(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("save template: %w", err)
	}
	logger.Debug("Saved template %s (%q, %d blocks)", tmpl.ID, tmpl.Name, tmpl.BlockCount)
	return tmpl, nil
}

// Get retrieves a template by ID.
func (s *TemplateService) Get(ctx context.Context, id string) (*domain.Template, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.Get(ctx, id)
}

// List returns all stored templates, most recently updated first.
func (s *TemplateService) List(ctx context.Context) ([]domain.Template, error) {
	return s.store.List(ctx)
}

// Delete removes a template.
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return s.store.Delete(ctx, id)
}

// templateName picks the explicit name, else the source file name
// without its extension.
func templateName(name, sourcePath string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	if sourcePath == "" || sourcePath == "-" {
		return defaultTemplateName
	}
	base := filepath.Base(sourcePath)
	if trimmed := strings.TrimSuffix(base, filepath.Ext(base)); trimmed != "" {
		return trimmed
	}
	return base
}
