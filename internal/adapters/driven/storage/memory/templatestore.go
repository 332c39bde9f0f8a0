package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/mailblocks/internal/core/domain"
	"github.com/custodia-labs/mailblocks/internal/core/ports/driven"
)

// Ensure TemplateStore implements the interface.
var _ driven.TemplateStore = (*TemplateStore)(nil)

// TemplateStore is an in-memory implementation of driven.TemplateStore.
// Templates are copied on the way in and out, so callers may mutate
// what they hold without affecting the store.
type TemplateStore struct {
	mu        sync.RWMutex
	templates map[string]domain.Template
}

// NewTemplateStore creates a new in-memory template store.
func NewTemplateStore() *TemplateStore {
	return &TemplateStore{
		templates: make(map[string]domain.Template),
	}
}

// Save stores or replaces a template.
func (s *TemplateStore) Save(_ context.Context, tmpl *domain.Template) error {
	if tmpl == nil || tmpl.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[tmpl.ID] = copyTemplate(*tmpl)
	return nil
}

// Get retrieves a template by ID.
func (s *TemplateStore) Get(_ context.Context, id string) (*domain.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tmpl, ok := s.templates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := copyTemplate(tmpl)
	return &out, nil
}

// List returns all templates, most recently updated first.
func (s *TemplateStore) List(_ context.Context) ([]domain.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Template, 0, len(s.templates))
	for _, tmpl := range s.templates {
		result = append(result, copyTemplate(tmpl))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

// Delete removes a template.
func (s *TemplateStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.templates, id)
	return nil
}

func copyTemplate(tmpl domain.Template) domain.Template {
	tmpl.Root = tmpl.Root.Clone()
	return tmpl
}
