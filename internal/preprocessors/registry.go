package preprocessors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/mailblocks/internal/core/ports/driven"
)

// BuilderFunc creates a Repair.
type BuilderFunc func() driven.Repair

// Registry maps repair names to their builders.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates a new repair registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a repair builder to the registry.
// Name should be unique and match the repair's Name() return value.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates a repair by name.
// Returns error if the repair name is not registered.
func (r *Registry) Build(name string) (driven.Repair, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown repair: %s (known: %s)", name, strings.Join(r.Names(), ", "))
	}
	return builder(), nil
}

// Names returns all registered repair names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pipeline builds a pipeline running the named repairs in the given order.
func (r *Registry) Pipeline(names ...string) (*Pipeline, error) {
	p := NewPipeline()
	for _, name := range names {
		repair, err := r.Build(name)
		if err != nil {
			return nil, err
		}
		p.Add(repair)
	}
	return p, nil
}
