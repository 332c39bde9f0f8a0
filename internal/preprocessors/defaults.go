package preprocessors

import "github.com/custodia-labs/mailblocks/internal/core/ports/driven"

// Repair names, in the order they must run.
const (
	NameVoidElements        = "void-elements"
	NameNamedEntities       = "named-entities"
	NameAttributeAmpersands = "attribute-ampersands"
	NameDuplicateAttributes = "duplicate-attributes"
)

// DefaultOrder is the fixed execution order of the built-in repairs.
var DefaultOrder = []string{
	NameVoidElements,
	NameNamedEntities,
	NameAttributeAmpersands,
	NameDuplicateAttributes,
}

// RegisterDefaults registers all built-in repairs with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(NameVoidElements, func() driven.Repair { return VoidElements{} })
	r.Register(NameNamedEntities, func() driven.Repair { return NamedEntities{} })
	r.Register(NameAttributeAmpersands, func() driven.Repair { return AttributeAmpersands{} })
	r.Register(NameDuplicateAttributes, func() driven.Repair { return DuplicateAttributes{} })
}

// DefaultPipeline returns the built-in repairs in DefaultOrder.
func DefaultPipeline() *Pipeline {
	r := NewRegistry()
	RegisterDefaults(r)
	p, err := r.Pipeline(DefaultOrder...)
	if err != nil {
		// RegisterDefaults registers every name in DefaultOrder.
		panic(err)
	}
	return p
}

// Preprocess repairs raw markup with the default pipeline.
// It never fails and is idempotent.
func Preprocess(raw string) string {
	return DefaultPipeline().Run(raw)
}
