package preprocessors

import (
	"regexp"
	"strconv"

	"github.com/custodia-labs/mailblocks/internal/core/ports/driven"
	"github.com/custodia-labs/mailblocks/internal/symbols"
)

var _ driven.Repair = NamedEntities{}

var namedReference = regexp.MustCompile(`&([A-Za-z][A-Za-z0-9]*);`)

// NamedEntities rewrites legacy named character references that the
// dialect does not define into decimal numeric references.
// The five predefined references and unknown names are left as they are.
type NamedEntities struct{}

// Name returns the repair name.
func (NamedEntities) Name() string {
	return NameNamedEntities
}

// Apply rewrites &name; to &#codepoint;.
func (NamedEntities) Apply(markup string) string {
	return namedReference.ReplaceAllStringFunc(markup, func(ref string) string {
		name := ref[1 : len(ref)-1]
		if symbols.IsPredefinedEntity(name) {
			return ref
		}
		cp, ok := symbols.CodePoint(name)
		if !ok {
			return ref
		}
		return "&#" + strconv.Itoa(int(cp)) + ";"
	})
}
