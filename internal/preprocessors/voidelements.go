package preprocessors

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/mailblocks/internal/core/ports/driven"
	"github.com/custodia-labs/mailblocks/internal/symbols"
)

var _ driven.Repair = VoidElements{}

// voidTag matches a start tag whose name is a void element, with
// optional attributes. <br/> does not match; <br /> does and is kept.
var voidTag = regexp.MustCompile(`(?i)<(` + strings.Join(symbols.VoidElements(), "|") + `)(\s[^<>]*)?>`)

// VoidElements self-closes void elements left open HTML-style.
// Name case and attribute text are preserved verbatim.
type VoidElements struct{}

// Name returns the repair name.
func (VoidElements) Name() string {
	return NameVoidElements
}

// Apply rewrites <name attrs> to <name attrs/>.
func (VoidElements) Apply(markup string) string {
	return voidTag.ReplaceAllStringFunc(markup, func(tag string) string {
		body := strings.TrimRight(tag[:len(tag)-1], " \t\r\n")
		if strings.HasSuffix(body, "/") {
			return tag
		}
		return tag[:len(tag)-1] + "/>"
	})
}
