package preprocessors

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/mailblocks/internal/core/ports/driven"
)

var _ driven.Repair = AttributeAmpersands{}

var (
	attributeValue = regexp.MustCompile(quotedValue)

	// validReference matches a reference the dialect accepts as-is.
	validReference = regexp.MustCompile(`^&(?:amp|lt|gt|quot|apos|#[0-9]+|#x[0-9A-Fa-f]+);`)
)

// AttributeAmpersands escapes bare ampersands inside double-quoted
// attribute values. Text outside attribute values is untouched.
type AttributeAmpersands struct{}

// Name returns the repair name.
func (AttributeAmpersands) Name() string {
	return NameAttributeAmpersands
}

// Apply replaces & with &amp; unless it already starts a valid reference.
func (AttributeAmpersands) Apply(markup string) string {
	return attributeValue.ReplaceAllStringFunc(markup, func(attr string) string {
		open := strings.IndexByte(attr, '"') + 1
		value := attr[open : len(attr)-1]
		if !strings.Contains(value, "&") {
			return attr
		}
		return attr[:open] + escapeAmpersands(value) + `"`
	})
}

// escapeAmpersands escapes every & in value that does not begin a
// valid reference.
func escapeAmpersands(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 8)
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == '&' && !validReference.MatchString(value[i:]) {
			b.WriteString("&amp;")
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
