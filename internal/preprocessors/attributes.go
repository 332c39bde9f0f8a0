package preprocessors

import (
	"regexp"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/custodia-labs/mailblocks/internal/core/ports/driven"
)

var _ driven.Repair = DuplicateAttributes{}

// quotedValue is a double-quoted attribute value with its equals sign.
// The ampersand and duplicate repairs share it so they agree on which
// values exist.
const quotedValue = `\s*=\s*"([^"]*)"`

var (
	startTag      = regexp.MustCompile(`<([A-Za-z][\w:.-]*)(\s[^<>]*)?>`)
	attributePair = regexp.MustCompile(`([\w:.-]+)` + quotedValue)
)

// DuplicateAttributes resolves repeated attributes in a start tag.
// The first occurrence keeps its position and takes the last value.
// Tags without duplicates are returned byte-for-byte unchanged.
type DuplicateAttributes struct{}

// Name returns the repair name.
func (DuplicateAttributes) Name() string {
	return NameDuplicateAttributes
}

// Apply rebuilds every start tag that repeats an attribute name.
func (DuplicateAttributes) Apply(markup string) string {
	return startTag.ReplaceAllStringFunc(markup, dedupeTag)
}

// dedupeTag rebuilds a single start tag, or returns it unchanged.
func dedupeTag(tag string) string {
	if !strings.Contains(tag, "=") {
		return tag
	}

	m := startTag.FindStringSubmatch(tag)
	name, body := m[1], m[2]

	attrs := linkedhashmap.New()
	duplicated := false
	for _, pair := range attributePair.FindAllStringSubmatch(body, -1) {
		if _, found := attrs.Get(pair[1]); found {
			duplicated = true
		}
		attrs.Put(pair[1], pair[2])
	}
	if !duplicated {
		return tag
	}

	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(name)
	it := attrs.Iterator()
	for it.Next() {
		b.WriteByte(' ')
		b.WriteString(it.Key().(string))
		b.WriteString(`="`)
		b.WriteString(it.Value().(string))
		b.WriteByte('"')
	}
	if strings.HasSuffix(strings.TrimRight(body, " \t\r\n"), "/") {
		b.WriteByte('/')
	}
	b.WriteByte('>')
	return b.String()
}
