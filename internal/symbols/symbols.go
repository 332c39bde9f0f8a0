// Package symbols holds the static tables used to repair markup before
// parsing: the void element names and the legacy named character
// references that the strict dialect does not define.
//
// The tables are read-only and safe for concurrent use.
package symbols

import (
	"sort"
	"strings"
)

// voidElements can never contain children. HTML-style markup leaves them
// unclosed.
var voidElements = map[string]struct{}{
	"area":   {},
	"base":   {},
	"br":     {},
	"col":    {},
	"embed":  {},
	"hr":     {},
	"img":    {},
	"input":  {},
	"link":   {},
	"meta":   {},
	"param":  {},
	"source": {},
	"track":  {},
	"wbr":    {},
}

// predefinedEntities are the only named references the dialect defines.
// They must never be rewritten.
var predefinedEntities = map[string]struct{}{
	"amp":  {},
	"lt":   {},
	"gt":   {},
	"quot": {},
	"apos": {},
}

// namedEntities maps lower-case legacy reference names to code points.
var namedEntities = map[string]rune{
	// Whitespace and formatting.
	"nbsp":   0x00A0,
	"ensp":   0x2002,
	"emsp":   0x2003,
	"thinsp": 0x2009,
	"zwnj":   0x200C,
	"zwj":    0x200D,
	"lrm":    0x200E,
	"rlm":    0x200F,
	"shy":    0x00AD,

	// Punctuation.
	"ndash":  0x2013,
	"mdash":  0x2014,
	"lsquo":  0x2018,
	"rsquo":  0x2019,
	"sbquo":  0x201A,
	"ldquo":  0x201C,
	"rdquo":  0x201D,
	"bdquo":  0x201E,
	"hellip": 0x2026,
	"bull":   0x2022,
	"middot": 0x00B7,
	"prime":  0x2032,

	// Symbols.
	"copy":   0x00A9,
	"reg":    0x00AE,
	"trade":  0x2122,
	"deg":    0x00B0,
	"plusmn": 0x00B1,
	"times":  0x00D7,
	"divide": 0x00F7,
	"para":   0x00B6,
	"sect":   0x00A7,
	"micro":  0x00B5,

	// Currency.
	"cent":   0x00A2,
	"pound":  0x00A3,
	"yen":    0x00A5,
	"euro":   0x20AC,
	"curren": 0x00A4,

	// Arrows.
	"larr": 0x2190,
	"rarr": 0x2192,
	"uarr": 0x2191,
	"darr": 0x2193,
	"harr": 0x2194,

	// Regional punctuation.
	"laquo":  0x00AB,
	"raquo":  0x00BB,
	"iexcl":  0x00A1,
	"iquest": 0x00BF,
}

// IsVoidElement reports whether name (any case) is a void element.
func IsVoidElement(name string) bool {
	_, ok := voidElements[strings.ToLower(name)]
	return ok
}

// VoidElements returns the void element names, sorted.
func VoidElements() []string {
	names := make([]string, 0, len(voidElements))
	for name := range voidElements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsPredefinedEntity reports whether name (any case) is one of the five
// references the dialect defines itself.
func IsPredefinedEntity(name string) bool {
	_, ok := predefinedEntities[strings.ToLower(name)]
	return ok
}

// CodePoint returns the code point for a legacy named reference (any case).
// Predefined references are never in the table.
func CodePoint(name string) (rune, bool) {
	r, ok := namedEntities[strings.ToLower(name)]
	return r, ok
}
