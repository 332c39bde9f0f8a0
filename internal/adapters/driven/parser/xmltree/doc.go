// Package xmltree provides a strict MarkupParser over encoding/xml.
//
// The parser accepts only well-formed markup: void elements must be
// closed, attribute names must be unique per element, and the only named
// character references are the five the dialect predefines. Every element
// records its raw inner markup so that content-preserving blocks can keep
// the author's markup byte-for-byte.
package xmltree
