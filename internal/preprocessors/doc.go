// Package preprocessors repairs near-miss markup before it reaches the
// strict parser.
//
// Four repairs run in a fixed order:
//
//  1. void-elements: close HTML-style void elements (<br> becomes <br/>)
//  2. named-entities: rewrite legacy named references to numeric form
//  3. attribute-ampersands: escape bare & inside attribute values
//  4. duplicate-attributes: keep the last value of a repeated attribute
//
// Every repair is pure, total and idempotent, so running the pipeline on
// its own output returns the output unchanged. Nesting errors are not
// repaired; they are left for the parser to reject.
package preprocessors
