package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/mailblocks/internal/core/domain"
	"github.com/custodia-labs/mailblocks/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.MarkupParser = (*Parser)(nil)

// SyntaxError is a parser diagnostic.
type SyntaxError struct {
	// Line is the 1-based line of the error.
	Line int

	// Msg describes the violation.
	Msg string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parser parses markup into a domain.Element tree.
type Parser struct{}

// New creates a new strict parser.
func New() *Parser {
	return &Parser{}
}

// openElement is an element whose end tag has not been seen yet.
type openElement struct {
	el         *domain.Element
	name       xml.Name
	innerStart int64
}

// Parse returns the document's root element, or a *SyntaxError.
func (p *Parser) Parse(markup string) (*domain.Element, error) {
	dec := xml.NewDecoder(strings.NewReader(markup))
	dec.Strict = true

	var root *domain.Element
	var stack []openElement

	for {
		before := dec.InputOffset()
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, toSyntaxError(err, markup, before)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 && root != nil {
				return nil, newSyntaxError(markup, before, "extra content after the document element")
			}
			el, err := newElement(t)
			if err != nil {
				return nil, newSyntaxError(markup, before, err.Error())
			}
			if len(stack) == 0 {
				root = el
			} else {
				parent := stack[len(stack)-1].el
				parent.Nodes = append(parent.Nodes, el)
			}
			stack = append(stack, openElement{el: el, name: t.Name, innerStart: dec.InputOffset()})

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, newSyntaxError(markup, before, fmt.Sprintf("unexpected end element </%s>", qualifiedName(t.Name)))
			}
			top := stack[len(stack)-1]
			if top.name != t.Name {
				return nil, newSyntaxError(markup, before, fmt.Sprintf(
					"element <%s> closed by </%s>", qualifiedName(top.name), qualifiedName(t.Name)))
			}
			top.el.Inner = markup[top.innerStart:before]
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, newSyntaxError(markup, before, "text outside the document element")
				}
				continue
			}
			appendText(stack[len(stack)-1].el, string(t))
		}
	}

	if len(stack) > 0 {
		return nil, newSyntaxError(markup, int64(len(markup)),
			fmt.Sprintf("unexpected end of input: element <%s> is not closed", qualifiedName(stack[len(stack)-1].name)))
	}
	if root == nil {
		return nil, newSyntaxError(markup, int64(len(markup)), "no document element")
	}
	return root, nil
}

// newElement converts a start tag, rejecting repeated attribute names.
func newElement(t xml.StartElement) (*domain.Element, error) {
	el := &domain.Element{Name: qualifiedName(t.Name)}
	seen := make(map[string]bool, len(t.Attr))
	for _, attr := range t.Attr {
		name := qualifiedName(attr.Name)
		if seen[name] {
			return nil, fmt.Errorf("attribute %s redefined on <%s>", name, el.Name)
		}
		seen[name] = true
		el.Attrs = append(el.Attrs, domain.Attribute{Name: name, Value: attr.Value})
	}
	return el, nil
}

// appendText adds character data, merging with a preceding text node.
func appendText(el *domain.Element, data string) {
	if n := len(el.Nodes); n > 0 {
		if prev, ok := el.Nodes[n-1].(*domain.Text); ok {
			prev.Data += data
			return
		}
	}
	el.Nodes = append(el.Nodes, &domain.Text{Data: data})
}

// qualifiedName joins a raw prefix and local name.
func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func toSyntaxError(err error, markup string, offset int64) error {
	var xmlErr *xml.SyntaxError
	if errors.As(err, &xmlErr) {
		return &SyntaxError{Line: xmlErr.Line, Msg: xmlErr.Msg}
	}
	return newSyntaxError(markup, offset, err.Error())
}

func newSyntaxError(markup string, offset int64, msg string) *SyntaxError {
	if offset > int64(len(markup)) {
		offset = int64(len(markup))
	}
	return &SyntaxError{
		Line: strings.Count(markup[:offset], "\n") + 1,
		Msg:  msg,
	}
}
