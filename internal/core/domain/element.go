package domain

// Node is a node of the generic tree produced by the markup parser.
// It is either an *Element or a *Text.
type Node interface {
	node()
}

// Element is a parsed element with its raw inner markup.
type Element struct {
	// Name is the tag name as written in the source.
	Name string

	// Attrs are the source attributes in document order.
	Attrs []Attribute

	// Nodes are the element and text children in document order.
	// Comments and processing instructions are not represented.
	Nodes []Node

	// Inner is the raw markup between the start and end tags,
	// exactly as it appeared in the parsed text.
	Inner string
}

func (*Element) node() {}

// Elements returns only the element children.
func (e *Element) Elements() []*Element {
	var out []*Element
	for _, n := range e.Nodes {
		if el, ok := n.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// Text is character data with references already resolved.
type Text struct {
	Data string
}

func (*Text) node() {}
