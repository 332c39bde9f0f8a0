package domain

import "fmt"

// Block is a typed node of the editor's content tree.
// It is the canonical representation after conversion.
//
// Content and Children are mutually exclusive: content-preserving types
// never carry Children, structural types carry Content only when they
// have no child elements.
type Block struct {
	// ID is unique within the tree and generated at conversion time.
	ID string `json:"id"`

	// Type is the lower-cased element tag name.
	Type string `json:"type"`

	// Attributes maps normalised (camel-joined) names to raw values.
	Attributes Attributes `json:"attributes"`

	// Content is inner markup or text. Empty means absent.
	Content string `json:"content,omitempty"`

	// Children are the nested blocks in document order.
	Children []*Block `json:"children,omitempty"`
}

// HasContent reports whether the block carries content.
func (b *Block) HasContent() bool {
	return b.Content != ""
}

// Walk visits b and its descendants depth-first in document order.
// Returning false from fn skips the node's children.
func (b *Block) Walk(fn func(block *Block, depth int) bool) {
	b.walk(fn, 0)
}

func (b *Block) walk(fn func(block *Block, depth int) bool, depth int) {
	if !fn(b, depth) {
		return
	}
	for _, child := range b.Children {
		child.walk(fn, depth+1)
	}
}

// Find returns all blocks of the given type in document order.
func (b *Block) Find(blockType string) []*Block {
	var found []*Block
	b.Walk(func(block *Block, _ int) bool {
		if block.Type == blockType {
			found = append(found, block)
		}
		return true
	})
	return found
}

// Count returns the number of blocks in the tree rooted at b.
func (b *Block) Count() int {
	n := 0
	b.Walk(func(*Block, int) bool {
		n++
		return true
	})
	return n
}

// Depth returns the number of levels in the tree rooted at b.
func (b *Block) Depth() int {
	maxDepth := 0
	b.Walk(func(_ *Block, depth int) bool {
		if depth+1 > maxDepth {
			maxDepth = depth + 1
		}
		return true
	})
	return maxDepth
}

// Validate checks the tree invariants: unique ids, no block with both
// content and children, and no children on content-preserving types.
func (b *Block) Validate() error {
	seen := make(map[string]bool)
	var err error
	b.Walk(func(block *Block, _ int) bool {
		if err != nil {
			return false
		}
		switch {
		case block.ID == "":
			err = fmt.Errorf("%w: block of type %q has no id", ErrInvalidInput, block.Type)
		case seen[block.ID]:
			err = fmt.Errorf("%w: duplicate block id %q", ErrInvalidInput, block.ID)
		case block.HasContent() && len(block.Children) > 0:
			err = fmt.Errorf("%w: block %q carries both content and children", ErrInvalidInput, block.ID)
		case CategoryOf(block.Type).PreservesContent() && len(block.Children) > 0:
			err = fmt.Errorf("%w: %s block %q has children", ErrInvalidInput, block.Type, block.ID)
		}
		seen[block.ID] = true
		return true
	})
	return err
}

// Clone returns a deep copy of the tree rooted at b.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	c := &Block{
		ID:      b.ID,
		Type:    b.Type,
		Content: b.Content,
	}
	if b.Attributes != nil {
		c.Attributes = make(Attributes, len(b.Attributes))
		copy(c.Attributes, b.Attributes)
	}
	if b.Children != nil {
		c.Children = make([]*Block, len(b.Children))
		for i, child := range b.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}
