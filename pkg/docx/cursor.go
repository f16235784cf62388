package docx

import "github.com/beevik/etree"

// cursor is the navigation state shared by every view type. It walks the
// child elements of parent that carry one element name and ignores all other
// siblings.
//
// The view types embed a cursor and only reach the tree through these methods.
type cursor struct {
	parent  *etree.Element
	current *etree.Element
	kind    string
}

func newCursor(kind string) cursor {
	return cursor{kind: kind}
}

// scope re-targets the cursor at the first matching child of parent.
func (c *cursor) scope(parent *etree.Element) {
	c.parent = parent
	c.current = c.first()
}

// at positions the cursor on a known element under parent.
func (c *cursor) at(parent, current *etree.Element) {
	c.parent = parent
	c.current = current
}

func (c *cursor) first() *etree.Element {
	if c.parent == nil {
		return nil
	}
	for _, child := range c.parent.ChildElements() {
		if isElement(child, c.kind) {
			return child
		}
	}
	return nil
}

// following returns the next sibling of the current element that matches the
// cursor kind, or nil.
func (c *cursor) following() *etree.Element {
	if c.current == nil {
		return nil
	}
	parent := c.current.Parent()
	idx := c.current.Index()
	if parent == nil || idx < 0 {
		return nil
	}
	for _, tok := range parent.Child[idx+1:] {
		if el, ok := tok.(*etree.Element); ok && isElement(el, c.kind) {
			return el
		}
	}
	return nil
}

func (c *cursor) advance() {
	c.current = c.following()
}

func (c *cursor) hasNext() bool {
	return c.following() != nil
}

func (c *cursor) valid() bool {
	return c.current != nil
}
