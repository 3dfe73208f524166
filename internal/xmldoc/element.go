package xmldoc

import "fmt"

// Attr is a single attribute. Space is the namespace URI, empty for
// unqualified attributes.
type Attr struct {
	Space string
	Name  string
	Value string
}

// Element is one node of a document tree.
//
// Space is the namespace URI of the element. Attributes and children keep
// document order. An element may carry raw pre-serialized inner markup
// instead of parsed children; see SetRawInner.
type Element struct {
	Space string
	Name  string

	attrs    []Attr
	children []*Element
	text     string
	rawInner string
}

// NewElement creates an empty element in the given namespace.
func NewElement(space, name string) *Element {
	return &Element{Space: space, Name: name}
}

// Attr returns the value of the named attribute and whether it is present.
// Absence is not an error; callers that require the attribute decide that.
func (e *Element) Attr(space, name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Space == space && a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute.
func (e *Element) SetAttr(space, name, value string) {
	for i, a := range e.attrs {
		if a.Space == space && a.Name == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Space: space, Name: name, Value: value})
}

// Attrs returns the attribute list in document order.
func (e *Element) Attrs() []Attr {
	return e.attrs
}

// Child returns the first child with the given namespace and local name,
// or nil.
func (e *Element) Child(space, name string) *Element {
	for _, c := range e.children {
		if c.Space == space && c.Name == name {
			return c
		}
	}
	return nil
}

// Children returns all children with the given namespace and local name,
// in document order.
func (e *Element) Children(space, name string) []*Element {
	var out []*Element
	for _, c := range e.children {
		if c.Space == space && c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// AllChildren returns every child element in document order.
func (e *Element) AllChildren() []*Element {
	return e.children
}

// AddChild appends a child element. The returned error is the engine's
// status code for structural additions: non-nil means the add was refused
// and the tree is unchanged.
func (e *Element) AddChild(c *Element) error {
	if c == nil {
		return fmt.Errorf("add child to <%s>: nil element", e.Name)
	}
	if c == e {
		return fmt.Errorf("add child to <%s>: element cannot contain itself", e.Name)
	}
	e.children = append(e.children, c)
	return nil
}

// Text returns the element's character data with surrounding markup removed.
func (e *Element) Text() string {
	return e.text
}

// SetText sets the element's character data. It is escaped on serialization.
func (e *Element) SetText(s string) {
	e.text = s
}

// RawInner returns the element's inner markup exactly as it appeared in the
// source, or as set by SetRawInner. Used for opaque content (notes,
// annotations, math) that must pass through byte-identical.
func (e *Element) RawInner() string {
	return e.rawInner
}

// SetRawInner replaces the element's content with pre-serialized markup.
// Raw content is written verbatim, without escaping, when the element has
// no parsed children.
func (e *Element) SetRawInner(s string) {
	e.rawInner = s
}
