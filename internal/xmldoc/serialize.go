package xmldoc

import (
	"bufio"
	"encoding/xml"
	"io"
	"strings"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// serializeTree writes the tree rooted at el as indented XML. The root's
// namespace becomes the default namespace; the FBC namespace gets the fbc
// prefix, declared on the root only when the tree actually uses it.
func serializeTree(w io.Writer, root *Element) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(xmlHeader); err != nil {
		return err
	}
	s := &serializer{w: bw}
	s.element(root, root.Space, 0, true)
	if s.err != nil {
		return s.err
	}
	return bw.Flush()
}

type serializer struct {
	w   *bufio.Writer
	err error
}

func (s *serializer) str(v string) {
	if s.err == nil {
		_, s.err = s.w.WriteString(v)
	}
}

func (s *serializer) escaped(v string) {
	if s.err == nil {
		s.err = xml.EscapeText(s.w, []byte(v))
	}
}

// qname resolves an element or attribute name against the inherited default
// namespace. FBC names are prefixed; a foreign namespace switches the
// default for the subtree via an xmlns declaration on the element.
func qname(space, name, defaultNS string) (qualified string, declare bool) {
	switch space {
	case "", defaultNS:
		return name, false
	case FBCNS:
		return FBCPrefix + ":" + name, false
	default:
		return name, true
	}
}

func (s *serializer) element(el *Element, defaultNS string, depth int, isRoot bool) {
	indent := strings.Repeat("  ", depth)
	name, declare := qname(el.Space, el.Name, defaultNS)
	childNS := defaultNS
	if declare {
		childNS = el.Space
	}

	s.str(indent)
	s.str("<")
	s.str(name)
	if isRoot {
		s.str(` xmlns="`)
		s.escaped(el.Space)
		s.str(`"`)
		if usesFBC(el) {
			s.str(` xmlns:` + FBCPrefix + `="`)
			s.escaped(FBCNS)
			s.str(`"`)
		}
	} else if declare {
		s.str(` xmlns="`)
		s.escaped(el.Space)
		s.str(`"`)
	}
	for _, a := range el.Attrs() {
		aname, _ := qname(a.Space, a.Name, "")
		s.str(" ")
		s.str(aname)
		s.str(`="`)
		s.escaped(a.Value)
		s.str(`"`)
	}

	children := el.AllChildren()
	switch {
	case len(children) == 0 && el.RawInner() != "":
		s.str(">")
		s.str(el.RawInner())
		s.str("</")
		s.str(name)
		s.str(">\n")
	case len(children) > 0:
		s.str(">\n")
		for _, c := range children {
			s.element(c, childNS, depth+1, false)
		}
		s.str(indent)
		s.str("</")
		s.str(name)
		s.str(">\n")
	case el.Text() != "":
		s.str(">")
		s.escaped(el.Text())
		s.str("</")
		s.str(name)
		s.str(">\n")
	default:
		s.str("/>\n")
	}
}

// usesFBC reports whether any element or attribute in the tree sits in the
// FBC namespace.
func usesFBC(el *Element) bool {
	if el.Space == FBCNS {
		return true
	}
	for _, a := range el.Attrs() {
		if a.Space == FBCNS {
			return true
		}
	}
	for _, c := range el.AllChildren() {
		if usesFBC(c) {
			return true
		}
	}
	return false
}
