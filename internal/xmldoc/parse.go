package xmldoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// xnode mirrors one element during decoding. Inner keeps the verbatim
// source bytes of the element's content alongside the parsed children, so
// opaque sections (notes, annotations, math) survive untouched.
type xnode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Inner    []byte     `xml:",innerxml"`
	Text     string     `xml:",chardata"`
	Children []xnode    `xml:",any"`
}

// parseTree decodes raw bytes into an element tree. Failures become
// diagnostics rather than errors; the caller decides which severities are
// fatal.
func parseTree(data []byte) (*Element, []Diagnostic) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader

	var n xnode
	if err := dec.Decode(&n); err != nil {
		d := Diagnostic{Severity: SeverityFatal, Message: err.Error()}
		var syn *xml.SyntaxError
		if errors.As(err, &syn) {
			d.Line = syn.Line
			d.Message = syn.Msg
		}
		return nil, []Diagnostic{d}
	}
	return convertNode(&n), nil
}

func convertNode(n *xnode) *Element {
	el := NewElement(n.XMLName.Space, n.XMLName.Local)
	for _, a := range n.Attrs {
		// Namespace declarations are bookkeeping for the decoder, not
		// model data.
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		el.SetAttr(a.Name.Space, a.Name.Local, a.Value)
	}
	el.SetText(strings.TrimSpace(n.Text))
	el.SetRawInner(string(n.Inner))
	for i := range n.Children {
		el.children = append(el.children, convertNode(&n.Children[i]))
	}
	return el
}

// charsetReader resolves non-UTF-8 document encodings through the IANA
// registry.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported document encoding %q", charset)
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}
