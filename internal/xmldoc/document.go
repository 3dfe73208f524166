// Package xmldoc is the document engine boundary.
//
// Everything above this package sees SBML XML only through typed query and
// construct operations on Document and Element; no raw markup crosses the
// boundary except as opaque pass-through strings. The package owns
// namespace handling, open-time diagnostics, serialization, and the handle
// lifecycle.
package xmldoc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Namespace URIs handled by the engine.
const (
	CoreNSL3V1 = "http://www.sbml.org/sbml/level3/version1/core"
	CoreNSL3V2 = "http://www.sbml.org/sbml/level3/version2/core"
	FBCNS      = "http://www.sbml.org/sbml/level3/version1/fbc/version2"
)

// FBCPrefix is the prefix used for FBC elements and attributes on output.
const FBCPrefix = "fbc"

// ErrClosed is returned when an operation runs against a released handle.
var ErrClosed = errors.New("document handle already released")

// Document is a scoped handle over a parsed or under-construction tree.
//
// A handle is exclusively owned from Open/Create until Close; it supports
// no concurrent use. Close releases it exactly once, and every code path
// that opens a handle is responsible for closing it on every exit.
type Document struct {
	root   *Element
	coreNS string
	diags  []Diagnostic
	fbc    bool
	closed bool
	frees  int
}

// OpenOptions controls validation at open time.
type OpenOptions struct {
	// Watched lists the severities that make Open fail. Nil means the
	// default set {Fatal, Error}.
	Watched []Severity
}

func watchedSet(opts *OpenOptions) map[Severity]bool {
	set := make(map[Severity]bool)
	if opts == nil || opts.Watched == nil {
		set[SeverityFatal] = true
		set[SeverityError] = true
		return set
	}
	for _, s := range opts.Watched {
		set[s] = true
	}
	return set
}

// Open parses a document from raw bytes, collects all diagnostics, and
// fails with *ParseError if any diagnostic matches a watched severity.
// On failure the handle is released before the error is returned.
func Open(data []byte, opts *OpenOptions) (*Document, error) {
	doc, err := open(data, opts)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// open keeps the handle visible to in-package callers even on failure, so
// the release guarantee stays observable.
func open(data []byte, opts *OpenOptions) (*Document, error) {
	doc := &Document{}
	doc.root, doc.diags = parseTree(data)
	doc.inspect()

	watched := watchedSet(opts)
	var fatal []Diagnostic
	for _, d := range doc.diags {
		if watched[d.Severity] {
			fatal = append(fatal, d)
		}
	}
	if len(fatal) > 0 {
		doc.Close()
		return doc, &ParseError{Diagnostics: fatal}
	}
	return doc, nil
}

// OpenFile reads and opens the document at path.
func OpenFile(path string, opts *OpenOptions) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Diagnostics: []Diagnostic{{
			Severity: SeverityFatal,
			Message:  fmt.Sprintf("read %s: %v", path, err),
		}}}
	}
	return Open(data, opts)
}

// Create builds a fresh writable handle for the given level and version.
// When withFBC is set, the FBC namespace is registered on the root and
// declared non-required, so plain SBML consumers can still read the core
// model.
func Create(level, version int, withFBC bool) *Document {
	core := CoreNSL3V2
	if level == 3 && version == 1 {
		core = CoreNSL3V1
	}
	root := NewElement(core, "sbml")
	root.SetAttr("", "level", strconv.Itoa(level))
	root.SetAttr("", "version", strconv.Itoa(version))
	doc := &Document{root: root, coreNS: core, fbc: withFBC}
	if withFBC {
		root.SetAttr(FBCNS, "required", "false")
	}
	return doc
}

// Close releases the handle. Closing an already-released handle is an
// error; the scoped-resource pattern frees each handle exactly once.
func (d *Document) Close() error {
	if d.closed {
		return ErrClosed
	}
	d.closed = true
	d.frees++
	d.root = nil
	return nil
}

// Closed reports whether the handle has been released.
func (d *Document) Closed() bool {
	return d.closed
}

// Root returns the document's root element, or nil after Close.
func (d *Document) Root() *Element {
	return d.root
}

// CoreNS returns the SBML core namespace the document was parsed or
// created with.
func (d *Document) CoreNS() string {
	return d.coreNS
}

// HasFBC reports whether the FBC namespace is registered on the document.
func (d *Document) HasFBC() bool {
	return d.fbc
}

// Model returns the <model> child of the root, or nil.
func (d *Document) Model() *Element {
	if d.root == nil {
		return nil
	}
	return d.root.Child(d.coreNS, "model")
}

// Diagnostics returns every message collected at open time.
func (d *Document) Diagnostics() []Diagnostic {
	return d.diags
}

// Serialize writes the document as XML. A failed write is the engine's one
// fatal serialization condition; everything structural was already settled
// when the tree was built.
func (d *Document) Serialize(w io.Writer) error {
	if d.closed {
		return ErrClosed
	}
	return serializeTree(w, d.root)
}

// inspect attaches structural diagnostics after a parse: wrong root
// element, missing model, unsupported level.
func (d *Document) inspect() {
	if d.root == nil {
		return
	}
	if d.root.Name != "sbml" {
		d.diags = append(d.diags, Diagnostic{
			Severity: SeverityError,
			Message:  fmt.Sprintf("root element is <%s>, expected <sbml>", d.root.Name),
		})
		return
	}
	d.coreNS = d.root.Space

	if lv, ok := d.root.Attr("", "level"); ok {
		if n, err := strconv.Atoi(lv); err != nil || n < 1 || n > 3 {
			d.diags = append(d.diags, Diagnostic{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("unsupported SBML level %q", lv),
			})
		}
	} else {
		d.diags = append(d.diags, Diagnostic{
			Severity: SeverityWarning,
			Message:  "sbml element has no level attribute",
		})
	}

	if d.root.Child(d.coreNS, "model") == nil {
		d.diags = append(d.diags, Diagnostic{
			Severity: SeverityError,
			Message:  "document contains no model",
		})
	}

	if _, ok := d.root.Attr(FBCNS, "required"); ok {
		d.fbc = true
	}
}
