// Package writer builds a document from a model.Model and serializes it.
//
// The write path targets Level 3 Version 2 for plain models, or Level 3
// Version 1 with the FBC package when the model carries flux-balance data.
// A failed element addition is downgraded to a collected warning so one
// malformed sub-element cannot block emission of the rest of a large model;
// only the final serialization step is fatal.
package writer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/fluxbio/sbmlio/internal/mathml"
	"github.com/fluxbio/sbmlio/internal/model"
	"github.com/fluxbio/sbmlio/internal/xmldoc"
)

// Options configures a write.
type Options struct {
	// Math is the expression codec. Nil means the raw passthrough
	// codec.
	Math mathml.Codec

	// GenerateMetaID assigns a fresh metaid to the model element when
	// the model has none.
	GenerateMetaID bool
}

func (o *Options) math() mathml.Codec {
	if o == nil || o.Math == nil {
		return mathml.RawCodec{}
	}
	return o.Math
}

// SerializationError reports that the underlying engine's write call
// failed. Structural problems never surface here; they were already
// collected as warnings while building.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialize document: %v", e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Build constructs a document from the model. The returned handle owns all
// allocated sub-objects; the caller must release it with Close after
// serializing. The string slice carries recoverable per-element warnings.
func Build(m *model.Model, opts *Options) (*xmldoc.Document, []string, error) {
	fbc := m.HasFBC()
	level, version := 3, 2
	if fbc {
		level, version = 3, 1
	}
	doc := xmldoc.Create(level, version, fbc)

	b := &builder{
		doc:    doc,
		core:   doc.CoreNS(),
		math:   opts.math(),
		m:      m,
		lists:  make(map[string]*xmldoc.Element),
		params: make(map[string]bool),
	}
	if err := b.run(opts); err != nil {
		doc.Close()
		return nil, b.warnings, err
	}
	return doc, b.warnings, nil
}

// Write builds and serializes the model, releasing the handle on every
// path.
func Write(m *model.Model, w io.Writer, opts *Options) ([]string, error) {
	doc, warnings, err := Build(m, opts)
	if err != nil {
		return warnings, err
	}
	defer doc.Close()
	if err := doc.Serialize(w); err != nil {
		return warnings, &SerializationError{Err: err}
	}
	return warnings, nil
}

// WriteFile serializes the model to a file.
func WriteFile(m *model.Model, path string, opts *Options) ([]string, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}
	warnings, werr := Write(m, f, opts)
	if cerr := f.Close(); werr == nil && cerr != nil {
		werr = &SerializationError{Err: cerr}
	}
	return warnings, werr
}

// builder carries the emission state: the document under construction and
// the list containers, created on demand but attached to the model element
// in canonical schema order at the end.
type builder struct {
	doc      *xmldoc.Document
	core     string
	math     mathml.Codec
	m        *model.Model
	modelEl  *xmldoc.Element
	lists    map[string]*xmldoc.Element
	params   map[string]bool
	warnings []string
}

// modelListOrder is the canonical child order of the model element. List
// containers are attached in this order regardless of emission order, the
// way the engine keeps its own lists sorted.
var modelListOrder = []struct {
	space string
	name  string
}{
	{"", "listOfFunctionDefinitions"},
	{"", "listOfUnitDefinitions"},
	{"", "listOfCompartments"},
	{"", "listOfSpecies"},
	{"", "listOfParameters"},
	{"", "listOfInitialAssignments"},
	{"", "listOfRules"},
	{"", "listOfConstraints"},
	{"", "listOfReactions"},
	{"", "listOfEvents"},
	{xmldoc.FBCNS, "listOfObjectives"},
	{xmldoc.FBCNS, "listOfGeneProducts"},
}

func (b *builder) run(opts *Options) error {
	b.modelEl = xmldoc.NewElement(b.core, "model")
	if b.m.ID != "" {
		b.modelEl.SetAttr("", "id", b.m.ID)
	}
	if b.m.Name != "" {
		b.modelEl.SetAttr("", "name", b.m.Name)
	}
	if b.m.HasFBC() {
		// Package-required flag: the emitted model conforms to FBC
		// strict-mode constraints.
		b.modelEl.SetAttr(xmldoc.FBCNS, "strict", "true")
	}

	b.parameters()
	b.unitDefinitions()
	b.compartments()
	b.geneProducts()
	b.initialAssignments()
	b.constraints()
	b.reactions()
	b.objectives()
	b.species()
	b.functionDefinitions()
	b.rules()
	b.events()
	b.modelAttributes(opts)

	for _, l := range modelListOrder {
		if el, ok := b.lists[l.space+" "+l.name]; ok {
			b.add(b.modelEl, el)
		}
	}
	b.add(b.doc.Root(), b.modelEl)
	return nil
}

// warn records a recoverable per-element failure; the write continues.
func (b *builder) warn(format string, args ...any) {
	b.warnings = append(b.warnings, fmt.Sprintf(format, args...))
}

// add attaches a child, downgrading the engine's non-zero status to a
// warning.
func (b *builder) add(parent, child *xmldoc.Element) {
	if err := parent.AddChild(child); err != nil {
		b.warn("skipped element: %v", err)
	}
}

// list returns the named list container, creating it detached on first
// use.
func (b *builder) list(space, name string) *xmldoc.Element {
	key := space + " " + name
	if el, ok := b.lists[key]; ok {
		return el
	}
	el := xmldoc.NewElement(space, name)
	b.lists[key] = el
	return el
}

// sortedKeys returns map keys in lexical order for deterministic output.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func setOptAttr(el *xmldoc.Element, space, name, value string) {
	if value != "" {
		el.SetAttr(space, name, value)
	}
}

func setBoolAttr(el *xmldoc.Element, space, name string, v *bool) {
	if v != nil {
		el.SetAttr(space, name, strconv.FormatBool(*v))
	}
}

// rawChild attaches an opaque markup child (notes or annotation) verbatim.
func (b *builder) rawChild(parent *xmldoc.Element, name, raw string) {
	if raw == "" {
		return
	}
	el := xmldoc.NewElement(b.core, name)
	el.SetRawInner(raw)
	b.add(parent, el)
}

// mathChild builds and attaches a math element, downgrading codec failures
// to warnings.
func (b *builder) mathChild(parent *xmldoc.Element, expr mathml.Expr) {
	if expr.IsZero() {
		return
	}
	el, err := b.math.Build(expr)
	if err != nil {
		b.warn("skipped math in <%s>: %v", parent.Name, err)
		return
	}
	b.add(parent, el)
}
