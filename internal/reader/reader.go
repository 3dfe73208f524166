// Package reader walks an open document into a model.Model.
//
// Extraction is all-or-nothing: the first unresolvable required field
// aborts the read and no partial model escapes. The document handle is
// released on every path by the top-level Read functions.
package reader

import (
	"fmt"

	"github.com/fluxbio/sbmlio/internal/mathml"
	"github.com/fluxbio/sbmlio/internal/model"
	"github.com/fluxbio/sbmlio/internal/xmldoc"
)

// Options configures a read.
type Options struct {
	// Severities names the diagnostic levels that make opening fail.
	// Nil means the default set {"Fatal", "Error"}.
	Severities []string

	// Transform, when set, runs in-place against the open document
	// exactly once, after validation and before extraction. Its error
	// aborts the read.
	Transform func(*xmldoc.Document) error

	// Math is the expression codec. Nil means the raw passthrough
	// codec.
	Math mathml.Codec
}

func (o *Options) math() mathml.Codec {
	if o == nil || o.Math == nil {
		return mathml.RawCodec{}
	}
	return o.Math
}

func (o *Options) openOptions() (*xmldoc.OpenOptions, error) {
	if o == nil || o.Severities == nil {
		return nil, nil
	}
	oo := &xmldoc.OpenOptions{Watched: []xmldoc.Severity{}}
	for _, name := range o.Severities {
		sev, ok := xmldoc.ParseSeverity(name)
		if !ok {
			return nil, fmt.Errorf("unknown severity %q", name)
		}
		oo.Watched = append(oo.Watched, sev)
	}
	return oo, nil
}

// ReadFile opens, validates, optionally transforms, and extracts the
// document at path.
func ReadFile(path string, opts *Options) (*model.Model, error) {
	oo, err := opts.openOptions()
	if err != nil {
		return nil, err
	}
	doc, err := xmldoc.OpenFile(path, oo)
	if err != nil {
		return nil, err
	}
	return extractAndClose(doc, opts)
}

// ReadBytes opens, validates, optionally transforms, and extracts a
// document from raw bytes.
func ReadBytes(data []byte, opts *Options) (*model.Model, error) {
	oo, err := opts.openOptions()
	if err != nil {
		return nil, err
	}
	doc, err := xmldoc.Open(data, oo)
	if err != nil {
		return nil, err
	}
	return extractAndClose(doc, opts)
}

// extractAndClose owns the handle from here on: whatever the transform or
// the extraction does, the handle is released before returning.
func extractAndClose(doc *xmldoc.Document, opts *Options) (m *model.Model, err error) {
	defer func() {
		if cerr := doc.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if opts != nil && opts.Transform != nil {
		if err := opts.Transform(doc); err != nil {
			return nil, fmt.Errorf("document transform: %w", err)
		}
	}
	return Extract(doc, opts)
}

// extractor carries the walk state: the document's core namespace, the math
// codec, and the model under construction.
type extractor struct {
	core string
	math mathml.Codec
	m    *model.Model
}

// Extract walks the document's model element into a model.Model. The
// caller keeps ownership of the handle.
//
// Parameters are read before reactions because bound and objective
// overrides resolve against them; objectives likewise. The remaining
// sections have no extraction-order dependencies.
func Extract(doc *xmldoc.Document, opts *Options) (*model.Model, error) {
	modelEl := doc.Model()
	if modelEl == nil {
		return nil, missingField("sbml", "", "model")
	}

	ex := &extractor{core: doc.CoreNS(), math: opts.math(), m: model.New()}

	steps := []func(*xmldoc.Element) error{
		ex.parameters,
		ex.unitDefinitions,
		ex.compartments,
		ex.species,
		ex.objectives,
		ex.reactions,
		ex.geneProducts,
		ex.functionDefinitions,
		ex.initialAssignments,
		ex.rules,
		ex.events,
		ex.constraints,
		ex.modelAttributes,
	}
	for _, step := range steps {
		if err := step(modelEl); err != nil {
			return nil, err
		}
	}
	return ex.m, nil
}

// listOf returns the entries of a list container child, or nil when the
// container is absent.
func (ex *extractor) listOf(parent *xmldoc.Element, list, entry string) []*xmldoc.Element {
	container := parent.Child(ex.core, list)
	if container == nil {
		return nil
	}
	return container.Children(ex.core, entry)
}

// rawChild returns the verbatim inner markup of a named child, for opaque
// notes and annotation content.
func (ex *extractor) rawChild(parent *xmldoc.Element, name string) string {
	c := parent.Child(ex.core, name)
	if c == nil {
		return ""
	}
	return c.RawInner()
}

// mathChild parses the MathML child of an element, if present.
func (ex *extractor) mathChild(parent *xmldoc.Element) (mathml.Expr, error) {
	c := parent.Child(mathml.Namespace, "math")
	if c == nil {
		return mathml.Expr{}, nil
	}
	expr, err := ex.math.Parse(c)
	if err != nil {
		return mathml.Expr{}, fmt.Errorf("parse math in <%s>: %w", parent.Name, err)
	}
	return expr, nil
}

func (ex *extractor) parameters(modelEl *xmldoc.Element) error {
	for _, el := range ex.listOf(modelEl, "listOfParameters", "parameter") {
		id, err := reqAttr(el, "", "id")
		if err != nil {
			return err
		}
		value, err := optFloat(el, "", "value")
		if err != nil {
			return err
		}
		constant, err := optBool(el, "", "constant")
		if err != nil {
			return err
		}
		ex.m.Parameters[id] = &model.Parameter{
			Name:     optAttr(el, "", "name"),
			Value:    value,
			Units:    optAttr(el, "", "units"),
			Constant: constant,
		}
	}
	return nil
}

func (ex *extractor) unitDefinitions(modelEl *xmldoc.Element) error {
	for _, el := range ex.listOf(modelEl, "listOfUnitDefinitions", "unitDefinition") {
		id, err := reqAttr(el, "", "id")
		if err != nil {
			return err
		}
		factor, err := ex.resolveUnits(el)
		if err != nil {
			return err
		}
		ex.m.UnitDefinitions[id] = factor
	}
	return nil
}

func (ex *extractor) compartments(modelEl *xmldoc.Element) error {
	for _, el := range ex.listOf(modelEl, "listOfCompartments", "compartment") {
		id, err := reqAttr(el, "", "id")
		if err != nil {
			return err
		}
		constant, err := optBool(el, "", "constant")
		if err != nil {
			return err
		}
		dims, err := optUint(el, "", "spatialDimensions")
		if err != nil {
			return err
		}
		size, err := optFloat(el, "", "size")
		if err != nil {
			return err
		}
		ex.m.Compartments[id] = &model.Compartment{
			Name:              optAttr(el, "", "name"),
			Constant:          constant,
			SpatialDimensions: dims,
			Size:              size,
			Units:             optAttr(el, "", "units"),
			Notes:             ex.rawChild(el, "notes"),
			Annotation:        ex.rawChild(el, "annotation"),
		}
	}
	return nil
}

func (ex *extractor) species(modelEl *xmldoc.Element) error {
	for _, el := range ex.listOf(modelEl, "listOfSpecies", "species") {
		id, err := reqAttr(el, "", "id")
		if err != nil {
			return err
		}
		boundary, err := optBool(el, "", "boundaryCondition")
		if err != nil {
			return err
		}
		onlySubstance, err := optBool(el, "", "hasOnlySubstanceUnits")
		if err != nil {
			return err
		}
		constant, err := optBool(el, "", "constant")
		if err != nil {
			return err
		}
		charge, err := optInt(el, xmldoc.FBCNS, "charge")
		if err != nil {
			return err
		}
		if charge == nil {
			// Pre-FBC documents carry charge as an unqualified core
			// attribute, the same era as LOWER_BOUND kinetic parameters.
			charge, err = optInt(el, "", "charge")
			if err != nil {
				return err
			}
		}

		units := optAttr(el, "", "substanceUnits")
		amount, err := optFloat(el, "", "initialAmount")
		if err != nil {
			return err
		}
		conc, err := optFloat(el, "", "initialConcentration")
		if err != nil {
			return err
		}

		sp := &model.Species{
			Name:               optAttr(el, "", "name"),
			Compartment:        optAttr(el, "", "compartment"),
			BoundaryCondition:  boundary,
			Formula:            optAttr(el, xmldoc.FBCNS, "chemicalFormula"),
			Charge:             charge,
			OnlySubstanceUnits: onlySubstance,
			Constant:           constant,
			Notes:              ex.rawChild(el, "notes"),
			Annotation:         ex.rawChild(el, "annotation"),
		}
		// Both pairs stay independent; the format intends at most one
		// to be meaningful but never enforces it.
		if amount != nil {
			sp.InitialAmount = &model.Amount{Value: *amount, Units: units}
		}
		if conc != nil {
			sp.InitialConcentration = &model.Amount{Value: *conc, Units: units}
		}
		ex.m.Species[id] = sp
	}
	return nil
}

func (ex *extractor) modelAttributes(modelEl *xmldoc.Element) error {
	ex.m.ID = optAttr(modelEl, "", "id")
	ex.m.Name = optAttr(modelEl, "", "name")
	ex.m.MetaID = optAttr(modelEl, "", "metaid")
	ex.m.AreaUnits = optAttr(modelEl, "", "areaUnits")
	ex.m.ExtentUnits = optAttr(modelEl, "", "extentUnits")
	ex.m.LengthUnits = optAttr(modelEl, "", "lengthUnits")
	ex.m.SubstanceUnits = optAttr(modelEl, "", "substanceUnits")
	ex.m.TimeUnits = optAttr(modelEl, "", "timeUnits")
	ex.m.VolumeUnits = optAttr(modelEl, "", "volumeUnits")
	ex.m.ConversionFactor = optAttr(modelEl, "", "conversionFactor")
	ex.m.Notes = ex.rawChild(modelEl, "notes")
	ex.m.Annotation = ex.rawChild(modelEl, "annotation")
	return nil
}
