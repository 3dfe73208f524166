// Package model holds the in-memory representation of an SBML model.
//
// Values here are plain and self-contained: no document handles, no
// back-references, no shared mutable state. Cross-references (a species'
// compartment, a reaction's species ids) are id strings that readers and
// writers assume resolve against the owning Model's maps; construction does
// not enforce it.
package model

import "github.com/fluxbio/sbmlio/internal/mathml"

// FBCUnits is the sentinel units tag for a flux bound that came from an FBC
// bound-parameter reference. No unit-definition lookup applies to it.
const FBCUnits = "[fbc]"

// Model is the root aggregate.
type Model struct {
	ID     string
	Name   string
	MetaID string

	Parameters          map[string]*Parameter
	UnitDefinitions     map[string]float64
	Compartments        map[string]*Compartment
	Species             map[string]*Species
	Reactions           map[string]*Reaction
	GeneProducts        map[string]*GeneProduct
	FunctionDefinitions map[string]*FunctionDefinition
	Objectives          map[string]*Objective
	Events              map[string]*Event

	Rules              []Rule
	Constraints        []Constraint
	InitialAssignments []InitialAssignment

	// ActiveObjective names the objective in effect for optimization.
	ActiveObjective string

	// Unit category ids; empty means unset.
	AreaUnits      string
	ExtentUnits    string
	LengthUnits    string
	SubstanceUnits string
	TimeUnits      string
	VolumeUnits    string

	ConversionFactor string

	// Notes and Annotation are opaque pre-serialized markup, passed
	// through verbatim in both directions.
	Notes      string
	Annotation string
}

// New returns a Model with every map allocated.
func New() *Model {
	return &Model{
		Parameters:          make(map[string]*Parameter),
		UnitDefinitions:     make(map[string]float64),
		Compartments:        make(map[string]*Compartment),
		Species:             make(map[string]*Species),
		Reactions:           make(map[string]*Reaction),
		GeneProducts:        make(map[string]*GeneProduct),
		FunctionDefinitions: make(map[string]*FunctionDefinition),
		Objectives:          make(map[string]*Objective),
		Events:              make(map[string]*Event),
	}
}

// HasFBC reports whether the model carries flux-balance data that needs the
// FBC package on output. Species count because their charge and chemical
// formula live in FBC attributes; reactions count when they carry bounds, a
// gene association, or a nonzero objective coefficient, since all of those
// are emitted in FBC form.
func (m *Model) HasFBC() bool {
	if len(m.GeneProducts) > 0 || len(m.Objectives) > 0 || len(m.Species) > 0 {
		return true
	}
	for _, r := range m.Reactions {
		if r.LowerBound != nil || r.UpperBound != nil ||
			r.GeneProductAssociation != nil || r.ObjectiveCoefficient != 0 {
			return true
		}
	}
	return false
}

// Compartment is a bounded space species live in.
type Compartment struct {
	Name              string
	Constant          *bool
	SpatialDimensions *uint
	Size              *float64
	Units             string
	Notes             string
	Annotation        string
}

// Amount pairs a numeric value with the id of the units it is measured in.
type Amount struct {
	Value float64
	Units string
}

// Species is a chemical species. InitialAmount and InitialConcentration are
// independent optionals; the format intends at most one to be meaningful but
// does not enforce it, and neither does this library.
type Species struct {
	Name                 string
	Compartment          string
	BoundaryCondition    *bool
	Formula              string
	Charge               *int
	InitialAmount        *Amount
	InitialConcentration *Amount
	OnlySubstanceUnits   *bool
	Constant             *bool
	Notes                string
	Annotation           string
}

// Bound is one flux bound: a value and the units it was declared in, or
// FBCUnits when it came from an FBC bound-parameter reference.
type Bound struct {
	Value float64
	Units string
}

// Reaction is a chemical reaction.
//
// Stoichiometry maps species id to the signed net coefficient: negative for
// net consumption, positive for net production. A species listed on both
// sides has its coefficients algebraically summed.
type Reaction struct {
	Name string

	Stoichiometry map[string]float64

	LowerBound *Bound
	UpperBound *Bound

	// ObjectiveCoefficient defaults to 0.0 for reactions outside the
	// objective.
	ObjectiveCoefficient float64

	GeneProductAssociation Association
	KineticMath            mathml.Expr

	// Reversible defaults to true, per the format.
	Reversible bool

	Notes      string
	Annotation string
}

// NewReaction returns a Reaction with format defaults applied.
func NewReaction() *Reaction {
	return &Reaction{
		Stoichiometry: make(map[string]float64),
		Reversible:    true,
	}
}

// GeneProduct is one gene or gene product referenced by associations.
type GeneProduct struct {
	Name       string
	Label      string
	MetaID     string
	Notes      string
	Annotation string
}

// FunctionDefinition is a named reusable math body.
type FunctionDefinition struct {
	Name       string
	Body       mathml.Expr
	Notes      string
	Annotation string
}

// Parameter is a global named value.
type Parameter struct {
	Name     string
	Value    *float64
	Units    string
	Constant *bool
}

// Objective is an optimization target over reaction fluxes.
type Objective struct {
	// Type is the optimization sense, e.g. "maximize".
	Type string
	// FluxObjectives maps reaction id to its coefficient in this
	// objective.
	FluxObjectives map[string]float64
}

// InitialAssignment sets a symbol from a math expression at time zero.
type InitialAssignment struct {
	Symbol string
	Math   mathml.Expr
}

// Constraint is a model-level condition with a human-readable message.
// Message is plain text; markup namespaces inside the source message are
// not preserved.
type Constraint struct {
	Math    mathml.Expr
	Message string
}

// Trigger fires an event.
type Trigger struct {
	Persistent   *bool
	InitialValue *bool
	Math         mathml.Expr
}

// EventAssignment applies a value to a variable when an event fires.
type EventAssignment struct {
	Variable string
	Math     mathml.Expr
}

// Event is a discrete state change.
type Event struct {
	Name                     string
	UseValuesFromTriggerTime *bool
	Trigger                  *Trigger
	Assignments              []EventAssignment
}
