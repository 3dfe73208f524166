// Package mathml is the boundary to the math-expression collaborator.
//
// The rest of the library never interprets formulas. Kinetic laws, rules,
// triggers, event assignments, initial assignments and constraints all carry
// an Expr, and the Codec interface is the only way an Expr crosses into or
// out of a document. Callers that want real expression-tree handling
// (simplification, evaluation) inject their own Codec; the default RawCodec
// preserves the MathML subtree verbatim.
package mathml

import (
	"fmt"

	"github.com/fluxbio/sbmlio/internal/xmldoc"
)

// Namespace is the MathML content namespace used by math elements.
const Namespace = "http://www.w3.org/1998/Math/MathML"

// Expr is an opaque mathematical expression.
//
// The zero value is "no expression". With the default codec the payload is
// the raw inner MathML of the source <math> element; a custom Codec may
// store any serialized form it can round-trip.
type Expr struct {
	raw string
}

// NewExpr wraps already-serialized MathML content (the children of a <math>
// element, without the <math> wrapper itself).
func NewExpr(inner string) Expr {
	return Expr{raw: inner}
}

// IsZero reports whether the expression is absent.
func (e Expr) IsZero() bool {
	return e.raw == ""
}

// Raw returns the serialized payload. Empty for the zero Expr.
func (e Expr) Raw() string {
	return e.raw
}

// Codec converts between document math nodes and Expr values.
//
// Parse receives the <math> element itself. Build must return a complete
// <math> element ready to attach to a parent.
type Codec interface {
	Parse(el *xmldoc.Element) (Expr, error)
	Build(e Expr) (*xmldoc.Element, error)
}

// RawCodec passes MathML through without interpreting it.
type RawCodec struct{}

// Parse captures the element's inner markup verbatim.
func (RawCodec) Parse(el *xmldoc.Element) (Expr, error) {
	if el == nil {
		return Expr{}, fmt.Errorf("parse math: nil element")
	}
	return Expr{raw: el.RawInner()}, nil
}

// Build emits a <math> element carrying the stored markup.
func (RawCodec) Build(e Expr) (*xmldoc.Element, error) {
	if e.IsZero() {
		return nil, fmt.Errorf("build math: empty expression")
	}
	el := xmldoc.NewElement(Namespace, "math")
	el.SetRawInner(e.raw)
	return el, nil
}
