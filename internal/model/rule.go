package model

import "github.com/fluxbio/sbmlio/internal/mathml"

// Rule is a sealed interface over the three SBML rule variants:
// AlgebraicRule, AssignmentRule, and RateRule. Rules keep document order on
// the Model.
type Rule interface {
	rule()
	// RuleMath returns the rule's math body.
	RuleMath() mathml.Expr
}

// AlgebraicRule constrains the model state to a zero of its math body.
type AlgebraicRule struct {
	Math mathml.Expr
}

func (AlgebraicRule) rule() {}

// RuleMath returns the rule's math body.
func (r AlgebraicRule) RuleMath() mathml.Expr { return r.Math }

// AssignmentRule continuously assigns its math body to Variable.
type AssignmentRule struct {
	Variable string
	Math     mathml.Expr
}

func (AssignmentRule) rule() {}

// RuleMath returns the rule's math body.
func (r AssignmentRule) RuleMath() mathml.Expr { return r.Math }

// RateRule sets the time derivative of Variable to its math body.
type RateRule struct {
	Variable string
	Math     mathml.Expr
}

func (RateRule) rule() {}

// RuleMath returns the rule's math body.
func (r RateRule) RuleMath() mathml.Expr { return r.Math }
