package model

import "strings"

// Association is a sealed interface over the three gene-product
// association variants. Only GeneRef, GeneAnd, and GeneOr implement it;
// anything else a document carries is rejected at decode time rather than
// silently dropped.
type Association interface {
	association()
	// String renders the association in the conventional boolean rule
	// syntax, mainly for diagnostics and tests.
	String() string
}

// GeneRef is a leaf association referencing one gene product by id.
type GeneRef struct {
	Gene string
}

func (GeneRef) association() {}

func (r GeneRef) String() string {
	return r.Gene
}

// GeneAnd requires every sub-association. Child order is preserved from the
// source document.
type GeneAnd struct {
	Terms []Association
}

func (GeneAnd) association() {}

func (a GeneAnd) String() string {
	return joinTerms(a.Terms, " and ")
}

// GeneOr requires at least one sub-association. Child order is preserved
// from the source document.
type GeneOr struct {
	Terms []Association
}

func (GeneOr) association() {}

func (o GeneOr) String() string {
	return joinTerms(o.Terms, " or ")
}

func joinTerms(terms []Association, sep string) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		switch t.(type) {
		case GeneAnd, GeneOr:
			parts[i] = "(" + t.String() + ")"
		default:
			parts[i] = t.String()
		}
	}
	return strings.Join(parts, sep)
}
