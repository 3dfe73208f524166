package writer

import (
	"github.com/fluxbio/sbmlio/internal/model"
	"github.com/fluxbio/sbmlio/internal/xmldoc"
)

// encodeAssociation allocates the document node for one association
// variant, recursing over And/Or children in list order. The union is
// sealed, so the default branch can only fire on a nil sub-association;
// like every other structural problem on the write path it becomes a
// warning, not an abort.
func (b *builder) encodeAssociation(a model.Association, reactionID string) (*xmldoc.Element, bool) {
	switch node := a.(type) {
	case model.GeneRef:
		el := xmldoc.NewElement(xmldoc.FBCNS, "geneProductRef")
		el.SetAttr(xmldoc.FBCNS, "geneProduct", node.Gene)
		return el, true

	case model.GeneAnd:
		el := xmldoc.NewElement(xmldoc.FBCNS, "and")
		b.encodeTerms(el, node.Terms, reactionID)
		return el, true

	case model.GeneOr:
		el := xmldoc.NewElement(xmldoc.FBCNS, "or")
		b.encodeTerms(el, node.Terms, reactionID)
		return el, true

	default:
		b.warn("reaction %s: skipped gene association node %T", reactionID, a)
		return nil, false
	}
}

func (b *builder) encodeTerms(parent *xmldoc.Element, terms []model.Association, reactionID string) {
	for _, term := range terms {
		child, ok := b.encodeAssociation(term, reactionID)
		if ok {
			b.add(parent, child)
		}
	}
}
