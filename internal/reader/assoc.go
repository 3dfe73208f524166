package reader

import (
	"github.com/fluxbio/sbmlio/internal/model"
	"github.com/fluxbio/sbmlio/internal/xmldoc"
)

// decodeAssociation reads the single association node under an
// fbc:geneProductAssociation wrapper.
func (ex *extractor) decodeAssociation(wrapper *xmldoc.Element, reactionID string) (model.Association, error) {
	var node *xmldoc.Element
	for _, c := range wrapper.AllChildren() {
		if c.Space == xmldoc.FBCNS {
			node = c
			break
		}
	}
	if node == nil {
		return nil, missingField(wrapper.Name, reactionID, "association")
	}
	return ex.decodeAssociationNode(node, reactionID)
}

// decodeAssociationNode dispatches on the node's tag across the three known
// association kinds. And/Or decode their children in document order; any
// other tag is an UnsupportedConstruct, never a silently dropped subtree.
func (ex *extractor) decodeAssociationNode(node *xmldoc.Element, reactionID string) (model.Association, error) {
	switch node.Name {
	case "geneProductRef":
		gene, err := reqAttr(node, xmldoc.FBCNS, "geneProduct")
		if err != nil {
			return nil, err
		}
		return model.GeneRef{Gene: gene}, nil

	case "and":
		terms, err := ex.decodeAssociationTerms(node, reactionID)
		if err != nil {
			return nil, err
		}
		return model.GeneAnd{Terms: terms}, nil

	case "or":
		terms, err := ex.decodeAssociationTerms(node, reactionID)
		if err != nil {
			return nil, err
		}
		return model.GeneOr{Terms: terms}, nil

	default:
		return nil, unsupported(node.Name, reactionID,
			"unknown gene association node kind")
	}
}

func (ex *extractor) decodeAssociationTerms(node *xmldoc.Element, reactionID string) ([]model.Association, error) {
	var terms []model.Association
	for _, c := range node.AllChildren() {
		if c.Space != xmldoc.FBCNS {
			continue
		}
		term, err := ex.decodeAssociationNode(c, reactionID)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	return terms, nil
}
