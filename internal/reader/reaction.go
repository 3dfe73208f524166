package reader

import (
	"github.com/fluxbio/sbmlio/internal/model"
	"github.com/fluxbio/sbmlio/internal/xmldoc"
)

// Legacy kinetic-law parameter ids carrying flux metadata in pre-FBC
// models.
const (
	legacyLowerBound   = "LOWER_BOUND"
	legacyUpperBound   = "UPPER_BOUND"
	legacyObjectiveKey = "OBJECTIVE_COEFFICIENT"
)

// fbcListOf returns the entries of an FBC list container child.
func (ex *extractor) fbcListOf(parent *xmldoc.Element, list, entry string) []*xmldoc.Element {
	container := parent.Child(xmldoc.FBCNS, list)
	if container == nil {
		return nil
	}
	return container.Children(xmldoc.FBCNS, entry)
}

func (ex *extractor) objectives(modelEl *xmldoc.Element) error {
	container := modelEl.Child(xmldoc.FBCNS, "listOfObjectives")
	if container == nil {
		return nil
	}
	ex.m.ActiveObjective = optAttr(container, xmldoc.FBCNS, "activeObjective")

	for _, el := range container.Children(xmldoc.FBCNS, "objective") {
		id, err := reqAttr(el, xmldoc.FBCNS, "id")
		if err != nil {
			return err
		}
		typ, err := reqAttr(el, xmldoc.FBCNS, "type")
		if err != nil {
			return err
		}
		obj := &model.Objective{Type: typ, FluxObjectives: make(map[string]float64)}
		for _, fo := range ex.fbcListOf(el, "listOfFluxObjectives", "fluxObjective") {
			rid, err := reqAttr(fo, xmldoc.FBCNS, "reaction")
			if err != nil {
				return err
			}
			coeff, err := optFloat(fo, xmldoc.FBCNS, "coefficient")
			if err != nil {
				return err
			}
			if coeff == nil {
				return missingField(fo.Name, rid, "coefficient")
			}
			obj.FluxObjectives[rid] = *coeff
		}
		ex.m.Objectives[id] = obj
	}
	return nil
}

func (ex *extractor) geneProducts(modelEl *xmldoc.Element) error {
	for _, el := range ex.fbcListOf(modelEl, "listOfGeneProducts", "geneProduct") {
		id, err := reqAttr(el, xmldoc.FBCNS, "id")
		if err != nil {
			return err
		}
		ex.m.GeneProducts[id] = &model.GeneProduct{
			Name:       optAttr(el, xmldoc.FBCNS, "name"),
			Label:      optAttr(el, xmldoc.FBCNS, "label"),
			MetaID:     optAttr(el, "", "metaid"),
			Notes:      ex.rawChild(el, "notes"),
			Annotation: ex.rawChild(el, "annotation"),
		}
	}
	return nil
}

func (ex *extractor) reactions(modelEl *xmldoc.Element) error {
	for _, el := range ex.listOf(modelEl, "listOfReactions", "reaction") {
		id, err := reqAttr(el, "", "id")
		if err != nil {
			return err
		}
		r := model.NewReaction()
		r.Name = optAttr(el, "", "name")
		r.Notes = ex.rawChild(el, "notes")
		r.Annotation = ex.rawChild(el, "annotation")

		reversible, err := optBool(el, "", "reversible")
		if err != nil {
			return err
		}
		if reversible != nil {
			r.Reversible = *reversible
		}

		if err := ex.stoichiometry(el, "listOfReactants", -1, r); err != nil {
			return err
		}
		if err := ex.stoichiometry(el, "listOfProducts", +1, r); err != nil {
			return err
		}
		if err := ex.kineticLaw(el, r); err != nil {
			return err
		}
		if err := ex.fbcBounds(el, r); err != nil {
			return err
		}
		ex.objectiveCoefficient(id, r)

		if gpa := el.Child(xmldoc.FBCNS, "geneProductAssociation"); gpa != nil {
			assoc, err := ex.decodeAssociation(gpa, id)
			if err != nil {
				return err
			}
			r.GeneProductAssociation = assoc
		}
		ex.m.Reactions[id] = r
	}
	return nil
}

// stoichiometry accumulates signed coefficients from one side of the
// reaction. A species appearing on both sides sums algebraically to its
// net coefficient.
func (ex *extractor) stoichiometry(reactionEl *xmldoc.Element, list string, sign float64, r *model.Reaction) error {
	for _, ref := range ex.listOf(reactionEl, list, "speciesReference") {
		species, err := reqAttr(ref, "", "species")
		if err != nil {
			return err
		}
		coeff, err := floatOrDefault(ref, "", "stoichiometry", 1)
		if err != nil {
			return err
		}
		r.Stoichiometry[species] += sign * coeff
	}
	return nil
}

// kineticLaw reads the reaction's kinetic math and the legacy flux-bound
// parameters. Legacy values load first; FBC overrides come afterwards in
// fbcBounds and objectiveCoefficient.
func (ex *extractor) kineticLaw(reactionEl *xmldoc.Element, r *model.Reaction) error {
	kl := reactionEl.Child(ex.core, "kineticLaw")
	if kl == nil {
		return nil
	}
	math, err := ex.mathChild(kl)
	if err != nil {
		return err
	}
	r.KineticMath = math

	params := ex.listOf(kl, "listOfLocalParameters", "localParameter")
	params = append(params, ex.listOf(kl, "listOfParameters", "parameter")...)
	for _, p := range params {
		id, err := reqAttr(p, "", "id")
		if err != nil {
			return err
		}
		value, err := optFloat(p, "", "value")
		if err != nil {
			return err
		}
		if value == nil {
			continue
		}
		units := optAttr(p, "", "units")
		switch id {
		case legacyLowerBound:
			r.LowerBound = &model.Bound{Value: *value, Units: units}
		case legacyUpperBound:
			r.UpperBound = &model.Bound{Value: *value, Units: units}
		case legacyObjectiveKey:
			r.ObjectiveCoefficient = *value
		}
	}
	return nil
}

// fbcBounds applies the FBC bound-parameter references. A reference that
// resolves against the model's parameters overrides the legacy value and is
// tagged with the FBCUnits sentinel; an unresolvable reference leaves the
// legacy value standing.
func (ex *extractor) fbcBounds(reactionEl *xmldoc.Element, r *model.Reaction) error {
	if pid := optAttr(reactionEl, xmldoc.FBCNS, "lowerFluxBound"); pid != "" {
		if p, ok := ex.m.Parameters[pid]; ok && p.Value != nil {
			r.LowerBound = &model.Bound{Value: *p.Value, Units: model.FBCUnits}
		}
	}
	if pid := optAttr(reactionEl, xmldoc.FBCNS, "upperFluxBound"); pid != "" {
		if p, ok := ex.m.Parameters[pid]; ok && p.Value != nil {
			r.UpperBound = &model.Bound{Value: *p.Value, Units: model.FBCUnits}
		}
	}
	return nil
}

// objectiveCoefficient overrides the legacy kinetic-law coefficient with a
// matching flux objective. The active objective is consulted first; with no
// active id set, the first objective naming the reaction wins.
func (ex *extractor) objectiveCoefficient(reactionID string, r *model.Reaction) {
	if active, ok := ex.m.Objectives[ex.m.ActiveObjective]; ok {
		if coeff, ok := active.FluxObjectives[reactionID]; ok {
			r.ObjectiveCoefficient = coeff
			return
		}
	}
	if ex.m.ActiveObjective != "" {
		return
	}
	for _, obj := range ex.m.Objectives {
		if coeff, ok := obj.FluxObjectives[reactionID]; ok {
			r.ObjectiveCoefficient = coeff
			return
		}
	}
}
