package writer

import (
	"math"
	"strconv"

	"github.com/fluxbio/sbmlio/internal/model"
	"github.com/fluxbio/sbmlio/internal/xmldoc"
)

func (b *builder) geneProducts() {
	if len(b.m.GeneProducts) == 0 {
		return
	}
	list := b.list(xmldoc.FBCNS, "listOfGeneProducts")
	for _, id := range sortedKeys(b.m.GeneProducts) {
		gp := b.m.GeneProducts[id]
		el := xmldoc.NewElement(xmldoc.FBCNS, "geneProduct")
		el.SetAttr(xmldoc.FBCNS, "id", id)
		setOptAttr(el, xmldoc.FBCNS, "name", gp.Name)
		label := gp.Label
		if label == "" {
			// fbc:label is mandatory on gene products; fall back to
			// the id.
			label = id
		}
		el.SetAttr(xmldoc.FBCNS, "label", label)
		setOptAttr(el, "", "metaid", gp.MetaID)
		b.rawChild(el, "notes", gp.Notes)
		b.rawChild(el, "annotation", gp.Annotation)
		b.add(list, el)
	}
}

func (b *builder) reactions() {
	if len(b.m.Reactions) == 0 {
		return
	}
	list := b.list("", "listOfReactions")
	for _, id := range sortedKeys(b.m.Reactions) {
		r := b.m.Reactions[id]
		el := xmldoc.NewElement(b.core, "reaction")
		el.SetAttr("", "id", id)
		setOptAttr(el, "", "name", r.Name)
		el.SetAttr("", "reversible", strconv.FormatBool(r.Reversible))
		b.rawChild(el, "notes", r.Notes)
		b.rawChild(el, "annotation", r.Annotation)

		b.speciesReferences(el, r)

		// Kinetic math is the only thing a kinetic law is emitted for;
		// legacy bound parameters are an input dialect, not an output
		// one. Bounds go out in their FBC form below.
		if !r.KineticMath.IsZero() {
			kl := xmldoc.NewElement(b.core, "kineticLaw")
			b.mathChild(kl, r.KineticMath)
			b.add(el, kl)
		}

		if r.LowerBound != nil {
			pid := b.boundParameter(id+"_lower_bound", r.LowerBound)
			el.SetAttr(xmldoc.FBCNS, "lowerFluxBound", pid)
		}
		if r.UpperBound != nil {
			pid := b.boundParameter(id+"_upper_bound", r.UpperBound)
			el.SetAttr(xmldoc.FBCNS, "upperFluxBound", pid)
		}

		if r.GeneProductAssociation != nil {
			wrapper := xmldoc.NewElement(xmldoc.FBCNS, "geneProductAssociation")
			node, ok := b.encodeAssociation(r.GeneProductAssociation, id)
			if ok {
				b.add(wrapper, node)
				b.add(el, wrapper)
			}
		}
		b.add(list, el)
	}
}

// speciesReferences splits the signed stoichiometry map back into reactant
// and product lists by sign. Zero net coefficients are omitted entirely.
func (b *builder) speciesReferences(reactionEl *xmldoc.Element, r *model.Reaction) {
	var reactants, products *xmldoc.Element
	for _, sid := range sortedKeys(r.Stoichiometry) {
		coeff := r.Stoichiometry[sid]
		if coeff == 0 {
			continue
		}
		ref := xmldoc.NewElement(b.core, "speciesReference")
		ref.SetAttr("", "species", sid)
		ref.SetAttr("", "stoichiometry", formatFloat(math.Abs(coeff)))
		ref.SetAttr("", "constant", "true")
		if coeff < 0 {
			if reactants == nil {
				reactants = xmldoc.NewElement(b.core, "listOfReactants")
			}
			b.add(reactants, ref)
		} else {
			if products == nil {
				products = xmldoc.NewElement(b.core, "listOfProducts")
			}
			b.add(products, ref)
		}
	}
	if reactants != nil {
		b.add(reactionEl, reactants)
	}
	if products != nil {
		b.add(reactionEl, products)
	}
}

// boundParameter synthesizes the constant global parameter an FBC flux
// bound points at and returns its id. The FBCUnits sentinel means the
// bound never had a declared unit, so none is emitted.
func (b *builder) boundParameter(pid string, bound *model.Bound) string {
	// A model parameter with this id was already emitted (typically a
	// bound parameter surviving a previous read); reference it instead
	// of duplicating the id.
	if b.params[pid] {
		return pid
	}
	b.params[pid] = true
	list := b.list("", "listOfParameters")
	el := xmldoc.NewElement(b.core, "parameter")
	el.SetAttr("", "id", pid)
	el.SetAttr("", "value", formatFloat(bound.Value))
	el.SetAttr("", "constant", "true")
	if bound.Units != "" && bound.Units != model.FBCUnits {
		el.SetAttr("", "units", bound.Units)
	}
	b.add(list, el)
	return pid
}

func (b *builder) objectives() {
	objectives := b.m.Objectives
	active := b.m.ActiveObjective

	// A model carrying only legacy per-reaction coefficients still gets a
	// proper objective on output.
	if len(objectives) == 0 {
		synth := &model.Objective{Type: "maximize", FluxObjectives: make(map[string]float64)}
		for rid, r := range b.m.Reactions {
			if r.ObjectiveCoefficient != 0 {
				synth.FluxObjectives[rid] = r.ObjectiveCoefficient
			}
		}
		if len(synth.FluxObjectives) == 0 {
			return
		}
		objectives = map[string]*model.Objective{"obj": synth}
	}

	ids := sortedKeys(objectives)
	if active == "" {
		active = ids[0]
	}

	list := b.list(xmldoc.FBCNS, "listOfObjectives")
	list.SetAttr(xmldoc.FBCNS, "activeObjective", active)
	for _, id := range ids {
		obj := objectives[id]
		el := xmldoc.NewElement(xmldoc.FBCNS, "objective")
		el.SetAttr(xmldoc.FBCNS, "id", id)
		el.SetAttr(xmldoc.FBCNS, "type", obj.Type)
		if len(obj.FluxObjectives) > 0 {
			fos := xmldoc.NewElement(xmldoc.FBCNS, "listOfFluxObjectives")
			for _, rid := range sortedKeys(obj.FluxObjectives) {
				fo := xmldoc.NewElement(xmldoc.FBCNS, "fluxObjective")
				fo.SetAttr(xmldoc.FBCNS, "reaction", rid)
				fo.SetAttr(xmldoc.FBCNS, "coefficient", formatFloat(obj.FluxObjectives[rid]))
				b.add(fos, fo)
			}
			b.add(el, fos)
		}
		b.add(list, el)
	}
}
