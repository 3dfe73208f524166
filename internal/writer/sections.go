package writer

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/fluxbio/sbmlio/internal/model"
	"github.com/fluxbio/sbmlio/internal/xmldoc"
)

func (b *builder) parameters() {
	if len(b.m.Parameters) == 0 {
		return
	}
	list := b.list("", "listOfParameters")
	for _, id := range sortedKeys(b.m.Parameters) {
		p := b.m.Parameters[id]
		b.params[id] = true
		el := xmldoc.NewElement(b.core, "parameter")
		el.SetAttr("", "id", id)
		setOptAttr(el, "", "name", p.Name)
		if p.Value != nil {
			el.SetAttr("", "value", formatFloat(*p.Value))
		}
		setOptAttr(el, "", "units", p.Units)
		setBoolAttr(el, "", "constant", p.Constant)
		b.add(list, el)
	}
}

func (b *builder) unitDefinitions() {
	if len(b.m.UnitDefinitions) == 0 {
		return
	}
	list := b.list("", "listOfUnitDefinitions")
	for _, id := range sortedKeys(b.m.UnitDefinitions) {
		def := xmldoc.NewElement(b.core, "unitDefinition")
		def.SetAttr("", "id", id)
		// The model keeps only the resolved factor, so the definition
		// is emitted as a single dimensionless term carrying it.
		units := xmldoc.NewElement(b.core, "listOfUnits")
		unit := xmldoc.NewElement(b.core, "unit")
		unit.SetAttr("", "kind", "dimensionless")
		unit.SetAttr("", "exponent", "1")
		unit.SetAttr("", "scale", "0")
		unit.SetAttr("", "multiplier", formatFloat(b.m.UnitDefinitions[id]))
		b.add(units, unit)
		b.add(def, units)
		b.add(list, def)
	}
}

func (b *builder) compartments() {
	if len(b.m.Compartments) == 0 {
		return
	}
	list := b.list("", "listOfCompartments")
	for _, id := range sortedKeys(b.m.Compartments) {
		c := b.m.Compartments[id]
		el := xmldoc.NewElement(b.core, "compartment")
		el.SetAttr("", "id", id)
		setOptAttr(el, "", "name", c.Name)
		setBoolAttr(el, "", "constant", c.Constant)
		if c.SpatialDimensions != nil {
			el.SetAttr("", "spatialDimensions", strconv.FormatUint(uint64(*c.SpatialDimensions), 10))
		}
		if c.Size != nil {
			el.SetAttr("", "size", formatFloat(*c.Size))
		}
		setOptAttr(el, "", "units", c.Units)
		b.rawChild(el, "notes", c.Notes)
		b.rawChild(el, "annotation", c.Annotation)
		b.add(list, el)
	}
}

func (b *builder) species() {
	if len(b.m.Species) == 0 {
		return
	}
	list := b.list("", "listOfSpecies")
	for _, id := range sortedKeys(b.m.Species) {
		s := b.m.Species[id]
		el := xmldoc.NewElement(b.core, "species")
		el.SetAttr("", "id", id)
		setOptAttr(el, "", "name", s.Name)
		setOptAttr(el, "", "compartment", s.Compartment)
		setBoolAttr(el, "", "boundaryCondition", s.BoundaryCondition)
		setBoolAttr(el, "", "hasOnlySubstanceUnits", s.OnlySubstanceUnits)
		setBoolAttr(el, "", "constant", s.Constant)
		if s.InitialAmount != nil {
			el.SetAttr("", "initialAmount", formatFloat(s.InitialAmount.Value))
			setOptAttr(el, "", "substanceUnits", s.InitialAmount.Units)
		}
		if s.InitialConcentration != nil {
			el.SetAttr("", "initialConcentration", formatFloat(s.InitialConcentration.Value))
			// Both pairs share the one substanceUnits attribute.
			if s.InitialAmount != nil && s.InitialConcentration.Units != s.InitialAmount.Units {
				b.warn("species %s: conflicting substanceUnits %q and %q; a single attribute is emitted",
					id, s.InitialAmount.Units, s.InitialConcentration.Units)
			}
			setOptAttr(el, "", "substanceUnits", s.InitialConcentration.Units)
		}
		if s.Charge != nil {
			el.SetAttr(xmldoc.FBCNS, "charge", strconv.Itoa(*s.Charge))
		}
		setOptAttr(el, xmldoc.FBCNS, "chemicalFormula", s.Formula)
		b.rawChild(el, "notes", s.Notes)
		b.rawChild(el, "annotation", s.Annotation)
		b.add(list, el)
	}
}

func (b *builder) functionDefinitions() {
	if len(b.m.FunctionDefinitions) == 0 {
		return
	}
	list := b.list("", "listOfFunctionDefinitions")
	for _, id := range sortedKeys(b.m.FunctionDefinitions) {
		fd := b.m.FunctionDefinitions[id]
		el := xmldoc.NewElement(b.core, "functionDefinition")
		el.SetAttr("", "id", id)
		setOptAttr(el, "", "name", fd.Name)
		b.rawChild(el, "notes", fd.Notes)
		b.rawChild(el, "annotation", fd.Annotation)
		b.mathChild(el, fd.Body)
		b.add(list, el)
	}
}

func (b *builder) initialAssignments() {
	if len(b.m.InitialAssignments) == 0 {
		return
	}
	list := b.list("", "listOfInitialAssignments")
	for _, ia := range b.m.InitialAssignments {
		el := xmldoc.NewElement(b.core, "initialAssignment")
		el.SetAttr("", "symbol", ia.Symbol)
		b.mathChild(el, ia.Math)
		b.add(list, el)
	}
}

func (b *builder) constraints() {
	if len(b.m.Constraints) == 0 {
		return
	}
	list := b.list("", "listOfConstraints")
	for _, c := range b.m.Constraints {
		el := xmldoc.NewElement(b.core, "constraint")
		b.mathChild(el, c.Math)
		if c.Message != "" {
			msg := xmldoc.NewElement(b.core, "message")
			msg.SetText(c.Message)
			b.add(el, msg)
		}
		b.add(list, el)
	}
}

func (b *builder) rules() {
	if len(b.m.Rules) == 0 {
		return
	}
	list := b.list("", "listOfRules")
	for _, r := range b.m.Rules {
		var el *xmldoc.Element
		switch rule := r.(type) {
		case model.AlgebraicRule:
			el = xmldoc.NewElement(b.core, "algebraicRule")
		case model.AssignmentRule:
			el = xmldoc.NewElement(b.core, "assignmentRule")
			el.SetAttr("", "variable", rule.Variable)
		case model.RateRule:
			el = xmldoc.NewElement(b.core, "rateRule")
			el.SetAttr("", "variable", rule.Variable)
		default:
			b.warn("skipped rule of unknown kind %T", r)
			continue
		}
		b.mathChild(el, r.RuleMath())
		b.add(list, el)
	}
}

func (b *builder) events() {
	if len(b.m.Events) == 0 {
		return
	}
	list := b.list("", "listOfEvents")
	for _, id := range sortedKeys(b.m.Events) {
		ev := b.m.Events[id]
		el := xmldoc.NewElement(b.core, "event")
		el.SetAttr("", "id", id)
		setOptAttr(el, "", "name", ev.Name)
		setBoolAttr(el, "", "useValuesFromTriggerTime", ev.UseValuesFromTriggerTime)

		if ev.Trigger != nil {
			trg := xmldoc.NewElement(b.core, "trigger")
			setBoolAttr(trg, "", "persistent", ev.Trigger.Persistent)
			setBoolAttr(trg, "", "initialValue", ev.Trigger.InitialValue)
			b.mathChild(trg, ev.Trigger.Math)
			b.add(el, trg)
		}
		if len(ev.Assignments) > 0 {
			eas := xmldoc.NewElement(b.core, "listOfEventAssignments")
			for _, ea := range ev.Assignments {
				eael := xmldoc.NewElement(b.core, "eventAssignment")
				eael.SetAttr("", "variable", ea.Variable)
				b.mathChild(eael, ea.Math)
				b.add(eas, eael)
			}
			b.add(el, eas)
		}
		b.add(list, el)
	}
}

func (b *builder) modelAttributes(opts *Options) {
	m := b.m
	switch {
	case m.MetaID != "":
		b.modelEl.SetAttr("", "metaid", m.MetaID)
	case opts != nil && opts.GenerateMetaID:
		b.modelEl.SetAttr("", "metaid", "meta_"+uuid.NewString())
	}
	setOptAttr(b.modelEl, "", "conversionFactor", m.ConversionFactor)
	setOptAttr(b.modelEl, "", "areaUnits", m.AreaUnits)
	setOptAttr(b.modelEl, "", "extentUnits", m.ExtentUnits)
	setOptAttr(b.modelEl, "", "lengthUnits", m.LengthUnits)
	setOptAttr(b.modelEl, "", "substanceUnits", m.SubstanceUnits)
	setOptAttr(b.modelEl, "", "timeUnits", m.TimeUnits)
	setOptAttr(b.modelEl, "", "volumeUnits", m.VolumeUnits)
	b.rawChild(b.modelEl, "notes", m.Notes)
	b.rawChild(b.modelEl, "annotation", m.Annotation)
}
