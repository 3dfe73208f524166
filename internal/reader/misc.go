package reader

import (
	"strings"

	"github.com/fluxbio/sbmlio/internal/model"
	"github.com/fluxbio/sbmlio/internal/xmldoc"
)

func (ex *extractor) functionDefinitions(modelEl *xmldoc.Element) error {
	for _, el := range ex.listOf(modelEl, "listOfFunctionDefinitions", "functionDefinition") {
		id, err := reqAttr(el, "", "id")
		if err != nil {
			return err
		}
		body, err := ex.mathChild(el)
		if err != nil {
			return err
		}
		ex.m.FunctionDefinitions[id] = &model.FunctionDefinition{
			Name:       optAttr(el, "", "name"),
			Body:       body,
			Notes:      ex.rawChild(el, "notes"),
			Annotation: ex.rawChild(el, "annotation"),
		}
	}
	return nil
}

func (ex *extractor) initialAssignments(modelEl *xmldoc.Element) error {
	for _, el := range ex.listOf(modelEl, "listOfInitialAssignments", "initialAssignment") {
		symbol, err := reqAttr(el, "", "symbol")
		if err != nil {
			return err
		}
		math, err := ex.mathChild(el)
		if err != nil {
			return err
		}
		ex.m.InitialAssignments = append(ex.m.InitialAssignments, model.InitialAssignment{
			Symbol: symbol,
			Math:   math,
		})
	}
	return nil
}

// rules reads the rule list in document order, dispatching on the three
// rule element names.
func (ex *extractor) rules(modelEl *xmldoc.Element) error {
	container := modelEl.Child(ex.core, "listOfRules")
	if container == nil {
		return nil
	}
	for _, el := range container.AllChildren() {
		if el.Space != ex.core {
			continue
		}
		math, err := ex.mathChild(el)
		if err != nil {
			return err
		}
		switch el.Name {
		case "algebraicRule":
			ex.m.Rules = append(ex.m.Rules, model.AlgebraicRule{Math: math})
		case "assignmentRule":
			variable, err := reqAttr(el, "", "variable")
			if err != nil {
				return err
			}
			ex.m.Rules = append(ex.m.Rules, model.AssignmentRule{Variable: variable, Math: math})
		case "rateRule":
			variable, err := reqAttr(el, "", "variable")
			if err != nil {
				return err
			}
			ex.m.Rules = append(ex.m.Rules, model.RateRule{Variable: variable, Math: math})
		default:
			return unsupported(el.Name, "", "unknown rule kind")
		}
	}
	return nil
}

func (ex *extractor) events(modelEl *xmldoc.Element) error {
	for _, el := range ex.listOf(modelEl, "listOfEvents", "event") {
		id, err := reqAttr(el, "", "id")
		if err != nil {
			return err
		}
		useTrigger, err := optBool(el, "", "useValuesFromTriggerTime")
		if err != nil {
			return err
		}
		ev := &model.Event{
			Name:                     optAttr(el, "", "name"),
			UseValuesFromTriggerTime: useTrigger,
		}

		if trg := el.Child(ex.core, "trigger"); trg != nil {
			persistent, err := optBool(trg, "", "persistent")
			if err != nil {
				return err
			}
			initial, err := optBool(trg, "", "initialValue")
			if err != nil {
				return err
			}
			math, err := ex.mathChild(trg)
			if err != nil {
				return err
			}
			ev.Trigger = &model.Trigger{
				Persistent:   persistent,
				InitialValue: initial,
				Math:         math,
			}
		}

		for _, ea := range ex.listOf(el, "listOfEventAssignments", "eventAssignment") {
			variable, err := reqAttr(ea, "", "variable")
			if err != nil {
				return err
			}
			math, err := ex.mathChild(ea)
			if err != nil {
				return err
			}
			ev.Assignments = append(ev.Assignments, model.EventAssignment{
				Variable: variable,
				Math:     math,
			})
		}
		ex.m.Events[id] = ev
	}
	return nil
}

func (ex *extractor) constraints(modelEl *xmldoc.Element) error {
	for _, el := range ex.listOf(modelEl, "listOfConstraints", "constraint") {
		math, err := ex.mathChild(el)
		if err != nil {
			return err
		}
		var message string
		if msg := el.Child(ex.core, "message"); msg != nil {
			message = flattenText(msg)
		}
		ex.m.Constraints = append(ex.m.Constraints, model.Constraint{
			Math:    math,
			Message: message,
		})
	}
	return nil
}

// flattenText collects an element's character data recursively, dropping
// all markup and namespace information.
func flattenText(el *xmldoc.Element) string {
	var parts []string
	if t := el.Text(); t != "" {
		parts = append(parts, t)
	}
	for _, c := range el.AllChildren() {
		if t := flattenText(c); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
