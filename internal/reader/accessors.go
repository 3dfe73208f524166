package reader

import (
	"strconv"

	"github.com/fluxbio/sbmlio/internal/xmldoc"
)

// Primitive accessors. The engine exposes presence and value as one
// combined query, so a getter is never observed against an unset field;
// these wrappers add the required/optional distinction and scalar parsing
// on top.

// reqAttr returns an attribute the format mandates. Absence is a
// MissingRequiredField failure, never an empty string.
func reqAttr(el *xmldoc.Element, space, name string) (string, error) {
	v, ok := el.Attr(space, name)
	if !ok {
		id, _ := el.Attr(space, "id")
		return "", missingField(el.Name, id, name)
	}
	return v, nil
}

// optAttr returns an optional attribute; empty string means unset.
func optAttr(el *xmldoc.Element, space, name string) string {
	v, _ := el.Attr(space, name)
	return v
}

// optFloat parses an optional real attribute; nil means unset.
func optFloat(el *xmldoc.Element, space, name string) (*float64, error) {
	v, ok := el.Attr(space, name)
	if !ok {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, unsupported(el.Name, optAttr(el, space, "id"),
			"attribute "+name+" is not a number: "+v)
	}
	return &f, nil
}

// optInt parses an optional integer attribute; nil means unset.
func optInt(el *xmldoc.Element, space, name string) (*int, error) {
	v, ok := el.Attr(space, name)
	if !ok {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, unsupported(el.Name, optAttr(el, space, "id"),
			"attribute "+name+" is not an integer: "+v)
	}
	return &n, nil
}

// optUint parses an optional non-negative integer attribute; nil means
// unset.
func optUint(el *xmldoc.Element, space, name string) (*uint, error) {
	v, ok := el.Attr(space, name)
	if !ok {
		return nil, nil
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return nil, unsupported(el.Name, optAttr(el, space, "id"),
			"attribute "+name+" is not a non-negative integer: "+v)
	}
	u := uint(n)
	return &u, nil
}

// optBool parses an optional boolean attribute; nil means unset.
func optBool(el *xmldoc.Element, space, name string) (*bool, error) {
	v, ok := el.Attr(space, name)
	if !ok {
		return nil, nil
	}
	switch v {
	case "true", "1":
		b := true
		return &b, nil
	case "false", "0":
		b := false
		return &b, nil
	default:
		return nil, unsupported(el.Name, optAttr(el, space, "id"),
			"attribute "+name+" is not a boolean: "+v)
	}
}

// floatOrDefault parses an optional real attribute with a fallback value.
func floatOrDefault(el *xmldoc.Element, space, name string, def float64) (float64, error) {
	f, err := optFloat(el, space, name)
	if err != nil {
		return 0, err
	}
	if f == nil {
		return def, nil
	}
	return *f, nil
}
