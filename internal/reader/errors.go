package reader

import (
	"errors"
	"fmt"
)

// ExtractErrorCode categorizes extraction failures.
type ExtractErrorCode string

const (
	// CodeMissingField indicates a required identifier or attribute is
	// absent where the format mandates presence.
	CodeMissingField ExtractErrorCode = "MISSING_REQUIRED_FIELD"

	// CodeUnsupported indicates structurally valid input the library
	// recognizes but refuses to interpret, such as an unknown
	// gene-association node kind or an unparseable scalar.
	CodeUnsupported ExtractErrorCode = "UNSUPPORTED_CONSTRUCT"
)

// ExtractError is an error detected while walking a document into a model.
// Any ExtractError aborts the whole read; no partial model is returned.
type ExtractError struct {
	// Code identifies the error category.
	Code ExtractErrorCode

	// Element is the local name of the element being read.
	Element string

	// Field is the attribute or child involved, when one is.
	Field string

	// ID identifies the enclosing object, when known.
	ID string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ExtractError) Error() string {
	loc := "<" + e.Element + ">"
	if e.ID != "" {
		loc = fmt.Sprintf("<%s> %q", e.Element, e.ID)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s: %s", e.Code, loc, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, loc, e.Message)
}

// IsMissingField reports whether err is a missing-required-field failure.
// Uses errors.As to handle wrapped errors.
func IsMissingField(err error) bool {
	var ee *ExtractError
	if errors.As(err, &ee) {
		return ee.Code == CodeMissingField
	}
	return false
}

// IsUnsupported reports whether err is an unsupported-construct failure.
// Uses errors.As to handle wrapped errors.
func IsUnsupported(err error) bool {
	var ee *ExtractError
	if errors.As(err, &ee) {
		return ee.Code == CodeUnsupported
	}
	return false
}

func missingField(element, id, field string) *ExtractError {
	return &ExtractError{
		Code:    CodeMissingField,
		Element: element,
		Field:   field,
		ID:      id,
		Message: "required field is absent",
	}
}

func unsupported(element, id, msg string) *ExtractError {
	return &ExtractError{
		Code:    CodeUnsupported,
		Element: element,
		ID:      id,
		Message: msg,
	}
}
