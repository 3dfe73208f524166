// Package sbmlio reads and writes SBML models, including the FBC package
// used by genome-scale metabolic models.
//
// The in-memory Model is a plain value type; documents are read all-or-
// nothing and written back as Level 3 Version 2, or Level 3 Version 1 with
// FBC when the model carries flux-balance data.
package sbmlio

import (
	"bytes"
	"io"

	"github.com/fluxbio/sbmlio/internal/model"
	"github.com/fluxbio/sbmlio/internal/reader"
	"github.com/fluxbio/sbmlio/internal/writer"
)

// Model and its components, re-exported for callers.
type (
	Model              = model.Model
	Compartment        = model.Compartment
	Species            = model.Species
	Reaction           = model.Reaction
	Bound              = model.Bound
	Amount             = model.Amount
	Parameter          = model.Parameter
	GeneProduct        = model.GeneProduct
	FunctionDefinition = model.FunctionDefinition
	Objective          = model.Objective
	Event              = model.Event
	Constraint         = model.Constraint
	Association        = model.Association
	GeneRef            = model.GeneRef
	GeneAnd            = model.GeneAnd
	GeneOr             = model.GeneOr
)

// FBCUnits is the sentinel units tag for bounds sourced from FBC
// bound-parameter references.
const FBCUnits = model.FBCUnits

// ReadOptions configures reading; see reader.Options.
type ReadOptions = reader.Options

// WriteOptions configures writing; see writer.Options.
type WriteOptions = writer.Options

// NewModel returns an empty model with all maps allocated.
func NewModel() *Model {
	return model.New()
}

// ReadFile reads and extracts the model in the document at path.
func ReadFile(path string, opts *ReadOptions) (*Model, error) {
	return reader.ReadFile(path, opts)
}

// ReadString reads and extracts a model from document text.
func ReadString(doc string, opts *ReadOptions) (*Model, error) {
	return reader.ReadBytes([]byte(doc), opts)
}

// WriteFile serializes the model to a file, returning recoverable
// per-element warnings.
func WriteFile(m *Model, path string, opts *WriteOptions) ([]string, error) {
	return writer.WriteFile(m, path, opts)
}

// Write serializes the model to w.
func Write(m *Model, w io.Writer, opts *WriteOptions) ([]string, error) {
	return writer.Write(m, w, opts)
}

// WriteString serializes the model to a string.
func WriteString(m *Model, opts *WriteOptions) (string, []string, error) {
	var buf bytes.Buffer
	warnings, err := writer.Write(m, &buf, opts)
	if err != nil {
		return "", warnings, err
	}
	return buf.String(), warnings, nil
}
