package xmldoc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalDoc = `<?xml version="1.0" encoding="UTF-8"?>
<sbml xmlns="http://www.sbml.org/sbml/level3/version1/core" level="3" version="1">
  <model id="m1">
    <listOfCompartments>
      <compartment id="c" constant="true"/>
    </listOfCompartments>
  </model>
</sbml>`

func TestOpenMinimalDocument(t *testing.T) {
	doc, err := Open([]byte(minimalDoc), nil)
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, CoreNSL3V1, doc.CoreNS())
	assert.False(t, doc.HasFBC())

	modelEl := doc.Model()
	require.NotNil(t, modelEl)
	id, ok := modelEl.Attr("", "id")
	assert.True(t, ok)
	assert.Equal(t, "m1", id)

	comp := modelEl.Child(doc.CoreNS(), "listOfCompartments").Child(doc.CoreNS(), "compartment")
	require.NotNil(t, comp)
	constant, ok := comp.Attr("", "constant")
	assert.True(t, ok)
	assert.Equal(t, "true", constant)
}

func TestOpenMalformedDocumentFails(t *testing.T) {
	_, err := Open([]byte("<sbml><model></sbml>"), nil)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.NotEmpty(t, pe.Diagnostics)
	assert.Equal(t, SeverityFatal, pe.Diagnostics[0].Severity)
}

func TestOpenMissingModelIsWatchedError(t *testing.T) {
	src := `<sbml xmlns="http://www.sbml.org/sbml/level3/version2/core" level="3" version="2"/>`
	_, err := Open([]byte(src), nil)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Diagnostics[0].Message, "no model")
}

func TestOpenSeverityFilterRelaxed(t *testing.T) {
	// Watching only Fatal lets a model-less document through.
	src := `<sbml xmlns="http://www.sbml.org/sbml/level3/version2/core" level="3" version="2"/>`
	doc, err := Open([]byte(src), &OpenOptions{Watched: []Severity{SeverityFatal}})
	require.NoError(t, err)
	defer doc.Close()
	assert.Nil(t, doc.Model())
}

func TestFailedOpenReleasesHandleExactlyOnce(t *testing.T) {
	src := `<sbml xmlns="http://www.sbml.org/sbml/level3/version2/core" level="3" version="2"/>`
	doc, err := open([]byte(src), nil)
	require.Error(t, err)
	assert.True(t, doc.Closed())
	assert.Equal(t, 1, doc.frees)
}

func TestDoubleCloseIsAnError(t *testing.T) {
	doc, err := Open([]byte(minimalDoc), nil)
	require.NoError(t, err)
	require.NoError(t, doc.Close())
	assert.ErrorIs(t, doc.Close(), ErrClosed)
	assert.Equal(t, 1, doc.frees)
}

func TestParseSeverity(t *testing.T) {
	sev, ok := ParseSeverity("error")
	require.True(t, ok)
	assert.Equal(t, SeverityError, sev)

	sev, ok = ParseSeverity("Fatal")
	require.True(t, ok)
	assert.Equal(t, SeverityFatal, sev)

	_, ok = ParseSeverity("catastrophic")
	assert.False(t, ok)
}

func TestRawInnerSurvivesParse(t *testing.T) {
	src := `<sbml xmlns="http://www.sbml.org/sbml/level3/version2/core" level="3" version="2">` +
		`<model id="m"><notes><p>A &amp; B</p></notes></model></sbml>`
	doc, err := Open([]byte(src), nil)
	require.NoError(t, err)
	defer doc.Close()

	notes := doc.Model().Child(doc.CoreNS(), "notes")
	require.NotNil(t, notes)
	assert.Equal(t, "<p>A &amp; B</p>", notes.RawInner())
}

func TestSerializeRoundTrip(t *testing.T) {
	doc, err := Open([]byte(minimalDoc), nil)
	require.NoError(t, err)
	defer doc.Close()

	var buf bytes.Buffer
	require.NoError(t, doc.Serialize(&buf))

	reparsed, err := Open(buf.Bytes(), nil)
	require.NoError(t, err)
	defer reparsed.Close()

	comp := reparsed.Model().Child(reparsed.CoreNS(), "listOfCompartments").Child(reparsed.CoreNS(), "compartment")
	require.NotNil(t, comp)
	id, _ := comp.Attr("", "id")
	assert.Equal(t, "c", id)
}

func TestSerializeClosedHandleFails(t *testing.T) {
	doc, err := Open([]byte(minimalDoc), nil)
	require.NoError(t, err)
	require.NoError(t, doc.Close())
	assert.ErrorIs(t, doc.Serialize(&bytes.Buffer{}), ErrClosed)
}

func TestCreateFBCDocumentDeclaresNamespace(t *testing.T) {
	doc := Create(3, 1, true)
	defer doc.Close()

	modelEl := NewElement(doc.CoreNS(), "model")
	modelEl.SetAttr("", "id", "m")
	require.NoError(t, doc.Root().AddChild(modelEl))

	var buf bytes.Buffer
	require.NoError(t, doc.Serialize(&buf))
	out := buf.String()
	assert.Contains(t, out, `xmlns:fbc="`+FBCNS+`"`)
	assert.Contains(t, out, `fbc:required="false"`)
	assert.Contains(t, out, `level="3" version="1"`)
}

func TestAddChildStatus(t *testing.T) {
	el := NewElement(CoreNSL3V2, "model")
	assert.Error(t, el.AddChild(nil))
	assert.Error(t, el.AddChild(el))
	assert.NoError(t, el.AddChild(NewElement(CoreNSL3V2, "listOfSpecies")))
}

func TestSerializeEscapesText(t *testing.T) {
	doc := Create(3, 2, false)
	defer doc.Close()
	modelEl := NewElement(doc.CoreNS(), "model")
	msg := NewElement(doc.CoreNS(), "message")
	msg.SetText(`flux < 0 & "bad"`)
	require.NoError(t, modelEl.AddChild(msg))
	require.NoError(t, doc.Root().AddChild(modelEl))

	var buf bytes.Buffer
	require.NoError(t, doc.Serialize(&buf))
	assert.Contains(t, buf.String(), "flux &lt; 0 &amp;")
	assert.False(t, strings.Contains(buf.String(), `flux < 0`))
}
