package writer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxbio/sbmlio/internal/model"
	"github.com/fluxbio/sbmlio/internal/reader"
	"github.com/fluxbio/sbmlio/internal/xmldoc"
)

func toyFBCModel() *model.Model {
	m := model.New()
	m.ID = "toy"
	m.Name = "Toy model"

	constant := true
	size := 1.0
	m.Compartments["c"] = &model.Compartment{Name: "cytosol", Constant: &constant, Size: &size}

	m.Species["M_a"] = &model.Species{
		Compartment:   "c",
		InitialAmount: &model.Amount{Value: 1, Units: "mmol"},
	}

	r := model.NewReaction()
	r.Stoichiometry["M_a"] = -1
	r.LowerBound = &model.Bound{Value: -10, Units: model.FBCUnits}
	r.ObjectiveCoefficient = 1
	m.Reactions["R1"] = r
	return m
}

func TestWriteGolden(t *testing.T) {
	var buf bytes.Buffer
	warnings, err := Write(toyFBCModel(), &buf, nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "toy_fbc", buf.Bytes())
}

func TestWriteReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	_, err := Write(toyFBCModel(), &buf, nil)
	require.NoError(t, err)

	m, err := reader.ReadBytes(buf.Bytes(), nil)
	require.NoError(t, err)

	assert.Equal(t, "toy", m.ID)
	assert.Equal(t, "Toy model", m.Name)

	comp := m.Compartments["c"]
	require.NotNil(t, comp)
	assert.Equal(t, "cytosol", comp.Name)
	require.NotNil(t, comp.Constant)
	assert.True(t, *comp.Constant)
	require.NotNil(t, comp.Size)
	assert.InDelta(t, 1.0, *comp.Size, 1e-9)

	r := m.Reactions["R1"]
	require.NotNil(t, r)
	assert.InDelta(t, -1.0, r.Stoichiometry["M_a"], 1e-9)
	assert.True(t, r.Reversible)

	// The synthesized bound parameter resolves on the way back in, so the
	// bound survives with the package-units sentinel.
	require.NotNil(t, r.LowerBound)
	assert.InDelta(t, -10.0, r.LowerBound.Value, 1e-9)
	assert.Equal(t, model.FBCUnits, r.LowerBound.Units)
	assert.Nil(t, r.UpperBound)

	assert.InDelta(t, 1.0, r.ObjectiveCoefficient, 1e-9)
	assert.Equal(t, "obj", m.ActiveObjective)

	sp := m.Species["M_a"]
	require.NotNil(t, sp)
	require.NotNil(t, sp.InitialAmount)
	assert.Equal(t, "mmol", sp.InitialAmount.Units)
}

func TestPlainModelTargetsLevel3Version2(t *testing.T) {
	m := model.New()
	m.ID = "plain"
	value := 2.5
	m.Parameters["k"] = &model.Parameter{Value: &value}

	var buf bytes.Buffer
	_, err := Write(m, &buf, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, xmldoc.CoreNSL3V2)
	assert.NotContains(t, out, "xmlns:fbc")
	assert.Contains(t, out, `level="3" version="2"`)
	assert.NotContains(t, out, "fbc:strict")
}

func TestReactionFluxDataForcesFBCTarget(t *testing.T) {
	// Reaction-level flux data alone (no species, gene products, or
	// objectives) still comes out as FBC constructs, so the document must
	// be created with the package registered and declared non-required.
	m := model.New()
	m.ID = "bounds_only"
	r := model.NewReaction()
	r.LowerBound = &model.Bound{Value: -10, Units: model.FBCUnits}
	r.ObjectiveCoefficient = 1
	m.Reactions["R1"] = r

	var buf bytes.Buffer
	_, err := Write(m, &buf, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, xmldoc.CoreNSL3V1)
	assert.Contains(t, out, `level="3" version="1"`)
	assert.Contains(t, out, `fbc:required="false"`)
	assert.Contains(t, out, `fbc:strict="true"`)
	assert.Contains(t, out, `fbc:lowerFluxBound="R1_lower_bound"`)
	assert.Contains(t, out, `fbc:activeObjective="obj"`)
}

func TestFBCModelTargetsLevel3Version1(t *testing.T) {
	var buf bytes.Buffer
	_, err := Write(toyFBCModel(), &buf, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, xmldoc.CoreNSL3V1)
	assert.Contains(t, out, `xmlns:fbc="`+xmldoc.FBCNS+`"`)
	assert.Contains(t, out, `fbc:strict="true"`)
	assert.Contains(t, out, `fbc:required="false"`)
}

func TestBoundParameterNotDuplicated(t *testing.T) {
	// A parameter that already carries the synthesized bound id (the usual
	// outcome of a previous read) is referenced, not emitted twice.
	m := toyFBCModel()
	value := -10.0
	constant := true
	m.Parameters["R1_lower_bound"] = &model.Parameter{Value: &value, Constant: &constant}

	var buf bytes.Buffer
	_, err := Write(m, &buf, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(buf.String(), `id="R1_lower_bound"`))
}

func TestLegacyBoundsNeverReemitted(t *testing.T) {
	// Bounds always go out in FBC form; no kinetic law is emitted without
	// kinetic math.
	var buf bytes.Buffer
	_, err := Write(toyFBCModel(), &buf, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "LOWER_BOUND")
	assert.NotContains(t, out, "kineticLaw")
	assert.Contains(t, out, `fbc:lowerFluxBound="R1_lower_bound"`)
}

func TestDeclaredBoundUnitsEmitted(t *testing.T) {
	m := toyFBCModel()
	m.Reactions["R1"].UpperBound = &model.Bound{Value: 10, Units: "mmol"}

	var buf bytes.Buffer
	_, err := Write(m, &buf, nil)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `<parameter id="R1_upper_bound" value="10" constant="true" units="mmol"/>`)
}

func TestGeneAssociationRoundTrip(t *testing.T) {
	m := toyFBCModel()
	m.GeneProducts["g1"] = &model.GeneProduct{Label: "b001"}
	m.GeneProducts["g2"] = &model.GeneProduct{}
	m.Reactions["R1"].GeneProductAssociation = model.GeneOr{Terms: []model.Association{
		model.GeneRef{Gene: "g1"},
		model.GeneAnd{Terms: []model.Association{
			model.GeneRef{Gene: "g1"},
			model.GeneRef{Gene: "g2"},
		}},
	}}

	var buf bytes.Buffer
	warnings, err := Write(m, &buf, nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	// Gene product without a label falls back to its id.
	assert.Contains(t, buf.String(), `fbc:id="g2" fbc:label="g2"`)

	back, err := reader.ReadBytes(buf.Bytes(), nil)
	require.NoError(t, err)
	assoc := back.Reactions["R1"].GeneProductAssociation
	require.NotNil(t, assoc)
	assert.Equal(t, "g1 or (g1 and g2)", assoc.String())
}

func TestConflictingInitialUnitsWarn(t *testing.T) {
	m := toyFBCModel()
	m.Species["M_a"].InitialConcentration = &model.Amount{Value: 0.5, Units: "molar"}

	var buf bytes.Buffer
	warnings, err := Write(m, &buf, nil)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "M_a")
	assert.Contains(t, warnings[0], "molar")
}

func TestGenerateMetaID(t *testing.T) {
	m := toyFBCModel()

	var buf bytes.Buffer
	_, err := Write(m, &buf, &Options{GenerateMetaID: true})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `metaid="meta_`)

	// An existing metaid wins over generation.
	m.MetaID = "meta_fixed"
	buf.Reset()
	_, err = Write(m, &buf, &Options{GenerateMetaID: true})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `metaid="meta_fixed"`)
}

func TestNotesSurviveRoundTripVerbatim(t *testing.T) {
	m := toyFBCModel()
	m.Notes = `<body xmlns="http://www.w3.org/1999/xhtml"><p>iJO1366 &amp; friends</p></body>`

	var buf bytes.Buffer
	_, err := Write(m, &buf, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), m.Notes)

	back, err := reader.ReadBytes(buf.Bytes(), nil)
	require.NoError(t, err)
	assert.Equal(t, m.Notes, back.Notes)
}
