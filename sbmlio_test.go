package sbmlio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteString(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>
<sbml xmlns="http://www.sbml.org/sbml/level3/version1/core" xmlns:fbc="http://www.sbml.org/sbml/level3/version1/fbc/version2" level="3" version="1" fbc:required="false">
  <model id="toy">
    <listOfCompartments>
      <compartment id="c" constant="true"/>
    </listOfCompartments>
    <listOfSpecies>
      <species id="M_a" compartment="c"/>
    </listOfSpecies>
    <listOfParameters>
      <parameter id="lb" value="-1000" constant="true"/>
    </listOfParameters>
    <listOfReactions>
      <reaction id="R1" fbc:lowerFluxBound="lb">
        <listOfReactants>
          <speciesReference species="M_a" stoichiometry="1" constant="true"/>
        </listOfReactants>
      </reaction>
    </listOfReactions>
  </model>
</sbml>`

	m, err := ReadString(doc, nil)
	require.NoError(t, err)
	assert.Equal(t, "toy", m.ID)

	r := m.Reactions["R1"]
	require.NotNil(t, r)
	require.NotNil(t, r.LowerBound)
	assert.Equal(t, -1000.0, r.LowerBound.Value)
	assert.Equal(t, FBCUnits, r.LowerBound.Units)

	out, warnings, err := WriteString(m, nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Contains(t, out, `fbc:lowerFluxBound="R1_lower_bound"`)

	back, err := ReadString(out, nil)
	require.NoError(t, err)
	assert.Equal(t, r.LowerBound.Value, back.Reactions["R1"].LowerBound.Value)
}

func TestNewModel(t *testing.T) {
	m := NewModel()
	require.NotNil(t, m)
	assert.False(t, m.HasFBC())
	m.Species["M_a"] = &Species{}
	assert.True(t, m.HasFBC())
}
