package mathml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxbio/sbmlio/internal/xmldoc"
)

func TestExprZeroValue(t *testing.T) {
	var e Expr
	assert.True(t, e.IsZero())
	assert.Empty(t, e.Raw())

	e = NewExpr("<ci> x </ci>")
	assert.False(t, e.IsZero())
	assert.Equal(t, "<ci> x </ci>", e.Raw())
}

func TestRawCodecRoundTrip(t *testing.T) {
	codec := RawCodec{}

	el, err := codec.Build(NewExpr(`<apply><times/><ci> k </ci><ci> S </ci></apply>`))
	require.NoError(t, err)
	assert.Equal(t, Namespace, el.Space)
	assert.Equal(t, "math", el.Name)

	back, err := codec.Parse(el)
	require.NoError(t, err)
	assert.Equal(t, `<apply><times/><ci> k </ci><ci> S </ci></apply>`, back.Raw())
}

func TestRawCodecRejectsDegenerateInput(t *testing.T) {
	codec := RawCodec{}

	_, err := codec.Parse(nil)
	require.Error(t, err)

	_, err = codec.Build(Expr{})
	require.Error(t, err)
}

func TestParseKeepsWhitespace(t *testing.T) {
	el := xmldoc.NewElement(Namespace, "math")
	el.SetRawInner("<ci> glucose </ci>")

	e, err := RawCodec{}.Parse(el)
	require.NoError(t, err)
	assert.Equal(t, "<ci> glucose </ci>", e.Raw())
}
