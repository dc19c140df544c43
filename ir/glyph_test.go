package ir

import (
	"fmt"
	"testing"

	"github.com/npillmayer/otbackend/bez"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlyphRejectsDuplicateMasters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.ir")
	defer teardown()
	//
	_, err := NewGlyph("A",
		GlyphInstance{Location: At("wght", 1)},
		GlyphInstance{Location: NewLocation(map[string]float64{"wght": 1})},
	)
	assert.Error(t, err)
}

func TestGlyphInstanceLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.ir")
	defer teardown()
	//
	bold := GlyphInstance{
		Location:   At("wght", 1),
		Components: []Component{{Base: "B", Transform: bez.Identity()}},
	}
	g, err := NewGlyph("A", bold, GlyphInstance{Location: DefaultLocation()})
	require.NoError(t, err)
	require.Len(t, g.Instances(), 2)
	assert.True(t, g.Instances()[0].Location.IsDefault(), "default master expected to sort first")
	inst, ok := g.Instance(At("wght", 1))
	require.True(t, ok)
	assert.Equal(t, "B", inst.Components[0].Base)
	_, ok = g.Instance(At("wght", -1))
	assert.False(t, ok)
	assert.Len(t, g.Locations(), 2)
}

func TestGlyphOrderLimits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.ir")
	defer teardown()
	//
	order, err := NewGlyphOrder(".notdef", "A", "B")
	require.NoError(t, err)
	gid, ok := order.GlyphID("B")
	assert.True(t, ok)
	assert.Equal(t, uint16(2), gid)
	_, ok = order.GlyphID("C")
	assert.False(t, ok)
	name, ok := order.Name(1)
	assert.True(t, ok)
	assert.Equal(t, "A", name)
	_, ok = order.Name(3)
	assert.False(t, ok)
	//
	_, err = NewGlyphOrder("A", "A")
	assert.ErrorIs(t, err, ErrDuplicateGlyph)
}

func TestGlyphOrderBeyond16Bits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.ir")
	defer teardown()
	//
	names := make([]string, 70000)
	for i := range names {
		names[i] = fmt.Sprintf("g%d", i)
	}
	order, err := NewGlyphOrder(names...)
	require.NoError(t, err)
	_, ok := order.GlyphID("g65535")
	assert.True(t, ok)
	_, ok = order.GlyphID("g65536")
	assert.False(t, ok, "glyph IDs beyond 16 bits must not resolve")
}

func TestPointAxesAreNotVariable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.ir")
	defer teardown()
	//
	axes := []Axis{
		{Name: "Weight", Tag: "wght", Min: 100, Default: 400, Max: 900},
		{Name: "Width", Tag: "wdth", Min: 100, Default: 100, Max: 100},
	}
	meta, err := NewStaticMetadata(1000, axes, nil, nil, []Location{At("wght", 1)})
	require.NoError(t, err)
	require.Len(t, meta.VariableAxes(), 1)
	assert.Equal(t, "wght", meta.VariableAxes()[0].Tag)
	assert.Len(t, meta.VariationModel.Locations(), 2)
	assert.Equal(t, 0, meta.GlyphOrder.Len())
}
