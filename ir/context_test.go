package ir

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.ir")
	defer teardown()
	//
	meta, err := NewStaticMetadata(1000, nil, nil, nil, nil)
	require.NoError(t, err)
	a, _ := NewGlyph("A", GlyphInstance{Location: DefaultLocation()})
	b, _ := NewGlyph("B", GlyphInstance{Location: DefaultLocation()})
	ctx, err := NewContext(meta, []*Glyph{b, a}, MemoryFeatures("languagesystem DFLT dflt;"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, ctx.GlyphNames())
	g, ok := ctx.Glyph("B")
	require.True(t, ok)
	assert.Equal(t, "B", g.Name)
	assert.Equal(t, FeaturesMemory, ctx.Features().Kind)
	assert.Equal(t, []WorkId{StaticMetadataId(), FeaturesId(), GlyphId("A"), GlyphId("B")}, ctx.WorkIds())
	//
	_, err = NewContext(meta, []*Glyph{a, a}, EmptyFeatures())
	assert.Error(t, err)
}

func TestWorkIdOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.ir")
	defer teardown()
	//
	assert.Equal(t, -1, StaticMetadataId().Compare(GlyphId("A")))
	assert.Equal(t, -1, GlyphId("A").Compare(GlyphId("B")))
	assert.Equal(t, 1, FeaturesId().Compare(GlyphId("Z")))
	assert.Equal(t, 0, GlyphId("A").Compare(GlyphId("A")))
	assert.Equal(t, "FE:Glyph(A)", GlyphId("A").String())
}
