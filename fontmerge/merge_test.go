package fontmerge

import (
	"bytes"
	"testing"

	"github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/font/opentype/tables"
	"github.com/npillmayer/otbackend/features"
	"github.com/npillmayer/otbackend/ir"
	"github.com/npillmayer/otbackend/orchestration"
	"github.com/npillmayer/otbackend/otwrite"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/sfnt"
)

func root(t *testing.T) *orchestration.Context {
	names := map[ir.NameKey]string{
		ir.WindowsName(sfnt.NameIDFamily): "Merge Sans",
	}
	meta, err := ir.NewStaticMetadata(1000, nil, names, nil, nil)
	require.NoError(t, err)
	irctx, err := ir.NewContext(meta, nil, ir.EmptyFeatures())
	require.NoError(t, err)
	return orchestration.NewRoot(orchestration.Flags{}, orchestration.NewPaths(t.TempDir()), irctx)
}

func produce(ctx *orchestration.Context, layout []opentype.Table, fvar *otwrite.Fvar) {
	w := ctx.CopyForWork(orchestration.AccessNone(), orchestration.AccessAll())
	w.SetFeatures(features.Pack(layout))
	w.SetGlyfLoca(&orchestration.GlyfLoca{Glyf: []byte{1, 2, 3, 4}, Loca: []uint32{0, 0, 4}})
	w.SetFvar(fvar)
}

func TestFinalMerge(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.fontmerge")
	defer teardown()
	//
	ctx := root(t)
	gsub := opentype.Table{Tag: opentype.MustNewTag("GSUB"), Content: []byte{0, 1, 0, 0}}
	fvar := &otwrite.Fvar{Axes: []otwrite.FvarAxis{{Tag: "wght", Min: 100, Default: 400, Max: 900, NameID: 256}}}
	produce(ctx, []opentype.Table{gsub}, fvar)
	w := CreateWork()
	require.NoError(t, w.Exec(ctx.CopyForWork(w.Read(), w.Write())))
	//
	ld, err := opentype.NewLoader(bytes.NewReader(ctx.Font()))
	require.NoError(t, err)
	assert.Equal(t, []opentype.Tag{opentype.MustNewTag("GSUB"), TagFvar, TagGlyf, TagLoca, TagName}, ld.Tables())
	raw, err := ld.RawTable(TagLoca)
	require.NoError(t, err)
	loca, err := tables.ParseLoca(raw, 2, true)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 0, 4}, loca)
	raw, err = ld.RawTable(TagName)
	require.NoError(t, err)
	names, _, err := tables.ParseName(raw)
	require.NoError(t, err)
	assert.Equal(t, "Merge Sans", names.Name(tables.NameID(sfnt.NameIDFamily)))
	raw, err = ld.RawTable(TagFvar)
	require.NoError(t, err)
	parsed, _, err := tables.ParseFvar(raw)
	require.NoError(t, err)
	assert.Len(t, parsed.Axis, 1)
}

func TestFinalMergeWithoutFvar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.fontmerge")
	defer teardown()
	//
	ctx := root(t)
	produce(ctx, nil, nil)
	tabs, err := Tables(ctx)
	require.NoError(t, err)
	require.Len(t, tabs, 3)
	for _, tab := range tabs {
		assert.NotEqual(t, TagFvar, tab.Tag)
	}
}

func TestOwnedTableConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.fontmerge")
	defer teardown()
	//
	ctx := root(t)
	produce(ctx, []opentype.Table{{Tag: TagGlyf, Content: []byte{0}}}, nil)
	_, err := Tables(ctx)
	assert.Error(t, err)
}
