package orchestration

import (
	"strings"
	"testing"

	"github.com/npillmayer/otbackend/bez"
	"github.com/npillmayer/otbackend/ir"
	"github.com/npillmayer/otbackend/otwrite"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type ContextTestEnviron struct {
	suite.Suite
	teardown func()
	irctx    *ir.Context
}

// listen for 'go test' command --> run test methods
func TestContextFunctions(t *testing.T) {
	suite.Run(t, new(ContextTestEnviron))
}

// run once, before test suite methods
func (env *ContextTestEnviron) SetupSuite() {
	env.teardown = gotestingadapter.QuickConfig(env.T(), "otbackend.orchestration")
	meta, err := ir.NewStaticMetadata(1000, nil, nil, nil, nil)
	env.Require().NoError(err)
	a, err := ir.NewGlyph("A", ir.GlyphInstance{Location: ir.DefaultLocation()})
	env.Require().NoError(err)
	env.irctx, err = ir.NewContext(meta, []*ir.Glyph{a}, ir.EmptyFeatures())
	env.Require().NoError(err)
}

// run once, after test suite methods
func (env *ContextTestEnviron) TearDownSuite() {
	env.teardown()
}

// --- Tests -----------------------------------------------------------------

func (env *ContextTestEnviron) TestRootIsReadOnly() {
	root := NewRoot(Flags{}, NewPaths(env.T().TempDir()), env.irctx)
	env.NotNil(root.StaticMetadata())
	env.Panics(func() { root.SetFeatures([]byte{1}) })
}

func (env *ContextTestEnviron) TestViewsShareArtifacts() {
	root := NewRoot(Flags{}, NewPaths(env.T().TempDir()), env.irctx)
	writer := root.CopyForWork(AccessNone(), AccessOneOf(BeId(FeaturesId())))
	writer.SetFeatures([]byte{1, 2, 3})
	env.Equal([]byte{1, 2, 3}, root.CopyReadOnly().Features())
}

func (env *ContextTestEnviron) TestIllegalReadPanics() {
	root := NewRoot(Flags{}, NewPaths(env.T().TempDir()), env.irctx)
	view := root.CopyForWork(AccessFeKind(ir.WorkGlyph), AccessNone())
	env.NotPanics(func() { view.GlyphIR("A") })
	env.PanicsWithValue("illegal access: no read access to FE:StaticMetadata", func() {
		view.StaticMetadata()
	})
}

func (env *ContextTestEnviron) TestMissingArtifactPanics() {
	root := NewRoot(Flags{}, NewPaths(env.T().TempDir()), env.irctx)
	env.Panics(func() { root.Glyph("A") })
	env.Panics(func() { root.GlyphIR("no-such-glyph") })
}

func (env *ContextTestEnviron) TestPersistAndRestore() {
	paths := NewPaths(env.T().TempDir())
	env.Require().NoError(paths.Prepare())
	flags := Flags{EmitIR: true}
	root := NewRoot(flags, paths, env.irctx)
	w := root.CopyForWork(AccessNone(), AccessAll())
	//
	simple, err := otwrite.SimpleGlyphFromPath(bez.NewPath(
		bez.Move(bez.Pt(0, 0)), bez.Line(bez.Pt(10, 0)), bez.Line(bez.Pt(10, 10)), bez.Close()))
	env.Require().NoError(err)
	w.SetGlyph("A", simple)
	comp, err := otwrite.NewComponent(0, bez.Translate(5, 5))
	env.Require().NoError(err)
	composite, err := otwrite.NewCompositeGlyph([]otwrite.Component{comp})
	env.Require().NoError(err)
	w.SetGlyph("Aring", composite.WithBbox(otwrite.Bbox{XMin: 5, YMin: 5, XMax: 15, YMax: 15}))
	gvar := &GvarFragment{Deltas: []GvarDeltas{
		{Region: ir.Region{}, Points: [][2]int{{0, 0}, {10, 0}}},
		{Region: ir.Region{"wght": ir.Tent{Lower: 0, Peak: 1, Upper: 1}}, Points: [][2]int{{0, 0}, {5, -1}}},
	}}
	w.SetGvarFragment("A", gvar)
	gl := &GlyfLoca{Glyf: simple.Bytes(), Loca: []uint32{0, uint32(len(simple.Bytes()))}}
	w.SetGlyfLoca(gl)
	fvar := &otwrite.Fvar{Axes: []otwrite.FvarAxis{{Tag: "wght", Min: 100, Default: 400, Max: 900, NameID: 256}}}
	w.SetFvar(fvar)
	w.SetFont([]byte("font"))
	w.SetFeatures(nil)
	//
	fresh := NewRoot(flags, paths, env.irctx)
	env.Equal(simple, fresh.Glyph("A"))
	env.Equal(composite.WithBbox(otwrite.Bbox{XMin: 5, YMin: 5, XMax: 15, YMax: 15}), fresh.Glyph("Aring"))
	env.Equal(gvar, fresh.GvarFragment("A"))
	env.Equal(gl, fresh.GlyfLoca())
	env.Equal(fvar, fresh.Fvar())
	env.Equal([]byte("font"), fresh.Font())
	env.Empty(fresh.Features())
}

func (env *ContextTestEnviron) TestAbsentFvarRestoresAsNil() {
	paths := NewPaths(env.T().TempDir())
	env.Require().NoError(paths.Prepare())
	root := NewRoot(Flags{EmitIR: true}, paths, env.irctx)
	root.CopyForWork(AccessNone(), AccessAll()).SetFvar(nil)
	env.Nil(NewRoot(Flags{}, paths, env.irctx).Fvar())
}

// --- Plain tests -----------------------------------------------------------

func TestFlagsFromConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.orchestration")
	defer teardown()
	//
	conf := testconfig.Conf{
		ConfEmitIR:   true,
		ConfWorkers:  3,
		ConfBuildDir: "/tmp/out",
	}
	flags := FlagsFromConfig(conf)
	assert.True(t, flags.EmitIR)
	assert.False(t, flags.EmitDebug)
	assert.Equal(t, 3, flags.Workers)
	assert.Equal(t, "/tmp/out", PathsFromConfig(conf).BuildDir())
	assert.Equal(t, DefaultBuildDir, PathsFromConfig(testconfig.Conf{}).BuildDir())
	assert.Greater(t, FlagsFromConfig(testconfig.Conf{}).Workers, 0)
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "a", SafeFilename("a"))
	assert.Equal(t, "A_", SafeFilename("A"))
	assert.Equal(t, "A_.alt", SafeFilename("A.alt"))
	assert.Equal(t, "%2Enotdef", SafeFilename(".notdef"))
	assert.Equal(t, "a%2Fb", SafeFilename("a/b"))
	assert.NotEqual(t, SafeFilename("a"), SafeFilename("A"))
	assert.Equal(t, "f%5Fi", SafeFilename("f_i"))
	names := []string{"Ab", "a_b", "ab", "AB", "aB", "A_b", "a_B", "A%5F", "a%5f"}
	for i, x := range names {
		for _, y := range names[i+1:] {
			assert.False(t, strings.EqualFold(SafeFilename(x), SafeFilename(y)),
				"%q and %q collide as %q and %q", x, y, SafeFilename(x), SafeFilename(y))
		}
	}
}

func TestWorkIdOrder(t *testing.T) {
	ids := []AnyWorkId{
		BeId(GlyphId("B")),
		FeId(ir.GlyphId("A")),
		BeId(FeaturesId()),
		BeId(GlyphId("A")),
	}
	assert.Equal(t, -1, ids[1].Compare(ids[2]), "FE ids sort before BE ids")
	assert.Equal(t, -1, ids[2].Compare(ids[3]))
	assert.Equal(t, 1, ids[0].Compare(ids[3]))
	assert.Equal(t, "BE:Glyph(B)", ids[0].String())
	assert.Equal(t, "FE:Glyph(A)", ids[1].String())
	require.True(t, AccessAny(AccessBeKind(WorkGlyph), AccessOneOf(BeId(FvarId())))(BeId(FvarId())))
	assert.False(t, AccessBeKind(WorkGlyph)(FeId(ir.GlyphId("A"))))
}
