package features

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/otbackend/ir"
	"github.com/npillmayer/otbackend/orchestration"
	"github.com/npillmayer/otbackend/oterr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompiler "compiles" rules by loading them and all files they
// include, one include per line starting with "include ". The rules end up
// as the content of a 'GSUB' table.
type fakeCompiler struct {
	glyphs []string
}

type fakeCompiled struct {
	rules string
}

var errSyntax = errors.New("syntax error")

func (c *fakeCompiler) Compile(root string, resolver SourceResolver, glyphs []string) (Compiled, error) {
	c.glyphs = glyphs
	rules, err := resolver.Contents(root)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	for _, line := range strings.Split(rules, "\n") {
		if inc, ok := strings.CutPrefix(line, "include "); ok {
			included, err := resolver.Contents(inc)
			if err != nil {
				return nil, err
			}
			line = included
		}
		if strings.Contains(line, "@!#") {
			return nil, errSyntax
		}
		b.WriteString(line)
	}
	return &fakeCompiled{rules: b.String()}, nil
}

func (c *fakeCompiled) Assemble(glyphs []string) ([]opentype.Table, error) {
	if strings.Contains(c.rules, "missing") {
		return nil, errors.New("unknown glyph 'missing'")
	}
	return []opentype.Table{
		{Tag: opentype.MustNewTag("GSUB"), Content: []byte(c.rules)},
		{Tag: opentype.MustNewTag("GDEF"), Content: []byte{0, 1, 0, 0}},
	}, nil
}

func root(t *testing.T, flags orchestration.Flags, features ir.Features) *orchestration.Context {
	order, err := ir.NewGlyphOrder(".notdef", "a", "b")
	require.NoError(t, err)
	meta, err := ir.NewStaticMetadata(1000, nil, nil, order, nil)
	require.NoError(t, err)
	irctx, err := ir.NewContext(meta, nil, features)
	require.NoError(t, err)
	return orchestration.NewRoot(flags, orchestration.NewPaths(t.TempDir()), irctx)
}

func exec(ctx *orchestration.Context, w *Work) error {
	return w.Exec(ctx.CopyForWork(w.Read(), w.Write()))
}

func TestEmptyFeatures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.features")
	defer teardown()
	//
	ctx := root(t, orchestration.Flags{}, ir.EmptyFeatures())
	require.NoError(t, exec(ctx, CreateWork(nil)))
	assert.Empty(t, ctx.Features())
	tables, err := Unpack(ctx.Features())
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestNoCompiler(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.features")
	defer teardown()
	//
	ctx := root(t, orchestration.Flags{}, ir.MemoryFeatures("feature liga {} liga;"))
	err := exec(ctx, CreateWork(nil))
	assert.True(t, errors.Is(err, oterr.ErrNoRuleCompiler))
}

func TestMemoryFeatures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.features")
	defer teardown()
	//
	ctx := root(t, orchestration.Flags{}, ir.MemoryFeatures("sub a by b;"))
	compiler := &fakeCompiler{}
	require.NoError(t, exec(ctx, CreateWork(compiler)))
	assert.Equal(t, []string{".notdef", "a", "b"}, compiler.glyphs)
	tables, err := Unpack(ctx.Features())
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, opentype.MustNewTag("GDEF"), tables[0].Tag, "tables have to be sorted by tag")
	assert.Equal(t, "sub a by b;", string(tables[1].Content))
	_, err = os.Stat(filepath.Join(ctx.DebugDir(), DebugFile))
	assert.True(t, errors.Is(err, os.ErrNotExist), "no debug output expected")
}

func TestFileFeatures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.features")
	defer teardown()
	//
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kern.fea"), []byte("pos a b -10;"), 0o644))
	main := filepath.Join(dir, "features.fea")
	require.NoError(t, os.WriteFile(main, []byte("sub a by b;\ninclude kern.fea"), 0o644))
	ctx := root(t, orchestration.Flags{}, ir.FileFeatures(main))
	require.NoError(t, exec(ctx, CreateWork(&fakeCompiler{})))
	tables, err := Unpack(ctx.Features())
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "sub a by b;pos a b -10;", string(tables[1].Content))
}

func TestCompileFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.features")
	defer teardown()
	//
	rules := "sub a by @!#;"
	ctx := root(t, orchestration.Flags{}, ir.MemoryFeatures(rules))
	err := exec(ctx, CreateWork(&fakeCompiler{}))
	require.Error(t, err)
	var cerr oterr.FeaCompileError
	require.True(t, errors.As(err, &cerr))
	assert.True(t, errors.Is(err, errSyntax))
	dump, err := os.ReadFile(filepath.Join(ctx.DebugDir(), DebugFile))
	require.NoError(t, err, "rules have to be dumped on failure")
	assert.Equal(t, rules, string(dump))
	//
	ctx = root(t, orchestration.Flags{}, ir.MemoryFeatures("sub a by missing;"))
	err = exec(ctx, CreateWork(&fakeCompiler{}))
	var aerr oterr.FeaAssembleError
	require.True(t, errors.As(err, &aerr))
	assert.True(t, errors.Is(err, oterr.ErrFeatureAssemble))
	assert.Panics(t, func() { ctx.CopyReadOnly().Features() }, "no features stored after failure")
}

func TestDebugDump(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.features")
	defer teardown()
	//
	ctx := root(t, orchestration.Flags{EmitDebug: true}, ir.MemoryFeatures("sub b by a;"))
	require.NoError(t, exec(ctx, CreateWork(&fakeCompiler{})))
	dump, err := os.ReadFile(filepath.Join(ctx.DebugDir(), DebugFile))
	require.NoError(t, err)
	assert.Equal(t, "sub b by a;", string(dump))
}

func TestMemoryResolver(t *testing.T) {
	r := NewMemoryResolver("", "rules")
	content, err := r.Contents("")
	assert.NoError(t, err)
	assert.Equal(t, "rules", content)
	_, err = r.Contents("other.fea")
	assert.True(t, errors.Is(err, ErrNotSupported))
}
