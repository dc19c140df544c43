package orchestration

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/go-text/typesetting/font/opentype/tables"
	"github.com/npillmayer/otbackend/ir"
	"github.com/npillmayer/otbackend/otwrite"
	"gopkg.in/yaml.v3"
)

// missingData is the panic message for an artifact which has been neither
// set nor persisted.
const missingData = "artifact has not been produced"

// Context gives units of work access to the IR and to the artifacts of
// other units. Views created by CopyForWork and CopyReadOnly share all
// artifacts with the context they are derived from.
type Context struct {
	Flags Flags
	paths *Paths
	ir    *ir.Context
	acl   acl
	cells *cells
}

// cells holds the artifacts. Each kind of artifact is guarded by its own
// lock.
type cells struct {
	featuresMu sync.RWMutex
	features   []byte

	glyphsMu sync.RWMutex
	glyphs   map[string]otwrite.Glyph

	gvarMu sync.RWMutex
	gvar   map[string]*GvarFragment

	glyfLocaMu sync.RWMutex
	glyfLoca   *GlyfLoca

	fvarMu  sync.RWMutex
	fvarSet bool
	fvar    *otwrite.Fvar

	fontMu sync.RWMutex
	font   []byte
}

// NewRoot creates the root context of a compilation run, with read access
// to everything and write access to nothing.
func NewRoot(flags Flags, paths *Paths, irContext *ir.Context) *Context {
	return &Context{
		Flags: flags,
		paths: paths,
		ir:    irContext,
		acl:   readOnlyACL(),
		cells: &cells{
			glyphs: make(map[string]otwrite.Glyph),
			gvar:   make(map[string]*GvarFragment),
		},
	}
}

// CopyForWork creates a view of ctx restricted to the access predicates given.
func (ctx *Context) CopyForWork(read, write AccessFn) *Context {
	c := *ctx
	c.acl = acl{read: read, write: write}
	return &c
}

// CopyReadOnly creates a view of ctx with read access to everything.
func (ctx *Context) CopyReadOnly() *Context {
	c := *ctx
	c.acl = readOnlyACL()
	return &c
}

// Paths returns the file locations of the run.
func (ctx *Context) Paths() *Paths {
	return ctx.paths
}

// DebugDir is a place to write extra files to help someone debugging.
func (ctx *Context) DebugDir() string {
	return ctx.paths.DebugDir()
}

// --- Frontend artifacts ----------------------------------------------------

// StaticMetadata returns the final static metadata of the IR.
func (ctx *Context) StaticMetadata() *ir.StaticMetadata {
	ctx.acl.assertRead(FeId(ir.StaticMetadataId()))
	return ctx.ir.StaticMetadata()
}

// GlyphIR returns the IR of a glyph.
func (ctx *Context) GlyphIR(name string) *ir.Glyph {
	ctx.acl.assertRead(FeId(ir.GlyphId(name)))
	g, ok := ctx.ir.Glyph(name)
	if !ok {
		panic(fmt.Sprintf("%s: no IR for glyph %q", missingData, name))
	}
	return g
}

// FeaturesIR returns the layout rules of the IR.
func (ctx *Context) FeaturesIR() ir.Features {
	ctx.acl.assertRead(FeId(ir.FeaturesId()))
	return ctx.ir.Features()
}

// --- Persistence -----------------------------------------------------------

func (ctx *Context) maybePersist(file string, content []byte) {
	if !ctx.Flags.EmitIR {
		return
	}
	if err := os.WriteFile(file, content, 0o644); err != nil {
		panic(fmt.Sprintf("unable to write %s: %v", file, err))
	}
}

func (ctx *Context) maybePersistYAML(file string, v interface{}) {
	if !ctx.Flags.EmitIR {
		return
	}
	content, err := yaml.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("unable to serialize %s: %v", file, err))
	}
	ctx.maybePersist(file, content)
}

// restore reads a persisted artifact. It panics if the file cannot be read,
// as then the artifact has never been produced.
func (ctx *Context) restore(file string, id WorkId) []byte {
	content, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprintf("%s: %s", missingData, id))
	} else if err != nil {
		panic(fmt.Sprintf("unable to read %s: %v", file, err))
	}
	tracer().Debugf("restored %s from %s", id, file)
	return content
}

func (ctx *Context) restoreYAML(file string, id WorkId, v interface{}) {
	if err := yaml.Unmarshal(ctx.restore(file, id), v); err != nil {
		panic(fmt.Sprintf("unable to deserialize %s: %v", file, err))
	}
}

// --- Backend artifacts -----------------------------------------------------

// Features returns the compiled layout rules, packed into an SFNT blob.
func (ctx *Context) Features() []byte {
	id := FeaturesId()
	ctx.acl.assertRead(BeId(id))
	c := ctx.cells
	c.featuresMu.RLock()
	if c.features != nil {
		defer c.featuresMu.RUnlock()
		return c.features
	}
	c.featuresMu.RUnlock()
	content := ctx.restore(ctx.paths.TargetFile(id), id)
	c.featuresMu.Lock()
	defer c.featuresMu.Unlock()
	if c.features == nil {
		c.features = content
	}
	return c.features
}

// SetFeatures stores the compiled layout rules.
func (ctx *Context) SetFeatures(blob []byte) {
	id := FeaturesId()
	ctx.acl.assertWrite(BeId(id))
	if blob == nil {
		blob = []byte{}
	}
	ctx.maybePersist(ctx.paths.TargetFile(id), blob)
	c := ctx.cells
	c.featuresMu.Lock()
	defer c.featuresMu.Unlock()
	c.features = blob
}

// Glyph returns the binary record of a glyph.
func (ctx *Context) Glyph(name string) otwrite.Glyph {
	id := GlyphId(name)
	ctx.acl.assertRead(BeId(id))
	c := ctx.cells
	c.glyphsMu.RLock()
	g, ok := c.glyphs[name]
	c.glyphsMu.RUnlock()
	if ok {
		return g
	}
	g, err := otwrite.ParseGlyph(ctx.restore(ctx.paths.TargetFile(id), id))
	if err != nil {
		panic(fmt.Sprintf("unable to restore %s: %v", id, err))
	}
	c.glyphsMu.Lock()
	defer c.glyphsMu.Unlock()
	if prev, ok := c.glyphs[name]; ok {
		return prev
	}
	c.glyphs[name] = g
	return g
}

// SetGlyph stores the binary record of a glyph.
func (ctx *Context) SetGlyph(name string, g otwrite.Glyph) {
	id := GlyphId(name)
	ctx.acl.assertWrite(BeId(id))
	ctx.maybePersist(ctx.paths.TargetFile(id), g.Bytes())
	c := ctx.cells
	c.glyphsMu.Lock()
	defer c.glyphsMu.Unlock()
	c.glyphs[name] = g
}

// GvarFragment returns the variation deltas of a glyph.
func (ctx *Context) GvarFragment(name string) *GvarFragment {
	id := GvarFragmentId(name)
	ctx.acl.assertRead(BeId(id))
	c := ctx.cells
	c.gvarMu.RLock()
	f, ok := c.gvar[name]
	c.gvarMu.RUnlock()
	if ok {
		return f
	}
	f = &GvarFragment{}
	ctx.restoreYAML(ctx.paths.TargetFile(id), id, f)
	c.gvarMu.Lock()
	defer c.gvarMu.Unlock()
	if prev, ok := c.gvar[name]; ok {
		return prev
	}
	c.gvar[name] = f
	return f
}

// SetGvarFragment stores the variation deltas of a glyph.
func (ctx *Context) SetGvarFragment(name string, f *GvarFragment) {
	id := GvarFragmentId(name)
	ctx.acl.assertWrite(BeId(id))
	ctx.maybePersistYAML(ctx.paths.TargetFile(id), f)
	c := ctx.cells
	c.gvarMu.Lock()
	defer c.gvarMu.Unlock()
	c.gvar[name] = f
}

// GlyfLoca returns the merged glyph outlines and offsets.
func (ctx *Context) GlyfLoca() *GlyfLoca {
	id := GlyphMergeId()
	ctx.acl.assertRead(BeId(id))
	c := ctx.cells
	c.glyfLocaMu.RLock()
	gl := c.glyfLoca
	c.glyfLocaMu.RUnlock()
	if gl != nil {
		return gl
	}
	glyf := ctx.restore(ctx.paths.TargetFile(id), id)
	locaData := ctx.restore(ctx.paths.LocaFile(), id)
	loca, err := tables.ParseLoca(locaData, len(locaData)/4-1, true)
	if err != nil {
		panic(fmt.Sprintf("unable to restore loca: %v", err))
	}
	c.glyfLocaMu.Lock()
	defer c.glyfLocaMu.Unlock()
	if c.glyfLoca == nil {
		c.glyfLoca = &GlyfLoca{Glyf: glyf, Loca: loca}
	}
	return c.glyfLoca
}

// SetGlyfLoca stores the merged glyph outlines and offsets.
func (ctx *Context) SetGlyfLoca(gl *GlyfLoca) {
	id := GlyphMergeId()
	ctx.acl.assertWrite(BeId(id))
	if ctx.Flags.EmitIR {
		ctx.maybePersist(ctx.paths.TargetFile(id), gl.Glyf)
		loca := make([]byte, 0, 4*len(gl.Loca))
		for _, off := range gl.Loca {
			loca = binary.BigEndian.AppendUint32(loca, off)
		}
		ctx.maybePersist(ctx.paths.LocaFile(), loca)
	}
	c := ctx.cells
	c.glyfLocaMu.Lock()
	defer c.glyfLocaMu.Unlock()
	c.glyfLoca = gl
}

// Fvar returns the axis table. A nil result means the font has no
// variable axes.
func (ctx *Context) Fvar() *otwrite.Fvar {
	id := FvarId()
	ctx.acl.assertRead(BeId(id))
	c := ctx.cells
	c.fvarMu.RLock()
	if c.fvarSet {
		defer c.fvarMu.RUnlock()
		return c.fvar
	}
	c.fvarMu.RUnlock()
	f := &otwrite.Fvar{}
	ctx.restoreYAML(ctx.paths.TargetFile(id), id, f)
	if len(f.Axes) == 0 {
		f = nil
	}
	c.fvarMu.Lock()
	defer c.fvarMu.Unlock()
	if !c.fvarSet {
		c.fvar, c.fvarSet = f, true
	}
	return c.fvar
}

// SetFvar stores the axis table; nil stands for a font without variable axes.
func (ctx *Context) SetFvar(f *otwrite.Fvar) {
	id := FvarId()
	ctx.acl.assertWrite(BeId(id))
	if f == nil {
		ctx.maybePersistYAML(ctx.paths.TargetFile(id), &otwrite.Fvar{})
	} else {
		ctx.maybePersistYAML(ctx.paths.TargetFile(id), f)
	}
	c := ctx.cells
	c.fvarMu.Lock()
	defer c.fvarMu.Unlock()
	c.fvar, c.fvarSet = f, true
}

// Font returns the final font binary.
func (ctx *Context) Font() []byte {
	id := FinalMergeId()
	ctx.acl.assertRead(BeId(id))
	c := ctx.cells
	c.fontMu.RLock()
	if c.font != nil {
		defer c.fontMu.RUnlock()
		return c.font
	}
	c.fontMu.RUnlock()
	content := ctx.restore(ctx.paths.TargetFile(id), id)
	c.fontMu.Lock()
	defer c.fontMu.Unlock()
	if c.font == nil {
		c.font = content
	}
	return c.font
}

// SetFont stores the final font binary.
func (ctx *Context) SetFont(font []byte) {
	id := FinalMergeId()
	ctx.acl.assertWrite(BeId(id))
	ctx.maybePersist(ctx.paths.TargetFile(id), font)
	c := ctx.cells
	c.fontMu.Lock()
	defer c.fontMu.Unlock()
	c.font = font
}
