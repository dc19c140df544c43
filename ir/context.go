package ir

import (
	"fmt"
	"sort"
)

// Context is the final output of a frontend: static metadata, glyph IR and
// layout rules. A Context is immutable and may be shared by any number of
// goroutines.
type Context struct {
	metadata *StaticMetadata
	glyphs   map[string]*Glyph
	features Features
}

// NewContext creates a frontend context. Every glyph must have a unique name.
func NewContext(metadata *StaticMetadata, glyphs []*Glyph, features Features) (*Context, error) {
	if metadata == nil {
		return nil, fmt.Errorf("frontend context requires static metadata")
	}
	ctx := &Context{
		metadata: metadata,
		glyphs:   make(map[string]*Glyph, len(glyphs)),
		features: features,
	}
	for _, g := range glyphs {
		if _, dup := ctx.glyphs[g.Name]; dup {
			return nil, fmt.Errorf("duplicate glyph %q in frontend context", g.Name)
		}
		ctx.glyphs[g.Name] = g
	}
	return ctx, nil
}

// StaticMetadata returns the final static metadata.
func (ctx *Context) StaticMetadata() *StaticMetadata {
	return ctx.metadata
}

// Glyph returns the IR of a glyph.
func (ctx *Context) Glyph(name string) (*Glyph, bool) {
	g, ok := ctx.glyphs[name]
	return g, ok
}

// GlyphNames returns the names of all glyphs with IR, sorted.
func (ctx *Context) GlyphNames() []string {
	names := make([]string, 0, len(ctx.glyphs))
	for n := range ctx.glyphs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Features returns the layout rules.
func (ctx *Context) Features() Features {
	return ctx.features
}

// WorkIds lists the ids of all artifacts within ctx.
func (ctx *Context) WorkIds() []WorkId {
	ids := []WorkId{StaticMetadataId(), FeaturesId()}
	for _, n := range ctx.GlyphNames() {
		ids = append(ids, GlyphId(n))
	}
	return ids
}
