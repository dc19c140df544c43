package glyf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/otbackend/bez"
	"github.com/npillmayer/otbackend/ir"
	"github.com/npillmayer/otbackend/orchestration"
	"github.com/npillmayer/otbackend/otwrite"
)

// MergeWork merges all binary glyph records into tables 'glyf' and 'loca'.
// It has to run after the glyph work of every glyph in the glyph order.
type MergeWork struct{}

// CreateMergeWork creates the glyph-merge unit of work.
func CreateMergeWork() *MergeWork {
	return &MergeWork{}
}

// Id is the identity of the unit of work.
func (w *MergeWork) Id() orchestration.AnyWorkId {
	return orchestration.BeId(orchestration.GlyphMergeId())
}

// Read is the predicate for what the unit of work may read.
func (w *MergeWork) Read() orchestration.AccessFn {
	return orchestration.AccessAny(
		orchestration.AccessOneOf(orchestration.FeId(ir.StaticMetadataId())),
		orchestration.AccessBeKind(orchestration.WorkGlyph),
	)
}

// Write is the predicate for what the unit of work may write. Glyphs are
// writable, as bounding boxes of composites are updated.
func (w *MergeWork) Write() orchestration.AccessFn {
	return orchestration.AccessAny(
		orchestration.AccessOneOf(w.Id()),
		orchestration.AccessBeKind(orchestration.WorkGlyph),
	)
}

// Exec sets the bounding boxes of composite glyphs and assembles the tables.
func (w *MergeWork) Exec(ctx *orchestration.Context) error {
	ComputeCompositeBboxes(ctx)
	gl := AssembleGlyfLoca(ctx)
	if err := gl.Validate(); err != nil {
		panic(fmt.Sprintf("glyf/loca assembly: %v", err))
	}
	ctx.SetGlyfLoca(gl)
	return nil
}

// ComputeCompositeBboxes computes the bounding boxes of all composite
// glyphs and replaces the composites in ctx by copies carrying their box.
//
// The box of a composite is the union of the boxes of its components,
// each transformed by the component's transform. Composites may reference
// other composites, so boxes are resolved in passes until every composite
// is done. A pass resolving nothing means the composites reference each
// other in a cycle, which is a fatal error.
func ComputeCompositeBboxes(ctx *orchestration.Context) {
	order := ctx.StaticMetadata().GlyphOrder
	bboxes := map[string]bez.Rect{}
	pending := map[string]*otwrite.CompositeGlyph{}
	for _, name := range order.Names() {
		switch g := ctx.Glyph(name).(type) {
		case *otwrite.CompositeGlyph:
			pending[name] = g
		default:
			bboxes[name] = g.Bbox().Rect()
		}
	}
	tracer().Debugf("resolving bounding boxes of %d composites", len(pending))
	for len(pending) > 0 {
		var resolved []string
		for name, g := range pending {
			if r, ok := compositeBbox(order, g, bboxes); ok {
				bboxes[name] = r
				resolved = append(resolved, name)
			}
		}
		if len(resolved) == 0 {
			stuck := make([]string, 0, len(pending))
			for name := range pending {
				stuck = append(stuck, name)
			}
			sort.Strings(stuck)
			panic(fmt.Sprintf("unable to make progress on composite bbox, stuck at %s",
				strings.Join(stuck, ", ")))
		}
		for _, name := range resolved {
			delete(pending, name)
		}
	}
	for _, name := range order.Names() {
		if g, ok := ctx.Glyph(name).(*otwrite.CompositeGlyph); ok {
			bbox := otwrite.BboxFromRect(bboxes[name])
			tracer().Debugf("composite '%s' has bbox %s", name, bbox)
			ctx.SetGlyph(name, g.WithBbox(bbox))
		}
	}
}

// compositeBbox computes the box of a composite if the boxes of all of its
// components are known.
func compositeBbox(order *ir.GlyphOrder, g *otwrite.CompositeGlyph, bboxes map[string]bez.Rect) (bez.Rect, bool) {
	var union bez.Rect
	for i, c := range g.Components {
		base, ok := order.Name(int(c.GlyphID))
		if !ok {
			panic(fmt.Sprintf("component references glyph id %d beyond glyph order", c.GlyphID))
		}
		r, ok := bboxes[base]
		if !ok {
			return bez.Rect{}, false
		}
		r = c.Affine().TransformRectBbox(r)
		if i == 0 {
			union = r
		} else {
			union = union.Union(r)
		}
	}
	return union, true
}

// AssembleGlyfLoca concatenates the binary records of all glyphs, in glyph
// order, into table 'glyf', with 32-bit offsets in 'loca'.
func AssembleGlyfLoca(ctx *orchestration.Context) *orchestration.GlyfLoca {
	names := ctx.StaticMetadata().GlyphOrder.Names()
	gl := &orchestration.GlyfLoca{Loca: make([]uint32, 0, len(names)+1)}
	gl.Loca = append(gl.Loca, 0)
	for _, name := range names {
		gl.Glyf = append(gl.Glyf, ctx.Glyph(name).Bytes()...)
		gl.Loca = append(gl.Loca, uint32(len(gl.Glyf)))
	}
	tracer().Infof("assembled %d glyphs into %d bytes of glyf", len(names), len(gl.Glyf))
	return gl
}
