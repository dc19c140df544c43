package glyf

import (
	"errors"
	"fmt"

	"github.com/npillmayer/otbackend/bez"
	"github.com/npillmayer/otbackend/ir"
	"github.com/npillmayer/otbackend/orchestration"
	"github.com/npillmayer/otbackend/oterr"
	"github.com/npillmayer/otbackend/otwrite"
)

// GlyphWork compiles a single glyph into its binary record and its
// variation deltas.
//
// It reads the IR of the glyph and the static metadata, and writes the
// backend artifacts Glyph(name) and GvarFragment(name).
type GlyphWork struct {
	Name string
}

// CreateGlyphWork creates the unit of work for glyph name.
func CreateGlyphWork(name string) *GlyphWork {
	return &GlyphWork{Name: name}
}

// Id is the identity of the unit of work.
func (w *GlyphWork) Id() orchestration.AnyWorkId {
	return orchestration.BeId(orchestration.GlyphId(w.Name))
}

// Read is the predicate for what the unit of work may read.
func (w *GlyphWork) Read() orchestration.AccessFn {
	return orchestration.AccessOneOf(
		orchestration.FeId(ir.StaticMetadataId()),
		orchestration.FeId(ir.GlyphId(w.Name)),
	)
}

// Write is the predicate for what the unit of work may write.
func (w *GlyphWork) Write() orchestration.AccessFn {
	return orchestration.AccessOneOf(
		orchestration.BeId(orchestration.GlyphId(w.Name)),
		orchestration.BeId(orchestration.GvarFragmentId(w.Name)),
	)
}

// Exec compiles the glyph.
func (w *GlyphWork) Exec(ctx *orchestration.Context) error {
	meta := ctx.StaticMetadata()
	irGlyph := ctx.GlyphIR(w.Name)
	checked, err := CheckGlyph(irGlyph)
	if err != nil {
		return err
	}
	switch g := checked.(type) {
	case *Composite:
		return w.compileComposite(ctx, meta, g)
	case *Contour:
		return w.compileContour(ctx, meta, g)
	}
	panic(fmt.Sprintf("unknown kind of checked glyph: %T", checked))
}

func (w *GlyphWork) compileComposite(ctx *orchestration.Context, meta *ir.StaticMetadata, g *Composite) error {
	defaultLoc := meta.VariationModel.DefaultLocation()
	if _, ok := ctx.GlyphIR(w.Name).Instance(defaultLoc); !ok {
		return oterr.GlyphError{Glyph: w.Name, Problem: oterr.MissingDefault}
	}
	composite, err := CreateComposite(meta.GlyphOrder, g, defaultLoc)
	if err != nil {
		return err
	}
	fragment, err := compositeDeltas(meta.VariationModel, g)
	if err != nil {
		return err
	}
	ctx.SetGlyph(w.Name, composite)
	ctx.SetGvarFragment(w.Name, fragment)
	return nil
}

func (w *GlyphWork) compileContour(ctx *orchestration.Context, meta *ir.StaticMetadata, g *Contour) error {
	defaultLoc := meta.VariationModel.DefaultLocation()
	if _, ok := g.Path(defaultLoc); !ok {
		return oterr.GlyphError{Glyph: w.Name, Problem: oterr.MissingDefault}
	}
	quadratic := CubicsToQuadratics(g)
	path, _ := quadratic.Path(defaultLoc)
	simple, err := otwrite.SimpleGlyphFromPath(path)
	if err != nil {
		return oterr.PathConversionError{Glyph: w.Name, Problem: err.Error(), Path: path.String()}
	}
	fragment, err := contourDeltas(meta.VariationModel, quadratic)
	if err != nil {
		return err
	}
	if ctx.Flags.EmitDebug {
		if err := writePreview(ctx, w.Name, path, meta.UnitsPerEm); err != nil {
			tracer().Errorf("no preview for glyph '%s': %v", w.Name, err)
		}
	}
	ctx.SetGlyph(w.Name, simple)
	ctx.SetGvarFragment(w.Name, fragment)
	return nil
}

// CreateComposite creates the binary record of a composite glyph from the
// components of its master at location loc. Its bounding box is left
// empty, as it depends on other glyphs (see ComputeCompositeBboxes).
//
// Every component base has to be found in the glyph order; all failing
// components are reported together.
func CreateComposite(order *ir.GlyphOrder, g *Composite, loc ir.Location) (*otwrite.CompositeGlyph, error) {
	errs := &oterr.ComponentErrors{Glyph: g.Name()}
	var components []otwrite.Component
	for _, lc := range g.AtLocation(loc) {
		gid, ok := order.GlyphID(lc.Base)
		if !ok {
			errs.Add(oterr.ComponentError{Glyph: g.Name(), Component: lc.Base, Problem: oterr.NotInGlyphOrder})
			continue
		}
		c, err := otwrite.NewComponent(gid, lc.Transform)
		if err != nil {
			errs.Add(fmt.Errorf("glyph %q: component %q: %w", g.Name(), lc.Base, err))
			continue
		}
		components = append(components, c)
	}
	if errs.HasErrors() {
		return nil, errs
	}
	if len(components) == 0 {
		return nil, oterr.GlyphError{Glyph: g.Name(), Problem: oterr.NoComponents}
	}
	return otwrite.NewCompositeGlyph(components)
}

// contourDeltas computes the deltas of all points of a quadratic contour
// glyph.
func contourDeltas(model ir.VariationModel, g *Contour) (*orchestration.GvarFragment, error) {
	masters := make([]ir.MasterPoints, len(g.Paths))
	for i, lp := range g.Paths {
		masters[i] = ir.MasterPoints{Location: lp.Location, Points: Points(lp.Path)}
	}
	return deltas(model, g.Name(), masters)
}

// compositeDeltas computes the deltas of the component offsets of a
// composite glyph. Components are matched between masters by base glyph
// and occurrence, and ordered like the components of the default master.
func compositeDeltas(model ir.VariationModel, g *Composite) (*orchestration.GvarFragment, error) {
	var locs []ir.Location
	byLoc := map[string][]LocatedComponent{}
	for _, lc := range g.Components {
		key := lc.Location.Key()
		if _, ok := byLoc[key]; !ok {
			locs = append(locs, lc.Location)
		}
		byLoc[key] = append(byLoc[key], lc)
	}
	order := componentKeys(componentBases(byLoc[model.DefaultLocation().Key()]))
	masters := make([]ir.MasterPoints, len(locs))
	for i, loc := range locs {
		comps := byLoc[loc.Key()]
		if len(comps) != len(order) {
			return nil, oterr.GlyphError{Glyph: g.Name(), Problem: oterr.InconsistentComponents}
		}
		offsets := make(map[string]bez.Point, len(comps))
		for j, ckey := range componentKeys(componentBases(comps)) {
			_, _, _, _, dx, dy := comps[j].Transform.Coeffs()
			offsets[ckey] = bez.Pt(dx, dy)
		}
		masters[i] = ir.MasterPoints{Location: loc, Points: make([]bez.Point, len(order))}
		for j, ckey := range order {
			offset, ok := offsets[ckey]
			if !ok {
				return nil, oterr.GlyphError{Glyph: g.Name(), Problem: oterr.InconsistentComponents}
			}
			masters[i].Points[j] = offset
		}
	}
	return deltas(model, g.Name(), masters)
}

func componentBases(comps []LocatedComponent) []string {
	names := make([]string, len(comps))
	for i, c := range comps {
		names[i] = c.Base
	}
	return names
}

func deltas(model ir.VariationModel, name string, masters []ir.MasterPoints) (*orchestration.GvarFragment, error) {
	if len(masters) == 1 {
		return &orchestration.GvarFragment{
			Deltas: []orchestration.GvarDeltas{{Region: ir.Region{}, Points: roundPoints(masters[0].Points)}},
		}, nil
	}
	ds, err := model.Deltas(masters)
	if err != nil {
		if errors.Is(err, ir.ErrPointCountMismatch) {
			tracer().Infof("glyph '%s' has incompatible masters", name)
		}
		return nil, oterr.GlyphDeltaError{Glyph: name, Err: err}
	}
	fragment := &orchestration.GvarFragment{Deltas: make([]orchestration.GvarDeltas, len(ds))}
	for i, d := range ds {
		fragment.Deltas[i] = orchestration.GvarDeltas{Region: d.Region, Points: roundPoints(d.Points)}
	}
	return fragment, nil
}

func roundPoints(pts []bez.Point) [][2]int {
	r := make([][2]int, len(pts))
	for i, p := range pts {
		r[i] = [2]int{otwrite.OtRound(p.X), otwrite.OtRound(p.Y)}
	}
	return r
}
