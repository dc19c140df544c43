package glyf

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/otbackend/bez"
	"github.com/npillmayer/otbackend/ir"
	"github.com/npillmayer/otbackend/oterr"
)

// CheckedGlyph is a glyph whose masters have been found to be consistent.
// It is either a *Composite or a *Contour. Checked glyphs are created by
// CheckGlyph only.
type CheckedGlyph interface {
	Name() string
	isChecked()
}

// LocatedComponent is a component of a composite glyph at one master location.
type LocatedComponent struct {
	Base      string
	Location  ir.Location
	Transform bez.Affine
}

// Composite is a glyph consisting of components only. Every master
// references the same glyphs, possibly in a different order.
type Composite struct {
	name       string
	Components []LocatedComponent
}

// Name of the glyph.
func (c *Composite) Name() string { return c.name }

// AtLocation returns the components of the master at loc.
func (c *Composite) AtLocation(loc ir.Location) []LocatedComponent {
	var comps []LocatedComponent
	for _, lc := range c.Components {
		if lc.Location.Equal(loc) {
			comps = append(comps, lc)
		}
	}
	return comps
}

// LocatedPath is the outline of a glyph at one master location.
type LocatedPath struct {
	Location ir.Location
	Path     bez.Path
}

// Contour is a glyph drawn by outlines only. The outlines of all masters
// have the same sequence of path elements. All contours of a master are
// merged into a single path.
type Contour struct {
	name  string
	Paths []LocatedPath
}

// Name of the glyph.
func (c *Contour) Name() string { return c.name }

// Path returns the outline of the master at loc.
func (c *Contour) Path(loc ir.Location) (bez.Path, bool) {
	for _, lp := range c.Paths {
		if lp.Location.Equal(loc) {
			return lp.Path, true
		}
	}
	return bez.Path{}, false
}

func (*Composite) isChecked() {}
func (*Contour) isChecked()   {}

// CheckGlyph checks that the masters of g are consistent. Every master has
// to reference the same component glyphs, each the same number of times;
// order and transforms may differ. Every master has to have the same
// sequence of path elements. A glyph must not mix components and outlines.
func CheckGlyph(g *ir.Glyph) (CheckedGlyph, error) {
	instances := g.Instances()
	componentSets := map[string]bool{}
	pathSequences := map[string]bool{}
	var components, paths string
	for _, inst := range instances {
		names := treeset.NewWithStringComparator()
		bases := make([]string, len(inst.Components))
		for i, c := range inst.Components {
			bases[i] = c.Base
		}
		for _, key := range componentKeys(bases) {
			names.Add(key)
		}
		components = joinNames(names)
		componentSets[components] = true
		var seq strings.Builder
		for _, contour := range inst.Contours {
			seq.WriteString(contour.KindSequence())
		}
		paths = seq.String()
		pathSequences[paths] = true
	}
	if len(componentSets) > 1 {
		tracer().Infof("%s has inconsistent component glyph sets", g.Name)
		return nil, oterr.GlyphError{Glyph: g.Name, Problem: oterr.InconsistentComponents}
	}
	if len(pathSequences) > 1 {
		return nil, oterr.GlyphError{Glyph: g.Name, Problem: oterr.InconsistentPathElements}
	}
	tracer().Debugf("'%s' consistent: components [%s], paths '%s'", g.Name, components, paths)
	if components != "" && paths != "" {
		tracer().Infof("%s has components and paths", g.Name)
		return nil, oterr.GlyphError{Glyph: g.Name, Problem: oterr.HasComponentsAndPath}
	}
	if components == "" {
		contour := &Contour{name: g.Name}
		for _, inst := range instances {
			if len(inst.Contours) > 1 {
				tracer().Debugf("merging %d contours to form '%s' at %v",
					len(inst.Contours), g.Name, inst.Location)
			}
			var path bez.Path
			for _, c := range inst.Contours {
				for _, el := range c.Elements() {
					path.Push(el)
				}
			}
			contour.Paths = append(contour.Paths, LocatedPath{Location: inst.Location, Path: path})
		}
		return contour, nil
	}
	composite := &Composite{name: g.Name}
	for _, inst := range instances {
		for _, c := range inst.Components {
			composite.Components = append(composite.Components, LocatedComponent{
				Base:      c.Base,
				Location:  inst.Location,
				Transform: c.Transform,
			})
		}
	}
	return composite, nil
}

// componentKeys identifies each component by its base glyph and its
// occurrence among the components with that base: a glyph using "A" twice
// has keys "A" and "A#2".
func componentKeys(bases []string) []string {
	keys := make([]string, len(bases))
	seen := map[string]int{}
	for i, base := range bases {
		seen[base]++
		if n := seen[base]; n > 1 {
			keys[i] = fmt.Sprintf("%s#%d", base, n)
		} else {
			keys[i] = base
		}
	}
	return keys
}

func joinNames(set *treeset.Set) string {
	names := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		names = append(names, v.(string))
	}
	return strings.Join(names, " ")
}

func (c *Contour) String() string {
	return fmt.Sprintf("Contour[%s, %d masters]", c.name, len(c.Paths))
}

func (c *Composite) String() string {
	return fmt.Sprintf("Composite[%s, %d components]", c.name, len(c.Components))
}
