package ir

import (
	"fmt"
	"sort"

	"github.com/npillmayer/otbackend/bez"
)

// Component references another glyph, placed by an affine transform.
type Component struct {
	Base      string     // name of the referenced glyph
	Transform bez.Affine // placement of the referenced glyph
}

// GlyphInstance is the drawing of a glyph at one master location. It holds
// either contours or components; well-formed IR never has both, but the
// backend checks this (see package glyf).
type GlyphInstance struct {
	Location   Location
	Contours   []bez.Path
	Components []Component
}

// Glyph is a glyph of the IR, given by its drawings at every master location.
type Glyph struct {
	Name      string
	instances []GlyphInstance // sorted by location key
}

// NewGlyph creates a glyph from its master instances. Every instance must be
// at a distinct location.
func NewGlyph(name string, instances ...GlyphInstance) (*Glyph, error) {
	g := &Glyph{Name: name, instances: make([]GlyphInstance, len(instances))}
	copy(g.instances, instances)
	sort.Slice(g.instances, func(i, j int) bool {
		return g.instances[i].Location.Key() < g.instances[j].Location.Key()
	})
	for i := 1; i < len(g.instances); i++ {
		if g.instances[i].Location.Equal(g.instances[i-1].Location) {
			return nil, fmt.Errorf("glyph %q has more than one master at %v", name, g.instances[i].Location)
		}
	}
	return g, nil
}

// Instances returns the master instances of g, ordered by location.
// Clients must not modify them.
func (g *Glyph) Instances() []GlyphInstance {
	return g.instances
}

// Instance returns the instance at location loc.
func (g *Glyph) Instance(loc Location) (*GlyphInstance, bool) {
	for i := range g.instances {
		if g.instances[i].Location.Equal(loc) {
			return &g.instances[i], true
		}
	}
	return nil, false
}

// Locations returns the master locations of g.
func (g *Glyph) Locations() []Location {
	locs := make([]Location, len(g.instances))
	for i, inst := range g.instances {
		locs[i] = inst.Location
	}
	return locs
}

func (g *Glyph) String() string {
	return fmt.Sprintf("Glyph[%s, %d masters]", g.Name, len(g.instances))
}
