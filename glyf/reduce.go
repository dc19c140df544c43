package glyf

import (
	"fmt"

	"github.com/npillmayer/otbackend/bez"
)

// QuadraticAccuracy is the maximum deviation, in font units, of quadratic
// approximations of cubic curves.
const QuadraticAccuracy = 1.0

// CubicsToQuadratics converts the cubic curves of all masters of a glyph to
// quadratic splines. Corresponding cubics of all masters are converted
// together, so every master gets the same number of quadratic segments and
// the masters stay compatible. Other path elements are copied unchanged.
//
// The masters of c have to be consistent (see CheckGlyph); inconsistent
// masters are an internal error and cause a panic.
func CubicsToQuadratics(c *Contour) *Contour {
	n := len(c.Paths)
	out := &Contour{name: c.name, Paths: make([]LocatedPath, n)}
	if n == 0 {
		return out
	}
	tracer().Debugf("convert '%s' to quadratic", c.name)
	els := make([][]bez.PathEl, n)
	for i, lp := range c.Paths {
		els[i] = lp.Path.Elements()
		out.Paths[i].Location = lp.Location
		if len(els[i]) != len(els[0]) {
			panic(fmt.Sprintf("'%s': masters differ in number of path elements", c.name))
		}
	}
	start := make([]bez.Point, n) // start point of current sub-path, per master
	prev := make([]bez.Point, n)  // end point of previous element, per master
	for k := range els[0] {
		kind := els[0][k].Kind
		if k == 0 && kind != bez.MoveTo {
			panic(fmt.Sprintf("'%s': illegal start of path: %v", c.name, els[0][k]))
		}
		for i := range els {
			if els[i][k].Kind != kind {
				panic(fmt.Sprintf("'%s': masters differ at path element %d", c.name, k))
			}
		}
		if kind == bez.CurveTo {
			cubics := make([]bez.CubicBez, n)
			for i := range els {
				p := els[i][k].P
				cubics[i] = bez.CubicBez{P0: prev[i], P1: p[0], P2: p[1], P3: p[2]}
			}
			splines, ok := bez.CubicsToQuadraticSplines(cubics, QuadraticAccuracy)
			if !ok {
				panic(fmt.Sprintf("'%s': unable to convert to quadratic %v", c.name, cubics))
			}
			if len(splines) != n {
				panic(fmt.Sprintf("'%s': needed %d splines, got %d", c.name, n, len(splines)))
			}
			for i, spline := range splines {
				for _, q := range spline.Quads() {
					out.Paths[i].Path.QuadTo(q.P1, q.P2)
				}
			}
		} else {
			for i := range els {
				out.Paths[i].Path.Push(els[i][k])
			}
		}
		for i := range els {
			if p, ok := els[i][k].EndPoint(); ok {
				prev[i] = p
			} else {
				prev[i] = start[i]
			}
			if kind == bez.MoveTo {
				start[i] = prev[i]
			}
		}
	}
	return out
}
