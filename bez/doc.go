/*
Package bez provides the small set of 2D geometry needed to compile glyph outlines:
points, affine transforms, rectangles, Bézier path elements and the approximation
of cubic Bézier curves by quadratic splines.

Paths are sequences of drawing commands (move, line, quad, cubic, close), much like
PostScript or SVG path data. Glyph outlines in TrueType fonts may only contain lines
and quadratic curves, whereas design sources usually are drawn with cubic curves.
CubicsToQuadraticSplines converts a set of cubic curves in lock-step, i.e. every
curve of the set is split into the same number of quadratic segments. This keeps
outlines of different masters of a variable font interpolation compatible.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package bez

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'otbackend.bez'
func tracer() tracing.Trace {
	return tracing.Select("otbackend.bez")
}
