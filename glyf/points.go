package glyf

import "github.com/npillmayer/otbackend/bez"

// Points returns all points of a path in drawing order, on-curve and
// off-curve. Closing a sub-path drops its last point if that point
// coincides with the sub-path's start point, as the closing segment is
// implicit in a glyph outline.
func Points(path bez.Path) []bez.Point {
	var pts []bez.Point
	start := -1 // index of the current sub-path's move point
	for _, el := range path.Elements() {
		switch el.Kind {
		case bez.MoveTo:
			start = len(pts)
			pts = append(pts, el.P[0])
		case bez.ClosePath:
			if start >= 0 && len(pts)-start > 1 && pts[len(pts)-1] == pts[start] {
				pts = pts[:len(pts)-1]
			}
			start = -1
		default:
			pts = append(pts, el.Points()...)
		}
	}
	return pts
}
