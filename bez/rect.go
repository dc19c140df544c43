package bez

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned rectangle, given by its minimum and maximum corners.
type Rect struct {
	X0, Y0 float64 // minimum x and y
	X1, Y1 float64 // maximum x and y
}

// NewRect creates a rectangle from two arbitrary corner points.
func NewRect(p, q Point) Rect {
	return Rect{
		X0: math.Min(p.X, q.X),
		Y0: math.Min(p.Y, q.Y),
		X1: math.Max(p.X, q.X),
		Y1: math.Max(p.Y, q.Y),
	}
}

// BoundingBox returns the smallest rectangle enclosing all points. ok is false
// if pts is empty.
func BoundingBox(pts []Point) (r Rect, ok bool) {
	if len(pts) == 0 {
		return Rect{}, false
	}
	r = Rect{X0: pts[0].X, Y0: pts[0].Y, X1: pts[0].X, Y1: pts[0].Y}
	for _, p := range pts[1:] {
		r.X0 = math.Min(r.X0, p.X)
		r.Y0 = math.Min(r.Y0, p.Y)
		r.X1 = math.Max(r.X1, p.X)
		r.Y1 = math.Max(r.Y1, p.Y)
	}
	return r, true
}

// Union returns the smallest rectangle enclosing r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		X0: math.Min(r.X0, other.X0),
		Y0: math.Min(r.Y0, other.Y0),
		X1: math.Max(r.X1, other.X1),
		Y1: math.Max(r.Y1, other.Y1),
	}
}

// Width of r.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height of r.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Corners returns the four corners of r, counter-clockwise starting at (x0,y0).
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.X0, r.Y0}, {r.X1, r.Y0}, {r.X1, r.Y1}, {r.X0, r.Y1},
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %g,%g]", r.X0, r.Y0, r.X1, r.Y1)
}
