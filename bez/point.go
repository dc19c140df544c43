package bez

import (
	"fmt"
	"math"
)

// Point is a point in 2D space. It is used for on-curve and off-curve points
// alike, as well as for offsets between points.
type Point struct {
	X, Y float64
}

// Pt is a shortcut for creating a point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul scales p by s.
func (p Point) Mul(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Lerp interpolates linearly between p (t=0) and q (t=1).
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return Point{(p.X + q.X) * 0.5, (p.Y + q.Y) * 0.5}
}

// Hypot returns the length of p, interpreted as a vector.
func (p Point) Hypot() float64 {
	return math.Hypot(p.X, p.Y)
}

// Dot is the dot product of p and q, interpreted as vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// IsNaN is true if any coordinate is NaN.
func (p Point) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}
