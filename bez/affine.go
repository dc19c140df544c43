package bez

import "fmt"

// Affine is a 2D affine transformation, stored as six coefficients
// [a b c d e f]. A point (x,y) maps to (a·x + c·y + e, b·x + d·y + f).
type Affine [6]float64

// Identity is the identity transform.
func Identity() Affine {
	return Affine{1, 0, 0, 1, 0, 0}
}

// Translate returns a transform moving points by (dx,dy).
func Translate(dx, dy float64) Affine {
	return Affine{1, 0, 0, 1, dx, dy}
}

// Scale returns a transform scaling points by (sx,sy) around the origin.
func Scale(sx, sy float64) Affine {
	return Affine{sx, 0, 0, sy, 0, 0}
}

// Coeffs returns the six coefficients of a.
func (a Affine) Coeffs() (xx, yx, xy, yy, dx, dy float64) {
	return a[0], a[1], a[2], a[3], a[4], a[5]
}

// Apply transforms point p.
func (a Affine) Apply(p Point) Point {
	return Point{
		X: a[0]*p.X + a[2]*p.Y + a[4],
		Y: a[1]*p.X + a[3]*p.Y + a[5],
	}
}

// Then returns the transform applying a first and b afterwards.
func (a Affine) Then(b Affine) Affine {
	return Affine{
		b[0]*a[0] + b[2]*a[1],
		b[1]*a[0] + b[3]*a[1],
		b[0]*a[2] + b[2]*a[3],
		b[1]*a[2] + b[3]*a[3],
		b[0]*a[4] + b[2]*a[5] + b[4],
		b[1]*a[4] + b[3]*a[5] + b[5],
	}
}

// TransformRectBbox transforms all four corners of r and returns the
// axis-aligned bounding box of the result.
func (a Affine) TransformRectBbox(r Rect) Rect {
	corners := r.Corners()
	pts := make([]Point, 0, 4)
	for _, c := range corners {
		pts = append(pts, a.Apply(c))
	}
	bbox, _ := BoundingBox(pts)
	return bbox
}

func (a Affine) String() string {
	return fmt.Sprintf("Affine[%g %g %g %g %g %g]", a[0], a[1], a[2], a[3], a[4], a[5])
}
