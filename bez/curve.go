package bez

import (
	"fmt"
	"math"
)

// QuadBez is a quadratic Bézier segment.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at t.
func (q QuadBez) Eval(t float64) Point {
	mt := 1 - t
	return q.P0.Mul(mt * mt).Add(q.P1.Mul(2 * mt * t)).Add(q.P2.Mul(t * t))
}

// CubicBez is a cubic Bézier segment.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at t.
func (c CubicBez) Eval(t float64) Point {
	mt := 1 - t
	return c.P0.Mul(mt * mt * mt).
		Add(c.P1.Mul(3 * mt * mt * t)).
		Add(c.P2.Mul(3 * mt * t * t)).
		Add(c.P3.Mul(t * t * t))
}

// Subsegment returns the part of c for the parameter range [t0,t1].
func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	p0 := c.Eval(t0)
	p3 := c.Eval(t1)
	d := c.deriv()
	scale := (t1 - t0) / 3
	p1 := p0.Add(d.Eval(t0).Mul(scale))
	p2 := p3.Sub(d.Eval(t1).Mul(scale))
	return CubicBez{p0, p1, p2, p3}
}

// deriv is the derivative of c, a quadratic curve.
func (c CubicBez) deriv() QuadBez {
	return QuadBez{
		P0: c.P1.Sub(c.P0).Mul(3),
		P1: c.P2.Sub(c.P1).Mul(3),
		P2: c.P3.Sub(c.P2).Mul(3),
	}
}

func (c CubicBez) String() string {
	return fmt.Sprintf("Cubic[%v %v %v %v]", c.P0, c.P1, c.P2, c.P3)
}

// QuadSpline is a sequence of quadratic segments in TrueType notation: the first
// and the last point are on-curve, all points in between are off-curve, with
// implied on-curve points halfway between two consecutive off-curve points.
type QuadSpline []Point

// Quads expands the spline into explicit quadratic segments.
func (s QuadSpline) Quads() []QuadBez {
	if len(s) < 3 {
		return nil
	}
	n := len(s) - 2 // number of off-curve points = number of segments
	quads := make([]QuadBez, n)
	start := s[0]
	for i := 0; i < n; i++ {
		ctrl := s[i+1]
		end := s[len(s)-1]
		if i < n-1 {
			end = ctrl.Midpoint(s[i+2])
		}
		quads[i] = QuadBez{start, ctrl, end}
		start = end
	}
	return quads
}

// maxSplineSplit limits the number of quadratic segments a cubic may be split into.
const maxSplineSplit = 100

// CubicsToQuadraticSplines approximates each of the cubic curves by a quadratic
// spline, within a maximum deviation of accuracy. All splines returned will have
// the same number of segments, which is the smallest number satisfying the
// accuracy constraint for every input curve.
//
// ok is false if no common segment count up to an internal limit could be found.
func CubicsToQuadraticSplines(cubics []CubicBez, accuracy float64) (splines []QuadSpline, ok bool) {
	splines = make([]QuadSpline, 0, len(cubics))
	for n := 1; n <= maxSplineSplit; n++ {
		splines = splines[:0]
		for _, c := range cubics {
			spline, ok := c.approxSplineN(n, accuracy)
			if !ok {
				break
			}
			splines = append(splines, spline)
		}
		if len(splines) == len(cubics) {
			if n > 1 {
				tracer().Debugf("%d cubics need %d quadratic segments each", len(cubics), n)
			}
			return splines, true
		}
	}
	return nil, false
}

// ApproxQuadSpline approximates a single cubic curve by a quadratic spline.
func (c CubicBez) ApproxQuadSpline(accuracy float64) (QuadSpline, bool) {
	splines, ok := CubicsToQuadraticSplines([]CubicBez{c}, accuracy)
	if !ok {
		return nil, false
	}
	return splines[0], true
}

// approxSplineN tries to approximate c by a quadratic spline of exactly n segments.
func (c CubicBez) approxSplineN(n int, accuracy float64) (QuadSpline, bool) {
	if n == 1 {
		q1, ok := c.approxQuadControl(accuracy)
		if !ok {
			return nil, false
		}
		return QuadSpline{c.P0, q1, c.P3}, true
	}
	cubics := make([]CubicBez, n)
	for i := range cubics {
		cubics[i] = c.Subsegment(float64(i)/float64(n), float64(i+1)/float64(n))
	}
	spline := make(QuadSpline, 0, n+2)
	spline = append(spline, c.P0)
	nextQ1 := approxControl(0, cubics[0])
	spline = append(spline, nextQ1)
	q2 := c.P0
	var d1 Point
	for i := 1; i <= n; i++ {
		cur := cubics[i-1]
		q0 := q2
		q1 := nextQ1
		if i < n {
			nextQ1 = approxControl(float64(i)/float64(n-1), cubics[i])
			spline = append(spline, nextQ1)
			q2 = q1.Midpoint(nextQ1)
		} else {
			q2 = cur.P3
		}
		d0 := d1
		d1 = q2.Sub(cur.P3)
		if d1.Hypot() > accuracy {
			return nil, false
		}
		p1 := q0.Add(q1.Sub(q0).Mul(2.0 / 3.0)).Sub(cur.P1)
		p2 := q2.Add(q1.Sub(q2).Mul(2.0 / 3.0)).Sub(cur.P2)
		if !farthestFitInside(d0, p1, p2, d1, accuracy) {
			return nil, false
		}
	}
	spline = append(spline, c.P3)
	return spline, true
}

// approxQuadControl finds the control point of a single quadratic curve
// approximating c, using the intersection of the start and end tangents.
func (c CubicBez) approxQuadControl(accuracy float64) (Point, bool) {
	q1 := intersectTangents(c.P0, c.P1, c.P2, c.P3)
	if q1.IsNaN() {
		return Point{}, false
	}
	c1 := c.P0.Add(q1.Sub(c.P0).Mul(2.0 / 3.0))
	c2 := c.P3.Add(q1.Sub(c.P3).Mul(2.0 / 3.0))
	if !farthestFitInside(Point{}, c1.Sub(c.P1), c2.Sub(c.P2), Point{}, accuracy) {
		return Point{}, false
	}
	return q1, true
}

// approxControl estimates the control point of a quadratic approximating
// segment c, blended by t between the start and end tangent estimates.
func approxControl(t float64, c CubicBez) Point {
	p1 := c.P0.Add(c.P1.Sub(c.P0).Mul(1.5))
	p2 := c.P3.Add(c.P2.Sub(c.P3).Mul(1.5))
	return p1.Lerp(p2, t)
}

// intersectTangents intersects line a–b with line c–d. The result has NaN
// coordinates if the lines are parallel.
func intersectTangents(a, b, c, d Point) Point {
	ab := b.Sub(a)
	cd := d.Sub(c)
	perp := Point{-ab.Y, ab.X}
	denom := perp.Dot(cd)
	if denom == 0 {
		return Point{math.NaN(), math.NaN()}
	}
	h := perp.Dot(a.Sub(c)) / denom
	return c.Add(cd.Mul(h))
}

// farthestFitInside checks whether the cubic curve given by the error vectors
// p0…p3 stays within a circle of radius tolerance around the origin.
func farthestFitInside(p0, p1, p2, p3 Point, tolerance float64) bool {
	if p2.Hypot() <= tolerance && p1.Hypot() <= tolerance {
		return true
	}
	mid := p0.Add(p1.Add(p2).Mul(3)).Add(p3).Mul(0.125)
	if mid.Hypot() > tolerance {
		return false
	}
	deriv3 := p3.Add(p2).Sub(p1).Sub(p0).Mul(0.125)
	return farthestFitInside(p0, p0.Midpoint(p1), mid.Sub(deriv3), mid, tolerance) &&
		farthestFitInside(mid, mid.Add(deriv3), p2.Midpoint(p3), p3, tolerance)
}
