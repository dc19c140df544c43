package bez

import (
	"fmt"
	"strings"
)

// ElementKind is the kind of a path element.
type ElementKind uint8

// Path element kinds. Their string representations are the well known SVG
// path command letters.
const (
	MoveTo ElementKind = iota
	LineTo
	QuadTo
	CurveTo
	ClosePath
)

func (k ElementKind) String() string {
	switch k {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case QuadTo:
		return "Q"
	case CurveTo:
		return "C"
	case ClosePath:
		return "Z"
	}
	return "?"
}

// PathEl is a single drawing command of a path.
//
// Point usage depends on the kind:
//
//	MoveTo, LineTo:  P[0] = target
//	QuadTo:          P[0] = control, P[1] = target
//	CurveTo:         P[0], P[1] = controls, P[2] = target
//	ClosePath:       no points
type PathEl struct {
	Kind ElementKind
	P    [3]Point
}

// Move creates a move-to element.
func Move(p Point) PathEl { return PathEl{Kind: MoveTo, P: [3]Point{p}} }

// Line creates a line-to element.
func Line(p Point) PathEl { return PathEl{Kind: LineTo, P: [3]Point{p}} }

// Quad creates a quad-to element.
func Quad(c, p Point) PathEl { return PathEl{Kind: QuadTo, P: [3]Point{c, p}} }

// Curve creates a curve-to element.
func Curve(c1, c2, p Point) PathEl { return PathEl{Kind: CurveTo, P: [3]Point{c1, c2, p}} }

// Close creates a close-path element.
func Close() PathEl { return PathEl{Kind: ClosePath} }

// EndPoint returns the target point of el. ok is false for ClosePath, which has
// no point of its own.
func (el PathEl) EndPoint() (p Point, ok bool) {
	switch el.Kind {
	case MoveTo, LineTo:
		return el.P[0], true
	case QuadTo:
		return el.P[1], true
	case CurveTo:
		return el.P[2], true
	}
	return Point{}, false
}

// Points returns the points of el in drawing order.
func (el PathEl) Points() []Point {
	switch el.Kind {
	case MoveTo, LineTo:
		return el.P[:1]
	case QuadTo:
		return el.P[:2]
	case CurveTo:
		return el.P[:3]
	}
	return nil
}

func (el PathEl) String() string {
	var b strings.Builder
	b.WriteString(el.Kind.String())
	for i, p := range el.Points() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%g,%g", p.X, p.Y)
	}
	return b.String()
}

// Path is a sequence of path elements. The zero value is an empty path, ready
// to use.
//
// A path may contain more than one sub-path, each started with a MoveTo.
type Path struct {
	els []PathEl
}

// NewPath creates a path from a list of elements.
func NewPath(els ...PathEl) Path {
	p := Path{els: make([]PathEl, len(els))}
	copy(p.els, els)
	return p
}

// MoveTo starts a new sub-path at p.
func (path *Path) MoveTo(p Point) { path.els = append(path.els, Move(p)) }

// LineTo draws a line to p.
func (path *Path) LineTo(p Point) { path.els = append(path.els, Line(p)) }

// QuadTo draws a quadratic curve with control c to p.
func (path *Path) QuadTo(c, p Point) { path.els = append(path.els, Quad(c, p)) }

// CurveTo draws a cubic curve with controls c1, c2 to p.
func (path *Path) CurveTo(c1, c2, p Point) { path.els = append(path.els, Curve(c1, c2, p)) }

// ClosePath closes the current sub-path.
func (path *Path) ClosePath() { path.els = append(path.els, Close()) }

// Push appends an element.
func (path *Path) Push(el PathEl) { path.els = append(path.els, el) }

// Elements returns the elements of the path. Clients must not modify them.
func (path Path) Elements() []PathEl {
	return path.els
}

// Len is the number of elements.
func (path Path) Len() int {
	return len(path.els)
}

// IsEmpty is true for a path without elements.
func (path Path) IsEmpty() bool {
	return len(path.els) == 0
}

// Clone returns a deep copy of the path.
func (path Path) Clone() Path {
	return NewPath(path.els...)
}

// KindSequence returns the element kinds of the path as a string of SVG command
// letters, e.g. "MLLQZ". Two paths are interpolation compatible only if their
// kind sequences are identical.
func (path Path) KindSequence() string {
	var b strings.Builder
	for _, el := range path.els {
		b.WriteString(el.Kind.String())
	}
	return b.String()
}

// Transform returns a copy of path with every point transformed by a.
func (path Path) Transform(a Affine) Path {
	out := Path{els: make([]PathEl, len(path.els))}
	for i, el := range path.els {
		out.els[i] = el
		for j := range el.Points() {
			out.els[i].P[j] = a.Apply(el.P[j])
		}
	}
	return out
}

// String returns the path in SVG path notation.
func (path Path) String() string {
	parts := make([]string, len(path.els))
	for i, el := range path.els {
		parts[i] = el.String()
	}
	return strings.Join(parts, " ")
}
