package otwrite

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-text/typesetting/font/opentype/tables"
	"github.com/npillmayer/otbackend/bez"
)

// Glyph is a binary glyph record of table 'glyf'. It is either a
// *SimpleGlyph or a *CompositeGlyph.
type Glyph interface {
	Bbox() Bbox
	// Bytes returns the binary record, padded to an even length.
	// An empty glyph has a record of length 0.
	Bytes() []byte
	isGlyph()
}

func (*SimpleGlyph) isGlyph()    {}
func (*CompositeGlyph) isGlyph() {}

// Flags of simple glyph points.
const (
	flagOnCurve         = 0x01
	flagXShort          = 0x02
	flagYShort          = 0x04
	flagRepeat          = 0x08
	flagXSameOrPositive = 0x10
	flagYSameOrPositive = 0x20
)

// Errors converting paths to glyph outlines.
var (
	ErrCubicSegment    = errors.New("path contains cubic segments")
	ErrMissingMoveTo   = errors.New("path does not start with a move")
	ErrCoordinateRange = errors.New("coordinate exceeds 16 bit range")
	ErrTooManyPoints   = errors.New("too many points in glyph")
	ErrTransformRange  = errors.New("component transform exceeds 2.14 range")
	ErrMalformedGlyph  = errors.New("malformed glyph record")
)

// CurvePoint is a point of a glyph contour.
type CurvePoint struct {
	X, Y    int16
	OnCurve bool
}

// SimpleGlyph is a glyph drawn by quadratic contours.
type SimpleGlyph struct {
	Contours [][]CurvePoint
	bbox     Bbox
}

// SimpleGlyphFromPath creates a glyph outline from a path consisting of
// straight lines and quadratic curves only. Coordinates are rounded to the
// integer grid. If a contour is closed and its last point coincides with
// its start point before rounding, the last point is dropped.
func SimpleGlyphFromPath(path bez.Path) (*SimpleGlyph, error) {
	g := &SimpleGlyph{}
	var contour []CurvePoint
	var all []bez.Point
	var start, last bez.Point
	add := func(p bez.Point, on bool) error {
		x, y := OtRound(p.X), OtRound(p.Y)
		if !FitsInt16(x) || !FitsInt16(y) {
			return fmt.Errorf("%w: %v", ErrCoordinateRange, p)
		}
		if len(contour) == 0 {
			start = p
		}
		contour = append(contour, CurvePoint{X: int16(x), Y: int16(y), OnCurve: on})
		all = append(all, p)
		last = p
		return nil
	}
	finish := func(closed bool) {
		if len(contour) == 0 {
			return
		}
		// equality is tested on unrounded coordinates, as the gvar point
		// list is extracted from the same path without rounding
		if closed && len(contour) > 1 && last == start {
			contour = contour[:len(contour)-1]
		}
		g.Contours = append(g.Contours, contour)
		contour = nil
	}
	for i, el := range path.Elements() {
		if i == 0 && el.Kind != bez.MoveTo {
			return nil, ErrMissingMoveTo
		}
		var err error
		switch el.Kind {
		case bez.MoveTo:
			finish(false)
			err = add(el.P[0], true)
		case bez.LineTo:
			err = add(el.P[0], true)
		case bez.QuadTo:
			if err = add(el.P[0], false); err == nil {
				err = add(el.P[1], true)
			}
		case bez.CurveTo:
			return nil, ErrCubicSegment
		case bez.ClosePath:
			finish(true)
		}
		if err != nil {
			return nil, err
		}
	}
	finish(false)
	if r, ok := bez.BoundingBox(all); ok {
		g.bbox = BboxFromRect(r)
	}
	if n := g.PointCount(); n > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d", ErrTooManyPoints, n)
	}
	return g, nil
}

// Bbox is the bounding box of all points of the glyph, including off-curve
// points.
func (g *SimpleGlyph) Bbox() Bbox {
	return g.bbox
}

// IsEmpty is true for a glyph without any contour.
func (g *SimpleGlyph) IsEmpty() bool {
	return len(g.Contours) == 0
}

// PointCount is the number of points of all contours.
func (g *SimpleGlyph) PointCount() int {
	n := 0
	for _, c := range g.Contours {
		n += len(c)
	}
	return n
}

// Bytes serializes g. Coordinates are delta-encoded, flags are compressed
// with repeat counts, no instructions are written.
func (g *SimpleGlyph) Bytes() []byte {
	if g.IsEmpty() {
		return nil
	}
	b := make([]byte, 0, 12+2*len(g.Contours)+5*g.PointCount())
	b = appendGlyphHeader(b, int16(len(g.Contours)), g.bbox)
	end := -1
	for _, c := range g.Contours {
		end += len(c)
		b = binary.BigEndian.AppendUint16(b, uint16(end))
	}
	b = binary.BigEndian.AppendUint16(b, 0) // instruction length
	var flags, xs, ys []byte
	var x0, y0 int16
	for _, c := range g.Contours {
		for _, p := range c {
			var flag byte
			if p.OnCurve {
				flag |= flagOnCurve
			}
			flag, xs = appendCoordinate(flag, xs, int(p.X)-int(x0), flagXShort, flagXSameOrPositive)
			flag, ys = appendCoordinate(flag, ys, int(p.Y)-int(y0), flagYShort, flagYSameOrPositive)
			x0, y0 = p.X, p.Y
			flags = append(flags, flag)
		}
	}
	b = appendFlags(b, flags)
	b = append(b, xs...)
	b = append(b, ys...)
	return pad2(b)
}

func appendCoordinate(flag byte, b []byte, delta int, short, sameOrPos byte) (byte, []byte) {
	switch {
	case delta == 0:
		flag |= sameOrPos
	case delta >= -255 && delta <= 255:
		flag |= short
		if delta > 0 {
			flag |= sameOrPos
		} else {
			delta = -delta
		}
		b = append(b, byte(delta))
	default:
		b = binary.BigEndian.AppendUint16(b, uint16(int16(delta)))
	}
	return flag, b
}

// appendFlags writes point flags, collapsing runs of equal flags.
func appendFlags(b []byte, flags []byte) []byte {
	for i := 0; i < len(flags); {
		run := 1
		for i+run < len(flags) && flags[i+run] == flags[i] && run < 256 {
			run++
		}
		if run > 1 {
			b = append(b, flags[i]|flagRepeat, byte(run-1))
		} else {
			b = append(b, flags[i])
		}
		i += run
	}
	return b
}

// Flags of composite glyph components.
const (
	ArgsAreWords       = 0x0001
	ArgsAreXYValues    = 0x0002
	RoundXYToGrid      = 0x0004
	WeHaveAScale       = 0x0008
	MoreComponents     = 0x0020
	WeHaveAnXAndYScale = 0x0040
	WeHaveATwoByTwo    = 0x0080
)

// Component is a reference from a composite glyph to another glyph.
// The transform is stored as 2.14 numbers xx, yx, xy, yy and an integer
// offset, exactly as it is stored in the binary record.
type Component struct {
	GlyphID     uint16
	DX, DY      int16
	Transform   [4]int16
	RoundToGrid bool
}

// NewComponent converts an affine transform into the form of a component
// record. The offset is rounded to the integer grid.
func NewComponent(gid uint16, transform bez.Affine) (Component, error) {
	c := Component{GlyphID: gid, RoundToGrid: true}
	for i := 0; i < 4; i++ {
		if transform[i] < F2Dot14Min || transform[i] > F2Dot14Max {
			return c, fmt.Errorf("%w: %v", ErrTransformRange, transform)
		}
		c.Transform[i] = F2Dot14(transform[i])
	}
	dx, dy := OtRound(transform[4]), OtRound(transform[5])
	if !FitsInt16(dx) || !FitsInt16(dy) {
		return c, fmt.Errorf("%w: offset (%d,%d)", ErrCoordinateRange, dx, dy)
	}
	c.DX, c.DY = int16(dx), int16(dy)
	return c, nil
}

// Affine is the transform of c, as stored in the record.
func (c Component) Affine() bez.Affine {
	return bez.Affine{
		F2Dot14ToFloat(c.Transform[0]),
		F2Dot14ToFloat(c.Transform[1]),
		F2Dot14ToFloat(c.Transform[2]),
		F2Dot14ToFloat(c.Transform[3]),
		float64(c.DX),
		float64(c.DY),
	}
}

func (c Component) flags() uint16 {
	flags := uint16(ArgsAreXYValues)
	if c.RoundToGrid {
		flags |= RoundXYToGrid
	}
	if c.DX < math.MinInt8 || c.DX > math.MaxInt8 || c.DY < math.MinInt8 || c.DY > math.MaxInt8 {
		flags |= ArgsAreWords
	}
	xx, yx, xy, yy := c.Transform[0], c.Transform[1], c.Transform[2], c.Transform[3]
	const one = 1 << 14
	switch {
	case yx == 0 && xy == 0 && xx == one && yy == one:
	case yx == 0 && xy == 0 && xx == yy:
		flags |= WeHaveAScale
	case yx == 0 && xy == 0:
		flags |= WeHaveAnXAndYScale
	default:
		flags |= WeHaveATwoByTwo
	}
	return flags
}

// CompositeGlyph is a glyph made up of references to other glyphs.
// Its bounding box depends on the glyphs it references and has to be set
// once they are known.
type CompositeGlyph struct {
	Components []Component
	bbox       Bbox
}

// NewCompositeGlyph creates a composite glyph with a zero bounding box.
// A composite glyph must have at least one component.
func NewCompositeGlyph(components []Component) (*CompositeGlyph, error) {
	if len(components) == 0 {
		return nil, errors.New("composite glyph without components")
	}
	return &CompositeGlyph{Components: components}, nil
}

// Bbox returns the bounding box of the composite.
func (g *CompositeGlyph) Bbox() Bbox {
	return g.bbox
}

// WithBbox returns a copy of g with bounding box b.
func (g *CompositeGlyph) WithBbox(b Bbox) *CompositeGlyph {
	c := &CompositeGlyph{Components: make([]Component, len(g.Components)), bbox: b}
	copy(c.Components, g.Components)
	return c
}

// Bytes serializes g, without instructions.
func (g *CompositeGlyph) Bytes() []byte {
	b := make([]byte, 0, 10+16*len(g.Components))
	b = appendGlyphHeader(b, -1, g.bbox)
	for i, c := range g.Components {
		flags := c.flags()
		if i < len(g.Components)-1 {
			flags |= MoreComponents
		}
		b = binary.BigEndian.AppendUint16(b, flags)
		b = binary.BigEndian.AppendUint16(b, c.GlyphID)
		if flags&ArgsAreWords != 0 {
			b = binary.BigEndian.AppendUint16(b, uint16(c.DX))
			b = binary.BigEndian.AppendUint16(b, uint16(c.DY))
		} else {
			b = append(b, byte(int8(c.DX)), byte(int8(c.DY)))
		}
		switch {
		case flags&WeHaveAScale != 0:
			b = binary.BigEndian.AppendUint16(b, uint16(c.Transform[0]))
		case flags&WeHaveAnXAndYScale != 0:
			b = binary.BigEndian.AppendUint16(b, uint16(c.Transform[0]))
			b = binary.BigEndian.AppendUint16(b, uint16(c.Transform[3]))
		case flags&WeHaveATwoByTwo != 0:
			for _, v := range c.Transform {
				b = binary.BigEndian.AppendUint16(b, uint16(v))
			}
		}
	}
	return pad2(b)
}

func appendGlyphHeader(b []byte, contours int16, bbox Bbox) []byte {
	b = binary.BigEndian.AppendUint16(b, uint16(contours))
	b = binary.BigEndian.AppendUint16(b, uint16(bbox.XMin))
	b = binary.BigEndian.AppendUint16(b, uint16(bbox.YMin))
	b = binary.BigEndian.AppendUint16(b, uint16(bbox.XMax))
	b = binary.BigEndian.AppendUint16(b, uint16(bbox.YMax))
	return b
}

func pad2(b []byte) []byte {
	if len(b)%2 != 0 {
		b = append(b, 0)
	}
	return b
}

// ParseGlyph reads a binary glyph record, as produced by Bytes. A record of
// length 0 is the empty glyph.
func ParseGlyph(data []byte) (Glyph, error) {
	if len(data) == 0 {
		return &SimpleGlyph{}, nil
	}
	rec, _, err := tables.ParseGlyph(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGlyph, err)
	}
	bbox := Bbox{XMin: rec.XMin, YMin: rec.YMin, XMax: rec.XMax, YMax: rec.YMax}
	switch d := rec.Data.(type) {
	case tables.SimpleGlyph:
		g := &SimpleGlyph{bbox: bbox}
		start := 0
		for _, end := range d.EndPtsOfContours {
			if int(end) < start || int(end) >= len(d.Points) {
				return nil, ErrMalformedGlyph
			}
			contour := make([]CurvePoint, 0, int(end)+1-start)
			for _, p := range d.Points[start : int(end)+1] {
				contour = append(contour, CurvePoint{X: p.X, Y: p.Y, OnCurve: p.Flag&flagOnCurve != 0})
			}
			g.Contours = append(g.Contours, contour)
			start = int(end) + 1
		}
		return g, nil
	case tables.CompositeGlyph:
		g := &CompositeGlyph{bbox: bbox}
		for _, part := range d.Glyphs {
			dx, dy := part.ArgsAsTranslation()
			c := Component{
				GlyphID:     part.GlyphIndex,
				DX:          dx,
				DY:          dy,
				RoundToGrid: part.Flags&RoundXYToGrid != 0,
			}
			for i, s := range part.Scale {
				c.Transform[i] = F2Dot14(float64(s))
			}
			g.Components = append(g.Components, c)
		}
		return g, nil
	}
	return nil, ErrMalformedGlyph
}
