package otwrite

import (
	"fmt"

	"github.com/npillmayer/otbackend/bez"
)

// Bbox is an integer bounding box, as stored in glyph headers.
type Bbox struct {
	XMin, YMin, XMax, YMax int16
}

// BboxFromRect rounds a rectangle to an integer bounding box. Coordinates
// outside of the 16 bit range are clamped.
func BboxFromRect(r bez.Rect) Bbox {
	return Bbox{
		XMin: clampInt16(OtRound(r.X0)),
		YMin: clampInt16(OtRound(r.Y0)),
		XMax: clampInt16(OtRound(r.X1)),
		YMax: clampInt16(OtRound(r.Y1)),
	}
}

// Rect converts b to a rectangle.
func (b Bbox) Rect() bez.Rect {
	return bez.Rect{X0: float64(b.XMin), Y0: float64(b.YMin), X1: float64(b.XMax), Y1: float64(b.YMax)}
}

func (b Bbox) String() string {
	return fmt.Sprintf("[%d,%d %d,%d]", b.XMin, b.YMin, b.XMax, b.YMax)
}

func clampInt16(v int) int16 {
	if v > 32767 {
		return 32767
	} else if v < -32768 {
		return -32768
	}
	return int16(v)
}
