package ir

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/image/font/sfnt"
)

// Axis is a design axis of a typeface, in user-space coordinates.
type Axis struct {
	Name    string // display name, to be found in the name table
	Tag     string // 4-letter OpenType axis tag
	Min     float64
	Default float64
	Max     float64
	Hidden  bool // hidden from user interfaces
}

// IsPoint is true for an axis without any range, i.e. min = default = max.
// Point axes do not contribute to variations.
func (a Axis) IsPoint() bool {
	return a.Min == a.Default && a.Default == a.Max
}

// PlatformID identifies a platform of a name record.
type PlatformID uint16

// Platforms for name records.
const (
	PlatformIDUnicode   PlatformID = 0
	PlatformIDMacintosh PlatformID = 1 // not supported
	PlatformIDWindows   PlatformID = 3
)

// EncodingID identifies a platform-specific encoding of a name record.
type EncodingID uint16

// Encodings for name records.
const (
	EncodingIDUnicodeBMP    EncodingID = 3
	EncodingIDWindowsSymbol EncodingID = 0 // symbol fonts are not supported
	EncodingIDWindowsBMP    EncodingID = 1
)

// LanguageEnglishUS is the Windows language ID for US English.
const LanguageEnglishUS uint16 = 0x0409

// NameKey identifies an entry of OpenType table 'name'.
// The key follows the OpenType NameRecord fields directly.
type NameKey struct {
	Platform PlatformID
	Encoding EncodingID
	Language uint16
	Name     sfnt.NameID // see https://pkg.go.dev/golang.org/x/image/font/sfnt#NameID
}

// WindowsName is a shortcut for a name key for Windows/Unicode BMP/US English.
func WindowsName(id sfnt.NameID) NameKey {
	return NameKey{
		Platform: PlatformIDWindows,
		Encoding: EncodingIDWindowsBMP,
		Language: LanguageEnglishUS,
		Name:     id,
	}
}

// GlyphOrder is the final order of glyphs in a font. The position of a glyph
// in the order is its glyph ID, which has to fit into 16 bits.
type GlyphOrder struct {
	names []string
	index map[string]int
}

// ErrDuplicateGlyph is returned when a glyph order mentions a glyph twice.
var ErrDuplicateGlyph = errors.New("duplicate glyph name in glyph order")

// NewGlyphOrder creates a glyph order from a list of glyph names.
func NewGlyphOrder(names ...string) (*GlyphOrder, error) {
	order := &GlyphOrder{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	copy(order.names, names)
	for i, n := range names {
		if _, dup := order.index[n]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateGlyph, n)
		}
		order.index[n] = i
	}
	return order, nil
}

// Len is the number of glyphs.
func (o *GlyphOrder) Len() int {
	if o == nil {
		return 0
	}
	return len(o.names)
}

// Names returns the glyph names in order. Clients must not modify the slice.
func (o *GlyphOrder) Names() []string {
	if o == nil {
		return nil
	}
	return o.names
}

// Name returns the name of the glyph at index gid.
func (o *GlyphOrder) Name(gid int) (string, bool) {
	if o == nil || gid < 0 || gid >= len(o.names) {
		return "", false
	}
	return o.names[gid], true
}

// Index returns the position of a glyph within the order.
func (o *GlyphOrder) Index(name string) (int, bool) {
	if o == nil {
		return 0, false
	}
	i, ok := o.index[name]
	return i, ok
}

// GlyphID returns the 16 bit glyph ID of a glyph. It fails for glyphs not
// contained in the order and for glyphs beyond the 16 bit limit.
func (o *GlyphOrder) GlyphID(name string) (uint16, bool) {
	i, ok := o.Index(name)
	if !ok || i > math.MaxUint16 {
		return 0, false
	}
	return uint16(i), true
}

// StaticMetadata is information about a typeface which does not vary across
// the design space.
type StaticMetadata struct {
	UnitsPerEm     uint16
	Axes           []Axis             // all axes, including point axes
	Names          map[NameKey]string // entries for table 'name'
	GlyphOrder     *GlyphOrder
	VariationModel VariationModel
}

// NewStaticMetadata creates the static metadata of a typeface. The variation
// model is derived from the set of master locations; the default location is
// always part of the model.
func NewStaticMetadata(upem uint16, axes []Axis, names map[NameKey]string,
	glyphOrder *GlyphOrder, masterLocations []Location) (*StaticMetadata, error) {
	//
	if glyphOrder == nil {
		glyphOrder, _ = NewGlyphOrder()
	}
	locs := []Location{DefaultLocation()}
	for _, l := range masterLocations {
		if !containsLocation(locs, l) {
			locs = append(locs, l)
		}
	}
	axisOrder := make([]string, 0, len(axes))
	for _, a := range axes {
		axisOrder = append(axisOrder, a.Tag)
	}
	model, err := NewVariationModel(locs, axisOrder)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = map[NameKey]string{}
	}
	return &StaticMetadata{
		UnitsPerEm:     upem,
		Axes:           axes,
		Names:          names,
		GlyphOrder:     glyphOrder,
		VariationModel: model,
	}, nil
}

// VariableAxes returns all axes which are not point axes.
func (s *StaticMetadata) VariableAxes() []Axis {
	var axes []Axis
	for _, a := range s.Axes {
		if !a.IsPoint() {
			axes = append(axes, a)
		}
	}
	return axes
}

func containsLocation(locs []Location, l Location) bool {
	for _, x := range locs {
		if x.Equal(l) {
			return true
		}
	}
	return false
}
