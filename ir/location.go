package ir

import (
	"sort"
	"strconv"
	"strings"
)

// AxisCoord is a position on a single design axis, in normalized coordinates,
// i.e. within [-1,1] with 0 at the axis' default.
type AxisCoord struct {
	Tag   string
	Value float64
}

// Location is a point in normalized design space. Axes at their default
// position (value 0) are not stored, thus the default location is empty.
//
// Locations are values and are compared for exact equality; Key returns a
// canonical string suitable as a map key.
type Location struct {
	coords []AxisCoord // sorted by tag, without zero values
}

// DefaultLocation is the origin of the design space.
func DefaultLocation() Location {
	return Location{}
}

// NewLocation creates a location from a map of axis tags to normalized values.
func NewLocation(coords map[string]float64) Location {
	loc := Location{}
	for tag, v := range coords {
		if v != 0 {
			loc.coords = append(loc.coords, AxisCoord{Tag: tag, Value: v})
		}
	}
	sort.Slice(loc.coords, func(i, j int) bool {
		return loc.coords[i].Tag < loc.coords[j].Tag
	})
	return loc
}

// At is a shortcut for a location on a single axis.
func At(tag string, value float64) Location {
	return NewLocation(map[string]float64{tag: value})
}

// With returns a copy of l with the position on axis tag set to value.
func (l Location) With(tag string, value float64) Location {
	m := l.Map()
	m[tag] = value
	return NewLocation(m)
}

// Get returns the normalized value of axis tag.
func (l Location) Get(tag string) float64 {
	for _, c := range l.coords {
		if c.Tag == tag {
			return c.Value
		}
	}
	return 0
}

// Map returns the non-default coordinates of l as a fresh map.
func (l Location) Map() map[string]float64 {
	m := make(map[string]float64, len(l.coords))
	for _, c := range l.coords {
		m[c.Tag] = c.Value
	}
	return m
}

// Coords returns the non-default coordinates of l, ordered by tag.
func (l Location) Coords() []AxisCoord {
	c := make([]AxisCoord, len(l.coords))
	copy(c, l.coords)
	return c
}

// Rank is the number of axes not at their default position.
func (l Location) Rank() int {
	return len(l.coords)
}

// IsDefault is true for the origin of the design space.
func (l Location) IsDefault() bool {
	return len(l.coords) == 0
}

// Equal checks for exact equality.
func (l Location) Equal(other Location) bool {
	if len(l.coords) != len(other.coords) {
		return false
	}
	for i, c := range l.coords {
		if other.coords[i] != c {
			return false
		}
	}
	return true
}

// Key is a canonical string representation of l. Equal locations have equal keys.
func (l Location) Key() string {
	var b strings.Builder
	for i, c := range l.coords {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(c.Tag)
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(c.Value, 'g', -1, 64))
	}
	return b.String()
}

func (l Location) String() string {
	if l.IsDefault() {
		return "{default}"
	}
	return "{" + l.Key() + "}"
}
