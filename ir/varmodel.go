package ir

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/npillmayer/otbackend/bez"
)

// VariationModel computes deltas between the masters of a typeface.
// It is an opaque contract for the backend; NewVariationModel provides the
// master-support model used by OpenType variable fonts.
type VariationModel interface {
	// DefaultLocation is the location of the default master.
	DefaultLocation() Location
	// Locations returns the master locations of the model, in model order.
	Locations() []Location
	// Deltas computes a delta set per master for a sequence of points.
	// All masters must have the same number of points.
	Deltas(masters []MasterPoints) ([]Delta, error)
}

// MasterPoints is a sequence of points of a single master.
type MasterPoints struct {
	Location Location
	Points   []bez.Point
}

// Tent is the support of a master on a single axis: zero at Lower and Upper,
// rising linearly to 1 at Peak.
type Tent struct {
	Lower float64 `yaml:"lower"`
	Peak  float64 `yaml:"peak"`
	Upper float64 `yaml:"upper"`
}

// Region is the support of a master in design space, a tent per axis.
// The default master has an empty region.
type Region map[string]Tent

// Scalar returns the influence of a master with support r at location loc.
func (r Region) Scalar(loc Location) float64 {
	scalar := 1.0
	for tag, t := range r {
		if t.Peak == 0 || t.Lower > t.Peak || t.Peak > t.Upper {
			continue
		}
		if t.Lower < 0 && t.Upper > 0 {
			continue
		}
		v := loc.Get(tag)
		if v == t.Peak {
			continue
		}
		if v <= t.Lower || t.Upper <= v {
			return 0
		}
		if v < t.Peak {
			scalar *= (v - t.Lower) / (t.Peak - t.Lower)
		} else {
			scalar *= (v - t.Upper) / (t.Peak - t.Upper)
		}
	}
	return scalar
}

// Delta is a set of point deltas, active within a region. The delta set of
// the default master carries absolute coordinates.
type Delta struct {
	Region Region
	Points []bez.Point
}

// Errors of variation models.
var (
	ErrNoDefaultMaster     = errors.New("no master at default location")
	ErrPointCountMismatch  = errors.New("masters differ in number of points")
	ErrDuplicateMasterSpot = errors.New("more than one master at location")
)

// masterModel is the OpenType master-support model: masters are sorted by
// rank and direction, each master gets a support region, and each master's
// delta is its value minus the weighted deltas of all preceding masters.
type masterModel struct {
	axisOrder    []string
	locations    []Location     // in model order
	mapping      map[string]int // location key -> model position
	supports     []Region
	deltaWeights [][]deltaWeight
}

type deltaWeight struct {
	master int
	scalar float64
}

var _ VariationModel = (*masterModel)(nil)

// NewVariationModel creates a variation model for a set of master locations.
// One of the locations has to be the default location. axisOrder gives
// precedence of axes when sorting masters; axes not mentioned sort last.
func NewVariationModel(locations []Location, axisOrder []string) (VariationModel, error) {
	return newMasterModel(locations, axisOrder)
}

func newMasterModel(locations []Location, axisOrder []string) (*masterModel, error) {
	m := &masterModel{
		axisOrder: axisOrder,
		mapping:   make(map[string]int, len(locations)),
	}
	hasDefault := false
	for _, l := range locations {
		if l.IsDefault() {
			hasDefault = true
		}
		if _, dup := m.mapping[l.Key()]; dup {
			return nil, fmt.Errorf("%w %v", ErrDuplicateMasterSpot, l)
		}
		m.mapping[l.Key()] = -1
	}
	if !hasDefault {
		return nil, ErrNoDefaultMaster
	}
	m.locations = make([]Location, len(locations))
	copy(m.locations, locations)
	sortMasterLocations(m.locations, axisOrder)
	for i, l := range m.locations {
		m.mapping[l.Key()] = i
	}
	m.computeSupports()
	m.computeDeltaWeights()
	tracer().Debugf("variation model with %d masters", len(m.locations))
	return m, nil
}

func (m *masterModel) DefaultLocation() Location {
	return DefaultLocation()
}

func (m *masterModel) Locations() []Location {
	locs := make([]Location, len(m.locations))
	copy(locs, m.locations)
	return locs
}

// Supports returns the support regions of the masters, in model order.
func (m *masterModel) Supports() []Region {
	return m.supports
}

// Deltas computes deltas for the masters given. If the set of master
// locations differs from the locations of the model, a sub-model for the
// given masters is used.
func (m *masterModel) Deltas(masters []MasterPoints) ([]Delta, error) {
	model := m
	if !m.hasMasters(masters) {
		locs := make([]Location, len(masters))
		for i, mp := range masters {
			locs[i] = mp.Location
		}
		sub, err := newMasterModel(locs, m.axisOrder)
		if err != nil {
			return nil, err
		}
		model = sub
	}
	ordered := make([][]bez.Point, len(model.locations))
	npoints := -1
	for _, mp := range masters {
		if npoints >= 0 && len(mp.Points) != npoints {
			return nil, fmt.Errorf("%w: %d at %v, expected %d", ErrPointCountMismatch,
				len(mp.Points), mp.Location, npoints)
		}
		npoints = len(mp.Points)
		ordered[model.mapping[mp.Location.Key()]] = mp.Points
	}
	deltas := make([]Delta, len(model.locations))
	for i, weights := range model.deltaWeights {
		pts := make([]bez.Point, npoints)
		copy(pts, ordered[i])
		for _, w := range weights {
			for k := range pts {
				pts[k] = pts[k].Sub(deltas[w.master].Points[k].Mul(w.scalar))
			}
		}
		deltas[i] = Delta{Region: model.supports[i], Points: pts}
	}
	return deltas, nil
}

func (m *masterModel) hasMasters(masters []MasterPoints) bool {
	if len(masters) != len(m.locations) {
		return false
	}
	seen := make(map[int]bool, len(masters))
	for _, mp := range masters {
		i, ok := m.mapping[mp.Location.Key()]
		if !ok || seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}

func (m *masterModel) computeSupports() {
	minV, maxV := map[string]float64{}, map[string]float64{}
	for _, l := range m.locations {
		for _, c := range l.coords {
			minV[c.Tag] = math.Min(c.Value, valueOr(minV, c.Tag, c.Value))
			maxV[c.Tag] = math.Max(c.Value, valueOr(maxV, c.Tag, c.Value))
		}
	}
	regions := make([]Region, len(m.locations))
	for i, l := range m.locations {
		r := Region{}
		for _, c := range l.coords {
			if c.Value > 0 {
				r[c.Tag] = Tent{Lower: 0, Peak: c.Value, Upper: maxV[c.Tag]}
			} else {
				r[c.Tag] = Tent{Lower: minV[c.Tag], Peak: c.Value, Upper: 0}
			}
		}
		regions[i] = r
	}
	for i, region := range regions {
		for _, prev := range regions[:i] {
			if !sameAxes(prev, region) {
				continue
			}
			if !peakInside(prev, region) {
				continue
			}
			// split the box of the new master along the axes with the
			// largest range ratio
			best := map[string]Tent{}
			bestRatio := -1.0
			for _, tag := range sortedTags(prev) {
				val := prev[tag].Peak
				t := region[tag]
				var ratio float64
				nt := t
				switch {
				case val < t.Peak:
					nt.Lower = val
					ratio = (val - t.Peak) / (t.Lower - t.Peak)
				case t.Peak < val:
					nt.Upper = val
					ratio = (val - t.Peak) / (t.Upper - t.Peak)
				default:
					continue
				}
				if ratio > bestRatio {
					best = map[string]Tent{}
					bestRatio = ratio
				}
				if ratio == bestRatio {
					best[tag] = nt
				}
			}
			for tag, t := range best {
				region[tag] = t
			}
		}
	}
	m.supports = regions
}

func (m *masterModel) computeDeltaWeights() {
	m.deltaWeights = make([][]deltaWeight, len(m.locations))
	for i, l := range m.locations {
		var w []deltaWeight
		for j, support := range m.supports[:i] {
			if s := support.Scalar(l); s != 0 {
				w = append(w, deltaWeight{master: j, scalar: s})
			}
		}
		m.deltaWeights[i] = w
	}
}

func valueOr(m map[string]float64, key string, dflt float64) float64 {
	if v, ok := m[key]; ok {
		return v
	}
	return dflt
}

func sameAxes(a, b Region) bool {
	if len(a) != len(b) {
		return false
	}
	for tag := range a {
		if _, ok := b[tag]; !ok {
			return false
		}
	}
	return true
}

// peakInside checks if the peak of prev lies within the box of region.
func peakInside(prev, region Region) bool {
	for tag, t := range region {
		p := prev[tag].Peak
		if !(p == t.Peak || (t.Lower < p && p < t.Upper)) {
			return false
		}
	}
	return true
}

func sortedTags(r Region) []string {
	tags := make([]string, 0, len(r))
	for tag := range r {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// sortMasterLocations orders master locations: the default first, then by
// rank, then masters on axis points before others, then by axis order, then
// by direction and distance from the default.
func sortMasterLocations(locs []Location, axisOrder []string) {
	axisPoints := map[string]map[float64]bool{}
	for _, l := range locs {
		if l.Rank() != 1 {
			continue
		}
		c := l.coords[0]
		if axisPoints[c.Tag] == nil {
			axisPoints[c.Tag] = map[float64]bool{0: true}
		}
		axisPoints[c.Tag][c.Value] = true
	}
	axisIndex := func(tag string) int {
		for i, t := range axisOrder {
			if t == tag {
				return i
			}
		}
		return 0x10000
	}
	type sortKey struct {
		rank     int
		onPoint  int
		axisIdx  []int
		axes     []string
		signs    []float64
		absolute []float64
	}
	keyOf := func(l Location) sortKey {
		k := sortKey{rank: l.Rank()}
		for _, c := range l.coords {
			if pts, ok := axisPoints[c.Tag]; ok && pts[c.Value] {
				k.onPoint++
			}
		}
		ordered := make([]AxisCoord, len(l.coords))
		copy(ordered, l.coords)
		sort.SliceStable(ordered, func(i, j int) bool {
			return axisIndex(ordered[i].Tag) < axisIndex(ordered[j].Tag)
		})
		for _, c := range ordered {
			k.axisIdx = append(k.axisIdx, axisIndex(c.Tag))
			k.axes = append(k.axes, c.Tag)
			k.signs = append(k.signs, sign(c.Value))
			k.absolute = append(k.absolute, math.Abs(c.Value))
		}
		return k
	}
	keys := make(map[string]sortKey, len(locs))
	for _, l := range locs {
		keys[l.Key()] = keyOf(l)
	}
	sort.SliceStable(locs, func(i, j int) bool {
		a, b := keys[locs[i].Key()], keys[locs[j].Key()]
		if a.rank != b.rank {
			return a.rank < b.rank
		}
		if a.onPoint != b.onPoint {
			return a.onPoint > b.onPoint
		}
		if c := compareInts(a.axisIdx, b.axisIdx); c != 0 {
			return c < 0
		}
		if c := compareStrings(a.axes, b.axes); c != 0 {
			return c < 0
		}
		if c := compareFloats(a.signs, b.signs); c != 0 {
			return c < 0
		}
		return compareFloats(a.absolute, b.absolute) < 0
	})
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func compareInts(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}

func compareStrings(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}

func compareFloats(a, b []float64) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}
