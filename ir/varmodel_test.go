package ir

import (
	"testing"

	"github.com/npillmayer/otbackend/bez"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMasterSortOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.ir")
	defer teardown()
	//
	locs := []Location{
		NewLocation(map[string]float64{"wght": 1, "wdth": 1}),
		At("wght", 1),
		At("wdth", 1),
		DefaultLocation(),
		At("wght", -1),
		At("wght", 0.5),
	}
	model, err := NewVariationModel(locs, []string{"wght", "wdth"})
	require.NoError(t, err)
	var keys []string
	for _, l := range model.Locations() {
		keys = append(keys, l.Key())
	}
	assert.Equal(t, []string{"", "wght:-1", "wght:0.5", "wght:1", "wdth:1", "wdth:1,wght:1"}, keys)
}

func TestModelRequiresDefault(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.ir")
	defer teardown()
	//
	_, err := NewVariationModel([]Location{At("wght", 1)}, nil)
	assert.ErrorIs(t, err, ErrNoDefaultMaster)
}

func TestDeltasOfTwoMasters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.ir")
	defer teardown()
	//
	model, err := NewVariationModel([]Location{DefaultLocation(), At("wght", 1)}, []string{"wght"})
	require.NoError(t, err)
	deltas, err := model.Deltas([]MasterPoints{
		{Location: At("wght", 1), Points: []bez.Point{bez.Pt(0, 0), bez.Pt(120, 10)}},
		{Location: DefaultLocation(), Points: []bez.Point{bez.Pt(0, 0), bez.Pt(100, 0)}},
	})
	require.NoError(t, err)
	require.Len(t, deltas, 2)
	assert.Empty(t, deltas[0].Region)
	assert.Equal(t, []bez.Point{bez.Pt(0, 0), bez.Pt(100, 0)}, deltas[0].Points)
	assert.Equal(t, Tent{Lower: 0, Peak: 1, Upper: 1}, deltas[1].Region["wght"])
	assert.Equal(t, []bez.Point{bez.Pt(0, 0), bez.Pt(20, 10)}, deltas[1].Points)
}

func TestIntermediateMasterSplitsSupport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.ir")
	defer teardown()
	//
	model, err := NewVariationModel([]Location{DefaultLocation(), At("wght", 1), At("wght", 0.5)}, []string{"wght"})
	require.NoError(t, err)
	deltas, err := model.Deltas([]MasterPoints{
		{Location: DefaultLocation(), Points: []bez.Point{bez.Pt(100, 0)}},
		{Location: At("wght", 0.5), Points: []bez.Point{bez.Pt(110, 0)}},
		{Location: At("wght", 1), Points: []bez.Point{bez.Pt(140, 0)}},
	})
	require.NoError(t, err)
	require.Len(t, deltas, 3)
	assert.Equal(t, Tent{Lower: 0, Peak: 0.5, Upper: 1}, deltas[1].Region["wght"])
	assert.Equal(t, bez.Pt(10, 0), deltas[1].Points[0])
	assert.Equal(t, Tent{Lower: 0.5, Peak: 1, Upper: 1}, deltas[2].Region["wght"])
	assert.Equal(t, bez.Pt(40, 0), deltas[2].Points[0])
}

func TestSparseMastersUseSubModel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.ir")
	defer teardown()
	//
	model, err := NewVariationModel([]Location{DefaultLocation(), At("wght", 1), At("wght", -1)}, []string{"wght"})
	require.NoError(t, err)
	deltas, err := model.Deltas([]MasterPoints{
		{Location: DefaultLocation(), Points: []bez.Point{bez.Pt(100, 0)}},
		{Location: At("wght", 1), Points: []bez.Point{bez.Pt(150, 0)}},
	})
	require.NoError(t, err)
	require.Len(t, deltas, 2)
	assert.Equal(t, bez.Pt(50, 0), deltas[1].Points[0])
}

func TestPointCountMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.ir")
	defer teardown()
	//
	model, err := NewVariationModel([]Location{DefaultLocation(), At("wght", 1)}, []string{"wght"})
	require.NoError(t, err)
	_, err = model.Deltas([]MasterPoints{
		{Location: DefaultLocation(), Points: []bez.Point{bez.Pt(100, 0)}},
		{Location: At("wght", 1), Points: []bez.Point{bez.Pt(150, 0), bez.Pt(0, 0)}},
	})
	assert.ErrorIs(t, err, ErrPointCountMismatch)
}
