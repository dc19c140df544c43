package otwrite

import (
	"testing"

	"github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/font/opentype/tables"
	"github.com/npillmayer/otbackend/ir"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/sfnt"
)

func TestFvarRecord(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.otwrite")
	defer teardown()
	//
	fvar := &Fvar{Axes: []FvarAxis{
		{Tag: "wght", Min: 100, Default: 400, Max: 900, NameID: 256},
		{Tag: "wdth", Min: 75, Default: 100, Max: 100, Hidden: true, NameID: 257},
	}}
	data, err := fvar.Bytes()
	require.NoError(t, err)
	assert.Len(t, data, 16+2*20)
	assert.Equal(t, []byte{0, 1, 0, 0, 0, 16, 0, 2, 0, 2, 0, 20, 0, 0, 0, 12}, data[:16])
	assert.Equal(t, []byte{0, 1}, data[16+20+16:16+20+18], "hidden flag expected")
	parsed, _, err := tables.ParseFvar(data)
	require.NoError(t, err)
	require.Len(t, parsed.Axis, 2)
	assert.Equal(t, opentype.MustNewTag("wght"), parsed.Axis[0].Tag)
	assert.Equal(t, float32(400), parsed.Axis[0].Default)
	assert.Equal(t, float32(75), parsed.Axis[1].Minimum)
	//
	_, err = (&Fvar{Axes: []FvarAxis{{Tag: "wg"}}}).Bytes()
	assert.Error(t, err)
}

func TestNameTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "otbackend.otwrite")
	defer teardown()
	//
	names := map[ir.NameKey]string{
		ir.WindowsName(sfnt.NameIDFamily):    "Grünewald",
		ir.WindowsName(sfnt.NameIDSubfamily): "Regular",
		ir.WindowsName(sfnt.NameID(256)):     "Weight",
	}
	data, err := NameTable(names)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 3, 0, 6 + 3*12}, data[:6])
	parsed, _, err := tables.ParseName(data)
	require.NoError(t, err)
	assert.Equal(t, "Grünewald", parsed.Name(tables.NameID(sfnt.NameIDFamily)))
	assert.Equal(t, "Weight", parsed.Name(256))
	//
	_, err = NameTable(map[ir.NameKey]string{{Platform: ir.PlatformIDMacintosh}: "x"})
	assert.Error(t, err)
}
