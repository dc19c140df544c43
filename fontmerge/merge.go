/*
Package fontmerge assembles the final font binary.

The final merge collects the tables owned by the backend, i.e. 'glyf',
'loca', 'fvar' and 'name', together with the layout tables produced by the
rule compiler, and writes them as a single SFNT file. Tables 'head' and
'maxp', as well as narrowing 'loca' to short offsets, are left to
packaging.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontmerge

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/otbackend/features"
	"github.com/npillmayer/otbackend/ir"
	"github.com/npillmayer/otbackend/orchestration"
	"github.com/npillmayer/otbackend/otwrite"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'otbackend.fontmerge'
func tracer() tracing.Trace {
	return tracing.Select("otbackend.fontmerge")
}

// Tags of the tables owned by the backend.
var (
	TagGlyf = opentype.MustNewTag("glyf")
	TagLoca = opentype.MustNewTag("loca")
	TagFvar = opentype.MustNewTag("fvar")
	TagName = opentype.MustNewTag("name")
)

// Work merges all tables into the final font.
type Work struct{}

// CreateWork creates the final-merge unit of work.
func CreateWork() *Work {
	return &Work{}
}

// Id is the identity of the unit of work.
func (w *Work) Id() orchestration.AnyWorkId {
	return orchestration.BeId(orchestration.FinalMergeId())
}

// Dependencies are the units of work whose artifacts are merged.
func (w *Work) Dependencies() []orchestration.AnyWorkId {
	return []orchestration.AnyWorkId{
		orchestration.BeId(orchestration.FeaturesId()),
		orchestration.BeId(orchestration.GlyphMergeId()),
		orchestration.BeId(orchestration.FvarId()),
	}
}

// Read is the predicate for what the unit of work may read.
func (w *Work) Read() orchestration.AccessFn {
	return orchestration.AccessOneOf(append(w.Dependencies(),
		orchestration.FeId(ir.StaticMetadataId()))...)
}

// Write is the predicate for what the unit of work may write.
func (w *Work) Write() orchestration.AccessFn {
	return orchestration.AccessOneOf(w.Id())
}

// Exec assembles the font.
func (w *Work) Exec(ctx *orchestration.Context) error {
	tables, err := Tables(ctx)
	if err != nil {
		return err
	}
	font := opentype.WriteTTF(tables)
	tracer().Infof("font has %d tables, %d bytes", len(tables), len(font))
	ctx.SetFont(font)
	return nil
}

// Tables collects all tables of the font, sorted by tag.
func Tables(ctx *orchestration.Context) ([]opentype.Table, error) {
	tables, err := features.Unpack(ctx.Features())
	if err != nil {
		return nil, err
	}
	owned := map[opentype.Tag]bool{}
	add := func(tag opentype.Tag, content []byte) {
		owned[tag] = true
		tables = append(tables, opentype.Table{Tag: tag, Content: content})
	}
	gl := ctx.GlyfLoca()
	add(TagGlyf, gl.Glyf)
	add(TagLoca, locaBytes(gl.Loca))
	if fvar := ctx.Fvar(); fvar != nil {
		data, err := fvar.Bytes()
		if err != nil {
			return nil, err
		}
		add(TagFvar, data)
	}
	if names := ctx.StaticMetadata().Names; len(names) > 0 {
		data, err := otwrite.NameTable(names)
		if err != nil {
			return nil, err
		}
		add(TagName, data)
	}
	seen := map[opentype.Tag]bool{}
	for _, t := range tables {
		if seen[t.Tag] {
			if owned[t.Tag] {
				return nil, fmt.Errorf("layout rules produced table %s, which is owned by the backend", t.Tag)
			}
			return nil, fmt.Errorf("duplicate table %s", t.Tag)
		}
		seen[t.Tag] = true
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].Tag < tables[j].Tag })
	return tables, nil
}

// locaBytes serializes loca offsets in long format.
func locaBytes(loca []uint32) []byte {
	b := make([]byte, 0, 4*len(loca))
	for _, off := range loca {
		b = binary.BigEndian.AppendUint32(b, off)
	}
	return b
}
