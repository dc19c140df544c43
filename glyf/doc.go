/*
Package glyf compiles glyphs into the OpenType tables 'glyf' and 'loca'.

Compilation happens in two kinds of units of work. A glyph unit runs per
glyph: it checks that all masters of the glyph are compatible, converts cubic
curves to quadratic ones (jointly for all masters, so that masters stay
interpolatable), produces the binary glyph record of the default master and
computes the variation deltas of all other masters.

A single glyph-merge unit runs after all glyph units. It computes the bounding
boxes of composite glyphs, which depend on the glyphs they reference, and
concatenates all records in glyph order into table 'glyf', with table 'loca'
holding the offsets.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyf

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'otbackend.glyf'
func tracer() tracing.Trace {
	return tracing.Select("otbackend.glyf")
}
