/*
Package features compiles the layout rules of a typeface into OpenType
layout tables.

Layout rules are written in the AFDKO feature file syntax. Compiling them is
the job of an external rule compiler, which clients plug in by implementing
interface Compiler. This package feeds the compiler with the rules of the IR
and the final glyph order, and stores the resulting tables, packed into a
single SFNT blob, for the final merge of the font.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package features

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'otbackend.features'
func tracer() tracing.Trace {
	return tracing.Select("otbackend.features")
}
