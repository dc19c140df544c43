/*
Package ir defines the intermediate representation of a typeface, as it is handed
over from a frontend (a source-format reader) to the OpenType backend.

The IR is format-agnostic: glyphs are given as master drawings at normalized
design-space locations, either as outlines (contours) or as references to other
glyphs (components). Static metadata carries the design axes, the names of the
font, the final glyph order and a variation model able to compute deltas
between masters.

Everything in this package is read-only once created. The frontend stage produces
the IR, the backend stage only ever reads it, usually through an access-controlled
view (see package orchestration). Frontend artifacts are identified by a WorkId.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ir

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'otbackend.ir'
func tracer() tracing.Trace {
	return tracing.Select("otbackend.ir")
}
