/*
Package orchestration coordinates the units of work of the backend.

Every artifact of a compilation run is identified by a work id. Frontend
artifacts (static metadata, glyph IR, layout rules) are identified by
ir.WorkId, backend artifacts (features, binary glyphs, variation deltas, glyf
and loca, fvar, the final font) by WorkId. AnyWorkId unifies both.

Units of work communicate through a shared Context. Each unit receives a view
of the context restricted to the artifacts it declared to read and write.
Access outside of the declared sets is a programming error and panics; this
detects bad execution orders early, it is not meant to protect against
malicious units.

If flag EmitIR is set, every artifact is persisted to the build directory
when it is set, and a context will restore artifacts from there on first
access.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package orchestration

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'otbackend.orchestration'
func tracer() tracing.Trace {
	return tracing.Select("otbackend.orchestration")
}
