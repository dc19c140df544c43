/*
Package otwrite produces binary records of OpenType tables.

The records written here are the ones the backend owns: simple and composite
glyph records for table 'glyf', the axis table 'fvar' and the naming table
'name'. Reading binary tables back in is done with package
github.com/go-text/typesetting/font/opentype/tables.

All multi-byte values are written big-endian.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otwrite

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'otbackend.otwrite'
func tracer() tracing.Trace {
	return tracing.Select("otbackend.otwrite")
}
