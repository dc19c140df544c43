package orchestration

import (
	"fmt"

	"github.com/npillmayer/otbackend/ir"
)

// GlyfLoca holds the binary 'glyf' table together with its 'loca' offsets.
// Loca has one entry more than there are glyphs; Loca[0] is 0 and glyph i
// occupies Glyf[Loca[i]:Loca[i+1]].
type GlyfLoca struct {
	Glyf []byte
	Loca []uint32
}

// Validate checks the relation between offsets and outline buffer.
func (gl *GlyfLoca) Validate() error {
	if len(gl.Loca) == 0 || gl.Loca[0] != 0 {
		return fmt.Errorf("loca has to start with offset 0")
	}
	for i := 1; i < len(gl.Loca); i++ {
		if gl.Loca[i] < gl.Loca[i-1] {
			return fmt.Errorf("loca offsets not ascending at glyph %d", i-1)
		}
	}
	if last := gl.Loca[len(gl.Loca)-1]; int(last) != len(gl.Glyf) {
		return fmt.Errorf("loca ends at %d, glyf has %d bytes", last, len(gl.Glyf))
	}
	return nil
}

// GlyphRecord returns the binary record of the glyph with index gid.
func (gl *GlyfLoca) GlyphRecord(gid int) []byte {
	return gl.Glyf[gl.Loca[gid]:gl.Loca[gid+1]]
}

// GvarFragment holds the variation deltas of a single glyph, one delta set
// per master. The first delta set belongs to the default master and holds
// absolute coordinates.
type GvarFragment struct {
	Deltas []GvarDeltas `yaml:"deltas"`
}

// GvarDeltas is the set of point deltas of a master, effective in a region.
type GvarDeltas struct {
	Region ir.Region `yaml:"region"`
	Points [][2]int  `yaml:"points,flow"`
}
