package otwrite

import (
	"encoding/binary"
	"fmt"
)

// AxisHidden is the flag of an axis record hidden from user interfaces.
const AxisHidden = 0x0001

// FvarAxis is a variation axis record of table 'fvar'.
type FvarAxis struct {
	Tag     string  `yaml:"tag"`
	Min     float64 `yaml:"min"`
	Default float64 `yaml:"default"`
	Max     float64 `yaml:"max"`
	Hidden  bool    `yaml:"hidden,omitempty"`
	NameID  uint16  `yaml:"name-id"`
}

// Fvar is a font variations table without named instances.
type Fvar struct {
	Axes []FvarAxis `yaml:"axes"`
}

const (
	fvarHeaderSize = 16
	fvarAxisSize   = 20
)

// Bytes serializes the table. Every axis tag has to be 4 bytes long.
func (f *Fvar) Bytes() ([]byte, error) {
	b := make([]byte, 0, fvarHeaderSize+fvarAxisSize*len(f.Axes))
	b = binary.BigEndian.AppendUint16(b, 1) // major version
	b = binary.BigEndian.AppendUint16(b, 0) // minor version
	b = binary.BigEndian.AppendUint16(b, fvarHeaderSize)
	b = binary.BigEndian.AppendUint16(b, 2) // reserved
	b = binary.BigEndian.AppendUint16(b, uint16(len(f.Axes)))
	b = binary.BigEndian.AppendUint16(b, fvarAxisSize)
	b = binary.BigEndian.AppendUint16(b, 0) // instance count
	b = binary.BigEndian.AppendUint16(b, uint16(4*len(f.Axes)+4))
	for _, a := range f.Axes {
		if len(a.Tag) != 4 {
			return nil, fmt.Errorf("invalid axis tag %q", a.Tag)
		}
		b = append(b, a.Tag...)
		b = binary.BigEndian.AppendUint32(b, uint32(Fixed(a.Min)))
		b = binary.BigEndian.AppendUint32(b, uint32(Fixed(a.Default)))
		b = binary.BigEndian.AppendUint32(b, uint32(Fixed(a.Max)))
		var flags uint16
		if a.Hidden {
			flags |= AxisHidden
		}
		b = binary.BigEndian.AppendUint16(b, flags)
		b = binary.BigEndian.AppendUint16(b, a.NameID)
	}
	tracer().Debugf("fvar with %d axes, %d bytes", len(f.Axes), len(b))
	return b, nil
}
