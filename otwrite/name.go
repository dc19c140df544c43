package otwrite

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/npillmayer/otbackend/ir"
	"golang.org/x/text/encoding/unicode"
)

// NameTable serializes a naming table (format 0) from a map of name entries.
// Records are sorted by platform, encoding, language and name ID; strings
// are encoded as UTF-16BE. Only the Unicode and Windows platforms are
// supported.
func NameTable(names map[ir.NameKey]string) ([]byte, error) {
	keys := make([]ir.NameKey, 0, len(names))
	for k := range names {
		if k.Platform != ir.PlatformIDUnicode && k.Platform != ir.PlatformIDWindows {
			return nil, fmt.Errorf("unsupported name platform %d", k.Platform)
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return nameKeyLess(keys[i], keys[j])
	})
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	var strings []byte
	records := make([]byte, 0, 12*len(keys))
	for _, k := range keys {
		s, err := enc.Bytes([]byte(names[k]))
		if err != nil {
			return nil, fmt.Errorf("cannot encode name %d: %w", k.Name, err)
		}
		if len(strings)+len(s) > math.MaxUint16 {
			return nil, fmt.Errorf("name table string storage exceeds 64K")
		}
		records = binary.BigEndian.AppendUint16(records, uint16(k.Platform))
		records = binary.BigEndian.AppendUint16(records, uint16(k.Encoding))
		records = binary.BigEndian.AppendUint16(records, k.Language)
		records = binary.BigEndian.AppendUint16(records, uint16(k.Name))
		records = binary.BigEndian.AppendUint16(records, uint16(len(s)))
		records = binary.BigEndian.AppendUint16(records, uint16(len(strings)))
		strings = append(strings, s...)
	}
	b := make([]byte, 0, 6+len(records)+len(strings))
	b = binary.BigEndian.AppendUint16(b, 0) // format
	b = binary.BigEndian.AppendUint16(b, uint16(len(keys)))
	b = binary.BigEndian.AppendUint16(b, uint16(6+len(records)))
	b = append(b, records...)
	b = append(b, strings...)
	return b, nil
}

func nameKeyLess(a, b ir.NameKey) bool {
	if a.Platform != b.Platform {
		return a.Platform < b.Platform
	}
	if a.Encoding != b.Encoding {
		return a.Encoding < b.Encoding
	}
	if a.Language != b.Language {
		return a.Language < b.Language
	}
	return a.Name < b.Name
}
