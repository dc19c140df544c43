package ir

import (
	"fmt"
	"strings"
)

// WorkKind identifies the kind of an artifact produced by a frontend.
type WorkKind uint8

// Kinds of frontend artifacts.
const (
	WorkStaticMetadata WorkKind = iota
	WorkGlyph
	WorkFeatures
)

var workKindNames = []string{"StaticMetadata", "Glyph", "Features"}

func (k WorkKind) String() string {
	if int(k) < len(workKindNames) {
		return workKindNames[k]
	}
	return fmt.Sprintf("WorkKind(%d)", k)
}

// WorkId identifies a frontend artifact. GlyphName is set for glyph
// artifacts only.
type WorkId struct {
	Kind      WorkKind
	GlyphName string
}

// StaticMetadataId identifies the static metadata of a typeface.
func StaticMetadataId() WorkId {
	return WorkId{Kind: WorkStaticMetadata}
}

// GlyphId identifies the IR of a single glyph.
func GlyphId(name string) WorkId {
	return WorkId{Kind: WorkGlyph, GlyphName: name}
}

// FeaturesId identifies the layout rules of a typeface.
func FeaturesId() WorkId {
	return WorkId{Kind: WorkFeatures}
}

// Compare orders ids by kind, then by glyph name.
func (id WorkId) Compare(other WorkId) int {
	if id.Kind != other.Kind {
		if id.Kind < other.Kind {
			return -1
		}
		return 1
	}
	return strings.Compare(id.GlyphName, other.GlyphName)
}

func (id WorkId) String() string {
	if id.Kind == WorkGlyph {
		return fmt.Sprintf("FE:%s(%s)", id.Kind, id.GlyphName)
	}
	return "FE:" + id.Kind.String()
}
