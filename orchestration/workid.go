package orchestration

import (
	"fmt"
	"strings"

	"github.com/npillmayer/otbackend/ir"
)

// WorkKind identifies the kind of a backend artifact.
type WorkKind uint8

// Kinds of backend artifacts.
const (
	WorkFeatures WorkKind = iota
	WorkGlyph
	WorkGvarFragment
	WorkGlyphMerge
	WorkFvar
	WorkFinalMerge
)

var workKindNames = []string{"Features", "Glyph", "GvarFragment", "GlyphMerge", "Fvar", "FinalMerge"}

func (k WorkKind) String() string {
	if int(k) < len(workKindNames) {
		return workKindNames[k]
	}
	return fmt.Sprintf("WorkKind(%d)", k)
}

// WorkId identifies a backend artifact. GlyphName is set for per-glyph
// artifacts only.
type WorkId struct {
	Kind      WorkKind
	GlyphName string
}

func (id WorkId) String() string {
	if id.Kind == WorkGlyph || id.Kind == WorkGvarFragment {
		return fmt.Sprintf("BE:%s(%s)", id.Kind, id.GlyphName)
	}
	return "BE:" + id.Kind.String()
}

// FeaturesId identifies the compiled layout rules.
func FeaturesId() WorkId { return WorkId{Kind: WorkFeatures} }

// GlyphId identifies the binary record of a glyph.
func GlyphId(name string) WorkId { return WorkId{Kind: WorkGlyph, GlyphName: name} }

// GvarFragmentId identifies the variation deltas of a glyph.
func GvarFragmentId(name string) WorkId { return WorkId{Kind: WorkGvarFragment, GlyphName: name} }

// GlyphMergeId identifies the merged glyf and loca tables.
func GlyphMergeId() WorkId { return WorkId{Kind: WorkGlyphMerge} }

// FvarId identifies the axis table.
func FvarId() WorkId { return WorkId{Kind: WorkFvar} }

// FinalMergeId identifies the final font binary.
func FinalMergeId() WorkId { return WorkId{Kind: WorkFinalMerge} }

// Stage tells if an artifact is produced by a frontend or by the backend.
type Stage uint8

// Stages of compilation.
const (
	StageFe Stage = iota
	StageBe
)

// AnyWorkId identifies an artifact of any stage. AnyWorkId is comparable
// and may be used as a map key.
type AnyWorkId struct {
	Stage Stage
	Fe    ir.WorkId // valid for StageFe
	Be    WorkId    // valid for StageBe
}

// FeId wraps a frontend id.
func FeId(id ir.WorkId) AnyWorkId {
	return AnyWorkId{Stage: StageFe, Fe: id}
}

// BeId wraps a backend id.
func BeId(id WorkId) AnyWorkId {
	return AnyWorkId{Stage: StageBe, Be: id}
}

// Compare orders ids by stage, then kind, then glyph name.
func (id AnyWorkId) Compare(other AnyWorkId) int {
	if id.Stage != other.Stage {
		if id.Stage < other.Stage {
			return -1
		}
		return 1
	}
	if id.Stage == StageFe {
		return id.Fe.Compare(other.Fe)
	}
	if id.Be.Kind != other.Be.Kind {
		if id.Be.Kind < other.Be.Kind {
			return -1
		}
		return 1
	}
	return strings.Compare(id.Be.GlyphName, other.Be.GlyphName)
}

func (id AnyWorkId) String() string {
	if id.Stage == StageFe {
		return id.Fe.String()
	}
	return id.Be.String()
}
