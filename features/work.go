package features

import (
	"os"
	"path/filepath"

	"github.com/npillmayer/otbackend/ir"
	"github.com/npillmayer/otbackend/orchestration"
	"github.com/npillmayer/otbackend/oterr"
)

// DebugFile is the name of the file in the debug directory the rules are
// written to if compilation fails.
const DebugFile = "features.fea"

// Work compiles the layout rules of the IR.
type Work struct {
	compiler Compiler
}

// CreateWork creates the unit of work compiling layout rules with compiler.
// compiler may be nil for typefaces without layout rules.
func CreateWork(compiler Compiler) *Work {
	return &Work{compiler: compiler}
}

// Id is the identity of the unit of work.
func (w *Work) Id() orchestration.AnyWorkId {
	return orchestration.BeId(orchestration.FeaturesId())
}

// Read is the predicate for what the unit of work may read.
func (w *Work) Read() orchestration.AccessFn {
	return orchestration.AccessOneOf(
		orchestration.FeId(ir.StaticMetadataId()),
		orchestration.FeId(ir.FeaturesId()),
	)
}

// Write is the predicate for what the unit of work may write.
func (w *Work) Write() orchestration.AccessFn {
	return orchestration.AccessOneOf(w.Id())
}

// Exec compiles the rules and stores the tables as a packed blob.
func (w *Work) Exec(ctx *orchestration.Context) error {
	features := ctx.FeaturesIR()
	if features.Kind == ir.FeaturesEmpty {
		tracer().Debugf("no layout rules, dull compile")
		ctx.SetFeatures([]byte{})
		return nil
	}
	if w.compiler == nil {
		return oterr.ErrNoRuleCompiler
	}
	glyphs := ctx.StaticMetadata().GlyphOrder.Names()
	if len(glyphs) == 0 {
		tracer().Infof("glyph order is empty, feature compile improbable")
	}
	blob, err := w.compile(features, glyphs)
	if err != nil || ctx.Flags.EmitDebug {
		if features.Kind == ir.FeaturesMemory {
			writeDebugRules(ctx, err != nil, features.Text)
		}
	}
	if err != nil {
		return err
	}
	ctx.SetFeatures(blob)
	return nil
}

func (w *Work) compile(features ir.Features, glyphs []string) ([]byte, error) {
	var root string
	var resolver SourceResolver
	if features.Kind == ir.FeaturesFile {
		root = features.Path
		resolver = NewFileResolver(root)
	} else {
		resolver = NewMemoryResolver(root, features.Text)
	}
	compiled, err := w.compiler.Compile(root, resolver, glyphs)
	if err != nil {
		return nil, oterr.FeaCompileError{Err: err}
	}
	tables, err := compiled.Assemble(glyphs)
	if err != nil {
		return nil, oterr.FeaAssembleError{Err: err}
	}
	tracer().Debugf("layout rules compiled into %d tables", len(tables))
	return Pack(tables), nil
}

func writeDebugRules(ctx *orchestration.Context, failed bool, rules string) {
	debugFile := filepath.Join(ctx.DebugDir(), DebugFile)
	err := os.MkdirAll(ctx.DebugDir(), 0o755)
	if err == nil {
		err = os.WriteFile(debugFile, []byte(rules), 0o644)
	}
	switch {
	case err != nil:
		tracer().Errorf("failed to write rules to %s: %v", debugFile, err)
	case failed:
		tracer().Errorf("compile failed; rules written to %s", debugFile)
	default:
		tracer().Debugf("rules written to %s", debugFile)
	}
}
