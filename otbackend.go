/*
Package otbackend is the OpenType backend of a font compiler.

The backend receives the intermediate representation (IR) of a typeface
from a frontend: master outlines at locations of the design space,
component references, layout rules and static metadata. It compiles the IR
into binary OpenType tables and finally into a font file.

We will stick to the following nomenclature:

▪︎ A "master" is a drawing of a glyph at one location of the design space.
The master at the default location is the default master.

▪︎ A "location" is a point in the design space, in normalized coordinates.
Every axis runs from -1 to 1, with 0 at the axis' default.

▪︎ A "unit of work" produces one artifact, e.g. the binary record of a
single glyph. Units of work form a dependency graph and run in parallel
wherever the graph allows.

# Status

Tables 'head', 'maxp', 'hmtx' and 'gvar' are not produced, and table
'loca' always uses long offsets.

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otbackend

import (
	"context"
	"fmt"
	"strings"

	"github.com/npillmayer/otbackend/features"
	"github.com/npillmayer/otbackend/fontmerge"
	"github.com/npillmayer/otbackend/fvar"
	"github.com/npillmayer/otbackend/glyf"
	"github.com/npillmayer/otbackend/ir"
	"github.com/npillmayer/otbackend/orchestration"
	"github.com/npillmayer/otbackend/workgraph"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'otbackend'
func tracer() tracing.Trace {
	return tracing.Select("otbackend")
}

// Options configure a compilation run.
type Options struct {
	Flags    orchestration.Flags
	Paths    *orchestration.Paths
	Compiler features.Compiler // compiler for layout rules, may be nil
}

// OptionsFromConfig reads options from a configuration.
func OptionsFromConfig(conf schuko.Configuration, compiler features.Compiler) Options {
	return Options{
		Flags:    orchestration.FlagsFromConfig(conf),
		Paths:    orchestration.PathsFromConfig(conf),
		Compiler: compiler,
	}
}

// unit is a unit of work which knows its identity and access rights.
type unit interface {
	workgraph.Work
	Id() orchestration.AnyWorkId
	Read() orchestration.AccessFn
	Write() orchestration.AccessFn
}

// Compile compiles the IR of a typeface. It returns the context holding
// all artifacts; the font binary is available as Font() of the context.
//
// Compilation fails as a whole: if any unit of work fails, Compile returns
// the errors of all failed units.
func Compile(ctx context.Context, irctx *ir.Context, opts Options) (*orchestration.Context, error) {
	if opts.Paths == nil {
		opts.Paths = orchestration.NewPaths(orchestration.DefaultBuildDir)
	}
	if opts.Flags.EmitIR || opts.Flags.EmitDebug {
		if err := opts.Paths.Prepare(); err != nil {
			return nil, fmt.Errorf("cannot create build directories: %w", err)
		}
	}
	order := irctx.StaticMetadata().GlyphOrder.Names()
	var missing []string
	for _, name := range order {
		if _, ok := irctx.Glyph(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("no IR for glyphs in glyph order: %s", strings.Join(missing, ", "))
	}
	root := orchestration.NewRoot(opts.Flags, opts.Paths, irctx)
	exec := workgraph.NewExecutor(root, opts.Flags.Workers)
	for _, id := range irctx.WorkIds() {
		exec.Complete(orchestration.FeId(id))
	}
	meta := orchestration.FeId(ir.StaticMetadataId())
	add := func(u unit, deps ...orchestration.AnyWorkId) error {
		return exec.Add(workgraph.Job{
			Id:           u.Id(),
			Work:         u,
			Dependencies: deps,
			Read:         u.Read(),
			Write:        u.Write(),
		})
	}
	if err := add(features.CreateWork(opts.Compiler), meta, orchestration.FeId(ir.FeaturesId())); err != nil {
		return nil, err
	}
	for _, name := range irctx.GlyphNames() {
		if err := add(glyf.CreateGlyphWork(name), meta, orchestration.FeId(ir.GlyphId(name))); err != nil {
			return nil, err
		}
	}
	mergeDeps := []orchestration.AnyWorkId{meta}
	for _, name := range order {
		mergeDeps = append(mergeDeps, orchestration.BeId(orchestration.GlyphId(name)))
	}
	if err := add(glyf.CreateMergeWork(), mergeDeps...); err != nil {
		return nil, err
	}
	if err := add(fvar.CreateWork(), meta); err != nil {
		return nil, err
	}
	final := fontmerge.CreateWork()
	if err := add(final, append(final.Dependencies(), meta)...); err != nil {
		return nil, err
	}
	tracer().Infof("compiling %d glyphs", len(irctx.GlyphNames()))
	if err := exec.Run(ctx); err != nil {
		return nil, err
	}
	return root, nil
}
