/*
Package fvar builds the font variations table 'fvar'.

The table lists the variable axes of a typeface. A typeface without
variable axes has no 'fvar' table; axes whose minimum, default and maximum
coincide (point axes) do not count as variable. Named instances are not
generated.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fvar

import (
	"github.com/npillmayer/otbackend/ir"
	"github.com/npillmayer/otbackend/orchestration"
	"github.com/npillmayer/otbackend/oterr"
	"github.com/npillmayer/otbackend/otwrite"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'otbackend.fvar'
func tracer() tracing.Trace {
	return tracing.Select("otbackend.fvar")
}

// Generate creates the axis records of table 'fvar' from the static
// metadata of a typeface. It returns nil if there is no variable axis.
//
// Every axis has to find its display name in the name table of the
// typeface. If a name is present under more than one name ID, the lowest
// ID is used.
func Generate(meta *ir.StaticMetadata) (*otwrite.Fvar, error) {
	axes := meta.VariableAxes()
	if len(axes) == 0 {
		tracer().Debugf("skipping fvar, no variable axes")
		return nil, nil
	}
	reverse := reverseNames(meta.Names)
	fvar := &otwrite.Fvar{Axes: make([]otwrite.FvarAxis, 0, len(axes))}
	for _, a := range axes {
		id, ok := reverse[a.Name]
		if !ok {
			tracer().Errorf("axis %s has no entry %q in name table", a.Tag, a.Name)
			return nil, oterr.AxisNameError{Axis: a.Tag, Name: a.Name}
		}
		fvar.Axes = append(fvar.Axes, otwrite.FvarAxis{
			Tag:     a.Tag,
			Min:     a.Min,
			Default: a.Default,
			Max:     a.Max,
			Hidden:  a.Hidden,
			NameID:  uint16(id),
		})
	}
	tracer().Infof("fvar has %d axes", len(fvar.Axes))
	return fvar, nil
}

func reverseNames(names map[ir.NameKey]string) map[string]sfnt.NameID {
	reverse := make(map[string]sfnt.NameID, len(names))
	for key, name := range names {
		if id, ok := reverse[name]; !ok || key.Name < id {
			reverse[name] = key.Name
		}
	}
	return reverse
}

// Work generates table 'fvar' and stores it in the context.
type Work struct{}

// CreateWork creates the unit of work for table 'fvar'.
func CreateWork() *Work {
	return &Work{}
}

// Id is the identity of the unit of work.
func (w *Work) Id() orchestration.AnyWorkId {
	return orchestration.BeId(orchestration.FvarId())
}

// Read is the predicate for what the unit of work may read.
func (w *Work) Read() orchestration.AccessFn {
	return orchestration.AccessOneOf(orchestration.FeId(ir.StaticMetadataId()))
}

// Write is the predicate for what the unit of work may write.
func (w *Work) Write() orchestration.AccessFn {
	return orchestration.AccessOneOf(w.Id())
}

// Exec generates the table. A typeface without variable axes stores nil.
func (w *Work) Exec(ctx *orchestration.Context) error {
	fvar, err := Generate(ctx.StaticMetadata())
	if err != nil {
		return err
	}
	ctx.SetFvar(fvar)
	return nil
}
