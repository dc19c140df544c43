package oterr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentErrorsMatchEveryCollectedError(t *testing.T) {
	errs := &ComponentErrors{Glyph: "Aacute"}
	assert.False(t, errs.HasErrors())
	errs.Add(ComponentError{Glyph: "Aacute", Component: "acute", Problem: NotInGlyphOrder})
	errs.Add(GlyphError{Glyph: "Aacute", Problem: NoComponents})
	assert.True(t, errs.HasErrors())
	var err error = errs
	assert.ErrorIs(t, err, ErrComponent)
	assert.ErrorIs(t, err, ErrGlyph)
	var ce ComponentError
	if assert.True(t, errors.As(err, &ce)) {
		assert.Equal(t, "acute", ce.Component)
	}
	assert.Contains(t, err.Error(), "not in glyph order")
}

func TestWrappedDiagnostics(t *testing.T) {
	diag := errors.New("syntax error at line 3")
	err := error(FeaCompileError{Err: diag})
	assert.ErrorIs(t, err, ErrFeatureCompile)
	assert.ErrorIs(t, err, diag)
	assert.NotErrorIs(t, err, ErrFeatureAssemble)
	err = GlyphDeltaError{Glyph: "a", Err: diag}
	assert.ErrorIs(t, err, ErrGlyphDelta)
	assert.ErrorIs(t, err, diag)
}
