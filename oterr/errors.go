/*
Package oterr defines the errors of the OpenType backend.

Errors fall into two classes. Problems of the input, e.g. a glyph with
inconsistent masters or layout rules which do not compile, are reported as
error values of this package. Violations of internal invariants, e.g. access to
an artifact outside of a unit's declared access, are programming errors and
cause a panic.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package oterr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, to be tested with errors.Is.
var (
	ErrGlyph           = errors.New("glyph error")
	ErrComponent       = errors.New("component error")
	ErrPathConversion  = errors.New("path conversion error")
	ErrGlyphDelta      = errors.New("glyph delta error")
	ErrFeatureCompile  = errors.New("feature compilation failed")
	ErrFeatureAssemble = errors.New("feature assembly failed")
	ErrAxisName        = errors.New("axis name not found in name table")
	ErrNoRuleCompiler  = errors.New("layout rules present but no rule compiler configured")
)

// GlyphProblem classifies what is wrong with a glyph.
type GlyphProblem int

const (
	// InconsistentComponents: masters reference different sets of components.
	InconsistentComponents GlyphProblem = iota
	// InconsistentPathElements: masters have paths of differing structure.
	InconsistentPathElements
	// HasComponentsAndPath: a glyph mixes outlines and components.
	HasComponentsAndPath
	// MissingDefault: there is no master at the default location.
	MissingDefault
	// NotInGlyphOrder: a glyph is referenced but not part of the glyph order.
	NotInGlyphOrder
	// NoComponents: a composite without any component.
	NoComponents
)

func (p GlyphProblem) String() string {
	switch p {
	case InconsistentComponents:
		return "inconsistent components"
	case InconsistentPathElements:
		return "inconsistent path elements"
	case HasComponentsAndPath:
		return "has components and path"
	case MissingDefault:
		return "missing default master"
	case NotInGlyphOrder:
		return "not in glyph order"
	case NoComponents:
		return "no components"
	}
	return fmt.Sprintf("GlyphProblem(%d)", int(p))
}

// GlyphError reports a problem with a glyph.
type GlyphError struct {
	Glyph   string
	Problem GlyphProblem
}

func (e GlyphError) Error() string {
	return fmt.Sprintf("glyph %q: %s", e.Glyph, e.Problem)
}

// Is makes GlyphError match ErrGlyph.
func (e GlyphError) Is(target error) bool {
	return target == ErrGlyph
}

// ComponentError reports a problem with a component of a composite glyph.
type ComponentError struct {
	Glyph     string // the composite glyph
	Component string // the referenced glyph
	Problem   GlyphProblem
}

func (e ComponentError) Error() string {
	return fmt.Sprintf("glyph %q, component %q: %s", e.Glyph, e.Component, e.Problem)
}

// Is makes ComponentError match ErrComponent.
func (e ComponentError) Is(target error) bool {
	return target == ErrComponent
}

// ComponentErrors collects all errors of the components of a composite
// glyph, as a glyph is not rejected at its first failing component.
type ComponentErrors struct {
	Glyph  string
	Errors []error
}

// Add records an error.
func (e *ComponentErrors) Add(err error) {
	e.Errors = append(e.Errors, err)
}

// HasErrors returns true if any error has been recorded.
func (e *ComponentErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

func (e *ComponentErrors) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("glyph %q has %d component error(s): %s", e.Glyph, len(e.Errors),
		strings.Join(msgs, "; "))
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *ComponentErrors) Unwrap() []error {
	return e.Errors
}

// PathConversionError reports a path which could not be converted to a
// binary glyph outline.
type PathConversionError struct {
	Glyph   string
	Problem string
	Path    string // textual rendition of the path
}

func (e PathConversionError) Error() string {
	return fmt.Sprintf("glyph %q: cannot convert path %s: %s", e.Glyph, e.Path, e.Problem)
}

// Is makes PathConversionError match ErrPathConversion.
func (e PathConversionError) Is(target error) bool {
	return target == ErrPathConversion
}

// GlyphDeltaError reports a failure to compute variation deltas of a glyph.
type GlyphDeltaError struct {
	Glyph string
	Err   error
}

func (e GlyphDeltaError) Error() string {
	return fmt.Sprintf("glyph %q: cannot compute deltas: %v", e.Glyph, e.Err)
}

// Is makes GlyphDeltaError match ErrGlyphDelta.
func (e GlyphDeltaError) Is(target error) bool {
	return target == ErrGlyphDelta
}

func (e GlyphDeltaError) Unwrap() error {
	return e.Err
}

// FeaCompileError wraps the diagnostics of the layout rule compiler.
type FeaCompileError struct {
	Err error
}

func (e FeaCompileError) Error() string {
	return fmt.Sprintf("%v: %v", ErrFeatureCompile, e.Err)
}

// Is makes FeaCompileError match ErrFeatureCompile.
func (e FeaCompileError) Is(target error) bool {
	return target == ErrFeatureCompile
}

func (e FeaCompileError) Unwrap() error {
	return e.Err
}

// FeaAssembleError wraps an error while assembling compiled layout rules
// into binary tables.
type FeaAssembleError struct {
	Err error
}

func (e FeaAssembleError) Error() string {
	return fmt.Sprintf("%v: %v", ErrFeatureAssemble, e.Err)
}

// Is makes FeaAssembleError match ErrFeatureAssemble.
func (e FeaAssembleError) Is(target error) bool {
	return target == ErrFeatureAssemble
}

func (e FeaAssembleError) Unwrap() error {
	return e.Err
}

// AxisNameError reports an axis whose name is missing from the name table.
type AxisNameError struct {
	Axis string // axis tag
	Name string
}

func (e AxisNameError) Error() string {
	return fmt.Sprintf("axis %s: name %q not found in name table", e.Axis, e.Name)
}

// Is makes AxisNameError match ErrAxisName.
func (e AxisNameError) Is(target error) bool {
	return target == ErrAxisName
}
