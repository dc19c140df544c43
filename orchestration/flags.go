package orchestration

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/npillmayer/schuko"
)

// Configuration keys.
const (
	ConfEmitIR    = "emit-ir"    // persist every artifact to the build directory
	ConfEmitDebug = "emit-debug" // write debug files (rule text, glyph previews)
	ConfBuildDir  = "build-dir"  // directory for persisted artifacts
	ConfWorkers   = "workers"    // number of worker goroutines
)

// DefaultBuildDir is used if no build directory is configured.
const DefaultBuildDir = "build"

// Flags control a compilation run.
type Flags struct {
	EmitIR    bool
	EmitDebug bool
	Workers   int
}

// FlagsFromConfig reads flags from a configuration. If no worker count is
// configured, GOMAXPROCS workers are used.
func FlagsFromConfig(conf schuko.Configuration) Flags {
	flags := Flags{Workers: runtime.GOMAXPROCS(0)}
	if conf == nil {
		return flags
	}
	flags.EmitIR = conf.GetBool(ConfEmitIR)
	flags.EmitDebug = conf.GetBool(ConfEmitDebug)
	if conf.IsSet(ConfWorkers) && conf.GetInt(ConfWorkers) > 0 {
		flags.Workers = conf.GetInt(ConfWorkers)
	}
	return flags
}

// Paths locates files of a compilation run.
type Paths struct {
	buildDir string
}

// NewPaths creates paths rooted at buildDir.
func NewPaths(buildDir string) *Paths {
	if buildDir == "" {
		buildDir = DefaultBuildDir
	}
	return &Paths{buildDir: buildDir}
}

// PathsFromConfig reads the build directory from a configuration.
func PathsFromConfig(conf schuko.Configuration) *Paths {
	if conf == nil || !conf.IsSet(ConfBuildDir) {
		return NewPaths(DefaultBuildDir)
	}
	return NewPaths(conf.GetString(ConfBuildDir))
}

// BuildDir is the root of all output.
func (p *Paths) BuildDir() string {
	return p.buildDir
}

// DebugDir is a place for files helping someone debugging.
func (p *Paths) DebugDir() string {
	return filepath.Join(p.buildDir, "debug")
}

// GlyphDir holds persisted per-glyph artifacts.
func (p *Paths) GlyphDir() string {
	return filepath.Join(p.buildDir, "glyphs")
}

// Prepare creates all output directories.
func (p *Paths) Prepare() error {
	for _, dir := range []string{p.buildDir, p.DebugDir(), p.GlyphDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// TargetFile is the file an artifact is persisted to. The glyph merge
// artifact is persisted as two files; TargetFile names the glyf part.
func (p *Paths) TargetFile(id WorkId) string {
	switch id.Kind {
	case WorkFeatures:
		return filepath.Join(p.buildDir, "features.ttf")
	case WorkGlyph:
		return filepath.Join(p.GlyphDir(), SafeFilename(id.GlyphName)+".glyf")
	case WorkGvarFragment:
		return filepath.Join(p.GlyphDir(), SafeFilename(id.GlyphName)+".gvar.yml")
	case WorkGlyphMerge:
		return filepath.Join(p.buildDir, "glyf.table")
	case WorkFvar:
		return filepath.Join(p.buildDir, "fvar.yml")
	case WorkFinalMerge:
		return filepath.Join(p.buildDir, "font.ttf")
	}
	panic("no target file for " + id.String())
}

// LocaFile is the file table 'loca' is persisted to.
func (p *Paths) LocaFile() string {
	return filepath.Join(p.buildDir, "loca.table")
}

// SafeFilename turns a glyph name into a file name which is safe on
// case-insensitive file systems: upper case letters are followed by an
// underscore, anything outside [a-z0-9.-] is hex-escaped. Underscores are
// escaped, too, so distinct glyph names never map to file names differing
// in case only.
func SafeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
			b.WriteByte('_')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == '.' && b.Len() > 0:
			b.WriteRune(r)
		default:
			for _, c := range []byte(string(r)) {
				fmt.Fprintf(&b, "%%%02X", c)
			}
		}
	}
	return b.String()
}
