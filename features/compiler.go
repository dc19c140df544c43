package features

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-text/typesetting/font/opentype"
)

// Compiler is a compiler for layout rules.
type Compiler interface {
	// Compile parses and compiles the rules found at path root. All sources,
	// including root, are loaded through resolver. glyphs is the glyph
	// order of the font, with glyph IDs given by position.
	Compile(root string, resolver SourceResolver, glyphs []string) (Compiled, error)
}

// Compiled is the result of a successful compilation.
type Compiled interface {
	// Assemble creates the binary layout tables.
	Assemble(glyphs []string) ([]opentype.Table, error)
}

// SourceResolver loads the sources of layout rules.
type SourceResolver interface {
	Contents(path string) (string, error)
}

// ErrNotSupported is returned by resolvers for sources they cannot load.
var ErrNotSupported = errors.New("source not supported")

// MemoryResolver serves rules held in memory. It knows a single source only.
type MemoryResolver struct {
	path    string
	content string
}

// NewMemoryResolver creates a resolver serving content as source path.
func NewMemoryResolver(path, content string) *MemoryResolver {
	return &MemoryResolver{path: path, content: content}
}

// Contents returns the rules if path is the path of the resolver.
func (r *MemoryResolver) Contents(path string) (string, error) {
	if path == r.path {
		return r.content, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotSupported, path)
}

// FileResolver loads rules from the file system. Relative paths are taken
// relative to the directory of the root source.
type FileResolver struct {
	dir string
}

// NewFileResolver creates a resolver for a root source at path root.
func NewFileResolver(root string) *FileResolver {
	return &FileResolver{dir: filepath.Dir(root)}
}

// Contents reads the source file at path.
func (r *FileResolver) Contents(path string) (string, error) {
	if !filepath.IsAbs(path) && r.dir != "" {
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(r.dir, path)
		}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// Pack writes tables into a single SFNT blob. An empty list of tables
// results in an empty blob.
func Pack(tables []opentype.Table) []byte {
	if len(tables) == 0 {
		return []byte{}
	}
	sorted := make([]opentype.Table, len(tables))
	copy(sorted, tables)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Tag < sorted[j].Tag })
	return opentype.WriteTTF(sorted)
}

// Unpack reads back the tables of a blob created by Pack.
func Unpack(blob []byte) ([]opentype.Table, error) {
	if len(blob) == 0 {
		return nil, nil
	}
	ld, err := opentype.NewLoader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("cannot read feature tables: %w", err)
	}
	var tables []opentype.Table
	for _, tag := range ld.Tables() {
		content, err := ld.RawTable(tag)
		if err != nil {
			return nil, fmt.Errorf("cannot read feature table %s: %w", tag, err)
		}
		tables = append(tables, opentype.Table{Tag: tag, Content: content})
	}
	return tables, nil
}
