package jsx

import (
	"context"
	"fmt"
	"path"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/viant/afs"
	"github.com/viant/jsxrefresh/ast"
)

// Dialect identifies the grammar used to parse a source
type Dialect int

const (
	// JavaScript covers .js, .jsx, .mjs and .cjs sources, JSX included
	JavaScript Dialect = iota
	TypeScript
	TSX
)

// String returns dialect name
func (d Dialect) String() string {
	switch d {
	case TypeScript:
		return "typescript"
	case TSX:
		return "tsx"
	default:
		return "javascript"
	}
}

func (d Dialect) language() *sitter.Language {
	switch d {
	case TypeScript:
		return typescript.GetLanguage()
	case TSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// DialectOf returns dialect for a file name
func DialectOf(filename string) Dialect {
	switch strings.ToLower(path.Ext(filename)) {
	case ".ts", ".mts", ".cts":
		return TypeScript
	case ".tsx":
		return TSX
	default:
		return JavaScript
	}
}

// IsSource returns true if file name has a supported extension
func IsSource(filename string) bool {
	switch strings.ToLower(path.Ext(filename)) {
	case ".js", ".jsx", ".mjs", ".cjs", ".ts", ".mts", ".cts", ".tsx":
		return !strings.HasSuffix(filename, ".d.ts")
	}
	return false
}

// File represents parsed source file
type File struct {
	Path     string
	Dialect  Dialect
	Source   []byte
	Module   *ast.Module
	HasError bool
}

// Inspector parses JSX/TSX sources into module trees
type Inspector struct {
	dialect Dialect
	fs      afs.Service
}

// Option configures inspector
type Option func(*Inspector)

// WithDialect sets dialect used by InspectSource
func WithDialect(dialect Dialect) Option {
	return func(i *Inspector) {
		i.dialect = dialect
	}
}

// WithFS sets file system service used by InspectFile
func WithFS(fs afs.Service) Option {
	return func(i *Inspector) {
		i.fs = fs
	}
}

// NewInspector creates a new JSX Inspector
func NewInspector(options ...Option) *Inspector {
	ret := &Inspector{dialect: JavaScript}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}

// InspectSource parses source code from a byte slice
func (i *Inspector) InspectSource(src []byte) (*File, error) {
	return i.inspect(context.Background(), "source"+extension(i.dialect), i.dialect, src)
}

// InspectFile reads and parses a source file; dialect is derived from the file extension
func (i *Inspector) InspectFile(ctx context.Context, URL string) (*File, error) {
	src, err := i.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", URL, err)
	}
	return i.inspect(ctx, URL, DialectOf(URL), src)
}

// InspectNamed parses source code, selecting dialect by file name
func (i *Inspector) InspectNamed(ctx context.Context, filename string, src []byte) (*File, error) {
	return i.inspect(ctx, filename, DialectOf(filename), src)
}

func (i *Inspector) inspect(ctx context.Context, filename string, dialect Dialect, src []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(dialect.language())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	conv := &converter{src: src}
	return &File{
		Path:     filename,
		Dialect:  dialect,
		Source:   src,
		Module:   conv.module(rootNode),
		HasError: rootNode.HasError(),
	}, nil
}

func extension(dialect Dialect) string {
	switch dialect {
	case TypeScript:
		return ".ts"
	case TSX:
		return ".tsx"
	}
	return ".jsx"
}
