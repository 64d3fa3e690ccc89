// Package parser turns JavaScript, TypeScript and Vue single-file component
// sources into the ESTree-shaped tree of package ast.
//
// Scripts are parsed with tree-sitter (the typescript and tsx grammars) and
// lowered node by node. Offsets in the resulting tree are byte offsets into
// the original file, including for the script blocks of a .vue file.
package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/proplint/proplint/internal/ast"
)

// Dialect selects the grammar a script is parsed with.
type Dialect int

const (
	// DialectTS is plain TypeScript (no JSX, `<T>x` assertions allowed).
	DialectTS Dialect = iota
	// DialectTSX is TypeScript with JSX. JavaScript is parsed with it too.
	DialectTSX
)

// Extensions lists the file extensions Parse accepts.
var Extensions = []string{".vue", ".js", ".mjs", ".cjs", ".jsx", ".ts", ".mts", ".cts", ".tsx"}

// Supported reports whether path has an extension Parse accepts.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Parser holds one tree-sitter parser per dialect. A Parser is not safe for
// concurrent use; create one per goroutine.
type Parser struct {
	ts  *sitter.Parser
	tsx *sitter.Parser
}

// New constructs a parser with both grammars loaded.
func New() (*Parser, error) {
	ts, err := newSitter(sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()))
	if err != nil {
		return nil, err
	}
	tsx, err := newSitter(sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()))
	if err != nil {
		ts.Close()
		return nil, err
	}
	return &Parser{ts: ts, tsx: tsx}, nil
}

func newSitter(lang *sitter.Language) (*sitter.Parser, error) {
	if lang == nil {
		return nil, fmt.Errorf("parser: typescript language not available")
	}
	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		p.Close()
		return nil, fmt.Errorf("parser: %w", err)
	}
	return p, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	if p == nil {
		return
	}
	if p.ts != nil {
		p.ts.Close()
	}
	if p.tsx != nil {
		p.tsx.Close()
	}
}

// Parse parses a source file, choosing the front end by extension. A syntax
// error is returned as a *ParseError.
func (p *Parser) Parse(path string, source []byte) (*ast.File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".vue":
		return p.ParseSFC(path, source)
	case ".ts", ".mts", ".cts":
		return p.ParseScript(path, source, DialectTS)
	case ".js", ".mjs", ".cjs", ".jsx", ".tsx":
		return p.ParseScript(path, source, DialectTSX)
	}
	return nil, fmt.Errorf("parser: %s: unsupported file extension %q", path, ext)
}

// ParseScript parses a whole file as a script of the given dialect.
func (p *Parser) ParseScript(path string, source []byte, dialect Dialect) (*ast.File, error) {
	program, err := p.parse(path, source, dialect)
	if err != nil {
		return nil, err
	}
	return &ast.File{Path: path, Source: string(source), Program: program}, nil
}

func (p *Parser) parse(path string, source []byte, dialect Dialect) (*ast.Node, error) {
	if p == nil || p.ts == nil || p.tsx == nil {
		return nil, fmt.Errorf("parser: nil parser")
	}
	sp := p.ts
	if dialect == DialectTSX {
		sp = p.tsx
	}

	tree := sp.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parser: %s: parse failed", path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.Kind() != "program" {
		return nil, fmt.Errorf("parser: %s: unexpected root node", path)
	}
	if root.HasError() {
		return nil, syntaxError(path, root)
	}

	l := &lowerer{src: source}
	return l.program(root), nil
}
