// Package typealias resolves named TypeScript types declared in the same
// program. It is the default type oracle of the prop analysis.
package typealias

import "github.com/proplint/proplint/internal/ast"

// Local indexes the top-level type aliases, interfaces and enums of one
// program by name. When a name is declared more than once the first
// declaration wins. A Local is safe for concurrent use once built.
type Local struct {
	decls map[string]*ast.Node
}

// NewLocal indexes program. A nil or non-program node yields an empty index.
func NewLocal(program *ast.Node) *Local {
	l := &Local{decls: make(map[string]*ast.Node)}
	if !program.Is(ast.KindProgram) {
		return l
	}
	for _, stmt := range program.Statements {
		l.add(stmt)
	}
	return l
}

func (l *Local) add(stmt *ast.Node) {
	switch {
	case stmt.Is(ast.KindExportNamedDeclaration, ast.KindExportDefaultDeclaration):
		l.add(stmt.Declaration)
	case stmt.Is(ast.KindTSTypeAliasDeclaration, ast.KindTSInterfaceDeclaration, ast.KindTSEnumDeclaration):
		if stmt.ID == nil || stmt.ID.Name == "" {
			return
		}
		if _, dup := l.decls[stmt.ID.Name]; !dup {
			l.decls[stmt.ID.Name] = stmt
		}
	}
}

// Resolve implements props.TypeOracle.
func (l *Local) Resolve(name string) (*ast.Node, bool) {
	if l == nil {
		return nil, false
	}
	decl, ok := l.decls[name]
	return decl, ok
}

// Len returns the number of indexed declarations.
func (l *Local) Len() int {
	if l == nil {
		return 0
	}
	return len(l.decls)
}
