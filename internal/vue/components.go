package vue

import "github.com/proplint/proplint/internal/ast"

// FindComponents returns the component descriptions of a program in source
// order: every options object handed to `export default`, a component
// factory or `new Vue(...)` at the top level, followed by the program itself
// when it contains a top-level prop macro (a <script setup> component).
func (r *Resolver) FindComponents(program *ast.Node) []*ast.Node {
	if !program.Is(ast.KindProgram) {
		return nil
	}
	var out []*ast.Node
	setup := false
	for _, stmt := range program.Statements {
		if stmt.Is(ast.KindExportDefaultDeclaration) {
			if obj := ast.Unwrap(stmt.Declaration); obj.Is(ast.KindObjectExpression) {
				out = append(out, obj)
				continue
			}
		}
		for _, expr := range topLevelExpressions(stmt) {
			expr = ast.Unwrap(expr)
			if obj := r.optionsObject(expr); obj != nil {
				out = append(out, obj)
				continue
			}
			if _, ok := r.Classify(expr); ok {
				setup = true
			}
		}
	}
	if setup {
		out = append(out, program)
	}
	return out
}

// topLevelExpressions returns the expressions of a statement that may hold a
// component: the exported value, the statement expression, or the
// initializers of its declarators.
func topLevelExpressions(stmt *ast.Node) []*ast.Node {
	switch {
	case stmt.Is(ast.KindExportDefaultDeclaration):
		return []*ast.Node{stmt.Declaration}
	case stmt.Is(ast.KindExpressionStatement):
		return []*ast.Node{stmt.Expression}
	case stmt.Is(ast.KindExportNamedDeclaration):
		return topLevelExpressions(stmt.Declaration)
	case stmt.Is(ast.KindVariableDeclaration):
		var out []*ast.Node
		for _, d := range stmt.Declarations {
			out = append(out, d.Init)
		}
		return out
	}
	return nil
}

// optionsObject returns the component options object expr denotes, if any.
func (r *Resolver) optionsObject(expr *ast.Node) *ast.Node {
	switch {
	case expr.Is(ast.KindCallExpression) && r.isFactory(expr.Callee):
		return lastObjectArgument(expr.Arguments)
	case expr.Is(ast.KindNewExpression) && calleeName(expr.Callee) == "Vue":
		return lastObjectArgument(expr.Arguments)
	}
	return nil
}

func lastObjectArgument(args []*ast.Node) *ast.Node {
	for i := len(args) - 1; i >= 0; i-- {
		if arg := ast.Unwrap(args[i]); arg.Is(ast.KindObjectExpression) {
			return arg
		}
	}
	return nil
}
