package props

import "github.com/proplint/proplint/internal/ast"

// Value is the statically inferred runtime type of a default-value
// expression.
type Value struct {
	Tag TypeTag
	// Known is false when the type cannot be determined. Unknown values are
	// never reported.
	Known bool
	// Factory is set for arrow functions and function expressions, whose
	// return value is the actual default.
	Factory bool
}

// InferValue infers the runtime type of expr.
func InferValue(expr *ast.Node) Value {
	expr = ast.Unwrap(expr)
	if expr == nil {
		return Value{}
	}
	switch expr.Type {
	case ast.KindLiteral:
		return literalValue(expr)
	case ast.KindTemplateLiteral:
		if len(expr.Expressions) == 0 {
			return known(String)
		}
	case ast.KindObjectExpression:
		return known(Object)
	case ast.KindArrayExpression:
		return known(Array)
	case ast.KindArrowFunctionExpression, ast.KindFunctionExpression:
		return Value{Tag: Function, Known: true, Factory: true}
	case ast.KindChainExpression:
		return InferValue(expr.Expression)
	case ast.KindCallExpression:
		// String(x), Number(x), ... produce their primitive, optional or not.
		if callee := ast.Unwrap(expr.Callee); callee.Is(ast.KindIdentifier) {
			if t, ok := nativeConstructors[callee.Name]; ok {
				return known(t)
			}
		}
	case ast.KindUnaryExpression:
		return unaryValue(expr)
	}
	return Value{}
}

func known(t TypeTag) Value {
	return Value{Tag: t, Known: true}
}

func literalValue(lit *ast.Node) Value {
	if lit.Regex != nil {
		return Value{}
	}
	if lit.Bigint != "" {
		return known(BigInt)
	}
	switch lit.LiteralValue.(type) {
	case string:
		return known(String)
	case float64, int:
		return known(Number)
	case bool:
		return known(Boolean)
	}
	return Value{}
}

func unaryValue(expr *ast.Node) Value {
	switch expr.Operator {
	case "!":
		return known(Boolean)
	case "typeof":
		return known(String)
	case "-", "+", "~":
		arg := ast.Unwrap(expr.Argument)
		if !arg.Is(ast.KindLiteral) {
			return Value{}
		}
		if v := literalValue(arg); v.Known && (v.Tag == Number || v.Tag == BigInt) {
			if expr.Operator == "+" && v.Tag == BigInt {
				return Value{}
			}
			return v
		}
	}
	return Value{}
}

// FactoryReturns returns the expressions a factory function can return: the
// body of an expression-bodied arrow, or the argument of every return
// statement of a block body. Nested functions and classes are not entered.
func FactoryReturns(fn *ast.Node) []*ast.Node {
	fn = ast.Unwrap(fn)
	if !fn.IsFunction() || fn.Body == nil {
		return nil
	}
	if fn.ExpressionBody {
		return []*ast.Node{fn.Body}
	}
	var out []*ast.Node
	ast.Inspect(fn.Body, func(n *ast.Node) bool {
		switch {
		case n.IsFunction(), n.Is(ast.KindClassDeclaration, ast.KindClassExpression):
			return false
		case n.Is(ast.KindReturnStatement):
			if n.Argument != nil {
				out = append(out, n.Argument)
			}
			return false
		}
		return true
	})
	return out
}

// ReturnValue infers a factory return expression. A returned function is a
// nested factory and is left unknown.
func ReturnValue(expr *ast.Node) Value {
	v := InferValue(expr)
	if v.Factory {
		return Value{}
	}
	return v
}
