package props_test

import (
	"strconv"

	"github.com/proplint/proplint/internal/ast"
)

// Tree builders for tests. They produce the same shapes the front ends do,
// without source positions.

func id(name string) *ast.Node {
	return &ast.Node{Type: ast.KindIdentifier, Name: name}
}

func str(s string) *ast.Node {
	return &ast.Node{Type: ast.KindLiteral, LiteralValue: s, Raw: strconv.Quote(s)}
}

func num(f float64) *ast.Node {
	return &ast.Node{Type: ast.KindLiteral, LiteralValue: f, Raw: ast.FormatNumber(f)}
}

func bigint(digits string) *ast.Node {
	return &ast.Node{Type: ast.KindLiteral, Bigint: digits, Raw: digits + "n"}
}

func boolean(b bool) *ast.Node {
	return &ast.Node{Type: ast.KindLiteral, LiteralValue: b, Raw: strconv.FormatBool(b)}
}

func null() *ast.Node {
	return &ast.Node{Type: ast.KindLiteral, Raw: "null"}
}

func regex(pattern string) *ast.Node {
	return &ast.Node{Type: ast.KindLiteral, Regex: &ast.Regex{Pattern: pattern}, Raw: "/" + pattern + "/"}
}

func unary(op string, arg *ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindUnaryExpression, Operator: op, Prefix: true, Argument: arg}
}

// tmpl builds a template literal; exprs go between consecutive quasis.
func tmpl(quasis []string, exprs ...*ast.Node) *ast.Node {
	n := &ast.Node{Type: ast.KindTemplateLiteral, Expressions: exprs}
	for i, q := range quasis {
		n.Quasis = append(n.Quasis, &ast.Node{Type: ast.KindTemplateElement, Cooked: q, Raw: q, Tail: i == len(quasis)-1})
	}
	return n
}

func arr(els ...*ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindArrayExpression, Elements: els}
}

func obj(props ...*ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindObjectExpression, Properties: props}
}

func prop(key string, value *ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindProperty, Key: id(key), Value: value, Kind: "init"}
}

func computed(key, value *ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindProperty, Key: key, Value: value, Kind: "init", Computed: true}
}

func spread(arg *ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindSpreadElement, Argument: arg}
}

func call(callee *ast.Node, args ...*ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindCallExpression, Callee: callee, Arguments: args}
}

// callT is a call with explicit type arguments: callee<T...>(args...).
func callT(callee *ast.Node, typeArgs []*ast.Node, args ...*ast.Node) *ast.Node {
	n := call(callee, args...)
	n.TypeArguments = &ast.Node{Type: ast.KindTSTypeParameterInstantiation, Params: typeArgs}
	return n
}

func member(object *ast.Node, property string) *ast.Node {
	return &ast.Node{Type: ast.KindMemberExpression, Object: object, Property: id(property)}
}

// arrow builds an expression-bodied arrow function.
func arrow(body *ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindArrowFunctionExpression, Body: body, ExpressionBody: true}
}

// fn builds a function expression with a block body.
func fn(stmts ...*ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindFunctionExpression, Body: block(stmts...)}
}

func block(stmts ...*ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindBlockStatement, Statements: stmts}
}

func ret(arg *ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindReturnStatement, Argument: arg}
}

func ifStmt(test, consequent *ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindIfStatement, Test: test, Consequent: consequent}
}

// optCall is callee?.().
func optCall(callee *ast.Node, args ...*ast.Node) *ast.Node {
	c := call(callee, args...)
	c.Optional = true
	return c
}

func chain(expr *ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindChainExpression, Expression: expr}
}

func paren(expr *ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindParenthesizedExpression, Expression: expr}
}

func program(stmts ...*ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindProgram, Statements: stmts}
}

func exprStmt(expr *ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindExpressionStatement, Expression: expr}
}

func constDecl(target, init *ast.Node) *ast.Node {
	return &ast.Node{
		Type: ast.KindVariableDeclaration,
		Kind: "const",
		Declarations: []*ast.Node{
			{Type: ast.KindVariableDeclarator, ID: target, Init: init},
		},
	}
}

func exportDefault(decl *ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindExportDefaultDeclaration, Declaration: decl}
}

// objPattern builds `{ a = 1, b }` style patterns from its properties.
func objPattern(props ...*ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindObjectPattern, Properties: props}
}

// withDefault is the pattern property `key = def`.
func withDefault(key string, def *ast.Node) *ast.Node {
	return &ast.Node{
		Type:      ast.KindProperty,
		Key:       id(key),
		Value:     &ast.Node{Type: ast.KindAssignmentPattern, Left: id(key), Right: def},
		Kind:      "init",
		Shorthand: true,
	}
}

// Types.

func kw(kind string) *ast.Node {
	return &ast.Node{Type: kind}
}

func tref(name string, args ...*ast.Node) *ast.Node {
	n := &ast.Node{Type: ast.KindTSTypeReference, TypeName: id(name)}
	if len(args) > 0 {
		n.TypeArguments = &ast.Node{Type: ast.KindTSTypeParameterInstantiation, Params: args}
	}
	return n
}

func tlit(members ...*ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindTSTypeLiteral, Members: members}
}

func psig(name string, typ *ast.Node) *ast.Node {
	return &ast.Node{
		Type:           ast.KindTSPropertySignature,
		Key:            id(name),
		TypeAnnotation: &ast.Node{Type: ast.KindTSTypeAnnotation, TypeAnnotation: typ},
	}
}

func optional(sig *ast.Node) *ast.Node {
	sig.Optional = true
	return sig
}

func msig(name string) *ast.Node {
	return &ast.Node{Type: ast.KindTSMethodSignature, Key: id(name)}
}

func union(types ...*ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindTSUnionType, Types: types}
}

func intersection(types ...*ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindTSIntersectionType, Types: types}
}

func arrayType(elem *ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindTSArrayType, ElementType: elem}
}

// templateType is the template literal type `${T}` over the given types.
func templateType(types ...*ast.Node) *ast.Node {
	quasis := make([]*ast.Node, len(types)+1)
	for i := range quasis {
		quasis[i] = &ast.Node{Type: ast.KindTemplateElement, Tail: i == len(types)}
	}
	return &ast.Node{Type: ast.KindTSTemplateLiteralType, Quasis: quasis, Types: types}
}

func litType(lit *ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindTSLiteralType, Literal: lit}
}

func fnType() *ast.Node {
	return &ast.Node{Type: ast.KindTSFunctionType}
}

func typeAlias(name string, params []string, typ *ast.Node) *ast.Node {
	n := &ast.Node{Type: ast.KindTSTypeAliasDeclaration, ID: id(name), TypeAnnotation: typ}
	if len(params) > 0 {
		n.TypeParameters = &ast.Node{Type: ast.KindTSTypeParameterDeclaration}
		for _, p := range params {
			n.TypeParameters.Params = append(n.TypeParameters.Params, &ast.Node{Type: ast.KindTSTypeParameter, Name: p})
		}
	}
	return n
}

func iface(name string, extends []string, members ...*ast.Node) *ast.Node {
	n := &ast.Node{
		Type: ast.KindTSInterfaceDeclaration,
		ID:   id(name),
		Body: &ast.Node{Type: ast.KindTSInterfaceBody, Statements: members},
	}
	for _, e := range extends {
		n.Extends = append(n.Extends, &ast.Node{Type: ast.KindTSInterfaceHeritage, Expression: id(e)})
	}
	return n
}

func enum(name string, inits ...*ast.Node) *ast.Node {
	n := &ast.Node{Type: ast.KindTSEnumDeclaration, ID: id(name)}
	for i, init := range inits {
		n.Members = append(n.Members, &ast.Node{Type: ast.KindTSEnumMember, ID: id("M" + strconv.Itoa(i)), Init: init})
	}
	return n
}
