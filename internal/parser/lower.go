package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/proplint/proplint/internal/ast"
)

// Node types produced for constructs the analyzer treats as opaque.
const (
	kindBinaryExpression         = "BinaryExpression"
	kindLogicalExpression        = "LogicalExpression"
	kindAssignmentExpression     = "AssignmentExpression"
	kindConditionalExpression    = "ConditionalExpression"
	kindUpdateExpression         = "UpdateExpression"
	kindAwaitExpression          = "AwaitExpression"
	kindYieldExpression          = "YieldExpression"
	kindSequenceExpression       = "SequenceExpression"
	kindTaggedTemplateExpression = "TaggedTemplateExpression"
	kindImportDeclaration        = "ImportDeclaration"
	kindSuper                    = "Super"
	kindPrivateIdentifier        = "PrivateIdentifier"
	kindJSXElement               = "JSXElement"
	kindUnknown                  = "Unknown"
)

// lowerer converts a tree-sitter concrete tree into ast nodes. It reads node
// text from src.
type lowerer struct {
	src []byte
}

func (l *lowerer) base(n *sitter.Node, typ string) *ast.Node {
	start, end := n.StartPosition(), n.EndPosition()
	return &ast.Node{
		Type:  typ,
		Range: ast.Range{int(n.StartByte()), int(n.EndByte())},
		Loc: ast.Location{
			Start: ast.Position{Line: int(start.Row) + 1, Column: int(start.Column)},
			End:   ast.Position{Line: int(end.Row) + 1, Column: int(end.Column)},
		},
	}
}

func (l *lowerer) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(l.src)
}

func isComment(n *sitter.Node) bool {
	k := n.Kind()
	return k == "comment" || k == "html_comment"
}

// namedChildren returns the named children of n, comments excluded.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := uint(0); i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		if c == nil || isComment(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func firstNamed(n *sitter.Node) *sitter.Node {
	if cs := namedChildren(n); len(cs) > 0 {
		return cs[0]
	}
	return nil
}

// hasToken reports whether n has an anonymous child token tok.
func hasToken(n *sitter.Node, tok string) bool {
	if n == nil {
		return false
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c != nil && !c.IsNamed() && c.Kind() == tok {
			return true
		}
	}
	return false
}

func field(n *sitter.Node, name string) *sitter.Node {
	if n == nil {
		return nil
	}
	return n.ChildByFieldName(name)
}

func (l *lowerer) program(root *sitter.Node) *ast.Node {
	p := l.base(root, ast.KindProgram)
	p.Statements = l.statements(root)
	return p
}

func (l *lowerer) statements(n *sitter.Node) []*ast.Node {
	var out []*ast.Node
	for _, c := range namedChildren(n) {
		if c.Kind() == "hash_bang_line" || c.Kind() == "empty_statement" {
			continue
		}
		out = append(out, l.node(c))
	}
	return out
}

func (l *lowerer) nodes(ns []*sitter.Node) []*ast.Node {
	out := make([]*ast.Node, 0, len(ns))
	for _, n := range ns {
		out = append(out, l.node(n))
	}
	return out
}

// node lowers a statement or expression.
func (l *lowerer) node(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case "expression_statement":
		out := l.base(n, ast.KindExpressionStatement)
		out.Expression = l.node(firstNamed(n))
		return out
	case "lexical_declaration", "variable_declaration":
		out := l.base(n, ast.KindVariableDeclaration)
		if kw := n.Child(0); kw != nil {
			out.Kind = l.text(kw)
		}
		for _, c := range namedChildren(n) {
			if c.Kind() == "variable_declarator" {
				out.Declarations = append(out.Declarations, l.declarator(c))
			}
		}
		return out
	case "variable_declarator":
		return l.declarator(n)
	case "export_statement":
		return l.export(n)
	case "import_statement":
		return l.base(n, kindImportDeclaration)
	case "function_declaration", "generator_function_declaration", "function_signature":
		return l.function(n, ast.KindFunctionDeclaration)
	case "class_declaration", "abstract_class_declaration":
		out := l.base(n, ast.KindClassDeclaration)
		out.ID = l.node(field(n, "name"))
		return out
	case "statement_block", "class_body":
		out := l.base(n, ast.KindBlockStatement)
		out.Statements = l.statements(n)
		return out
	case "return_statement":
		out := l.base(n, ast.KindReturnStatement)
		out.Argument = l.node(firstNamed(n))
		return out
	case "if_statement":
		out := l.base(n, ast.KindIfStatement)
		out.Test = l.node(field(n, "condition"))
		out.Consequent = l.node(field(n, "consequence"))
		if alt := field(n, "alternative"); alt != nil {
			out.Alternate = l.node(firstNamed(alt))
		}
		return out
	case "switch_statement":
		out := l.base(n, ast.KindSwitchStatement)
		out.Test = l.node(field(n, "value"))
		for _, c := range namedChildren(field(n, "body")) {
			out.Cases = append(out.Cases, l.switchCase(c))
		}
		return out
	case "try_statement":
		out := l.base(n, ast.KindTryStatement)
		out.Block = l.node(field(n, "body"))
		if h := field(n, "handler"); h != nil {
			handler := l.base(h, ast.KindCatchClause)
			handler.Body = l.node(field(h, "body"))
			out.Handler = handler
		}
		if f := field(n, "finalizer"); f != nil {
			out.Finalizer = l.node(field(f, "body"))
		}
		return out
	case "for_statement", "for_in_statement", "while_statement", "do_statement":
		out := l.base(n, loopKinds[n.Kind()])
		if n.Kind() == "for_in_statement" && hasToken(n, "of") {
			out.Type = ast.KindForOfStatement
		}
		out.Body = l.node(field(n, "body"))
		return out
	case "labeled_statement":
		out := l.base(n, ast.KindLabeledStatement)
		out.Label = l.identifier(field(n, "label"))
		out.Body = l.node(field(n, "body"))
		return out
	case "ambient_declaration":
		return l.node(firstNamed(n))
	case "type_alias_declaration", "interface_declaration", "enum_declaration":
		return l.typeDeclaration(n)

	case "identifier", "property_identifier", "shorthand_property_identifier",
		"shorthand_property_identifier_pattern", "type_identifier", "statement_identifier", "undefined":
		return l.identifier(n)
	case "private_property_identifier":
		out := l.base(n, kindPrivateIdentifier)
		out.Name = strings.TrimPrefix(l.text(n), "#")
		return out
	case "this":
		return l.base(n, ast.KindThisExpression)
	case "super":
		return l.base(n, kindSuper)
	case "number":
		out := l.base(n, ast.KindLiteral)
		out.Raw = l.text(n)
		out.LiteralValue, out.Bigint = numberValue(out.Raw)
		return out
	case "string":
		return l.stringLiteral(n)
	case "true", "false":
		out := l.base(n, ast.KindLiteral)
		out.Raw = l.text(n)
		out.LiteralValue = out.Raw == "true"
		return out
	case "null":
		out := l.base(n, ast.KindLiteral)
		out.Raw = "null"
		return out
	case "regex":
		out := l.base(n, ast.KindLiteral)
		out.Raw = l.text(n)
		out.Regex = &ast.Regex{
			Pattern: l.text(field(n, "pattern")),
			Flags:   l.text(field(n, "flags")),
		}
		return out
	case "template_string":
		return l.template(n)
	case "object":
		return l.object(n)
	case "array":
		out := l.base(n, ast.KindArrayExpression)
		out.Elements = l.elements(n, l.node)
		return out
	case "call_expression":
		return l.call(n)
	case "new_expression":
		out := l.base(n, ast.KindNewExpression)
		out.Callee = l.node(field(n, "constructor"))
		out.TypeArguments = l.typeArguments(field(n, "type_arguments"))
		out.Arguments = l.nodes(namedChildren(field(n, "arguments")))
		return out
	case "member_expression":
		out := l.base(n, ast.KindMemberExpression)
		out.Object = l.node(field(n, "object"))
		out.Property = l.node(field(n, "property"))
		out.Optional = field(n, "optional_chain") != nil
		return out
	case "subscript_expression":
		out := l.base(n, ast.KindMemberExpression)
		out.Object = l.node(field(n, "object"))
		out.Property = l.node(field(n, "index"))
		out.Computed = true
		out.Optional = field(n, "optional_chain") != nil
		return out
	case "arrow_function":
		return l.function(n, ast.KindArrowFunctionExpression)
	case "function_expression", "function", "generator_function":
		return l.function(n, ast.KindFunctionExpression)
	case "class":
		out := l.base(n, ast.KindClassExpression)
		out.ID = l.node(field(n, "name"))
		return out
	case "parenthesized_expression":
		return l.node(firstNamed(n))
	case "as_expression", "satisfies_expression":
		typ := ast.KindTSAsExpression
		if n.Kind() == "satisfies_expression" {
			typ = ast.KindTSSatisfiesExpression
		}
		out := l.base(n, typ)
		cs := namedChildren(n)
		if len(cs) > 0 {
			out.Expression = l.node(cs[0])
		}
		if len(cs) > 1 {
			out.TypeAnnotation = l.typ(cs[1])
		}
		return out
	case "non_null_expression":
		out := l.base(n, ast.KindTSNonNullExpression)
		out.Expression = l.node(firstNamed(n))
		return out
	case "type_assertion":
		out := l.base(n, ast.KindTSTypeAssertion)
		for _, c := range namedChildren(n) {
			if c.Kind() == "type_arguments" {
				if args := l.typeArguments(c); args != nil && len(args.Params) > 0 {
					out.TypeAnnotation = args.Params[0]
				}
				continue
			}
			out.Expression = l.node(c)
		}
		return out
	case "instantiation_expression":
		out := l.base(n, ast.KindTSInstantiationExpression)
		out.Expression = l.node(field(n, "function"))
		if out.Expression == nil {
			out.Expression = l.node(firstNamed(n))
		}
		out.TypeArguments = l.typeArguments(field(n, "type_arguments"))
		return out
	case "unary_expression":
		out := l.base(n, ast.KindUnaryExpression)
		out.Operator = l.text(field(n, "operator"))
		out.Argument = l.node(field(n, "argument"))
		out.Prefix = true
		return out
	case "binary_expression":
		out := l.base(n, kindBinaryExpression)
		out.Operator = l.text(field(n, "operator"))
		switch out.Operator {
		case "&&", "||", "??":
			out.Type = kindLogicalExpression
		}
		out.Left = l.node(field(n, "left"))
		out.Right = l.node(field(n, "right"))
		return out
	case "assignment_expression", "augmented_assignment_expression":
		out := l.base(n, kindAssignmentExpression)
		out.Operator = "="
		if op := field(n, "operator"); op != nil {
			out.Operator = l.text(op)
		}
		out.Left = l.pattern(field(n, "left"))
		out.Right = l.node(field(n, "right"))
		return out
	case "ternary_expression":
		out := l.base(n, kindConditionalExpression)
		out.Test = l.node(field(n, "condition"))
		out.Consequent = l.node(field(n, "consequence"))
		out.Alternate = l.node(field(n, "alternative"))
		return out
	case "update_expression":
		out := l.base(n, kindUpdateExpression)
		out.Operator = l.text(field(n, "operator"))
		out.Argument = l.node(field(n, "argument"))
		return out
	case "await_expression":
		out := l.base(n, kindAwaitExpression)
		out.Argument = l.node(firstNamed(n))
		return out
	case "yield_expression":
		out := l.base(n, kindYieldExpression)
		out.Argument = l.node(firstNamed(n))
		return out
	case "sequence_expression":
		out := l.base(n, kindSequenceExpression)
		l.flattenSequence(n, out)
		return out
	case "spread_element":
		out := l.base(n, ast.KindSpreadElement)
		out.Argument = l.node(firstNamed(n))
		return out
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return l.base(n, kindJSXElement)
	}
	return l.base(n, kindUnknown)
}

var loopKinds = map[string]string{
	"for_statement":    ast.KindForStatement,
	"for_in_statement": ast.KindForInStatement,
	"while_statement":  ast.KindWhileStatement,
	"do_statement":     ast.KindDoWhileStatement,
}

func (l *lowerer) identifier(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	out := l.base(n, ast.KindIdentifier)
	out.Name = l.text(n)
	return out
}

func (l *lowerer) flattenSequence(n *sitter.Node, out *ast.Node) {
	for _, c := range namedChildren(n) {
		if c.Kind() == "sequence_expression" {
			l.flattenSequence(c, out)
			continue
		}
		out.Expressions = append(out.Expressions, l.node(c))
	}
}

func (l *lowerer) switchCase(n *sitter.Node) *ast.Node {
	out := l.base(n, ast.KindSwitchCase)
	cs := namedChildren(n)
	if n.Kind() == "switch_case" && len(cs) > 0 {
		out.Test = l.node(cs[0])
		cs = cs[1:]
	}
	out.Statements = l.nodes(cs)
	return out
}

func (l *lowerer) declarator(n *sitter.Node) *ast.Node {
	out := l.base(n, ast.KindVariableDeclarator)
	out.ID = l.pattern(field(n, "name"))
	if out.ID != nil {
		out.ID.TypeAnnotation = l.typ(field(n, "type"))
	}
	out.Init = l.node(field(n, "value"))
	return out
}

func (l *lowerer) export(n *sitter.Node) *ast.Node {
	if decl := field(n, "declaration"); decl != nil {
		typ := ast.KindExportNamedDeclaration
		if hasToken(n, "default") {
			typ = ast.KindExportDefaultDeclaration
		}
		out := l.base(n, typ)
		out.Declaration = l.node(decl)
		return out
	}
	if value := field(n, "value"); value != nil {
		out := l.base(n, ast.KindExportDefaultDeclaration)
		out.Declaration = l.node(value)
		return out
	}
	return l.base(n, ast.KindExportNamedDeclaration)
}

func (l *lowerer) function(n *sitter.Node, typ string) *ast.Node {
	out := l.base(n, typ)
	out.ID = l.node(field(n, "name"))
	out.Async = hasToken(n, "async")
	out.Generator = hasToken(n, "*")
	out.TypeParameters = l.typeParameters(field(n, "type_parameters"))
	out.ReturnType = l.typ(field(n, "return_type"))
	if p := field(n, "parameter"); p != nil {
		out.Params = []*ast.Node{l.pattern(p)}
	} else {
		out.Params = l.params(field(n, "parameters"))
	}
	if body := field(n, "body"); body != nil {
		out.Body = l.node(body)
		out.ExpressionBody = body.Kind() != "statement_block"
	}
	return out
}

// params lowers formal_parameters.
func (l *lowerer) params(n *sitter.Node) []*ast.Node {
	var out []*ast.Node
	for _, c := range namedChildren(n) {
		switch c.Kind() {
		case "required_parameter", "optional_parameter":
			p := l.pattern(field(c, "pattern"))
			if p == nil {
				continue
			}
			p.TypeAnnotation = l.typ(field(c, "type"))
			p.Optional = c.Kind() == "optional_parameter"
			if v := field(c, "value"); v != nil {
				ap := l.base(c, ast.KindAssignmentPattern)
				ap.Left = p
				ap.Right = l.node(v)
				p = ap
			}
			out = append(out, p)
		case "decorator":
		default:
			out = append(out, l.pattern(c))
		}
	}
	return out
}

// pattern lowers a binding or assignment target.
func (l *lowerer) pattern(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case "object_pattern":
		out := l.base(n, ast.KindObjectPattern)
		for _, c := range namedChildren(n) {
			out.Properties = append(out.Properties, l.patternProperty(c))
		}
		return out
	case "array_pattern":
		out := l.base(n, ast.KindArrayPattern)
		out.Elements = l.elements(n, l.pattern)
		return out
	case "assignment_pattern":
		out := l.base(n, ast.KindAssignmentPattern)
		out.Left = l.pattern(field(n, "left"))
		out.Right = l.node(field(n, "right"))
		return out
	case "rest_pattern":
		out := l.base(n, ast.KindRestElement)
		out.Argument = l.pattern(firstNamed(n))
		return out
	}
	return l.node(n)
}

func (l *lowerer) patternProperty(n *sitter.Node) *ast.Node {
	switch n.Kind() {
	case "pair_pattern":
		out := l.base(n, ast.KindProperty)
		out.Kind = "init"
		out.Key, out.Computed = l.propertyKey(field(n, "key"))
		out.Value = l.pattern(field(n, "value"))
		return out
	case "shorthand_property_identifier_pattern":
		out := l.base(n, ast.KindProperty)
		out.Kind = "init"
		out.Shorthand = true
		out.Key = l.identifier(n)
		out.Value = l.identifier(n)
		return out
	case "object_assignment_pattern":
		out := l.base(n, ast.KindProperty)
		out.Kind = "init"
		out.Shorthand = true
		left := field(n, "left")
		out.Key = l.pattern(left)
		value := l.base(n, ast.KindAssignmentPattern)
		value.Left = l.pattern(left)
		value.Right = l.node(field(n, "right"))
		out.Value = value
		return out
	}
	return l.pattern(n)
}

// elements lowers the items of an array literal or pattern, keeping holes
// as nil entries.
func (l *lowerer) elements(n *sitter.Node, lower func(*sitter.Node) *ast.Node) []*ast.Node {
	out := []*ast.Node{}
	expect := true
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		switch {
		case !c.IsNamed() && c.Kind() == ",":
			if expect {
				out = append(out, nil)
			}
			expect = true
		case c.IsNamed() && !isComment(c):
			out = append(out, lower(c))
			expect = false
		}
	}
	return out
}

func (l *lowerer) object(n *sitter.Node) *ast.Node {
	out := l.base(n, ast.KindObjectExpression)
	for _, c := range namedChildren(n) {
		switch c.Kind() {
		case "pair":
			p := l.base(c, ast.KindProperty)
			p.Kind = "init"
			p.Key, p.Computed = l.propertyKey(field(c, "key"))
			p.Value = l.node(field(c, "value"))
			out.Properties = append(out.Properties, p)
		case "shorthand_property_identifier":
			p := l.base(c, ast.KindProperty)
			p.Kind = "init"
			p.Shorthand = true
			p.Key = l.identifier(c)
			p.Value = l.identifier(c)
			out.Properties = append(out.Properties, p)
		case "method_definition":
			p := l.base(c, ast.KindProperty)
			p.Kind = "init"
			switch {
			case hasToken(c, "get"):
				p.Kind = "get"
			case hasToken(c, "set"):
				p.Kind = "set"
			default:
				p.Method = true
			}
			p.Key, p.Computed = l.propertyKey(field(c, "name"))
			fn := l.function(c, ast.KindFunctionExpression)
			fn.ID = nil
			p.Value = fn
			out.Properties = append(out.Properties, p)
		case "spread_element":
			out.Properties = append(out.Properties, l.node(c))
		}
	}
	return out
}

// propertyKey lowers an object key, unwrapping computed keys.
func (l *lowerer) propertyKey(n *sitter.Node) (*ast.Node, bool) {
	if n == nil {
		return nil, false
	}
	if n.Kind() == "computed_property_name" {
		return l.node(firstNamed(n)), true
	}
	return l.node(n), false
}

func (l *lowerer) call(n *sitter.Node) *ast.Node {
	args := field(n, "arguments")
	if args != nil && args.Kind() == "template_string" {
		out := l.base(n, kindTaggedTemplateExpression)
		out.Callee = l.node(field(n, "function"))
		out.Expression = l.template(args)
		return out
	}
	out := l.base(n, ast.KindCallExpression)
	out.Callee = l.node(field(n, "function"))
	out.TypeArguments = l.typeArguments(field(n, "type_arguments"))
	out.Arguments = l.nodes(namedChildren(args))
	out.Optional = field(n, "optional_chain") != nil
	return out
}

func (l *lowerer) stringLiteral(n *sitter.Node) *ast.Node {
	out := l.base(n, ast.KindLiteral)
	out.Raw = l.text(n)
	var sb strings.Builder
	for _, c := range namedChildren(n) {
		switch c.Kind() {
		case "escape_sequence":
			sb.WriteString(unescape(l.text(c)))
		default:
			sb.WriteString(l.text(c))
		}
	}
	out.LiteralValue = sb.String()
	return out
}

// template lowers a template string into quasis interleaved with the
// substituted expressions.
func (l *lowerer) template(n *sitter.Node) *ast.Node {
	out := l.base(n, ast.KindTemplateLiteral)
	start := int(n.StartByte()) + 1
	quasi := func(end int, tail bool) {
		if end < start {
			end = start
		}
		raw := string(l.src[start:end])
		out.Quasis = append(out.Quasis, &ast.Node{
			Type:   ast.KindTemplateElement,
			Range:  ast.Range{start, end},
			Loc:    out.Loc,
			Raw:    raw,
			Cooked: cook(raw),
			Tail:   tail,
		})
	}
	for _, c := range namedChildren(n) {
		if c.Kind() != "template_substitution" {
			continue
		}
		quasi(int(c.StartByte()), false)
		out.Expressions = append(out.Expressions, l.node(firstNamed(c)))
		start = int(c.EndByte())
	}
	quasi(int(n.EndByte())-1, true)
	return out
}
