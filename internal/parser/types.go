package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/proplint/proplint/internal/ast"
)

var predefinedTypes = map[string]string{
	"string":    ast.KindTSStringKeyword,
	"number":    ast.KindTSNumberKeyword,
	"boolean":   ast.KindTSBooleanKeyword,
	"bigint":    ast.KindTSBigIntKeyword,
	"symbol":    ast.KindTSSymbolKeyword,
	"object":    ast.KindTSObjectKeyword,
	"any":       ast.KindTSAnyKeyword,
	"unknown":   ast.KindTSUnknownKeyword,
	"void":      ast.KindTSVoidKeyword,
	"never":     ast.KindTSNeverKeyword,
	"undefined": ast.KindTSUndefinedKeyword,
	"null":      ast.KindTSNullKeyword,
}

// typ lowers a node of the type language.
func (l *lowerer) typ(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case "type_annotation", "opting_type_annotation", "omitting_type_annotation":
		out := l.base(n, ast.KindTSTypeAnnotation)
		out.TypeAnnotation = l.typ(firstNamed(n))
		return out
	case "parenthesized_type":
		return l.typ(firstNamed(n))
	case "predefined_type":
		text := l.text(n)
		if kind, ok := predefinedTypes[text]; ok {
			return l.base(n, kind)
		}
		if text == "unique symbol" {
			out := l.base(n, ast.KindTSTypeOperator)
			out.Operator = "unique"
			out.TypeAnnotation = l.base(n, ast.KindTSSymbolKeyword)
			return out
		}
		return l.base(n, kindUnknown)
	case "type_identifier", "nested_type_identifier":
		out := l.base(n, ast.KindTSTypeReference)
		out.TypeName = l.entityName(n)
		return out
	case "generic_type":
		out := l.base(n, ast.KindTSTypeReference)
		out.TypeName = l.entityName(field(n, "name"))
		out.TypeArguments = l.typeArguments(field(n, "type_arguments"))
		return out
	case "literal_type":
		lit := firstNamed(n)
		if lit != nil {
			switch lit.Kind() {
			case "null":
				return l.base(n, ast.KindTSNullKeyword)
			case "undefined":
				return l.base(n, ast.KindTSUndefinedKeyword)
			}
		}
		out := l.base(n, ast.KindTSLiteralType)
		out.Literal = l.node(lit)
		return out
	case "template_literal_type":
		return l.base(n, ast.KindTSTemplateLiteralType)
	case "object_type", "interface_body":
		return l.objectType(n)
	case "array_type":
		out := l.base(n, ast.KindTSArrayType)
		out.ElementType = l.typ(firstNamed(n))
		return out
	case "tuple_type":
		out := l.base(n, ast.KindTSTupleType)
		for _, c := range namedChildren(n) {
			out.ElementTypes = append(out.ElementTypes, l.tupleElement(c))
		}
		return out
	case "optional_type", "rest_type":
		typ := ast.KindTSOptionalType
		if n.Kind() == "rest_type" {
			typ = ast.KindTSRestType
		}
		out := l.base(n, typ)
		out.TypeAnnotation = l.typ(firstNamed(n))
		return out
	case "union_type", "intersection_type":
		typ := ast.KindTSUnionType
		if n.Kind() == "intersection_type" {
			typ = ast.KindTSIntersectionType
		}
		out := l.base(n, typ)
		l.flattenTypes(n, n.Kind(), out)
		return out
	case "function_type":
		out := l.base(n, ast.KindTSFunctionType)
		out.Params = l.params(field(n, "parameters"))
		out.ReturnType = l.typ(field(n, "return_type"))
		return out
	case "constructor_type":
		out := l.base(n, ast.KindTSConstructorType)
		out.Params = l.params(field(n, "parameters"))
		out.ReturnType = l.typ(field(n, "type"))
		return out
	case "readonly_type", "index_type_query":
		out := l.base(n, ast.KindTSTypeOperator)
		out.Operator = "readonly"
		if n.Kind() == "index_type_query" {
			out.Operator = "keyof"
		}
		out.TypeAnnotation = l.typ(firstNamed(n))
		return out
	case "type_query":
		return l.base(n, ast.KindTSTypeQuery)
	case "lookup_type":
		return l.base(n, ast.KindTSIndexedAccessType)
	case "conditional_type":
		return l.base(n, ast.KindTSConditionalType)
	}
	return l.base(n, kindUnknown)
}

func (l *lowerer) flattenTypes(n *sitter.Node, kind string, out *ast.Node) {
	for _, c := range namedChildren(n) {
		if c.Kind() == kind {
			l.flattenTypes(c, kind, out)
			continue
		}
		out.Types = append(out.Types, l.typ(c))
	}
}

func (l *lowerer) tupleElement(n *sitter.Node) *ast.Node {
	switch n.Kind() {
	case "tuple_parameter", "optional_tuple_parameter", "required_parameter", "optional_parameter":
		out := l.base(n, ast.KindTSNamedTupleMember)
		name := field(n, "name")
		if name == nil {
			name = field(n, "pattern")
		}
		out.Label = l.identifier(name)
		out.ElementType = l.typ(field(n, "type"))
		out.Optional = n.Kind() == "optional_tuple_parameter" || n.Kind() == "optional_parameter"
		return out
	}
	return l.typ(n)
}

// entityName lowers a possibly dotted type name into an Identifier or a
// TSQualifiedName chain.
func (l *lowerer) entityName(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case "nested_type_identifier", "nested_identifier", "member_expression":
		cs := namedChildren(n)
		if len(cs) < 2 {
			return l.identifier(n)
		}
		out := l.base(n, ast.KindTSQualifiedName)
		out.Left = l.entityName(cs[0])
		out.Right = l.entityName(cs[len(cs)-1])
		return out
	}
	return l.identifier(n)
}

func (l *lowerer) typeArguments(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	out := l.base(n, ast.KindTSTypeParameterInstantiation)
	for _, c := range namedChildren(n) {
		out.Params = append(out.Params, l.typ(c))
	}
	return out
}

func (l *lowerer) typeParameters(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	out := l.base(n, ast.KindTSTypeParameterDeclaration)
	for _, c := range namedChildren(n) {
		if c.Kind() != "type_parameter" {
			continue
		}
		p := l.base(c, ast.KindTSTypeParameter)
		p.Name = l.text(field(c, "name"))
		if cons := field(c, "constraint"); cons != nil {
			p.Constraint = l.typ(firstNamed(cons))
		}
		out.Params = append(out.Params, p)
	}
	return out
}

// objectType lowers an object type literal or interface body.
func (l *lowerer) objectType(n *sitter.Node) *ast.Node {
	var members []*ast.Node
	for _, c := range namedChildren(n) {
		if c.Kind() == "index_signature" && field(c, "sign") == nil && hasMappedClause(c) {
			return l.base(n, ast.KindTSMappedType)
		}
		members = append(members, l.typeMember(c))
	}
	typ := ast.KindTSTypeLiteral
	if n.Kind() == "interface_body" {
		typ = ast.KindTSInterfaceBody
	}
	out := l.base(n, typ)
	if typ == ast.KindTSInterfaceBody {
		out.Statements = members
	} else {
		out.Members = members
	}
	return out
}

func hasMappedClause(n *sitter.Node) bool {
	for _, c := range namedChildren(n) {
		if c.Kind() == "mapped_type_clause" {
			return true
		}
	}
	return false
}

func (l *lowerer) typeMember(n *sitter.Node) *ast.Node {
	switch n.Kind() {
	case "property_signature":
		out := l.base(n, ast.KindTSPropertySignature)
		out.Key, out.Computed = l.propertyKey(field(n, "name"))
		out.Optional = hasToken(n, "?")
		out.TypeAnnotation = l.typ(field(n, "type"))
		return out
	case "method_signature":
		out := l.base(n, ast.KindTSMethodSignature)
		out.Key, out.Computed = l.propertyKey(field(n, "name"))
		out.Optional = hasToken(n, "?")
		out.Params = l.params(field(n, "parameters"))
		out.ReturnType = l.typ(field(n, "return_type"))
		return out
	case "call_signature":
		out := l.base(n, ast.KindTSCallSignatureDeclaration)
		out.Params = l.params(field(n, "parameters"))
		out.ReturnType = l.typ(field(n, "return_type"))
		return out
	case "construct_signature":
		out := l.base(n, ast.KindTSConstructSignatureDeclaration)
		out.Params = l.params(field(n, "parameters"))
		out.ReturnType = l.typ(field(n, "type"))
		return out
	case "index_signature":
		return l.base(n, ast.KindTSIndexSignature)
	}
	return l.base(n, kindUnknown)
}

// typeDeclaration lowers type alias, interface and enum declarations.
func (l *lowerer) typeDeclaration(n *sitter.Node) *ast.Node {
	switch n.Kind() {
	case "type_alias_declaration":
		out := l.base(n, ast.KindTSTypeAliasDeclaration)
		out.ID = l.identifier(field(n, "name"))
		out.TypeParameters = l.typeParameters(field(n, "type_parameters"))
		out.TypeAnnotation = l.typ(field(n, "value"))
		return out
	case "interface_declaration":
		out := l.base(n, ast.KindTSInterfaceDeclaration)
		out.ID = l.identifier(field(n, "name"))
		out.TypeParameters = l.typeParameters(field(n, "type_parameters"))
		if body := field(n, "body"); body != nil {
			lowered := l.objectType(body)
			iface := l.base(body, ast.KindTSInterfaceBody)
			iface.Statements = lowered.Statements
			if lowered.Type == ast.KindTSTypeLiteral {
				iface.Statements = lowered.Members
			}
			out.Body = iface
		}
		for _, c := range namedChildren(n) {
			if c.Kind() == "extends_type_clause" {
				out.Extends = append(out.Extends, l.heritage(c)...)
			}
		}
		return out
	case "enum_declaration":
		out := l.base(n, ast.KindTSEnumDeclaration)
		out.ID = l.identifier(field(n, "name"))
		for _, c := range namedChildren(field(n, "body")) {
			m := l.base(c, ast.KindTSEnumMember)
			if c.Kind() == "enum_assignment" {
				m.ID = l.node(field(c, "name"))
				m.Init = l.node(field(c, "value"))
			} else {
				m.ID = l.node(c)
			}
			out.Members = append(out.Members, m)
		}
		return out
	}
	return l.base(n, kindUnknown)
}

func (l *lowerer) heritage(clause *sitter.Node) []*ast.Node {
	var out []*ast.Node
	for _, c := range namedChildren(clause) {
		h := l.base(c, ast.KindTSInterfaceHeritage)
		if c.Kind() == "generic_type" {
			h.Expression = l.entityName(field(c, "name"))
			h.TypeArguments = l.typeArguments(field(c, "type_arguments"))
		} else {
			h.Expression = l.entityName(c)
		}
		out = append(out, h)
	}
	return out
}
