package props

import "github.com/proplint/proplint/internal/ast"

// maxTypeDepth bounds alias resolution so that cyclic or very deep aliases
// degrade to an indeterminate result instead of recursing forever.
const maxTypeDepth = 16

// mapping is the outcome of mapping a type to tags. Indeterminate is set when
// some part of the type could not be classified; callers never report on an
// indeterminate mapping.
type mapping struct {
	Tags          TypeSet
	Indeterminate bool
}

var indeterminate = mapping{Indeterminate: true}

func tags(t ...TypeTag) mapping {
	return mapping{Tags: NewTypeSet(t...)}
}

func (m mapping) union(o mapping) mapping {
	return mapping{
		Tags:          m.Tags.Union(o.Tags),
		Indeterminate: m.Indeterminate || o.Indeterminate,
	}
}

// RuntimeType maps a runtime type expression (the value of a descriptor's
// `type` field, or a bare prop value) to tags. An identifier maps through
// TagForConstructor; an array maps to the union of its identifier members
// with holes ignored. Anything else is indeterminate.
func RuntimeType(expr *ast.Node) (TypeSet, bool) {
	m := runtimeType(expr)
	return m.Tags, !m.Indeterminate
}

func runtimeType(expr *ast.Node) mapping {
	expr = ast.Unwrap(expr)
	switch {
	case expr.Is(ast.KindIdentifier):
		return tags(TagForConstructor(expr.Name))
	case expr.Is(ast.KindArrayExpression):
		var m mapping
		for _, el := range expr.Elements {
			if el == nil {
				continue
			}
			if el = ast.Unwrap(el); el.Is(ast.KindIdentifier) {
				m = m.union(tags(TagForConstructor(el.Name)))
			} else {
				m.Indeterminate = true
			}
		}
		return m
	}
	return indeterminate
}

// typeEnv binds generic type parameter names to the type arguments of the
// reference that instantiated an alias.
type typeEnv struct {
	names  map[string]*ast.Node
	parent *typeEnv
}

func (e *typeEnv) lookup(name string) (*ast.Node, *typeEnv, bool) {
	for env := e; env != nil; env = env.parent {
		if n, ok := env.names[name]; ok {
			return n, env.parent, true
		}
	}
	return nil, nil, false
}

// typeMapper maps static annotation nodes to tags, resolving named types
// through an optional oracle.
type typeMapper struct {
	oracle TypeOracle
}

// StaticType maps a node of the static annotation language to tags. The
// second result is false when the type is indeterminate.
func StaticType(n *ast.Node, oracle TypeOracle) (TypeSet, bool) {
	m := typeMapper{oracle: oracle}.static(n, nil, 0)
	return m.Tags, !m.Indeterminate
}

func (tm typeMapper) static(n *ast.Node, env *typeEnv, depth int) mapping {
	if n == nil || depth > maxTypeDepth {
		return indeterminate
	}
	switch n.Type {
	case ast.KindTSTypeAnnotation, ast.KindTSParenthesizedType, ast.KindTSOptionalType:
		return tm.static(n.TypeAnnotation, env, depth)
	case ast.KindTSNamedTupleMember:
		return tm.static(n.ElementType, env, depth)
	case ast.KindTSStringKeyword, ast.KindTSTemplateLiteralType:
		return tags(String)
	case ast.KindTSNumberKeyword:
		return tags(Number)
	case ast.KindTSBooleanKeyword:
		return tags(Boolean)
	case ast.KindTSBigIntKeyword:
		return tags(BigInt)
	case ast.KindTSSymbolKeyword:
		return tags(Symbol)
	case ast.KindTSObjectKeyword, ast.KindTSMappedType:
		return tags(Object)
	case ast.KindTSNullKeyword, ast.KindTSUndefinedKeyword, ast.KindTSVoidKeyword, ast.KindTSNeverKeyword:
		return mapping{}
	case ast.KindTSArrayType, ast.KindTSTupleType:
		return tags(Array)
	case ast.KindTSFunctionType, ast.KindTSConstructorType:
		return tags(Function)
	case ast.KindTSLiteralType:
		return literalType(n.Literal)
	case ast.KindTSTypeLiteral:
		return objectLike(n.Members)
	case ast.KindTSInterfaceDeclaration:
		if n.Body == nil {
			return tags(Object)
		}
		return objectLike(n.Body.Statements)
	case ast.KindTSUnionType, ast.KindTSIntersectionType:
		var m mapping
		for _, member := range n.Types {
			m = m.union(tm.static(member, env, depth))
		}
		return m
	case ast.KindTSTypeOperator:
		switch n.Operator {
		case "readonly":
			return tm.static(n.TypeAnnotation, env, depth)
		case "unique":
			return tags(Symbol)
		}
		return indeterminate
	case ast.KindTSTypeAliasDeclaration:
		return tm.static(n.TypeAnnotation, env, depth)
	case ast.KindTSEnumDeclaration:
		return enumType(n)
	case ast.KindTSTypeReference:
		return tm.reference(n, env, depth)
	}
	return indeterminate
}

func literalType(lit *ast.Node) mapping {
	switch {
	case lit.Is(ast.KindTemplateLiteral):
		return tags(String)
	case lit.Is(ast.KindUnaryExpression):
		return literalType(lit.Argument)
	case lit.Is(ast.KindLiteral):
		if lit.Bigint != "" {
			return tags(BigInt)
		}
		switch lit.LiteralValue.(type) {
		case string:
			return tags(String)
		case float64, int:
			return tags(Number)
		case bool:
			return tags(Boolean)
		case nil:
			return mapping{}
		}
	}
	return indeterminate
}

// objectLike classifies an object type by its members: a body made only of
// call or construct signatures describes a function.
func objectLike(members []*ast.Node) mapping {
	callable := len(members) > 0
	for _, m := range members {
		if !m.Is(ast.KindTSCallSignatureDeclaration, ast.KindTSConstructSignatureDeclaration) {
			callable = false
			break
		}
	}
	if callable {
		return tags(Function)
	}
	return tags(Object)
}

// enumType maps an enum to number, string or both depending on its member
// initializers. Members without an initializer are numeric.
func enumType(decl *ast.Node) mapping {
	members := decl.Members
	if decl.Body != nil && len(members) == 0 {
		members = decl.Body.Members
	}
	if len(members) == 0 {
		return tags(Number)
	}
	var m mapping
	for _, member := range members {
		init := ast.Unwrap(member.Init)
		switch {
		case init == nil:
			m = m.union(tags(Number))
		case init.Is(ast.KindLiteral, ast.KindTemplateLiteral, ast.KindUnaryExpression):
			m = m.union(literalType(init))
		default:
			m.Indeterminate = true
		}
	}
	return m
}

// utilityTypes are global generic types whose runtime shape is fixed.
var utilityTypes = map[string]TypeTag{
	"Record":        Object,
	"Partial":       Object,
	"Required":      Object,
	"Readonly":      Object,
	"Pick":          Object,
	"Omit":          Object,
	"InstanceType":  Object,
	"ReadonlyArray": Array,
	"Uppercase":     String,
	"Lowercase":     String,
	"Capitalize":    String,
	"Uncapitalize":  String,
}

// globalClasses are well-known global classes that map to custom tags.
var globalClasses = map[string]bool{
	"Date": true, "RegExp": true, "Map": true, "Set": true, "WeakMap": true,
	"WeakSet": true, "Promise": true, "Error": true,
}

func (tm typeMapper) reference(ref *ast.Node, env *typeEnv, depth int) mapping {
	name := typeName(ref.TypeName)
	if name == "" {
		return indeterminate
	}
	args := ref.TypeArgs()

	if bound, outer, ok := env.lookup(name); ok {
		return tm.static(bound, outer, depth+1)
	}

	if tm.oracle != nil {
		if decl, ok := tm.oracle.Resolve(name); ok {
			return tm.static(decl, bindParams(decl, args, env), depth+1)
		}
	}

	if t, ok := nativeConstructors[name]; ok {
		return tags(t)
	}
	if t, ok := utilityTypes[name]; ok {
		return tags(t)
	}
	if name == "NonNullable" && len(args) == 1 {
		return tm.static(args[0], env, depth+1)
	}
	if globalClasses[name] {
		return tags(Custom(name))
	}
	return indeterminate
}

// bindParams maps the type parameters of a generic alias to the arguments of
// the instantiating reference. Parameters without an argument stay unbound.
func bindParams(decl *ast.Node, args []*ast.Node, env *typeEnv) *typeEnv {
	if decl.TypeParameters == nil || len(args) == 0 {
		return nil
	}
	child := &typeEnv{names: make(map[string]*ast.Node), parent: env}
	for i, p := range decl.TypeParameters.Params {
		if i >= len(args) {
			break
		}
		child.names[p.Name] = args[i]
	}
	return child
}

// typeName renders an entity name (Identifier or TSQualifiedName).
func typeName(n *ast.Node) string {
	switch {
	case n.Is(ast.KindIdentifier):
		return n.Name
	case n.Is(ast.KindTSQualifiedName):
		left := typeName(n.Left)
		right := typeName(n.Right)
		if left == "" || right == "" {
			return ""
		}
		return left + "." + right
	}
	return ""
}
