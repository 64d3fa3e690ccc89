package props

import "github.com/proplint/proplint/internal/ast"

// Site is one raw prop declaration found by the locator.
type Site struct {
	Shape Shape
	// Key is the name expression: an array element, a property or signature
	// key, or a model name argument (nil for an unnamed model).
	Key      *ast.Node
	Computed bool
	// Value is the runtime declaration: the value of an object-of-descriptors
	// entry or the options object of a model macro.
	Value *ast.Node
	// Type is the static type of a typed entry.
	Type *ast.Node
	// Node is where specificity diagnostics point.
	Node *ast.Node
}

// NamedDefault is a default value attached to a prop by name, either by a
// defaults-merge wrapper or by a destructuring pattern.
type NamedDefault struct {
	Name string
	Default
}

// Declaration is everything the locator found in one component description.
type Declaration struct {
	Sites    []Site
	Defaults []NamedDefault
}

func (d *Declaration) merge(o Declaration) {
	d.Sites = append(d.Sites, o.Sites...)
	d.Defaults = append(d.Defaults, o.Defaults...)
}

type locator struct {
	opts Options
}

// Locate finds the prop declaration sites of a component description. The
// description may be a component options object, a program (whose top-level
// statements are scanned for prop macros), a macro call, or a variable
// declarator whose initializer is a macro call.
func Locate(desc *ast.Node, opts Options) Declaration {
	l := &locator{opts: opts}
	return l.description(desc)
}

func (l *locator) description(desc *ast.Node) Declaration {
	desc = ast.Unwrap(desc)
	switch {
	case desc.Is(ast.KindObjectExpression):
		if p := ast.FindProperty(desc, "props"); p != nil && !p.Method {
			return l.runtime(p.Value)
		}
	case desc.Is(ast.KindProgram):
		var d Declaration
		for _, stmt := range desc.Statements {
			d.merge(l.statement(stmt))
		}
		return d
	case desc.Is(ast.KindCallExpression):
		return l.call(desc)
	case desc.Is(ast.KindVariableDeclarator):
		return l.declarator(desc)
	case desc.Is(ast.KindVariableDeclaration, ast.KindExpressionStatement, ast.KindExportNamedDeclaration):
		return l.statement(desc)
	}
	return Declaration{}
}

func (l *locator) statement(stmt *ast.Node) Declaration {
	switch {
	case stmt.Is(ast.KindExpressionStatement):
		if call := ast.Unwrap(stmt.Expression); call.Is(ast.KindCallExpression) {
			return l.call(call)
		}
	case stmt.Is(ast.KindVariableDeclaration):
		var d Declaration
		for _, decl := range stmt.Declarations {
			d.merge(l.declarator(decl))
		}
		return d
	case stmt.Is(ast.KindExportNamedDeclaration):
		return l.statement(stmt.Declaration)
	}
	return Declaration{}
}

func (l *locator) declarator(decl *ast.Node) Declaration {
	init := ast.Unwrap(decl.Init)
	if !init.Is(ast.KindCallExpression) {
		return Declaration{}
	}
	mc, ok := l.classify(init)
	if !ok || mc.Kind == MacroModel {
		return l.call(init)
	}
	d := l.macro(mc)
	if decl.ID.Is(ast.KindObjectPattern) {
		d.Defaults = append(d.Defaults, l.patternDefaults(decl.ID)...)
	}
	return d
}

func (l *locator) classify(call *ast.Node) (MacroCall, bool) {
	if l.opts.Resolver == nil || call == nil {
		return MacroCall{}, false
	}
	return l.opts.Resolver.Classify(call)
}

func (l *locator) call(call *ast.Node) Declaration {
	mc, ok := l.classify(call)
	if !ok {
		return Declaration{}
	}
	return l.macro(mc)
}

func (l *locator) macro(mc MacroCall) Declaration {
	switch mc.Kind {
	case MacroProps:
		if mc.TypeArg != nil {
			return Declaration{Sites: l.typed(mc.TypeArg)}
		}
		return l.runtime(mc.Arg)
	case MacroWithDefaults:
		inner, ok := l.classify(ast.Unwrap(mc.Inner))
		if !ok || inner.Kind != MacroProps {
			return Declaration{}
		}
		d := l.macro(inner)
		d.Defaults = append(d.Defaults, l.objectDefaults(mc.Defaults)...)
		return d
	case MacroModel:
		// The argument is an options object or a bare runtime type.
		site := Site{Key: mc.ModelName, Node: mc.Node, Value: mc.Arg, Shape: ShapeObjectOfDescriptors}
		if mc.TypeArg != nil {
			site.Shape = ShapeTypedMacroArgument
			site.Type = mc.TypeArg
		}
		return Declaration{Sites: []Site{site}}
	}
	return Declaration{}
}

// runtime locates props declared with a runtime value: an array of names or
// an object of descriptors. Any other value (an identifier, a call) refers to
// a prop list defined elsewhere and yields nothing.
func (l *locator) runtime(value *ast.Node) Declaration {
	value = ast.Unwrap(value)
	var d Declaration
	switch {
	case value.Is(ast.KindArrayExpression):
		for _, el := range value.Elements {
			if el == nil {
				continue
			}
			d.Sites = append(d.Sites, Site{Shape: ShapeArrayOfNames, Key: el, Node: el})
		}
	case value.Is(ast.KindObjectExpression):
		for _, p := range value.Properties {
			if !p.Is(ast.KindProperty) {
				continue
			}
			d.Sites = append(d.Sites, Site{
				Shape:    ShapeObjectOfDescriptors,
				Key:      p.Key,
				Computed: p.Computed,
				Value:    p.Value,
				Node:     p,
			})
		}
	}
	return d
}

// typed locates the members of a type-argument object type.
func (l *locator) typed(typeArg *ast.Node) []Site {
	var sites []Site
	index := make(map[string]int)
	for _, m := range l.typeMembers(typeArg, 0) {
		var typ *ast.Node
		switch m.Type {
		case ast.KindTSPropertySignature:
			typ = m.TypeAnnotation
		case ast.KindTSMethodSignature:
			typ = m
		default:
			continue
		}
		site := Site{Shape: ShapeTypedMacroArgument, Key: m.Key, Computed: m.Computed, Type: typ, Node: m}
		name := resolveStaticName(l.opts.File, m.Key, m.Computed)
		if i, ok := index[name]; ok {
			sites[i] = site
			continue
		}
		index[name] = len(sites)
		sites = append(sites, site)
	}
	return sites
}

// typeMembers flattens an object type description into its members,
// resolving named types through the oracle. Unresolvable parts contribute
// nothing.
func (l *locator) typeMembers(n *ast.Node, depth int) []*ast.Node {
	if n == nil || depth > maxTypeDepth {
		return nil
	}
	switch n.Type {
	case ast.KindTSTypeLiteral:
		return n.Members
	case ast.KindTSInterfaceBody:
		return n.Statements
	case ast.KindTSParenthesizedType, ast.KindTSTypeAnnotation, ast.KindTSTypeAliasDeclaration:
		return l.typeMembers(n.TypeAnnotation, depth+1)
	case ast.KindTSIntersectionType:
		var out []*ast.Node
		for _, t := range n.Types {
			out = append(out, l.typeMembers(t, depth+1)...)
		}
		return out
	case ast.KindTSInterfaceDeclaration:
		var out []*ast.Node
		for _, h := range n.Extends {
			out = append(out, l.named(typeName(h.Expression), depth)...)
		}
		return append(out, l.typeMembers(n.Body, depth+1)...)
	case ast.KindTSTypeReference:
		return l.named(typeName(n.TypeName), depth)
	}
	return nil
}

func (l *locator) named(name string, depth int) []*ast.Node {
	if name == "" || l.opts.Oracle == nil {
		return nil
	}
	decl, ok := l.opts.Oracle.Resolve(name)
	if !ok {
		return nil
	}
	return l.typeMembers(decl, depth+1)
}

// objectDefaults reads the per-name defaults of a defaults-merge wrapper.
func (l *locator) objectDefaults(obj *ast.Node) []NamedDefault {
	obj = ast.Unwrap(obj)
	if !obj.Is(ast.KindObjectExpression) {
		return nil
	}
	var out []NamedDefault
	for _, p := range obj.Properties {
		if !p.Is(ast.KindProperty) || p.Value == nil {
			continue
		}
		out = append(out, NamedDefault{
			Name:    resolveStaticName(l.opts.File, p.Key, p.Computed),
			Default: Default{Node: p.Value, Shape: ShapeDefaultsMergeWrapper},
		})
	}
	return out
}

// patternDefaults reads the inline defaults of a destructuring pattern bound
// to a props macro result: `const { a = 1, b: renamed = 2 } = defineProps()`.
func (l *locator) patternDefaults(pattern *ast.Node) []NamedDefault {
	var out []NamedDefault
	for _, p := range pattern.Properties {
		if !p.Is(ast.KindProperty) || !p.Value.Is(ast.KindAssignmentPattern) || p.Value.Right == nil {
			continue
		}
		out = append(out, NamedDefault{
			Name:    resolveStaticName(l.opts.File, p.Key, p.Computed),
			Default: Default{Node: p.Value.Right, Shape: ShapeDestructuredDefaults},
		})
	}
	return out
}
