package props

import "github.com/proplint/proplint/internal/ast"

// Default is one default-value site of a prop.
type Default struct {
	// Node is the default expression; diagnostics point at it.
	Node *ast.Node
	// Shape is the declaration form that supplied the default: a descriptor's
	// default field, a defaults-merge wrapper, or a destructuring pattern.
	Shape Shape
}

// PropEntry is the normalized form of one declared prop. Entries are built
// fresh for every analysis and are not modified once built.
type PropEntry struct {
	Name string
	// Types is the declared type set; empty means no type was declared.
	Types TypeSet
	// TypesIndeterminate is set when a type is declared but could not be
	// classified. Such entries are neither missing a type nor comparable.
	TypesIndeterminate bool
	HasValidator       bool
	Defaults           []Default
	// Node is where specificity diagnostics point.
	Node *ast.Node
	// Shape is the form the prop itself was declared with.
	Shape Shape
}

// HasType reports whether the entry declares a type, determinate or not.
func (e PropEntry) HasType() bool {
	return !e.Types.Empty() || e.TypesIndeterminate
}

// BuildEntries locates the props of desc and normalizes them into entries, in
// declaration order. Defaults attached by name are merged onto the last entry
// with that name; defaults naming no declared prop are dropped.
func BuildEntries(desc *ast.Node, opts Options) []PropEntry {
	decl := Locate(desc, opts)
	entries := make([]PropEntry, 0, len(decl.Sites))
	byName := make(map[string]int)
	for _, site := range decl.Sites {
		e := buildEntry(site, opts)
		byName[e.Name] = len(entries)
		entries = append(entries, e)
	}
	for _, nd := range decl.Defaults {
		i, ok := byName[nd.Name]
		if !ok {
			continue
		}
		entries[i].Defaults = append(entries[i].Defaults, nd.Default)
	}
	return entries
}

func buildEntry(site Site, opts Options) PropEntry {
	e := PropEntry{Node: site.Node, Shape: site.Shape}
	switch site.Shape {
	case ShapeArrayOfNames:
		e.Name = elementName(site.Key)
		return e
	case ShapeTypedMacroArgument:
		e.Name = nameOf(site, opts.File)
		if site.Type.Is(ast.KindTSMethodSignature) {
			e.Types = NewTypeSet(Function)
		} else {
			types, ok := StaticType(site.Type, opts.Oracle)
			e.Types, e.TypesIndeterminate = types, !ok
		}
		// Typed members never lack a type; an empty mapping means the type
		// contributes nothing checkable (null, undefined, never).
		if e.Types.Empty() {
			e.TypesIndeterminate = true
		}
		if desc := ast.Unwrap(site.Value); desc.Is(ast.KindObjectExpression) {
			e.HasValidator = ast.FindProperty(desc, "validator") != nil
			e.Defaults = descriptorDefault(desc)
		}
		return e
	}

	e.Name = nameOf(site, opts.File)
	value := ast.Unwrap(site.Value)
	switch {
	case value == nil, value.IsFunction():
		// Method shorthand and function values declare neither type nor
		// default.
	case value.Is(ast.KindObjectExpression):
		if typ := ast.FindProperty(value, "type"); typ != nil {
			types, ok := RuntimeType(typ.Value)
			e.Types, e.TypesIndeterminate = types, !ok
		}
		e.HasValidator = ast.FindProperty(value, "validator") != nil
		e.Defaults = descriptorDefault(value)
	default:
		types, ok := RuntimeType(value)
		e.Types, e.TypesIndeterminate = types, !ok
	}
	return e
}

func nameOf(site Site, f *ast.File) string {
	if site.Key == nil {
		return DefaultModelName
	}
	return resolveStaticName(f, site.Key, site.Computed)
}

func descriptorDefault(desc *ast.Node) []Default {
	def := ast.FindProperty(desc, "default")
	if def == nil || def.Value == nil {
		return nil
	}
	return []Default{{Node: def.Value, Shape: ShapeObjectOfDescriptors}}
}
