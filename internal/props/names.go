package props

import "github.com/proplint/proplint/internal/ast"

// UnknownProp names a prop whose name cannot be determined statically.
const UnknownProp = "Unknown prop"

// DefaultModelName is the prop a model macro declares when it is given no
// name argument.
const DefaultModelName = "modelValue"

// resolveStaticName is the single place that decides how a prop is named in
// diagnostics. Static keys name themselves. A computed key that is not a
// literal is rendered as "[<source>]"; anything else falls back to
// UnknownProp.
func resolveStaticName(f *ast.File, key *ast.Node, computed bool) string {
	if key == nil {
		return UnknownProp
	}
	if computed {
		if key.Type != ast.KindIdentifier {
			if name, ok := ast.StaticName(key); ok {
				return name
			}
		}
		return "[" + f.Text(key) + "]"
	}
	if name, ok := ast.StaticName(key); ok {
		return name
	}
	return UnknownProp
}

// elementName names an entry of an array-of-names declaration: the value of
// a string or interpolation-free template literal, or an identifier's name.
func elementName(el *ast.Node) string {
	el = ast.Unwrap(el)
	switch {
	case el.Is(ast.KindLiteral):
		if s, ok := el.StringValue(); ok {
			return s
		}
	case el.Is(ast.KindTemplateLiteral, ast.KindIdentifier):
		if name, ok := ast.StaticName(el); ok {
			return name
		}
	}
	return UnknownProp
}
