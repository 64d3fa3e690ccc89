package ast

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// Text returns the source text covered by n. When the file carries no source
// (or the range is out of bounds) a best-effort rendering of the node is
// returned instead.
func (f *File) Text(n *Node) string {
	if n == nil {
		return ""
	}
	if f != nil && f.Source != "" && n.Range[1] > n.Range[0] {
		if f.UTF16 {
			units := utf16.Encode([]rune(f.Source))
			if n.Range[1] <= len(units) {
				return string(utf16.Decode(units[n.Range[0]:n.Range[1]]))
			}
		} else if n.Range[1] <= len(f.Source) {
			return f.Source[n.Range[0]:n.Range[1]]
		}
	}
	return Render(n)
}

// Render prints a compact source form of common expression nodes. It is the
// fallback for trees that arrive without source text.
func Render(n *Node) string {
	if n == nil {
		return ""
	}
	switch n.Type {
	case KindIdentifier:
		return n.Name
	case KindLiteral:
		if n.Raw != "" {
			return n.Raw
		}
		switch v := n.LiteralValue.(type) {
		case string:
			return strconv.Quote(v)
		case nil:
			return "null"
		default:
			return FormatNumber(v)
		}
	case KindTemplateLiteral:
		var sb strings.Builder
		sb.WriteByte('`')
		for i, q := range n.Quasis {
			sb.WriteString(q.Cooked)
			if i < len(n.Expressions) {
				sb.WriteString("${")
				sb.WriteString(Render(n.Expressions[i]))
				sb.WriteString("}")
			}
		}
		sb.WriteByte('`')
		return sb.String()
	case KindMemberExpression:
		if n.Computed {
			return Render(n.Object) + "[" + Render(n.Property) + "]"
		}
		return Render(n.Object) + "." + Render(n.Property)
	case KindCallExpression:
		args := make([]string, len(n.Arguments))
		for i, a := range n.Arguments {
			args[i] = Render(a)
		}
		return Render(n.Callee) + "(" + strings.Join(args, ", ") + ")"
	case KindChainExpression, KindParenthesizedExpression:
		return Render(n.Expression)
	case KindTSQualifiedName:
		return Render(n.Left) + "." + Render(n.Right)
	}
	return n.Type
}

// FormatNumber formats a numeric literal value the way JavaScript's
// Number#toString does for the common cases (integers print without a
// fraction).
func FormatNumber(v any) string {
	switch f := v.(type) {
	case float64:
		return strconv.FormatFloat(f, 'f', -1, 64)
	case int:
		return strconv.Itoa(f)
	case bool:
		return strconv.FormatBool(f)
	}
	return ""
}

// StaticName returns the statically known string a key-like node denotes:
// the value of a string or number literal, an interpolation-free template
// literal, or an identifier's name. The second result is false when the node
// has no static name.
func StaticName(n *Node) (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Type {
	case KindLiteral:
		switch v := n.LiteralValue.(type) {
		case string:
			return v, true
		case float64, int:
			return FormatNumber(v), true
		}
		if n.Bigint != "" {
			return n.Bigint, true
		}
	case KindTemplateLiteral:
		if len(n.Expressions) == 0 && len(n.Quasis) == 1 {
			return n.Quasis[0].Cooked, true
		}
	case KindIdentifier:
		return n.Name, true
	}
	return "", false
}

// PropertyName returns the static name of a property-like node's key
// (Property, TSPropertySignature, TSMethodSignature). Non-computed identifier
// keys name themselves; computed keys resolve only when they are literals.
func PropertyName(p *Node) (string, bool) {
	if p == nil || p.Key == nil {
		return "", false
	}
	if p.Computed && p.Key.Type == KindIdentifier {
		return "", false
	}
	return StaticName(p.Key)
}

// FindProperty returns the first Property of an object expression whose
// static key equals name.
func FindProperty(obj *Node, name string) *Node {
	if !obj.Is(KindObjectExpression) {
		return nil
	}
	for _, p := range obj.Properties {
		if p.Type != KindProperty {
			continue
		}
		if key, ok := PropertyName(p); ok && key == name {
			return p
		}
	}
	return nil
}

// Unwrap strips parentheses and expression-level TypeScript wrappers
// (`as`, `satisfies`, `!`, `<T>x`) from an expression.
func Unwrap(n *Node) *Node {
	for n != nil {
		switch n.Type {
		case KindParenthesizedExpression, KindTSAsExpression, KindTSSatisfiesExpression,
			KindTSNonNullExpression, KindTSTypeAssertion:
			n = n.Expression
		default:
			return n
		}
	}
	return nil
}
