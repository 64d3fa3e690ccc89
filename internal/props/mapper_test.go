package props_test

import (
	"testing"

	"github.com/proplint/proplint/internal/ast"
	"github.com/proplint/proplint/internal/props"
	"github.com/proplint/proplint/internal/typealias"
)

func TestRuntimeType(t *testing.T) {
	tests := []struct {
		name          string
		expr          *ast.Node
		want          string
		indeterminate bool
	}{
		{"constructor", id("Number"), "number", false},
		{"custom constructor", id("Person"), "Person", false},
		{"array", arr(id("Number"), id("String")), "number or string", false},
		{"array with holes", arr(nil, id("Boolean"), nil), "boolean", false},
		{"empty array", arr(), "", false},
		{"duplicate members", arr(id("String"), id("String")), "string", false},
		{"array with non-identifier", arr(id("String"), str("Number")), "string", true},
		{"call", call(id("getType")), "", true},
		{"literal", null(), "", true},
		{"as expression", &ast.Node{Type: ast.KindTSAsExpression, Expression: id("String")}, "string", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, ok := props.RuntimeType(tt.expr)
			if ok == tt.indeterminate {
				t.Fatalf("determinate = %v, want %v", ok, !tt.indeterminate)
			}
			if got := set.String(); got != tt.want {
				t.Errorf("RuntimeType = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStaticType(t *testing.T) {
	tests := []struct {
		name          string
		typ           *ast.Node
		want          string
		indeterminate bool
	}{
		{"string", kw(ast.KindTSStringKeyword), "string", false},
		{"number", kw(ast.KindTSNumberKeyword), "number", false},
		{"boolean", kw(ast.KindTSBooleanKeyword), "boolean", false},
		{"bigint", kw(ast.KindTSBigIntKeyword), "bigint", false},
		{"symbol", kw(ast.KindTSSymbolKeyword), "symbol", false},
		{"object keyword", kw(ast.KindTSObjectKeyword), "object", false},
		{"any", kw(ast.KindTSAnyKeyword), "", true},
		{"unknown", kw(ast.KindTSUnknownKeyword), "", true},
		{"array", arrayType(kw(ast.KindTSStringKeyword)), "array", false},
		{"tuple", &ast.Node{Type: ast.KindTSTupleType}, "array", false},
		{"function", fnType(), "function", false},
		{"type literal", tlit(psig("a", kw(ast.KindTSNumberKeyword))), "object", false},
		{"callable type literal", tlit(&ast.Node{Type: ast.KindTSCallSignatureDeclaration}), "function", false},
		{"string literal", litType(str("a")), "string", false},
		{"number literal", litType(num(1)), "number", false},
		{"negative literal", litType(unary("-", num(1))), "number", false},
		{"boolean literal", litType(boolean(true)), "boolean", false},
		{"template literal type", &ast.Node{Type: ast.KindTSTemplateLiteralType}, "string", false},
		{"union", union(kw(ast.KindTSStringKeyword), kw(ast.KindTSNumberKeyword)), "string or number", false},
		{"nullable union", union(kw(ast.KindTSStringKeyword), kw(ast.KindTSNullKeyword), kw(ast.KindTSUndefinedKeyword)), "string", false},
		{"literal union", union(litType(str("a")), litType(str("b"))), "string", false},
		{"union with any", union(kw(ast.KindTSStringKeyword), kw(ast.KindTSAnyKeyword)), "string", true},
		{"readonly array", &ast.Node{Type: ast.KindTSTypeOperator, Operator: "readonly", TypeAnnotation: arrayType(kw(ast.KindTSNumberKeyword))}, "array", false},
		{"keyof", &ast.Node{Type: ast.KindTSTypeOperator, Operator: "keyof", TypeAnnotation: tref("X")}, "", true},
		{"global constructor", tref("String"), "string", false},
		{"utility type", tref("Record", kw(ast.KindTSStringKeyword), kw(ast.KindTSNumberKeyword)), "object", false},
		{"readonly array utility", tref("ReadonlyArray", kw(ast.KindTSStringKeyword)), "array", false},
		{"non nullable", tref("NonNullable", union(kw(ast.KindTSNumberKeyword), kw(ast.KindTSNullKeyword))), "number", false},
		{"date", tref("Date"), "Date", false},
		{"unresolved reference", tref("Mystery"), "", true},
		{"mapped type", &ast.Node{Type: ast.KindTSMappedType}, "object", false},
		{"conditional type", &ast.Node{Type: ast.KindTSConditionalType}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, ok := props.StaticType(tt.typ, nil)
			if ok == tt.indeterminate {
				t.Fatalf("determinate = %v, want %v", ok, !tt.indeterminate)
			}
			if got := set.String(); got != tt.want {
				t.Errorf("StaticType = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStaticType_Oracle(t *testing.T) {
	prog := program(
		typeAlias("MaybeString", []string{"T", "U"}, kw(ast.KindTSStringKeyword)),
		typeAlias("Box", []string{"T"}, tref("T")),
		typeAlias("NumberOrText", []string{"T"}, union(tref("T"), templateType(tref("T")))),
		typeAlias("Text", []string{"T"}, templateType(tref("T"))),
		typeAlias("OrNull", []string{"T"}, union(tref("T"), kw(ast.KindTSNullKeyword))),
		typeAlias("Loop", nil, tref("Loop")),
		iface("Shape", nil, psig("x", kw(ast.KindTSNumberKeyword))),
		iface("Callable", nil, &ast.Node{Type: ast.KindTSCallSignatureDeclaration}),
		enum("Color"),
		enum("Named", str("red"), str("blue")),
		enum("Mixed", num(1), str("b")),
		enum("Computed", call(id("f"))),
	)
	oracle := typealias.NewLocal(prog)

	tests := []struct {
		name          string
		typ           *ast.Node
		want          string
		indeterminate bool
	}{
		{"alias with unused params", tref("MaybeString", litType(num(1)), litType(num(2))), "string", false},
		{"generic substitution", tref("Box", kw(ast.KindTSNumberKeyword)), "number", false},
		{"generic union with template", tref("NumberOrText", litType(num(1))), "number or string", false},
		{"generic template only", tref("Text", litType(num(1))), "string", false},
		{"nested generic", tref("Box", tref("OrNull", kw(ast.KindTSBooleanKeyword))), "boolean", false},
		{"unbound generic parameter", tref("Box"), "", true},
		{"cyclic alias", tref("Loop"), "", true},
		{"interface", tref("Shape"), "object", false},
		{"callable interface", tref("Callable"), "function", false},
		{"numeric enum", tref("Color"), "number", false},
		{"string enum", tref("Named"), "string", false},
		{"mixed enum", tref("Mixed"), "number or string", false},
		{"computed enum", tref("Computed"), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, ok := props.StaticType(tt.typ, oracle)
			if ok == tt.indeterminate {
				t.Fatalf("determinate = %v, want %v", ok, !tt.indeterminate)
			}
			if got := set.String(); got != tt.want {
				t.Errorf("StaticType = %q, want %q", got, tt.want)
			}
		})
	}
}
