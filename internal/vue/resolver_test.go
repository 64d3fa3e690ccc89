package vue

import (
	"testing"

	"github.com/proplint/proplint/internal/ast"
	"github.com/proplint/proplint/internal/props"
)

func ident(name string) *ast.Node {
	return &ast.Node{Type: ast.KindIdentifier, Name: name}
}

func strLit(s string) *ast.Node {
	return &ast.Node{Type: ast.KindLiteral, LiteralValue: s}
}

func objExpr() *ast.Node {
	return &ast.Node{Type: ast.KindObjectExpression}
}

func callExpr(callee *ast.Node, args ...*ast.Node) *ast.Node {
	return &ast.Node{Type: ast.KindCallExpression, Callee: callee, Arguments: args}
}

func memberExpr(object *ast.Node, property string) *ast.Node {
	return &ast.Node{Type: ast.KindMemberExpression, Object: object, Property: ident(property)}
}

func typeArgs(n *ast.Node, args ...*ast.Node) *ast.Node {
	n.TypeArguments = &ast.Node{Type: ast.KindTSTypeParameterInstantiation, Params: args}
	return n
}

func TestResolver_Classify(t *testing.T) {
	r := DefaultResolver()
	stringType := &ast.Node{Type: ast.KindTSStringKeyword}

	t.Run("defineProps with runtime argument", func(t *testing.T) {
		arg := objExpr()
		mc, ok := r.Classify(callExpr(ident("defineProps"), arg))
		if !ok || mc.Kind != props.MacroProps || mc.Arg != arg || mc.TypeArg != nil {
			t.Fatalf("Classify = %+v, %v", mc, ok)
		}
	})

	t.Run("defineProps with type argument", func(t *testing.T) {
		typ := &ast.Node{Type: ast.KindTSTypeLiteral}
		mc, ok := r.Classify(typeArgs(callExpr(ident("defineProps")), typ))
		if !ok || mc.Kind != props.MacroProps || mc.TypeArg != typ {
			t.Fatalf("Classify = %+v, %v", mc, ok)
		}
	})

	t.Run("withDefaults", func(t *testing.T) {
		inner := callExpr(ident("defineProps"))
		defaults := objExpr()
		mc, ok := r.Classify(callExpr(ident("withDefaults"), inner, defaults))
		if !ok || mc.Kind != props.MacroWithDefaults || mc.Inner != inner || mc.Defaults != defaults {
			t.Fatalf("Classify = %+v, %v", mc, ok)
		}
	})

	t.Run("withDefaults without arguments", func(t *testing.T) {
		if _, ok := r.Classify(callExpr(ident("withDefaults"))); ok {
			t.Fatal("expected withDefaults() to be rejected")
		}
	})

	t.Run("defineModel forms", func(t *testing.T) {
		name := strLit("count")
		opts := objExpr()

		mc, ok := r.Classify(callExpr(ident("defineModel"), name, opts))
		if !ok || mc.Kind != props.MacroModel || mc.ModelName != name || mc.Arg != opts {
			t.Fatalf("named model: %+v, %v", mc, ok)
		}

		mc, ok = r.Classify(callExpr(ident("defineModel"), opts))
		if !ok || mc.ModelName != nil || mc.Arg != opts {
			t.Fatalf("unnamed model: %+v, %v", mc, ok)
		}

		mc, ok = r.Classify(typeArgs(callExpr(ident("defineModel")), stringType))
		if !ok || mc.TypeArg != stringType {
			t.Fatalf("typed model: %+v, %v", mc, ok)
		}
	})

	t.Run("other calls", func(t *testing.T) {
		for _, c := range []*ast.Node{
			callExpr(ident("defineEmits")),
			callExpr(memberExpr(ident("vue"), "defineProps")),
			{Type: ast.KindCallExpression, Callee: ident("defineProps"), Optional: true},
			ident("defineProps"),
			nil,
		} {
			if _, ok := r.Classify(c); ok {
				t.Errorf("Classify(%v) unexpectedly matched", c)
			}
		}
	})
}

func TestResolver_CustomNames(t *testing.T) {
	r := NewResolver([]string{"definePropsRefs"}, nil, nil, nil)
	if _, ok := r.Classify(callExpr(ident("defineProps"))); ok {
		t.Error("default name should be replaced")
	}
	if mc, ok := r.Classify(callExpr(ident("definePropsRefs"))); !ok || mc.Kind != props.MacroProps {
		t.Error("custom name should be recognized")
	}
	if _, ok := r.Classify(callExpr(ident("withDefaults"), callExpr(ident("definePropsRefs")))); !ok {
		t.Error("nil lists should keep the defaults")
	}
}

func TestResolver_IsFactory(t *testing.T) {
	r := DefaultResolver()
	tests := []struct {
		callee *ast.Node
		want   bool
	}{
		{ident("defineComponent"), true},
		{memberExpr(ident("Vue"), "extend"), true},
		{memberExpr(ident("Vue"), "component"), true},
		{memberExpr(ident("app"), "component"), true},
		{memberExpr(memberExpr(ident("window"), "app"), "mixin"), true},
		{memberExpr(ident("app"), "mount"), false},
		{ident("createApp"), false},
		{&ast.Node{Type: ast.KindMemberExpression, Object: ident("app"), Property: ident("component"), Computed: true}, false},
	}
	for _, tt := range tests {
		if got := r.isFactory(tt.callee); got != tt.want {
			t.Errorf("isFactory(%s) = %v, want %v", ast.Render(tt.callee), got, tt.want)
		}
	}
}
