// Package vue recognizes Vue component declarations: the compiler macros of
// <script setup> (defineProps, withDefaults, defineModel) and component
// options objects passed to the usual factories.
package vue

import (
	"strings"

	"github.com/proplint/proplint/internal/ast"
	"github.com/proplint/proplint/internal/props"
)

// Default callee names.
var (
	DefaultPropsMacros        = []string{"defineProps"}
	DefaultWithDefaultsMacros = []string{"withDefaults"}
	DefaultModelMacros        = []string{"defineModel"}
	// DefaultFactories are the calls whose object argument is a component
	// options object. A leading "*." matches any receiver.
	DefaultFactories = []string{"defineComponent", "Vue.extend", "Vue.component", "Vue.mixin", "*.component", "*.mixin"}
)

// Resolver classifies macro calls by callee name. It implements
// props.MacroResolver.
type Resolver struct {
	props        map[string]bool
	withDefaults map[string]bool
	model        map[string]bool
	factories    []string
}

// NewResolver creates a resolver for the given callee names. Nil slices fall
// back to the defaults.
func NewResolver(propsMacros, withDefaults, model, factories []string) *Resolver {
	if propsMacros == nil {
		propsMacros = DefaultPropsMacros
	}
	if withDefaults == nil {
		withDefaults = DefaultWithDefaultsMacros
	}
	if model == nil {
		model = DefaultModelMacros
	}
	if factories == nil {
		factories = DefaultFactories
	}
	return &Resolver{
		props:        toSet(propsMacros),
		withDefaults: toSet(withDefaults),
		model:        toSet(model),
		factories:    factories,
	}
}

// DefaultResolver returns a resolver for the standard Vue macro names.
func DefaultResolver() *Resolver {
	return NewResolver(nil, nil, nil, nil)
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// Classify implements props.MacroResolver.
func (r *Resolver) Classify(call *ast.Node) (props.MacroCall, bool) {
	call = ast.Unwrap(call)
	if !call.Is(ast.KindCallExpression) || call.Optional || !call.Callee.Is(ast.KindIdentifier) {
		return props.MacroCall{}, false
	}
	name := call.Callee.Name
	mc := props.MacroCall{Node: call}
	if typeArgs := call.TypeArgs(); len(typeArgs) > 0 {
		mc.TypeArg = typeArgs[0]
	}
	args := call.Arguments

	switch {
	case r.props[name]:
		mc.Kind = props.MacroProps
		if len(args) > 0 {
			mc.Arg = args[0]
		}
	case r.withDefaults[name]:
		if len(args) == 0 {
			return props.MacroCall{}, false
		}
		mc.Kind = props.MacroWithDefaults
		mc.TypeArg = nil
		mc.Inner = args[0]
		if len(args) > 1 {
			mc.Defaults = args[1]
		}
	case r.model[name]:
		mc.Kind = props.MacroModel
		if len(args) > 0 && isNameArgument(args[0]) {
			mc.ModelName = args[0]
			args = args[1:]
		}
		if len(args) > 0 {
			mc.Arg = args[0]
		}
	default:
		return props.MacroCall{}, false
	}
	return mc, true
}

// isNameArgument reports whether a model macro's first argument is its
// name rather than its options.
func isNameArgument(n *ast.Node) bool {
	n = ast.Unwrap(n)
	if n.Is(ast.KindTemplateLiteral) {
		return true
	}
	_, ok := n.StringValue()
	return ok
}

// isFactory reports whether callee names a component factory.
func (r *Resolver) isFactory(callee *ast.Node) bool {
	name := calleeName(callee)
	if name == "" {
		return false
	}
	for _, f := range r.factories {
		if f == name {
			return true
		}
		if rest, ok := strings.CutPrefix(f, "*."); ok && strings.HasSuffix(name, "."+rest) {
			return true
		}
	}
	return false
}

func calleeName(n *ast.Node) string {
	n = ast.Unwrap(n)
	switch {
	case n.Is(ast.KindIdentifier):
		return n.Name
	case n.Is(ast.KindMemberExpression) && !n.Computed:
		obj := calleeName(n.Object)
		if obj == "" || !n.Property.Is(ast.KindIdentifier) {
			return ""
		}
		return obj + "." + n.Property.Name
	case n.Is(ast.KindThisExpression):
		return "this"
	}
	return ""
}
