package props

import "github.com/proplint/proplint/internal/ast"

// Shape is the syntactic pattern a prop or a default was declared with.
type Shape uint8

const (
	ShapeArrayOfNames Shape = iota + 1
	ShapeObjectOfDescriptors
	ShapeTypedMacroArgument
	ShapeDefaultsMergeWrapper
	ShapeDestructuredDefaults
)

func (s Shape) String() string {
	switch s {
	case ShapeArrayOfNames:
		return "array-of-names"
	case ShapeObjectOfDescriptors:
		return "object-of-descriptors"
	case ShapeTypedMacroArgument:
		return "typed-macro-argument"
	case ShapeDefaultsMergeWrapper:
		return "defaults-merge-wrapper"
	case ShapeDestructuredDefaults:
		return "destructured-defaults"
	default:
		return "unknown"
	}
}

// MacroKind classifies a compiler-macro call.
type MacroKind uint8

const (
	MacroProps        MacroKind = iota + 1 // defineProps(...)
	MacroWithDefaults                      // withDefaults(defineProps<...>(), {...})
	MacroModel                             // defineModel(...)
)

// MacroCall describes a call the macro resolver recognized. Only the fields
// relevant to Kind are set.
type MacroCall struct {
	Kind MacroKind
	Node *ast.Node

	// Arg is the runtime props argument of a props macro, or the options
	// object of a model macro.
	Arg *ast.Node
	// TypeArg is the first type argument, if any.
	TypeArg *ast.Node

	// Inner is the wrapped props macro call of a defaults-merge wrapper.
	Inner *ast.Node
	// Defaults is the object literal of per-name defaults of a wrapper.
	Defaults *ast.Node

	// ModelName is the name expression of a model macro; nil means the
	// default model name.
	ModelName *ast.Node
}

// MacroResolver classifies call expressions that declare props. It reports
// false for calls that are not prop-declaration sites.
type MacroResolver interface {
	Classify(call *ast.Node) (MacroCall, bool)
}

// TypeOracle resolves a named type of the static annotation language to its
// declaration (a type alias, interface or enum declaration node). It reports
// false when the name cannot be resolved.
type TypeOracle interface {
	Resolve(name string) (*ast.Node, bool)
}
