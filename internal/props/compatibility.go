package props

import (
	"fmt"

	"github.com/proplint/proplint/internal/ast"
)

// RuleRequireValidDefaultProp is the rule id of the compatibility check.
const RuleRequireValidDefaultProp = "require-valid-default-prop"

// CheckCompatibility reports default values whose inferred type does not fit
// the declared types. Only the built-in constructor tags take part in the
// comparison; an entry declaring none of them, or whose types are
// indeterminate, is skipped. Each default of an entry is checked on its own;
// destructuring defaults are plain values and skip the factory rules.
func CheckCompatibility(entries []PropEntry) []Diagnostic {
	var out []Diagnostic
	for _, e := range entries {
		if len(e.Defaults) == 0 || e.TypesIndeterminate {
			continue
		}
		declared := e.Types.Native()
		if declared.Empty() {
			continue
		}
		for _, def := range e.Defaults {
			if def.Shape == ShapeDestructuredDefaults {
				out = append(out, checkInlineDefault(e.Name, declared, def.Node)...)
				continue
			}
			out = append(out, checkDefault(e.Name, declared, def.Node)...)
		}
	}
	return out
}

func checkDefault(name string, declared TypeSet, expr *ast.Node) []Diagnostic {
	v := InferValue(expr)
	if !v.Known {
		return nil
	}

	if v.Factory {
		if declared.Has(Function) {
			return nil
		}
		var out []Diagnostic
		for _, ret := range FactoryReturns(expr) {
			rv := ReturnValue(ret)
			if !rv.Known || declared.Has(rv.Tag) {
				continue
			}
			out = append(out, mismatch(name, ret, declared))
		}
		return out
	}

	if declared.Has(v.Tag) && !v.Tag.IsReference() {
		return nil
	}
	return []Diagnostic{mismatch(name, expr, factoryTypes(declared))}
}

// checkInlineDefault checks a destructuring default. The value is used as
// is, so a function is a function and an object or array literal needs no
// factory.
func checkInlineDefault(name string, declared TypeSet, expr *ast.Node) []Diagnostic {
	v := InferValue(expr)
	if !v.Known || declared.Has(v.Tag) {
		return nil
	}
	return []Diagnostic{mismatch(name, expr, declared)}
}

// factoryTypes is the type list a non-factory default is held against:
// object and array defaults must be produced by a function, so both render
// as "function".
func factoryTypes(declared TypeSet) TypeSet {
	tags := declared.Tags()
	for i, t := range tags {
		if t.IsReference() {
			tags[i] = Function
		}
	}
	return NewTypeSet(tags...)
}

func mismatch(name string, node *ast.Node, types TypeSet) Diagnostic {
	return Diagnostic{
		Rule:    RuleRequireValidDefaultProp,
		Node:    node,
		Message: fmt.Sprintf("Type of the default value for '%s' prop must be a %s.", name, types),
	}
}
