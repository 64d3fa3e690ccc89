package props

import "fmt"

// RuleRequirePropTypes is the rule id of the specificity check.
const RuleRequirePropTypes = "require-prop-types"

// CheckSpecificity reports every entry that declares no type and has no
// custom validator.
func CheckSpecificity(entries []PropEntry) []Diagnostic {
	var out []Diagnostic
	for _, e := range entries {
		if e.HasType() || e.HasValidator {
			continue
		}
		out = append(out, Diagnostic{
			Rule:    RuleRequirePropTypes,
			Node:    e.Node,
			Message: fmt.Sprintf("Prop '%s' should define at least its type.", e.Name),
		})
	}
	return out
}
