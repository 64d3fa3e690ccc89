// Package props checks component prop declarations.
//
// Analysis runs in three steps. The locator finds every prop declaration site
// of a component description, whatever its syntax (array of names, object of
// descriptors, typed macro argument, defaults-merge wrapper, destructured
// defaults). The entry builder normalizes each site into a PropEntry, mapping
// type annotations to canonical type tags. Two independent checks then read
// the same entries: CheckSpecificity reports props without a type and
// CheckCompatibility reports defaults whose inferred type does not match the
// declared types.
//
// Whenever a type or value cannot be determined statically the analysis
// stays silent for it; a missed report is preferred to a false one.
package props

import "github.com/proplint/proplint/internal/ast"

// Options carries the collaborators of an analysis. All fields are optional.
type Options struct {
	// Resolver recognizes prop-declaring macro calls. Without it only
	// component options objects are analyzed.
	Resolver MacroResolver
	// Oracle resolves named types of the static annotation language. Without
	// it named types are indeterminate.
	Oracle TypeOracle
	// File supplies source text for rendering computed prop names.
	File *ast.File
}

// Diagnostic is one finding of a check.
type Diagnostic struct {
	Rule    string
	Node    *ast.Node
	Message string
}

// Result holds the entries of one component and the findings of both checks.
type Result struct {
	Entries       []PropEntry
	Specificity   []Diagnostic
	Compatibility []Diagnostic
}

// Analyze runs both checks over one component description. It does not
// modify the tree and keeps no state between calls.
func Analyze(desc *ast.Node, opts Options) Result {
	entries := BuildEntries(desc, opts)
	return Result{
		Entries:       entries,
		Specificity:   CheckSpecificity(entries),
		Compatibility: CheckCompatibility(entries),
	}
}
