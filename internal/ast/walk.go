package ast

// Children returns the direct child nodes of n in a fixed field order that
// approximates source order. Nil entries (array holes, absent optional
// fields) are omitted.
func Children(n *Node) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	add := func(nodes ...*Node) {
		for _, c := range nodes {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	add(n.ID, n.Key, n.Value)
	add(n.Params...)
	add(n.TypeParameters, n.ReturnType, n.TypeAnnotation)
	add(n.Test, n.Init, n.Left, n.Right, n.Object, n.Property, n.Callee, n.TypeArguments)
	add(n.Arguments...)
	add(n.Expression, n.Argument, n.Declaration)
	add(n.Declarations...)
	add(n.Consequent, n.Alternate)
	add(n.Cases...)
	add(n.Statements...)
	add(n.Block, n.Handler, n.Finalizer)
	add(n.Properties...)
	add(n.Elements...)
	add(n.Quasis...)
	add(n.Expressions...)
	add(n.TypeName, n.Literal, n.ElementType, n.Label, n.Constraint)
	add(n.Types...)
	add(n.Members...)
	add(n.ElementTypes...)
	add(n.Extends...)
	add(n.Body)
	return out
}

// Inspect traverses the tree rooted at n in depth-first order, calling fn for
// each node. If fn returns false, the children of that node are skipped.
func Inspect(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, fn)
	}
}
