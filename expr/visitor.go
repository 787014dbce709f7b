package expr

// Walk traverses e and its children in depth-first order, calling fn on
// each node. If fn returns false, that node's children are skipped.
//
// Adapted from freeeve/machparse/visitor.Walk, generalized from the
// teacher's full-statement AST down to this package's expression algebra.
// Available to any caller that needs to inspect a runtime-built expression
// tree (e.g. collecting the Columns a dynamically constructed predicate
// touches) before handing it to gen.Render.
func Walk(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch n := e.(type) {
	case *Variable, *Literal, *Column, *CustomExpression:
		// leaves
	case *FunctionCall:
		for _, a := range n.Args {
			Walk(a, fn)
		}
	case *InfixOp:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Comparison:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *UnaryMinus:
		Walk(n.Inner, fn)
	case *Not:
		Walk(n.Inner, fn)
	case *IsNull:
		Walk(n.Inner, fn)
	case *In:
		Walk(n.Inner, fn)
		for _, v := range n.Values {
			Walk(v, fn)
		}
	case *Cast:
		Walk(n.Inner, fn)
	}
}
