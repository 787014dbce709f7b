package gen

import (
	"github.com/freeeve/dialectgen/expr"
)

// Render walks e and writes it into ctx, then finalizes and returns the SQL
// text and bound-parameter vector. Render is a pure function of e:
// identical expressions always render byte-identical SQL.
func Render(ctx *Context, e expr.Expr) (string, []BoundParam) {
	emit(ctx, e, expr.PrecUnknown)
	return ctx.Finalize()
}

// emit is the central precedence algorithm: a sub-expression is
// parenthesized exactly when its own precedence is strictly looser than the
// precedence its parent is emitting it under. CustomExpression is always
// parenthesized regardless of outer, since its precedence (Unknown) carries
// no information a parent can compare against meaningfully.
func emit(ctx *Context, e expr.Expr, outer expr.Precedence) {
	// A node whose (possibly Cast-delegated) precedence is Unknown is
	// opaque SQL text with no comparable rank — always parenthesize it,
	// regardless of outer context.
	if e.Precedence() == expr.PrecUnknown || e.Precedence() < outer {
		ctx.Write("(")
		writeInto(ctx, e)
		ctx.Write(")")
		return
	}
	writeInto(ctx, e)
}

func writeInto(ctx *Context, e expr.Expr) {
	switch n := e.(type) {
	case *expr.Variable:
		ctx.IntroduceVariable(n.Value, n.SqlType)
		ctx.Write("?")

	case *expr.Literal:
		ctx.Write(n.Text)

	case *expr.Column:
		if n.Table != "" {
			ctx.WriteIdentifier(n.Table)
			ctx.Write(".")
		}
		ctx.WriteIdentifier(n.Name)

	case *expr.FunctionCall:
		ctx.Write(n.Name)
		ctx.Write("(")
		for i, a := range n.Args {
			if i > 0 {
				ctx.Write(", ")
			}
			emit(ctx, a, expr.PrecUnknown)
		}
		ctx.Write(")")

	case *expr.InfixOp:
		emit(ctx, n.Left, n.Prec)
		ctx.Write(" ")
		ctx.Write(n.Op)
		ctx.Write(" ")
		emit(ctx, n.Right, n.Prec)

	case *expr.Comparison:
		p := n.Precedence()
		emit(ctx, n.Left, p)
		ctx.Write(" ")
		ctx.Write(n.Op.String())
		ctx.Write(" ")
		emit(ctx, n.Right, p)

	case *expr.UnaryMinus:
		ctx.Write("-")
		emit(ctx, n.Inner, expr.PrecUnary)

	case *expr.Not:
		ctx.Write("NOT ")
		emit(ctx, n.Inner, expr.PrecUnary)

	case *expr.IsNull:
		emit(ctx, n.Inner, expr.PrecPostfix)
		ctx.Write(" IS ")
		if n.Negated {
			ctx.Write("NOT ")
		}
		ctx.Write("NULL")

	case *expr.In:
		emit(ctx, n.Inner, expr.PrecPostfix)
		if n.Negated {
			ctx.Write(" NOT IN (")
		} else {
			ctx.Write(" IN (")
		}
		if len(n.Values) == 0 {
			ctx.Write("NULL")
		} else {
			for i, v := range n.Values {
				if i > 0 {
					ctx.Write(", ")
				}
				emit(ctx, v, expr.PrecUnknown)
			}
		}
		ctx.Write(")")

	case *expr.Cast:
		// Transparent: delegates directly to Inner, no separate
		// precedence check (Cast.Precedence() already equals Inner's).
		writeInto(ctx, n.Inner)

	case *expr.CustomExpression:
		for _, p := range n.ReferencedParams {
			ctx.IntroduceVariable(p.Value, p.SqlType)
		}
		ctx.Write(n.RawSQL)

	default:
		panic("gen: unknown expression node type")
	}
}
