package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freeeve/dialectgen/expr"
	"github.com/freeeve/dialectgen/sqltype"
)

func render(t *testing.T, e expr.Expr) (string, []BoundParam) {
	t.Helper()
	ctx := NewContext(nil)
	return Render(ctx, e)
}

func TestEqualityWithBoundValue(t *testing.T) {
	col := expr.NewColumn("", "config_key", sqltype.Text)
	cmp, err := col.Equals(expr.NewVariable("k", sqltype.Text))
	require.NoError(t, err)

	sql, params := render(t, cmp)
	require.Equal(t, `config_key = ?`, sql)
	require.Equal(t, []BoundParam{{Value: "k", SqlType: sqltype.Text}}, params)
}

func TestPrecedenceParenthesization(t *testing.T) {
	a := expr.NewColumn("", "a", sqltype.Boolean)
	b := expr.NewColumn("", "b", sqltype.Boolean)
	c := expr.NewColumn("", "c", sqltype.Boolean)

	orAB := expr.NewOr(a, b)
	sql, _ := render(t, expr.NewAnd(orAB, c))
	require.Equal(t, "(a OR b) AND c", sql)

	orBC := expr.NewOr(b, c)
	sql, _ = render(t, expr.NewAnd(a, orBC))
	require.Equal(t, "a AND (b OR c)", sql)

	andAB := expr.NewAnd(a, b)
	sql, _ = render(t, expr.NewOr(andAB, c))
	require.Equal(t, "a AND b OR c", sql)
}

func TestInExpansion(t *testing.T) {
	col := expr.NewColumn("", "x", sqltype.Integer)
	in, err := col.IsIn([]expr.Expr{
		expr.NewVariable(int64(1), sqltype.Integer),
		expr.NewVariable(int64(2), sqltype.Integer),
		expr.NewVariable(int64(3), sqltype.Integer),
	})
	require.NoError(t, err)

	sql, params := render(t, in)
	require.Equal(t, "x IN (?, ?, ?)", sql)
	require.Len(t, params, 3)
}

func TestEmptyInListRendersNullWithNegation(t *testing.T) {
	col := expr.NewColumn("", "x", sqltype.Integer)

	in, err := expr.NewIn(col, nil, false)
	require.NoError(t, err)
	sql, _ := render(t, in)
	require.Equal(t, "x IN (NULL)", sql)

	notIn, err := expr.NewIn(col, nil, true)
	require.NoError(t, err)
	sql, _ = render(t, notIn)
	require.Equal(t, "x NOT IN (NULL)", sql)
}

func TestReservedWordColumnIsQuoted(t *testing.T) {
	col := expr.NewColumn("", "order", sqltype.Integer)
	sql, _ := render(t, col)
	require.Equal(t, `"order"`, sql)
}

func TestQualifiedColumnQuotesEachPartIndependently(t *testing.T) {
	col := expr.NewColumn("select", "x", sqltype.Integer)
	sql, _ := render(t, col)
	require.Equal(t, `"select".x`, sql)
}

func TestCustomExpressionAlwaysParenthesized(t *testing.T) {
	custom := expr.NewCustomExpression("1 = 1", nil)
	sql, _ := render(t, custom)
	require.Equal(t, "(1 = 1)", sql)

	// Even as a function argument (outer precedence Unknown).
	fn := expr.NewFunctionCall("COALESCE", []expr.Expr{custom, expr.NewLiteral("0", sqltype.Integer)}, sqltype.Integer)
	sql, _ = render(t, fn)
	require.Equal(t, "COALESCE((1 = 1), 0)", sql)
}

func TestFunctionCallArgumentsNeverOverParenthesized(t *testing.T) {
	a := expr.NewColumn("", "a", sqltype.Boolean)
	b := expr.NewColumn("", "b", sqltype.Boolean)
	fn := expr.NewFunctionCall("COALESCE", []expr.Expr{expr.NewOr(a, b), a}, sqltype.Boolean)
	sql, _ := render(t, fn)
	require.Equal(t, "COALESCE(a OR b, a)", sql)
}

func TestCastIsTypeOnly(t *testing.T) {
	lit := expr.NewLiteral("5", sqltype.Integer)
	cast := expr.NewCast(lit, sqltype.Real)
	sql, _ := render(t, cast)
	require.Equal(t, "5", sql)
}

func TestParameterAlignment(t *testing.T) {
	col := expr.NewColumn("", "x", sqltype.Integer)
	in, err := col.IsIn([]expr.Expr{
		expr.NewVariable(int64(10), sqltype.Integer),
		expr.NewVariable(int64(20), sqltype.Integer),
	})
	require.NoError(t, err)
	cmp, err := expr.NewComparison(col, expr.OpGt, expr.NewVariable(int64(5), sqltype.Integer))
	require.NoError(t, err)
	both := expr.NewAnd(in, cmp)

	sql, params := render(t, both)
	require.Equal(t, 3, len(params))
	wantQuestionMarks := 0
	for _, c := range sql {
		if c == '?' {
			wantQuestionMarks++
		}
	}
	require.Equal(t, len(params), wantQuestionMarks)
}

func TestRenderIsDeterministic(t *testing.T) {
	build := func() expr.Expr {
		col := expr.NewColumn("", "config_key", sqltype.Text)
		cmp, _ := col.Equals(expr.NewVariable("k", sqltype.Text))
		return cmp
	}
	sql1, params1 := render(t, build())
	sql2, params2 := render(t, build())
	require.Equal(t, sql1, sql2)
	require.Equal(t, params1, params2)
}
