package expr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freeeve/dialectgen/sqltype"
)

func TestComparisonRejectsTypeMismatch(t *testing.T) {
	col := NewColumn("config", "config_key", sqltype.Text)
	v := NewVariable(int64(3), sqltype.Integer)
	_, err := NewComparison(col, OpEq, v)
	require.Error(t, err)
}

func TestComparisonAllowsNullOnEitherSide(t *testing.T) {
	col := NewColumn("config", "config_key", sqltype.Text)
	cmp, err := NewComparison(col, OpEq, Null())
	require.NoError(t, err)
	require.Equal(t, PrecComparisonEq, cmp.Precedence())

	_, err = NewComparison(Null(), OpEq, col)
	require.NoError(t, err)
}

func TestInRejectsValueTypeMismatch(t *testing.T) {
	col := NewColumn("x", "x", sqltype.Integer)
	_, err := NewIn(col, []Expr{NewVariable("oops", sqltype.Text)}, false)
	require.Error(t, err)
}

func TestUnaryMinusRejectsNonNumeric(t *testing.T) {
	col := NewColumn("x", "x", sqltype.Text)
	_, err := NewUnaryMinus(col)
	require.Error(t, err)
}

func TestCastDelegatesPrecedenceAndLiteralness(t *testing.T) {
	lit := NewLiteral("5", sqltype.Integer)
	cast := NewCast(lit, sqltype.Real)
	require.Equal(t, lit.Precedence(), cast.Precedence())
	require.Equal(t, lit.IsLiteral(), cast.IsLiteral())
	rt, ok := cast.ResultType()
	require.True(t, ok)
	require.Equal(t, sqltype.Real, rt)
}

func TestCustomExpressionIsAlwaysUnknownPrecedence(t *testing.T) {
	c := NewCustomExpression("1=1", nil)
	require.Equal(t, PrecUnknown, c.Precedence())
}

func TestWalkVisitsNestedColumns(t *testing.T) {
	left := NewColumn("t", "a", sqltype.Integer)
	right := NewColumn("t", "b", sqltype.Integer)
	add := NewAdd(left, right, sqltype.Integer)

	var seen []string
	Walk(add, func(e Expr) bool {
		if c, ok := e.(*Column); ok {
			seen = append(seen, c.Name)
		}
		return true
	})
	require.Equal(t, []string{"a", "b"}, seen)
}
