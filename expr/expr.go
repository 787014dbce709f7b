// Package expr implements the dialect's typed expression algebra: a
// small, immutable sum of SQL expression node kinds, each
// carrying its intrinsic precedence and result SqlType, used by package gen
// to render precedence-correct SQL text. Walk (see visitor.go) is available
// for callers that need to inspect a built tree rather than render it.
//
// Grounded on freeeve/machparse's ast/expression.go node shapes and
// parser/expression.go's precedence table, and on the sqldsl DSL pattern
// (other_examples/pthm-melange) of pure, validating constructors instead of
// a mutable tree built by a separate parser.
package expr

import (
	"fmt"

	"github.com/freeeve/dialectgen/sqltype"
	"github.com/freeeve/dialectgen/token"
)

// Expr is the shared interface every expression node implements.
type Expr interface {
	// Precedence ranks how tightly this node binds, for parenthesization.
	Precedence() Precedence
	// IsLiteral reports whether this node renders as inline SQL text with
	// no bound parameter.
	IsLiteral() bool
}

// Typed is implemented by expressions whose SqlType is known. Expressions
// like CustomExpression are untyped (ok==false) since their SQL is opaque.
type Typed interface {
	ResultType() (sqltype.SqlType, bool)
}

func typeErr(format string, args ...any) error {
	return &token.Error{Kind: token.TypeMismatch, Message: fmt.Sprintf(format, args...)}
}

func resultTypeOf(e Expr) (sqltype.SqlType, bool) {
	if t, ok := e.(Typed); ok {
		return t.ResultType()
	}
	return 0, false
}

// ---- Variable ----

// Variable is a value bound through a parameter slot at render time.
type Variable struct {
	Value   any
	SqlType sqltype.SqlType
}

// NewVariable constructs a bound-value expression.
func NewVariable(value any, t sqltype.SqlType) *Variable {
	return &Variable{Value: value, SqlType: t}
}

func (*Variable) Precedence() Precedence             { return PrecPrimary }
func (*Variable) IsLiteral() bool                     { return false }
func (v *Variable) ResultType() (sqltype.SqlType, bool) { return v.SqlType, true }

// ---- Literal ----

// Literal is inline SQL text (a numeric or string literal spelled directly
// into the SQL, never bound as a parameter).
type Literal struct {
	Text    string
	SqlType sqltype.SqlType
	typed   bool
}

// NewLiteral constructs a typed inline literal.
func NewLiteral(text string, t sqltype.SqlType) *Literal {
	return &Literal{Text: text, SqlType: t, typed: true}
}

// NewUntypedLiteral constructs an inline literal with no declared type —
// used for SQL NULL, which is compatible with any comparison partner of
// any type.
func NewUntypedLiteral(text string) *Literal {
	return &Literal{Text: text}
}

func (*Literal) Precedence() Precedence { return PrecPrimary }
func (*Literal) IsLiteral() bool        { return true }
func (l *Literal) ResultType() (sqltype.SqlType, bool) {
	return l.SqlType, l.typed
}

// Null is the canonical untyped SQL NULL literal.
func Null() *Literal { return NewUntypedLiteral("NULL") }

// ---- Column ----

// Column is a reference to a table column, optionally qualified by a table
// name/alias.
type Column struct {
	Table   string // empty if unqualified
	Name    string
	SqlType sqltype.SqlType
}

// NewColumn constructs a column reference.
func NewColumn(table, name string, t sqltype.SqlType) *Column {
	return &Column{Table: table, Name: name, SqlType: t}
}

func (*Column) Precedence() Precedence                { return PrecPrimary }
func (*Column) IsLiteral() bool                        { return false }
func (c *Column) ResultType() (sqltype.SqlType, bool) { return c.SqlType, true }

// Equals is sugar for NewComparison(c, OpEq, rhs).
func (c *Column) Equals(rhs Expr) (*Comparison, error) { return NewComparison(c, OpEq, rhs) }

// IsIn is sugar for NewIn(c, values, false).
func (c *Column) IsIn(values []Expr) (*In, error) { return NewIn(c, values, false) }

// ---- FunctionCall ----

// FunctionCall renders name(arg1, arg2, ...). Its arguments are emitted at
// outer precedence Unknown: commas already separate them, so none need
// parenthesizing beyond what their own structure demands.
type FunctionCall struct {
	Name       string
	Args       []Expr
	ResultSQLT sqltype.SqlType
}

// NewFunctionCall constructs a function-call expression.
func NewFunctionCall(name string, args []Expr, resultType sqltype.SqlType) *FunctionCall {
	return &FunctionCall{Name: name, Args: args, ResultSQLT: resultType}
}

func (*FunctionCall) Precedence() Precedence { return PrecPrimary }
func (*FunctionCall) IsLiteral() bool        { return false }
func (f *FunctionCall) ResultType() (sqltype.SqlType, bool) {
	return f.ResultSQLT, true
}

// ---- InfixOp ----

// InfixOp is a generic binary operator of caller-supplied precedence, used
// for arithmetic and other operators not worth a dedicated node kind
// (+, -, *, /, ||, bitwise operators, ...).
type InfixOp struct {
	Left, Right Expr
	Op          string
	Prec        Precedence
	ResultSQLT  sqltype.SqlType
}

// NewInfixOp constructs a binary operator node.
func NewInfixOp(left Expr, op string, right Expr, prec Precedence, resultType sqltype.SqlType) *InfixOp {
	return &InfixOp{Left: left, Op: op, Right: right, Prec: prec, ResultSQLT: resultType}
}

func (o *InfixOp) Precedence() Precedence { return o.Prec }
func (*InfixOp) IsLiteral() bool          { return false }
func (o *InfixOp) ResultType() (sqltype.SqlType, bool) {
	return o.ResultSQLT, true
}

// Arithmetic convenience constructors, grounded on the dialect's fixed
// precedence ladder.
func NewAdd(l, r Expr, t sqltype.SqlType) *InfixOp { return NewInfixOp(l, "+", r, PrecPlusMinus, t) }
func NewSub(l, r Expr, t sqltype.SqlType) *InfixOp { return NewInfixOp(l, "-", r, PrecPlusMinus, t) }
func NewMul(l, r Expr, t sqltype.SqlType) *InfixOp { return NewInfixOp(l, "*", r, PrecMulDiv, t) }
func NewDiv(l, r Expr, t sqltype.SqlType) *InfixOp { return NewInfixOp(l, "/", r, PrecMulDiv, t) }
func NewConcat(l, r Expr) *InfixOp {
	return NewInfixOp(l, "||", r, PrecStringConcat, sqltype.Text)
}

// NewAnd/NewOr build the boolean connectives directly as InfixOp nodes,
// with Boolean result type and the and/or precedence levels.
func NewAnd(l, r Expr) *InfixOp { return NewInfixOp(l, "AND", r, PrecAnd, sqltype.Boolean) }
func NewOr(l, r Expr) *InfixOp  { return NewInfixOp(l, "OR", r, PrecOr, sqltype.Boolean) }

// ---- Comparison ----

// CompareOp is one of the five relational operators.
type CompareOp int

const (
	OpLt CompareOp = iota
	OpLe
	OpEq
	OpGe
	OpGt
)

func (op CompareOp) String() string {
	switch op {
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpEq:
		return "="
	case OpGe:
		return ">="
	case OpGt:
		return ">"
	default:
		return "?"
	}
}

// precedence assigns Eq the comparison_eq level and the other four
// relational operators the tighter-binding comparison_rel level.
func (op CompareOp) precedence() Precedence {
	if op == OpEq {
		return PrecComparisonEq
	}
	return PrecComparisonRel
}

// Comparison is a relational expression; its result type is always Boolean.
type Comparison struct {
	Left, Right Expr
	Op          CompareOp
}

// NewComparison validates that both operands share a SqlType (or either is
// untyped, e.g. NULL) before constructing the node.
func NewComparison(left Expr, op CompareOp, right Expr) (*Comparison, error) {
	lt, lok := resultTypeOf(left)
	rt, rok := resultTypeOf(right)
	if lok && rok && lt != rt {
		return nil, typeErr("comparison operands have mismatched types: %s vs %s", lt, rt)
	}
	return &Comparison{Left: left, Right: right, Op: op}, nil
}

func (c *Comparison) Precedence() Precedence { return c.Op.precedence() }
func (*Comparison) IsLiteral() bool          { return false }
func (*Comparison) ResultType() (sqltype.SqlType, bool) {
	return sqltype.Boolean, true
}

// ---- UnaryMinus ----

// UnaryMinus negates a numeric expression; its result type is its operand's.
type UnaryMinus struct {
	Inner Expr
}

// NewUnaryMinus validates the operand is numeric (Integer or Real).
func NewUnaryMinus(inner Expr) (*UnaryMinus, error) {
	if t, ok := resultTypeOf(inner); ok && t != sqltype.Integer && t != sqltype.Real {
		return nil, typeErr("unary minus requires a numeric operand, got %s", t)
	}
	return &UnaryMinus{Inner: inner}, nil
}

func (*UnaryMinus) Precedence() Precedence { return PrecUnary }
func (*UnaryMinus) IsLiteral() bool        { return false }
func (u *UnaryMinus) ResultType() (sqltype.SqlType, bool) {
	return resultTypeOf(u.Inner)
}

// ---- Not ----

// Not negates a boolean expression.
type Not struct {
	Inner Expr
}

// NewNot validates the operand is Boolean-typed, when typed at all.
func NewNot(inner Expr) (*Not, error) {
	if t, ok := resultTypeOf(inner); ok && t != sqltype.Boolean {
		return nil, typeErr("NOT requires a boolean operand, got %s", t)
	}
	return &Not{Inner: inner}, nil
}

func (*Not) Precedence() Precedence { return PrecUnary }
func (*Not) IsLiteral() bool        { return false }
func (*Not) ResultType() (sqltype.SqlType, bool) {
	return sqltype.Boolean, true
}

// ---- IsNull ----

// IsNull renders "inner IS NULL"; always Boolean.
type IsNull struct {
	Inner   Expr
	Negated bool // IS NOT NULL
}

// NewIsNull constructs an IS [NOT] NULL expression.
func NewIsNull(inner Expr, negated bool) *IsNull {
	return &IsNull{Inner: inner, Negated: negated}
}

func (*IsNull) Precedence() Precedence { return PrecPostfix }
func (*IsNull) IsLiteral() bool        { return false }
func (*IsNull) ResultType() (sqltype.SqlType, bool) {
	return sqltype.Boolean, true
}

// ---- In ----

// In renders "inner [NOT] IN (v1, v2, ...)". Values holds the expressions
// exactly as the caller built them; NewIn does not wrap raw values into
// Variables, so a bound value must be passed as a *Variable. An empty
// Values list is legal: it renders as "(NULL)", with Negated controlling
// whether that means always-false or always-true.
type In struct {
	Inner   Expr
	Values  []Expr
	Negated bool
}

// NewIn validates every value shares Inner's SqlType (when both are typed)
// before constructing the node.
func NewIn(inner Expr, values []Expr, negated bool) (*In, error) {
	it, iok := resultTypeOf(inner)
	if iok {
		for i, v := range values {
			if vt, vok := resultTypeOf(v); vok && vt != it {
				return nil, typeErr("IN value %d has type %s, expected %s", i, vt, it)
			}
		}
	}
	return &In{Inner: inner, Values: values, Negated: negated}, nil
}

func (*In) Precedence() Precedence { return PrecPostfix }
func (*In) IsLiteral() bool        { return false }
func (*In) ResultType() (sqltype.SqlType, bool) {
	return sqltype.Boolean, true
}

// ---- Cast ----

// Cast is type-only: it never emits SQL CAST syntax. Its precedence and
// rendering are entirely delegated to Inner; only the compile-time-visible
// SqlType changes.
type Cast struct {
	Inner      Expr
	NewSqlType sqltype.SqlType
}

// NewCast constructs a type-only cast.
func NewCast(inner Expr, newType sqltype.SqlType) *Cast {
	return &Cast{Inner: inner, NewSqlType: newType}
}

func (c *Cast) Precedence() Precedence { return c.Inner.Precedence() }
func (c *Cast) IsLiteral() bool        { return c.Inner.IsLiteral() }
func (c *Cast) ResultType() (sqltype.SqlType, bool) {
	return c.NewSqlType, true
}

// ---- CustomExpression ----

// CustomExpression is an opaque, caller-supplied raw SQL fragment. It is
// always parenthesized on render regardless of context, and has no
// statically known SqlType.
type CustomExpression struct {
	RawSQL            string
	ReferencedParams  []*Variable
}

// NewCustomExpression constructs an opaque SQL fragment with its own
// parameter list.
func NewCustomExpression(rawSQL string, params []*Variable) *CustomExpression {
	return &CustomExpression{RawSQL: rawSQL, ReferencedParams: params}
}

func (*CustomExpression) Precedence() Precedence { return PrecUnknown }
func (*CustomExpression) IsLiteral() bool         { return false }
