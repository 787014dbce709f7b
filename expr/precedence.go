package expr

// Precedence is a total-ordered integer rank used solely to decide whether a
// sub-expression needs parentheses around its rendering. Lower
// values bind more loosely.
type Precedence int

const (
	PrecUnknown       Precedence = -1
	PrecOr            Precedence = 10
	PrecAnd           Precedence = 11
	PrecComparisonEq  Precedence = 12
	PrecComparisonRel Precedence = 13
	PrecBitwise       Precedence = 14
	PrecPlusMinus     Precedence = 15
	PrecMulDiv        Precedence = 16
	PrecStringConcat  Precedence = 17
	PrecUnary         Precedence = 20
	PrecPostfix       Precedence = 21
	PrecPrimary       Precedence = 100
)
