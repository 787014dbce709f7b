// Package gen implements the SQL-text generation context and the
// precedence-aware emitter: the accumulator threaded through expression
// rendering, and the thin dispatcher that walks an expr.Expr tree into SQL
// text plus an ordered bound-parameter vector.
//
// Grounded on freeeve/machparse/format/formatter.go's strings.Builder-based
// writer and the sqldsl DSL's SQL()-returns-text convention
// (other_examples/pthm-melange), generalized to carry a parameter vector
// rather than returning inline-only SQL.
package gen

import (
	"strings"

	"github.com/freeeve/dialectgen/sqltype"
	"github.com/freeeve/dialectgen/token"
)

// BoundParam is one entry of the ordered parameter vector a render produces.
type BoundParam struct {
	Value   any
	SqlType sqltype.SqlType
}

// Context is the accumulator threaded through a single render: an output
// buffer plus the ordered bound-parameter vector. A Context is created per
// render and consumed by the caller via Finalize — it is not reusable
// and is not safe for concurrent use by multiple goroutines — one Context
// per render, one render per goroutine.
type Context struct {
	buf        strings.Builder
	params     []BoundParam
	serializer sqltype.Serializer
}

// NewContext creates a fresh GenerationContext. A nil serializer defaults to
// sqltype.DefaultSerializer{}.
func NewContext(serializer sqltype.Serializer) *Context {
	if serializer == nil {
		serializer = sqltype.DefaultSerializer{}
	}
	return &Context{serializer: serializer}
}

// Write appends raw SQL text to the buffer.
func (c *Context) Write(s string) { c.buf.WriteString(s) }

// WriteWhitespaceIfNeeded appends a single space unless the buffer is empty
// or already ends in whitespace or an opening parenthesis.
func (c *Context) WriteWhitespaceIfNeeded() {
	s := c.buf.String()
	if s == "" {
		return
	}
	last := s[len(s)-1]
	if last == ' ' || last == '\t' || last == '\n' || last == '(' {
		return
	}
	c.buf.WriteByte(' ')
}

// IntroduceVariable encodes value through the context's serializer and
// appends it to the parameter vector, returning its slot index. Callers
// appending to the vector must do so in left-to-right emission order so the
// vector stays 1-to-1 with the SQL text's "?" placeholders.
func (c *Context) IntroduceVariable(value any, t sqltype.SqlType) int {
	encoded := c.serializer.Encode(t, value)
	c.params = append(c.params, BoundParam{Value: encoded, SqlType: t})
	return len(c.params) - 1
}

// QuoteIdentifier double-quotes name if it collides with a reserved word or
// contains characters an unquoted identifier cannot, escaping embedded
// quotes by doubling them.
func (c *Context) QuoteIdentifier(name string) string {
	if !needsQuoting(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// WriteIdentifier writes name through QuoteIdentifier.
func (c *Context) WriteIdentifier(name string) { c.Write(c.QuoteIdentifier(name)) }

// Finalize returns the accumulated SQL text and parameter vector, consuming
// the context (it should not be reused afterward).
func (c *Context) Finalize() (string, []BoundParam) {
	return c.buf.String(), c.params
}

func needsQuoting(name string) bool {
	if name == "" {
		return true
	}
	if isReservedWord(name) {
		return true
	}
	if !isIdentStartByte(name[0]) {
		return true
	}
	for i := 1; i < len(name); i++ {
		if !isIdentContByte(name[i]) {
			return true
		}
	}
	return false
}

func isIdentStartByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c >= 0x80
}

func isIdentContByte(c byte) bool {
	return isIdentStartByte(c) || (c >= '0' && c <= '9')
}

func isReservedWord(name string) bool {
	kind, _ := token.LookupIdent(name)
	return kind == token.KEYWORD
}
