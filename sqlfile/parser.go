// Package sqlfile builds a schema.Schema out of tokenized SQL-file source:
// it recognizes CREATE TABLE/INDEX/VIEW statements and labeled named
// queries, classifying every dialect placeholder it finds along the way.
//
// Grounded on freeeve/machparse/parser's recursive-descent structure (a
// token slice plus a cursor, current/advance/expect helpers) generalized
// from a full SQL-expression grammar down to this dialect's closed
// top-level statement grammar, and on sqldef's schema.Table/Column/
// ForeignKey shapes for what a CREATE TABLE statement should produce.
package sqlfile

import (
	"fmt"

	"github.com/freeeve/dialectgen/lexer"
	"github.com/freeeve/dialectgen/schema"
	"github.com/freeeve/dialectgen/sqltype"
	"github.com/freeeve/dialectgen/token"
)

// Parse tokenizes source and builds a Schema from it, recognizing as many
// top-level statements as possible. It never returns an error value on its
// own: malformed statements are resynchronized past and reported as
// diagnostics, matching the tokenizer's never-abort propagation policy.
func Parse(source string) (*schema.Schema, []token.Error) {
	tokens, lexErrs := lexer.Tokenize(source)
	p := &parser{tokens: tokens, errs: append([]token.Error{}, lexErrs...)}

	s := &schema.Schema{}
	for !p.atEOF() {
		p.skipStatement(s)
	}
	return s, p.errs
}

type parser struct {
	tokens []token.Token
	pos    int
	errs   []token.Error
}

func (p *parser) atEOF() bool { return p.cur().Kind == token.EOF }

func (p *parser) cur() token.Token { return p.tokens[p.pos] }

func (p *parser) peekAt(offset int) token.Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *parser) advance() token.Token {
	t := p.tokens[p.pos]
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *parser) isKeyword(name string) bool {
	t := p.cur()
	return t.Kind == token.KEYWORD && t.Keyword == name
}

func (p *parser) errorf(kind token.ErrorKind, tok token.Token, format string, args ...any) {
	p.errs = append(p.errs, token.Error{Kind: kind, Message: fmt.Sprintf(format, args...), Location: tok.Span})
}

// skipStatement dispatches one top-level statement and resynchronizes to
// just past the next ';' regardless of whether it parsed cleanly, so one
// bad statement never blocks the rest of the file.
func (p *parser) skipStatement(s *schema.Schema) {
	start := p.pos
	switch {
	case p.isKeyword("CREATE"):
		p.parseCreateStatement(s)
	case p.cur().Kind == token.IDENT && p.peekAt(1).Kind == token.LABEL_COLON:
		p.parseNamedQuery(s)
	default:
		p.errorf(token.UnexpectedToken, p.cur(), "unexpected token %s at top level", p.cur().Kind)
		p.advance()
	}
	p.resyncToSemicolon(start)
}

// resyncToSemicolon consumes tokens through the next top-level ';'. If the
// statement handler already consumed it, this is a no-op; if the handler
// bailed out early (a parse error mid-statement), this is what keeps later
// statements reachable.
func (p *parser) resyncToSemicolon(statementStart int) {
	if p.pos > statementStart && p.tokens[p.pos-1].Kind == token.SEMICOLON {
		return
	}
	for !p.atEOF() {
		if p.advance().Kind == token.SEMICOLON {
			return
		}
	}
}

func (p *parser) expect(kind token.Kind) (token.Token, bool) {
	if p.cur().Kind != kind {
		p.errorf(token.UnexpectedToken, p.cur(), "expected %s, got %s", kind, p.cur().Kind)
		return token.Token{}, false
	}
	return p.advance(), true
}

func (p *parser) expectKeyword(name string) bool {
	if !p.isKeyword(name) {
		p.errorf(token.UnexpectedToken, p.cur(), "expected %s", name)
		return false
	}
	p.advance()
	return true
}

// sqlTypeFromLexeme resolves a column's declared SQL type name. It sees only
// the type name; any parenthesized size/precision suffix is kept textually by
// parseColumnDef in Column.TypeText and is not interpreted.
func sqlTypeFromLexeme(name string) (sqltype.SqlType, bool) {
	return sqltype.Lookup(name)
}
