package sqlfile

import (
	"github.com/freeeve/dialectgen/schema"
	"github.com/freeeve/dialectgen/token"
)

// queryState tracks the context the placeholder classifier uses to decide
// what a $name/? occurrence means, per the label:-query state machine.
type queryState int

const (
	stateDefault queryState = iota
	stateAfterIn
	stateInOrderBy
	stateInPredicate
)

// parseNamedQuery handles "label: sql_tokens... ;": it records the label,
// then scans the remainder verbatim, classifying every placeholder
// occurrence and accumulating literal SQL text between them into
// alternating schema.SqlFragment entries.
func (p *parser) parseNamedQuery(s *schema.Schema) {
	labelTok := p.advance() // IDENT
	p.advance()             // LABEL_COLON

	q := schema.NamedQuery{Label: labelTok.Lexeme()}

	state := stateDefault
	pendingLiteralStart := p.pos
	queryStart := p.pos
	lastIdent := ""
	eqColumn := ""
	valueColumns := map[int]string{} // index into q.Placeholders -> column name hint

	flushLiteral := func(end int) {
		if end > pendingLiteralStart {
			text := joinLexemes(p.tokens[pendingLiteralStart:end])
			if text != "" {
				q.Fragments = append(q.Fragments, schema.SqlFragment{Literal: text})
			}
		}
	}

	for p.cur().Kind != token.SEMICOLON && !p.atEOF() {
		tok := p.cur()

		switch {
		case tok.Kind == token.KEYWORD && tok.Keyword == "IN":
			state = stateAfterIn
			p.advance()

		case tok.Kind == token.KEYWORD && tok.Keyword == "ORDER":
			p.advance()
			if p.isKeyword("BY") {
				p.advance()
			}
			state = stateInOrderBy

		case tok.Kind == token.KEYWORD && (tok.Keyword == "WHERE" || tok.Keyword == "AND" || tok.Keyword == "OR"):
			state = stateInPredicate
			p.advance()

		case tok.Kind == token.PLACEHOLDER_POSITIONAL || tok.Kind == token.PLACEHOLDER_NAMED:
			flushLiteral(p.pos)
			ph := p.classifyPlaceholder(tok, state)
			if ph.Kind == schema.PlaceholderValue && eqColumn != "" {
				valueColumns[len(q.Placeholders)] = eqColumn
			}
			q.Fragments = append(q.Fragments, schema.SqlFragment{Placeholder: &ph})
			q.Placeholders = append(q.Placeholders, ph)
			p.advance()
			pendingLiteralStart = p.pos
			state = stateDefault
			eqColumn = ""

		default:
			// A comparison operator between WHERE/AND/OR and the next
			// placeholder disqualifies it from being a bare "$name alone"
			// dynamic clause (e.g. "config_key = $name" is a Value, not a
			// predicate clause) — anything else (identifiers, IS NOT NULL,
			// ...) leaves the classification pending.
			if state == stateInPredicate && isComparisonOperator(tok) {
				state = stateDefault
			}
			if tok.Kind == token.EQ {
				eqColumn = lastIdent
			} else if tok.Kind == token.IDENT {
				lastIdent = tok.Lexeme()
			} else {
				eqColumn = ""
			}
			p.advance()
		}
	}
	flushLiteral(p.pos)

	if p.cur().Kind == token.SEMICOLON {
		p.advance()
	}

	inferResultColumns(&q, s)
	resolveExpectedTypes(&q, s, p.tokens[queryStart:p.pos], valueColumns)
	s.Queries = append(s.Queries, q)
}

// isComparisonOperator reports whether tok is one of the relational
// operators that, appearing between WHERE/AND/OR and a placeholder, marks
// that placeholder as an ordinary value rather than a dynamic predicate.
func isComparisonOperator(tok token.Token) bool {
	switch tok.Kind {
	case token.EQ, token.NEQ, token.LT, token.LE, token.GT, token.GE:
		return true
	default:
		return false
	}
}

func (p *parser) classifyPlaceholder(tok token.Token, state queryState) schema.Placeholder {
	switch {
	case state == stateAfterIn:
		return schema.Placeholder{Kind: schema.PlaceholderInList, Name: tok.Name}

	case state == stateInOrderBy && tok.Kind == token.PLACEHOLDER_NAMED:
		return schema.Placeholder{Kind: schema.PlaceholderDynamicClause, Name: tok.Name, ClauseKind: schema.DynamicOrderBy}

	case state == stateInPredicate && tok.Kind == token.PLACEHOLDER_NAMED:
		return schema.Placeholder{Kind: schema.PlaceholderDynamicClause, Name: tok.Name, ClauseKind: schema.DynamicPredicate}

	case tok.Kind == token.PLACEHOLDER_NAMED:
		return schema.Placeholder{Kind: schema.PlaceholderValue, Name: tok.Name}

	default:
		return schema.Placeholder{Kind: schema.PlaceholderPositional}
	}
}
