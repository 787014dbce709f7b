// Package lexer provides the single-pass SQL tokenizer for the dialect.
// It never aborts on malformed input: errors are accumulated and the scan
// continues to completion.
package lexer

import (
	"fmt"
	"strings"

	"github.com/freeeve/dialectgen/token"
)

// lexer holds the mutable scan state, in the byte-offset scanning style of
// freeeve/machparse's lexer, generalized to the dialect's closed token set
// and placeholder syntax.
type lexer struct {
	input  string
	start  int
	pos    int
	tokens []token.Token
	errs   []token.Error
}

// Tokenize scans source in a single pass and returns every token (the last
// always EOF) plus any diagnostics encountered. It never returns an error
// value of its own; malformed input is reported via the errors slice while
// the tokenization still completes.
func Tokenize(source string) ([]token.Token, []token.Error) {
	l := &lexer{input: source}
	for {
		tok := l.scan()
		l.tokens = append(l.tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return l.tokens, l.errs
}

func (l *lexer) errorf(kind token.ErrorKind, span token.Span, format string, args ...any) {
	l.errs = append(l.errs, token.Error{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Location: span,
	})
}

func (l *lexer) span() token.Span {
	return token.Span{Start: l.start, End: l.pos, Lexeme: l.input[l.start:l.pos]}
}

func (l *lexer) atEnd() bool { return l.pos >= len(l.input) }

func (l *lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.input[l.pos]
}

func (l *lexer) peekAt(offset int) byte {
	i := l.pos + offset
	if i < 0 || i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

func (l *lexer) advance() byte {
	c := l.input[l.pos]
	l.pos++
	return c
}

func (l *lexer) scan() token.Token {
	l.skipWhitespaceAndComments()
	l.start = l.pos

	if l.atEnd() {
		return token.Token{Kind: token.EOF, Span: token.Span{Start: l.pos, End: l.pos}}
	}

	c := l.peek()

	switch {
	case c == '(':
		l.pos++
		return l.make(token.LPAREN)
	case c == ')':
		l.pos++
		return l.make(token.RPAREN)
	case c == ',':
		l.pos++
		return l.make(token.COMMA)
	case c == ';':
		l.pos++
		return l.make(token.SEMICOLON)
	case c == '+':
		l.pos++
		return l.make(token.PLUS)
	case c == '-':
		l.pos++
		return l.make(token.MINUS)
	case c == '*':
		l.pos++
		return l.make(token.STAR)
	case c == '/':
		l.pos++
		return l.make(token.SLASH)
	case c == '.':
		if isDigit(l.peekAt(1)) {
			return l.scanNumber()
		}
		l.pos++
		return l.make(token.DOT)
	case c == '<':
		l.pos++
		if l.peek() == '=' {
			l.pos++
			return l.make(token.LE)
		}
		return l.make(token.LT)
	case c == '>':
		l.pos++
		if l.peek() == '=' {
			l.pos++
			return l.make(token.GE)
		}
		return l.make(token.GT)
	case c == '=':
		l.pos++
		return l.make(token.EQ)
	case c == '!':
		l.pos++
		if l.peek() == '=' {
			l.pos++
			return l.make(token.NEQ)
		}
		l.errorf(token.UnexpectedCharacter, l.span(), "unexpected character %q", c)
		return l.make(token.ILLEGAL)
	case c == '\'':
		return l.scanString(false)
	case c == '"':
		return l.scanQuotedIdent()
	case c == '?':
		return l.scanQuestion()
	case c == '$':
		return l.scanSigilPlaceholder('$')
	case c == '@':
		return l.scanSigilPlaceholder('@')
	case c == ':':
		return l.scanColon()
	case (c == 'x' || c == 'X') && l.peekAt(1) == '\'':
		l.pos++ // consume 'x'
		return l.scanString(true)
	case isIdentStart(c):
		return l.scanIdentifier()
	case isDigit(c):
		return l.scanNumber()
	default:
		l.pos++
		l.errorf(token.UnexpectedCharacter, l.span(), "unexpected character %q", c)
		return l.make(token.ILLEGAL)
	}
}

func (l *lexer) make(kind token.Kind) token.Token {
	return token.Token{Kind: kind, Span: l.span()}
}

func (l *lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		switch l.peek() {
		case ' ', '\t', '\n', '\r':
			l.pos++
		case '-':
			if l.peekAt(1) == '-' {
				l.pos += 2
				for !l.atEnd() && l.peek() != '\n' {
					l.pos++
				}
				continue
			}
			return
		case '/':
			if l.peekAt(1) == '*' {
				l.pos += 2
				l.skipBlockComment()
				continue
			}
			return
		default:
			return
		}
	}
}

// skipBlockComment consumes up to the first "*/", non-nestable — SQLite
// itself does not nest block comments.
func (l *lexer) skipBlockComment() {
	for !l.atEnd() {
		if l.peek() == '*' && l.peekAt(1) == '/' {
			l.pos += 2
			return
		}
		l.pos++
	}
	// Unterminated block comment has no dedicated error kind; scanning
	// simply stops at EOF and the next token will be EOF.
}

func (l *lexer) scanIdentifier() token.Token {
	for !l.atEnd() && isIdentCont(l.peek()) {
		l.pos++
	}
	lexeme := l.input[l.start:l.pos]
	kind, kw := token.LookupIdent(lexeme)
	tok := l.make(kind)
	tok.Keyword = kw
	return tok
}

// scanNumber implements SQLite's numeric-literal grammar: hex (0x +
// one-or-more hex digits), or decimal digits with an optional fraction and
// optional scientific-notation exponent.
func (l *lexer) scanNumber() token.Token {
	if l.peek() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		l.pos += 2
		digits := 0
		for !l.atEnd() && isHexDigit(l.peek()) {
			l.pos++
			digits++
		}
		if digits == 0 {
			l.errorf(token.ExpectedDigit, l.span(), "expected hex digit after 0x")
		}
		tok := l.make(token.NUMBER)
		tok.Num = &token.NumberPayload{Lexeme: tok.Lexeme(), Hex: true}
		return tok
	}

	intDigits := 0
	for !l.atEnd() && isDigit(l.peek()) {
		l.pos++
		intDigits++
	}

	if l.peek() == '.' {
		l.pos++
		fracDigits := 0
		for !l.atEnd() && isDigit(l.peek()) {
			l.pos++
			fracDigits++
		}
		if intDigits == 0 && fracDigits == 0 {
			l.errorf(token.ExpectedDigit, l.span(), "expected digit adjacent to decimal point")
		}
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		mark := l.pos
		l.pos++
		if !l.atEnd() && (l.peek() == '+' || l.peek() == '-') {
			l.pos++
		}
		expDigits := 0
		for !l.atEnd() && isDigit(l.peek()) {
			l.pos++
			expDigits++
		}
		if expDigits == 0 {
			l.errorf(token.ExpectedDigit, token.Span{Start: mark, End: l.pos, Lexeme: l.input[mark:l.pos]},
				"expected digit in exponent")
		}
	}

	tok := l.make(token.NUMBER)
	tok.Num = &token.NumberPayload{Lexeme: tok.Lexeme()}
	return tok
}

// scanString handles both '...' text literals and (when binary is true,
// dispatched after consuming a leading x/X) x'...' binary-string literals.
// Doubled quotes inside the literal are a literal quote; EOF before the
// closing quote reports unterminated_string and still returns a token built
// from the text read so far.
func (l *lexer) scanString(binary bool) token.Token {
	l.pos++ // opening quote
	var buf strings.Builder
	for !l.atEnd() {
		c := l.peek()
		if c == '\'' {
			if l.peekAt(1) == '\'' {
				buf.WriteByte('\'')
				l.pos += 2
				continue
			}
			l.pos++
			tok := l.make(token.STRING)
			tok.Str = &token.StringPayload{Value: buf.String(), Binary: binary}
			return tok
		}
		buf.WriteByte(c)
		l.pos++
	}
	l.errorf(token.UnterminatedString, l.span(), "unterminated string literal")
	tok := l.make(token.STRING)
	tok.Str = &token.StringPayload{Value: buf.String(), Binary: binary}
	return tok
}

// scanQuotedIdent handles "..." quoted identifiers; doubled "" is a literal
// quote, matching scanString's escaping rule.
func (l *lexer) scanQuotedIdent() token.Token {
	l.pos++ // opening quote
	var buf strings.Builder
	for !l.atEnd() {
		c := l.peek()
		if c == '"' {
			if l.peekAt(1) == '"' {
				buf.WriteByte('"')
				l.pos += 2
				continue
			}
			l.pos++
			tok := l.make(token.IDENT)
			tok.Name = buf.String()
			return tok
		}
		buf.WriteByte(c)
		l.pos++
	}
	l.errorf(token.UnterminatedString, l.span(), "unterminated quoted identifier")
	tok := l.make(token.IDENT)
	tok.Name = buf.String()
	return tok
}

// scanQuestion handles '?' (bare positional) and '?N' (explicit positional
// index, where N is the consumed digit run).
func (l *lexer) scanQuestion() token.Token {
	l.pos++
	digitsStart := l.pos
	for !l.atEnd() && isDigit(l.peek()) {
		l.pos++
	}
	tok := l.make(token.PLACEHOLDER_POSITIONAL)
	if l.pos > digitsStart {
		tok.Name = l.input[digitsStart:l.pos]
	}
	return tok
}

// scanSigilPlaceholder handles $name and @name. If no identifier follows the
// sigil, that is an unexpected character (the dialect has no bare $ or @
// token otherwise).
func (l *lexer) scanSigilPlaceholder(sigil byte) token.Token {
	l.pos++ // sigil
	if !isIdentStart(l.peek()) {
		l.errorf(token.UnexpectedCharacter, l.span(), "expected identifier after %q", sigil)
		return l.make(token.ILLEGAL)
	}
	nameStart := l.pos
	for !l.atEnd() && isIdentCont(l.peek()) {
		l.pos++
	}
	tok := l.make(token.PLACEHOLDER_NAMED)
	tok.Name = l.input[nameStart:l.pos]
	return tok
}

// scanColon handles ':name' (a named placeholder, same as $name/@name) and a
// bare ':' otherwise. The bare colon is what the SQL-file parser's
// statement-start lookahead classifies as a label marker — the lexer
// itself does not distinguish the two uses.
func (l *lexer) scanColon() token.Token {
	l.pos++
	if isIdentStart(l.peek()) {
		nameStart := l.pos
		for !l.atEnd() && isIdentCont(l.peek()) {
			l.pos++
		}
		tok := l.make(token.PLACEHOLDER_NAMED)
		tok.Name = l.input[nameStart:l.pos]
		return tok
	}
	return l.make(token.LABEL_COLON)
}

func isDigit(c byte) bool    { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool { return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c >= 0x80
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
