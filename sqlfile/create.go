package sqlfile

import (
	"github.com/freeeve/dialectgen/schema"
	"github.com/freeeve/dialectgen/token"
)

// parseCreateStatement handles CREATE TABLE | CREATE [UNIQUE] INDEX |
// CREATE VIEW, dispatching on the keyword immediately after CREATE.
func (p *parser) parseCreateStatement(s *schema.Schema) {
	p.advance() // CREATE

	unique := false
	if p.isKeyword("UNIQUE") {
		unique = true
		p.advance()
	}

	switch {
	case p.isKeyword("TABLE"):
		p.parseCreateTable(s)
	case p.isKeyword("INDEX"):
		p.parseCreateIndex(s, unique)
	case p.isKeyword("VIEW"):
		p.parseCreateView(s)
	default:
		p.errorf(token.UnexpectedToken, p.cur(), "expected TABLE, INDEX, or VIEW after CREATE")
	}
}

func (p *parser) parseCreateTable(s *schema.Schema) {
	p.advance() // TABLE
	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		return
	}
	t := schema.Table{Name: nameTok.Lexeme()}

	if _, ok := p.expect(token.LPAREN); !ok {
		return
	}

	for {
		if p.isKeyword("PRIMARY") || p.isKeyword("UNIQUE") || p.isKeyword("FOREIGN") {
			p.parseTableConstraint(&t)
		} else {
			col, ok := p.parseColumnDef()
			if ok {
				t.Columns = append(t.Columns, col)
			}
		}
		if p.cur().Kind != token.COMMA {
			break
		}
		p.advance()
	}

	if _, ok := p.expect(token.RPAREN); !ok {
		return
	}

	if p.isKeyword("WITHOUT") {
		p.advance()
		p.expectKeyword("ROWID")
		t.WithoutRowid = true
	}

	if p.isKeyword("AS") {
		p.advance()
		nameTok, ok := p.expect(token.IDENT)
		if ok {
			t.MappedClassName = nameTok.Name
		}
	}
	if t.MappedClassName == "" {
		t.MappedClassName = schema.DeriveClassName(t.Name)
	}

	s.Tables = append(s.Tables, t)
}

func (p *parser) parseColumnDef() (schema.Column, bool) {
	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		return schema.Column{}, false
	}
	typeTok := p.cur()
	if typeTok.Kind != token.IDENT && typeTok.Kind != token.KEYWORD {
		p.errorf(token.UnexpectedToken, typeTok, "expected a column type")
		return schema.Column{}, false
	}
	p.advance()
	typeText := typeTok.Lexeme()

	if p.cur().Kind == token.LPAREN {
		start := p.pos
		p.advance()
		for p.cur().Kind != token.RPAREN && !p.atEOF() {
			p.advance()
		}
		if p.cur().Kind == token.RPAREN {
			p.advance()
		}
		typeText = joinLexemes(p.tokens[start-1 : p.pos])
	}

	sqlT, _ := sqlTypeFromLexeme(typeTok.Lexeme())
	col := schema.Column{
		Name:     nameTok.Lexeme(),
		SqlType:  sqlT,
		TypeText: typeText,
		Nullable: true,
	}

	for p.parseColumnConstraint(&col) {
	}
	return col, true
}

// parseColumnConstraint consumes one recognized constraint keyword and
// reports whether it consumed anything, so the caller's loop naturally
// stops at the next comma/closing paren.
func (p *parser) parseColumnConstraint(col *schema.Column) bool {
	switch {
	case p.isKeyword("PRIMARY"):
		p.advance()
		p.expectKeyword("KEY")
		col.PrimaryKey = true
		col.Nullable = false
		if p.isKeyword("ASC") || p.isKeyword("DESC") {
			col.PKOrder = p.cur().Keyword
			p.advance()
		}
		if p.isKeyword("AUTOINCREMENT") {
			col.AutoIncr = true
			p.advance()
		}
		return true
	case p.isKeyword("NOT"):
		p.advance()
		p.expectKeyword("NULL")
		col.Nullable = false
		return true
	case p.isKeyword("UNIQUE"):
		p.advance()
		col.Unique = true
		return true
	case p.isKeyword("DEFAULT"):
		p.advance()
		col.Default = p.parseDefaultExpr()
		return true
	case p.isKeyword("REFERENCES"):
		p.advance()
		col.References = p.parseColumnReference()
		return true
	default:
		return false
	}
}

// parseDefaultExpr consumes the single token (or parenthesized group)
// making up a DEFAULT expression and returns its raw source text. Parsing
// the expression itself is out of scope here — this is DDL metadata, not a
// renderable runtime query.
func (p *parser) parseDefaultExpr() string {
	if p.cur().Kind == token.LPAREN {
		start := p.pos
		depth := 0
		for !p.atEOF() {
			k := p.cur().Kind
			if k == token.LPAREN {
				depth++
			} else if k == token.RPAREN {
				depth--
				p.advance()
				if depth == 0 {
					break
				}
				continue
			}
			p.advance()
		}
		return joinLexemes(p.tokens[start:p.pos])
	}
	start := p.pos
	p.advance()
	return joinLexemes(p.tokens[start:p.pos])
}

func (p *parser) parseColumnReference() *schema.ColumnReference {
	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		return nil
	}
	ref := &schema.ColumnReference{Table: nameTok.Lexeme()}
	if p.cur().Kind == token.LPAREN {
		ref.Columns = p.parseColumnList()
	}
	p.parseReferenceActions(&ref.OnDelete, &ref.OnUpdate)
	return ref
}

func (p *parser) parseReferenceActions(onDelete, onUpdate *string) {
	for p.isKeyword("ON") {
		p.advance()
		switch {
		case p.isKeyword("DELETE"):
			p.advance()
			*onDelete = p.parseActionText()
		case p.isKeyword("UPDATE"):
			p.advance()
			*onUpdate = p.parseActionText()
		default:
			return
		}
	}
}

func (p *parser) parseActionText() string {
	start := p.pos
	for (p.cur().Kind == token.IDENT || p.cur().Kind == token.KEYWORD) && !p.atEOF() {
		p.advance()
		if p.isKeyword("ON") || p.cur().Kind == token.COMMA || p.cur().Kind == token.RPAREN {
			break
		}
	}
	return joinLexemes(p.tokens[start:p.pos])
}

func (p *parser) parseColumnList() []string {
	var cols []string
	p.advance() // (
	for {
		t, ok := p.expect(token.IDENT)
		if !ok {
			break
		}
		cols = append(cols, t.Lexeme())
		if p.cur().Kind != token.COMMA {
			break
		}
		p.advance()
	}
	p.expect(token.RPAREN)
	return cols
}

func (p *parser) parseTableConstraint(t *schema.Table) {
	switch {
	case p.isKeyword("PRIMARY"):
		p.advance()
		p.expectKeyword("KEY")
		t.PrimaryKey = p.parseColumnList()
	case p.isKeyword("UNIQUE"):
		p.advance()
		cols := p.parseColumnList()
		t.Indexes = append(t.Indexes, schema.Index{Table: t.Name, Columns: cols, Unique: true})
	case p.isKeyword("FOREIGN"):
		p.advance()
		p.expectKeyword("KEY")
		cols := p.parseColumnList()
		p.expectKeyword("REFERENCES")
		refTok, ok := p.expect(token.IDENT)
		if !ok {
			return
		}
		refCols := p.parseColumnList()
		fk := schema.ForeignKey{Columns: cols, ReferenceTable: refTok.Lexeme(), ReferenceColumns: refCols}
		p.parseReferenceActions(&fk.OnDelete, &fk.OnUpdate)
		t.ForeignKeys = append(t.ForeignKeys, fk)
	}
}

func (p *parser) parseCreateIndex(s *schema.Schema, unique bool) {
	p.advance() // INDEX
	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		return
	}
	if !p.expectKeyword("ON") {
		return
	}
	tableTok, ok := p.expect(token.IDENT)
	if !ok {
		return
	}
	cols := p.parseColumnList()
	s.Tables = appendIndex(s.Tables, tableTok.Lexeme(), schema.Index{
		Name: nameTok.Lexeme(), Table: tableTok.Lexeme(), Columns: cols, Unique: unique,
	})
}

func appendIndex(tables []schema.Table, tableName string, idx schema.Index) []schema.Table {
	for i := range tables {
		if tables[i].Name == tableName {
			tables[i].Indexes = append(tables[i].Indexes, idx)
			return tables
		}
	}
	return tables
}

func (p *parser) parseCreateView(s *schema.Schema) {
	p.advance() // VIEW
	nameTok, ok := p.expect(token.IDENT)
	if !ok {
		return
	}
	v := schema.View{Name: nameTok.Lexeme(), MappedClassName: schema.DeriveClassName(nameTok.Lexeme())}
	if p.isKeyword("AS") {
		p.advance()
	}
	start := p.pos
	for p.cur().Kind != token.SEMICOLON && !p.atEOF() {
		p.advance()
	}
	v.SelectSQL = joinLexemes(p.tokens[start:p.pos])
	s.Views = append(s.Views, v)
}

func joinLexemes(toks []token.Token) string {
	var b []byte
	for i, t := range toks {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, t.Lexeme()...)
	}
	return string(b)
}
