package sqlfile

import (
	"strings"

	"github.com/freeeve/dialectgen/schema"
	"github.com/freeeve/dialectgen/sqltype"
	"github.com/freeeve/dialectgen/token"
)

// inferResultColumns guesses a NamedQuery's result column types for the
// simple case: "SELECT col1, col2, ... FROM table" over exactly one known
// table, no joins. Anything else is left nil, deferring to the
// out-of-scope code-writer (the select-list may be "*", a join, an
// aggregate, ...).
func inferResultColumns(q *schema.NamedQuery, s *schema.Schema) {
	fields, tableName, ok := parseSimpleSelect(queryText(q))
	if !ok {
		return
	}
	table, ok := s.TableByName(tableName)
	if !ok {
		return
	}

	types := make([]sqltype.SqlType, 0, len(fields))
	for _, f := range fields {
		col, ok := table.ColumnByName(strings.TrimSpace(f))
		if !ok {
			return
		}
		types = append(types, col.SqlType)
	}
	q.ResultColumns = types
}

// queryText reconstitutes the literal SQL text of q, skipping placeholder
// fragments (a column-name parse doesn't need their positions).
func queryText(q *schema.NamedQuery) string {
	var b strings.Builder
	for _, f := range q.Fragments {
		if f.Literal != "" {
			b.WriteString(f.Literal)
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// resolveExpectedTypes fills in ExpectedSqlType/HasExpectedType for every
// Value placeholder that appeared as "column = $name": it finds the query's
// FROM table (a plain token scan over the query's own tokens, tolerant of
// WHERE/JOIN clauses that parseSimpleSelect rejects) and looks each hinted
// column up against it.
func resolveExpectedTypes(q *schema.NamedQuery, s *schema.Schema, toks []token.Token, valueColumns map[int]string) {
	if len(valueColumns) > 0 {
		if tableName, ok := findFromTable(toks); ok {
			if table, ok := s.TableByName(tableName); ok {
				for idx, colName := range valueColumns {
					if col, ok := table.ColumnByName(colName); ok {
						q.Placeholders[idx].ExpectedSqlType = col.SqlType
						q.Placeholders[idx].HasExpectedType = true
					}
				}
			}
		}
	}

	// q.Fragments holds its own Placeholder copies (each appended before
	// q.Placeholders reaches its final backing array); resync them now
	// that q.Placeholders is final.
	pidx := 0
	for i := range q.Fragments {
		if q.Fragments[i].Placeholder != nil {
			*q.Fragments[i].Placeholder = q.Placeholders[pidx]
			pidx++
		}
	}
}

// findFromTable returns the identifier immediately following the first FROM
// keyword in toks that is followed by an identifier. Parenthesis nesting is
// not tracked, so a FROM inside a subquery is not told apart from the outer
// one.
func findFromTable(toks []token.Token) (string, bool) {
	for i, t := range toks {
		if t.Kind == token.KEYWORD && t.Keyword == "FROM" && i+1 < len(toks) {
			next := toks[i+1]
			if next.Kind == token.IDENT {
				return next.Lexeme(), true
			}
		}
	}
	return "", false
}

// parseSimpleSelect recognizes "SELECT f1, f2, ... FROM table" at the start
// of the text, with nothing else following FROM's table name (no JOIN, no
// WHERE, no further clauses) — anything richer returns ok=false.
func parseSimpleSelect(text string) (fields []string, table string, ok bool) {
	upper := strings.ToUpper(text)
	if !strings.HasPrefix(strings.TrimSpace(upper), "SELECT") {
		return nil, "", false
	}
	fromIdx := strings.Index(upper, "FROM")
	if fromIdx < 0 {
		return nil, "", false
	}
	selectList := strings.TrimSpace(text[len("SELECT"):fromIdx])
	if selectList == "" || selectList == "*" || strings.Contains(selectList, "(") {
		return nil, "", false
	}
	rest := strings.Fields(text[fromIdx+len("FROM"):])
	if len(rest) != 1 {
		return nil, "", false
	}
	return strings.Split(selectList, ","), rest[0], true
}
