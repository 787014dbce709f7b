// Package schema implements the dialect's schema/query model: tables,
// columns, foreign keys, and named-query metadata linking parsed SQL
// fragments to their code-generated counterparts.
//
// Grounded on sqldef's per-driver schema.Table/Column/ForeignKey/Index
// shapes (github.com/k0kubun/sqldef/schema), generalized to the dialect's
// single SQLite-flavored grammar and extended with the mapped-class-name
// and named-query concepts on top of plain DDL.
package schema

import (
	"github.com/freeeve/dialectgen/sqltype"
)

// Column describes one table column.
type Column struct {
	Name       string
	SqlType    sqltype.SqlType
	TypeText   string // the sql_type text as written, size/precision preserved
	Nullable   bool
	Default    string // raw DEFAULT expression text, empty if absent
	PrimaryKey bool
	PKOrder    string // ASC/DESC on the PRIMARY KEY column constraint, empty if unspecified
	AutoIncr   bool
	Unique     bool
	References *ColumnReference
}

// ColumnReference is a column-level REFERENCES constraint.
type ColumnReference struct {
	Table   string
	Columns []string
	OnDelete string // raw action text, e.g. "CASCADE", empty if absent
	OnUpdate string
}

// ForeignKey is a table-level FOREIGN KEY (cols) REFERENCES table (cols).
type ForeignKey struct {
	Columns          []string
	ReferenceTable   string
	ReferenceColumns []string
	OnDelete         string
	OnUpdate         string
}

// Index is a CREATE INDEX definition.
type Index struct {
	Name    string
	Table   string
	Columns []string
	Unique  bool
}

// View is a CREATE VIEW definition. The body is kept as opaque SQL text —
// parsing SELECT statements fully is out of scope.
type View struct {
	Name            string
	MappedClassName string
	SelectSQL       string
}

// Table describes one CREATE TABLE definition.
type Table struct {
	Name            string
	Columns         []Column
	PrimaryKey      []string // explicit table-level PRIMARY KEY (cols); may be empty (implicit rowid)
	WithoutRowid    bool
	ForeignKeys     []ForeignKey
	MappedClassName string // from AS "ClassName", or derived
	Indexes         []Index
}

// ColumnByName looks up a column by name, case-sensitively (the dialect
// preserves column-name casing as written; uniqueness is checked
// case-insensitively at validation time).
func (t *Table) ColumnByName(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// PlaceholderKind discriminates the four named-query placeholder shapes.
type PlaceholderKind int

const (
	PlaceholderPositional PlaceholderKind = iota
	PlaceholderValue
	PlaceholderInList
	PlaceholderDynamicClause
)

// DynamicClauseKind discriminates the two dynamic-clause roles.
type DynamicClauseKind int

const (
	DynamicPredicate DynamicClauseKind = iota
	DynamicOrderBy
)

// Placeholder is one named-query placeholder occurrence.
type Placeholder struct {
	Kind PlaceholderKind

	// Name holds the placeholder's $name (for Value/InList/DynamicClause);
	// empty for a bare Positional placeholder.
	Name string

	// ExpectedSqlType is set for PlaceholderValue when the query's local
	// context determines an expected type (e.g. "col = $name" binds
	// $name's expected type to col's); zero value + HasExpectedType=false
	// otherwise.
	ExpectedSqlType sqltype.SqlType
	HasExpectedType bool

	// ClauseKind is set for PlaceholderDynamicClause.
	ClauseKind DynamicClauseKind
}

// SqlFragment is one element of a NamedQuery's alternating literal/
// placeholder sequence.
type SqlFragment struct {
	// Exactly one of Literal or Placeholder is populated.
	Literal     string
	Placeholder *Placeholder
}

// NamedQuery is a labeled SQL statement.
type NamedQuery struct {
	Label        string
	Fragments    []SqlFragment
	Placeholders []Placeholder

	// ResultColumns is populated only for simple single-table
	// "SELECT col, col FROM table" queries; nil
	// otherwise, deferring richer inference to the out-of-scope
	// code-writer.
	ResultColumns []sqltype.SqlType
}

// Schema is the top-level parsed model.
type Schema struct {
	Tables  []Table
	Views   []View
	Queries []NamedQuery
}

// TableByName looks up a table case-insensitively (table-name uniqueness
// is also case-insensitive).
func (s *Schema) TableByName(name string) (*Table, bool) {
	lname := lower(name)
	for i := range s.Tables {
		if lower(s.Tables[i].Name) == lname {
			return &s.Tables[i], true
		}
	}
	return nil, false
}

func lower(s string) string {
	buf := []byte(s)
	for i, c := range buf {
		if c >= 'A' && c <= 'Z' {
			buf[i] = c + ('a' - 'A')
		}
	}
	return string(buf)
}
