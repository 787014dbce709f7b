// Package sqltype defines the dialect's closed SQL-type lattice (per the
// component C2): the small set of storage types the dialect understands,
// each paired with its canonical in-memory value kind.
package sqltype

// SqlType is one of the dialect's recognized column/expression storage
// types.
type SqlType int

const (
	Integer SqlType = iota
	Real
	Text
	Blob
	Boolean
	Datetime
)

func (t SqlType) String() string {
	switch t {
	case Integer:
		return "INTEGER"
	case Real:
		return "REAL"
	case Text:
		return "TEXT"
	case Blob:
		return "BLOB"
	case Boolean:
		return "BOOLEAN"
	case Datetime:
		return "DATETIME"
	default:
		return "UNKNOWN"
	}
}

// ValueKind is the canonical Go type each SqlType round-trips through when
// bound as a query parameter.
type ValueKind int

const (
	ValueInt64 ValueKind = iota
	ValueFloat64
	ValueString
	ValueBytes
	ValueBool
)

// Value returns the in-memory value kind backing t.
func (t SqlType) Value() ValueKind {
	switch t {
	case Integer:
		return ValueInt64
	case Real:
		return ValueFloat64
	case Text:
		return ValueString
	case Blob:
		return ValueBytes
	case Boolean:
		return ValueBool
	case Datetime:
		// Stored as integer milliseconds by default; a
		// ValueSerializer-style strategy may override this per
		// GenerationContext (see package gen).
		return ValueInt64
	default:
		return ValueInt64
	}
}

// Lookup resolves a SQL type-name lexeme (e.g. from a CREATE TABLE column
// definition) to its SqlType, case-insensitively, matching SQLite's
// affinity rules rather than a reserved-word list — see token/keywords.go's
// comment on why type names are not lexer keywords.
func Lookup(name string) (SqlType, bool) {
	switch lower(name) {
	case "integer", "int", "bigint", "smallint", "tinyint", "mediumint":
		return Integer, true
	case "real", "double", "float", "numeric", "decimal":
		return Real, true
	case "text", "varchar", "char", "clob":
		return Text, true
	case "blob":
		return Blob, true
	case "boolean", "bool":
		return Boolean, true
	case "datetime", "date", "timestamp":
		return Datetime, true
	default:
		return Integer, false
	}
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

// Serializer customizes how a SqlType's value is rendered/bound by a
// GenerationContext — e.g. a datetime serializer that binds RFC3339 text
// instead of the default integer-millisecond form.
type Serializer interface {
	// Encode converts a Go value of t's canonical kind into the value that
	// should actually be bound as the query parameter.
	Encode(t SqlType, value any) any
}

// DefaultSerializer implements the dialect's default encoding: every type,
// Datetime included, passes through unchanged. A Datetime value is not
// converted, so it is bound as given (the default form is an int64 of
// milliseconds; callers needing a different representation supply their
// own Serializer).
type DefaultSerializer struct{}

func (DefaultSerializer) Encode(t SqlType, value any) any { return value }
