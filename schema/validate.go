package schema

import (
	"fmt"

	"github.com/pkg/errors"
)

// Validate checks cross-table invariants that a single CREATE TABLE
// statement can't check on its own: table-name uniqueness, per-table
// column-name uniqueness, the without-rowid-requires-primary-key rule, and
// that every foreign key resolves to a real table and a column list of
// matching arity. It returns the first violation found, wrapped with
// errors.Wrap so callers get a stack trace at the point of failure.
func (s *Schema) Validate() error {
	seenTables := map[string]string{} // lowercase name -> original-case name
	for _, t := range s.Tables {
		lname := lower(t.Name)
		if orig, dup := seenTables[lname]; dup {
			return errors.Errorf("duplicate table %q (conflicts with %q)", t.Name, orig)
		}
		seenTables[lname] = t.Name

		if err := validateTable(&t); err != nil {
			return errors.Wrapf(err, "table %q", t.Name)
		}
	}

	for _, t := range s.Tables {
		for _, fk := range t.ForeignKeys {
			if err := s.validateForeignKey(&t, &fk); err != nil {
				return errors.Wrapf(err, "table %q", t.Name)
			}
		}
	}

	return nil
}

func validateTable(t *Table) error {
	seenCols := map[string]string{}
	for _, c := range t.Columns {
		lname := lower(c.Name)
		if orig, dup := seenCols[lname]; dup {
			return errors.Errorf("duplicate column %q (conflicts with %q)", c.Name, orig)
		}
		seenCols[lname] = c.Name
	}

	if t.WithoutRowid && len(primaryKeyColumns(t)) == 0 {
		return errors.New("WITHOUT ROWID requires an explicit PRIMARY KEY")
	}

	for _, col := range t.PrimaryKey {
		if _, ok := t.ColumnByName(col); !ok {
			return errors.Errorf("PRIMARY KEY references unknown column %q", col)
		}
	}

	return nil
}

// primaryKeyColumns returns the table's effective primary key column list,
// whether declared at the table level or via a single column-level
// PRIMARY KEY constraint.
func primaryKeyColumns(t *Table) []string {
	if len(t.PrimaryKey) > 0 {
		return t.PrimaryKey
	}
	var cols []string
	for _, c := range t.Columns {
		if c.PrimaryKey {
			cols = append(cols, c.Name)
		}
	}
	return cols
}

func (s *Schema) validateForeignKey(t *Table, fk *ForeignKey) error {
	target, ok := s.TableByName(fk.ReferenceTable)
	if !ok {
		return errors.Errorf("foreign key references unknown table %q", fk.ReferenceTable)
	}

	if len(fk.Columns) != len(fk.ReferenceColumns) {
		return errors.Errorf(
			"foreign key column count %d does not match reference column count %d",
			len(fk.Columns), len(fk.ReferenceColumns),
		)
	}

	for _, c := range fk.Columns {
		if _, ok := t.ColumnByName(c); !ok {
			return errors.Errorf("foreign key references unknown local column %q", c)
		}
	}
	for _, c := range fk.ReferenceColumns {
		if _, ok := target.ColumnByName(c); !ok {
			return fmt.Errorf("foreign key references unknown column %q on table %q", c, target.Name)
		}
	}

	return nil
}
