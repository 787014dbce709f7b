package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freeeve/dialectgen/sqltype"
)

func sampleSchema() *Schema {
	return &Schema{
		Tables: []Table{
			{
				Name: "users",
				Columns: []Column{
					{Name: "id", SqlType: sqltype.Integer, PrimaryKey: true},
					{Name: "email", SqlType: sqltype.Text},
				},
				PrimaryKey: []string{"id"},
			},
			{
				Name: "posts",
				Columns: []Column{
					{Name: "id", SqlType: sqltype.Integer, PrimaryKey: true},
					{Name: "author_id", SqlType: sqltype.Integer},
				},
				PrimaryKey: []string{"id"},
				ForeignKeys: []ForeignKey{
					{Columns: []string{"author_id"}, ReferenceTable: "users", ReferenceColumns: []string{"id"}},
				},
			},
		},
	}
}

func TestValidateAcceptsWellFormedSchema(t *testing.T) {
	require.NoError(t, sampleSchema().Validate())
}

func TestValidateRejectsDuplicateTable(t *testing.T) {
	s := sampleSchema()
	s.Tables = append(s.Tables, Table{Name: "Users"})
	require.Error(t, s.Validate())
}

func TestValidateRejectsDuplicateColumn(t *testing.T) {
	s := sampleSchema()
	s.Tables[0].Columns = append(s.Tables[0].Columns, Column{Name: "ID"})
	require.Error(t, s.Validate())
}

func TestValidateRejectsUnknownForeignKeyTable(t *testing.T) {
	s := sampleSchema()
	s.Tables[1].ForeignKeys[0].ReferenceTable = "nonexistent"
	require.Error(t, s.Validate())
}

func TestValidateRejectsForeignKeyArityMismatch(t *testing.T) {
	s := sampleSchema()
	s.Tables[1].ForeignKeys[0].ReferenceColumns = []string{"id", "email"}
	require.Error(t, s.Validate())
}

func TestValidateRejectsWithoutRowidMissingPrimaryKey(t *testing.T) {
	s := &Schema{Tables: []Table{{Name: "t", WithoutRowid: true}}}
	require.Error(t, s.Validate())
}

func TestTableByNameIsCaseInsensitive(t *testing.T) {
	s := sampleSchema()
	tbl, ok := s.TableByName("USERS")
	require.True(t, ok)
	require.Equal(t, "users", tbl.Name)
}

func TestDeriveClassNameTitleCasesSegments(t *testing.T) {
	require.Equal(t, "UserAccount", DeriveClassName("user_accounts"))
	require.Equal(t, "Post", DeriveClassName("posts"))
	require.Equal(t, "Category", DeriveClassName("categories"))
	require.Equal(t, "Box", DeriveClassName("boxes"))
}
