package schema

import "github.com/pkg/errors"

type (
	// Table describes a table: its name, ordered columns, indexes, foreign
	// keys, and engine-specific options. Tables are value descriptors; the
	// adapter owning the connection translates them into DDL.
	Table struct {
		// Name is the table name, unique within the connected database.
		Name string

		// Columns is the ordered sequence of column descriptors.
		Columns []Column

		// Indexes is the ordered sequence of index descriptors.
		Indexes []Index

		// ForeignKeys is the ordered sequence of foreign key descriptors.
		ForeignKeys []ForeignKey

		// Options holds engine-specific table options.
		Options TableOptions
	}

	// TableOptions controls engine-specific aspects of table creation.
	// Absent fields use adapter defaults.
	TableOptions struct {
		// ID overrides the identity column strategy. When nil, adapters
		// prepend a default auto-incrementing "id" primary key column.
		// A pointer to an empty string disables the identity column
		// entirely (use PrimaryKey to declare an explicit key instead).
		ID *string

		// PrimaryKey declares an explicit composite primary key over the
		// named columns. Only consulted when the identity column is
		// disabled via ID.
		PrimaryKey []string

		// Comment is an optional table comment for engines that support them.
		Comment string

		// Engine selects the table engine on ClickHouse (e.g. "MergeTree()").
		// Ignored by engines without a table engine concept.
		Engine string

		// OrderBy sets the ClickHouse ORDER BY clause columns. Ignored by
		// other engines.
		OrderBy []string
	}
)

// IdentityColumn returns the name of the table's auto-incrementing identity
// column, or "" when the identity column is disabled via Options.ID.
func (t Table) IdentityColumn() string {
	if t.Options.ID == nil {
		return "id"
	}
	return *t.Options.ID
}

// HasColumn reports whether the descriptor declares a column with the given name.
func (t Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col.Name == name {
			return true
		}
	}
	return false
}

// Validate checks the table descriptor and all nested descriptors.
func (t Table) Validate() error {
	if t.Name == "" {
		return errors.New("table name must not be empty")
	}

	seen := make(map[string]struct{}, len(t.Columns))
	for _, col := range t.Columns {
		if err := col.Validate(); err != nil {
			return errors.Wrapf(err, "table %q", t.Name)
		}

		if _, ok := seen[col.Name]; ok {
			return errors.Errorf("table %q declares column %q twice", t.Name, col.Name)
		}
		seen[col.Name] = struct{}{}
	}

	names := make(map[string]struct{}, len(t.Indexes))
	for _, idx := range t.Indexes {
		if err := idx.Validate(); err != nil {
			return errors.Wrapf(err, "table %q", t.Name)
		}

		if idx.Name != "" {
			if _, ok := names[idx.Name]; ok {
				return errors.Errorf("table %q declares index %q twice", t.Name, idx.Name)
			}
			names[idx.Name] = struct{}{}
		}
	}

	for _, fk := range t.ForeignKeys {
		if err := fk.Validate(); err != nil {
			return errors.Wrapf(err, "table %q", t.Name)
		}
	}

	return nil
}
