package schema

import "github.com/pkg/errors"

// Index describes a table index over an ordered sequence of columns. Column
// order is significant: adapters match indexes by exact ordered column lists.
type Index struct {
	// Columns is the ordered list of indexed column names. Must be non-empty.
	Columns []string

	// Unique indicates a uniqueness constraint on the indexed columns.
	Unique bool

	// Name optionally overrides the generated index name. When empty,
	// adapters derive a name from the table and column names.
	Name string
}

// Validate checks the index descriptor's invariants.
func (i Index) Validate() error {
	if len(i.Columns) == 0 {
		return errors.New("index must cover at least one column")
	}

	for _, col := range i.Columns {
		if col == "" {
			return errors.New("index column names must not be empty")
		}
	}

	return nil
}
