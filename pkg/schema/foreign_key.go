package schema

import "github.com/pkg/errors"

// ForeignKey describes a referential constraint from an ordered sequence of
// local columns to the same number of columns on a referenced table.
type ForeignKey struct {
	// Columns is the ordered list of local column names.
	Columns []string

	// ReferencedTable is the table the constraint points at.
	ReferencedTable string

	// ReferencedColumns is the ordered list of referenced column names.
	// Must have the same length as Columns.
	ReferencedColumns []string

	// Constraint optionally names the constraint. When empty, adapters
	// derive a name from the table and column names.
	Constraint string

	// OnDelete and OnUpdate select the referential action taken when the
	// referenced row is deleted or its key updated. Empty means the engine
	// default (NO ACTION).
	OnDelete ReferentialAction
	OnUpdate ReferentialAction
}

// Validate checks the foreign key descriptor's invariants.
func (fk ForeignKey) Validate() error {
	if len(fk.Columns) == 0 {
		return errors.New("foreign key must cover at least one column")
	}

	if fk.ReferencedTable == "" {
		return errors.New("foreign key must name a referenced table")
	}

	if len(fk.Columns) != len(fk.ReferencedColumns) {
		return errors.Errorf(
			"foreign key column count mismatch: %d local vs %d referenced",
			len(fk.Columns), len(fk.ReferencedColumns),
		)
	}

	return nil
}
