package schema

import "github.com/pkg/errors"

// Column describes a single table column: its logical type, nullability,
// default value, and size attributes. Adapters translate the logical type
// into the engine's native SQL type via their type map.
//
// Example usage:
//
//	price := schema.Column{
//		Name:      "price",
//		Type:      schema.TypeDecimal,
//		Precision: 10,
//		Scale:     2,
//		Null:      false,
//		Default:   0,
//	}
type Column struct {
	// Name is the column name. Must be non-empty.
	Name string

	// Type is the logical column type from the fixed enumerated set.
	Type ColumnType

	// Null indicates whether the column accepts NULL values.
	Null bool

	// Default is the column's default value, rendered as a SQL literal by
	// the adapter. A nil Default means no DEFAULT clause is emitted.
	Default any

	// Limit is the length for string/binary types (e.g. VARCHAR(Limit)).
	// Zero means the adapter's default length applies.
	Limit int

	// Precision and Scale size decimal/float types (e.g. DECIMAL(10, 2)).
	Precision int
	Scale     int

	// Identity marks the column as auto-incrementing. How identity is
	// expressed (AUTOINCREMENT, GENERATED ... AS IDENTITY) is engine-specific.
	Identity bool

	// Comment is an optional column comment for engines that support them.
	Comment string
}

// Validate checks the column descriptor's invariants.
func (c Column) Validate() error {
	if c.Name == "" {
		return errors.New("column name must not be empty")
	}

	if c.Type == "" {
		return errors.Errorf("column %q has no logical type", c.Name)
	}

	if c.Scale > 0 && c.Precision == 0 {
		return errors.Errorf("column %q specifies scale without precision", c.Name)
	}

	return nil
}
