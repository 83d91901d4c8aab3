package adapter

import "github.com/pseudomuto/groundskeeper/pkg/schema"

// Dialect captures the engine-specific knowledge the shared SQLAdapter base
// needs: driver selection, identifier quoting, the logical-to-native type map,
// and the handful of SQL fragments that differ between engines.
//
// Dialects are pure helper logic composed into each engine's adapter; they
// hold no connection state. Engines with behavior the base cannot express
// (introspection, table rebuilds) implement those operations themselves on
// top of the base's execution helpers.
type Dialect interface {
	// Name is the stable engine-family identifier (AdapterType).
	Name() string

	// Driver is the database/sql driver name to open connections with.
	Driver() string

	// HasTransactions reports whether the engine supports transactional DDL.
	HasTransactions() bool

	// QuoteIdentifier escapes an identifier per the engine's quoting rule.
	QuoteIdentifier(name string) string

	// ColumnTypes returns the logical types this engine maps.
	ColumnTypes() []schema.ColumnType

	// SQLType maps a column's logical type to the native SQL type, honoring
	// limit/precision/scale. Unmapped types fail with *UnsupportedTypeError.
	SQLType(column schema.Column) (string, error)

	// TableExistsSQL returns a query yielding at least one row iff the named
	// table exists in the connected database.
	TableExistsSQL(table string) string

	// VersionTableSQL returns the idempotent DDL creating the version-store
	// table under the given (already quoted) name.
	VersionTableSQL(quotedTable string) string
}
