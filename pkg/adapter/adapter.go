package adapter

import (
	"context"
	"time"

	"github.com/pseudomuto/groundskeeper/pkg/schema"
)

type (
	// Row is a single result row, mapping column names to values.
	Row map[string]any

	// Direction indicates whether a migration is being applied or reverted.
	Direction string

	// MigrationInfo identifies a migration for version-store bookkeeping.
	// The runner passes this to Migrated; adapters never inspect migration
	// bodies.
	MigrationInfo struct {
		// Version is the monotonic migration identifier, typically a
		// timestamp-derived integer like 20240101120000.
		Version int64

		// Name is the human-readable migration name.
		Name string
	}

	// VersionRecord is one row of the reserved version-store table.
	VersionRecord struct {
		Version    int64
		Name       string
		StartTime  time.Time
		EndTime    time.Time
		Breakpoint bool
	}

	// Adapter is the capability surface translating schema-object-model
	// operations and raw statements into engine-specific execution. One
	// Adapter owns exactly one logical connection and its transaction state;
	// callers must serialize access to an instance.
	//
	// All operations are blocking. Context cancellation is honored where the
	// underlying driver supports it; no timeout is imposed by this layer.
	//
	// The migration runner drives an Adapter through this lifecycle:
	//
	//	NotConnected -> Connected -> (InTransaction) -> SchemaMutated* ->
	//	VersionRecorded -> committed (or rolled back / partially applied)
	//
	// Engines that cannot roll back DDL report HasTransactions() == false and
	// the runner applies changes without a transactional safety net.
	Adapter interface {
		// Connect establishes the underlying database session. Calling
		// Connect while already connected is a no-op. Failures are reported
		// as *ConnectionError.
		Connect(ctx context.Context) error

		// Disconnect releases the session. Safe to call when not connected.
		Disconnect(ctx context.Context) error

		// Connected reports whether Connect has succeeded and Disconnect has
		// not been called since.
		Connected() bool

		// AdapterType returns a stable identifier for the engine family
		// (e.g. "sqlite", "postgres", "clickhouse").
		AdapterType() string

		// HasTransactions reports whether the engine supports transactional
		// DDL. Engines returning false cannot roll back schema changes.
		HasTransactions() bool

		// BeginTransaction opens a transaction. A single transaction may be
		// active at a time; beginning a second returns ErrTransactionOpen.
		BeginTransaction(ctx context.Context) error

		// CommitTransaction commits the active transaction. Returns
		// ErrNoTransaction when none is open.
		CommitTransaction(ctx context.Context) error

		// RollbackTransaction rolls back the active transaction. Returns
		// ErrNoTransaction when none is open.
		RollbackTransaction(ctx context.Context) error

		// Execute runs a statement and returns the number of affected rows.
		// Failures are reported as *StatementError carrying the statement text.
		Execute(ctx context.Context, sql string) (int64, error)

		// Query runs a query and returns the full result set in order.
		Query(ctx context.Context, sql string) ([]Row, error)

		// FetchRow returns the first row of the result set, or nil when the
		// result is empty.
		FetchRow(ctx context.Context, sql string) (Row, error)

		// FetchAll is an alias of Query kept for contract parity.
		FetchAll(ctx context.Context, sql string) ([]Row, error)

		// QuoteTableName escapes a table name per the engine's quoting rule.
		QuoteTableName(name string) string

		// QuoteColumnName escapes a column name per the engine's quoting rule.
		QuoteColumnName(name string) string

		// HasTable reports whether the named table exists.
		HasTable(ctx context.Context, table string) (bool, error)

		// CreateTable creates a table from the descriptor. Creating an
		// existing table fails with a SchemaError (ErrSchemaConflict).
		CreateTable(ctx context.Context, table schema.Table) error

		// RenameTable renames a table. A missing source fails with a
		// SchemaError (ErrSchemaNotFound).
		RenameTable(ctx context.Context, table, newName string) error

		// DropTable drops a table. A missing table fails with a SchemaError
		// (ErrSchemaNotFound).
		DropTable(ctx context.Context, table string) error

		// GetColumns returns the live column descriptors of a table in
		// ordinal order.
		GetColumns(ctx context.Context, table string) ([]schema.Column, error)

		// HasColumn reports whether the named column exists on the table.
		HasColumn(ctx context.Context, table, column string, opts HasColumnOptions) (bool, error)

		// AddColumn appends a column to an existing table.
		AddColumn(ctx context.Context, table string, column schema.Column) error

		// RenameColumn renames a column in place.
		RenameColumn(ctx context.Context, table, column, newName string) error

		// ChangeColumn alters a column's type, nullability, or default in
		// place and returns the updated table descriptor. Whether data is
		// preserved when narrowing a type is engine-defined; adapters emit
		// a warning to the configured writer for potentially lossy changes.
		ChangeColumn(ctx context.Context, table, column string, next schema.Column) (*schema.Table, error)

		// DropColumn removes a column from a table.
		DropColumn(ctx context.Context, table, column string) error

		// HasIndex reports whether an index exists over exactly the given
		// ordered column list. Column order is significant.
		HasIndex(ctx context.Context, table string, columns []string) (bool, error)

		// AddIndex creates an index from the descriptor.
		AddIndex(ctx context.Context, table string, index schema.Index) error

		// DropIndex removes the index covering the given ordered column
		// list, or the explicitly named index when opts.Name is set.
		DropIndex(ctx context.Context, table string, columns []string, opts DropIndexOptions) error

		// HasForeignKey reports whether a foreign key exists over the given
		// ordered column list. When constraint is non-empty the match is by
		// constraint name instead.
		HasForeignKey(ctx context.Context, table string, columns []string, constraint string) (bool, error)

		// AddForeignKey creates a foreign key constraint from the descriptor.
		AddForeignKey(ctx context.Context, table string, fk schema.ForeignKey) error

		// DropForeignKey removes the foreign key covering the given ordered
		// column list, or the explicitly named constraint when
		// opts.Constraint is set.
		DropForeignKey(ctx context.Context, table string, columns []string, opts DropForeignKeyOptions) error

		// GetColumnTypes returns the logical types this engine supports.
		GetColumnTypes() []schema.ColumnType

		// GetSQLType maps a column's logical type to the engine's native SQL
		// type, honoring limit/precision/scale. Unmapped types fail with
		// *UnsupportedTypeError.
		GetSQLType(column schema.Column) (string, error)

		// CreateDatabase creates a database. Option fields that are absent
		// use engine defaults.
		CreateDatabase(ctx context.Context, name string, opts DatabaseOptions) error

		// HasDatabase reports whether the named database exists.
		HasDatabase(ctx context.Context, name string) (bool, error)

		// DropDatabase drops a database.
		DropDatabase(ctx context.Context, name string) error

		// GetVersions returns the applied migration versions in ascending
		// order, reflecting committed state only. A missing version-store
		// table yields an empty result, not an error.
		GetVersions(ctx context.Context) ([]int64, error)

		// GetVersionLog returns the full version-store rows in ascending
		// version order, for status reporting.
		GetVersionLog(ctx context.Context) ([]VersionRecord, error)

		// Migrated records a completed migration. DirectionUp inserts a
		// version row; DirectionDown deletes it (deleting an absent version
		// is a no-op). Failures are reported as *PersistenceError.
		Migrated(ctx context.Context, m MigrationInfo, direction Direction, start, end time.Time) error

		// SetBreakpoint toggles the breakpoint flag on a recorded version.
		SetBreakpoint(ctx context.Context, version int64, active bool) error

		// HasSchemaTable reports whether the version-store table exists.
		// Never errors on a missing database; it returns false instead.
		HasSchemaTable(ctx context.Context) (bool, error)

		// CreateSchemaTable creates the version-store table. Idempotent:
		// calling it when the table exists is a no-op.
		CreateSchemaTable(ctx context.Context) error
	}
)

// Directions recognized by Migrated.
const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)
