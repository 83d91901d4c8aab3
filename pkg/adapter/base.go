package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/pseudomuto/groundskeeper/pkg/schema"
	"github.com/pseudomuto/groundskeeper/pkg/utils"
)

// SQLAdapter implements the connection lifecycle, transaction control, raw
// execution, and version-store portions of the Adapter contract once over
// database/sql, parameterized by a Dialect. Engine adapters embed it and add
// their introspection and mutation operations on top of its helpers.
//
// The adapter pins the pool to a single logical connection, which also keeps
// in-memory SQLite databases stable across statements.
type SQLAdapter struct {
	dialect Dialect
	opts    Options

	db *sql.DB
	tx *sql.Tx
}

// NewSQLAdapter creates the shared base for a database/sql-backed engine.
// The returned adapter is not connected.
func NewSQLAdapter(dialect Dialect, opts Options) *SQLAdapter {
	return &SQLAdapter{
		dialect: dialect,
		opts:    opts.withDefaults(),
	}
}

// Opts returns the adapter's resolved options.
func (a *SQLAdapter) Opts() Options { return a.opts }

// Connect establishes the database session. A second call while already
// connected is a no-op.
func (a *SQLAdapter) Connect(ctx context.Context) error {
	if a.db != nil {
		return nil
	}

	db, err := sql.Open(a.dialect.Driver(), a.opts.DSN)
	if err != nil {
		return &ConnectionError{Adapter: a.dialect.Name(), Cause: err}
	}

	// One logical connection per adapter instance.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return &ConnectionError{Adapter: a.dialect.Name(), Cause: err}
	}

	a.db = db
	return nil
}

// Disconnect releases the session. Safe to call when not connected. An open
// transaction is rolled back before the connection closes.
func (a *SQLAdapter) Disconnect(ctx context.Context) error {
	if a.db == nil {
		return nil
	}

	if a.tx != nil {
		_ = a.tx.Rollback()
		a.tx = nil
	}

	err := a.db.Close()
	a.db = nil
	if err != nil {
		return &ConnectionError{Adapter: a.dialect.Name(), Cause: err}
	}
	return nil
}

// Connected reports whether the adapter holds an open session.
func (a *SQLAdapter) Connected() bool { return a.db != nil }

// AdapterType returns the dialect's engine-family identifier.
func (a *SQLAdapter) AdapterType() string { return a.dialect.Name() }

// HasTransactions reports the dialect's transactional-DDL capability.
func (a *SQLAdapter) HasTransactions() bool { return a.dialect.HasTransactions() }

// BeginTransaction opens the adapter's single transaction.
func (a *SQLAdapter) BeginTransaction(ctx context.Context) error {
	if a.db == nil {
		return ErrNotConnected
	}

	if !a.dialect.HasTransactions() {
		return errors.Wrapf(ErrUnsupportedFeature, "%s transactions", a.dialect.Name())
	}

	if a.tx != nil {
		return ErrTransactionOpen
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	a.tx = tx
	return nil
}

// CommitTransaction commits the active transaction.
func (a *SQLAdapter) CommitTransaction(ctx context.Context) error {
	if a.tx == nil {
		return ErrNoTransaction
	}

	err := a.tx.Commit()
	a.tx = nil
	return errors.Wrap(err, "failed to commit transaction")
}

// RollbackTransaction rolls back the active transaction.
func (a *SQLAdapter) RollbackTransaction(ctx context.Context) error {
	if a.tx == nil {
		return ErrNoTransaction
	}

	err := a.tx.Rollback()
	a.tx = nil
	return errors.Wrap(err, "failed to roll back transaction")
}

// InTransaction reports whether a transaction is currently open.
func (a *SQLAdapter) InTransaction() bool { return a.tx != nil }

// Execute runs a statement, routing through the active transaction when one
// is open, and returns the number of affected rows.
func (a *SQLAdapter) Execute(ctx context.Context, stmt string) (int64, error) {
	if a.db == nil {
		return 0, ErrNotConnected
	}

	res, err := a.conn().ExecContext(ctx, stmt)
	if err != nil {
		return 0, &StatementError{Statement: stmt, Cause: err}
	}

	// Not every driver reports affected rows for DDL.
	count, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return count, nil
}

// Query runs a query and returns the full result set as ordered rows.
func (a *SQLAdapter) Query(ctx context.Context, query string) ([]Row, error) {
	if a.db == nil {
		return nil, ErrNotConnected
	}

	rows, err := a.conn().QueryContext(ctx, query)
	if err != nil {
		return nil, &StatementError{Statement: query, Cause: err}
	}
	defer func() { _ = rows.Close() }()

	return scanRows(rows)
}

// FetchRow returns the first row of the result set, or nil when empty.
func (a *SQLAdapter) FetchRow(ctx context.Context, query string) (Row, error) {
	result, err := a.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, nil
	}
	return result[0], nil
}

// FetchAll returns the full result set. It is an alias of Query kept for
// contract parity.
func (a *SQLAdapter) FetchAll(ctx context.Context, query string) ([]Row, error) {
	return a.Query(ctx, query)
}

// QuoteTableName escapes a table name per the engine's quoting rule.
func (a *SQLAdapter) QuoteTableName(name string) string {
	return a.dialect.QuoteIdentifier(name)
}

// QuoteColumnName escapes a column name per the engine's quoting rule.
func (a *SQLAdapter) QuoteColumnName(name string) string {
	return a.dialect.QuoteIdentifier(name)
}

// HasTable reports whether the named table exists.
func (a *SQLAdapter) HasTable(ctx context.Context, table string) (bool, error) {
	row, err := a.FetchRow(ctx, a.dialect.TableExistsSQL(table))
	if err != nil {
		return false, err
	}
	return row != nil, nil
}

// GetColumnTypes returns the logical types the engine maps.
func (a *SQLAdapter) GetColumnTypes() []schema.ColumnType {
	return a.dialect.ColumnTypes()
}

// GetSQLType maps a column's logical type to the engine's native SQL type.
func (a *SQLAdapter) GetSQLType(column schema.Column) (string, error) {
	return a.dialect.SQLType(column)
}

// HasSchemaTable reports whether the version-store table exists. Per the
// contract this never errors: a missing or unreachable database reads as
// "no schema table" so callers can bootstrap.
func (a *SQLAdapter) HasSchemaTable(ctx context.Context) (bool, error) {
	if a.db == nil {
		return false, nil
	}

	ok, err := a.HasTable(ctx, a.opts.VersionTable)
	if err != nil {
		return false, nil
	}
	return ok, nil
}

// CreateSchemaTable creates the version-store table. Idempotent.
func (a *SQLAdapter) CreateSchemaTable(ctx context.Context) error {
	ddl := a.dialect.VersionTableSQL(a.QuoteTableName(a.opts.VersionTable))
	if _, err := a.Execute(ctx, ddl); err != nil {
		return &PersistenceError{Table: a.opts.VersionTable, Cause: err}
	}
	return nil
}

// GetVersions returns the applied migration versions in ascending order. A
// missing version-store table yields an empty result.
func (a *SQLAdapter) GetVersions(ctx context.Context) ([]int64, error) {
	ok, err := a.HasSchemaTable(ctx)
	if err != nil || !ok {
		return nil, err
	}

	rows, err := a.Query(ctx, fmt.Sprintf(
		"SELECT version FROM %s ORDER BY version ASC",
		a.QuoteTableName(a.opts.VersionTable),
	))
	if err != nil {
		return nil, &PersistenceError{Table: a.opts.VersionTable, Cause: err}
	}

	versions := make([]int64, 0, len(rows))
	for _, row := range rows {
		v, err := toInt64(row["version"])
		if err != nil {
			return nil, &PersistenceError{Table: a.opts.VersionTable, Cause: err}
		}
		versions = append(versions, v)
	}
	return versions, nil
}

// GetVersionLog returns the full version-store rows in ascending order.
func (a *SQLAdapter) GetVersionLog(ctx context.Context) ([]VersionRecord, error) {
	ok, err := a.HasSchemaTable(ctx)
	if err != nil || !ok {
		return nil, err
	}

	rows, err := a.Query(ctx, fmt.Sprintf(
		"SELECT version, migration_name, start_time, end_time, breakpoint FROM %s ORDER BY version ASC",
		a.QuoteTableName(a.opts.VersionTable),
	))
	if err != nil {
		return nil, &PersistenceError{Table: a.opts.VersionTable, Cause: err}
	}

	records := make([]VersionRecord, 0, len(rows))
	for _, row := range rows {
		rec := VersionRecord{}
		if rec.Version, err = toInt64(row["version"]); err != nil {
			return nil, &PersistenceError{Table: a.opts.VersionTable, Cause: err}
		}

		rec.Name, _ = row["migration_name"].(string)
		rec.StartTime = toTime(row["start_time"])
		rec.EndTime = toTime(row["end_time"])
		rec.Breakpoint = toBool(row["breakpoint"])
		records = append(records, rec)
	}
	return records, nil
}

// Migrated records or removes a version entry depending on direction. Up
// inserts a row; down deletes it, and deleting an absent version is a no-op.
// The version-store table is created on demand.
func (a *SQLAdapter) Migrated(ctx context.Context, m MigrationInfo, direction Direction, start, end time.Time) error {
	if err := a.CreateSchemaTable(ctx); err != nil {
		return err
	}

	table := a.QuoteTableName(a.opts.VersionTable)

	var stmt string
	switch direction {
	case DirectionDown:
		stmt = fmt.Sprintf("DELETE FROM %s WHERE version = %d", table, m.Version)
	default:
		stmt = fmt.Sprintf(
			"INSERT INTO %s (version, migration_name, start_time, end_time, breakpoint) VALUES (%d, '%s', '%s', '%s', FALSE)",
			table,
			m.Version,
			utils.EscapeString(m.Name),
			formatTime(start),
			formatTime(end),
		)
	}

	if _, err := a.Execute(ctx, stmt); err != nil {
		return &PersistenceError{Table: a.opts.VersionTable, Cause: err}
	}
	return nil
}

// SetBreakpoint toggles the breakpoint flag on a recorded version.
func (a *SQLAdapter) SetBreakpoint(ctx context.Context, version int64, active bool) error {
	stmt := fmt.Sprintf(
		"UPDATE %s SET breakpoint = %s WHERE version = %d",
		a.QuoteTableName(a.opts.VersionTable),
		utils.LiteralValue(active),
		version,
	)

	if _, err := a.Execute(ctx, stmt); err != nil {
		return &PersistenceError{Table: a.opts.VersionTable, Cause: err}
	}
	return nil
}

// Warnf writes a warning to the adapter's configured writer. Engine adapters
// use this to surface potentially lossy operations (e.g. narrowing a column
// type) without failing them.
func (a *SQLAdapter) Warnf(format string, args ...any) {
	fmt.Fprintf(a.opts.Writer, "warning: "+format+"\n", args...)
}

// conn returns the active transaction when one is open, the pooled connection
// otherwise, so schema mutations participate in transactional rollback on
// engines that support it.
func (a *SQLAdapter) conn() executor {
	if a.tx != nil {
		return a.tx
	}
	return a.db
}

type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// scanRows converts a sql.Rows result set into ordered Row maps, normalizing
// []byte values to string for caller convenience.
func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read result columns")
	}

	var result []Row
	for rows.Next() {
		values := make([]any, len(cols))
		dests := make([]any, len(cols))
		for i := range values {
			dests[i] = &values[i]
		}

		if err := rows.Scan(dests...); err != nil {
			return nil, errors.Wrap(err, "failed to scan row")
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		result = append(result, row)
	}

	return result, errors.Wrap(rows.Err(), "failed to iterate rows")
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		var parsed int64
		_, err := fmt.Sscanf(n, "%d", &parsed)
		return parsed, errors.Wrapf(err, "non-numeric version %q", n)
	default:
		return 0, errors.Errorf("unexpected version value %v (%T)", v, v)
	}
}

func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	case string:
		return b == "true" || b == "TRUE" || b == "1"
	default:
		return false
	}
}

func toTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339, time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
