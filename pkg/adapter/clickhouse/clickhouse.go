package clickhouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/groundskeeper/pkg/adapter"
	"github.com/pseudomuto/groundskeeper/pkg/schema"
	"github.com/pseudomuto/groundskeeper/pkg/utils"
)

// Adapter implements the adapter contract for ClickHouse on top of the shared
// database/sql base.
type Adapter struct {
	*adapter.SQLAdapter

	d dialect
}

func init() {
	adapter.Register("clickhouse", New)
}

// New creates an unconnected ClickHouse adapter. The DSN is any connection
// string clickhouse-go accepts, e.g. "clickhouse://localhost:9000/app".
func New(opts adapter.Options) (adapter.Adapter, error) {
	return &Adapter{SQLAdapter: adapter.NewSQLAdapter(dialect{}, opts)}, nil
}

// CreateTable creates a table from the descriptor. No identity column is
// injected: ClickHouse has no auto-increment, so the sort key comes from
// TableOptions.OrderBy, falling back to TableOptions.PrimaryKey.
func (a *Adapter) CreateTable(ctx context.Context, t schema.Table) error {
	if err := t.Validate(); err != nil {
		return errors.Wrap(err, "invalid table descriptor")
	}

	if len(t.Indexes) > 0 || len(t.ForeignKeys) > 0 {
		return errors.Wrapf(adapter.ErrUnsupportedFeature, "clickhouse indexes and foreign keys")
	}

	exists, err := a.HasTable(ctx, t.Name)
	if err != nil {
		return err
	}
	if exists {
		return adapter.NewConflictError("table "+t.Name, "create would clobber an existing table")
	}

	defs := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		def, err := a.columnDef(col)
		if err != nil {
			return err
		}
		defs = append(defs, def)
	}

	engine := t.Options.Engine
	if engine == "" {
		engine = "MergeTree"
	}

	sortKey := t.Options.OrderBy
	if len(sortKey) == 0 {
		sortKey = t.Options.PrimaryKey
	}

	orderBy := "tuple()"
	if len(sortKey) > 0 {
		quoted := make([]string, len(sortKey))
		for i, col := range sortKey {
			quoted[i] = a.QuoteColumnName(col)
		}
		orderBy = strings.Join(quoted, ", ")
	}

	b := utils.NewSQLBuilder(a.d.QuoteIdentifier).
		Create("TABLE").
		Name(t.Name).
		Raw(a.onCluster()).
		Columns(defs...).
		Engine(engine).
		Raw("ORDER BY " + orderBy)

	if t.Options.Comment != "" {
		b.Comment(t.Options.Comment)
	}

	_, err = a.Execute(ctx, b.String())
	return err
}

// RenameTable renames a table in place.
func (a *Adapter) RenameTable(ctx context.Context, table, newName string) error {
	if err := a.requireTable(ctx, table); err != nil {
		return err
	}

	if exists, err := a.HasTable(ctx, newName); err != nil {
		return err
	} else if exists {
		return adapter.NewConflictError("table "+newName, "rename target already exists")
	}

	stmt := fmt.Sprintf(
		"RENAME TABLE %s TO %s%s",
		a.QuoteTableName(table),
		a.QuoteTableName(newName),
		a.clusterSuffix(),
	)

	_, err := a.Execute(ctx, stmt)
	return err
}

// DropTable drops a table.
func (a *Adapter) DropTable(ctx context.Context, table string) error {
	if err := a.requireTable(ctx, table); err != nil {
		return err
	}

	stmt := utils.NewSQLBuilder(a.d.QuoteIdentifier).
		Drop("TABLE").
		Name(table).
		Raw(a.onCluster()).
		String()

	_, err := a.Execute(ctx, stmt)
	return err
}

// GetColumns returns the live column descriptors of a table in ordinal order.
func (a *Adapter) GetColumns(ctx context.Context, table string) ([]schema.Column, error) {
	if err := a.requireTable(ctx, table); err != nil {
		return nil, err
	}

	rows, err := a.Query(ctx, fmt.Sprintf(
		"SELECT name, type, comment FROM system.columns "+
			"WHERE database = currentDatabase() AND table = '%s' ORDER BY position",
		utils.EscapeString(table),
	))
	if err != nil {
		return nil, err
	}

	cols := make([]schema.Column, 0, len(rows))
	for _, row := range rows {
		name, _ := row["name"].(string)
		native, _ := row["type"].(string)
		comment, _ := row["comment"].(string)

		colType, limit, precision, scale, nullable := a.d.logicalColumn(native)
		cols = append(cols, schema.Column{
			Name:      name,
			Type:      colType,
			Null:      nullable,
			Limit:     limit,
			Precision: precision,
			Scale:     scale,
			Comment:   comment,
		})
	}

	return cols, nil
}

// HasColumn reports whether the named column exists on the table.
func (a *Adapter) HasColumn(ctx context.Context, table, column string, opts adapter.HasColumnOptions) (bool, error) {
	cols, err := a.GetColumns(ctx, table)
	if err != nil {
		return false, err
	}

	for _, col := range cols {
		if col.Name == column || (opts.CaseInsensitive && strings.EqualFold(col.Name, column)) {
			return true, nil
		}
	}
	return false, nil
}

// AddColumn appends a column to an existing table.
func (a *Adapter) AddColumn(ctx context.Context, table string, column schema.Column) error {
	if err := column.Validate(); err != nil {
		return errors.Wrap(err, "invalid column descriptor")
	}

	if exists, err := a.HasColumn(ctx, table, column.Name, adapter.HasColumnOptions{}); err != nil {
		return err
	} else if exists {
		return adapter.NewConflictError(
			fmt.Sprintf("column %s.%s", table, column.Name),
			"add would clobber an existing column",
		)
	}

	def, err := a.columnDef(column)
	if err != nil {
		return err
	}

	stmt := fmt.Sprintf(
		"ALTER TABLE %s%s ADD COLUMN %s",
		a.QuoteTableName(table), a.clusterSuffix(), def,
	)

	_, err = a.Execute(ctx, stmt)
	return err
}

// RenameColumn renames a column in place.
func (a *Adapter) RenameColumn(ctx context.Context, table, column, newName string) error {
	if err := a.requireColumn(ctx, table, column); err != nil {
		return err
	}

	if exists, err := a.HasColumn(ctx, table, newName, adapter.HasColumnOptions{}); err != nil {
		return err
	} else if exists {
		return adapter.NewConflictError(
			fmt.Sprintf("column %s.%s", table, newName),
			"rename target already exists",
		)
	}

	stmt := fmt.Sprintf(
		"ALTER TABLE %s%s RENAME COLUMN %s TO %s",
		a.QuoteTableName(table), a.clusterSuffix(),
		a.QuoteColumnName(column), a.QuoteColumnName(newName),
	)

	_, err := a.Execute(ctx, stmt)
	return err
}

// ChangeColumn alters a column's definition with MODIFY COLUMN, renaming it
// first when the new descriptor carries a different name.
func (a *Adapter) ChangeColumn(ctx context.Context, table, column string, next schema.Column) (*schema.Table, error) {
	if err := next.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid column descriptor")
	}

	cols, err := a.GetColumns(ctx, table)
	if err != nil {
		return nil, err
	}

	var old *schema.Column
	for i := range cols {
		if cols[i].Name == column {
			old = &cols[i]
			break
		}
	}
	if old == nil {
		return nil, adapter.NewNotFoundError(fmt.Sprintf("column %s.%s", table, column), "")
	}

	if old.Limit > 0 && next.Limit > 0 && next.Limit < old.Limit {
		a.Warnf("narrowing %s.%s from length %d to %d may truncate existing data", table, column, old.Limit, next.Limit)
	}

	if next.Name != "" && next.Name != column {
		if err := a.RenameColumn(ctx, table, column, next.Name); err != nil {
			return nil, err
		}
		column = next.Name
	}

	def, err := a.columnDef(next)
	if err != nil {
		return nil, err
	}

	stmt := fmt.Sprintf(
		"ALTER TABLE %s%s MODIFY COLUMN %s",
		a.QuoteTableName(table), a.clusterSuffix(), def,
	)
	if _, err := a.Execute(ctx, stmt); err != nil {
		return nil, err
	}

	described, err := a.GetColumns(ctx, table)
	if err != nil {
		return nil, err
	}
	return &schema.Table{Name: table, Columns: described}, nil
}

// DropColumn removes a column from a table.
func (a *Adapter) DropColumn(ctx context.Context, table, column string) error {
	if err := a.requireColumn(ctx, table, column); err != nil {
		return err
	}

	stmt := fmt.Sprintf(
		"ALTER TABLE %s%s DROP COLUMN %s",
		a.QuoteTableName(table), a.clusterSuffix(), a.QuoteColumnName(column),
	)

	_, err := a.Execute(ctx, stmt)
	return err
}

// HasIndex is unsupported: ClickHouse has no secondary b-tree indexes.
func (a *Adapter) HasIndex(ctx context.Context, table string, columns []string) (bool, error) {
	return false, errors.Wrap(adapter.ErrUnsupportedFeature, "clickhouse indexes")
}

// AddIndex is unsupported.
func (a *Adapter) AddIndex(ctx context.Context, table string, index schema.Index) error {
	return errors.Wrap(adapter.ErrUnsupportedFeature, "clickhouse indexes")
}

// DropIndex is unsupported.
func (a *Adapter) DropIndex(ctx context.Context, table string, columns []string, opts adapter.DropIndexOptions) error {
	return errors.Wrap(adapter.ErrUnsupportedFeature, "clickhouse indexes")
}

// HasForeignKey is unsupported: ClickHouse has no referential constraints.
func (a *Adapter) HasForeignKey(ctx context.Context, table string, columns []string, constraint string) (bool, error) {
	return false, errors.Wrap(adapter.ErrUnsupportedFeature, "clickhouse foreign keys")
}

// AddForeignKey is unsupported.
func (a *Adapter) AddForeignKey(ctx context.Context, table string, fk schema.ForeignKey) error {
	return errors.Wrap(adapter.ErrUnsupportedFeature, "clickhouse foreign keys")
}

// DropForeignKey is unsupported.
func (a *Adapter) DropForeignKey(ctx context.Context, table string, columns []string, opts adapter.DropForeignKeyOptions) error {
	return errors.Wrap(adapter.ErrUnsupportedFeature, "clickhouse foreign keys")
}

// CreateDatabase creates a database. Charset and collation options do not
// apply to ClickHouse and are ignored.
func (a *Adapter) CreateDatabase(ctx context.Context, name string, opts adapter.DatabaseOptions) error {
	if exists, err := a.HasDatabase(ctx, name); err != nil {
		return err
	} else if exists {
		return adapter.NewConflictError("database "+name, "database already exists")
	}

	stmt := utils.NewSQLBuilder(a.d.QuoteIdentifier).
		Create("DATABASE").
		Name(name).
		Raw(a.onCluster()).
		String()

	_, err := a.Execute(ctx, stmt)
	return err
}

// HasDatabase reports whether the named database exists on the server.
func (a *Adapter) HasDatabase(ctx context.Context, name string) (bool, error) {
	row, err := a.FetchRow(ctx, fmt.Sprintf(
		"SELECT name FROM system.databases WHERE name = '%s'",
		utils.EscapeString(name),
	))
	if err != nil {
		return false, err
	}
	return row != nil, nil
}

// DropDatabase drops a database.
func (a *Adapter) DropDatabase(ctx context.Context, name string) error {
	if exists, err := a.HasDatabase(ctx, name); err != nil {
		return err
	} else if !exists {
		return adapter.NewNotFoundError("database "+name, "")
	}

	stmt := utils.NewSQLBuilder(a.d.QuoteIdentifier).
		Drop("DATABASE").
		Name(name).
		Raw(a.onCluster()).
		String()

	_, err := a.Execute(ctx, stmt)
	return err
}

// SetBreakpoint toggles the breakpoint flag using ClickHouse's mutation
// syntax; plain UPDATE statements are not supported.
func (a *Adapter) SetBreakpoint(ctx context.Context, version int64, active bool) error {
	stmt := fmt.Sprintf(
		"ALTER TABLE %s%s UPDATE breakpoint = %s WHERE version = %d",
		a.QuoteTableName(a.Opts().VersionTable),
		a.clusterSuffix(),
		utils.LiteralValue(active),
		version,
	)

	if _, err := a.Execute(ctx, stmt); err != nil {
		return &adapter.PersistenceError{Table: a.Opts().VersionTable, Cause: err}
	}
	return nil
}

func (a *Adapter) columnDef(col schema.Column) (string, error) {
	sqlType, err := a.GetSQLType(col)
	if err != nil {
		return "", err
	}

	def := a.QuoteColumnName(col.Name) + " " + sqlType
	if col.Default != nil {
		def += " DEFAULT " + utils.LiteralValue(col.Default)
	}
	if col.Comment != "" {
		def += fmt.Sprintf(" COMMENT '%s'", utils.EscapeString(col.Comment))
	}
	return def, nil
}

// onCluster returns the ON CLUSTER clause when the adapter is configured for
// a cluster, empty otherwise. Use clusterSuffix when appending directly to
// formatted SQL.
func (a *Adapter) onCluster() string {
	if cluster := a.Opts().Cluster; cluster != "" {
		return "ON CLUSTER " + a.QuoteTableName(cluster)
	}
	return ""
}

func (a *Adapter) clusterSuffix() string {
	if clause := a.onCluster(); clause != "" {
		return " " + clause
	}
	return ""
}

func (a *Adapter) requireTable(ctx context.Context, table string) error {
	exists, err := a.HasTable(ctx, table)
	if err != nil {
		return err
	}
	if !exists {
		return adapter.NewNotFoundError("table "+table, "")
	}
	return nil
}

func (a *Adapter) requireColumn(ctx context.Context, table, column string) error {
	exists, err := a.HasColumn(ctx, table, column, adapter.HasColumnOptions{})
	if err != nil {
		return err
	}
	if !exists {
		return adapter.NewNotFoundError(fmt.Sprintf("column %s.%s", table, column), "")
	}
	return nil
}
