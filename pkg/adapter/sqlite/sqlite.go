package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/groundskeeper/pkg/adapter"
	"github.com/pseudomuto/groundskeeper/pkg/schema"
	"github.com/pseudomuto/groundskeeper/pkg/utils"
)

// Adapter implements the adapter contract for SQLite on top of the shared
// database/sql base.
type Adapter struct {
	*adapter.SQLAdapter

	d dialect
}

func init() {
	adapter.Register("sqlite", New)
}

// New creates an unconnected SQLite adapter. The DSN is a file path or
// ":memory:" for an in-memory database.
func New(opts adapter.Options) (adapter.Adapter, error) {
	return &Adapter{SQLAdapter: adapter.NewSQLAdapter(dialect{}, opts)}, nil
}

// CreateTable creates a table from the descriptor, prepending the default
// auto-incrementing identity column unless disabled via options, and creates
// the descriptor's indexes afterward (SQLite indexes are separate objects).
func (a *Adapter) CreateTable(ctx context.Context, t schema.Table) error {
	if err := t.Validate(); err != nil {
		return errors.Wrap(err, "invalid table descriptor")
	}

	exists, err := a.HasTable(ctx, t.Name)
	if err != nil {
		return err
	}
	if exists {
		return adapter.NewConflictError("table "+t.Name, "create would clobber an existing table")
	}

	cols := t.Columns
	if id := t.IdentityColumn(); id != "" && !t.HasColumn(id) {
		cols = append([]schema.Column{{Name: id, Type: schema.TypeInteger, Identity: true}}, cols...)
	}

	defs, err := a.tableDefs(t, cols)
	if err != nil {
		return err
	}

	stmt := utils.NewSQLBuilder(a.d.QuoteIdentifier).
		Create("TABLE").
		Name(t.Name).
		Columns(defs...).
		String()

	if _, err := a.Execute(ctx, stmt); err != nil {
		return err
	}

	for _, idx := range t.Indexes {
		if err := a.AddIndex(ctx, t.Name, idx); err != nil {
			return err
		}
	}

	return nil
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

	stmt := utils.NewSQLBuilder(a.d.QuoteIdentifier).
		Alter("TABLE").
		Name(table).
		Rename("TO " + a.QuoteTableName(newName)).
		String()

	_, err := a.Execute(ctx, stmt)
	return err
}

// DropTable drops a table.
func (a *Adapter) DropTable(ctx context.Context, table string) error {
	if err := a.requireTable(ctx, table); err != nil {
		return err
	}

	stmt := utils.NewSQLBuilder(a.d.QuoteIdentifier).Drop("TABLE").Name(table).String()
	_, err := a.Execute(ctx, stmt)
	return err
}

// GetColumns returns the live column descriptors of a table in ordinal order.
func (a *Adapter) GetColumns(ctx context.Context, table string) ([]schema.Column, error) {
	if err := a.requireTable(ctx, table); err != nil {
		return nil, err
	}

	rows, err := a.Query(ctx, fmt.Sprintf("PRAGMA table_info(%s)", a.QuoteTableName(table)))
	if err != nil {
		return nil, err
	}

	// A column only rowid-aliases (and therefore auto-increments) when it
	// is the single INTEGER column of the primary key. Composite keys are
	// plain constraints with no identity semantics.
	pkCount := 0
	for _, row := range rows {
		if asInt(row["pk"]) != 0 {
			pkCount++
		}
	}

	cols := make([]schema.Column, 0, len(rows))
	for _, row := range rows {
		name, _ := row["name"].(string)
		native, _ := row["type"].(string)
		notNull := asInt(row["notnull"]) != 0
		pk := asInt(row["pk"]) != 0

		colType, limit, precision, scale := a.d.logicalColumn(native)

		col := schema.Column{
			Name:      name,
			Type:      colType,
			Null:      !notNull,
			Default:   parseDefault(row["dflt_value"]),
			Limit:     limit,
			Precision: precision,
			Scale:     scale,
			Identity:  pk && pkCount == 1 && strings.EqualFold(native, "INTEGER"),
		}
		cols = append(cols, col)
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

	stmt := utils.NewSQLBuilder(a.d.QuoteIdentifier).
		Alter("TABLE").
		Name(table).
		Add("COLUMN " + def).
		String()

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

	stmt := utils.NewSQLBuilder(a.d.QuoteIdentifier).
		Alter("TABLE").
		Name(table).
		Rename(fmt.Sprintf("COLUMN %s TO %s", a.QuoteColumnName(column), a.QuoteColumnName(newName))).
		String()

	_, err := a.Execute(ctx, stmt)
	return err
}

// ChangeColumn alters a column's definition. SQLite cannot express this with
// ALTER TABLE, so the table is rebuilt: a shadow table with the new definition
// is created, rows are copied, and the original is replaced. Narrowing changes
// are applied as-is with a warning; whether data survives is SQLite's affinity
// behavior, not a guarantee of this layer.
func (a *Adapter) ChangeColumn(ctx context.Context, table, column string, next schema.Column) (*schema.Table, error) {
	if err := next.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid column descriptor")
	}

	cols, err := a.GetColumns(ctx, table)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, col := range cols {
		if col.Name == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, adapter.NewNotFoundError(fmt.Sprintf("column %s.%s", table, column), "")
	}

	old := cols[idx]
	if old.Limit > 0 && next.Limit > 0 && next.Limit < old.Limit {
		a.Warnf("narrowing %s.%s from length %d to %d may truncate existing data", table, column, old.Limit, next.Limit)
	}

	cols[idx] = next

	copyMap := make(map[string]string, len(cols))
	for _, col := range cols {
		copyMap[col.Name] = col.Name
	}
	copyMap[next.Name] = column

	fks, err := a.tableForeignKeys(ctx, table)
	if err != nil {
		return nil, err
	}

	if err := a.rebuildTable(ctx, table, cols, fks, copyMap); err != nil {
		return nil, err
	}

	return a.describeTable(ctx, table)
}

// DropColumn removes a column from a table.
func (a *Adapter) DropColumn(ctx context.Context, table, column string) error {
	if err := a.requireColumn(ctx, table, column); err != nil {
		return err
	}

	stmt := utils.NewSQLBuilder(a.d.QuoteIdentifier).
		Alter("TABLE").
		Name(table).
		Drop("COLUMN").
		Name(column).
		String()

	_, err := a.Execute(ctx, stmt)
	return err
}

// HasIndex reports whether an index exists over exactly the given ordered
// column list. Column order is significant.
func (a *Adapter) HasIndex(ctx context.Context, table string, columns []string) (bool, error) {
	indexes, err := a.tableIndexes(ctx, table)
	if err != nil {
		return false, err
	}

	for _, idx := range indexes {
		if columnsEqual(idx.Columns, columns) {
			return true, nil
		}
	}
	return false, nil
}

// AddIndex creates an index. When the descriptor has no name, one is derived
// from the table and column names.
func (a *Adapter) AddIndex(ctx context.Context, table string, index schema.Index) error {
	if err := index.Validate(); err != nil {
		return errors.Wrap(err, "invalid index descriptor")
	}

	if err := a.requireTable(ctx, table); err != nil {
		return err
	}

	if exists, err := a.HasIndex(ctx, table, index.Columns); err != nil {
		return err
	} else if exists {
		return adapter.NewConflictError(
			fmt.Sprintf("index on %s (%s)", table, strings.Join(index.Columns, ", ")),
			"an index over these columns already exists",
		)
	}

	object := "INDEX"
	if index.Unique {
		object = "UNIQUE INDEX"
	}

	stmt := utils.NewSQLBuilder(a.d.QuoteIdentifier).
		Create(object).
		Name(indexName(table, index)).
		On(table).
		NameList(index.Columns...).
		String()

	_, err := a.Execute(ctx, stmt)
	return err
}

// DropIndex removes the index covering the given ordered column list, or the
// explicitly named index when opts.Name is set.
func (a *Adapter) DropIndex(ctx context.Context, table string, columns []string, opts adapter.DropIndexOptions) error {
	indexes, err := a.tableIndexes(ctx, table)
	if err != nil {
		return err
	}

	name := opts.Name
	if name == "" {
		for _, idx := range indexes {
			if columnsEqual(idx.Columns, columns) {
				name = idx.Name
				break
			}
		}
	}

	if name == "" {
		return adapter.NewNotFoundError(
			fmt.Sprintf("index on %s (%s)", table, strings.Join(columns, ", ")), "",
		)
	}

	stmt := utils.NewSQLBuilder(a.d.QuoteIdentifier).Drop("INDEX").Name(name).String()
	_, err = a.Execute(ctx, stmt)
	return err
}

// HasForeignKey reports whether a foreign key exists over the given ordered
// column list. SQLite does not expose constraint names through its pragmas,
// so a name match falls back to inspecting the stored CREATE TABLE text.
func (a *Adapter) HasForeignKey(ctx context.Context, table string, columns []string, constraint string) (bool, error) {
	if constraint != "" {
		row, err := a.FetchRow(ctx, fmt.Sprintf(
			"SELECT sql FROM sqlite_master WHERE type = 'table' AND name = '%s'",
			utils.EscapeString(table),
		))
		if err != nil || row == nil {
			return false, err
		}

		// Constraint names may or may not be quoted in the stored DDL
		// depending on how the table was declared.
		ddl, _ := row["sql"].(string)
		ddl = utils.StripQuotes(ddl, `"`)
		return strings.Contains(ddl, "CONSTRAINT "+utils.StripQuotes(constraint, `"`)+" "), nil
	}

	fks, err := a.tableForeignKeys(ctx, table)
	if err != nil {
		return false, err
	}

	for _, fk := range fks {
		if columnsEqual(fk.Columns, columns) {
			return true, nil
		}
	}
	return false, nil
}

// AddForeignKey adds a foreign key constraint via a table rebuild; SQLite
// cannot add constraints to an existing table.
func (a *Adapter) AddForeignKey(ctx context.Context, table string, fk schema.ForeignKey) error {
	if err := fk.Validate(); err != nil {
		return errors.Wrap(err, "invalid foreign key descriptor")
	}

	if exists, err := a.HasForeignKey(ctx, table, fk.Columns, ""); err != nil {
		return err
	} else if exists {
		return adapter.NewConflictError(
			fmt.Sprintf("foreign key on %s (%s)", table, strings.Join(fk.Columns, ", ")),
			"a foreign key over these columns already exists",
		)
	}

	cols, err := a.GetColumns(ctx, table)
	if err != nil {
		return err
	}

	fks, err := a.tableForeignKeys(ctx, table)
	if err != nil {
		return err
	}

	return a.rebuildTable(ctx, table, cols, append(fks, fk), identityCopyMap(cols))
}

// DropForeignKey removes a foreign key constraint via a table rebuild.
func (a *Adapter) DropForeignKey(ctx context.Context, table string, columns []string, opts adapter.DropForeignKeyOptions) error {
	fks, err := a.tableForeignKeys(ctx, table)
	if err != nil {
		return err
	}

	kept := make([]schema.ForeignKey, 0, len(fks))
	removed := false
	for _, fk := range fks {
		if !removed && (columnsEqual(fk.Columns, columns) || (opts.Constraint != "" && fk.Constraint == opts.Constraint)) {
			removed = true
			continue
		}
		kept = append(kept, fk)
	}

	if !removed {
		return adapter.NewNotFoundError(
			fmt.Sprintf("foreign key on %s (%s)", table, strings.Join(columns, ", ")), "",
		)
	}

	cols, err := a.GetColumns(ctx, table)
	if err != nil {
		return err
	}

	return a.rebuildTable(ctx, table, cols, kept, identityCopyMap(cols))
}

// CreateDatabase creates a SQLite database file. Charset and collation
// options do not apply to SQLite and are ignored.
func (a *Adapter) CreateDatabase(ctx context.Context, name string, opts adapter.DatabaseOptions) error {
	path := databasePath(name)
	if _, err := os.Stat(path); err == nil {
		return adapter.NewConflictError("database "+path, "file already exists")
	}

	return errors.Wrapf(os.WriteFile(path, nil, 0o644), "failed to create database %s", path)
}

// HasDatabase reports whether the database file exists.
func (a *Adapter) HasDatabase(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(databasePath(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}

// DropDatabase removes the database file.
func (a *Adapter) DropDatabase(ctx context.Context, name string) error {
	path := databasePath(name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return adapter.NewNotFoundError("database "+path, "")
	}

	return errors.Wrapf(os.Remove(path), "failed to drop database %s", path)
}

// liveIndex is an index read back from sqlite's pragmas.
type liveIndex struct {
	Name    string
	Unique  bool
	Columns []string
}

func (a *Adapter) tableIndexes(ctx context.Context, table string) ([]liveIndex, error) {
	if err := a.requireTable(ctx, table); err != nil {
		return nil, err
	}

	rows, err := a.Query(ctx, fmt.Sprintf("PRAGMA index_list(%s)", a.QuoteTableName(table)))
	if err != nil {
		return nil, err
	}

	indexes := make([]liveIndex, 0, len(rows))
	for _, row := range rows {
		origin, _ := row["origin"].(string)
		if origin == "pk" {
			continue
		}

		name, _ := row["name"].(string)
		idx := liveIndex{Name: name, Unique: asInt(row["unique"]) != 0}

		info, err := a.Query(ctx, fmt.Sprintf("PRAGMA index_info(%s)", a.QuoteTableName(name)))
		if err != nil {
			return nil, err
		}

		sort.Slice(info, func(i, j int) bool { return asInt(info[i]["seqno"]) < asInt(info[j]["seqno"]) })
		for _, col := range info {
			colName, _ := col["name"].(string)
			idx.Columns = append(idx.Columns, colName)
		}

		indexes = append(indexes, idx)
	}

	return indexes, nil
}

func (a *Adapter) tableForeignKeys(ctx context.Context, table string) ([]schema.ForeignKey, error) {
	if err := a.requireTable(ctx, table); err != nil {
		return nil, err
	}

	rows, err := a.Query(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%s)", a.QuoteTableName(table)))
	if err != nil {
		return nil, err
	}

	// Rows come one per column, grouped by constraint id and ordered by seq.
	grouped := make(map[int64]*schema.ForeignKey)
	var order []int64
	for _, row := range rows {
		id := asInt(row["id"])
		fk, ok := grouped[id]
		if !ok {
			ref, _ := row["table"].(string)
			onDelete, _ := row["on_delete"].(string)
			onUpdate, _ := row["on_update"].(string)

			fk = &schema.ForeignKey{
				ReferencedTable: ref,
				OnDelete:        schema.ReferentialAction(onDelete),
				OnUpdate:        schema.ReferentialAction(onUpdate),
			}
			grouped[id] = fk
			order = append(order, id)
		}

		from, _ := row["from"].(string)
		to, _ := row["to"].(string)
		fk.Columns = append(fk.Columns, from)
		fk.ReferencedColumns = append(fk.ReferencedColumns, to)
	}

	fks := make([]schema.ForeignKey, 0, len(order))
	for _, id := range order {
		fks = append(fks, *grouped[id])
	}
	return fks, nil
}

// rebuildTable replaces a table with a new definition, copying rows across
// per copyMap (new column name -> source column name) and recreating the
// indexes that existed before the rebuild.
func (a *Adapter) rebuildTable(ctx context.Context, table string, cols []schema.Column, fks []schema.ForeignKey, copyMap map[string]string) error {
	indexes, err := a.tableIndexes(ctx, table)
	if err != nil {
		return err
	}

	oldToNew := make(map[string]string, len(copyMap))
	for newName, oldName := range copyMap {
		oldToNew[oldName] = newName
	}

	pk, err := a.tablePrimaryKey(ctx, table)
	if err != nil {
		return err
	}

	remappedPK := make([]string, 0, len(pk))
	for _, col := range pk {
		if newName, ok := oldToNew[col]; ok {
			remappedPK = append(remappedPK, newName)
		}
	}

	tmp := table + "_rebuild"

	// Constraint names outlive the rename, so default ones derive from the
	// real table name rather than the shadow's.
	named := make([]schema.ForeignKey, len(fks))
	for i, fk := range fks {
		if fk.Constraint == "" {
			fk.Constraint = fmt.Sprintf("fk_%s_%s", table, strings.Join(fk.Columns, "_"))
		}
		named[i] = fk
	}

	shadow := schema.Table{
		Name:        tmp,
		Columns:     cols,
		ForeignKeys: named,
		Options:     schema.TableOptions{ID: utils.Ptr(""), PrimaryKey: remappedPK},
	}
	if err := a.CreateTable(ctx, shadow); err != nil {
		return err
	}

	var newNames, oldNames []string
	for _, col := range cols {
		src, ok := copyMap[col.Name]
		if !ok {
			continue
		}
		newNames = append(newNames, a.QuoteColumnName(col.Name))
		oldNames = append(oldNames, a.QuoteColumnName(src))
	}

	copyStmt := fmt.Sprintf(
		"INSERT INTO %s (%s) SELECT %s FROM %s",
		a.QuoteTableName(tmp),
		strings.Join(newNames, ", "),
		strings.Join(oldNames, ", "),
		a.QuoteTableName(table),
	)
	if _, err := a.Execute(ctx, copyStmt); err != nil {
		return err
	}

	drop := utils.NewSQLBuilder(a.d.QuoteIdentifier).Drop("TABLE").Name(table).String()
	if _, err := a.Execute(ctx, drop); err != nil {
		return err
	}

	rename := utils.NewSQLBuilder(a.d.QuoteIdentifier).
		Alter("TABLE").
		Name(tmp).
		Rename("TO " + a.QuoteTableName(table)).
		String()
	if _, err := a.Execute(ctx, rename); err != nil {
		return err
	}

	for _, idx := range indexes {
		remapped := make([]string, 0, len(idx.Columns))
		for _, col := range idx.Columns {
			if newName, ok := oldToNew[col]; ok {
				remapped = append(remapped, newName)
			}
		}
		if len(remapped) != len(idx.Columns) {
			continue // index referenced a column the rebuild removed
		}

		err := a.AddIndex(ctx, table, schema.Index{Name: idx.Name, Columns: remapped, Unique: idx.Unique})
		if err != nil {
			return err
		}
	}

	return nil
}

// tablePrimaryKey returns the declared primary key columns in key order.
func (a *Adapter) tablePrimaryKey(ctx context.Context, table string) ([]string, error) {
	rows, err := a.Query(ctx, fmt.Sprintf("PRAGMA table_info(%s)", a.QuoteTableName(table)))
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool { return asInt(rows[i]["pk"]) < asInt(rows[j]["pk"]) })

	var pk []string
	for _, row := range rows {
		if asInt(row["pk"]) > 0 {
			name, _ := row["name"].(string)
			pk = append(pk, name)
		}
	}
	return pk, nil
}

func (a *Adapter) describeTable(ctx context.Context, table string) (*schema.Table, error) {
	cols, err := a.GetColumns(ctx, table)
	if err != nil {
		return nil, err
	}

	fks, err := a.tableForeignKeys(ctx, table)
	if err != nil {
		return nil, err
	}

	live, err := a.tableIndexes(ctx, table)
	if err != nil {
		return nil, err
	}

	indexes := make([]schema.Index, 0, len(live))
	for _, idx := range live {
		indexes = append(indexes, schema.Index{Name: idx.Name, Columns: idx.Columns, Unique: idx.Unique})
	}

	return &schema.Table{Name: table, Columns: cols, Indexes: indexes, ForeignKeys: fks}, nil
}

func (a *Adapter) tableDefs(t schema.Table, cols []schema.Column) ([]string, error) {
	defs := make([]string, 0, len(cols)+len(t.ForeignKeys)+1)
	hasIdentity := false

	for _, col := range cols {
		def, err := a.columnDef(col)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
		hasIdentity = hasIdentity || col.Identity
	}

	if !hasIdentity && len(t.Options.PrimaryKey) > 0 {
		quoted := make([]string, len(t.Options.PrimaryKey))
		for i, col := range t.Options.PrimaryKey {
			quoted[i] = a.QuoteColumnName(col)
		}
		defs = append(defs, "PRIMARY KEY ("+strings.Join(quoted, ", ")+")")
	}

	for _, fk := range t.ForeignKeys {
		defs = append(defs, a.foreignKeyDef(t.Name, fk))
	}

	return defs, nil
}

func (a *Adapter) columnDef(col schema.Column) (string, error) {
	// AUTOINCREMENT is only valid on an INTEGER PRIMARY KEY column.
	if col.Identity {
		return a.QuoteColumnName(col.Name) + " INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL", nil
	}

	sqlType, err := a.GetSQLType(col)
	if err != nil {
		return "", err
	}

	def := a.QuoteColumnName(col.Name) + " " + sqlType
	if !col.Null {
		def += " NOT NULL"
	}
	if col.Default != nil {
		def += " DEFAULT " + utils.LiteralValue(col.Default)
	}
	return def, nil
}

func (a *Adapter) foreignKeyDef(table string, fk schema.ForeignKey) string {
	local := make([]string, len(fk.Columns))
	for i, col := range fk.Columns {
		local[i] = a.QuoteColumnName(col)
	}

	referenced := make([]string, len(fk.ReferencedColumns))
	for i, col := range fk.ReferencedColumns {
		referenced[i] = a.QuoteColumnName(col)
	}

	name := fk.Constraint
	if name == "" {
		name = fmt.Sprintf("fk_%s_%s", table, strings.Join(fk.Columns, "_"))
	}

	def := fmt.Sprintf(
		"CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		a.QuoteColumnName(name),
		strings.Join(local, ", "),
		a.QuoteTableName(fk.ReferencedTable),
		strings.Join(referenced, ", "),
	)

	if fk.OnDelete != "" {
		def += " ON DELETE " + string(fk.OnDelete)
	}
	if fk.OnUpdate != "" {
		def += " ON UPDATE " + string(fk.OnUpdate)
	}
	return def
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

func indexName(table string, index schema.Index) string {
	if index.Name != "" {
		return index.Name
	}
	return fmt.Sprintf("idx_%s_%s", table, strings.Join(index.Columns, "_"))
}

func identityCopyMap(cols []schema.Column) map[string]string {
	m := make(map[string]string, len(cols))
	for _, col := range cols {
		m[col.Name] = col.Name
	}
	return m
}

func columnsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func databasePath(name string) string {
	if filepath.Ext(name) != "" {
		return name
	}
	return name + ".sqlite3"
}

func asInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case string:
		parsed, _ := strconv.ParseInt(n, 10, 64)
		return parsed
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func parseDefault(v any) any {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}

	switch {
	case strings.EqualFold(s, "NULL"):
		return nil
	case utils.IsBooleanValue(s):
		return strings.EqualFold(s, "TRUE")
	case strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'") && len(s) >= 2:
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	case utils.IsNumericValue(s):
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		f, _ := strconv.ParseFloat(s, 64)
		return f
	default:
		return s
	}
}
