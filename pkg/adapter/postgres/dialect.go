package postgres

import (
	"fmt"

	"github.com/pseudomuto/groundskeeper/pkg/adapter"
	"github.com/pseudomuto/groundskeeper/pkg/schema"
	"github.com/pseudomuto/groundskeeper/pkg/utils"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

type dialect struct{}

func (dialect) Name() string          { return "postgres" }
func (dialect) Driver() string        { return "pgx" }
func (dialect) HasTransactions() bool { return true }

func (dialect) QuoteIdentifier(name string) string {
	return utils.QuoteIdentifier(name, `"`)
}

func (dialect) ColumnTypes() []schema.ColumnType {
	return []schema.ColumnType{
		schema.TypeString,
		schema.TypeText,
		schema.TypeSmallInteger,
		schema.TypeInteger,
		schema.TypeBigInteger,
		schema.TypeFloat,
		schema.TypeDecimal,
		schema.TypeDateTime,
		schema.TypeTimestamp,
		schema.TypeTime,
		schema.TypeDate,
		schema.TypeBinary,
		schema.TypeBoolean,
		schema.TypeUUID,
		schema.TypeJSON,
	}
}

func (d dialect) SQLType(col schema.Column) (string, error) {
	switch col.Type {
	case schema.TypeString:
		return fmt.Sprintf("VARCHAR(%d)", defaultInt(col.Limit, 255)), nil
	case schema.TypeText:
		return "TEXT", nil
	case schema.TypeSmallInteger:
		return "SMALLINT", nil
	case schema.TypeInteger:
		return "INTEGER", nil
	case schema.TypeBigInteger:
		return "BIGINT", nil
	case schema.TypeFloat:
		return "DOUBLE PRECISION", nil
	case schema.TypeDecimal:
		return fmt.Sprintf("NUMERIC(%d,%d)", defaultInt(col.Precision, 10), col.Scale), nil
	case schema.TypeDateTime, schema.TypeTimestamp:
		return "TIMESTAMP", nil
	case schema.TypeTime:
		return "TIME", nil
	case schema.TypeDate:
		return "DATE", nil
	case schema.TypeBinary:
		return "BYTEA", nil
	case schema.TypeBoolean:
		return "BOOLEAN", nil
	case schema.TypeUUID:
		return "UUID", nil
	case schema.TypeJSON:
		return "JSONB", nil
	default:
		return "", &adapter.UnsupportedTypeError{Adapter: d.Name(), Type: string(col.Type)}
	}
}

func (d dialect) TableExistsSQL(table string) string {
	return fmt.Sprintf(
		"SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = '%s'",
		utils.EscapeString(table),
	)
}

func (dialect) VersionTableSQL(quotedTable string) string {
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s ("+
			"version BIGINT NOT NULL PRIMARY KEY, "+
			"migration_name VARCHAR(100), "+
			"start_time TIMESTAMP, "+
			"end_time TIMESTAMP, "+
			"breakpoint BOOLEAN NOT NULL DEFAULT FALSE)",
		quotedTable,
	)
}

// logicalColumn maps an information_schema data_type back to the logical
// model.
func (dialect) logicalColumn(dataType string) schema.ColumnType {
	switch dataType {
	case "character varying", "character":
		return schema.TypeString
	case "text":
		return schema.TypeText
	case "smallint":
		return schema.TypeSmallInteger
	case "integer":
		return schema.TypeInteger
	case "bigint":
		return schema.TypeBigInteger
	case "double precision", "real":
		return schema.TypeFloat
	case "numeric":
		return schema.TypeDecimal
	case "timestamp without time zone", "timestamp with time zone":
		return schema.TypeTimestamp
	case "time without time zone", "time with time zone":
		return schema.TypeTime
	case "date":
		return schema.TypeDate
	case "bytea":
		return schema.TypeBinary
	case "boolean":
		return schema.TypeBoolean
	case "uuid":
		return schema.TypeUUID
	case "json", "jsonb":
		return schema.TypeJSON
	default:
		return schema.TypeText
	}
}

// referentialAction decodes pg_constraint's single-character action codes.
func referentialAction(code string) schema.ReferentialAction {
	switch code {
	case "r":
		return schema.Restrict
	case "c":
		return schema.Cascade
	case "n":
		return schema.SetNull
	case "d":
		return schema.SetDefault
	default:
		return schema.NoAction
	}
}

func defaultInt(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
