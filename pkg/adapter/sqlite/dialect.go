package sqlite

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pseudomuto/groundskeeper/pkg/adapter"
	"github.com/pseudomuto/groundskeeper/pkg/schema"
	"github.com/pseudomuto/groundskeeper/pkg/utils"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// dialect carries the pure helper logic for the SQLite engine: quoting, the
// logical type map, and the SQL fragments the shared base needs.
type dialect struct{}

func (dialect) Name() string          { return "sqlite" }
func (dialect) Driver() string        { return "sqlite" }
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
		return "FLOAT", nil
	case schema.TypeDecimal:
		return fmt.Sprintf("DECIMAL(%d,%d)", defaultInt(col.Precision, 10), col.Scale), nil
	case schema.TypeDateTime:
		return "DATETIME", nil
	case schema.TypeTimestamp:
		return "TIMESTAMP", nil
	case schema.TypeTime:
		return "TIME", nil
	case schema.TypeDate:
		return "DATE", nil
	case schema.TypeBinary:
		return "BLOB", nil
	case schema.TypeBoolean:
		return "BOOLEAN", nil
	case schema.TypeUUID:
		return "CHAR(36)", nil
	case schema.TypeJSON:
		return "TEXT", nil
	default:
		return "", &adapter.UnsupportedTypeError{Adapter: d.Name(), Type: string(col.Type)}
	}
}

func (d dialect) TableExistsSQL(table string) string {
	return fmt.Sprintf(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = '%s'",
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

var nativeTypeRE = regexp.MustCompile(`^(\w+)(?:\s*\((\d+)(?:\s*,\s*(\d+))?\))?`)

// logicalColumn maps a native SQLite declared type back to the logical model,
// filling in limit/precision/scale from the declaration.
func (dialect) logicalColumn(native string) (schema.ColumnType, int, int, int) {
	match := nativeTypeRE.FindStringSubmatch(strings.TrimSpace(native))
	if match == nil {
		return schema.TypeText, 0, 0, 0
	}

	base := strings.ToUpper(match[1])
	first, _ := strconv.Atoi(match[2])
	second, _ := strconv.Atoi(match[3])

	switch base {
	case "VARCHAR", "NVARCHAR", "CHARACTER":
		return schema.TypeString, first, 0, 0
	case "CHAR":
		if first == 36 {
			return schema.TypeUUID, 0, 0, 0
		}
		return schema.TypeString, first, 0, 0
	case "TEXT", "CLOB":
		return schema.TypeText, 0, 0, 0
	case "SMALLINT", "TINYINT":
		return schema.TypeSmallInteger, 0, 0, 0
	case "INTEGER", "INT", "MEDIUMINT":
		return schema.TypeInteger, 0, 0, 0
	case "BIGINT":
		return schema.TypeBigInteger, 0, 0, 0
	case "FLOAT", "REAL", "DOUBLE":
		return schema.TypeFloat, 0, 0, 0
	case "DECIMAL", "NUMERIC":
		return schema.TypeDecimal, 0, first, second
	case "DATETIME":
		return schema.TypeDateTime, 0, 0, 0
	case "TIMESTAMP":
		return schema.TypeTimestamp, 0, 0, 0
	case "TIME":
		return schema.TypeTime, 0, 0, 0
	case "DATE":
		return schema.TypeDate, 0, 0, 0
	case "BLOB", "BINARY", "VARBINARY":
		return schema.TypeBinary, 0, 0, 0
	case "BOOLEAN", "BOOL":
		return schema.TypeBoolean, 0, 0, 0
	default:
		return schema.TypeText, 0, 0, 0
	}
}

func defaultInt(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
