package clickhouse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pseudomuto/groundskeeper/pkg/adapter"
	"github.com/pseudomuto/groundskeeper/pkg/schema"
	"github.com/pseudomuto/groundskeeper/pkg/utils"

	_ "github.com/ClickHouse/clickhouse-go/v2" // registers the "clickhouse" database/sql driver
)

type dialect struct{}

func (dialect) Name() string          { return "clickhouse" }
func (dialect) Driver() string        { return "clickhouse" }
func (dialect) HasTransactions() bool { return false }

func (dialect) QuoteIdentifier(name string) string {
	return utils.QuoteIdentifier(name, "`")
}

// ColumnTypes omits TypeTime: ClickHouse has no time-of-day type.
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
		schema.TypeDate,
		schema.TypeBinary,
		schema.TypeBoolean,
		schema.TypeUUID,
		schema.TypeJSON,
	}
}

func (d dialect) SQLType(col schema.Column) (string, error) {
	var native string

	switch col.Type {
	case schema.TypeString:
		if col.Limit > 0 {
			native = fmt.Sprintf("FixedString(%d)", col.Limit)
		} else {
			native = "String"
		}
	case schema.TypeText, schema.TypeBinary, schema.TypeJSON:
		native = "String"
	case schema.TypeSmallInteger:
		native = "Int16"
	case schema.TypeInteger:
		native = "Int32"
	case schema.TypeBigInteger:
		native = "Int64"
	case schema.TypeFloat:
		native = "Float64"
	case schema.TypeDecimal:
		native = fmt.Sprintf("Decimal(%d, %d)", defaultInt(col.Precision, 10), col.Scale)
	case schema.TypeDateTime, schema.TypeTimestamp:
		native = "DateTime"
	case schema.TypeDate:
		native = "Date"
	case schema.TypeBoolean:
		native = "Bool"
	case schema.TypeUUID:
		native = "UUID"
	default:
		return "", &adapter.UnsupportedTypeError{Adapter: d.Name(), Type: string(col.Type)}
	}

	// ClickHouse expresses nullability as a type wrapper, not a constraint.
	if col.Null {
		native = fmt.Sprintf("Nullable(%s)", native)
	}
	return native, nil
}

func (d dialect) TableExistsSQL(table string) string {
	return fmt.Sprintf(
		"SELECT name FROM system.tables WHERE database = currentDatabase() AND name = '%s'",
		utils.EscapeString(table),
	)
}

func (dialect) VersionTableSQL(quotedTable string) string {
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s ("+
			"version Int64, "+
			"migration_name String, "+
			"start_time DateTime, "+
			"end_time DateTime, "+
			"breakpoint Bool DEFAULT false) "+
			"ENGINE = MergeTree ORDER BY version",
		quotedTable,
	)
}

var decimalRE = regexp.MustCompile(`^Decimal\((\d+),\s*(\d+)\)$`)

// logicalColumn maps a native ClickHouse type back to the logical model,
// unwrapping Nullable. It returns the logical type, the string limit, the
// decimal precision and scale, and whether the column is nullable.
func (dialect) logicalColumn(native string) (schema.ColumnType, int, int, int, bool) {
	nullable := false
	if strings.HasPrefix(native, "Nullable(") && strings.HasSuffix(native, ")") {
		nullable = true
		native = native[len("Nullable(") : len(native)-1]
	}

	if m := decimalRE.FindStringSubmatch(native); m != nil {
		precision, _ := strconv.Atoi(m[1])
		scale, _ := strconv.Atoi(m[2])
		return schema.TypeDecimal, 0, precision, scale, nullable
	}

	if strings.HasPrefix(native, "FixedString(") && strings.HasSuffix(native, ")") {
		limit, _ := strconv.Atoi(native[len("FixedString(") : len(native)-1])
		return schema.TypeString, limit, 0, 0, nullable
	}

	switch native {
	case "String":
		return schema.TypeString, 0, 0, 0, nullable
	case "Int8", "Int16", "UInt8", "UInt16":
		return schema.TypeSmallInteger, 0, 0, 0, nullable
	case "Int32", "UInt32":
		return schema.TypeInteger, 0, 0, 0, nullable
	case "Int64", "UInt64":
		return schema.TypeBigInteger, 0, 0, 0, nullable
	case "Float32", "Float64":
		return schema.TypeFloat, 0, 0, 0, nullable
	case "Date", "Date32":
		return schema.TypeDate, 0, 0, 0, nullable
	case "Bool":
		return schema.TypeBoolean, 0, 0, 0, nullable
	case "UUID":
		return schema.TypeUUID, 0, 0, 0, nullable
	default:
		if strings.HasPrefix(native, "DateTime") {
			return schema.TypeDateTime, 0, 0, 0, nullable
		}
		return schema.TypeText, 0, 0, 0, nullable
	}
}

func defaultInt(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
