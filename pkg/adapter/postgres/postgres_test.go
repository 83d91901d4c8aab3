package postgres

import (
	"testing"

	"github.com/pseudomuto/groundskeeper/pkg/adapter"
	"github.com/pseudomuto/groundskeeper/pkg/schema"
	"github.com/stretchr/testify/require"
)

func TestRegistration(t *testing.T) {
	a, err := adapter.Open("postgres", adapter.Options{DSN: "postgres://localhost/app"})
	require.NoError(t, err)
	require.Equal(t, "postgres", a.AdapterType())
	require.True(t, a.HasTransactions())
	require.False(t, a.Connected())
}

func TestSQLType(t *testing.T) {
	d := dialect{}

	tests := []struct {
		name     string
		col      schema.Column
		expected string
	}{
		{name: "string default limit", col: schema.Column{Type: schema.TypeString}, expected: "VARCHAR(255)"},
		{name: "string with limit", col: schema.Column{Type: schema.TypeString, Limit: 50}, expected: "VARCHAR(50)"},
		{name: "text", col: schema.Column{Type: schema.TypeText}, expected: "TEXT"},
		{name: "small integer", col: schema.Column{Type: schema.TypeSmallInteger}, expected: "SMALLINT"},
		{name: "integer", col: schema.Column{Type: schema.TypeInteger}, expected: "INTEGER"},
		{name: "big integer", col: schema.Column{Type: schema.TypeBigInteger}, expected: "BIGINT"},
		{name: "float", col: schema.Column{Type: schema.TypeFloat}, expected: "DOUBLE PRECISION"},
		{name: "decimal", col: schema.Column{Type: schema.TypeDecimal, Precision: 12, Scale: 3}, expected: "NUMERIC(12,3)"},
		{name: "decimal defaults", col: schema.Column{Type: schema.TypeDecimal}, expected: "NUMERIC(10,0)"},
		{name: "datetime", col: schema.Column{Type: schema.TypeDateTime}, expected: "TIMESTAMP"},
		{name: "timestamp", col: schema.Column{Type: schema.TypeTimestamp}, expected: "TIMESTAMP"},
		{name: "time", col: schema.Column{Type: schema.TypeTime}, expected: "TIME"},
		{name: "date", col: schema.Column{Type: schema.TypeDate}, expected: "DATE"},
		{name: "binary", col: schema.Column{Type: schema.TypeBinary}, expected: "BYTEA"},
		{name: "boolean", col: schema.Column{Type: schema.TypeBoolean}, expected: "BOOLEAN"},
		{name: "uuid", col: schema.Column{Type: schema.TypeUUID}, expected: "UUID"},
		{name: "json", col: schema.Column{Type: schema.TypeJSON}, expected: "JSONB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sqlType, err := d.SQLType(tt.col)
			require.NoError(t, err)
			require.Equal(t, tt.expected, sqlType)
		})
	}

	_, err := d.SQLType(schema.Column{Type: "geometry"})
	require.ErrorIs(t, err, adapter.ErrUnsupportedType)

	var unsupported *adapter.UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "postgres", unsupported.Adapter)
}

func TestLogicalColumn(t *testing.T) {
	d := dialect{}

	tests := map[string]schema.ColumnType{
		"character varying":           schema.TypeString,
		"text":                        schema.TypeText,
		"smallint":                    schema.TypeSmallInteger,
		"integer":                     schema.TypeInteger,
		"bigint":                      schema.TypeBigInteger,
		"double precision":            schema.TypeFloat,
		"numeric":                     schema.TypeDecimal,
		"timestamp without time zone": schema.TypeTimestamp,
		"time without time zone":      schema.TypeTime,
		"date":                        schema.TypeDate,
		"bytea":                       schema.TypeBinary,
		"boolean":                     schema.TypeBoolean,
		"uuid":                        schema.TypeUUID,
		"jsonb":                       schema.TypeJSON,
		"tsvector":                    schema.TypeText, // unmapped types degrade to text
	}

	for dataType, expected := range tests {
		require.Equal(t, expected, d.logicalColumn(dataType), dataType)
	}
}

func TestReferentialAction(t *testing.T) {
	require.Equal(t, schema.Restrict, referentialAction("r"))
	require.Equal(t, schema.Cascade, referentialAction("c"))
	require.Equal(t, schema.SetNull, referentialAction("n"))
	require.Equal(t, schema.SetDefault, referentialAction("d"))
	require.Equal(t, schema.NoAction, referentialAction("a"))
	require.Equal(t, schema.NoAction, referentialAction(""))
}

func TestColumnDef(t *testing.T) {
	a := &Adapter{SQLAdapter: adapter.NewSQLAdapter(dialect{}, adapter.Options{})}

	tests := []struct {
		name     string
		col      schema.Column
		expected string
	}{
		{
			name:     "identity",
			col:      schema.Column{Name: "id", Identity: true},
			expected: `"id" BIGSERIAL NOT NULL PRIMARY KEY`,
		},
		{
			name:     "not null string",
			col:      schema.Column{Name: "name", Type: schema.TypeString, Limit: 50},
			expected: `"name" VARCHAR(50) NOT NULL`,
		},
		{
			name:     "nullable with default",
			col:      schema.Column{Name: "status", Type: schema.TypeString, Null: true, Default: "active"},
			expected: `"status" VARCHAR(255) DEFAULT 'active'`,
		},
		{
			name:     "boolean default",
			col:      schema.Column{Name: "enabled", Type: schema.TypeBoolean, Default: true},
			expected: `"enabled" BOOLEAN NOT NULL DEFAULT TRUE`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := a.columnDef(tt.col)
			require.NoError(t, err)
			require.Equal(t, tt.expected, def)
		})
	}
}

func TestForeignKeyDef(t *testing.T) {
	a := &Adapter{SQLAdapter: adapter.NewSQLAdapter(dialect{}, adapter.Options{})}

	def := a.foreignKeyDef("widgets", schema.ForeignKey{
		Columns:           []string{"vendor_id"},
		ReferencedTable:   "vendors",
		ReferencedColumns: []string{"id"},
		OnDelete:          schema.Cascade,
		OnUpdate:          schema.Restrict,
	})

	require.Equal(
		t,
		`CONSTRAINT "fk_widgets_vendor_id" FOREIGN KEY ("vendor_id") REFERENCES "vendors" ("id") ON DELETE CASCADE ON UPDATE RESTRICT`,
		def,
	)
}

func TestIndexName(t *testing.T) {
	require.Equal(t, "idx_widgets_sku", indexName("widgets", schema.Index{Columns: []string{"sku"}}))
	require.Equal(t, "by_sku", indexName("widgets", schema.Index{Name: "by_sku", Columns: []string{"sku"}}))
}
