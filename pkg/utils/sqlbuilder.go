package utils

import (
	"fmt"
	"strings"
)

// SQLBuilder provides a fluent interface for building DDL statements. It
// handles identifier quoting via the quote function supplied at construction,
// so each engine adapter gets statements in its own dialect from the same
// assembly code.
//
// Example usage:
//
//	sql := utils.NewSQLBuilder(quote).
//		Create("TABLE").
//		Name("widgets").
//		Columns("id BIGINT NOT NULL", "name VARCHAR(255)").
//		String()
//	// Output: CREATE TABLE "widgets" (id BIGINT NOT NULL, name VARCHAR(255))
type SQLBuilder struct {
	quote func(string) string
	parts []string
}

// NewSQLBuilder creates a new SQLBuilder using the provided identifier quote
// function. A nil quote function leaves identifiers unquoted.
func NewSQLBuilder(quote func(string) string) *SQLBuilder {
	if quote == nil {
		quote = func(s string) string { return s }
	}

	return &SQLBuilder{
		quote: quote,
		parts: make([]string, 0, 10),
	}
}

// Create adds a CREATE clause with the specified object type.
//
// Example:
//
//	builder.Create("TABLE")     // CREATE TABLE
//	builder.Create("DATABASE")  // CREATE DATABASE
func (b *SQLBuilder) Create(objectType string) *SQLBuilder {
	b.parts = append(b.parts, "CREATE", objectType)
	return b
}

// Drop adds a DROP clause with the specified object type.
func (b *SQLBuilder) Drop(objectType string) *SQLBuilder {
	b.parts = append(b.parts, "DROP", objectType)
	return b
}

// Alter adds an ALTER clause with the specified object type.
func (b *SQLBuilder) Alter(objectType string) *SQLBuilder {
	b.parts = append(b.parts, "ALTER", objectType)
	return b
}

// IfExists adds an IF EXISTS clause. This should be called after DROP operations.
func (b *SQLBuilder) IfExists() *SQLBuilder {
	b.parts = append(b.parts, "IF", "EXISTS")
	return b
}

// IfNotExists adds an IF NOT EXISTS clause. This should be called after CREATE operations.
func (b *SQLBuilder) IfNotExists() *SQLBuilder {
	b.parts = append(b.parts, "IF", "NOT", "EXISTS")
	return b
}

// Name adds a quoted object name.
//
// Example:
//
//	builder.Name("widgets")  // "widgets" (or `widgets` depending on the quote fn)
func (b *SQLBuilder) Name(name string) *SQLBuilder {
	if name != "" {
		b.parts = append(b.parts, b.quote(name))
	}
	return b
}

// Columns adds a parenthesized, comma-separated list of pre-rendered column
// or constraint definitions.
//
// Example:
//
//	builder.Columns("id BIGINT", "name TEXT")  // (id BIGINT, name TEXT)
func (b *SQLBuilder) Columns(defs ...string) *SQLBuilder {
	if len(defs) > 0 {
		b.parts = append(b.parts, "("+strings.Join(defs, ", ")+")")
	}
	return b
}

// NameList adds a parenthesized, comma-separated list of quoted identifiers.
//
// Example:
//
//	builder.NameList("sku", "region")  // ("sku", "region")
func (b *SQLBuilder) NameList(names ...string) *SQLBuilder {
	if len(names) == 0 {
		return b
	}

	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = b.quote(n)
	}
	b.parts = append(b.parts, "("+strings.Join(quoted, ", ")+")")
	return b
}

// On adds an ON clause with a quoted table name, used for index statements.
func (b *SQLBuilder) On(table string) *SQLBuilder {
	if table != "" {
		b.parts = append(b.parts, "ON", b.quote(table))
	}
	return b
}

// To adds a TO clause for rename operations.
func (b *SQLBuilder) To(name string) *SQLBuilder {
	if name != "" {
		b.parts = append(b.parts, "TO", b.quote(name))
	}
	return b
}

// Add adds an ADD clause for ALTER operations.
func (b *SQLBuilder) Add(clause string) *SQLBuilder {
	b.parts = append(b.parts, "ADD", clause)
	return b
}

// Rename adds a RENAME clause for ALTER operations.
func (b *SQLBuilder) Rename(clause string) *SQLBuilder {
	b.parts = append(b.parts, "RENAME", clause)
	return b
}

// Engine adds an ENGINE clause with the specified engine name (ClickHouse).
func (b *SQLBuilder) Engine(engine string) *SQLBuilder {
	if engine != "" {
		b.parts = append(b.parts, "ENGINE", "=", engine)
	}
	return b
}

// Comment adds a COMMENT clause with the specified comment text. The comment
// is automatically quoted and SQL-escaped.
func (b *SQLBuilder) Comment(comment string) *SQLBuilder {
	if comment != "" {
		b.parts = append(b.parts, "COMMENT", fmt.Sprintf("'%s'", EscapeString(comment)))
	}
	return b
}

// Raw adds raw SQL text to the builder. Use sparingly for constructs that
// don't fit the fluent pattern.
func (b *SQLBuilder) Raw(sql string) *SQLBuilder {
	if sql != "" {
		b.parts = append(b.parts, sql)
	}
	return b
}

// String builds and returns the final SQL statement.
//
// Example:
//
//	sql := builder.Create("DATABASE").Name("test").String()
//	// Returns: "CREATE DATABASE `test`"
func (b *SQLBuilder) String() string {
	return strings.Join(b.parts, " ")
}
