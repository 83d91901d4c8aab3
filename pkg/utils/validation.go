package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// IsNumericValue checks if a string represents a valid numeric value.
// This uses strconv.ParseFloat to properly validate numeric formats,
// including integers, floats, and scientific notation.
//
// Examples:
//   - "123" -> true
//   - "123.45" -> true
//   - "-123.45" -> true
//   - "1.23e-4" -> true (scientific notation)
//   - "abc" -> false
//   - "" -> false
func IsNumericValue(value string) bool {
	if value == "" {
		return false
	}

	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}

// IsBooleanValue checks if a string represents a boolean value.
// This is case-insensitive.
//
// Examples:
//   - "true" -> true
//   - "FALSE" -> true
//   - "1" -> false (use IsNumericValue for numeric booleans)
//   - "yes" -> false
func IsBooleanValue(value string) bool {
	lowered := strings.ToLower(value)
	return lowered == "true" || lowered == "false"
}

// EscapeString escapes single quotes in a string for embedding in a SQL
// string literal by doubling them.
//
// Examples:
//   - "hello" -> "hello"
//   - "it's" -> "it''s"
func EscapeString(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}

// LiteralValue renders a Go value as a SQL literal suitable for DEFAULT
// clauses. Strings are quoted and escaped, booleans render as TRUE/FALSE,
// nil renders as NULL, and numeric types render unquoted.
//
// Examples:
//   - nil -> "NULL"
//   - "active" -> "'active'"
//   - true -> "TRUE"
//   - 42 -> "42"
//   - 1.5 -> "1.5"
func LiteralValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return fmt.Sprintf("'%s'", EscapeString(v))
	case float32, float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", v), "0"), ".")
	default:
		return fmt.Sprintf("%v", v)
	}
}
