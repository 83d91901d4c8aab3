// Package utils provides shared helpers used across the groundskeeper codebase
// for assembling DDL statements in an engine-agnostic way.
//
// The helpers fall into three groups:
//   - Identifier quoting: QuoteIdentifier and friends wrap identifiers in the
//     quote rune an engine expects (backticks for ClickHouse, double quotes for
//     SQLite and PostgreSQL) while escaping embedded quote runes.
//   - SQL assembly: SQLBuilder offers a fluent interface for building DDL
//     statements from keyword fragments without string concatenation sprawl.
//   - Value helpers: literal formatting and classification for DEFAULT clauses,
//     plus the generic Ptr helper.
//
// These helpers contain no database connectivity; they are pure functions the
// engine adapters compose into their dialect implementations.
package utils
