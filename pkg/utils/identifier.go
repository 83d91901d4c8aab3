package utils

import "strings"

// QuoteIdentifier wraps an identifier in the provided quote string, handling
// qualified identifiers by quoting each dot-separated part. Embedded quote
// characters are escaped by doubling, which is the escaping rule shared by
// every engine groundskeeper ships an adapter for.
//
// Examples (with quote "`"):
//   - "table" -> "`table`"
//   - "database.table" -> "`database`.`table`"
//   - "we`ird" -> "`we``ird`"
//   - "`table`" -> "`table`" (already quoted, not double-quoted)
//   - "" -> ""
func QuoteIdentifier(name, quote string) string {
	if name == "" {
		return ""
	}

	// An identifier that is already fully quoted (and contains no interior
	// quote runes) is returned as-is so composition stays idempotent.
	if isQuoted(name, quote) {
		return name
	}

	parts := strings.Split(name, ".")
	for i, part := range parts {
		if isQuoted(part, quote) {
			continue
		}
		parts[i] = quote + strings.ReplaceAll(part, quote, quote+quote) + quote
	}
	return strings.Join(parts, ".")
}

// StripQuotes removes all occurrences of the quote string from an identifier.
//
// Examples:
//   - ("`table`", "`") -> "table"
//   - ("table", "`") -> "table"
//   - ("\"db\".\"table\"", "\"") -> "db.table"
func StripQuotes(s, quote string) string {
	return strings.ReplaceAll(s, quote, "")
}

func isQuoted(s, quote string) bool {
	return len(s) >= 2*len(quote) &&
		strings.HasPrefix(s, quote) &&
		strings.HasSuffix(s, quote) &&
		!strings.Contains(s[len(quote):len(s)-len(quote)], quote)
}
