package importer

import (
	"slices"
	"strings"
)

// Format identifies a known CSV export layout.
type Format string

const (
	FormatRevolutStatement Format = "revolut_statement"
	FormatRevolutExpense   Format = "revolut_expense"
	FormatMonzo            Format = "monzo"
	FormatUnknown          Format = "unknown"
)

// DetectFormat inspects header names and returns the first matching layout.
// Matching is case-insensitive and whitespace-trimmed, and checks run in
// priority order, so a header set satisfying several rules resolves to the
// first one.
func DetectFormat(headers []string) Format {
	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}

	has := func(name string) bool { return slices.Contains(lower, name) }

	switch {
	case has("type") && has("product"):
		return FormatRevolutStatement
	case has("merchandiser") || (has("merchant") && has("date")):
		return FormatRevolutExpense
	case has("date") && has("total_amt"):
		return FormatMonzo
	default:
		return FormatUnknown
	}
}

// headerIndex maps lowercased, trimmed header names to column positions so
// extractors can read named fields out of a raw record.
type headerIndex map[string]int

func newHeaderIndex(headers []string) headerIndex {
	idx := make(headerIndex, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	return idx
}

// lookup returns the trimmed value of the first column present in the header,
// or "" when none of the names exist. A present-but-empty column wins over a
// later fallback name.
func (h headerIndex) lookup(record []string, names ...string) string {
	for _, name := range names {
		i, ok := h[name]
		if !ok {
			continue
		}

		if i < len(record) {
			return strings.TrimSpace(record[i])
		}

		return ""
	}

	return ""
}
