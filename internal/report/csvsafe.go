package report

import (
	"strings"
)

// EscapeCSVCell protects against CSV formula injection by prefixing cells
// that a spreadsheet would interpret as a formula. Listing titles and seller
// names come from scraped pages, so they are attacker-controlled.
func EscapeCSVCell(value string) string {
	if value == "" {
		return value
	}

	switch value[0] {
	case '=', '+', '-', '@', '|', '%', '\t', '\r', '\n':
		return "'" + value
	}

	return value
}

// EscapeCSVRow escapes all cells in a row.
func EscapeCSVRow(row []string) []string {
	escaped := make([]string, len(row))
	for i, cell := range row {
		escaped[i] = EscapeCSVCell(cell)
	}
	return escaped
}

// sanitizeHeader keeps exported column names single-line.
func sanitizeHeader(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
