package ingestion

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeValue returns the NFKC form of a cell value. Surrounding
// whitespace is removed; inner whitespace is kept as loaded.
func NormalizeValue(s string) string {
	return norm.NFKC.String(strings.TrimSpace(s))
}

// NormalizeHeader returns a trimmed, NFKC-normalized column name with inner
// runs of whitespace collapsed to one space.
func NormalizeHeader(s string) string {
	return norm.NFKC.String(strings.Join(strings.Fields(s), " "))
}
