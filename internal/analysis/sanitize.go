package analysis

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	separatorPattern = regexp.MustCompile(`[_\-.\s]+`)
	avgPattern       = regexp.MustCompile(`\bAvg\b`)
	sumPattern       = regexp.MustCompile(`\bSum\b`)

	titleCaser = cases.Title(language.English)
	numPrinter = message.NewPrinter(language.English)
)

// SanitizeColumnName turns a raw header like "total_sales_sum" into a
// human-readable display name. Separators collapse to spaces, words are
// title-cased, common abbreviations are normalized and trailing aggregate
// tokens are stripped.
func SanitizeColumnName(name string) string {
	name = strings.TrimSpace(separatorPattern.ReplaceAllString(name, " "))
	if name == "" {
		return "Unnamed Field"
	}
	title := titleCaser.String(strings.ToLower(name))
	title = strings.ReplaceAll(title, " Id", " ID")
	title = strings.ReplaceAll(title, " Uid", " UID")
	title = avgPattern.ReplaceAllString(title, "Average")
	title = sumPattern.ReplaceAllString(title, "")
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		return "Unnamed Field"
	}
	return title
}

// formatGrouped renders a value with thousands separators and one decimal,
// e.g. 12345.6 -> "12,345.6".
func formatGrouped(v float64) string {
	return numPrinter.Sprintf("%.1f", v)
}
