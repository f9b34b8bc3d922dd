package analysis

import (
	"strings"
	"time"

	"datadeck/domain/table"
)

// Date layouts attempted when coercing a text column to a time axis.
var temporalLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"02-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01",
}

// DetectTimeColumn finds the first column, in declaration order, that is
// already temporal or whose every non-missing value parses as a date. On a
// successful parse the column is coerced in place, so callers should hand in
// a working copy. A column that fails to parse is skipped silently.
func DetectTimeColumn(ds *table.Dataset) (string, bool) {
	for _, col := range ds.Columns() {
		switch col.Kind() {
		case table.KindTemporal:
			return col.Name, true
		case table.KindText:
			coerced, ok := coerceTemporal(&col)
			if !ok {
				continue
			}
			if err := ds.ReplaceColumn(coerced); err != nil {
				continue
			}
			return col.Name, true
		}
	}
	return "", false
}

// coerceTemporal parses every non-missing cell; a single failure
// disqualifies the column.
func coerceTemporal(col *table.Column) (table.Column, bool) {
	cells := make([]table.Cell, len(col.Cells))
	parsed := 0
	for i, cell := range col.Cells {
		if cell.Kind == table.KindMissing {
			cells[i] = table.Missing
			continue
		}
		if cell.Kind != table.KindText {
			return table.Column{}, false
		}
		t, ok := parseDate(cell.Text)
		if !ok {
			return table.Column{}, false
		}
		cells[i] = table.TemporalCell(t)
		parsed++
	}
	if parsed == 0 {
		return table.Column{}, false
	}
	return table.Column{Name: col.Name, Cells: cells}, true
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range temporalLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
