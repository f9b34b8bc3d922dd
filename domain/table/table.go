package table

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the type carried by a single cell.
type Kind int

const (
	KindMissing Kind = iota
	KindNumeric
	KindText
	KindTemporal
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	case KindTemporal:
		return "temporal"
	default:
		return "missing"
	}
}

// Cell is a tagged scalar value. Exactly one of the payload fields is
// meaningful, selected by Kind.
type Cell struct {
	Kind Kind
	Num  float64
	Text string
	Time time.Time
}

// Missing is the canonical empty cell.
var Missing = Cell{Kind: KindMissing}

// NumericCell wraps a float value.
func NumericCell(v float64) Cell { return Cell{Kind: KindNumeric, Num: v} }

// TextCell wraps a string value.
func TextCell(s string) Cell { return Cell{Kind: KindText, Text: s} }

// TemporalCell wraps a timestamp.
func TemporalCell(t time.Time) Cell { return Cell{Kind: KindTemporal, Time: t} }

// Label renders the cell for use as a category label.
func (c Cell) Label() string {
	switch c.Kind {
	case KindNumeric:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case KindText:
		return c.Text
	case KindTemporal:
		return c.Time.Format("2006-01-02")
	default:
		return ""
	}
}

// Column is an ordered sequence of cells under a single name.
type Column struct {
	Name  string
	Cells []Cell
}

// Kind reports the dominant kind of the column: numeric or temporal when
// every non-missing cell agrees, text otherwise. A fully missing column is
// reported as text.
func (c *Column) Kind() Kind {
	sawNumeric, sawText, sawTemporal := false, false, false
	for _, cell := range c.Cells {
		switch cell.Kind {
		case KindNumeric:
			sawNumeric = true
		case KindText:
			sawText = true
		case KindTemporal:
			sawTemporal = true
		}
	}
	switch {
	case sawNumeric && !sawText && !sawTemporal:
		return KindNumeric
	case sawTemporal && !sawText && !sawNumeric:
		return KindTemporal
	default:
		return KindText
	}
}

// DistinctCount counts distinct non-missing values.
func (c *Column) DistinctCount() int {
	seen := make(map[string]struct{}, len(c.Cells))
	for _, cell := range c.Cells {
		if cell.Kind == KindMissing {
			continue
		}
		seen[cell.Label()] = struct{}{}
	}
	return len(seen)
}

// NullRate is the fraction of missing cells, 0 for an empty column.
func (c *Column) NullRate() float64 {
	if len(c.Cells) == 0 {
		return 0
	}
	missing := 0
	for _, cell := range c.Cells {
		if cell.Kind == KindMissing {
			missing++
		}
	}
	return float64(missing) / float64(len(c.Cells))
}

// NumericValues returns the numeric cells in row order, skipping everything
// that does not carry a number.
func (c *Column) NumericValues() []float64 {
	out := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if cell.Kind == KindNumeric {
			out = append(out, cell.Num)
		}
	}
	return out
}

// IsIntegerValued reports whether every numeric cell is a whole number.
// Columns without numeric cells report false.
func (c *Column) IsIntegerValued() bool {
	sawAny := false
	for _, cell := range c.Cells {
		if cell.Kind != KindNumeric {
			continue
		}
		sawAny = true
		if cell.Num != float64(int64(cell.Num)) {
			return false
		}
	}
	return sawAny
}

// TopValues returns the up-to-n most frequent distinct labels, ties broken
// by first appearance so repeated runs stay stable.
func (c *Column) TopValues(n int) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, cell := range c.Cells {
		if cell.Kind == KindMissing {
			continue
		}
		label := cell.Label()
		if _, ok := counts[label]; !ok {
			firstSeen[label] = i
		}
		counts[label]++
	}
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return firstSeen[labels[i]] < firstSeen[labels[j]]
	})
	if len(labels) > n {
		labels = labels[:n]
	}
	return labels
}

// Dataset is an ordered collection of equal-length columns. It is a
// request-scoped value object; analysis never mutates a dataset it did not
// clone first.
type Dataset struct {
	cols  []Column
	index map[string]int
}

// New builds a dataset from columns, enforcing the equal-length invariant.
func New(cols []Column) (*Dataset, error) {
	d := &Dataset{cols: cols, index: make(map[string]int, len(cols))}
	rows := -1
	for i, col := range cols {
		if rows == -1 {
			rows = len(col.Cells)
		} else if len(col.Cells) != rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, len(col.Cells), rows)
		}
		if _, dup := d.index[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		d.index[col.Name] = i
	}
	return d, nil
}

// FromRows builds a dataset from a header row and a grid of raw string
// cells, inferring a numeric or text kind per cell. Short rows are padded
// with missing cells; cells beyond the header width are dropped. Blank
// headers are named by position and duplicate headers are suffixed, the
// same policy RenameColumns applies, so spreadsheet exports with repeated
// columns still load.
func FromRows(headers []string, rows [][]string) (*Dataset, error) {
	cols := make([]Column, len(headers))
	seen := make(map[string]struct{}, len(headers))
	for i, h := range headers {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if _, taken := seen[name]; taken {
			name = fmt.Sprintf("%s (%d)", name, i+1)
		}
		seen[name] = struct{}{}
		cols[i] = Column{Name: name, Cells: make([]Cell, len(rows))}
	}
	for r, row := range rows {
		for c := range cols {
			if c >= len(row) {
				cols[c].Cells[r] = Missing
				continue
			}
			cols[c].Cells[r] = inferCell(row[c])
		}
	}
	return New(cols)
}

// groupedNumberPattern matches numbers written with thousands separators,
// e.g. "1,234" or "-12,345.67". Commas anywhere else keep the cell textual.
var groupedNumberPattern = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)

func inferCell(raw string) Cell {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Missing
	}
	candidate := raw
	if groupedNumberPattern.MatchString(candidate) {
		candidate = strings.ReplaceAll(candidate, ",", "")
	}
	if v, err := strconv.ParseFloat(candidate, 64); err == nil {
		return NumericCell(v)
	}
	return TextCell(raw)
}

// RowCount returns the shared column length.
func (d *Dataset) RowCount() int {
	if len(d.cols) == 0 {
		return 0
	}
	return len(d.cols[0].Cells)
}

// Columns returns the columns in declaration order.
func (d *Dataset) Columns() []Column { return d.cols }

// ColumnNames returns the column names in declaration order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.cols))
	for i, col := range d.cols {
		names[i] = col.Name
	}
	return names
}

// Column looks a column up by name.
func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return &d.cols[i], true
}

// ReplaceColumn swaps a column's cells in place, keeping its position.
func (d *Dataset) ReplaceColumn(col Column) error {
	i, ok := d.index[col.Name]
	if !ok {
		return fmt.Errorf("unknown column %q", col.Name)
	}
	if len(col.Cells) != d.RowCount() {
		return fmt.Errorf("column %q has %d rows, expected %d", col.Name, len(col.Cells), d.RowCount())
	}
	d.cols[i] = col
	return nil
}

// Clone deep-copies the dataset so callers can coerce cells freely.
func (d *Dataset) Clone() *Dataset {
	cols := make([]Column, len(d.cols))
	for i, col := range d.cols {
		cells := make([]Cell, len(col.Cells))
		copy(cells, col.Cells)
		cols[i] = Column{Name: col.Name, Cells: cells}
	}
	clone, _ := New(cols)
	return clone
}

// RenameColumns applies the rename function to every column name, keeping
// order. Collisions keep the first column and suffix later ones.
func (d *Dataset) RenameColumns(rename func(string) string) {
	index := make(map[string]int, len(d.cols))
	for i := range d.cols {
		name := rename(d.cols[i].Name)
		if _, taken := index[name]; taken {
			name = fmt.Sprintf("%s (%d)", name, i+1)
		}
		d.cols[i].Name = name
		index[name] = i
	}
	d.index = index
}
