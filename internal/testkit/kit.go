package testkit

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"datadeck/domain/table"
)

// SalesConfig configures the synthetic retail dataset generator used across
// the test suites. Every field is deterministic under the same seed.
type SalesConfig struct {
	RowCount  int
	Regions   []string
	Products  []string
	StartDate time.Time
	Months    int
	Seed      int64
	// NullEvery blanks the region of every n-th row to exercise null-rate
	// scoring; 0 disables it.
	NullEvery int
}

// DefaultSalesConfig returns a small but realistic configuration.
func DefaultSalesConfig() SalesConfig {
	return SalesConfig{
		RowCount:  120,
		Regions:   []string{"North", "South", "East", "West"},
		Products:  []string{"Widgets", "Gadgets", "Gizmos"},
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Months:    6,
		Seed:      42,
	}
}

// SalesGenerator produces synthetic order tables with an identifier column,
// two categorical segments, a numeric metric and a date column. Rows are
// regenerated from the seed on every call, so Dataset and CSV agree.
type SalesGenerator struct {
	config SalesConfig
}

// NewSalesGenerator creates a seeded generator.
func NewSalesGenerator(config SalesConfig) *SalesGenerator {
	return &SalesGenerator{config: config}
}

// Headers returns the generated column names in declaration order.
func (g *SalesGenerator) Headers() []string {
	return []string{"order_id", "region", "product_category", "sales_amount", "order_date"}
}

// Rows generates the raw string grid under the headers.
func (g *SalesGenerator) Rows() [][]string {
	rng := rand.New(rand.NewSource(g.config.Seed))
	rows := make([][]string, g.config.RowCount)
	for i := 0; i < g.config.RowCount; i++ {
		region := g.config.Regions[rng.Intn(len(g.config.Regions))]
		if g.config.NullEvery > 0 && (i+1)%g.config.NullEvery == 0 {
			region = ""
		}
		product := g.config.Products[rng.Intn(len(g.config.Products))]
		amount := 20 + rng.Float64()*480
		day := g.config.StartDate.AddDate(0, rng.Intn(g.config.Months), rng.Intn(28))

		rows[i] = []string{
			fmt.Sprintf("%d", 1000+i),
			region,
			product,
			strconv.FormatFloat(amount, 'f', 2, 64),
			day.Format("2006-01-02"),
		}
	}
	return rows
}

// Dataset builds the typed dataset directly.
func (g *SalesGenerator) Dataset() *table.Dataset {
	ds, err := table.FromRows(g.Headers(), g.Rows())
	if err != nil {
		panic(err) // invariant: generator always produces a rectangular grid
	}
	return ds
}

// CSV renders the dataset as an uploadable CSV payload.
func (g *SalesGenerator) CSV() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(g.Headers())
	_ = w.WriteAll(g.Rows())
	w.Flush()
	return buf.Bytes()
}

// MustDataset builds a dataset from literal columns, panicking on invariant
// violations; test convenience only.
func MustDataset(cols []table.Column) *table.Dataset {
	ds, err := table.New(cols)
	if err != nil {
		panic(err)
	}
	return ds
}

// TextColumn builds a text column; empty strings become missing cells.
func TextColumn(name string, values ...string) table.Column {
	cells := make([]table.Cell, len(values))
	for i, v := range values {
		if v == "" {
			cells[i] = table.Missing
		} else {
			cells[i] = table.TextCell(v)
		}
	}
	return table.Column{Name: name, Cells: cells}
}

// NumericColumn builds a numeric column.
func NumericColumn(name string, values ...float64) table.Column {
	cells := make([]table.Cell, len(values))
	for i, v := range values {
		cells[i] = table.NumericCell(v)
	}
	return table.Column{Name: name, Cells: cells}
}
