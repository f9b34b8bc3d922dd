package analysis

import (
	"fmt"
	"strings"

	"datadeck/domain/table"

	"github.com/montanaflynn/stats"
)

const (
	// Columns with fewer distinct text values than this are categorical.
	categoricalMaxUnique = 20
	// Profiles are capped to bound the prompt payload, not a sampling step.
	maxProfiledColumns = 15
	// At most this many example values appear in a categorical context.
	contextExampleCount = 5
)

// ColumnProfile is the read-only summary of a single column handed to the
// prompt builder.
type ColumnProfile struct {
	Name          string  `json:"name"`
	Kind          string  `json:"type"`
	DistinctCount int     `json:"distinctCount"`
	NullRate      float64 `json:"nullRate"`
	Context       string  `json:"context"`
}

// Classify produces one profile per column, in declaration order, capped at
// maxProfiledColumns. Column names are expected to be sanitized already.
func Classify(ds *table.Dataset) []ColumnProfile {
	cols := ds.Columns()
	profiles := make([]ColumnProfile, 0, len(cols))
	for _, col := range cols {
		if len(profiles) >= maxProfiledColumns {
			break
		}
		profiles = append(profiles, profileColumn(&col))
	}
	return profiles
}

func profileColumn(col *table.Column) ColumnProfile {
	distinct := col.DistinctCount()
	profile := ColumnProfile{
		Name:          col.Name,
		DistinctCount: distinct,
		NullRate:      col.NullRate(),
	}

	switch kind := col.Kind(); {
	case kind == table.KindText && distinct < categoricalMaxUnique:
		profile.Kind = "categorical"
		profile.Context = "Categories: " + strings.Join(col.TopValues(contextExampleCount), ", ")
	case kind == table.KindNumeric:
		profile.Kind = "numeric"
		profile.Context = numericContext(col)
	case kind == table.KindTemporal:
		profile.Kind = "temporal"
		profile.Context = fmt.Sprintf("Unique values: %d", distinct)
	default:
		profile.Kind = "text"
		profile.Context = fmt.Sprintf("Unique values: %d", distinct)
	}
	return profile
}

func numericContext(col *table.Column) string {
	values := col.NumericValues()
	if len(values) == 0 {
		return "Numeric details not available"
	}
	mean, _ := stats.Mean(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	return fmt.Sprintf("Range: %s to %s (Mean: %s)",
		formatGrouped(min), formatGrouped(max), formatGrouped(mean))
}
