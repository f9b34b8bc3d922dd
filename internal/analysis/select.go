package analysis

import (
	"math"
	"sort"

	"datadeck/domain/table"

	"gonum.org/v1/gonum/stat"
)

const (
	// Heuristic adjustments to the variance score. The interaction of the
	// two multipliers is intentional and fixed; downstream output depends
	// on it.
	identifierPenalty = 0.05
	repeatValueBonus  = 1.2

	// Cardinality window for grouping candidates.
	segmentMinUnique = 2
	segmentMaxUnique = 50
)

// SelectMetric returns the numeric column whose values look most worth
// summarizing. Columns are scored by variance, identifier-like columns are
// heavily downweighted and columns with repeated (aggregable) values get a
// small boost. Ties keep the first column in declaration order.
func SelectMetric(ds *table.Dataset) (string, bool) {
	best := ""
	bestScore := math.Inf(-1)
	for _, col := range ds.Columns() {
		if col.Kind() != table.KindNumeric {
			continue
		}
		score := scoreMetric(&col)
		if best == "" || score > bestScore {
			best = col.Name
			bestScore = score
		}
	}
	return best, best != ""
}

func scoreMetric(col *table.Column) float64 {
	// A numeric-kinded column carries at least one numeric cell; columns
	// with no values at all classify as text and never reach here.
	values := col.NumericValues()
	if len(values) == 0 {
		return 0
	}

	variance := stat.Variance(values, nil)
	if math.IsNaN(variance) || math.IsInf(variance, 0) {
		variance = 0
	}

	distinct := make(map[float64]struct{}, len(values))
	for _, v := range values {
		distinct[v] = struct{}{}
	}
	uniqRatio := float64(len(distinct)) / float64(len(values))

	score := variance
	if col.IsIntegerValued() && uniqRatio > 0.5 {
		score *= identifierPenalty
	}
	if uniqRatio < 0.9 {
		score *= repeatValueBonus
	}
	return score
}

// SelectSegment returns the best categorical grouping column, or false when
// no column fits the cardinality window.
func SelectSegment(ds *table.Dataset) (string, bool) {
	top := TopSegments(ds, 1, segmentMaxUnique)
	if len(top) == 0 {
		return "", false
	}
	return top[0], true
}

// TopSegments ranks categorical columns by cardinality minus a null-rate
// penalty and returns up to count names. Chart generation uses a tighter
// maxUnique than the brief so groups stay readable.
func TopSegments(ds *table.Dataset, count, maxUnique int) []string {
	type candidate struct {
		name  string
		score float64
	}
	var candidates []candidate
	for _, col := range ds.Columns() {
		if col.Kind() != table.KindText {
			continue
		}
		distinct := col.DistinctCount()
		if distinct < segmentMinUnique || distinct > maxUnique {
			continue
		}
		score := float64(distinct) - col.NullRate()*10
		candidates = append(candidates, candidate{name: col.Name, score: score})
	}
	// Stable sort keeps declaration order for equal scores.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > count {
		candidates = candidates[:count]
	}
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	return names
}
