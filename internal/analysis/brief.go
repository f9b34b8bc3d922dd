package analysis

import (
	"fmt"
	"log"

	"datadeck/domain/table"
	"datadeck/internal/errors"

	"github.com/montanaflynn/stats"
)

// Balance labels describing how the metric distributes across segments.
const (
	BalanceConcentrated = "concentrated"
	BalanceEven         = "evenly spread"
	BalanceSingleGroup  = "single group only"
	BalanceNoGrouping   = "no grouping available"
)

// A leader must beat second place by more than this ratio to count as
// dominant.
const concentrationRatio = 1.5

// StatisticalBrief is the compact fact sheet handed to the prompt builder.
// Immutable once built.
type StatisticalBrief struct {
	Records int
	Metric  string
	Total   float64
	Mean    float64
	Median  float64
	StdDev  float64
	Q25     float64
	Q75     float64

	Grouping  string // segment column name, "" when none qualified
	TopGroup  string
	Share     float64 // leader sum / total, in [0,1]
	ShareText string  // "75.0%", or "N/A" without a grouping
	Balance   string
}

// BuildBrief derives the statistical brief for the selected metric and
// optional segment. An empty dataset or a missing metric is terminal for
// the request.
func BuildBrief(ds *table.Dataset, metric, segment string) (*StatisticalBrief, error) {
	if ds.RowCount() == 0 {
		return nil, errors.Analysis("empty dataset")
	}
	if metric == "" {
		return nil, errors.Analysis("no numeric metric")
	}
	col, ok := ds.Column(metric)
	if !ok {
		return nil, errors.Analysis(fmt.Sprintf("metric column %q not found", metric))
	}

	// Non-numeric cells are missing, not zero.
	values := col.NumericValues()
	brief := &StatisticalBrief{
		Records:   ds.RowCount(),
		Metric:    metric,
		Grouping:  segment,
		TopGroup:  "N/A",
		ShareText: "N/A",
		Balance:   BalanceNoGrouping,
	}
	if len(values) > 0 {
		brief.Total, _ = stats.Sum(values)
		brief.Mean, _ = stats.Mean(values)
		brief.Median, _ = stats.Median(values)
		brief.StdDev, _ = stats.StandardDeviation(values)
		brief.Q25, _ = stats.Percentile(values, 25)
		brief.Q75, _ = stats.Percentile(values, 75)
	}

	if segment != "" {
		applyLeader(brief, GroupMetric(ds, segment, metric))
	}

	log.Printf("[brief] metric=%q segment=%q records=%d total=%.2f balance=%q",
		metric, segment, brief.Records, brief.Total, brief.Balance)
	return brief, nil
}

func applyLeader(brief *StatisticalBrief, groups []GroupTotal) {
	if len(groups) == 0 {
		return
	}

	leader := 0
	for i := 1; i < len(groups); i++ {
		if groups[i].Sum > groups[leader].Sum {
			leader = i
		}
	}
	brief.TopGroup = groups[leader].Label

	if brief.Total > 0 {
		brief.Share = groups[leader].Sum / brief.Total
	}
	brief.ShareText = fmt.Sprintf("%.1f%%", brief.Share*100)

	if len(groups) == 1 {
		brief.Balance = BalanceSingleGroup
		return
	}
	second := secondBest(groups, leader)
	if second > 0 && groups[leader].Sum/second > concentrationRatio {
		brief.Balance = BalanceConcentrated
	} else {
		brief.Balance = BalanceEven
	}
}

func secondBest(groups []GroupTotal, leader int) float64 {
	best := 0.0
	seen := false
	for i, g := range groups {
		if i == leader {
			continue
		}
		if !seen || g.Sum > best {
			best = g.Sum
			seen = true
		}
	}
	return best
}
