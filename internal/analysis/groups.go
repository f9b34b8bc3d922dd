package analysis

import (
	"datadeck/domain/table"
)

// MissingGroupLabel stands in for rows whose segment cell is missing, so
// they still participate in aggregation.
const MissingGroupLabel = "N/A"

// GroupTotal is one segment value with its aggregated metric.
type GroupTotal struct {
	Label string
	Sum   float64
	Count int
}

// Mean returns the per-group average, 0 for empty groups.
func (g GroupTotal) Mean() float64 {
	if g.Count == 0 {
		return 0
	}
	return g.Sum / float64(g.Count)
}

// GroupMetric sums the metric column per distinct segment value, in order
// of first appearance. Rows whose metric cell is not numeric are excluded
// from the aggregate but still materialize their group.
func GroupMetric(ds *table.Dataset, segment, metric string) []GroupTotal {
	segCol, ok := ds.Column(segment)
	if !ok {
		return nil
	}
	metCol, ok := ds.Column(metric)
	if !ok {
		return nil
	}

	index := make(map[string]int)
	var groups []GroupTotal
	for i, cell := range segCol.Cells {
		label := cell.Label()
		if cell.Kind == table.KindMissing {
			label = MissingGroupLabel
		}
		gi, seen := index[label]
		if !seen {
			gi = len(groups)
			index[label] = gi
			groups = append(groups, GroupTotal{Label: label})
		}
		if i < len(metCol.Cells) && metCol.Cells[i].Kind == table.KindNumeric {
			groups[gi].Sum += metCol.Cells[i].Num
			groups[gi].Count++
		}
	}
	return groups
}
