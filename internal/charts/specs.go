package charts

import (
	"fmt"
	"math"
	"sort"
	"time"

	"datadeck/domain/table"
	"datadeck/internal/analysis"
	"datadeck/models"
)

// MaxCharts bounds the number of chart sections per presentation.
const MaxCharts = 5

// Palette is the fixed color cycle applied by output index, so identical
// input always yields identical specs.
var Palette = []string{
	"#3b82f6", "#ef4444", "#10b981", "#f59e0b", "#8b5cf6",
	"#06b6d4", "#84cc16", "#f97316", "#e11d48", "#0ea5e9",
}

// Per-angle truncation limits.
const (
	barTopGroups          = 8
	pieTopGroups          = 5
	hbarTopGroups         = 10
	stackedMaxCardinality = 8
	stackedPrimaryTop     = 6
	stackedSecondaryTop   = 4
	trendMinBuckets       = 2
)

// Aggregate selects how grouped metric values are reduced.
type Aggregate string

const (
	AggregateSum  Aggregate = "sum"
	AggregateMean Aggregate = "mean"
)

// Options tunes the generator; the zero value gives the default behavior.
type Options struct {
	TrendAggregate     Aggregate // monthly buckets, default sum
	BreakdownAggregate Aggregate // secondary breakdown, default sum
	CumulativeTrend    bool      // emit an area chart of running totals instead of a line
}

// Generate derives up to MaxCharts chart sections from the primary metric,
// the ranked segment list and the optional temporal column. Each angle is
// attempted in priority order and skipped silently when its precondition
// fails; a skipped angle only reduces the chart count.
func Generate(ds *table.Dataset, metric string, segments []string, timeColumn string, opts Options) []models.ChartSection {
	var sections []models.ChartSection
	if metric == "" {
		return sections
	}

	primary := ""
	if len(segments) > 0 {
		primary = segments[0]
	}

	if spec, ok := rankedTotals(ds, metric, primary); ok {
		sections = append(sections, spec)
	}
	if spec, ok := shareOfWhole(ds, metric, primary); ok {
		sections = append(sections, spec)
	}
	if spec, ok := temporalTrend(ds, metric, timeColumn, opts); ok {
		sections = append(sections, spec)
	}
	if spec, ok := secondaryBreakdown(ds, metric, segments, opts); ok {
		sections = append(sections, spec)
	}
	if spec, ok := crossTabulation(ds, metric, segments); ok {
		sections = append(sections, spec)
	}

	if len(sections) > MaxCharts {
		sections = sections[:MaxCharts]
	}
	return sections
}

// rankedTotals is the bar-chart angle: metric summed by the top segment,
// descending, top 8 groups.
func rankedTotals(ds *table.Dataset, metric, segment string) (models.ChartSection, bool) {
	if segment == "" {
		return models.ChartSection{}, false
	}
	groups := sortedBySum(analysis.GroupMetric(ds, segment, metric))
	if len(groups) == 0 {
		return models.ChartSection{}, false
	}
	if len(groups) > barTopGroups {
		groups = groups[:barTopGroups]
	}

	points := make([]models.ChartPoint, len(groups))
	for i, g := range groups {
		points[i] = models.ChartPoint{
			Category: g.Label,
			Value:    round2(safeFloat(g.Sum)),
			Color:    colorAt(i),
		}
	}
	return models.ChartSection{
		SectionTitle: fmt.Sprintf("Top %s by %s", segment, metric),
		IsChartSlide: true,
		ChartType:    models.ChartBar,
		ChartData:    points,
	}, true
}

// shareOfWhole is the pie-chart angle: top 5 groups as percentages of the
// total, plus an "Other" bucket when a positive remainder exists.
func shareOfWhole(ds *table.Dataset, metric, segment string) (models.ChartSection, bool) {
	if segment == "" {
		return models.ChartSection{}, false
	}
	col, ok := ds.Column(metric)
	if !ok {
		return models.ChartSection{}, false
	}
	total := 0.0
	for _, v := range col.NumericValues() {
		total += safeFloat(v)
	}
	if total <= 0 {
		return models.ChartSection{}, false
	}

	groups := sortedBySum(analysis.GroupMetric(ds, segment, metric))
	if len(groups) == 0 {
		return models.ChartSection{}, false
	}
	top := groups
	if len(top) > pieTopGroups {
		top = top[:pieTopGroups]
	}
	other := 0.0
	for _, g := range groups[len(top):] {
		other += safeFloat(g.Sum)
	}

	points := make([]models.ChartPoint, 0, len(top)+1)
	for i, g := range top {
		points = append(points, models.ChartPoint{
			Category: g.Label,
			Value:    round1(safeFloat(g.Sum) / total * 100),
			Color:    colorAt(i),
		})
	}
	if other > 0 {
		points = append(points, models.ChartPoint{
			Category: "Other",
			Value:    round1(other / total * 100),
			Color:    colorAt(len(top)),
		})
	}
	return models.ChartSection{
		SectionTitle: fmt.Sprintf("%s Share by %s", metric, segment),
		IsChartSlide: true,
		ChartType:    models.ChartPie,
		ChartData:    points,
	}, true
}

// temporalTrend is the line/area angle: the metric resampled to calendar
// months over the detected time column. The resample covers every month
// between the first and last observed, zero-filling empty buckets, and
// needs at least two calendar months in that span.
func temporalTrend(ds *table.Dataset, metric, timeColumn string, opts Options) (models.ChartSection, bool) {
	if timeColumn == "" {
		return models.ChartSection{}, false
	}
	timeCol, ok := ds.Column(timeColumn)
	if !ok {
		return models.ChartSection{}, false
	}
	metCol, ok := ds.Column(metric)
	if !ok {
		return models.ChartSection{}, false
	}

	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[time.Time]*bucket)
	for i, cell := range timeCol.Cells {
		if cell.Kind != table.KindTemporal || i >= len(metCol.Cells) || metCol.Cells[i].Kind != table.KindNumeric {
			continue
		}
		month := time.Date(cell.Time.Year(), cell.Time.Month(), 1, 0, 0, 0, 0, time.UTC)
		b := buckets[month]
		if b == nil {
			b = &bucket{}
			buckets[month] = b
		}
		b.sum += metCol.Cells[i].Num
		b.count++
	}
	if len(buckets) == 0 {
		return models.ChartSection{}, false
	}

	var first, last time.Time
	for m := range buckets {
		if first.IsZero() || m.Before(first) {
			first = m
		}
		if last.IsZero() || m.After(last) {
			last = m
		}
	}
	var months []time.Time
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	if len(months) < trendMinBuckets {
		return models.ChartSection{}, false
	}

	agg := opts.TrendAggregate
	if agg == "" {
		agg = AggregateSum
	}
	points := make([]models.MonthPoint, len(months))
	running := 0.0
	for i, m := range months {
		value := 0.0
		if b := buckets[m]; b != nil {
			value = b.sum
			if agg == AggregateMean && b.count > 0 {
				value = b.sum / float64(b.count)
			}
		}
		if opts.CumulativeTrend {
			running += value
			value = running
		}
		points[i] = models.MonthPoint{
			Month: m.Format("Jan"),
			Value: round2(safeFloat(value)),
		}
	}

	chartType := models.ChartLine
	title := fmt.Sprintf("Monthly %s Trend", metric)
	if opts.CumulativeTrend {
		chartType = models.ChartArea
		title = fmt.Sprintf("Cumulative %s Over Time", metric)
	}
	return models.ChartSection{
		SectionTitle: title,
		IsChartSlide: true,
		ChartType:    chartType,
		ChartData:    points,
	}, true
}

// secondaryBreakdown is the horizontal-bar angle: a different segment than
// the primary, aggregated and truncated to 10 groups.
func secondaryBreakdown(ds *table.Dataset, metric string, segments []string, opts Options) (models.ChartSection, bool) {
	if len(segments) < 2 {
		return models.ChartSection{}, false
	}
	alt := ""
	for _, s := range segments[1:] {
		if s != segments[0] {
			alt = s
			break
		}
	}
	if alt == "" {
		return models.ChartSection{}, false
	}

	groups := sortedBySum(analysis.GroupMetric(ds, alt, metric))
	if len(groups) == 0 {
		return models.ChartSection{}, false
	}
	if len(groups) > hbarTopGroups {
		groups = groups[:hbarTopGroups]
	}

	agg := opts.BreakdownAggregate
	if agg == "" {
		agg = AggregateSum
	}
	points := make([]models.ChartPoint, len(groups))
	for i, g := range groups {
		value := g.Sum
		if agg == AggregateMean {
			value = g.Mean()
		}
		points[i] = models.ChartPoint{
			Category: g.Label,
			Value:    round2(safeFloat(value)),
		}
	}
	return models.ChartSection{
		SectionTitle: fmt.Sprintf("%s by %s", metric, alt),
		IsChartSlide: true,
		ChartType:    models.ChartHorizontal,
		ChartData:    points,
	}, true
}

// crossTabulation is the stacked angle: a pivot of metric sums over the top
// two segments when both are low-cardinality, trimmed to the top 6 primary
// and top 4 secondary categories by marginal total.
func crossTabulation(ds *table.Dataset, metric string, segments []string) (models.ChartSection, bool) {
	if len(segments) < 2 {
		return models.ChartSection{}, false
	}
	base, secondary := segments[0], segments[1]

	baseCol, ok := ds.Column(base)
	if !ok {
		return models.ChartSection{}, false
	}
	secCol, ok := ds.Column(secondary)
	if !ok {
		return models.ChartSection{}, false
	}
	if baseCol.DistinctCount() > stackedMaxCardinality || secCol.DistinctCount() > stackedMaxCardinality {
		return models.ChartSection{}, false
	}
	metCol, ok := ds.Column(metric)
	if !ok {
		return models.ChartSection{}, false
	}

	// Pivot of sums keyed by (base label, secondary label), orders tracked
	// by first appearance.
	pivot := make(map[string]map[string]float64)
	var baseOrder, secOrder []string
	for i := range baseCol.Cells {
		baseLabel := labelOrMissing(baseCol.Cells[i])
		secLabel := labelOrMissing(secCol.Cells[i])
		row := pivot[baseLabel]
		if row == nil {
			row = make(map[string]float64)
			pivot[baseLabel] = row
			baseOrder = append(baseOrder, baseLabel)
		}
		if _, seen := row[secLabel]; !seen && !containsString(secOrder, secLabel) {
			secOrder = append(secOrder, secLabel)
		}
		if i < len(metCol.Cells) && metCol.Cells[i].Kind == table.KindNumeric {
			row[secLabel] += metCol.Cells[i].Num
		} else {
			row[secLabel] += 0
		}
	}
	if len(baseOrder) == 0 || len(secOrder) == 0 {
		return models.ChartSection{}, false
	}

	topBase := topByMarginal(baseOrder, func(label string) float64 {
		total := 0.0
		for _, v := range pivot[label] {
			total += safeFloat(v)
		}
		return total
	}, stackedPrimaryTop)

	topSecondary := topByMarginal(secOrder, func(label string) float64 {
		total := 0.0
		for _, b := range topBase {
			total += safeFloat(pivot[b][label])
		}
		return total
	}, stackedSecondaryTop)

	groups := make([]models.StackedGroup, 0, len(topBase))
	for _, b := range topBase {
		segs := make([]models.StackedSegment, len(topSecondary))
		for j, s := range topSecondary {
			segs[j] = models.StackedSegment{
				Name:  s,
				Value: round2(safeFloat(pivot[b][s])),
				Color: colorAt(j),
			}
		}
		groups = append(groups, models.StackedGroup{Category: b, Segments: segs})
	}
	return models.ChartSection{
		SectionTitle: fmt.Sprintf("%s by %s and %s", metric, base, secondary),
		IsChartSlide: true,
		ChartType:    models.ChartStacked,
		ChartData:    groups,
	}, true
}

// sortedBySum orders groups by descending sum, keeping first-appearance
// order for ties.
func sortedBySum(groups []analysis.GroupTotal) []analysis.GroupTotal {
	out := make([]analysis.GroupTotal, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sum > out[j].Sum })
	return out
}

func topByMarginal(order []string, marginal func(string) float64, n int) []string {
	out := make([]string, len(order))
	copy(out, order)
	sort.SliceStable(out, func(i, j int) bool { return marginal(out[i]) > marginal(out[j]) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func labelOrMissing(cell table.Cell) string {
	if cell.Kind == table.KindMissing {
		return analysis.MissingGroupLabel
	}
	return cell.Label()
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func colorAt(i int) string {
	return Palette[i%len(Palette)]
}

// safeFloat maps non-finite values to 0 instead of letting them propagate
// into chart output.
func safeFloat(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
