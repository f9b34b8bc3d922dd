package analysis

import (
	"testing"

	"datadeck/domain/table"
	"datadeck/internal/errors"
	"datadeck/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBriefEmptyDataset(t *testing.T) {
	ds := testkit.MustDataset([]table.Column{
		{Name: "Sales", Cells: nil},
	})
	_, err := BuildBrief(ds, "Sales", "")
	require.Error(t, err)
	assert.Equal(t, errors.CodeAnalysis, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "empty dataset")
}

func TestBuildBriefNoMetric(t *testing.T) {
	ds := testkit.MustDataset([]table.Column{
		testkit.TextColumn("Region", "North", "South"),
	})
	_, err := BuildBrief(ds, "", "Region")
	require.Error(t, err)
	assert.Equal(t, errors.CodeAnalysis, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "no numeric metric")
}

func TestBuildBriefConcentratedLeader(t *testing.T) {
	// A sums to 150, B to 50: share 75.0%, ratio 3.0 > 1.5.
	ds := testkit.MustDataset([]table.Column{
		testkit.TextColumn("Region", "A", "A", "B"),
		testkit.NumericColumn("Sales", 100, 50, 50),
	})

	brief, err := BuildBrief(ds, "Sales", "Region")
	require.NoError(t, err)

	assert.Equal(t, 3, brief.Records)
	assert.Equal(t, 200.0, brief.Total)
	assert.Equal(t, "A", brief.TopGroup)
	assert.Equal(t, "75.0%", brief.ShareText)
	assert.Equal(t, BalanceConcentrated, brief.Balance)
}

func TestBuildBriefEvenlySpread(t *testing.T) {
	// Three groups near 66.7 each: no pair ratio exceeds 1.5.
	ds := testkit.MustDataset([]table.Column{
		testkit.TextColumn("Region", "A", "B", "C"),
		testkit.NumericColumn("Sales", 66.7, 66.7, 66.6),
	})

	brief, err := BuildBrief(ds, "Sales", "Region")
	require.NoError(t, err)
	assert.Equal(t, BalanceEven, brief.Balance)
}

func TestBuildBriefSingleGroup(t *testing.T) {
	ds := testkit.MustDataset([]table.Column{
		testkit.TextColumn("Region", "Only", "Only"),
		testkit.NumericColumn("Sales", 40, 60),
	})

	brief, err := BuildBrief(ds, "Sales", "Region")
	require.NoError(t, err)
	assert.Equal(t, BalanceSingleGroup, brief.Balance)
	assert.Equal(t, "100.0%", brief.ShareText)
	assert.Equal(t, "Only", brief.TopGroup)
}

func TestBuildBriefWithoutSegment(t *testing.T) {
	ds := testkit.MustDataset([]table.Column{
		testkit.NumericColumn("Sales", 10, 20, 30),
	})

	brief, err := BuildBrief(ds, "Sales", "")
	require.NoError(t, err)
	assert.Equal(t, BalanceNoGrouping, brief.Balance)
	assert.Equal(t, "N/A", brief.TopGroup)
	assert.Equal(t, "N/A", brief.ShareText)
	assert.Equal(t, 60.0, brief.Total)
	assert.Equal(t, 20.0, brief.Mean)
	assert.Equal(t, 20.0, brief.Median)
}

func TestBuildBriefExcludesNonNumericCells(t *testing.T) {
	// The "pending" cell is missing from the aggregate, not zero.
	ds := testkit.MustDataset([]table.Column{
		testkit.TextColumn("Region", "A", "A", "B"),
		{Name: "Sales", Cells: []table.Cell{
			table.NumericCell(100),
			table.TextCell("pending"),
			table.NumericCell(50),
		}},
	})

	brief, err := BuildBrief(ds, "Sales", "Region")
	require.NoError(t, err)
	assert.Equal(t, 150.0, brief.Total)
	assert.Equal(t, 75.0, brief.Mean)
	assert.Equal(t, "A", brief.TopGroup)
}

func TestBuildBriefShareZeroWhenTotalNonPositive(t *testing.T) {
	ds := testkit.MustDataset([]table.Column{
		testkit.TextColumn("Region", "A", "B"),
		testkit.NumericColumn("Sales", -10, -30),
	})

	brief, err := BuildBrief(ds, "Sales", "Region")
	require.NoError(t, err)
	assert.Equal(t, 0.0, brief.Share)
	assert.Equal(t, "0.0%", brief.ShareText)
	// -10 beats -30 on sum.
	assert.Equal(t, "A", brief.TopGroup)
}

func TestGroupMetricBucketsMissingSegment(t *testing.T) {
	ds := testkit.MustDataset([]table.Column{
		testkit.TextColumn("Region", "A", "", "A"),
		testkit.NumericColumn("Sales", 10, 20, 30),
	})
	groups := GroupMetric(ds, "Region", "Sales")
	require.Len(t, groups, 2)
	assert.Equal(t, "A", groups[0].Label)
	assert.Equal(t, 40.0, groups[0].Sum)
	assert.Equal(t, MissingGroupLabel, groups[1].Label)
	assert.Equal(t, 20.0, groups[1].Sum)
}
