package analysis

import (
	"fmt"
	"testing"

	"datadeck/domain/table"
	"datadeck/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeColumnName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"total_sales_sum", "Total Sales"},
		{"avg_price", "Average Price"},
		{"customer id", "Customer ID"},
		{"user-uid", "User UID"},
		{"order.date", "Order Date"},
		{"REGION", "Region"},
		{"", "Unnamed Field"},
		{"___", "Unnamed Field"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeColumnName(tt.in))
		})
	}
}

func TestClassifyKindsAndContexts(t *testing.T) {
	// 25 rows so the free-text column clears the categorical threshold.
	wide := make([]string, 25)
	for i := range wide {
		wide[i] = fmt.Sprintf("note-%d", i)
	}
	filler := make([]float64, 25)
	regions := make([]string, 25)
	for i := range regions {
		regions[i] = []string{"North", "South"}[i%2]
	}
	ds := testkit.MustDataset([]table.Column{
		testkit.TextColumn("Region", regions...),
		testkit.NumericColumn("Sales", filler...),
		testkit.TextColumn("Comment", wide...),
	})

	profiles := Classify(ds)
	require.Len(t, profiles, 3)

	assert.Equal(t, "categorical", profiles[0].Kind)
	assert.Equal(t, "Categories: North, South", profiles[0].Context)

	assert.Equal(t, "numeric", profiles[1].Kind)
	assert.Equal(t, "Range: 0.0 to 0.0 (Mean: 0.0)", profiles[1].Context)

	assert.Equal(t, "text", profiles[2].Kind)
	assert.Equal(t, "Unique values: 25", profiles[2].Context)
}

func TestClassifyNumericContextGroupsThousands(t *testing.T) {
	ds := testkit.MustDataset([]table.Column{
		testkit.NumericColumn("Revenue", 1000, 2000, 12000),
	})
	profiles := Classify(ds)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Range: 1,000.0 to 12,000.0 (Mean: 5,000.0)", profiles[0].Context)
}

func TestClassifyCapsAtFifteenColumns(t *testing.T) {
	cols := make([]table.Column, 0, 20)
	for i := 0; i < 20; i++ {
		cols = append(cols, testkit.NumericColumn(fmt.Sprintf("c%02d", i), 1, 2))
	}
	profiles := Classify(testkit.MustDataset(cols))
	assert.Len(t, profiles, 15)
	assert.Equal(t, "c00", profiles[0].Name)
	assert.Equal(t, "c14", profiles[14].Name)
}

func TestClassifyTopCategoriesByFrequency(t *testing.T) {
	ds := testkit.MustDataset([]table.Column{
		testkit.TextColumn("Status", "open", "closed", "closed", "open", "closed", "stale"),
	})
	profiles := Classify(ds)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Categories: closed, open, stale", profiles[0].Context)
}
