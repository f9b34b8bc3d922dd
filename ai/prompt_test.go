package ai

import (
	"strings"
	"testing"

	"datadeck/internal/analysis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBrief() *analysis.StatisticalBrief {
	return &analysis.StatisticalBrief{
		Records:   120,
		Metric:    "Sales",
		Total:     24500,
		Mean:      204,
		Grouping:  "Region",
		TopGroup:  "North",
		Share:     0.41,
		ShareText: "41.0%",
		Balance:   analysis.BalanceEven,
	}
}

func sampleProfiles() []analysis.ColumnProfile {
	return []analysis.ColumnProfile{
		{Name: "Region", Kind: "categorical", Context: "Categories: North, South"},
		{Name: "Sales", Kind: "numeric", Context: "Range: 20.0 to 500.0 (Mean: 204.0)"},
	}
}

func TestBuildNarrativePromptIncludesAllSectionTitles(t *testing.T) {
	prompt := BuildNarrativePrompt(sampleProfiles(), sampleBrief())
	for _, title := range FixedGeneratedTitles {
		assert.Contains(t, prompt, title)
	}
}

func TestBuildNarrativePromptCarriesContextAndFacts(t *testing.T) {
	prompt := BuildNarrativePrompt(sampleProfiles(), sampleBrief())

	assert.Contains(t, prompt, "DATA CONTEXT SUMMARY:")
	assert.Contains(t, prompt, "DATA BRIEF (Key Facts):")
	assert.Contains(t, prompt, "Categories: North, South")
	assert.Contains(t, prompt, `"topGroup": "North"`)
	assert.Contains(t, prompt, `"share": "41.0%"`)
	assert.Contains(t, prompt, `"balance": "evenly spread"`)
}

func TestBuildNarrativePromptStatesSchemaAndRules(t *testing.T) {
	prompt := BuildNarrativePrompt(sampleProfiles(), sampleBrief())

	assert.Contains(t, prompt, "OUTPUT SCHEMA:")
	assert.Contains(t, prompt, "sectionTitle: string")
	assert.Contains(t, prompt, "points: array of strings")
	assert.Contains(t, prompt, "EXACTLY 2 bullets")
	assert.Contains(t, prompt, "EXACTLY 3 concise")
	assert.Contains(t, prompt, "MAX 120 chars")
	assert.True(t, strings.HasSuffix(prompt, "Output JSON only."))
}

func TestBuildNarrativePromptIsPure(t *testing.T) {
	first := BuildNarrativePrompt(sampleProfiles(), sampleBrief())
	second := BuildNarrativePrompt(sampleProfiles(), sampleBrief())
	require.Equal(t, first, second)
}

func TestBuildNarrativePromptHandlesMissingGrouping(t *testing.T) {
	brief := sampleBrief()
	brief.Grouping = ""
	brief.TopGroup = "N/A"
	brief.ShareText = "N/A"
	brief.Balance = analysis.BalanceNoGrouping

	prompt := BuildNarrativePrompt(nil, brief)
	assert.Contains(t, prompt, `"grouping": "N/A"`)
	assert.Contains(t, prompt, `"balance": "no grouping available"`)
}
