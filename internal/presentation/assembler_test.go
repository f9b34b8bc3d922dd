package presentation

import (
	"reflect"
	"testing"

	"datadeck/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func narrativeFixture() []models.NarrativeSection {
	return []models.NarrativeSection{
		{SectionTitle: "About the Dataset", Points: []string{"p1", "p2"}},
		{SectionTitle: "Leading Segments", Points: []string{"p1", "p2", "p3"}},
		{SectionTitle: "Relevant Inquiries", Points: []string{"p1", "p2", "p3"}},
	}
}

func chartFixture() []models.ChartSection {
	return []models.ChartSection{
		{SectionTitle: "Top Region by Sales", IsChartSlide: true, ChartType: models.ChartBar},
		{SectionTitle: "Sales Share by Region", IsChartSlide: true, ChartType: models.ChartPie},
	}
}

func titles(doc models.Presentation) []string {
	out := make([]string, len(doc.Sections))
	for i, s := range doc.Sections {
		switch v := s.(type) {
		case models.NarrativeSection:
			out[i] = v.SectionTitle
		case models.ChartSection:
			out[i] = v.SectionTitle
		}
	}
	return out
}

func TestAssembleAppendsChartsByDefault(t *testing.T) {
	doc := Assembler{}.Assemble("Quarterly Review", narrativeFixture(), chartFixture())

	assert.Equal(t, "Quarterly Review", doc.Title)
	assert.Equal(t, []string{
		"About the Dataset", "Leading Segments", "Relevant Inquiries",
		"Top Region by Sales", "Sales Share by Region",
	}, titles(doc))
}

func TestAssembleInterleavesAtConfiguredPositions(t *testing.T) {
	a := Assembler{InsertAfter: []int{0, 2}}
	doc := a.Assemble("T", narrativeFixture(), chartFixture())

	assert.Equal(t, []string{
		"About the Dataset", "Top Region by Sales",
		"Leading Segments", "Relevant Inquiries", "Sales Share by Region",
	}, titles(doc))
}

func TestAssembleSkipsOutOfRangeSlotsAndAppendsLeftovers(t *testing.T) {
	a := Assembler{InsertAfter: []int{0, 9}}
	doc := a.Assemble("T", narrativeFixture(), chartFixture())

	assert.Equal(t, []string{
		"About the Dataset", "Top Region by Sales",
		"Leading Segments", "Relevant Inquiries", "Sales Share by Region",
	}, titles(doc))
}

func TestAssembleSubstitutesDefaultTitle(t *testing.T) {
	doc := Assembler{}.Assemble("", narrativeFixture(), nil)
	assert.Equal(t, DefaultTitle, doc.Title)
}

func TestAssembleTolerantOfEmptyNarrative(t *testing.T) {
	doc := Assembler{InsertAfter: []int{0, 1}}.Assemble("T", nil, chartFixture())
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, []string{"Top Region by Sales", "Sales Share by Region"}, titles(doc))
}

func TestAssembleIsDeterministic(t *testing.T) {
	a := Assembler{InsertAfter: []int{1}}
	first := a.Assemble("T", narrativeFixture(), chartFixture())
	second := a.Assemble("T", narrativeFixture(), chartFixture())
	assert.True(t, reflect.DeepEqual(first, second))
}
