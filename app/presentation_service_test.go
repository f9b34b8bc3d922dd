package app

import (
	"context"
	"strings"
	"testing"

	"datadeck/ai"
	"datadeck/internal/errors"
	"datadeck/internal/testkit"
	"datadeck/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingNarrative captures the rendered prompt and returns a canned
// narrative.
type recordingNarrative struct {
	prompt string
	result *ai.NarrativeResult
	err    error
}

func (r *recordingNarrative) Generate(_ context.Context, prompt string) (*ai.NarrativeResult, error) {
	r.prompt = prompt
	if r.err != nil {
		return nil, r.err
	}
	return r.result, nil
}

func cannedNarrative() *ai.NarrativeResult {
	return &ai.NarrativeResult{
		Title: "Sales Review",
		Sections: []models.NarrativeSection{
			{SectionTitle: "About the Dataset", Points: []string{"120 orders", "total 30,000"}},
			{SectionTitle: "Relevant Inquiries", Points: []string{"a", "b", "c"}},
		},
	}
}

func TestBuildPresentationMergesNarrativeAndCharts(t *testing.T) {
	gen := &recordingNarrative{result: cannedNarrative()}
	service := NewPresentationService(gen)

	ds := testkit.NewSalesGenerator(testkit.DefaultSalesConfig()).Dataset()
	doc, err := service.BuildPresentation(context.Background(), ds)
	require.NoError(t, err)

	assert.Equal(t, "Sales Review", doc.Title)
	require.Greater(t, len(doc.Sections), 2)

	// Narrative first, charts appended after.
	_, isNarrative := doc.Sections[0].(models.NarrativeSection)
	assert.True(t, isNarrative)
	_, isChart := doc.Sections[len(doc.Sections)-1].(models.ChartSection)
	assert.True(t, isChart)

	// Sanitized column names flow into the prompt.
	assert.Contains(t, gen.prompt, "Product Category")
	assert.NotContains(t, gen.prompt, "product_category")
}

func TestBuildPresentationLeavesInputDatasetUntouched(t *testing.T) {
	service := NewPresentationService(&recordingNarrative{result: cannedNarrative()})
	ds := testkit.NewSalesGenerator(testkit.DefaultSalesConfig()).Dataset()

	_, err := service.BuildPresentation(context.Background(), ds)
	require.NoError(t, err)

	// Raw headers survive; sanitation happened on the working clone.
	assert.True(t, strings.Contains(strings.Join(ds.ColumnNames(), ","), "order_date"))
}

func TestBuildPresentationPropagatesAnalysisError(t *testing.T) {
	gen := &recordingNarrative{result: cannedNarrative()}
	service := NewPresentationService(gen)

	ds := testkit.NewSalesGenerator(testkit.SalesConfig{
		RowCount: 0,
		Regions:  []string{"N"},
		Products: []string{"P"},
		Months:   1,
	}).Dataset()

	_, err := service.BuildPresentation(context.Background(), ds)
	require.Error(t, err)
	assert.Equal(t, errors.CodeAnalysis, errors.CodeOf(err))
	assert.Empty(t, gen.prompt, "collaborator must not be called for unanalyzable input")
}

func TestBuildPresentationPropagatesCollaboratorError(t *testing.T) {
	gen := &recordingNarrative{err: errors.Collaborator("narrative generation call failed", nil)}
	service := NewPresentationService(gen)

	ds := testkit.NewSalesGenerator(testkit.DefaultSalesConfig()).Dataset()
	_, err := service.BuildPresentation(context.Background(), ds)
	require.Error(t, err)
	assert.Equal(t, errors.CodeCollaborator, errors.CodeOf(err))
}
