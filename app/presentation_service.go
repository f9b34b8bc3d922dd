package app

import (
	"context"
	"log"

	"datadeck/ai"
	"datadeck/domain/table"
	"datadeck/internal/analysis"
	"datadeck/internal/charts"
	"datadeck/internal/presentation"
	"datadeck/models"
)

// Segment ranking parameters for charting: how many ranked segments the
// generator sees, and the tighter cardinality cutoff that keeps groups
// readable on a slide.
const (
	chartSegmentCount     = 3
	chartSegmentMaxUnique = 15
)

// PresentationService runs the full analysis pipeline for one dataset:
// classify, select, brief, narrative, charts, assemble. It holds no
// per-request state and is safe to share across requests.
type PresentationService struct {
	Narrative ai.NarrativeGenerator
	Charts    charts.Options
	Assembler presentation.Assembler
}

// NewPresentationService wires the service with the default chart options
// and append-style assembly.
func NewPresentationService(narrative ai.NarrativeGenerator) *PresentationService {
	return &PresentationService{Narrative: narrative}
}

// BuildPresentation materializes the presentation for one dataset. All
// analysis-stage failures surface as coded errors for the boundary; a
// failed individual chart angle never does.
func (s *PresentationService) BuildPresentation(ctx context.Context, ds *table.Dataset) (*models.Presentation, error) {
	// Work on a sanitized clone; the caller's dataset stays untouched.
	work := ds.Clone()
	work.RenameColumns(analysis.SanitizeColumnName)

	profiles := analysis.Classify(work)
	metric, _ := analysis.SelectMetric(work)
	segment, _ := analysis.SelectSegment(work)

	brief, err := analysis.BuildBrief(work, metric, segment)
	if err != nil {
		return nil, err
	}

	prompt := ai.BuildNarrativePrompt(profiles, brief)
	narrative, err := s.Narrative.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	timeColumn, _ := analysis.DetectTimeColumn(work)
	segments := analysis.TopSegments(work, chartSegmentCount, chartSegmentMaxUnique)
	chartSections := charts.Generate(work, metric, segments, timeColumn, s.Charts)
	log.Printf("[PresentationService] generated %d chart sections (metric=%q, segments=%d, timeColumn=%q)",
		len(chartSections), metric, len(segments), timeColumn)

	doc := s.Assembler.Assemble(narrative.Title, narrative.Sections, chartSections)
	return &doc, nil
}
