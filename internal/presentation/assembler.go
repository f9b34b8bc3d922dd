package presentation

import (
	"datadeck/models"
)

// DefaultTitle substitutes for a missing or blank narrative title.
const DefaultTitle = "Data Analysis Report"

// Assembler merges narrative sections with chart sections into one ordered
// document. The zero value appends all charts after the narrative, which is
// the default policy.
type Assembler struct {
	// InsertAfter lists narrative positions after which the next chart is
	// placed. Indices beyond the narrative length are skipped; charts left
	// unplaced are appended at the end. Empty means plain append.
	InsertAfter []int
}

// Assemble is pure and deterministic: the same inputs always produce the
// same section ordering.
func (a Assembler) Assemble(title string, narrative []models.NarrativeSection, charts []models.ChartSection) models.Presentation {
	if title == "" {
		title = DefaultTitle
	}

	sections := make([]models.Section, 0, len(narrative)+len(charts))
	chartIdx := 0

	insertAt := make(map[int]bool, len(a.InsertAfter))
	for _, i := range a.InsertAfter {
		insertAt[i] = true
	}

	for i, section := range narrative {
		sections = append(sections, section)
		if insertAt[i] && chartIdx < len(charts) {
			sections = append(sections, charts[chartIdx])
			chartIdx++
		}
	}
	for ; chartIdx < len(charts); chartIdx++ {
		sections = append(sections, charts[chartIdx])
	}

	return models.Presentation{Title: title, Sections: sections}
}
