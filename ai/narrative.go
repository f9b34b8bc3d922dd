package ai

import (
	"context"

	"datadeck/models"
)

// NarrativeResult is the parsed output of the narrative collaborator.
type NarrativeResult struct {
	Title    string                    `json:"title"`
	Sections []models.NarrativeSection `json:"sections"`
}

// NarrativeGenerator turns a rendered prompt into titled bullet sections.
// Implementations own transport, timeout and schema enforcement.
type NarrativeGenerator interface {
	Generate(ctx context.Context, prompt string) (*NarrativeResult, error)
}
