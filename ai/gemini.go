package ai

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"datadeck/internal/errors"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client that
// enforces the presentation output schema.
type GeminiClient struct {
	cli     *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiClient builds the client; the API key comes from configuration.
func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New(errors.CodeDependency, "GEMINI_API_KEY is required")
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Collaborator("failed to initialize narrative client", err)
	}
	return &GeminiClient{cli: cli, model: model, timeout: timeout}, nil
}

// presentationSchema mirrors the collaborator contract: a title plus an
// ordered list of {sectionTitle, points[]}.
func presentationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": {Type: genai.TypeString},
			"sections": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"sectionTitle": {Type: genai.TypeString},
						"points": {
							Type:  genai.TypeArray,
							Items: &genai.Schema{Type: genai.TypeString},
						},
					},
				},
			},
		},
	}
}

// Generate performs a single schema-constrained call. The request is the
// sole suspension point per analysis, so the timeout lives here; there is
// no automatic retry.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (*NarrativeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	log.Printf("[GeminiClient] narrative request - model=%s promptLength=%d", g.model, len(prompt))

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   presentationSchema(),
		},
	)
	if err != nil {
		return nil, errors.Collaborator("narrative generation call failed", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.Collaborator("narrative response was empty", nil)
	}

	text := resp.Candidates[0].Content.Parts[0].Text
	var result NarrativeResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, errors.Collaborator("narrative response was not valid JSON", err)
	}
	if len(result.Sections) == 0 {
		return nil, errors.Collaborator("narrative response violated the output schema: no sections", nil)
	}
	for _, section := range result.Sections {
		if section.SectionTitle == "" {
			return nil, errors.Collaborator("narrative response violated the output schema: untitled section", nil)
		}
	}

	log.Printf("[GeminiClient] narrative response parsed - title=%q sections=%d", result.Title, len(result.Sections))
	return &result, nil
}
