package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"datadeck/internal/analysis"
)

// FixedGeneratedTitles are the exact section titles the narrative
// collaborator must produce, in order. Overridable configuration, not a
// hidden literal.
var FixedGeneratedTitles = []string{
	"About the Dataset",
	"Key Metrics at a Glance",
	"Leading Segments",
	"Distribution Highlights",
	"Trends Over Time",
	"Notable Outliers",
	"Risks and Caveats",
	"Relevant Inquiries",
}

// Bullet constraints enforced through the prompt.
const (
	aboutSectionBullets = 2
	sectionBullets      = 3
	maxBulletLength     = 120
)

// BuildNarrativePrompt renders the column profiles and statistical brief
// into the instruction block for the narrative collaborator. Pure string
// rendering; the call itself lives elsewhere.
func BuildNarrativePrompt(profiles []analysis.ColumnProfile, brief *analysis.StatisticalBrief) string {
	contextJSON := marshalIndent(contextSummary(profiles))
	briefJSON := marshalIndent(briefFacts(brief))
	titlesJSON := marshalIndent(FixedGeneratedTitles)

	var b strings.Builder
	b.WriteString("ROLE: You are an expert business communicator writing a summary for a CEO. ")
	b.WriteString("Your content MUST be at a Grade 6 reading level and use context-specific terms derived from the column names and context summary.\n\n")

	b.WriteString("DATA CONTEXT SUMMARY:\n")
	b.WriteString(contextJSON)
	b.WriteString("\n\nDATA BRIEF (Key Facts):\n")
	b.WriteString(briefJSON)

	fmt.Fprintf(&b, "\n\nTASK: Generate an executive presentation with exactly %d analytical sections (slides). ", len(FixedGeneratedTitles))
	b.WriteString("Return ONLY JSON that strictly matches the provided schema.\n\n")

	b.WriteString("OUTPUT SCHEMA:\n")
	b.WriteString("- title: string\n")
	b.WriteString("- sections: array of objects with:\n")
	b.WriteString("    - sectionTitle: string\n")
	b.WriteString("    - points: array of strings\n\n")

	b.WriteString("CONTENT RULES:\n")
	fmt.Fprintf(&b, "1. The %d section titles MUST be the EXACT titles listed below, in order.\n", len(FixedGeneratedTitles))
	b.WriteString(titlesJSON)
	b.WriteString("\n")
	fmt.Fprintf(&b, "2. Slide 1 %q: EXACTLY %d bullets: (1) records + total sum, (2) average + topGroup + share + balance.\n",
		FixedGeneratedTitles[0], aboutSectionBullets)
	fmt.Fprintf(&b, "3. Slides 2-%d: Each MUST have EXACTLY %d concise, data-driven bullets (MAX %d chars each), including concrete numbers.\n",
		len(FixedGeneratedTitles), sectionBullets, maxBulletLength)
	b.WriteString("4. Do NOT include a concluding sentence or commentary outside of the bullet points for any slide.\n")
	b.WriteString("5. Each bullet point MUST state a fact or finding derived directly from the data; avoid stating intentions, methodology, or aspirational goals.\n\n")

	b.WriteString("STYLE: Direct, simple, data-first communication. Output JSON only.")
	return b.String()
}

// contextSummary keeps the profile order stable in the rendered JSON.
func contextSummary(profiles []analysis.ColumnProfile) []map[string]string {
	out := make([]map[string]string, len(profiles))
	for i, p := range profiles {
		out[i] = map[string]string{
			"name":    p.Name,
			"type":    p.Kind,
			"context": p.Context,
		}
	}
	return out
}

func briefFacts(brief *analysis.StatisticalBrief) map[string]interface{} {
	grouping := brief.Grouping
	if grouping == "" {
		grouping = "N/A"
	}
	return map[string]interface{}{
		"overview": map[string]interface{}{
			"records":   brief.Records,
			"mainValue": brief.Metric,
			"total":     fmt.Sprintf("%.0f", brief.Total),
			"average":   fmt.Sprintf("%.0f", brief.Mean),
			"median":    fmt.Sprintf("%.1f", brief.Median),
			"stdDev":    fmt.Sprintf("%.1f", brief.StdDev),
		},
		"leaders": map[string]interface{}{
			"grouping": grouping,
			"topGroup": brief.TopGroup,
			"share":    brief.ShareText,
			"balance":  brief.Balance,
		},
	}
}

func marshalIndent(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
