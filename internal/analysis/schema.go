package analysis

import "github.com/rajvimal/scorecard/internal/llm"

func stringList(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": desc,
	}
}

// FeedbackSchema is the response shape requested from the provider.
// Nothing is required: a missing field decodes to its zero value.
var FeedbackSchema = &llm.Schema{
	Name:        "resume-feedback",
	Description: "A recruiter-facing endorsement of a candidate's résumé",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     100,
				"description": "A high score out of 100 based on impact.",
			},
			"strengths":   stringList("List of 3 key strengths."),
			"growthPlan":  stringList("List of 3 positive future growth areas."),
			"suggestions": stringList("3 hiring signals: reasons to hire now."),
		},
	},
}
