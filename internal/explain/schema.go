package explain

import "github.com/abhisek/reciteking/internal/llm"

// ExplanationSchema defines the structured tutor reply.
var ExplanationSchema = &llm.Schema{
	Name:        "history-explanation",
	Description: "Tutor explanation of a multiple-choice history question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"context": map[string]any{
				"type":        "string",
				"description": "Historical background of the event or concept (2-4 sentences)",
			},
			"why_correct": map[string]any{
				"type":        "string",
				"description": "Why the correct option is right (1-3 sentences)",
			},
			"distractors": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"label": map[string]any{
							"type": "string",
							"enum": []any{"A", "B", "C", "D"},
						},
						"reason": map[string]any{
							"type":        "string",
							"description": "One sentence on why this option is wrong",
						},
					},
					"required":             []any{"label", "reason"},
					"additionalProperties": false,
				},
				"description": "Each incorrect option with a brief reason",
			},
		},
		"required":             []any{"context", "why_correct", "distractors"},
		"additionalProperties": false,
	},
}
