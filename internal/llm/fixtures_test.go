package llm

import "encoding/json"

// historySchema mirrors the tutor reply schema without importing explain.
func historySchema() *Schema {
	return &Schema{
		Name:        "test-history-explanation",
		Description: "Tutor explanation of a history question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"context": map[string]any{
					"type":        "string",
					"description": "Historical background",
				},
				"why_correct": map[string]any{
					"type":        "string",
					"description": "Why the answer is right",
				},
				"distractors": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"label":  map[string]any{"type": "string", "enum": []any{"A", "B", "C", "D"}},
							"reason": map[string]any{"type": "string"},
						},
						"required":             []any{"label", "reason"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"context", "why_correct", "distractors"},
			"additionalProperties": false,
		},
	}
}

const xinhaiReply = `{"context":"辛亥革命推翻了清王朝。","why_correct":"武昌起义爆发于1911年。","distractors":[{"label":"A","reason":"1898年是戊戌变法。"}]}`

func xinhaiRequest() Request {
	return Request{
		System:    "你是历史老师。",
		Messages:  []Message{{Role: RoleUser, Content: "解释题目 ChineseHistory-s8-2：辛亥革命爆发于哪一年？"}},
		Schema:    historySchema(),
		MaxTokens: 512,
		Purpose:   "explain",
	}
}

func mustJSON(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(raw)
}
