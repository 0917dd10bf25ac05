package llm

import "strings"

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of a call.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1e6
}

type catalogueEntry struct {
	provider string
	alias    string
	id       string
	cost     ModelCost
}

// catalogue lists the models offered by DefaultConfig and the documented
// RECITEKING_*_MODEL aliases. Prices from models.dev, 2026-02.
var catalogue = []catalogueEntry{
	{"gemini", "gemini-flash", "gemini-2.5-flash", ModelCost{0.3, 2.5}},
	{"gemini", "gemini-flash-lite", "gemini-2.5-flash-lite", ModelCost{0.1, 0.4}},
	{"gemini", "gemini-pro", "gemini-2.5-pro", ModelCost{1.25, 10}},
	{"openai", "gpt-4o-mini", "gpt-4o-mini", ModelCost{0.15, 0.6}},
	{"openai", "gpt-4o", "gpt-4o", ModelCost{2.5, 10}},
	{"anthropic", "claude-haiku", "claude-haiku-4-5-20251001", ModelCost{1, 5}},
	{"anthropic", "claude-sonnet", "claude-sonnet-4-5-20250929", ModelCost{3, 15}},
}

// resolveModel maps a catalogue alias of provider to its model ID. Other
// names are passed through unchanged.
func resolveModel(provider, name string) string {
	for _, e := range catalogue {
		if e.provider == provider && e.alias == name {
			return e.id
		}
	}
	return name
}

// LookupCost returns pricing for a model ID, or nil when unknown. Vendor
// prefixes ("google/gemini-2.5-flash") and dated suffixes
// ("gpt-4o-mini-2024-07-18") resolve to the catalogue entry.
func LookupCost(modelID string) *ModelCost {
	if _, name, ok := strings.Cut(modelID, "/"); ok {
		modelID = name
	}
	var best *catalogueEntry
	for i, e := range catalogue {
		if modelID != e.id && !strings.HasPrefix(modelID, e.id+"-") {
			continue
		}
		// Longest match, so gpt-4o-mini is not priced as gpt-4o.
		if best == nil || len(e.id) > len(best.id) {
			best = &catalogue[i]
		}
	}
	if best == nil {
		return nil
	}
	c := best.cost
	return &c
}
