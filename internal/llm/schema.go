package llm

// BuildLineItemsJSONSchema returns a JSON-Schema (draft 2020-12
// subset) as a generic map. It is passed to the model as the output
// contract and used locally to detect schema drift — detection only,
// since the downstream pipeline tolerates anything.
func BuildLineItemsJSONSchema() map[string]any {
	item := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"description": map[string]any{"type": "string", "minLength": 1},
			"quantity":    map[string]any{"type": "number", "exclusiveMinimum": 0.0},
			"unitPrice":   map[string]any{"type": "number", "minimum": 0.0},
			"total":       map[string]any{"type": "number"},
			"notes":       map[string]any{"type": "string"},
		},
		"required": []string{"description"},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"lineItems": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    item,
			},
		},
		"required": []string{"lineItems"},
	}
}
