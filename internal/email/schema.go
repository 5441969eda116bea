package email

// BuildOrderJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map for the extraction reply. The prompt tells the model to use
// null for missing optional fields, so every optional accepts null. The
// non-empty-products rule is enforced in code, not here: an empty array is a
// structurally valid reply that simply carries no usable order.
func BuildOrderJSONSchema() map[string]any {
	optString := map[string]any{"type": []string{"string", "null"}}
	optNumber := map[string]any{"type": []string{"number", "null"}, "minimum": 0.0}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"customerName":  optString,
			"customerEmail": optString,
			"orderNumber":   optString,
			"orderDate": map[string]any{
				"type":    []string{"string", "null"},
				"pattern": `^\d{4}-\d{2}-\d{2}$`,
			},
			"products": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":     map[string]any{"type": "string", "minLength": 1},
						"quantity": map[string]any{"type": "integer", "minimum": 1},
						"price":    optNumber,
						"sku":      optString,
					},
					"required": []string{"name", "quantity"},
				},
			},
			"totalAmount": optNumber,
			"shippingAddress": map[string]any{
				"type": []string{"object", "null"},
				"properties": map[string]any{
					"street":  optString,
					"city":    optString,
					"state":   optString,
					"zipCode": optString,
					"country": optString,
				},
			},
			"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 100.0},
		},
		"required": []string{"products"},
	}
}
