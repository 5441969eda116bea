package email

import "strings"

// BuildClassificationPrompt composes the order-detection prompt. The model is
// told to answer with a single compact JSON object and nothing else; replies
// are still parsed defensively because models pad output with prose anyway.
func BuildClassificationPrompt(emailBody, subject string) string {
	parts := []string{
		"You are an expert email classifier. Analyze the following email to determine if it contains a customer order or purchase request.",
		"",
		"Email Subject: " + subject,
		"Email Content: " + emailBody,
		"",
		"Look for indicators such as:",
		"- Product names and quantities",
		"- Pricing information",
		"- Order confirmations",
		"- Purchase requests",
		"- Shopping cart contents",
		"- Customer information",
		"- Shipping details",
		"",
		"Respond with a JSON object containing:",
		"- isOrder: boolean (true if this is an order email)",
		"- confidence: number (0-100, how confident you are)",
		"- reasoning: string (brief explanation of your decision)",
		"",
		"Only classify as an order if there's clear evidence of a purchase or order request.",
		"",
		`Response format: {"isOrder": boolean, "confidence": number, "reasoning": "string"}`,
	}
	return strings.Join(parts, "\n")
}

// BuildExtractionPrompt composes the structured-extraction prompt. It
// enumerates the exact target schema so the reply can be validated against a
// JSON Schema before anything is trusted.
func BuildExtractionPrompt(emailBody, subject string) string {
	parts := []string{
		"Extract order information from this email. Be precise and only extract information that is clearly present.",
		"",
		"Email Subject: " + subject,
		"Email Content: " + emailBody,
		"",
		"Extract the following information and respond with a JSON object:",
		"{",
		`  "customerName": "string (full name of customer)",`,
		`  "customerEmail": "string (email address)",`,
		`  "orderNumber": "string (order/reference number if present)",`,
		`  "orderDate": "string (YYYY-MM-DD format, use email date if order date not specified)",`,
		`  "products": [`,
		"    {",
		`      "name": "string (product name)",`,
		`      "quantity": number,`,
		`      "price": number (if specified),`,
		`      "sku": "string (if specified)"`,
		"    }",
		"  ],",
		`  "totalAmount": number (if specified),`,
		`  "shippingAddress": {`,
		`    "street": "string",`,
		`    "city": "string",`,
		`    "state": "string",`,
		`    "zipCode": "string",`,
		`    "country": "string"`,
		"  },",
		`  "confidence": number (0-100, confidence in extraction accuracy)`,
		"}",
		"",
		"Rules:",
		"- Only include fields where you have clear information",
		"- For products, extract all items mentioned",
		"- Use null for missing optional fields",
		"- Be conservative with confidence scoring",
		"- If customer email is not in content, extract from email headers/sender",
		"",
		"Response format: Valid JSON object only",
	}
	return strings.Join(parts, "\n")
}
