package llm

import (
	"encoding/json"
	"fmt"
)

// ParseError reports why no usable JSON object could be pulled out of a model
// reply. It is a typed result, not a panic path: callers branch on it to decide
// their own fallback behavior.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("llm: %s", e.Reason)
}

// ExtractJSONObject locates the first top-level {...} span in text and returns
// it as raw JSON. Models routinely prepend or append prose and wrap output in
// markdown code fences, so the scan ignores everything outside the braces.
// Matching is done by brace depth with string/escape awareness, which keeps
// nested objects (shipping addresses, product lines) intact where a regex
// would truncate at the first '}'.
func ExtractJSONObject(text string) ([]byte, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				span := []byte(text[start : i+1])
				if !json.Valid(span) {
					return nil, &ParseError{Reason: "candidate span is not valid JSON"}
				}
				return span, nil
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}

	if start < 0 {
		return nil, &ParseError{Reason: "no JSON object found in reply"}
	}
	return nil, &ParseError{Reason: "unterminated JSON object in reply"}
}

// DecodeJSONObject extracts the first JSON object from text and unmarshals it
// into v. A pure function of its input; safe to call repeatedly on the same
// text.
func DecodeJSONObject(text string, v any) error {
	span, err := ExtractJSONObject(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(span, v); err != nil {
		return &ParseError{Reason: fmt.Sprintf("decode object: %v", err)}
	}
	return nil
}
