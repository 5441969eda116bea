package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObjectPlain(t *testing.T) {
	span, err := ExtractJSONObject(`{"isOrder": true, "confidence": 85}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"isOrder": true, "confidence": 85}`, string(span))
}

func TestExtractJSONObjectSurroundedByProse(t *testing.T) {
	reply := "Sure! Here is the classification you asked for:\n" +
		`{"isOrder": false, "confidence": 20, "reasoning": "newsletter"}` +
		"\nLet me know if you need anything else."
	span, err := ExtractJSONObject(reply)
	require.NoError(t, err)
	assert.JSONEq(t, `{"isOrder": false, "confidence": 20, "reasoning": "newsletter"}`, string(span))
}

func TestExtractJSONObjectMarkdownFence(t *testing.T) {
	reply := "```json\n{\"confidence\": 95}\n```"
	span, err := ExtractJSONObject(reply)
	require.NoError(t, err)
	assert.JSONEq(t, `{"confidence": 95}`, string(span))
}

func TestExtractJSONObjectNestedObjects(t *testing.T) {
	reply := `The extracted order: {"customerName": "Ann", "shippingAddress": {"city": "Oslo", "country": "Norway"}, "products": [{"name": "Widget", "quantity": 2}]} done`
	span, err := ExtractJSONObject(reply)
	require.NoError(t, err)
	assert.Contains(t, string(span), `"country": "Norway"`)
	assert.JSONEq(t, `{"customerName": "Ann", "shippingAddress": {"city": "Oslo", "country": "Norway"}, "products": [{"name": "Widget", "quantity": 2}]}`, string(span))
}

func TestExtractJSONObjectBracesInsideStrings(t *testing.T) {
	reply := `{"reasoning": "subject contains {order} and } braces", "confidence": 50}`
	span, err := ExtractJSONObject(reply)
	require.NoError(t, err)
	assert.JSONEq(t, reply, string(span))
}

func TestExtractJSONObjectEscapedQuoteInString(t *testing.T) {
	reply := `{"reasoning": "customer wrote \"urgent\" twice"}`
	span, err := ExtractJSONObject(reply)
	require.NoError(t, err)
	assert.JSONEq(t, reply, string(span))
}

func TestExtractJSONObjectNoJSON(t *testing.T) {
	_, err := ExtractJSONObject("Sorry, I cannot process this.")
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Reason, "no JSON object")
}

func TestExtractJSONObjectUnterminated(t *testing.T) {
	_, err := ExtractJSONObject(`{"isOrder": true, "confidence": 8`)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Reason, "unterminated")
}

func TestExtractJSONObjectInvalidCandidate(t *testing.T) {
	_, err := ExtractJSONObject(`{"isOrder": true,,}`)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
}

func TestExtractJSONObjectIdempotent(t *testing.T) {
	reply := "prefix {\"confidence\": 42} suffix"
	first, err := ExtractJSONObject(reply)
	require.NoError(t, err)
	second, err := ExtractJSONObject(reply)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecodeJSONObject(t *testing.T) {
	var out struct {
		Confidence int `json:"confidence"`
	}
	err := DecodeJSONObject("reply: {\"confidence\": 77}", &out)
	require.NoError(t, err)
	assert.Equal(t, 77, out.Confidence)
}

func TestDecodeJSONObjectTypeMismatch(t *testing.T) {
	var out struct {
		Confidence int `json:"confidence"`
	}
	err := DecodeJSONObject(`{"confidence": "high"}`, &out)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
}
