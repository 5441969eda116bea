package email

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockGenerator struct {
	generateFn func(ctx context.Context, prompt string) (string, error)
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return m.generateFn(ctx, prompt)
}

func TestClassifyOrderEmail(t *testing.T) {
	gen := &mockGenerator{
		generateFn: func(_ context.Context, _ string) (string, error) {
			return `{"isOrder": true, "confidence": 95, "reasoning": "explicit purchase request with quantities"}`, nil
		},
	}
	c := NewClassifier(gen, nil)

	got := c.Classify(context.Background(), "I'd like to order 5 widgets", "New Order")
	assert.True(t, got.IsOrder)
	assert.Equal(t, 95.0, got.Confidence)
	assert.Equal(t, "explicit purchase request with quantities", got.Reasoning)
}

func TestClassifyReplyWrappedInProse(t *testing.T) {
	gen := &mockGenerator{
		generateFn: func(_ context.Context, _ string) (string, error) {
			return "Here is my analysis:\n```json\n{\"isOrder\": false, \"confidence\": 90, \"reasoning\": \"marketing newsletter\"}\n```", nil
		},
	}
	c := NewClassifier(gen, nil)

	got := c.Classify(context.Background(), "50% off everything!", "Big Sale")
	assert.False(t, got.IsOrder)
	assert.Equal(t, 90.0, got.Confidence)
}

func TestClassifyFractionalConfidence(t *testing.T) {
	gen := &mockGenerator{
		generateFn: func(_ context.Context, _ string) (string, error) {
			return `{"isOrder": true, "confidence": 87.5, "reasoning": "likely an order"}`, nil
		},
	}
	c := NewClassifier(gen, nil)

	got := c.Classify(context.Background(), "order please", "Order")
	assert.True(t, got.IsOrder)
	assert.InDelta(t, 87.5, got.Confidence, 0.001)
}

func TestClassifyGatewayErrorSafeDefault(t *testing.T) {
	gen := &mockGenerator{
		generateFn: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("connection refused")
		},
	}
	c := NewClassifier(gen, nil)

	got := c.Classify(context.Background(), "order please", "Order")
	assert.False(t, got.IsOrder)
	assert.Equal(t, 0.0, got.Confidence)
	assert.NotEmpty(t, got.Reasoning)
	assert.Contains(t, got.Reasoning, "gateway")
}

func TestClassifyUnparseableReplySafeDefault(t *testing.T) {
	gen := &mockGenerator{
		generateFn: func(_ context.Context, _ string) (string, error) {
			return "Sorry, I cannot process this.", nil
		},
	}
	c := NewClassifier(gen, nil)

	got := c.Classify(context.Background(), "hello", "Hi")
	assert.False(t, got.IsOrder)
	assert.Equal(t, 0.0, got.Confidence)
	assert.NotEmpty(t, got.Reasoning)
}

func TestClassifyFillsMissingReasoning(t *testing.T) {
	gen := &mockGenerator{
		generateFn: func(_ context.Context, _ string) (string, error) {
			return `{"isOrder": true, "confidence": 80}`, nil
		},
	}
	c := NewClassifier(gen, nil)

	got := c.Classify(context.Background(), "order", "Order")
	assert.True(t, got.IsOrder)
	assert.NotEmpty(t, got.Reasoning)
}

func TestClassificationPromptCarriesEmail(t *testing.T) {
	var seen string
	gen := &mockGenerator{
		generateFn: func(_ context.Context, prompt string) (string, error) {
			seen = prompt
			return `{"isOrder": false, "confidence": 10, "reasoning": "n/a"}`, nil
		},
	}
	c := NewClassifier(gen, nil)

	c.Classify(context.Background(), "please send 3 anvils", "Anvil order")
	assert.Contains(t, seen, "please send 3 anvils")
	assert.Contains(t, seen, "Anvil order")
}
