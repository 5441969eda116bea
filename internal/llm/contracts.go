package llm

import "context"

// TextGenerator is the model-gateway boundary the email pipeline depends on.
// Implementations send a single prompt to a text-generation service and return
// the raw reply text. The reply is untrusted: it may wrap JSON in prose, return
// no JSON at all, or fail outright (network, quota, timeout). Callers must parse
// defensively and never assume structure.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
