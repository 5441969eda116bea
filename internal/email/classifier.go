package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/ordermate/ordermate/internal/llm"
)

// Classifier answers "is this an order email, and how confident are we".
type Classifier struct {
	gen    llm.TextGenerator
	logger *slog.Logger
}

func NewClassifier(gen llm.TextGenerator, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{gen: gen, logger: logger}
}

// Classify runs one classification round trip. It never returns an error:
// gateway failures and unparseable replies both collapse to a safe negative
// with confidence 0, because a false negative is cheaper than a crashed
// pipeline. The cause lands in Reasoning for the caller's logs.
func (c *Classifier) Classify(ctx context.Context, emailBody, subject string) Classification {
	start := time.Now()

	reply, err := c.gen.Generate(ctx, BuildClassificationPrompt(emailBody, subject))
	if err != nil {
		c.logger.Error("email.classify.gateway_error",
			"subject", subject, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Classification{IsOrder: false, Confidence: 0, Reasoning: "model gateway failure: " + err.Error()}
	}

	var result Classification
	if err := llm.DecodeJSONObject(reply, &result); err != nil {
		c.logger.Warn("email.classify.unparseable_reply",
			"subject", subject, "error", err, "reply_len", len(reply),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Classification{IsOrder: false, Confidence: 0, Reasoning: "could not parse model reply"}
	}
	if result.Reasoning == "" {
		result.Reasoning = "no reasoning provided"
	}

	c.logger.Info("email.classify.ok",
		"subject", subject,
		"is_order", result.IsOrder,
		"confidence", result.Confidence,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return result
}
