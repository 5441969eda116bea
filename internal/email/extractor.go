package email

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ordermate/ordermate/internal/llm"
)

// Extractor pulls structured order data out of free-form email text.
type Extractor struct {
	gen    llm.TextGenerator
	logger *slog.Logger
}

func NewExtractor(gen llm.TextGenerator, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{gen: gen, logger: logger}
}

// Extract runs one extraction round trip. Any gateway failure, unparseable
// reply, schema mismatch, or an extraction with zero product lines yields
// (nil, err): there is no usable order, and the caller decides what that
// means. A partial ExtractedOrder is never returned.
func (e *Extractor) Extract(ctx context.Context, emailBody, subject string) (*ExtractedOrder, error) {
	start := time.Now()

	reply, err := e.gen.Generate(ctx, BuildExtractionPrompt(emailBody, subject))
	if err != nil {
		e.logger.Error("email.extract.gateway_error",
			"subject", subject, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("model gateway: %w", err)
	}

	span, err := llm.ExtractJSONObject(reply)
	if err != nil {
		e.logger.Warn("email.extract.unparseable_reply",
			"subject", subject, "error", err, "reply_len", len(reply),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	if err := llm.ValidateJSONAgainstSchema(BuildOrderJSONSchema(), span); err != nil {
		e.logger.Warn("email.extract.schema_validation_failed",
			"subject", subject, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	var out ExtractedOrder
	if err := json.Unmarshal(span, &out); err != nil {
		e.logger.Warn("email.extract.unmarshal_failed",
			"subject", subject, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("unmarshal fields: %w", err)
	}

	// The one hard business rule: no product lines means no order, not an
	// empty one.
	if len(out.Products) == 0 {
		e.logger.Info("email.extract.no_products", "subject", subject)
		return nil, fmt.Errorf("extraction contains no products")
	}

	if out.CustomerName == "" && out.CustomerEmail != "" {
		out.CustomerName = out.CustomerEmail
	}

	e.logger.Info("email.extract.ok",
		"subject", subject,
		"customer", out.CustomerName,
		"products", len(out.Products),
		"confidence", out.Confidence,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &out, nil
}
