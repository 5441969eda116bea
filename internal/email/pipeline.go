package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ordermate/ordermate/internal/entity"
)

// Config holds the pipeline policy thresholds.
// OrderConfidenceFloor gates the extraction attempt after a positive
// classification; ReviewConfidenceCeiling gates the requires_review flag on
// created orders. The 70/90 defaults are inherited policy, not derived.
type Config struct {
	OrderConfidenceFloor    int
	ReviewConfidenceCeiling int
}

// Processor coordinates classify -> extract -> ingest for one inbound email.
type Processor struct {
	logger     *slog.Logger
	cfg        Config
	classifier *Classifier
	extractor  *Extractor
	orders     OrderStore
}

func NewProcessor(logger *slog.Logger, cfg Config, classifier *Classifier, extractor *Extractor, orders OrderStore) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.OrderConfidenceFloor <= 0 {
		cfg.OrderConfidenceFloor = 70
	}
	if cfg.ReviewConfidenceCeiling <= 0 {
		cfg.ReviewConfidenceCeiling = 90
	}
	return &Processor{
		logger:     logger,
		cfg:        cfg,
		classifier: classifier,
		extractor:  extractor,
		orders:     orders,
	}
}

// ProcessEmail runs the full pipeline once and always returns a definite
// outcome: not an order, order but extraction failed, or order created. The
// returned error is non-nil only for persistence failures; classification and
// extraction failures are final, reported outcomes, not errors. Redelivery of
// the same email runs the pipeline again with no de-duplication.
func (p *Processor) ProcessEmail(ctx context.Context, in InboundEmail) (*Result, error) {
	p.logger.Info("email.pipeline.start",
		"subject", in.Subject, "sender", in.SenderEmail, "content_len", len(in.Content))

	classification := p.classifier.Classify(ctx, in.Content, in.Subject)

	if !classification.IsOrder || classification.Confidence < float64(p.cfg.OrderConfidenceFloor) {
		p.logger.Info("email.pipeline.not_order",
			"subject", in.Subject,
			"is_order", classification.IsOrder,
			"confidence", classification.Confidence,
			"floor", p.cfg.OrderConfidenceFloor,
		)
		return &Result{
			IsOrder:        false,
			Classification: classification,
			Message:        "email classified as non-order",
		}, nil
	}

	extracted, err := p.extractor.Extract(ctx, in.Content, in.Subject)
	if extracted == nil {
		p.logger.Warn("email.pipeline.extraction_failed", "subject", in.Subject, "error", err)
		return &Result{
			IsOrder:        true,
			Classification: classification,
			Message:        "failed to extract order data from email",
		}, nil
	}

	order := p.buildOrder(extracted, in)
	saved, err := p.orders.CreateOrder(ctx, order)
	if err != nil {
		p.logger.Error("email.pipeline.persist_failed", "subject", in.Subject, "error", err)
		return nil, fmt.Errorf("create order: %w", err)
	}

	p.logger.Info("email.pipeline.order_created",
		"subject", in.Subject,
		"order_id", saved.ID,
		"order_link", saved.OrderLink,
		"requires_review", saved.RequiresReview,
		"ai_confidence", saved.AIConfidence,
	)
	return &Result{
		IsOrder:        true,
		Classification: classification,
		ExtractedData:  extracted,
		Order:          saved,
		Message:        "order created successfully from email",
	}, nil
}

// buildOrder maps a validated extraction onto the persisted order shape,
// tagging it as AI-derived and keeping the inbound email verbatim for audit.
func (p *Processor) buildOrder(extracted *ExtractedOrder, in InboundEmail) *entity.Order {
	now := time.Now()

	products := make([]entity.OrderProduct, 0, len(extracted.Products))
	for _, ep := range extracted.Products {
		price := 0.0
		if ep.Price != nil {
			price = *ep.Price
		}
		products = append(products, entity.OrderProduct{
			Name:     ep.Name,
			Quantity: ep.Quantity,
			Price:    price,
			SKU:      ep.SKU,
		})
	}

	date := extracted.OrderDate
	if date == "" {
		date = now.Format("2006-01-02")
	}
	orderLink := extracted.OrderNumber
	if orderLink == "" {
		orderLink = fmt.Sprintf("AI-%d", now.UnixMilli())
	}
	receivedDate := in.ReceivedDate
	if receivedDate.IsZero() {
		receivedDate = now
	}

	return &entity.Order{
		Date:      date,
		Time:      now.Format("15:04:05"),
		Products:  products,
		Status:    entity.OrderStatusPending,
		OrderLink: orderLink,
		Email:     extracted.CustomerEmail,
		Name:      extracted.CustomerName,

		AIProcessed:  true,
		AIConfidence: extracted.Confidence,
		OriginalEmail: &entity.OriginalEmail{
			Subject:      in.Subject,
			Content:      in.Content,
			Sender:       in.SenderEmail,
			ReceivedDate: receivedDate,
		},
		RequiresReview:  extracted.Confidence < float64(p.cfg.ReviewConfidenceCeiling),
		TotalAmount:     extracted.TotalAmount,
		ShippingAddress: extracted.ShippingAddress,
	}
}
