package server

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ordermate/ordermate/internal/email"
)

type EmailHandler struct {
	processor *email.Processor
	logger    *slog.Logger
}

func NewEmailHandler(processor *email.Processor, logger *slog.Logger) *EmailHandler {
	return &EmailHandler{processor: processor, logger: logger}
}

type processEmailReq struct {
	EmailContent string    `json:"emailContent"`
	Subject      string    `json:"subject"`
	SenderEmail  string    `json:"senderEmail"`
	ReceivedDate time.Time `json:"receivedDate"`
}

// Process runs an inbound email through the classification and extraction
// pipeline and reports the outcome.
func (h *EmailHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req processEmailReq
	if !decodeBody(w, r, &req) {
		return
	}
	if req.EmailContent == "" || req.Subject == "" {
		respondError(w, http.StatusBadRequest, "emailContent and subject are required")
		return
	}

	result, err := h.processor.ProcessEmail(r.Context(), email.InboundEmail{
		Content:      req.EmailContent,
		Subject:      req.Subject,
		SenderEmail:  req.SenderEmail,
		ReceivedDate: req.ReceivedDate,
	})
	if err != nil {
		h.logger.Error("email processing failed", "subject", req.Subject, "error", err)
		respondError(w, http.StatusInternalServerError, "email processing failed")
		return
	}

	// An order email whose extraction produced nothing usable is reported as a
	// failure envelope, still carrying the classification.
	if result.IsOrder && result.Order == nil {
		respondJSON(w, http.StatusOK, envelope{
			"success":        false,
			"error":          result.Message,
			"classification": result.Classification,
		})
		return
	}

	respondJSON(w, http.StatusOK, envelope{
		"success": true,
		"isOrder": result.IsOrder,
		"message": result.Message,
		"result":  result,
	})
}

const testEmailContent = `Dear OrderMate Team,

I would like to place an order for the following items:

1. Widget Pro X1 - Quantity: 5 pieces - $29.99 each
2. Super Tool Kit - Quantity: 2 sets - $89.50 each
3. Premium Cable Bundle - Quantity: 10 units - $15.75 each

Customer Details:
Name: John Smith
Email: john.smith@example.com
Phone: (555) 123-4567

Shipping Address:
123 Main Street
New York, NY 10001
United States

Please confirm this order and let me know the total cost including shipping.

Best regards,
John Smith
`

const testEmailSubject = "New Order Request - John Smith"

// Test processes a canned order email for demos. A body may override the
// content and subject.
func (h *EmailHandler) Test(w http.ResponseWriter, r *http.Request) {
	var req processEmailReq
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.EmailContent == "" {
		req.EmailContent = testEmailContent
	}
	if req.Subject == "" {
		req.Subject = testEmailSubject
	}

	result, err := h.processor.ProcessEmail(r.Context(), email.InboundEmail{
		Content:      req.EmailContent,
		Subject:      req.Subject,
		SenderEmail:  "john.smith@example.com",
		ReceivedDate: time.Now(),
	})
	if err != nil {
		h.logger.Error("test email processing failed", "error", err)
		respondError(w, http.StatusInternalServerError, "test failed")
		return
	}

	respondJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "test email processed",
		"result":  result,
	})
}

type gmailPushReq struct {
	Message struct {
		Data      string `json:"data"`
		MessageID string `json:"messageId"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

type gmailNotification struct {
	EmailAddress string `json:"emailAddress"`
	HistoryID    uint64 `json:"historyId"`
}

// GmailWebhook accepts Gmail Pub/Sub push notifications. The payload only
// names the mailbox and history ID; fetching the message bodies requires an
// OAuth-backed Gmail client, so the notification is acknowledged and logged.
func (h *EmailHandler) GmailWebhook(w http.ResponseWriter, r *http.Request) {
	var req gmailPushReq
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Message.Data == "" {
		respondError(w, http.StatusBadRequest, "no message found")
		return
	}

	raw, err := base64.StdEncoding.DecodeString(req.Message.Data)
	if err != nil {
		respondError(w, http.StatusBadRequest, "malformed message data")
		return
	}
	var notif gmailNotification
	if err := json.Unmarshal(raw, &notif); err != nil {
		respondError(w, http.StatusBadRequest, "malformed notification")
		return
	}

	h.logger.Info("gmail webhook received",
		"email_address", notif.EmailAddress,
		"history_id", notif.HistoryID,
		"pubsub_message_id", req.Message.MessageID)

	respondJSON(w, http.StatusOK, envelope{"success": true})
}

type outlookNotification struct {
	ChangeType   string `json:"changeType"`
	Resource     string `json:"resource"`
	ResourceData struct {
		ID string `json:"id"`
	} `json:"resourceData"`
}

type outlookWebhookReq struct {
	Value []outlookNotification `json:"value"`
}

// OutlookWebhook accepts Microsoft Graph change notifications. Validation
// handshakes echo the token back as plain text.
func (h *EmailHandler) OutlookWebhook(w http.ResponseWriter, r *http.Request) {
	if token := r.URL.Query().Get("validationToken"); token != "" {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(token))
		return
	}

	var req outlookWebhookReq
	if !decodeBody(w, r, &req) {
		return
	}

	for _, notif := range req.Value {
		if notif.ChangeType != "created" {
			continue
		}
		h.logger.Info("outlook webhook received",
			"change_type", notif.ChangeType,
			"resource_id", notif.ResourceData.ID)
	}

	respondJSON(w, http.StatusOK, envelope{"success": true})
}
