package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordermate/ordermate/internal/email"
	"github.com/ordermate/ordermate/internal/entity"
)

type mockGenerator struct {
	generateFn func(ctx context.Context, prompt string) (string, error)
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return m.generateFn(ctx, prompt)
}

type mockStore struct {
	createOrderFn func(ctx context.Context, o *entity.Order) (*entity.Order, error)
}

func (m *mockStore) CreateOrder(ctx context.Context, o *entity.Order) (*entity.Order, error) {
	return m.createOrderFn(ctx, o)
}

func newTestEmailHandler(gen *mockGenerator, store email.OrderStore) *EmailHandler {
	p := email.NewProcessor(nil, email.Config{},
		email.NewClassifier(gen, nil),
		email.NewExtractor(gen, nil),
		store)
	return NewEmailHandler(p, testLogger())
}

func nonOrderGenerator() *mockGenerator {
	return &mockGenerator{
		generateFn: func(_ context.Context, _ string) (string, error) {
			return `{"isOrder": false, "confidence": 95, "reasoning": "newsletter"}`, nil
		},
	}
}

func TestEmailProcessMissingFields(t *testing.T) {
	h := newTestEmailHandler(nonOrderGenerator(), &mockStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/email/process",
		strings.NewReader(`{"emailContent": "hello"}`))
	rec := httptest.NewRecorder()
	h.Process(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}

func TestEmailProcessNonOrder(t *testing.T) {
	h := newTestEmailHandler(nonOrderGenerator(), &mockStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/email/process",
		strings.NewReader(`{"emailContent": "50% off!", "subject": "Sale"}`))
	rec := httptest.NewRecorder()
	h.Process(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		IsOrder bool   `json:"isOrder"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.False(t, body.IsOrder)
	assert.Equal(t, "email classified as non-order", body.Message)
}

func TestEmailProcessCreatesOrder(t *testing.T) {
	gen := &mockGenerator{
		generateFn: func(_ context.Context, prompt string) (string, error) {
			if strings.Contains(prompt, "email classifier") {
				return `{"isOrder": true, "confidence": 95, "reasoning": "order"}`, nil
			}
			return `{"customerName": "Ann", "customerEmail": "ann@example.com", "products": [{"name": "Widget", "quantity": 2, "price": 9.99}], "confidence": 93}`, nil
		},
	}
	var created *entity.Order
	store := &mockStore{
		createOrderFn: func(_ context.Context, o *entity.Order) (*entity.Order, error) {
			created = o
			return o, nil
		},
	}
	h := newTestEmailHandler(gen, store)

	req := httptest.NewRequest(http.MethodPost, "/api/email/process",
		strings.NewReader(`{"emailContent": "2 widgets please", "subject": "Order", "senderEmail": "ann@example.com"}`))
	rec := httptest.NewRecorder()
	h.Process(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, created)
	assert.Equal(t, entity.OrderStatusPending, created.Status)
	assert.Equal(t, "Ann", created.Name)

	var body struct {
		IsOrder bool   `json:"isOrder"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.IsOrder)
	assert.Equal(t, "order created successfully from email", body.Message)
}

func TestEmailProcessExtractionFailureEnvelope(t *testing.T) {
	gen := &mockGenerator{
		generateFn: func(_ context.Context, prompt string) (string, error) {
			if strings.Contains(prompt, "email classifier") {
				return `{"isOrder": true, "confidence": 85, "reasoning": "looks like an order"}`, nil
			}
			return "no structured data here", nil
		},
	}
	store := &mockStore{
		createOrderFn: func(_ context.Context, _ *entity.Order) (*entity.Order, error) {
			t.Fatal("CreateOrder must not be called when extraction fails")
			return nil, nil
		},
	}
	h := newTestEmailHandler(gen, store)

	req := httptest.NewRequest(http.MethodPost, "/api/email/process",
		strings.NewReader(`{"emailContent": "order-ish", "subject": "Order"}`))
	rec := httptest.NewRecorder()
	h.Process(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success        bool                 `json:"success"`
		Error          string               `json:"error"`
		Classification email.Classification `json:"classification"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "failed to extract order data from email", body.Error)
	assert.True(t, body.Classification.IsOrder)
	assert.Equal(t, 85.0, body.Classification.Confidence)
}

func TestGmailWebhookDecodesNotification(t *testing.T) {
	h := newTestEmailHandler(nonOrderGenerator(), &mockStore{})

	data := base64.StdEncoding.EncodeToString([]byte(`{"emailAddress": "shop@example.com", "historyId": 12345}`))
	payload := `{"message": {"data": "` + data + `", "messageId": "m-1"}, "subscription": "projects/p/subscriptions/s"}`

	req := httptest.NewRequest(http.MethodPost, "/api/email/webhook/gmail", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.GmailWebhook(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGmailWebhookMissingMessage(t *testing.T) {
	h := newTestEmailHandler(nonOrderGenerator(), &mockStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/email/webhook/gmail", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.GmailWebhook(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGmailWebhookBadBase64(t *testing.T) {
	h := newTestEmailHandler(nonOrderGenerator(), &mockStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/email/webhook/gmail",
		strings.NewReader(`{"message": {"data": "%%%not-base64%%%"}}`))
	rec := httptest.NewRecorder()
	h.GmailWebhook(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOutlookWebhookValidationHandshake(t *testing.T) {
	h := newTestEmailHandler(nonOrderGenerator(), &mockStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/email/webhook/outlook?validationToken=tok-123", nil)
	rec := httptest.NewRecorder()
	h.OutlookWebhook(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok-123", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}

func TestOutlookWebhookNotifications(t *testing.T) {
	h := newTestEmailHandler(nonOrderGenerator(), &mockStore{})

	payload := `{"value": [{"changeType": "created", "resourceData": {"id": "msg-1"}}, {"changeType": "updated", "resourceData": {"id": "msg-2"}}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/email/webhook/outlook", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.OutlookWebhook(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
