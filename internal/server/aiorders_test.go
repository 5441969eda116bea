package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordermate/ordermate/internal/entity"
	"github.com/ordermate/ordermate/internal/repository"
)

func TestAIOrdersOverview(t *testing.T) {
	review := &entity.Order{ID: uuid.New(), Name: "Ann", AIConfidence: 72.5, RequiresReview: true}
	recent := &entity.Order{ID: uuid.New(), Name: "Bob", AIProcessed: true, AIConfidence: 95}

	orders := &mockOrders{
		needingReviewFn: func(_ context.Context, confidenceBelow float64, limit int32) ([]*entity.Order, error) {
			assert.InDelta(t, 90, confidenceBelow, 0.001)
			assert.Equal(t, int32(50), limit)
			return []*entity.Order{review}, nil
		},
		recentAIFn: func(_ context.Context, limit int32) ([]*entity.Order, error) {
			assert.Equal(t, int32(20), limit)
			return []*entity.Order{recent}, nil
		},
		statsFn: func(_ context.Context) (*repository.AIOrderStats, error) {
			return &repository.AIOrderStats{
				TotalOrders:         10,
				AIProcessedOrders:   6,
				OrdersNeedingReview: 1,
				AverageConfidence:   83.75,
			}, nil
		},
	}
	h := NewAIOrderHandler(orders, 90, testLogger())

	rec := httptest.NewRecorder()
	h.Overview(rec, httptest.NewRequest(http.MethodGet, "/api/orders/ai", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			OrdersNeedingReview []*entity.Order         `json:"ordersNeedingReview"`
			RecentAIOrders      []*entity.Order         `json:"recentAIOrders"`
			Stats               repository.AIOrderStats `json:"stats"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data.OrdersNeedingReview, 1)
	assert.Equal(t, review.ID, body.Data.OrdersNeedingReview[0].ID)
	require.Len(t, body.Data.RecentAIOrders, 1)
	assert.Equal(t, recent.ID, body.Data.RecentAIOrders[0].ID)
	assert.Equal(t, int64(6), body.Data.Stats.AIProcessedOrders)
	assert.InDelta(t, 83.75, body.Data.Stats.AverageConfidence, 0.001)
}

func TestAIOrdersOverviewRepoError(t *testing.T) {
	orders := &mockOrders{
		needingReviewFn: func(_ context.Context, _ float64, _ int32) ([]*entity.Order, error) {
			return nil, assert.AnError
		},
	}
	h := NewAIOrderHandler(orders, 90, testLogger())

	rec := httptest.NewRecorder()
	h.Overview(rec, httptest.NewRequest(http.MethodGet, "/api/orders/ai", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
