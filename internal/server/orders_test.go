package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordermate/ordermate/internal/auth"
	"github.com/ordermate/ordermate/internal/common"
	"github.com/ordermate/ordermate/internal/entity"
	"github.com/ordermate/ordermate/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockOrders struct {
	listOrdersFn    func(ctx context.Context) ([]*entity.Order, error)
	getOrderFn      func(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	createOrderFn   func(ctx context.Context, o *entity.Order) (*entity.Order, error)
	updateOrderFn   func(ctx context.Context, id uuid.UUID, upd repository.OrderUpdate) (*entity.Order, error)
	deleteOrderFn   func(ctx context.Context, id uuid.UUID) error
	needingReviewFn func(ctx context.Context, confidenceBelow float64, limit int32) ([]*entity.Order, error)
	recentAIFn      func(ctx context.Context, limit int32) ([]*entity.Order, error)
	statsFn         func(ctx context.Context) (*repository.AIOrderStats, error)
}

func (m *mockOrders) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	return m.listOrdersFn(ctx)
}
func (m *mockOrders) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return m.getOrderFn(ctx, id)
}
func (m *mockOrders) CreateOrder(ctx context.Context, o *entity.Order) (*entity.Order, error) {
	return m.createOrderFn(ctx, o)
}
func (m *mockOrders) UpdateOrder(ctx context.Context, id uuid.UUID, upd repository.OrderUpdate) (*entity.Order, error) {
	return m.updateOrderFn(ctx, id, upd)
}
func (m *mockOrders) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return m.deleteOrderFn(ctx, id)
}
func (m *mockOrders) ListOrdersNeedingReview(ctx context.Context, confidenceBelow float64, limit int32) ([]*entity.Order, error) {
	return m.needingReviewFn(ctx, confidenceBelow, limit)
}
func (m *mockOrders) ListRecentAIOrders(ctx context.Context, limit int32) ([]*entity.Order, error) {
	return m.recentAIFn(ctx, limit)
}
func (m *mockOrders) AIOrderStats(ctx context.Context) (*repository.AIOrderStats, error) {
	return m.statsFn(ctx)
}

// withURLParam attaches a chi route parameter to a bare httptest request.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestOrdersList(t *testing.T) {
	orders := &mockOrders{
		listOrdersFn: func(_ context.Context) ([]*entity.Order, error) {
			return []*entity.Order{{ID: uuid.New(), Name: "Ann", Status: entity.OrderStatusPending}}, nil
		},
	}
	h := NewOrderHandler(orders, testLogger())

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool            `json:"success"`
		Orders  []*entity.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Orders, 1)
	assert.Equal(t, "Ann", body.Orders[0].Name)
}

func TestOrdersGetNotFound(t *testing.T) {
	orders := &mockOrders{
		getOrderFn: func(_ context.Context, _ uuid.UUID) (*entity.Order, error) {
			return nil, common.ErrNotFound
		},
	}
	h := NewOrderHandler(orders, testLogger())

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/orders/x", nil), "id", uuid.NewString())
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrdersGetMalformedID(t *testing.T) {
	h := NewOrderHandler(&mockOrders{}, testLogger())

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/orders/nope", nil), "id", "nope")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrdersCreateRequiresProducts(t *testing.T) {
	h := NewOrderHandler(&mockOrders{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/orders",
		strings.NewReader(`{"email": "a@b.com", "name": "Ann", "products": []}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrdersCreateDefaultsStatus(t *testing.T) {
	var created *entity.Order
	orders := &mockOrders{
		createOrderFn: func(_ context.Context, o *entity.Order) (*entity.Order, error) {
			o.ID = uuid.New()
			created = o
			return o, nil
		},
	}
	h := NewOrderHandler(orders, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/orders",
		strings.NewReader(`{"email": "a@b.com", "name": "Ann", "products": [{"name": "Widget", "quantity": 1, "price": 5}]}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, created)
	assert.Equal(t, entity.OrderStatusPending, created.Status)
}

func TestOrdersUpdateRejectsUnknownStatus(t *testing.T) {
	h := NewOrderHandler(&mockOrders{}, testLogger())

	req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/orders/x",
		strings.NewReader(`{"status": "teleported"}`)), "id", uuid.NewString())
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrdersUpdatePartial(t *testing.T) {
	var gotUpd repository.OrderUpdate
	orders := &mockOrders{
		updateOrderFn: func(_ context.Context, _ uuid.UUID, upd repository.OrderUpdate) (*entity.Order, error) {
			gotUpd = upd
			return &entity.Order{Status: entity.OrderStatusShipped}, nil
		},
	}
	h := NewOrderHandler(orders, testLogger())

	req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/orders/x",
		strings.NewReader(`{"status": "shipped", "requiresReview": false}`)), "id", uuid.NewString())
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotUpd.Status)
	assert.Equal(t, entity.OrderStatusShipped, *gotUpd.Status)
	require.NotNil(t, gotUpd.RequiresReview)
	assert.False(t, *gotUpd.RequiresReview)
	assert.Nil(t, gotUpd.Name)
	assert.Nil(t, gotUpd.Products)
}

type mockUsers struct {
	findByIDFn func(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

func (m *mockUsers) CreateUser(_ context.Context, u *entity.User) (*entity.User, error) {
	return u, nil
}
func (m *mockUsers) FindByEmail(_ context.Context, _ string) (*entity.User, error) {
	return nil, common.ErrNotFound
}
func (m *mockUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockUsers) UpdateEmailIntegration(_ context.Context, _ uuid.UUID, _ *entity.EmailIntegration) (*entity.User, error) {
	return nil, common.ErrNotFound
}

func TestRequireAuthMissingToken(t *testing.T) {
	svc := auth.NewService(&mockUsers{}, []byte("secret"), time.Hour, testLogger())
	protected := RequireAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthValidCookie(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "a@b.com"}
	users := &mockUsers{
		findByIDFn: func(_ context.Context, id uuid.UUID) (*entity.User, error) {
			assert.Equal(t, user.ID, id)
			return user, nil
		},
	}
	svc := auth.NewService(users, []byte("secret"), time.Hour, testLogger())

	// Issue a real token by registering through the service.
	_, token, err := auth.NewService(&registerUsers{user: user}, []byte("secret"), time.Hour, testLogger()).
		Register(context.Background(), "a@b.com", "longenough", "Ann", "Acme", "")
	require.NoError(t, err)

	var seen *entity.User
	protected := RequireAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, user.ID, seen.ID)
}

// registerUsers pins the created user's ID so a token issued in the test
// resolves to a known account.
type registerUsers struct {
	user *entity.User
}

func (m *registerUsers) CreateUser(_ context.Context, u *entity.User) (*entity.User, error) {
	u.ID = m.user.ID
	return u, nil
}
func (m *registerUsers) FindByEmail(_ context.Context, _ string) (*entity.User, error) {
	return nil, common.ErrNotFound
}
func (m *registerUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return m.user, nil
}
func (m *registerUsers) UpdateEmailIntegration(_ context.Context, _ uuid.UUID, integ *entity.EmailIntegration) (*entity.User, error) {
	m.user.EmailIntegration = integ
	return m.user, nil
}
