package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordermate/ordermate/internal/entity"
)

type integrationUsers struct {
	mockUsers
	updateFn func(ctx context.Context, id uuid.UUID, integ *entity.EmailIntegration) (*entity.User, error)
}

func (m *integrationUsers) UpdateEmailIntegration(ctx context.Context, id uuid.UUID, integ *entity.EmailIntegration) (*entity.User, error) {
	return m.updateFn(ctx, id, integ)
}

func TestIntegrationConnect(t *testing.T) {
	user := &entity.User{ID: uuid.New()}
	users := &integrationUsers{
		updateFn: func(_ context.Context, id uuid.UUID, integ *entity.EmailIntegration) (*entity.User, error) {
			assert.Equal(t, user.ID, id)
			require.NotNil(t, integ)
			assert.True(t, integ.IsConnected)
			assert.Equal(t, "gmail", integ.Provider)
			require.NotNil(t, integ.LastSyncedAt)
			user.EmailIntegration = integ
			return user, nil
		},
	}
	h := NewIntegrationHandler(users, testLogger())

	req := asUser(httptest.NewRequest(http.MethodPost,
		"/api/email/connect", strings.NewReader(`{"provider":"gmail"}`)), user)
	rec := httptest.NewRecorder()
	h.Connect(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success          bool                     `json:"success"`
		Message          string                   `json:"message"`
		EmailIntegration *entity.EmailIntegration `json:"emailIntegration"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "gmail integration connected successfully", body.Message)
	require.NotNil(t, body.EmailIntegration)
	assert.True(t, body.EmailIntegration.IsConnected)
}

func TestIntegrationConnectMissingProvider(t *testing.T) {
	h := NewIntegrationHandler(&integrationUsers{}, testLogger())

	req := asUser(httptest.NewRequest(http.MethodPost,
		"/api/email/connect", strings.NewReader(`{}`)), &entity.User{ID: uuid.New()})
	rec := httptest.NewRecorder()
	h.Connect(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIntegrationDisconnect(t *testing.T) {
	user := &entity.User{ID: uuid.New()}
	users := &integrationUsers{
		updateFn: func(_ context.Context, id uuid.UUID, integ *entity.EmailIntegration) (*entity.User, error) {
			assert.Equal(t, user.ID, id)
			assert.Nil(t, integ)
			user.EmailIntegration = nil
			return user, nil
		},
	}
	h := NewIntegrationHandler(users, testLogger())

	req := asUser(httptest.NewRequest(http.MethodDelete, "/api/email/connect", nil), user)
	rec := httptest.NewRecorder()
	h.Disconnect(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Email integration disconnected successfully", body.Message)
}
