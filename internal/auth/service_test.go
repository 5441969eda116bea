package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ordermate/ordermate/internal/common"
	"github.com/ordermate/ordermate/internal/entity"
	"github.com/ordermate/ordermate/internal/repository"
)

type mockUsers struct {
	createUserFn        func(ctx context.Context, u *entity.User) (*entity.User, error)
	findByEmailFn       func(ctx context.Context, email string) (*entity.User, error)
	findByIDFn          func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	updateIntegrationFn func(ctx context.Context, id uuid.UUID, integ *entity.EmailIntegration) (*entity.User, error)
}

func (m *mockUsers) CreateUser(ctx context.Context, u *entity.User) (*entity.User, error) {
	return m.createUserFn(ctx, u)
}
func (m *mockUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return m.findByEmailFn(ctx, email)
}
func (m *mockUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockUsers) UpdateEmailIntegration(ctx context.Context, id uuid.UUID, integ *entity.EmailIntegration) (*entity.User, error) {
	return m.updateIntegrationFn(ctx, id, integ)
}

var testSecret = []byte("test-secret-0123456789")

func TestRegisterHashesPassword(t *testing.T) {
	var created *entity.User
	users := &mockUsers{
		createUserFn: func(_ context.Context, u *entity.User) (*entity.User, error) {
			u.ID = uuid.New()
			created = u
			return u, nil
		},
	}
	svc := NewService(users, testSecret, time.Hour, nil)

	u, token, err := svc.Register(context.Background(), "Owner@Example.com", "s3cretpass", "Owner", "Acme", "")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "owner@example.com", u.Email)

	require.NotNil(t, created)
	assert.NotEqual(t, "s3cretpass", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cretpass")))
}

func TestRegisterShortPassword(t *testing.T) {
	svc := NewService(&mockUsers{}, testSecret, time.Hour, nil)

	_, _, err := svc.Register(context.Background(), "a@b.com", "short", "A", "B", "")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterMissingFields(t *testing.T) {
	svc := NewService(&mockUsers{}, testSecret, time.Hour, nil)

	_, _, err := svc.Register(context.Background(), "a@b.com", "longenough", "", "Acme", "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := &mockUsers{
		createUserFn: func(_ context.Context, _ *entity.User) (*entity.User, error) {
			return nil, repository.ErrEmailTaken
		},
	}
	svc := NewService(users, testSecret, time.Hour, nil)

	_, _, err := svc.Register(context.Background(), "a@b.com", "longenough", "A", "Acme", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRoundTrip(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.MinCost)
	require.NoError(t, err)

	existing := &entity.User{ID: uuid.New(), Email: "owner@example.com", PasswordHash: string(hash)}
	users := &mockUsers{
		findByEmailFn: func(_ context.Context, email string) (*entity.User, error) {
			assert.Equal(t, "owner@example.com", email)
			return existing, nil
		},
		findByIDFn: func(_ context.Context, id uuid.UUID) (*entity.User, error) {
			assert.Equal(t, existing.ID, id)
			return existing, nil
		},
	}
	svc := NewService(users, testSecret, time.Hour, nil)

	u, token, err := svc.Login(context.Background(), " Owner@Example.com ", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, u.ID)

	verified, err := svc.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, verified.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rightpass"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &mockUsers{
		findByEmailFn: func(_ context.Context, _ string) (*entity.User, error) {
			return &entity.User{ID: uuid.New(), PasswordHash: string(hash)}, nil
		},
	}
	svc := NewService(users, testSecret, time.Hour, nil)

	_, _, err = svc.Login(context.Background(), "a@b.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestLoginUnknownEmail(t *testing.T) {
	users := &mockUsers{
		findByEmailFn: func(_ context.Context, _ string) (*entity.User, error) {
			return nil, common.ErrNotFound
		},
	}
	svc := NewService(users, testSecret, time.Hour, nil)

	_, _, err := svc.Login(context.Background(), "nobody@b.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestVerifyTokenGarbage(t *testing.T) {
	svc := NewService(&mockUsers{}, testSecret, time.Hour, nil)

	_, err := svc.VerifyToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	users := &mockUsers{
		createUserFn: func(_ context.Context, u *entity.User) (*entity.User, error) {
			u.ID = uuid.New()
			return u, nil
		},
	}
	issuer := NewService(users, []byte("other-secret"), time.Hour, nil)
	_, token, err := issuer.Register(context.Background(), "a@b.com", "longenough", "A", "Acme", "")
	require.NoError(t, err)

	svc := NewService(&mockUsers{}, testSecret, time.Hour, nil)
	_, err = svc.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}
