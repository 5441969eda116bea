package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ordermate/ordermate/internal/common"
	"github.com/ordermate/ordermate/internal/entity"
	"github.com/ordermate/ordermate/internal/repository"
)

var (
	ErrEmailTaken       = repository.ErrEmailTaken
	ErrInvalidCreds     = errors.New("invalid credentials")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

// Service handles signup/login and session-token issuance.
type Service struct {
	users      repository.UserRepository
	jwtSecret  []byte
	sessionTTL time.Duration
	logger     *slog.Logger
}

func NewService(users repository.UserRepository, jwtSecret []byte, sessionTTL time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return &Service{users: users, jwtSecret: jwtSecret, sessionTTL: sessionTTL, logger: logger}
}

// Register creates an account with a bcrypt-hashed password and returns it
// together with a fresh session token.
func (s *Service) Register(ctx context.Context, email, password, name, company, phone string) (*entity.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || name == "" || company == "" {
		return nil, "", common.ErrInvalidInput
	}
	if len(password) < 8 {
		return nil, "", ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u, err := s.users.CreateUser(ctx, &entity.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Company:      company,
		Phone:        phone,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("auth.register.ok", "user_id", u.ID, "email", u.Email)
	return u, token, nil
}

// Login verifies credentials and returns the user with a session token.
// Lookup misses and bad passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", ErrInvalidCreds
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCreds
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("auth.login.ok", "user_id", u.ID)
	return u, token, nil
}

// VerifyToken parses a session token and resolves it to a live user.
func (s *Service) VerifyToken(ctx context.Context, token string) (*entity.User, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, common.ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	return u, nil
}

// SessionTTL reports the configured token lifetime, for cookie expiry.
func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}

func (s *Service) issueToken(userID uuid.UUID) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}
