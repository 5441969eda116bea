package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ordermate/ordermate/internal/auth"
	"github.com/ordermate/ordermate/internal/common"
	"github.com/ordermate/ordermate/internal/entity"
)

type AuthHandler struct {
	svc    *auth.Service
	logger *slog.Logger
}

func NewAuthHandler(svc *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

type signupReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupReq
	if !decodeBody(w, r, &req) {
		return
	}

	u, token, err := h.svc.Register(r.Context(), req.Email, req.Password, req.Name, req.Company, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordTooShort), errors.Is(err, common.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrEmailTaken):
			respondError(w, http.StatusConflict, "email already registered")
		default:
			h.logger.Error("signup failed", "email", req.Email, "error", err)
			respondError(w, http.StatusInternalServerError, "signup failed")
		}
		return
	}

	h.setSessionCookie(w, token)
	respondJSON(w, http.StatusCreated, envelope{"success": true, "user": publicUser(u)})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if !decodeBody(w, r, &req) {
		return
	}

	u, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	h.setSessionCookie(w, token)
	respondJSON(w, http.StatusOK, envelope{"success": true, "user": publicUser(u)})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, envelope{"success": true})
}

// Me returns the authenticated account for the dashboard header.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	respondJSON(w, http.StatusOK, envelope{"success": true, "user": publicUser(u)})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.svc.SessionTTL()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func publicUser(u *entity.User) envelope {
	return envelope{
		"id":      u.ID,
		"email":   u.Email,
		"name":    u.Name,
		"company": u.Company,
		"phone":   u.Phone,
	}
}
