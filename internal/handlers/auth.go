package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/AyAchi-19/f1-store/internal/logger"
	"github.com/AyAchi-19/f1-store/internal/user"

	"go.uber.org/zap"
)

type AuthHandler struct {
	Users user.Service
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if !decodeJSON(w, r, &creds) {
		return
	}
	if creds.Email == "" || creds.Password == "" {
		writeError(w, r, http.StatusBadRequest, "email and password are required")
		return
	}

	token, u, err := h.Users.Register(r.Context(), creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			writeError(w, r, http.StatusConflict, err.Error())
			return
		}
		logger.FromCtx(r.Context()).Error("register failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "could not register")
		return
	}

	setAccessCookie(w, token)
	writeJSON(w, r, http.StatusCreated, authResponse{
		Token:   token,
		UserID:  u.ID.String(),
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if !decodeJSON(w, r, &creds) {
		return
	}

	token, u, err := h.Users.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			writeError(w, r, http.StatusUnauthorized, err.Error())
			return
		}
		logger.FromCtx(r.Context()).Error("login failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "could not log in")
		return
	}

	setAccessCookie(w, token)
	writeJSON(w, r, http.StatusOK, authResponse{
		Token:   token,
		UserID:  u.ID.String(),
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "logged out"})
}

func setAccessCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
