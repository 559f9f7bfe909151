package handlers

import (
	"errors"
	"net/http"

	"github.com/AyAchi-19/f1-store/internal/logger"
	"github.com/AyAchi-19/f1-store/internal/middleware"
	"github.com/AyAchi-19/f1-store/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	Users user.Service
}

// requireUser resolves the authenticated user id or replies 401.
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return uuid.Nil, false
	}
	return id, true
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := requireUser(w, r); !ok {
		return false
	}
	if !middleware.IsAdminFromContext(r.Context()) {
		writeError(w, r, http.StatusForbidden, "admin access required")
		return false
	}
	return true
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	profile, err := h.Users.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) {
			writeError(w, r, http.StatusNotFound, err.Error())
			return
		}
		logger.FromCtx(r.Context()).Error("get profile failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "could not load profile")
		return
	}

	writeJSON(w, r, http.StatusOK, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		FullName  *string `json:"full_name"`
		AvatarURL *string `json:"avatar_url"`
		Phone     *string `json:"phone"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	profile, err := h.Users.UpdateProfile(r.Context(), user.UpdateProfileParams{
		UserID:    userID,
		FullName:  body.FullName,
		AvatarURL: body.AvatarURL,
		Phone:     body.Phone,
	})
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) {
			writeError(w, r, http.StatusNotFound, err.Error())
			return
		}
		logger.FromCtx(r.Context()).Error("update profile failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "could not update profile")
		return
	}

	writeJSON(w, r, http.StatusOK, profile)
}
