package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/AyAchi-19/f1-store/internal/cart"
	"github.com/AyAchi-19/f1-store/internal/logger"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const cartSessionName = "cart-session"

type CartHandler struct {
	Carts    *cart.Manager
	Sessions *sessions.CookieStore
}

type cartResponse struct {
	Lines      []cart.CartLine `json:"lines"`
	TotalItems int             `json:"total_items"`
	TotalPrice float64         `json:"total_price"`
}

func cartView(s *cart.Store) cartResponse {
	lines := s.Lines()
	if lines == nil {
		lines = []cart.CartLine{}
	}
	return cartResponse{
		Lines:      lines,
		TotalItems: s.TotalItems(),
		TotalPrice: s.TotalPrice(),
	}
}

// store resolves the caller's cart through the session cookie, minting a
// session id on first contact.
func (h *CartHandler) store(w http.ResponseWriter, r *http.Request) (*cart.Store, error) {
	session, _ := h.Sessions.Get(r, cartSessionName)

	id, ok := session.Values["cart_id"].(string)
	if !ok || id == "" {
		id = newCartID()
		session.Values["cart_id"] = id
		if err := session.Save(r, w); err != nil {
			return nil, err
		}
	}

	return h.Carts.Store(r.Context(), id), nil
}

func newCartID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the process is in real trouble
		panic(err)
	}
	return hex.EncodeToString(b)
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.store(w, r)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "could not open cart")
		return
	}
	writeJSON(w, r, http.StatusOK, cartView(s))
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var line cart.CartLine
	if !decodeJSON(w, r, &line) {
		return
	}
	if line.ProductID == "" {
		writeError(w, r, http.StatusBadRequest, "product id is required")
		return
	}

	s, err := h.store(w, r)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "could not open cart")
		return
	}

	if err := s.AddItem(r.Context(), line); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		logger.FromCtx(r.Context()).Error("cart add failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "could not update cart")
		return
	}

	writeJSON(w, r, http.StatusOK, cartView(s))
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID   string `json:"id"`
		Size string `json:"size"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	s, err := h.store(w, r)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "could not open cart")
		return
	}

	s.RemoveItem(r.Context(), body.ID, body.Size)
	writeJSON(w, r, http.StatusOK, cartView(s))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	s, err := h.store(w, r)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "could not open cart")
		return
	}

	s.Clear(r.Context())
	writeJSON(w, r, http.StatusOK, cartView(s))
}
