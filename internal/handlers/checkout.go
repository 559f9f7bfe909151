package handlers

import (
	"errors"
	"net/http"

	"github.com/AyAchi-19/f1-store/internal/cart"
	"github.com/AyAchi-19/f1-store/internal/logger"
	"github.com/AyAchi-19/f1-store/internal/order"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	Orders   order.Service
	Carts    *cart.Manager
	Sessions *sessions.CookieStore
}

type checkoutBody struct {
	Phone           string `json:"phone"`
	City            string `json:"city"`
	ShippingAddress string `json:"shipping_address"`
	MapsLink        string `json:"maps_link"`
}

// Checkout turns the session cart into an order. The cart is cleared only
// after the order was written.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body checkoutBody
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Phone == "" || body.City == "" || body.ShippingAddress == "" {
		writeError(w, r, http.StatusBadRequest, "phone, city and shipping_address are required")
		return
	}

	session, _ := h.Sessions.Get(r, cartSessionName)
	cartID, _ := session.Values["cart_id"].(string)
	if cartID == "" {
		writeError(w, r, http.StatusBadRequest, "cart is empty")
		return
	}

	store := h.Carts.Store(r.Context(), cartID)
	lines := make([]order.CheckoutLine, 0, len(store.Lines()))
	for _, l := range store.Lines() {
		productID, err := uuid.Parse(l.ProductID)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "cart contains an invalid product id")
			return
		}
		lines = append(lines, order.CheckoutLine{
			ProductID: productID,
			Quantity:  l.Quantity,
			Price:     l.Price,
		})
	}

	created, err := h.Orders.Checkout(r.Context(), order.CheckoutParams{
		UserID:          userID,
		Lines:           lines,
		Phone:           body.Phone,
		City:            body.City,
		ShippingAddress: body.ShippingAddress,
		MapsLink:        body.MapsLink,
	})
	if err != nil {
		if errors.Is(err, order.ErrEmptyOrder) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		logger.FromCtx(r.Context()).Error("checkout failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "could not place order")
		return
	}

	store.Clear(r.Context())

	writeJSON(w, r, http.StatusCreated, created)
}
