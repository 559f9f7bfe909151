package handlers

import (
	"errors"
	"net/http"

	"github.com/AyAchi-19/f1-store/internal/logger"
	"github.com/AyAchi-19/f1-store/internal/middleware"
	"github.com/AyAchi-19/f1-store/internal/order"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Orders order.Service
}

// List serves the caller's orders, newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	orders, err := h.Orders.GetOrders(r.Context(), order.OrdersForUser(userID))
	if err != nil {
		logger.FromCtx(r.Context()).Error("list orders failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "could not load orders")
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}
	writeJSON(w, r, http.StatusOK, orders)
}

// AdminList serves every order, newest first.
func (h *OrderHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	orders, err := h.Orders.GetOrders(r.Context(), order.AllOrders())
	if err != nil {
		logger.FromCtx(r.Context()).Error("list all orders failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "could not load orders")
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}
	writeJSON(w, r, http.StatusOK, orders)
}

// Detail serves one order with its customer profile and items. Customers
// can only read their own orders.
func (h *OrderHandler) Detail(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	view, err := h.Orders.GetOrderView(r.Context(), userID,
		middleware.IsAdminFromContext(r.Context()), orderID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			writeError(w, r, http.StatusNotFound, err.Error())
		case errors.Is(err, order.ErrUnauthorized):
			writeError(w, r, http.StatusForbidden, err.Error())
		default:
			logger.FromCtx(r.Context()).Error("get order failed", zap.Error(err))
			writeError(w, r, http.StatusInternalServerError, "could not load order")
		}
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	var body struct {
		Status order.OrderStatus `json:"status"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	if err := h.Orders.UpdateStatus(r.Context(), orderID, body.Status); err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			writeError(w, r, http.StatusNotFound, err.Error())
		case errors.Is(err, order.ErrOrderFinal):
			writeError(w, r, http.StatusConflict, err.Error())
		case errors.Is(err, order.ErrInvalidStatus):
			writeError(w, r, http.StatusBadRequest, err.Error())
		default:
			logger.FromCtx(r.Context()).Error("update order status failed", zap.Error(err))
			writeError(w, r, http.StatusInternalServerError, "could not update order")
		}
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": string(body.Status)})
}

func (h *OrderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	stats, err := h.Orders.Stats(r.Context())
	if err != nil {
		logger.FromCtx(r.Context()).Error("load stats failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "could not load stats")
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}
