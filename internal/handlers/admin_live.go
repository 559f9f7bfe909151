package handlers

import (
	"net/http"

	"github.com/AyAchi-19/f1-store/internal/order"
	"github.com/AyAchi-19/f1-store/internal/ordersync"
	"github.com/AyAchi-19/f1-store/internal/realtime"
)

// AdminLiveHandler serves the dashboard's synced order views from memory.
// The syncer is fed by the change feed, so this endpoint answers without
// touching the database.
type AdminLiveHandler struct {
	Syncer *ordersync.Syncer
	Hub    *realtime.Hub
}

type adminLiveResponse struct {
	Connected bool              `json:"connected"`
	Orders    []order.OrderView `json:"orders"`
}

func (h *AdminLiveHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	views := h.Syncer.Views()
	if views == nil {
		views = []order.OrderView{}
	}
	writeJSON(w, r, http.StatusOK, adminLiveResponse{
		Connected: h.Hub.Connected(),
		Orders:    views,
	})
}
