package handlers

import (
	"net/http"
	"time"

	"github.com/AyAchi-19/f1-store/internal/logger"
	"github.com/AyAchi-19/f1-store/internal/middleware"
	"github.com/AyAchi-19/f1-store/internal/order"
	"github.com/AyAchi-19/f1-store/internal/ordersync"
	"github.com/AyAchi-19/f1-store/internal/realtime"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FeedHandler streams a live order list over a websocket. Customers see
// only their own orders; admins see everything. Each connection keeps its
// own reduced list, seeded from the database, and re-sends it whenever a
// change event folds in.
type FeedHandler struct {
	Hub    *realtime.Hub
	Orders order.Service
}

type feedMessage struct {
	Kind      string          `json:"kind"`
	Connected bool            `json:"connected"`
	Orders    []order.Order   `json:"orders,omitempty"`
	Event     *realtime.Event `json:"event,omitempty"`
}

// Feed upgrades the connection and relays the reduced order list until the
// client goes away. The first frame reports the feed's backing connection
// state so the client can show its live indicator right away; the second
// carries the initial list.
func (h *FeedHandler) Feed(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	scope := order.OrdersForUser(userID)
	if middleware.IsAdminFromContext(r.Context()) {
		scope = order.AllOrders()
	}

	// subscribe before the seed fetch so a change landing in between is
	// not lost; folding it in twice is harmless
	sub := h.Hub.Subscribe(scope)
	defer sub.Close()

	initial, err := h.Orders.GetOrders(r.Context(), scope)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "could not load orders")
		return
	}
	reducer := ordersync.NewReducer(initial)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.FromCtx(r.Context()).Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	log := logger.FromCtx(r.Context())

	// reader exists only to notice the peer closing
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(feedMessage{Kind: "status", Connected: h.Hub.Connected()}); err != nil {
		return
	}
	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(feedMessage{Kind: "orders", Orders: reducer.Orders()}); err != nil {
		return
	}

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return

		case ev, open := <-sub.C:
			if !open {
				return
			}
			reducer.Apply(ev)
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			msg := feedMessage{Kind: "orders", Orders: reducer.Orders(), Event: &ev}
			if err := conn.WriteJSON(msg); err != nil {
				log.Debug("feed write failed, dropping client", zap.Error(err))
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
