package realtime

import (
	"sync"
	"sync/atomic"

	"github.com/AyAchi-19/f1-store/internal/logger"
	"github.com/AyAchi-19/f1-store/internal/order"

	"go.uber.org/zap"
)

const defaultBuffer = 64

// Subscription is one scope-filtered view onto the change feed. Events are
// delivered on C in arrival order, one at a time. Close must be called when
// the consuming view is torn down or the subscription leaks for the life of
// the process.
type Subscription struct {
	C <-chan Event

	hub   *Hub
	ch    chan Event
	scope order.Scope
	once  sync.Once
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
		close(s.ch)
	})
}

// Hub fans change events out to scope-filtered subscriptions. A slow
// subscriber does not block the feed: events that do not fit its buffer are
// dropped and counted.
type Hub struct {
	mu        sync.Mutex
	subs      map[*Subscription]struct{}
	connected atomic.Bool
	dropped   atomic.Int64
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

func (h *Hub) Subscribe(scope order.Scope) *Subscription {
	sub := &Subscription{
		hub:   h,
		ch:    make(chan Event, defaultBuffer),
		scope: scope,
	}
	sub.C = sub.ch

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
}

// Publish delivers the event to every subscription whose scope matches.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		if !ev.Matches(sub.scope) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			h.dropped.Add(1)
			logger.L().Warn("dropping change event for slow subscriber",
				zap.String("type", string(ev.Type)),
				zap.String("order_id", ev.OrderID().String()),
			)
		}
	}
}

// Connected reflects the state of the underlying listener connection.
func (h *Hub) Connected() bool {
	return h.connected.Load()
}

func (h *Hub) setConnected(up bool) {
	h.connected.Store(up)
}

// Dropped returns how many events were discarded for slow subscribers.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}
