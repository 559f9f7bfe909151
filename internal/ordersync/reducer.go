package ordersync

import (
	"context"
	"sync"

	"github.com/AyAchi-19/f1-store/internal/order"
	"github.com/AyAchi-19/f1-store/internal/realtime"

	"github.com/google/uuid"
)

// Reducer maintains a newest-first list of orders and folds change events
// into it. It backs the storefront's "my orders" live view where the rows
// already carry everything the page shows.
type Reducer struct {
	mu     sync.RWMutex
	orders []order.Order
}

// NewReducer seeds the list from an initial fetch. The slice is copied, the
// caller keeps ownership of its own.
func NewReducer(initial []order.Order) *Reducer {
	orders := make([]order.Order, len(initial))
	copy(orders, initial)
	return &Reducer{orders: orders}
}

// Apply folds a single event into the list.
//
// An insert prepends the new order; if the id is already present the row is
// overwritten in place instead, so a replayed insert cannot duplicate. An
// update overwrites the matching row and is a no-op when the id is unknown.
// A delete removes the matching row and is a no-op when the id is unknown.
func (r *Reducer) Apply(ev realtime.Event) {
	rec := ev.Record()
	if rec == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch ev.Type {
	case realtime.EventInsert:
		if i := r.indexOf(rec.ID); i >= 0 {
			r.orders[i] = *rec
			return
		}
		r.orders = append([]order.Order{*rec}, r.orders...)

	case realtime.EventUpdate:
		if i := r.indexOf(rec.ID); i >= 0 {
			r.orders[i] = *rec
		}

	case realtime.EventDelete:
		if i := r.indexOf(rec.ID); i >= 0 {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
		}
	}
}

// Orders returns a copy of the current list, newest first.
func (r *Reducer) Orders() []order.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]order.Order, len(r.orders))
	copy(out, r.orders)
	return out
}

// Run consumes events until the channel closes or the context is cancelled.
func (r *Reducer) Run(ctx context.Context, events <-chan realtime.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			r.Apply(ev)
		}
	}
}

// indexOf requires r.mu held.
func (r *Reducer) indexOf(id uuid.UUID) int {
	for i := range r.orders {
		if r.orders[i].ID == id {
			return i
		}
	}
	return -1
}
