package ordersync

import (
	"context"
	"sync"

	"github.com/AyAchi-19/f1-store/internal/logger"
	"github.com/AyAchi-19/f1-store/internal/order"
	"github.com/AyAchi-19/f1-store/internal/realtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Fetcher loads the denormalized admin view of a single order. The order
// repository satisfies it.
type Fetcher interface {
	GetOrderView(ctx context.Context, id uuid.UUID) (*order.OrderView, error)
}

// Syncer maintains the admin dashboard's newest-first list of order views.
// A change event carries only the bare orders row, while the dashboard
// shows the customer profile and line items too, so insert and update
// trigger a re-fetch of the full view before the list is touched.
//
// Re-fetches run concurrently. Each order id carries a monotonic sequence
// number bumped when its event arrives; a fetch response whose stamp is no
// longer current is discarded, so two racing updates to the same order can
// never land in the wrong order.
type Syncer struct {
	fetcher Fetcher

	mu      sync.RWMutex
	views   []order.OrderView
	lastSeq map[uuid.UUID]uint64
	pending sync.WaitGroup
}

// NewSyncer seeds the list from an initial fetch, newest first.
func NewSyncer(fetcher Fetcher, initial []order.OrderView) *Syncer {
	views := make([]order.OrderView, len(initial))
	copy(views, initial)
	return &Syncer{
		fetcher: fetcher,
		views:   views,
		lastSeq: make(map[uuid.UUID]uint64),
	}
}

// Apply folds a single event into the view list. Insert and update spawn
// the re-fetch and return immediately; delete is synchronous.
func (s *Syncer) Apply(ctx context.Context, ev realtime.Event) {
	id := ev.OrderID()
	if id == uuid.Nil {
		return
	}

	switch ev.Type {
	case realtime.EventInsert, realtime.EventUpdate:
		s.mu.Lock()
		s.lastSeq[id]++
		seq := s.lastSeq[id]
		s.mu.Unlock()

		s.pending.Add(1)
		go s.refetch(ctx, id, seq)

	case realtime.EventDelete:
		s.mu.Lock()
		delete(s.lastSeq, id)
		if i := s.indexOf(id); i >= 0 {
			s.views = append(s.views[:i], s.views[i+1:]...)
		}
		s.mu.Unlock()
	}
}

func (s *Syncer) refetch(ctx context.Context, id uuid.UUID, seq uint64) {
	defer s.pending.Done()

	view, err := s.fetcher.GetOrderView(ctx, id)
	if err != nil {
		logger.FromCtx(ctx).Warn("order view re-fetch failed, dropping event",
			zap.String("order_id", id.String()), zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastSeq[id] != seq {
		// a newer event for this order superseded us while the fetch
		// was in flight
		return
	}

	if i := s.indexOf(id); i >= 0 {
		s.views[i] = *view
		return
	}
	s.views = append([]order.OrderView{*view}, s.views...)
}

// Views returns a copy of the current list, newest first.
func (s *Syncer) Views() []order.OrderView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]order.OrderView, len(s.views))
	copy(out, s.views)
	return out
}

// Run consumes events until the channel closes or the context is
// cancelled, then waits for in-flight re-fetches to settle.
func (s *Syncer) Run(ctx context.Context, events <-chan realtime.Event) {
	defer s.pending.Wait()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.Apply(ctx, ev)
		}
	}
}

// indexOf requires s.mu held.
func (s *Syncer) indexOf(id uuid.UUID) int {
	for i := range s.views {
		if s.views[i].Order.ID == id {
			return i
		}
	}
	return -1
}
