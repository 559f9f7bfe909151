package ordersync

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/AyAchi-19/f1-store/internal/order"
	"github.com/AyAchi-19/f1-store/internal/realtime"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher serves canned views keyed by order id.
type stubFetcher struct {
	mu    sync.Mutex
	views map[uuid.UUID]order.OrderView
	err   error
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{views: make(map[uuid.UUID]order.OrderView)}
}

func (f *stubFetcher) set(v order.OrderView) {
	f.mu.Lock()
	f.views[v.ID] = v
	f.mu.Unlock()
}

func (f *stubFetcher) GetOrderView(ctx context.Context, id uuid.UUID) (*order.OrderView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.views[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return &v, nil
}

func view(id uuid.UUID, status order.OrderStatus) order.OrderView {
	return order.OrderView{
		Order: order.Order{ID: id, UserID: uuid.New(), Status: status},
		Items: []order.OrderItem{},
	}
}

func TestSyncerInsertPrependsFetchedView(t *testing.T) {
	f := newStubFetcher()
	existing := view(uuid.New(), order.StatusShipped)
	s := NewSyncer(f, []order.OrderView{existing})

	fresh := view(uuid.New(), order.StatusPending)
	f.set(fresh)

	s.Apply(context.Background(), realtime.Event{Type: realtime.EventInsert, New: &fresh.Order})
	s.pending.Wait()

	got := s.Views()
	require.Len(t, got, 2)
	assert.Equal(t, fresh.ID, got[0].ID)
	assert.Equal(t, existing.ID, got[1].ID)
}

func TestSyncerUpdateOverwritesInPlace(t *testing.T) {
	f := newStubFetcher()
	o1 := view(uuid.New(), order.StatusPending)
	o2 := view(uuid.New(), order.StatusShipped)
	s := NewSyncer(f, []order.OrderView{o1, o2})

	changed := o1
	changed.Status = order.StatusDelivered
	f.set(changed)

	s.Apply(context.Background(), realtime.Event{Type: realtime.EventUpdate, New: &changed.Order})
	s.pending.Wait()

	got := s.Views()
	require.Len(t, got, 2)
	assert.Equal(t, o1.ID, got[0].ID)
	assert.Equal(t, order.StatusDelivered, got[0].Status)
	assert.Equal(t, o2.ID, got[1].ID)
}

func TestSyncerDeleteIsSynchronous(t *testing.T) {
	f := newStubFetcher()
	o1 := view(uuid.New(), order.StatusPending)
	s := NewSyncer(f, []order.OrderView{o1})

	s.Apply(context.Background(), realtime.Event{Type: realtime.EventDelete, Old: &o1.Order})

	assert.Empty(t, s.Views())
}

func TestSyncerFetchFailureDropsEvent(t *testing.T) {
	f := newStubFetcher()
	f.err = errors.New("db down")
	o1 := view(uuid.New(), order.StatusPending)
	s := NewSyncer(f, []order.OrderView{o1})

	changed := o1.Order
	changed.Status = order.StatusShipped
	s.Apply(context.Background(), realtime.Event{Type: realtime.EventUpdate, New: &changed})
	s.pending.Wait()

	got := s.Views()
	require.Len(t, got, 1)
	assert.Equal(t, order.StatusPending, got[0].Status)
}

func TestSyncerDiscardsStaleFetchResponse(t *testing.T) {
	f := newStubFetcher()
	o1 := view(uuid.New(), order.StatusPending)
	s := NewSyncer(f, []order.OrderView{o1})

	// two events for the same order arrived; the second bumped the
	// stamp to 2 before either fetch completed
	s.mu.Lock()
	s.lastSeq[o1.ID] = 2
	s.mu.Unlock()

	// the fetch stamped 1 completes last, carrying a state that is
	// already out of date, and must be thrown away
	fresh := o1
	fresh.Status = order.StatusShipped
	f.set(fresh)
	s.pending.Add(1)
	s.refetch(context.Background(), o1.ID, 2)

	stale := o1
	stale.Status = order.StatusProcessing
	f.set(stale)
	s.pending.Add(1)
	s.refetch(context.Background(), o1.ID, 1)

	got := s.Views()
	require.Len(t, got, 1)
	assert.Equal(t, order.StatusShipped, got[0].Status)
}

func TestSyncerRunConsumesUntilClose(t *testing.T) {
	f := newStubFetcher()
	s := NewSyncer(f, nil)

	fresh := view(uuid.New(), order.StatusPending)
	f.set(fresh)

	events := make(chan realtime.Event, 1)
	events <- realtime.Event{Type: realtime.EventInsert, New: &fresh.Order}
	close(events)

	s.Run(context.Background(), events)

	got := s.Views()
	require.Len(t, got, 1)
	assert.Equal(t, fresh.ID, got[0].ID)
}
