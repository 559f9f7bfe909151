package ordersync

import (
	"context"
	"testing"
	"time"

	"github.com/AyAchi-19/f1-store/internal/order"
	"github.com/AyAchi-19/f1-store/internal/realtime"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(id uuid.UUID, status order.OrderStatus) order.Order {
	return order.Order{
		ID:          id,
		UserID:      uuid.New(),
		TotalAmount: 99.9,
		Status:      status,
		CreatedAt:   time.Now(),
	}
}

func TestReducerInsertPrepends(t *testing.T) {
	r := NewReducer(nil)

	a := row(uuid.New(), order.StatusPending)
	b := row(uuid.New(), order.StatusPending)

	r.Apply(realtime.Event{Type: realtime.EventInsert, New: &a})
	r.Apply(realtime.Event{Type: realtime.EventInsert, New: &b})

	got := r.Orders()
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)
}

func TestReducerInsertIsIdempotent(t *testing.T) {
	a := row(uuid.New(), order.StatusPending)
	r := NewReducer([]order.Order{a})

	replay := a
	replay.Status = order.StatusProcessing
	r.Apply(realtime.Event{Type: realtime.EventInsert, New: &replay})

	got := r.Orders()
	require.Len(t, got, 1)
	assert.Equal(t, order.StatusProcessing, got[0].Status)
}

func TestReducerUpdatePreservesPosition(t *testing.T) {
	o1 := row(uuid.New(), order.StatusPending)
	o2 := row(uuid.New(), order.StatusShipped)
	r := NewReducer([]order.Order{o1, o2})

	updated := o1
	updated.Status = order.StatusDelivered
	r.Apply(realtime.Event{Type: realtime.EventUpdate, New: &updated})

	got := r.Orders()
	require.Len(t, got, 2)
	assert.Equal(t, o1.ID, got[0].ID)
	assert.Equal(t, order.StatusDelivered, got[0].Status)
	assert.Equal(t, order.StatusShipped, got[1].Status)
}

func TestReducerUpdateUnknownIDIsNoop(t *testing.T) {
	o1 := row(uuid.New(), order.StatusPending)
	r := NewReducer([]order.Order{o1})

	stranger := row(uuid.New(), order.StatusDelivered)
	r.Apply(realtime.Event{Type: realtime.EventUpdate, New: &stranger})

	got := r.Orders()
	require.Len(t, got, 1)
	assert.Equal(t, o1.ID, got[0].ID)
	assert.Equal(t, order.StatusPending, got[0].Status)
}

func TestReducerDelete(t *testing.T) {
	a := row(uuid.New(), order.StatusPending)
	b := row(uuid.New(), order.StatusPending)
	r := NewReducer(nil)

	r.Apply(realtime.Event{Type: realtime.EventInsert, New: &a})
	r.Apply(realtime.Event{Type: realtime.EventInsert, New: &b})
	r.Apply(realtime.Event{Type: realtime.EventDelete, Old: &a})

	got := r.Orders()
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)

	// deleting again is a no-op
	r.Apply(realtime.Event{Type: realtime.EventDelete, Old: &a})
	assert.Len(t, r.Orders(), 1)
}

func TestReducerRunConsumesUntilClose(t *testing.T) {
	r := NewReducer(nil)

	a := row(uuid.New(), order.StatusPending)
	events := make(chan realtime.Event, 1)
	events <- realtime.Event{Type: realtime.EventInsert, New: &a}
	close(events)

	r.Run(context.Background(), events)

	got := r.Orders()
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
}

func TestReducerOrdersReturnsCopy(t *testing.T) {
	a := row(uuid.New(), order.StatusPending)
	r := NewReducer([]order.Order{a})

	got := r.Orders()
	got[0].Status = order.StatusCancelled

	assert.Equal(t, order.StatusPending, r.Orders()[0].Status)
}
