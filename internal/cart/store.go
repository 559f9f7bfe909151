package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/AyAchi-19/f1-store/internal/logger"

	"go.uber.org/zap"
)

// Store holds one shopper's in-progress selection as an ordered line list.
// Every mutation rewrites the full snapshot under the store's key; the slot
// is read exactly once, when the store is opened. A mutex keeps the single
// writer discipline the browser cart got for free from the UI thread.
type Store struct {
	mu    sync.Mutex
	key   string
	lines []CartLine
	snap  Snapshot
}

// OpenStore rehydrates a cart from its snapshot slot. An absent or
// unparseable snapshot degrades silently to an empty cart.
func OpenStore(ctx context.Context, snap Snapshot, key string) *Store {
	s := &Store{key: key, snap: snap}

	data, err := snap.Load(ctx, key)
	if err != nil {
		if err != ErrSnapshotNotFound {
			logger.FromCtx(ctx).Warn("failed to load cart snapshot",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return s
	}

	if err := json.Unmarshal(data, &s.lines); err != nil {
		logger.FromCtx(ctx).Warn("discarding malformed cart snapshot",
			zap.String("key", key),
			zap.Error(err),
		)
		s.lines = nil
	}

	return s
}

// AddItem merges the line into an existing line with the same identity key
// (product id, size) by adding quantities, or appends it preserving
// insertion order. Stock availability is the caller's concern.
func (s *Store) AddItem(ctx context.Context, line CartLine) error {
	if line.Quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.lines {
		if s.lines[i].key() == line.key() {
			s.lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, line)
	}

	s.persist(ctx)
	return nil
}

// RemoveItem deletes the line matching (productID, size) entirely. Removing
// a missing key is a no-op, never an error.
func (s *Store) RemoveItem(ctx context.Context, productID, size string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := lineKey{productID: productID, size: size}
	for i := range s.lines {
		if s.lines[i].key() == key {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			break
		}
	}

	s.persist(ctx)
}

// Clear empties the cart, used after a successful checkout.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persist(ctx)
}

// Lines returns a copy of the line list in insertion order.
func (s *Store) Lines() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]CartLine, len(s.lines))
	copy(cp, s.lines)
	return cp
}

// TotalItems is the sum of quantities, recomputed on every read.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice is the sum of price*quantity over all lines, recomputed on
// every read.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, l := range s.lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// persist writes the full snapshot. Failures are logged and swallowed: the
// in-memory cart stays authoritative for the session.
func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.lines)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to marshal cart", zap.String("key", s.key), zap.Error(err))
		return
	}

	if err := s.snap.Save(ctx, s.key, data); err != nil {
		logger.FromCtx(ctx).Warn("failed to persist cart snapshot",
			zap.String("key", s.key),
			zap.Error(err),
		)
	}
}
