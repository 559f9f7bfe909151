package realtime

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/AyAchi-19/f1-store/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ChannelName is the postgres NOTIFY channel the orders trigger publishes
// on. Payloads are JSON: {"type": "insert"|"update"|"delete", "new": row,
// "old": row}.
const ChannelName = "orders_changes"

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// wireEvent mirrors the trigger payload; type arrives uppercased from
// TG_OP.
type wireEvent struct {
	Type string          `json:"type"`
	New  json.RawMessage `json:"new,omitempty"`
	Old  json.RawMessage `json:"old,omitempty"`
}

// Listener bridges postgres LISTEN/NOTIFY into the hub. It reconnects by
// itself through pq's backoff; connection state is mirrored onto the hub's
// connected flag.
type Listener struct {
	pl  *pq.Listener
	hub *Hub
}

func NewListener(dsn string, hub *Hub) *Listener {
	pl := pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval,
		func(ev pq.ListenerEventType, err error) {
			switch ev {
			case pq.ListenerEventConnected, pq.ListenerEventReconnected:
				hub.setConnected(true)
				logger.L().Info("change feed connected")
			case pq.ListenerEventDisconnected, pq.ListenerEventConnectionAttemptFailed:
				hub.setConnected(false)
				logger.L().Warn("change feed disconnected", zap.Error(err))
			}
		})

	return &Listener{pl: pl, hub: hub}
}

// Run listens until the context is cancelled. Malformed payloads are logged
// and skipped; they never stop the feed.
func (l *Listener) Run(ctx context.Context) error {
	if err := l.pl.Listen(ChannelName); err != nil {
		return err
	}
	defer l.pl.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case n := <-l.pl.Notify:
			if n == nil {
				// nil notification signals a reconnect; missed
				// events are an accepted gap
				continue
			}
			l.dispatch(n.Extra)

		case <-time.After(pingInterval):
			if err := l.pl.Ping(); err != nil {
				logger.L().Warn("change feed ping failed", zap.Error(err))
			}
		}
	}
}

func (l *Listener) dispatch(payload string) {
	var wire wireEvent
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		logger.L().Warn("discarding malformed change payload", zap.Error(err))
		return
	}

	ev := Event{Type: EventType(strings.ToLower(wire.Type))}
	switch ev.Type {
	case EventInsert, EventUpdate, EventDelete:
	default:
		logger.L().Warn("discarding change payload with unknown type",
			zap.String("type", wire.Type))
		return
	}

	if len(wire.New) > 0 {
		if err := json.Unmarshal(wire.New, &ev.New); err != nil {
			logger.L().Warn("discarding change payload with bad new row", zap.Error(err))
			return
		}
	}
	if len(wire.Old) > 0 {
		if err := json.Unmarshal(wire.Old, &ev.Old); err != nil {
			logger.L().Warn("discarding change payload with bad old row", zap.Error(err))
			return
		}
	}

	if ev.Record() == nil {
		return
	}

	l.hub.Publish(ev)
}
