// Package hub implements the per-board pub/sub fan-out for live viewers.
// Delivery is best-effort and independent of persistence: a slow subscriber
// loses events instead of blocking Publish, and the canonical state is
// always recoverable with a snapshot refetch.
package hub

import (
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gridplace-dev/gridplace/internal/domain"
)

const sendBuffer = 256

var (
	eventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gridplace_broadcast_events_total",
		Help: "Placement events published to board rooms",
	})
	eventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gridplace_broadcast_dropped_total",
		Help: "Events dropped because a subscriber's buffer was full",
	})
	subscribersGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gridplace_live_subscribers",
		Help: "Currently connected live subscribers across all boards",
	})
)

// Subscription is one live viewer's handle on a board room. Events closes
// when the subscription is removed from the hub.
type Subscription struct {
	ID     string
	Events <-chan domain.PlacementEvent
}

type subscriber struct {
	send chan domain.PlacementEvent
}

type Hub struct {
	mu    sync.RWMutex
	rooms map[domain.BoardId]map[string]*subscriber
}

func New() *Hub {
	return &Hub{rooms: make(map[domain.BoardId]map[string]*subscriber)}
}

// Subscribe adds a connection to a board's room and returns its event
// stream.
func (h *Hub) Subscribe(boardId domain.BoardId) *Subscription {
	sub := &subscriber{send: make(chan domain.PlacementEvent, sendBuffer)}
	id := uuid.NewString()

	h.mu.Lock()
	room, ok := h.rooms[boardId]
	if !ok {
		room = make(map[string]*subscriber)
		h.rooms[boardId] = room
	}
	room[id] = sub
	h.mu.Unlock()

	subscribersGauge.Inc()
	return &Subscription{ID: id, Events: sub.send}
}

// Unsubscribe removes a connection and closes its event stream. Unknown ids
// are ignored, so racing a disconnect against a room teardown is harmless.
func (h *Hub) Unsubscribe(boardId domain.BoardId, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[boardId]
	if !ok {
		return
	}
	sub, ok := room[id]
	if !ok {
		return
	}
	delete(room, id)
	if len(room) == 0 {
		delete(h.rooms, boardId)
	}
	close(sub.send)
	subscribersGauge.Dec()
}

// Publish delivers an event to every current subscriber of the board.
// Never blocks: a full buffer drops the event for that subscriber only.
func (h *Hub) Publish(boardId domain.BoardId, event domain.PlacementEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[boardId]
	if !ok {
		return
	}
	eventsPublished.Inc()
	for _, sub := range room {
		select {
		case sub.send <- event:
		default:
			eventsDropped.Inc()
		}
	}
}

// Subscribers reports the current room size, for tests and introspection.
func (h *Hub) Subscribers(boardId domain.BoardId) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[boardId])
}
