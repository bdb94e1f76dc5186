package realtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	votingports "github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/ports"
)

// Event is what SSE subscribers receive when a vote lands. It carries no
// voter identity; ballots stay anonymous on the wire.
type Event struct {
	ElectionID string    `json:"eleicao_id"`
	Kind       string    `json:"tipo_voto"`
	CastAt     time.Time `json:"timestamp"`
}

const defaultBuffer = 16

// Hub fans vote events out to per-election subscriber channels. Publish
// never blocks: a subscriber that cannot keep up loses events, which is
// acceptable because every consumer can re-read totals from the results API.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[chan Event]struct{}
	buffer int
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subs:   make(map[string]map[chan Event]struct{}),
		buffer: defaultBuffer,
		logger: logger,
	}
}

// Subscribe registers a listener for one election. The returned cancel
// function must be called when the consumer goes away.
func (h *Hub) Subscribe(electionID string) (<-chan Event, func()) {
	ch := make(chan Event, h.buffer)

	h.mu.Lock()
	if h.subs[electionID] == nil {
		h.subs[electionID] = make(map[chan Event]struct{})
	}
	h.subs[electionID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[electionID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, electionID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber of its election, dropping
// it for subscribers with a full buffer.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[event.ElectionID] {
		select {
		case ch <- event:
		default:
			h.logger.Warn("realtime event dropped for slow subscriber",
				"event", "realtime_event_dropped",
				"module", "internal/platform/realtime",
				"layer", "platform",
				"election_id", event.ElectionID,
			)
		}
	}
}

// SubscriberCount is used by tests and the health endpoint.
func (h *Hub) SubscriberCount(electionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[electionID])
}

// Notifier adapts the hub to the voting engine's notification port.
type Notifier struct {
	Hub *Hub
}

func (n Notifier) PublishVoteCast(_ context.Context, event votingports.VoteCastEvent) error {
	n.Hub.Publish(Event{
		ElectionID: event.ElectionID,
		Kind:       string(event.Kind),
		CastAt:     event.CastAt,
	})
	return nil
}
