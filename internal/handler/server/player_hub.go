package server

import (
	"TUI_motivation_player/internal/core/domain"
	"TUI_motivation_player/internal/core/ports"
	"sync"
)

// PlayerHub fans player state changes out to subscribers.
type PlayerHub struct {
	mu     sync.Mutex
	subs   map[int]chan domain.PlayerState
	nextID int
	log    ports.LoggerPort
}

func NewPlayerHub(logger ports.LoggerPort) *PlayerHub {
	return &PlayerHub{
		subs: make(map[int]chan domain.PlayerState),
		log:  logger,
	}
}

// Subscribe returns a channel of player states and a func that closes it.
func (h *PlayerHub) Subscribe(buffer int) (<-chan domain.PlayerState, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan domain.PlayerState, buffer)
	h.subs[id] = ch

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
	}
}

// Publish never blocks; a subscriber with a full buffer misses the event.
func (h *PlayerHub) Publish(state domain.PlayerState) (delivered int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- state:
			delivered++
		default:
			h.log.Warning("Player event dropped, subscriber is not keeping up: " + state.String())
		}
	}
	return delivered
}
