// Package ws pushes live collection snapshots to connected clients over
// WebSocket. Every message carries the full ordered set for one
// collection; clients replace their local state wholesale, never merge.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// Message is one full-snapshot push.
type Message struct {
	Type       string      `json:"type"`
	Collection string      `json:"collection"`
	Data       interface{} `json:"data"`
}

const msgSnapshot = "snapshot"

// SnapshotFunc returns the current snapshot of one collection, used to
// prime a client right after it connects.
type SnapshotFunc func() interface{}

// Hub maintains active clients and fans out snapshot messages.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan Message

	snapshots map[string]SnapshotFunc
	log       zerolog.Logger

	mu      sync.RWMutex
	clients map[*Client]bool
}

func NewHub(snapshots map[string]SnapshotFunc, log zerolog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Message, 64),
		snapshots:  snapshots,
		log:        log,
		clients:    make(map[*Client]bool),
	}
}

// BroadcastSnapshot queues a full-snapshot push for every connected client.
func (h *Hub) BroadcastSnapshot(collection string, data interface{}) {
	select {
	case h.broadcast <- Message{Type: msgSnapshot, Collection: collection, Data: data}:
	default:
		h.log.Warn().Str("collection", collection).Msg("broadcast queue full, dropping snapshot push")
	}
}

// Run processes registrations and broadcasts until ctx is done via the
// server's lifetime; call it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			// Prime the new client with the current state of every
			// collection so it never renders from nothing.
			for name, snap := range h.snapshots {
				client.enqueue(mustMarshal(Message{Type: msgSnapshot, Collection: name, Data: snap()}))
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			payload := mustMarshal(message)
			h.mu.RLock()
			for client := range h.clients {
				client.enqueue(payload)
			}
			h.mu.RUnlock()
		}
	}
}

func mustMarshal(m Message) []byte {
	b, err := json.Marshal(m)
	if err != nil {
		// Snapshots are plain data structs; a marshal failure is a bug.
		panic(err)
	}
	return b
}
