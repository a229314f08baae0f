package ui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/JoseExp44/StockWebApp/domain/chart"
	"github.com/JoseExp44/StockWebApp/internal"
)

// sseClient represents one connected snapshot listener
type sseClient struct {
	sessionID string
	channel   chan chart.Snapshot
}

// SSEHub fans chart snapshots out to the browser tabs mirroring each
// session over Server-Sent Events
type SSEHub struct {
	clients    map[string]map[chan chart.Snapshot]bool
	clientsMu  sync.RWMutex
	register   chan sseClient
	unregister chan sseClient
	broadcast  chan sessionSnapshot
	log        *internal.Logger
}

type sessionSnapshot struct {
	sessionID string
	snapshot  chart.Snapshot
}

// NewSSEHub creates a hub and starts its dispatch loop
func NewSSEHub(log *internal.Logger) *SSEHub {
	if log == nil {
		log = internal.DefaultLogger
	}
	hub := &SSEHub{
		clients:    make(map[string]map[chan chart.Snapshot]bool),
		register:   make(chan sseClient, 10),
		unregister: make(chan sseClient, 10),
		broadcast:  make(chan sessionSnapshot, 100),
		log:        log,
	}
	go hub.run()
	return hub
}

// run processes hub operations
func (h *SSEHub) run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			if h.clients[client.sessionID] == nil {
				h.clients[client.sessionID] = make(map[chan chart.Snapshot]bool)
			}
			h.clients[client.sessionID][client.channel] = true
			h.clientsMu.Unlock()
			h.log.Debug("sse client registered for session %s", client.sessionID)

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if clients, exists := h.clients[client.sessionID]; exists {
				delete(clients, client.channel)
				close(client.channel)
				if len(clients) == 0 {
					delete(h.clients, client.sessionID)
				}
			}
			h.clientsMu.Unlock()

		case event := <-h.broadcast:
			h.clientsMu.RLock()
			for clientChan := range h.clients[event.sessionID] {
				select {
				case clientChan <- event.snapshot:
				default:
					// Client channel is full; it will catch up on the
					// next snapshot.
				}
			}
			h.clientsMu.RUnlock()
		}
	}
}

// Broadcast pushes a snapshot to every tab mirroring the session
func (h *SSEHub) Broadcast(sessionID string, snap chart.Snapshot) {
	select {
	case h.broadcast <- sessionSnapshot{sessionID: sessionID, snapshot: snap}:
	default:
		h.log.Warn("sse broadcast channel full, dropping snapshot for %s", sessionID)
	}
}

// HandleSSE streams snapshots for one session until the client leaves
func (h *SSEHub) HandleSSE(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	client := sseClient{
		sessionID: sessionID,
		channel:   make(chan chart.Snapshot, 8),
	}
	h.register <- client
	defer func() {
		h.unregister <- client
	}()

	for {
		select {
		case snap, open := <-client.channel:
			if !open {
				return
			}
			payload, err := json.Marshal(snap)
			if err != nil {
				h.log.Error("marshaling snapshot: %v", err)
				continue
			}
			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
