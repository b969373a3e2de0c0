package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
)

const (
	EventFetchStarted       = "fetch_started"
	EventProductsLoaded     = "products_loaded"
	EventFetchFailed        = "fetch_failed"
	EventEnrichmentProgress = "enrichment_progress"
	EventEnrichmentDone     = "enrichment_done"
	EventEnrichmentFailed   = "enrichment_failed"
)

// Event represents a WebSocket event sent to viewer pages.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type envelope struct {
	session string
	data    []byte
}

// Hub keeps the open viewer connections and fans events out to the
// connections belonging to one session.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	log        *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan envelope, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run starts the hub's event loop. Should be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if client.session != msg.session {
					continue
				}
				select {
				case client.send <- msg.data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues an event for every connection of the session. It never
// blocks the caller; events are dropped when the queue is full.
func (h *Hub) Publish(session string, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error("marshal event", slog.String("type", event.Type), slog.String("error", err.Error()))
		return
	}
	select {
	case h.broadcast <- envelope{session: session, data: data}:
	default:
		h.log.Warn("event queue full", slog.String("type", event.Type))
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
