package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub maintains active WebSocket connections and pushes vehicle positions
// and collection status events to them
type Hub struct {
	// Registered clients (userID -> Client)
	clients map[string]*Client

	// Outbound messages routed to a single user
	broadcast chan *Message

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for thread-safe client map access
	mu sync.RWMutex
}

// Message represents a message to broadcast to a specific user
type Message struct {
	UserID string
	Data   interface{}
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = client
			h.mu.Unlock()
			log.Printf("✅ [WEBSOCKET] Client connected: %s (%s), total: %d", client.UserID, client.UserRole, h.GetClientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.UserID]; ok {
				delete(h.clients, client.UserID)
				close(client.send)
				log.Printf("🔴 [WEBSOCKET] Client disconnected: %s, remaining: %d", client.UserID, len(h.clients))
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			if client, ok := h.clients[message.UserID]; ok {
				h.send(client, message.Data)
			}
			h.mu.Unlock()
		}
	}
}

// send marshals and queues data for one client. It may evict the client
// from the map, so callers must hold the write lock.
func (h *Hub) send(client *Client, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("❌ Failed to marshal message: %v", err)
		return
	}

	select {
	case client.send <- payload:
	default:
		// Client buffer full, disconnect
		close(client.send)
		delete(h.clients, client.UserID)
		log.Printf("⚠️ Client buffer full, disconnecting: %s", client.UserID)
	}
}

// BroadcastToUser sends a message to a specific user
func (h *Hub) BroadcastToUser(userID string, data interface{}) {
	h.broadcast <- &Message{UserID: userID, Data: data}
}

// BroadcastToAll sends a message to every connected client, used for
// vehicle position updates that any role may watch
func (h *Hub) BroadcastToAll(data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, client := range h.clients {
		h.send(client, data)
	}
}

// BroadcastToRole sends a message to all users with a specific role
func (h *Hub) BroadcastToRole(role string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, client := range h.clients {
		if client.UserRole == role {
			h.send(client, data)
		}
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// IsUserConnected reports whether a user has an open connection
func (h *Hub) IsUserConnected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}
