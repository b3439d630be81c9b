// Package realtime fans out domain events to dashboard clients over
// websockets. One room per restaurant; clients join and leave explicitly.
// Delivery is best-effort: no persistence, no replay, slow clients are
// dropped and re-sync via a full fetch on reconnect.
package realtime

import (
	"encoding/json"

	"qr_dine_backend/pkg/utils"
)

// Server-emitted event names.
const (
	EventNewOrder        = "new-order"
	EventOrderUpdated    = "order-updated"
	EventNewFeedback     = "new-feedback"
	EventFeedbackUpdated = "feedback-updated"
)

// Client-emitted message types.
const (
	msgJoinRestaurant  = "join-restaurant"
	msgLeaveRestaurant = "leave-restaurant"
)

// envelope is the wire format in both directions.
type envelope struct {
	Type         string          `json:"type"`
	RestaurantID string          `json:"restaurantId,omitempty"`
	Payload      json.RawMessage `json:"payload,omitempty"`
}

type joinRequest struct {
	client       *client
	restaurantID string
}

type broadcastRequest struct {
	restaurantID string
	message      []byte
}

// Hub owns all rooms and serializes membership changes and broadcasts on a
// single goroutine.
type Hub struct {
	clients    map[*client]bool
	rooms      map[string]map[*client]bool
	register   chan *client
	unregister chan *client
	join       chan joinRequest
	leave      chan joinRequest
	broadcast  chan broadcastRequest
}

// NewHub creates a hub; call Run in a goroutine before serving connections.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		rooms:      make(map[string]map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		join:       make(chan joinRequest),
		leave:      make(chan joinRequest),
		broadcast:  make(chan broadcastRequest, 64),
	}
}

// Run processes hub events until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			// Membership starts empty; the client must join a room.
			h.clients[c] = true
		case c := <-h.unregister:
			h.dropClient(c)
		case req := <-h.join:
			// A join queued by an already-dropped client must not resurrect
			// it: its send channel is closed.
			if !h.clients[req.client] {
				break
			}
			room := h.rooms[req.restaurantID]
			if room == nil {
				room = make(map[*client]bool)
				h.rooms[req.restaurantID] = room
			}
			room[req.client] = true
			req.client.rooms[req.restaurantID] = true
		case req := <-h.leave:
			h.leaveRoom(req.client, req.restaurantID)
		case req := <-h.broadcast:
			for c := range h.rooms[req.restaurantID] {
				select {
				case c.send <- req.message:
				default:
					// Client is not draining its buffer; drop it.
					h.dropClient(c)
				}
			}
		}
	}
}

// dropClient removes the client from every room and from the registry,
// closes its send channel, and tears the connection down. Idempotent, so a
// broadcast drop followed by the readPump's unregister is safe.
func (h *Hub) dropClient(c *client) {
	if !h.clients[c] {
		return
	}
	delete(h.clients, c)
	for restaurantID := range c.rooms {
		h.leaveRoom(c, restaurantID)
	}
	close(c.send)
	if c.conn != nil {
		c.conn.Close()
	}
}

func (h *Hub) leaveRoom(c *client, restaurantID string) {
	if room, ok := h.rooms[restaurantID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, restaurantID)
		}
	}
	delete(c.rooms, restaurantID)
}

// Broadcast sends an event to every client joined to the restaurant's room.
// Errors never propagate to the caller; a failed emit is logged and the HTTP
// request that triggered it still succeeds.
func (h *Hub) Broadcast(restaurantID, event string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		utils.LogError(err, "realtime: failed to encode event payload")
		return
	}
	message, err := json.Marshal(envelope{
		Type:         event,
		RestaurantID: restaurantID,
		Payload:      raw,
	})
	if err != nil {
		utils.LogError(err, "realtime: failed to encode event envelope")
		return
	}
	select {
	case h.broadcast <- broadcastRequest{restaurantID: restaurantID, message: message}:
	default:
		utils.LogWarn("realtime: broadcast queue full, event dropped", map[string]interface{}{
			"event": event, "restaurant_id": restaurantID,
		})
	}
}
