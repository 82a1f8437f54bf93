/*
Package chat contains the real-time presence and delivery core.

It tracks which users currently hold live WebSocket connections, broadcasts
online-set snapshots whenever that changes, and routes newly persisted
messages to the receiver's live connections. The channel is server-to-client
only; every write from a client goes over the REST API.
*/
package chat

import (
	"encoding/json"
	"time"
)

// Server-to-client event names.
const (
	// EventOnlineUsers carries the full online-user-id snapshot. Clients
	// replace their previous set; this is not a delta.
	EventOnlineUsers = "getOnlineUsers"

	// EventNewMessage carries a full message record freshly persisted for
	// the receiving user.
	EventNewMessage = "newMessage"
)

// Event is the wire envelope for everything pushed over the channel.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// NewEvent marshals an event envelope ready to enqueue.
func NewEvent(name string, data any) ([]byte, error) {
	return json.Marshal(Event{Event: name, Data: data})
}

// MessageEvent is the wire shape of a message, used both as the newMessage
// push payload and in REST responses so clients can de-duplicate by id when
// a push races a fetch.
type MessageEvent struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Text       string    `json:"text,omitempty"`
	Image      string    `json:"image,omitempty"`
	Seen       bool      `json:"seen"`
	CreatedAt  time.Time `json:"createdAt"`
}
