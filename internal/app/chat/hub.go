package chat

import (
	"github.com/rs/zerolog"

	"github.com/mo7amedAlaa/QuikChat/internal/pkg/logx"
)

// Hub coordinates the presence registry, the full-snapshot presence
// broadcast, and live message routing. Push delivery is strictly
// fire-and-forget: durability always comes from the store, never from a
// successful push.
type Hub struct {
	registry *Registry
	logger   zerolog.Logger
}

// NewHub creates a Hub with an empty registry.
func NewHub() *Hub {
	hubLogger := logx.Logger().With().Str("component", "Hub").Logger()

	return &Hub{
		registry: NewRegistry(),
		logger:   hubLogger,
	}
}

// Attach registers a freshly upgraded connection and broadcasts the updated
// online snapshot to every connection, including the one that just joined,
// so the newcomer receives its initial presence state over the same path as
// everyone else.
func (h *Hub) Attach(c *Client) {
	cameOnline := h.registry.Register(c.userID, c.connID, c)

	h.logger.Info().
		Str("user_id", c.userID).
		Str("conn_id", c.connID).
		Bool("came_online", cameOnline).
		Msg("Connection attached.")

	h.BroadcastPresence()
}

// Detach removes a connection and broadcasts the updated snapshot. Safe to
// call more than once per connection; only the first call triggers a
// broadcast.
func (h *Hub) Detach(c *Client) {
	removed, wentOffline := h.registry.Unregister(c.userID, c.connID)
	if !removed {
		return
	}

	h.logger.Info().
		Str("user_id", c.userID).
		Str("conn_id", c.connID).
		Bool("went_offline", wentOffline).
		Msg("Connection detached.")

	h.BroadcastPresence()
}

// BroadcastPresence pushes the full online-user snapshot to every live
// connection. Full snapshots converge regardless of how rapid register and
// unregister events interleave, which a delta scheme would not.
func (h *Hub) BroadcastPresence() {
	online, clients := h.registry.Snapshot()

	payload, err := NewEvent(EventOnlineUsers, online)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal presence snapshot.")
		return
	}

	for _, c := range clients {
		c.enqueue(payload)
	}
}

// Deliver pushes a persisted message to each of the receiver's live
// connections. An offline receiver is a normal outcome, not an error: the
// message is already durable and will be returned on their next fetch.
// Enqueue failures on slow connections are dropped for the same reason.
func (h *Hub) Deliver(msg MessageEvent) {
	conns := h.registry.ConnectionsFor(msg.ReceiverID)
	if len(conns) == 0 {
		h.logger.Debug().
			Str("receiver_id", msg.ReceiverID).
			Str("message_id", msg.ID).
			Msg("Receiver offline, message awaits fetch.")
		return
	}

	payload, err := NewEvent(EventNewMessage, msg)
	if err != nil {
		h.logger.Error().Err(err).Str("message_id", msg.ID).Msg("Failed to marshal message event.")
		return
	}

	for _, c := range conns {
		c.enqueue(payload)
	}
}

// IsOnline reports whether the user currently has a live connection.
func (h *Hub) IsOnline(userID string) bool {
	return h.registry.IsOnline(userID)
}

// Shutdown closes every live connection. Clients are expected to reconnect;
// presence state is rebuilt from scratch on restart.
func (h *Hub) Shutdown() {
	_, clients := h.registry.Snapshot()

	h.logger.Info().Int("connections", len(clients)).Msg("Shutting down hub, closing connections.")

	for _, c := range clients {
		c.Close()
	}
}
