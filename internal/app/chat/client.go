package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/mo7amedAlaa/QuikChat/internal/pkg/logx"
)

const (
	// timeout for a single write to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time the server waits for a Pong before considering the
	// connection dead.
	pongWait = 60 * time.Second

	// frequency of server Ping messages.
	pingPeriod = (pongWait * 9) / 10

	// the channel is server-to-client only, so inbound frames are limited
	// to control-sized payloads.
	maxInboundMessageSize = 512

	// capacity of the per-connection outbound queue. Events for a
	// connection that cannot drain this fast are dropped, never buffered
	// unbounded.
	sendQueueSize = 256
)

// Client represents one live WebSocket connection owned by the registry for
// its lifetime. A user may hold several Clients at once.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// userID is the authenticated owner of this connection.
	userID string

	// connID uniquely identifies this connection within the registry.
	connID string

	// openedAt records when the connection was established.
	openedAt time.Time

	// send queues outbound event payloads for WritePump.
	send chan []byte

	// done signals WritePump to send a close frame and exit.
	done      chan struct{}
	closeOnce sync.Once

	logger zerolog.Logger
}

// NewClient constructs a Client for an upgraded connection.
func NewClient(hub *Hub, wsConn *websocket.Conn, userID string) *Client {
	connID := uuid.New().String()

	clientLogger := logx.Logger().With().
		Str("user_id", userID).
		Str("conn_id", connID).
		Logger()

	return &Client{
		hub:      hub,
		conn:     wsConn,
		userID:   userID,
		connID:   connID,
		openedAt: time.Now(),
		send:     make(chan []byte, sendQueueSize),
		done:     make(chan struct{}),
		logger:   clientLogger,
	}
}

// ReadPump blocks on the connection until it closes, keeping the heartbeat
// alive. No client events arrive over this channel, so inbound frames are
// drained and discarded. Detach runs on every exit path, clean close or not,
// so the registry can never accumulate stale entries.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxInboundMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Connection read ended unexpectedly")
			}
			break
		}
	}
}

// cleanupOnDisconnect unregisters the connection and tears it down.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	c.hub.Detach(c)
	c.Close()

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}

// WritePump drains the send queue onto the connection and maintains the
// Ping heartbeat. It exits on the first failed write or when Close is
// called, closing the underlying connection either way (which in turn
// unblocks ReadPump).
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case message := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline")
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Info().Err(err).Msg("Error writing message")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Info().Err(err).Msg("Error writing ping")
				return
			}

		case <-c.done:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Debug().Err(err).Msg("Failed to set write deadline on close")
			}
			if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
				c.logger.Debug().Err(err).Msg("Error writing close message")
			}
			return
		}
	}
}

// enqueue offers a payload to the outbound queue without blocking. A full
// queue means the peer is too slow; the event is dropped and the durable
// store remains the source of truth.
func (c *Client) enqueue(payload []byte) {
	select {
	case c.send <- payload:
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Client send queue full, dropping event")
	}
}

// Close signals WritePump to send a close frame and shut the connection
// down. Safe to call multiple times.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
