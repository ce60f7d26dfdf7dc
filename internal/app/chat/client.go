/*
Package chat contains the core logic for the chat relay: message history, live client
connections, and the hub that fans state changes out to every connection.

This file defines the Client struct, representing an active WebSocket connection. It manages the
connection's read and write loops (ReadPump and WritePump) and hands decoded events to the Hub.
*/
package chat

import (
	"errors"
	"net"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"relaychat/internal/pkg/logx"
	"relaychat/internal/pkg/randx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// SendQueueSize is the number of outbound frames buffered per client before it is
	// considered too slow and evicted.
	SendQueueSize = 256
)

// Client represents one live connection, the Connection Session of the relay.
//
// A client starts unbound, becomes bound when a join succeeds, and is closed when the hub
// drops it. userID is read and written only by the hub goroutine.
type Client struct {
	// ID identifies the connection in logs.
	ID string

	hub *Hub

	// underlying WebSocket connection object.
	conn *websocket.Conn

	// a buffered channel used to queue frames waiting to be written. Closed by the hub.
	send chan []byte

	// readLimit caps the size of an inbound frame. Zero leaves the connection unlimited.
	readLimit int64

	// userID is the ID of the bound user, empty while unbound.
	userID string

	// structured logger with connection context.
	logger zerolog.Logger
}

// NewClient constructs a Client for an upgraded WebSocket connection.
// Frames larger than maxFrameBytes close the connection; zero disables the limit.
func NewClient(hub *Hub, wsConn *websocket.Conn, maxFrameBytes int64) *Client {
	c := newClient(hub, wsConn, SendQueueSize)
	c.readLimit = maxFrameBytes
	return c
}

func newClient(hub *Hub, wsConn *websocket.Conn, queueSize int) *Client {
	id := randx.ConnectionID()

	return &Client{
		ID:     id,
		hub:    hub,
		conn:   wsConn,
		send:   make(chan []byte, queueSize),
		logger: logx.Logger().With().Str("component", "Client").Str("conn_id", id).Logger(),
	}
}

// ReadPump reads frames from the WebSocket connection and dispatches decoded events to the hub.
// It returns when the connection fails or closes, after telling the hub the client is gone.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	if c.readLimit > 0 {
		c.conn.SetReadLimit(c.readLimit)
	}

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (Client close/going away)")
			}
			break
		}

		event, err := DecodeInbound(frame)
		if err != nil {
			c.logger.Warn().Err(err).
				Bytes("frame", frame).
				Msg("Client sent malformed frame")
			continue
		}

		c.hub.Dispatch(c, event)
	}
}

// cleanupOnDisconnect handles the necessary cleanup steps when the client's ReadPump terminates.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Debug().Msg("Client connection cleanup starting.")

	c.hub.Disconnect(c)

	if err := c.conn.Close(); err != nil && !isClosedConnError(err) {
		c.logger.Error().Err(err).Msg("Client connection close error")
	}
}

// WritePump writes queued frames to the WebSocket connection and keeps it alive with pings.
// It returns once the hub closes the send queue or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil && !isClosedConnError(err) {
			c.logger.Error().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if !c.writeQueuedMessage(frame, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedMessage writes one frame pulled from the send queue.
// A closed queue produces a close frame. Returns false if the WritePump loop should terminate.
func (c *Client) writeQueuedMessage(frame []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		if !isClosedConnError(err) {
			c.logger.Error().Err(err).Msg("Failed to set write deadline")
		}
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil && !isClosedConnError(err) {
			c.logger.Warn().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		c.logger.Warn().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePingMessage sends a periodic WebSocket Ping message to maintain the connection heartbeat.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		if !isClosedConnError(err) {
			c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Warn().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}

// enqueue hands a frame to the write loop without blocking.
// It must only be called from the hub goroutine, which also owns closing the queue.
func (c *Client) enqueue(frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Client send queue full, dropping frame")
		return false
	}
}

// isClosedConnError reports errors caused by the connection already being closed,
// which happens routinely when both pumps race to shut it down.
func isClosedConnError(err error) bool {
	return errors.Is(err, net.ErrClosed) || errors.Is(err, websocket.ErrCloseSent)
}
