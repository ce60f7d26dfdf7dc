/*
Package chat contains the core logic for the chat relay: message history, live client
connections, and the hub that fans state changes out to every connection.

This file defines the Hub, the broadcast coordinator. A single Run goroutine owns the set of
live clients and processes connects, disconnects, and client events one at a time, so every
registry or history mutation and the broadcast that follows it happen as one step.
*/
package chat

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"relaychat/internal/app/user"
	"relaychat/internal/pkg/errs"
	"relaychat/internal/pkg/logx"
)

// clientEvent pairs a decoded inbound event with the client that sent it.
type clientEvent struct {
	client *Client
	event  InboundEvent
}

// Hub tracks live clients and fans out roster and message updates to all of them.
type Hub struct {
	users   *user.Registry
	history *History

	// clients is the set of open connections. Only the Run goroutine touches it.
	clients map[*Client]struct{}

	// connections mirrors len(clients) for readers outside the Run goroutine.
	connections atomic.Int64

	// a channel for clients that just connected.
	register chan *Client

	// a channel for clients whose connection closed.
	unregister chan *Client

	// a channel for events read from clients.
	events chan clientEvent

	// used to signal the Run loop to stop.
	stopChan chan struct{}
	stopOnce sync.Once

	// closed when the Run loop has returned.
	done chan struct{}

	// structured logger with hub context.
	logger zerolog.Logger
}

// NewHub creates a Hub over the shared registry and history. Call Run to start it.
func NewHub(users *user.Registry, history *History) *Hub {
	return &Hub{
		users:      users,
		history:    history,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan clientEvent),
		stopChan:   make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logx.Component("Hub"),
	}
}

// Run starts the main event loop of the Hub. It returns after Stop is called.
func (h *Hub) Run() {
	defer func() {
		for client := range h.clients {
			close(client.send)
			delete(h.clients, client)
		}
		h.connections.Store(0)

		close(h.done)
		h.logger.Info().Msg("Hub Run loop finished.")
	}()

	h.logger.Info().Msg("Hub Run loop started.")

	for {
		select {
		case client := <-h.register:
			h.handleConnect(client)

		case client := <-h.unregister:
			h.detach(client, "connection closed")

		case ev := <-h.events:
			h.handleEvent(ev.client, ev.event)

		case <-h.stopChan:
			h.logger.Info().Int("clients", len(h.clients)).Msg("Hub stop requested.")
			return
		}
	}
}

// Stop signals the Run loop to close every client queue and return.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopChan)
	})
}

// Done returns a channel that is closed once the Run loop has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Connections returns the number of open connections.
func (h *Hub) Connections() int {
	return int(h.connections.Load())
}

// Connect hands a new client to the hub, which replies with the roster and the history.
// It reports false if the hub has already stopped; the client's queue is then closed.
func (h *Hub) Connect(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		close(c.send)
		return false
	}
}

// Disconnect tells the hub a client's connection is gone. Calling it more than once is harmless.
func (h *Hub) Disconnect(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Dispatch queues an inbound event from c for processing on the hub goroutine.
func (h *Hub) Dispatch(c *Client, event InboundEvent) {
	select {
	case h.events <- clientEvent{client: c, event: event}:
	case <-h.done:
	}
}

// handleConnect adds the client and sends it the current roster followed by the history.
func (h *Hub) handleConnect(c *Client) {
	h.clients[c] = struct{}{}
	h.connections.Store(int64(len(h.clients)))

	h.logger.Info().
		Str("conn_id", c.ID).
		Int("total_clients", len(h.clients)).
		Msg("Client connected.")

	h.sendInitial(c)
}

// sendInitial sends the roster snapshot, then the full message history, to one client.
func (h *Hub) sendInitial(c *Client) {
	if !h.sendTo(c, newRosterPayload(h.users.Snapshot())) {
		return
	}
	h.sendTo(c, newHistoryPayload(h.history.All()))
}

// handleEvent applies one inbound event. Events from clients that are no longer open are dropped.
func (h *Hub) handleEvent(c *Client, event InboundEvent) {
	if _, open := h.clients[c]; !open {
		h.logger.Debug().Str("conn_id", c.ID).Msg("Dropping event from closed client.")
		return
	}

	switch e := event.(type) {
	case JoinEvent:
		h.handleJoin(c, e)
	case ExitEvent:
		h.handleExit(c, e)
	case SendEvent:
		h.handleSend(e)
	case UnknownEvent:
		c.logger.Warn().Str("msg_type", string(e.Tag)).Msg("Client sent unsupported message type")
	default:
		c.logger.Warn().Str("msg_type", string(event.Type())).Msg("Unhandled inbound event")
	}
}

// handleJoin registers a name and binds it to the client. Failures go to this client only.
func (h *Hub) handleJoin(c *Client, e JoinEvent) {
	if c.userID != "" {
		if _, stillRegistered := h.users.ByID(c.userID); stillRegistered {
			h.sendError(c, errs.NewError(errs.ErrAlreadyJoined))
			return
		}
		// the bound user was removed by someone else's exit
		c.userID = ""
	}

	u, err := h.users.Register(e.Name)
	if err != nil {
		c.logger.Info().Str("name", e.Name).Int("code", err.Code).Msg("Join rejected.")
		h.sendError(c, err)
		return
	}

	c.userID = u.ID
	c.logger.Info().Str("user_id", u.ID).Str("name", u.Name).Msg("Client joined.")

	h.broadcastRoster()
}

// handleExit removes the user holding the given name, whoever it is bound to.
func (h *Hub) handleExit(c *Client, e ExitEvent) {
	u, removed := h.users.RemoveByName(e.Name)
	if !removed {
		c.logger.Debug().Str("name", e.Name).Msg("Exit for unknown name ignored.")
		return
	}

	if c.userID == u.ID {
		c.userID = ""
	}

	h.broadcastRoster()
}

// handleSend appends the message and echoes it to every client, sender included.
// The author is not checked against the sender's bound user.
func (h *Hub) handleSend(e SendEvent) {
	m := h.history.Append(e.Text, e.Author)
	h.broadcastMessage(m)
}

// detach closes a client and releases its bound user, broadcasting the roster if one was removed.
// Unknown or already detached clients are ignored.
func (h *Hub) detach(c *Client, reason string) {
	if _, open := h.clients[c]; !open {
		return
	}

	delete(h.clients, c)
	h.connections.Store(int64(len(h.clients)))
	close(c.send)

	h.logger.Info().
		Str("conn_id", c.ID).
		Str("reason", reason).
		Int("total_clients", len(h.clients)).
		Msg("Client disconnected.")

	if c.userID == "" {
		return
	}

	_, removed := h.users.RemoveByID(c.userID)
	c.userID = ""
	if removed {
		h.broadcastRoster()
	}
}

func (h *Hub) broadcastRoster() {
	h.broadcast(newRosterPayload(h.users.Snapshot()))
}

func (h *Hub) broadcastMessage(m Message) {
	h.broadcast(newMessagePayload(m))
}

// broadcast delivers payload to every open client. Clients whose queue is full are skipped and
// evicted after the loop, so delivery to the others is never interrupted.
func (h *Hub) broadcast(payload any) {
	frame, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error().Err(err).Msg("Error marshaling payload for broadcast.")
		return
	}

	var slow []*Client
	for client := range h.clients {
		if !client.enqueue(frame) {
			slow = append(slow, client)
		}
	}

	for _, client := range slow {
		h.detach(client, "send queue full")
	}
}

// sendError delivers a single error payload to one client.
func (h *Hub) sendError(c *Client, err *errs.CustomError) {
	h.sendTo(c, newErrorPayload(err.Message))
}

// sendTo delivers payload to one client, evicting it if its queue is full.
func (h *Hub) sendTo(c *Client, payload any) bool {
	frame, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error().Err(err).Msg("Error marshaling payload for client.")
		return false
	}

	if !c.enqueue(frame) {
		h.detach(c, "send queue full")
		return false
	}
	return true
}
