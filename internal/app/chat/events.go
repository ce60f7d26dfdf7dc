/*
Package chat contains the core logic for the chat relay: message history, live client
connections, and the hub that fans state changes out to every connection.

This file defines the wire events exchanged over the live channel. Inbound frames decode
into one of a fixed set of event structs; outbound payloads carry their type tag.
*/
package chat

import (
	"encoding/json"
	"fmt"

	"relaychat/internal/app/user"
)

// EventType is the "type" tag of every live channel frame.
type EventType string

// Inbound event types.
const (
	TypeNewUser EventType = "new-user"
	TypeExit    EventType = "exit"
	TypeSend    EventType = "send"
)

// Outbound event types.
const (
	TypeUpdateUsers    EventType = "update-users"
	TypeMessageHistory EventType = "message-history"
	TypeError          EventType = "error"
	TypeNewMessage     EventType = "new-message"
)

// InboundEvent is implemented by every event a client may send.
type InboundEvent interface {
	Type() EventType
}

// JoinEvent asks to register Name and bind it to the connection.
type JoinEvent struct {
	Name string `json:"name"`
}

// ExitEvent asks to remove the user holding Name.
type ExitEvent struct {
	Name string `json:"name"`
}

// SendEvent posts a chat message. Author is taken as-is from the client.
type SendEvent struct {
	Text   string `json:"message"`
	Author string `json:"author"`
}

// UnknownEvent is a well-formed frame whose type tag is not recognized.
type UnknownEvent struct {
	Tag EventType
}

func (JoinEvent) Type() EventType      { return TypeNewUser }
func (ExitEvent) Type() EventType      { return TypeExit }
func (SendEvent) Type() EventType      { return TypeSend }
func (e UnknownEvent) Type() EventType { return e.Tag }

// DecodeInbound parses a raw frame into its typed event.
// Frames with an unrecognized type decode to UnknownEvent without error.
func DecodeInbound(data []byte) (InboundEvent, error) {
	var envelope struct {
		Type EventType `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode frame envelope: %w", err)
	}

	var (
		event InboundEvent
		err   error
	)

	switch envelope.Type {
	case TypeNewUser:
		var e JoinEvent
		err = json.Unmarshal(data, &e)
		event = e
	case TypeExit:
		var e ExitEvent
		err = json.Unmarshal(data, &e)
		event = e
	case TypeSend:
		var e SendEvent
		err = json.Unmarshal(data, &e)
		event = e
	default:
		return UnknownEvent{Tag: envelope.Type}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("decode %s frame: %w", envelope.Type, err)
	}
	return event, nil
}

// RosterPayload carries the full list of registered users.
type RosterPayload struct {
	Type  EventType   `json:"type"`
	Users []user.User `json:"users"`
}

// HistoryPayload carries every retained message in append order.
type HistoryPayload struct {
	Type     EventType `json:"type"`
	Messages []Message `json:"messages"`
}

// ErrorPayload reports a user-correctable failure to a single connection.
type ErrorPayload struct {
	Type    EventType `json:"type"`
	Message string    `json:"message"`
}

// NewMessagePayload announces a freshly appended message.
type NewMessagePayload struct {
	Type    EventType `json:"type"`
	Message Message   `json:"message"`
}

func newRosterPayload(users []user.User) RosterPayload {
	return RosterPayload{Type: TypeUpdateUsers, Users: users}
}

func newHistoryPayload(messages []Message) HistoryPayload {
	return HistoryPayload{Type: TypeMessageHistory, Messages: messages}
}

func newErrorPayload(message string) ErrorPayload {
	return ErrorPayload{Type: TypeError, Message: message}
}

func newMessagePayload(m Message) NewMessagePayload {
	return NewMessagePayload{Type: TypeNewMessage, Message: m}
}
