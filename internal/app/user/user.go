/*
Package user contains core data structures and logic related to user identity and presence.

It defines the representation of a chat participant (the User struct) and the Registry
that tracks every currently registered participant.
*/
package user

// User represents the identity of a chat participant.
// Fields use JSON tags for serialization in HTTP responses and WebSocket messages.
type User struct {
	// ID is the server-generated unique identifier for the user.
	ID string `json:"id"`

	// Name is the display name, unique among registered users.
	Name string `json:"name"`
}
