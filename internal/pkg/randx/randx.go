/*
Package randx provides functions for generating unique identifiers.

User IDs are standard UUID v4 strings backed by crypto/rand.
*/
package randx

import (
	"github.com/google/uuid"
)

// UserID generates a standard UUID v4 string to serve as a unique identifier for a user.
func UserID() string {
	return uuid.New().String()
}

// isValidUserID reports whether id is a canonical UUID string, as produced by UserID.
func isValidUserID(id string) bool {
	if len(id) != 36 {
		return false
	}

	_, err := uuid.Parse(id)
	return err == nil
}

// ConnectionID generates an identifier for a live connection, used for log correlation only.
func ConnectionID() string {
	return uuid.New().String()
}
