/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004
)

// 3xxx: User and Session Errors
const (
	// ErrEmptyName indicates that the submitted display name is blank after trimming.
	ErrEmptyName = 3101

	// ErrNameTaken indicates that a registered user already holds the exact same name.
	ErrNameTaken = 3102

	// ErrAlreadyJoined indicates that the live connection already has a registered user bound to it.
	ErrAlreadyJoined = 3103
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
