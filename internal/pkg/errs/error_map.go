/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and live channel error payloads.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidJSONFormat:  {Code: ErrInvalidJSONFormat, Message: "Invalid request body."},
	ErrExtraContentInBody: {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},

	// 3xxx: User and Session Errors
	ErrEmptyName:     {Code: ErrEmptyName, Message: "Name cannot be empty!"},
	ErrNameTaken:     {Code: ErrNameTaken, Message: "This name is already taken!", Status: http.StatusConflict},
	ErrAlreadyJoined: {Code: ErrAlreadyJoined, Message: "You have already joined!", Status: http.StatusConflict},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
