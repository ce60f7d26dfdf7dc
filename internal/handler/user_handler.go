/*
Package handler provides the HTTP handlers and routing setup for the chat relay.

This file contains the one-shot registration endpoint, which registers a name in the shared
registry without opening a live connection.
*/
package handler

import (
	"net/http"

	"relaychat/internal/pkg/logx"
	"relaychat/internal/pkg/req"
	"relaychat/internal/pkg/resp"
)

// RegisterInput is the body of POST /new-user.
type RegisterInput struct {
	Name string `json:"name"`
}

// HandleRegister creates an HTTP HandlerFunc that registers a user by name.
// The registered user is not linked to any live connection and no roster broadcast is sent.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input RegisterInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			logx.Warn("Registration rejected: invalid body", "code", customErr.Code)
			resp.RespondError(w, r, customErr)
			return
		}

		newUser, customErr := deps.Users.Register(input.Name)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"user": newUser,
		})
	}
}
