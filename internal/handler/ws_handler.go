/*
Package handler provides the HTTP handlers and routing setup for the chat relay.

This file contains the HandleWebSocket function, which upgrades the HTTP connection to
WebSocket and runs the client lifecycle against the Hub.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"relaychat/internal/app/chat"
	"relaychat/internal/pkg/logx"
)

// HandleWebSocket creates an HTTP HandlerFunc that accepts live channel connections.
// It blocks for the lifetime of the connection.
func HandleWebSocket(upgrader websocket.Upgrader, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already written an HTTP error response.
			logx.Warn("Failed to upgrade connection to WebSocket", "error", err.Error())
			return
		}

		client := chat.NewClient(deps.Hub, conn, deps.Config.MaxFrameBytes)

		if !deps.Hub.Connect(client) {
			logx.Warn("WebSocket connection rejected: hub is shutting down.", "conn_id", client.ID)
			client.WritePump()
			return
		}

		go client.WritePump()

		logx.Debug("WebSocket connection established", "conn_id", client.ID)

		client.ReadPump()
	}
}
