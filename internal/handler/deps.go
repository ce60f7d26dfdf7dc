package handler

import (
	"relaychat/internal/app/chat"
	"relaychat/internal/app/user"
	"relaychat/internal/configs"
)

// AppDeps bundles the shared state the HTTP handlers operate on.
type AppDeps struct {
	Hub    *chat.Hub
	Users  *user.Registry
	Config *configs.AppConfig
}
