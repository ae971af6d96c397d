/*
Package handler provides the HTTP handlers and routing setup for the chat relay.

This file contains the HandleChatSocket function, which rate limits connection
attempts per IP, resolves the credential token carried in the query string into
a user identity, upgrades the HTTP connection, and starts the client lifecycle.
Unauthenticated connections are closed right after the upgrade, before joining
any room.
*/
package handler

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ReyMar81/gestor-doc/internal/app/chat"
	"github.com/ReyMar81/gestor-doc/internal/pkg/errs"
	"github.com/ReyMar81/gestor-doc/internal/pkg/limiter"
	"github.com/ReyMar81/gestor-doc/internal/pkg/logx"
	"github.com/ReyMar81/gestor-doc/internal/pkg/resp"
)

// authCloseWait bounds the write of the close frame sent to rejected connections.
const authCloseWait = 10 * time.Second

// HandleChatSocket creates an HTTP HandlerFunc that processes chat WebSocket
// connection requests for the room named in the URL path.
func HandleChatSocket(upgrader websocket.Upgrader, connLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !connLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		roomName := chi.URLParam(r, "room")
		if roomName == "" {
			logx.Warn("WebSocket request rejected: Missing room name")
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		// One credential lookup per connection attempt, before the upgrade.
		token := r.URL.Query().Get("token")
		identity := deps.Tokens.Resolve(r.Context(), token)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		if identity.IsAnonymous() {
			logx.Warn("WebSocket connection closed: unauthenticated", "room", roomName)

			closeMsg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "authentication required")
			conn.SetWriteDeadline(time.Now().Add(authCloseWait))
			if err := conn.WriteMessage(websocket.CloseMessage, closeMsg); err != nil {
				logx.Warn("Failed to write close frame to unauthenticated connection", "error", err)
			}
			conn.Close()
			return
		}

		client := chat.NewClient(deps.chatDeps(), conn, identity, roomName)

		go client.WritePump()

		logx.Info("WebSocket connection established", "username", identity.Username, "room", roomName)

		client.ReadPump()
	}
}
