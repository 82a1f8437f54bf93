package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mo7amedAlaa/QuikChat/internal/app/chat"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/auth/jwt"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/errs"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/limiter"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/logx"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/resp"
)

// HandleWebSocket authenticates the handshake and hands the connection to the
// hub. The token travels in a query parameter because browser WebSocket
// clients cannot set an Authorization header on the upgrade request. The
// identity is verified before the upgrade, so an unauthenticated socket is
// never registered.
func HandleWebSocket(upgrader websocket.Upgrader, connectLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r)
		if !connectLimiter.GetLimiter(ip).Allow() {
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		tokenString := r.URL.Query().Get("token")
		if tokenString == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		payload, err := jwt.ParseToken(tokenString, deps.Config.JWTSecret)
		if err != nil {
			logx.Warn("WebSocket handshake rejected: invalid token", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already wrote the HTTP error response.
			logx.Warn("WebSocket upgrade failed", "ip", ip, "error", err.Error())
			return
		}

		client := chat.NewClient(deps.Hub, conn, payload.ID)

		// WritePump must be draining before Attach so the initial presence
		// snapshot is not stuck in the queue.
		go client.WritePump()

		deps.Hub.Attach(client)

		client.ReadPump()
	}
}
