/*
Package handler provides the HTTP handlers and routing setup for the
QuikChat server: authentication, roster, messaging, profile management, and
the WebSocket upgrade endpoint.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/mo7amedAlaa/QuikChat/internal/pkg/auth/jwt"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/limiter"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/logx"
	"github.com/mo7amedAlaa/QuikChat/internal/pkg/resp"
)

const (
	// AuthRate limits signup/login attempts per IP.
	AuthRate  = 0.2
	AuthBurst = 5

	// ConnectRate limits WebSocket handshake attempts per IP.
	ConnectRate  = 0.5
	ConnectBurst = 10
)

// Router builds the routing table: CORS, request logging, rate limiting, the
// REST API, and the real-time endpoint.
func Router(deps *AppDeps) http.Handler {
	authLimiter := limiter.NewIPRateLimiter(rate.Limit(AuthRate), AuthBurst)
	connectLimiter := limiter.NewIPRateLimiter(rate.Limit(ConnectRate), ConnectBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "QuikChat Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Route("/auth", func(auth chi.Router) {
			signUpHandler := authLimiter.Middleware(HandleSignUp(deps))
			loginHandler := authLimiter.Middleware(HandleLogin(deps))

			auth.Post("/signup", signUpHandler.ServeHTTP)
			auth.Post("/login", loginHandler.ServeHTTP)
			auth.Get("/check", HandleCheckAuth(deps))
			auth.Put("/update-profile", HandleUpdateProfile(deps))
		})

		api.Route("/messages", func(msg chi.Router) {
			msg.Get("/users", HandleRoster(deps))
			msg.Get("/{id}", HandleGetConversation(deps))
			msg.Post("/send/{id}", HandleSendMessage(deps))
			msg.Put("/seen/{id}", HandleMarkSeen(deps))
		})
	})

	r.Get("/ws", HandleWebSocket(wsUpgrader, connectLimiter, deps))

	return r
}
