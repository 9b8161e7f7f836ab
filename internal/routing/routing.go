package routing

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lucmas92/message-wall/internal/auth"
	"github.com/lucmas92/message-wall/internal/handlers"
	"github.com/lucmas92/message-wall/internal/middleware"
)

// Config holds the configuration needed for setting up routes.
type Config struct {
	Handlers *handlers.Handler
	Auth     *auth.Service
	Logger   zerolog.Logger
}

// SetupRouter creates and configures the HTTP router with all routes and
// middleware.
func SetupRouter(cfg Config) http.Handler {
	h := cfg.Handlers
	a := cfg.Auth
	mux := http.NewServeMux()

	// public: anonymous submission
	mux.HandleFunc("POST /api/messages", h.HandleSubmit)

	// moderation panel
	mux.Handle("GET /api/messages", a.Require(auth.RoleModerator, http.HandlerFunc(h.HandleListMessages)))
	mux.Handle("POST /api/messages/{id}/status", a.Require(auth.RoleModerator, http.HandlerFunc(h.HandleTransition)))
	mux.Handle("GET /api/messages/pending/count", a.Require(auth.RoleModerator, http.HandlerFunc(h.HandlePendingCount)))
	mux.Handle("GET /api/audit", a.Require(auth.RoleModerator, http.HandlerFunc(h.HandleListAudit)))

	// display screen
	mux.Handle("GET /api/messages/approved", a.Require(auth.RoleScreen, http.HandlerFunc(h.HandleListApproved)))
	mux.Handle("GET /ws", a.Require(auth.RoleScreen, http.HandlerFunc(h.HandleWebSocket)))

	// admin settings
	mux.Handle("GET /api/settings", a.Require(auth.RoleAdmin, http.HandlerFunc(h.HandleListSettings)))
	mux.Handle("PUT /api/settings/{key}", a.Require(auth.RoleAdmin, http.HandlerFunc(h.HandleUpdateSetting)))

	// operational
	mux.HandleFunc("GET /healthz", h.HandleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Apply middleware in order (outermost last)
	var handler http.Handler = mux
	handler = middleware.LimitBodyMiddleware(handler)
	handler = middleware.SecurityHeadersMiddleware(handler)
	handler = middleware.LoggingMiddleware(cfg.Logger)(handler)

	return handler
}
