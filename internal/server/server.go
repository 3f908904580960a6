package server

import (
	"context"
	"net/http"
	"time"

	"github.com/hongminglow/chama-backend/internal/auth"
	"github.com/hongminglow/chama-backend/internal/config"
	"github.com/hongminglow/chama-backend/internal/http/handlers"
	"github.com/hongminglow/chama-backend/internal/logging"
	"github.com/hongminglow/chama-backend/internal/middleware"
	"github.com/hongminglow/chama-backend/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up services, middleware and routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, logger logging.Logger) *Server {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost, cfg.HashWorkers)
	authn := auth.NewAuthenticator(store, hasher, logger.With("component", "authenticator"))
	authz := auth.NewAuthorizer(tokens)

	hs := handlerSet{
		health:        handlers.NewHealthHandler(time.Now()),
		auth:          handlers.NewAuthHandler(authn, tokens, store, logger),
		attendance:    handlers.NewAttendanceHandler(store, logger),
		contributions: handlers.NewContributionHandler(store, logger),
	}

	guardLogger := logger.With("component", "authorizer")
	mux := http.NewServeMux()
	for _, rt := range routeTable(hs) {
		var h http.Handler = rt.handler
		if !rt.access.public {
			h = middleware.RequireRoles(authz, rt.access.roles, guardLogger)(h)
		}
		mux.Handle(rt.pattern, h)
	}

	handler := middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logging(logger),
		middleware.CORS(cfg.CORSOrigins),
	)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Handler exposes the fully wrapped handler, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
