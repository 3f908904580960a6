package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hongminglow/chama-backend/internal/auth"
	"github.com/hongminglow/chama-backend/internal/http/respond"
	"github.com/hongminglow/chama-backend/internal/logging"
)

// RequireRoles authorizes the bearer token against allowed before calling
// next. The verified identity is stored in the request context.
func RequireRoles(authz *auth.Authorizer, allowed auth.RoleSet, logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := bearerToken(r)
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "Missing or invalid token")
				return
			}

			id, err := authz.Authorize(token, allowed)
			switch {
			case err == nil:
			case errors.Is(err, auth.ErrForbidden):
				logger.Warn(ctx, "authorization denied",
					"user_id", id.UserID,
					"role", id.Role,
					"allowed", allowed.String(),
					"path", r.URL.Path,
					"request_id", RequestIDFromContext(ctx),
				)
				respond.Error(w, http.StatusForbidden, "Insufficient permissions")
				return
			default:
				logger.Info(ctx, "authentication failed",
					"error", err,
					"path", r.URL.Path,
					"request_id", RequestIDFromContext(ctx),
				)
				respond.Error(w, http.StatusUnauthorized, "Missing or invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithIdentity(ctx, id)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// Chain applies middleware so that the first one listed runs outermost.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
