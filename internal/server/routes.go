package server

import (
	"net/http"

	"github.com/hongminglow/chama-backend/internal/auth"
	"github.com/hongminglow/chama-backend/internal/http/handlers"
	"github.com/hongminglow/chama-backend/internal/models"
)

// access is the static policy attached to a route. Public routes skip the
// role guard entirely.
type access struct {
	public bool
	roles  auth.RoleSet
}

var (
	public        = access{public: true}
	authenticated = access{roles: auth.AnyRole()}
	recordWriters = access{roles: auth.AllowRoles(models.RoleAdmin, models.RoleSecretary)}
	recordReaders = access{roles: auth.AllowRoles(models.RoleAdmin, models.RoleSecretary, models.RoleMember)}
)

type route struct {
	pattern string
	access  access
	handler http.HandlerFunc
}

type handlerSet struct {
	health        *handlers.HealthHandler
	auth          *handlers.AuthHandler
	attendance    *handlers.AttendanceHandler
	contributions *handlers.ContributionHandler
}

// routeTable is the complete HTTP surface with its access policy.
func routeTable(h handlerSet) []route {
	return []route{
		{"GET /health", public, h.health.HandleHealth},

		{"POST /register", public, h.auth.HandleRegister},
		{"POST /login", public, h.auth.HandleLogin},
		{"GET /profile", authenticated, h.auth.HandleProfile},

		{"POST /attendance", recordWriters, h.attendance.HandleRecord},
		{"GET /attendance/{member_id}", recordReaders, h.attendance.HandleList},

		{"POST /contributions", recordWriters, h.contributions.HandleRecord},
		{"GET /contributions/{member_id}", recordReaders, h.contributions.HandleList},
	}
}
