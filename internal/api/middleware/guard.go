package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/clubhub/clubhub-api/internal/core/ports"
)

// Guard authenticates the caller and then checks the role allow-list. The
// order is fixed: RBAC never sees a request Auth has not admitted.
func Guard(verifier ports.TokenVerifier, roles ...string) echo.MiddlewareFunc {
	auth := Auth(verifier)
	rbac := RBAC(roles...)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return auth(rbac(next))
	}
}
