package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clubhub/clubhub-api/internal/api/middleware"
	"github.com/clubhub/clubhub-api/internal/core/domain"
)

// callerIdentity returns the identity injected by the Auth middleware. A
// handler mounted without the middleware answers 401 rather than panicking.
func callerIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, domain.ErrMissingToken
	}
	return id, nil
}

// pathID parses the numeric :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func idempotencyKey(c echo.Context) string {
	return c.Request().Header.Get("Idempotency-Key")
}
