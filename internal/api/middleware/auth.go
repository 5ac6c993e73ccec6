package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clubhub/clubhub-api/internal/core/domain"
	"github.com/clubhub/clubhub-api/internal/core/ports"
	"github.com/clubhub/clubhub-api/pkg/metrics"
)

const identityKey = "identity"

// Auth validates the bearer token and injects the caller's identity into the
// context. Failures are returned as domain errors so the central error
// handler picks the status.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return domain.ErrMissingToken
			}

			id, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				return err
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			SetIdentity(c, *id)
			return next(c)
		}
	}
}

// SetIdentity stores the authenticated caller on the request context.
func SetIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the identity stored by Auth, if any.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}

func verifyResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, domain.ErrTokenInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, domain.ErrConfigurationMissing):
		return "misconfigured"
	default:
		return "error"
	}
}
