package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/rasulmamishov/portfolio-api/internal/api/metrics"
	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
	"github.com/rasulmamishov/portfolio-api/internal/core/ports"
)

// ContextKeyPrincipal is the echo context key holding the *domain.Principal.
const ContextKeyPrincipal = "principal"

// Auth verifies the bearer token and injects the principal into context.
// The role on the principal is the token's claim and must not be used for
// authorization; use RequireAdmin for that.
func Auth(gate ports.AccessGate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := gate.Authenticate(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}
			c.Set(ContextKeyPrincipal, p)
			return next(c)
		}
	}
}

// RequireAdmin admits the request only when the caller's currently stored
// role is admin.
func RequireAdmin(gate ports.AccessGate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := gate.AuthorizeAdmin(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				metrics.AdminAccessDeniedTotal.WithLabelValues(denialReason(err)).Inc()
				return err
			}
			c.Set(ContextKeyPrincipal, p)
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal set by Auth or RequireAdmin.
func PrincipalFrom(c echo.Context) (*domain.Principal, bool) {
	p, ok := c.Get(ContextKeyPrincipal).(*domain.Principal)
	return p, ok && p != nil
}

func denialReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenMissing):
		return "token_missing"
	case errors.Is(err, domain.ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, domain.ErrTokenInvalid):
		return "token_invalid"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}
