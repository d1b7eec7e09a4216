package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rasulmamishov/portfolio-api/internal/api/middleware"
	"github.com/rasulmamishov/portfolio-api/internal/core/domain"
)

// bindAndValidate decodes the JSON body into req and runs the struct
// validator when one is registered on the echo instance.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}

// ctxPrincipal extracts the principal injected by the auth middleware.
// Its absence means the route was mounted without the middleware.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return nil, domain.ErrTokenMissing
	}
	return p, nil
}
