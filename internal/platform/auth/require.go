package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/medconnect/clinic/internal/platform/apperr"
)

// RequireAuthenticated rejects anonymous requests with 401.
func RequireAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := IdentityFromContext(c.Request().Context()); !ok {
				return apperr.Unauthenticated("authentication required")
			}
			return next(c)
		}
	}
}

// RequireDoctor rejects callers that are not linked to a doctor profile.
func RequireDoctor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if _, ok := IdentityFromContext(ctx); !ok {
				return apperr.Unauthenticated("authentication required")
			}
			if _, ok := DoctorIDFromContext(ctx); !ok {
				return apperr.NotAuthorized("a doctor profile is required")
			}
			return next(c)
		}
	}
}
