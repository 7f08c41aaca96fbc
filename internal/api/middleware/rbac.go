package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storekit/storefront-api/internal/api/metrics"
	"github.com/storekit/storefront-api/internal/core/domain"
)

// RequireRoles admits the request only when the authenticated account's
// current role is in the allowed set. An empty set admits any authenticated
// account. Must run after Authenticate.
func RequireRoles(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			account, ok := c.Get(ContextAccountKey).(*domain.Account)
			if !ok || account == nil {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_identity").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}

			if len(allowed) > 0 {
				if _, ok := allowed[account.Role]; !ok {
					metrics.AuthRejectionsTotal.WithLabelValues("insufficient_role").Inc()
					return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
				}
			}

			return next(c)
		}
	}
}
