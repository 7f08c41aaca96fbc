package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storekit/storefront-api/internal/api/metrics"
	"github.com/storekit/storefront-api/internal/core/domain"
	"github.com/storekit/storefront-api/internal/core/ports"
)

// ContextAccountKey is the echo context key under which Authenticate stores
// the authenticated *domain.Account for downstream handlers.
const ContextAccountKey = "auth_account"

// Authenticate extracts the bearer token, validates it through the session
// issuer and re-fetches the account so the current role is authoritative:
// a role change applies on the next request, not at token expiry.
func Authenticate(issuer ports.SessionIssuer, repo ports.AccountRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthRejectionsTotal.WithLabelValues("malformed_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			accountID, err := issuer.Validate(parts[1])
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, domain.ErrTokenExpired) {
					reason = "expired_token"
				}
				metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			account, err := repo.FindByID(c.Request().Context(), accountID)
			if err != nil {
				if errors.Is(err, domain.ErrAccountNotFound) {
					metrics.AuthRejectionsTotal.WithLabelValues("unknown_account").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
				}
				return err
			}

			c.Set(ContextAccountKey, account)

			return next(c)
		}
	}
}
