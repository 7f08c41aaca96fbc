package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storekit/storefront-api/internal/api/middleware"
	"github.com/storekit/storefront-api/internal/core/domain"
)

// ctxAccount extracts the account injected by the Authenticate middleware.
// Its presence proves the gate ran; a handler on a protected route must not
// proceed without it.
func ctxAccount(c echo.Context) (*domain.Account, error) {
	account, ok := c.Get(middleware.ContextAccountKey).(*domain.Account)
	if !ok || account == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return account, nil
}
