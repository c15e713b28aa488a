package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/markethub/marketplace-api/internal/core/domain"
	"github.com/markethub/marketplace-api/internal/core/ports"
)

// ctxIdentity extracts the auth claims injected by the Auth middleware and
// fast-fails before any service call: a non-empty subject id proves the
// middleware ran and the token carried an identity.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ := c.Get("email").(string)
	role, _ := c.Get("role").(string)

	return ports.Identity{ID: id, Email: email, Role: domain.Role(role)}, nil
}
