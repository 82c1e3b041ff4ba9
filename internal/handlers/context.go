package handlers

import (
	"github.com/JackSmar98/jsonplaceholder/internal/models"
	"github.com/labstack/echo/v4"
)

// getUserFromContext returns the JWT claims stored by the auth middleware,
// or nil when the request is anonymous.
func getUserFromContext(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}
