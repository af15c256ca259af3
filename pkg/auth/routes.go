package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the auth routes on the /api group.
func RegisterRoutes(g *echo.Group, db *bun.DB) *Service {
	authService := NewService(db)

	h := &handler{
		authService: authService,
	}

	g.POST("/auth", h.login)

	return authService
}
