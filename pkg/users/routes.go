package users

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the user routes on the /api group.
func RegisterRoutes(g *echo.Group, db *bun.DB) *Service {
	userService := NewService(db)

	h := &handler{
		userService: userService,
	}

	g.POST("/users", h.create)

	return userService
}
