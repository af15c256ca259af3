package assets

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers the raw file serving route.
func RegisterRoutes(e *echo.Echo, manager *Manager) {
	h := &handler{manager: manager}

	e.GET("/uploads/*", h.serve)
}
