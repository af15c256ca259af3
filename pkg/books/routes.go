package books

import (
	"github.com/bookloft/bookloft/pkg/assets"
	"github.com/bookloft/bookloft/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the book routes on the /api group.
func RegisterRoutes(g *echo.Group, db *bun.DB, cfg *config.Config, manager *assets.Manager) *Service {
	bookService := NewService(db, manager, cfg)

	h := &handler{
		bookService: bookService,
	}

	g.GET("/books", h.list)
	g.POST("/books", h.create)
	g.GET("/books/:id", h.retrieve)
	g.DELETE("/books/:id", h.delete)
	g.GET("/books/:id/content", h.content)

	return bookService
}
