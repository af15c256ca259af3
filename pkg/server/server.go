package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bookloft/bookloft/pkg/assets"
	"github.com/bookloft/bookloft/pkg/auth"
	"github.com/bookloft/bookloft/pkg/binder"
	"github.com/bookloft/bookloft/pkg/books"
	"github.com/bookloft/bookloft/pkg/config"
	"github.com/bookloft/bookloft/pkg/errcodes"
	"github.com/bookloft/bookloft/pkg/users"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB, manager *assets.Manager) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(strconv.FormatInt(cfg.MaxUploadBytes, 10)))

	health.RegisterRoutes(e)

	e.GET("/", welcome)

	api := e.Group("/api")
	users.RegisterRoutes(api, db)
	auth.RegisterRoutes(api, db)
	books.RegisterRoutes(api, db, cfg, manager)

	// Raw asset bytes under /uploads/<ref>
	assets.RegisterRoutes(e, manager)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func welcome(c echo.Context) error {
	return c.String(http.StatusOK, "Welcome to Bookloft!")
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
