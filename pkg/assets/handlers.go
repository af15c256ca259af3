package assets

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	manager *Manager
}

// serve returns the raw bytes of a stored asset for /uploads/<ref> URLs.
func (h *handler) serve(c echo.Context) error {
	ref := c.Param("*")

	abs, err := h.manager.Resolve(ref)
	if err != nil {
		return err
	}

	return errors.WithStack(c.File(abs))
}
