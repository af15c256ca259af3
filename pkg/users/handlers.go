package users

import (
	"net/http"

	"github.com/bookloft/bookloft/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	userService *Service
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := RegisterPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.userService.Register(ctx, params.Username, params.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, RegisterResponse{
		Status: "success",
		User:   user.Identity(),
	})
}

// RegisterResponse is the success body for POST /api/users.
type RegisterResponse struct {
	Status string          `json:"status"`
	User   models.Identity `json:"user"`
}
