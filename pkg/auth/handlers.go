package auth

import (
	"net/http"

	"github.com/bookloft/bookloft/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	authService *Service
}

// login validates credentials and returns the identity. There is no session
// state; a 200 only means the username/password pair was correct.
func (h *handler) login(c echo.Context) error {
	ctx := c.Request().Context()

	params := LoginPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.authService.Authenticate(ctx, params.Username, params.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Status: "success",
		User:   user.Identity(),
	})
}

// LoginResponse is the success body for POST /api/auth.
type LoginResponse struct {
	Status string          `json:"status"`
	User   models.Identity `json:"user"`
}
