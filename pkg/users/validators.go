package users

// RegisterPayload represents the request body for creating a user.
type RegisterPayload struct {
	Username string `json:"username" validate:"required,max=80"`
	Password string `json:"password" validate:"required"`
}
