package auth

// LoginPayload represents the login request body. The fields are deliberately
// not validated here: an empty or unknown username falls through to the same
// 401 as a wrong password.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
