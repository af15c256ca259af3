package errcodes

import (
	"fmt"
	"net/http"
)

type Error struct {
	HTTPCode int
	Message  string
	Code     string
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	te.HTTPCode = err.HTTPCode
	te.Message = err.Message
	te.Code = err.Code
	return true
}

func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return te.HTTPCode == err.HTTPCode &&
		te.Message == err.Message &&
		te.Code == err.Code
}

// NotFound returns a 404 error with a message indicating the given resource.
func NotFound(resource string) error {
	return &Error{
		http.StatusNotFound,
		resource + " not found.",
		"not_found",
	}
}

// InvalidCredentials returns a 401 error. The message is intentionally the
// same whether the username is unknown or the password is wrong.
func InvalidCredentials() error {
	return &Error{
		http.StatusUnauthorized,
		"Invalid username or password.",
		"invalid_credentials",
	}
}

// DuplicateUsername returns a 400 error for registration with a taken username.
func DuplicateUsername() error {
	return &Error{
		http.StatusBadRequest,
		"Username already exists.",
		"duplicate_username",
	}
}

// UnsupportedFormat returns a 400 error for uploads that aren't accepted.
func UnsupportedFormat(msg string) error {
	return &Error{
		http.StatusBadRequest,
		msg,
		"unsupported_format",
	}
}

// StorageError returns a 500 error with a generic message. The underlying I/O
// failure is logged server-side and never sent to the client.
func StorageError() error {
	return &Error{
		http.StatusInternalServerError,
		"Failed to store file.",
		"storage_error",
	}
}

func UnsupportedMediaType() error {
	return &Error{
		http.StatusUnsupportedMediaType,
		"Unsupported Media Type",
		"unsupported_media_type",
	}
}

func UnknownParameter(param string) error {
	return &Error{
		http.StatusBadRequest,
		fmt.Sprintf("Unknown Parameter %q", param),
		"unknown_parameter",
	}
}

func ValidationTypeError(msg string) error {
	return &Error{
		http.StatusBadRequest,
		msg,
		"validation_type_error",
	}
}

func ValidationError(msg string) error {
	return &Error{
		http.StatusBadRequest,
		msg,
		"validation_error",
	}
}

func MalformedPayload() error {
	return &Error{
		http.StatusBadRequest,
		"Malformed Payload",
		"malformed_payload",
	}
}

func EmptyRequestBody() error {
	return &Error{
		http.StatusBadRequest,
		"Request body can't be empty.",
		"empty_request_body",
	}
}
