package lferror

import "net/http"

type (
	// An Error represents the error format that can be rendered by the lostfound server.
	Error struct {
		HTTPCode   int `json:"-"`
		FieldError err `json:"error"`
	}

	err struct {
		Tag     string `json:"tag,omitempty"`
		Message string `json:"message"`
	}
)

// StatusCode returns the HTTP status code.
func StatusCode(err error) int {
	if lferr, ok := err.(*Error); ok && lferr.HTTPCode != 0 {
		return lferr.HTTPCode
	}
	return http.StatusInternalServerError
}

// New returns a new Error with the given message.
func New(message string) *Error {
	return &Error{FieldError: err{Message: message}}
}

// NewWithTagCode returns a new Error with the given code, tag and message.
func NewWithTagCode(code int, tag, message string) *Error {
	return &Error{HTTPCode: code, FieldError: err{Tag: tag, Message: message}}
}

// Error implements error interface.
func (e *Error) Error() string {
	return e.FieldError.Message
}

// Tag returns the error's tag.
func (e *Error) Tag() string {
	return e.FieldError.Tag
}
