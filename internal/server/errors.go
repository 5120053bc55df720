package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-parser/internal/extract"
)

// ErrValidation indicates a malformed or incomplete request.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus maps an error to the response status code.
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		unsupportedErr *extract.UnsupportedTypeError
		decodeErr      *extract.DecodeError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &unsupportedErr):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &decodeErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
