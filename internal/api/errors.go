package api

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/samcharles93/voxel/pkg/nrrd"
)

var ErrInvalidRequest = errors.New("invalid_request")

type invalidRequestError struct {
	msg string
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

func newInvalidRequest(msg string) error {
	return invalidRequestError{msg: msg}
}

// statusFor maps an error from the volume store or the codec to an HTTP
// status and error type.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, "invalid_request_error"
	case errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound, "not_found_error"
	case errors.Is(err, nrrd.ErrFormat),
		errors.Is(err, nrrd.ErrDuplicateField),
		errors.Is(err, nrrd.ErrMissingField),
		errors.Is(err, nrrd.ErrMissingContext),
		errors.Is(err, nrrd.ErrSizeMismatch):
		return http.StatusUnprocessableEntity, "invalid_volume_error"
	default:
		return http.StatusInternalServerError, "server_error"
	}
}
