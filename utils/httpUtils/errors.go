package httpUtils

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrDecode = errors.New("could not decode response body")

type HttpError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HttpError) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("unexpected HTTP status: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("unexpected HTTP status: %s", e.Status)
}

func (e *HttpError) StatusText() string {
	return http.StatusText(e.StatusCode)
}
