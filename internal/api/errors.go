package api

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrLLMUnavailable = errors.New("language model is not configured")
	ErrLLMResponse    = errors.New("language model response could not be used")
)

// StatusFromError picks the HTTP status for an error returned by a service.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrLLMUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrLLMResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
