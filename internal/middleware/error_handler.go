// Package middleware holds the echo-level plumbing shared by all HTTP
// routes.
package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sportmeet/sportmeet/internal/service"
)

// ErrorHandler turns handler errors into JSON responses. Domain
// sentinels are mapped to statuses here so handlers can return service
// errors as-is instead of repeating the mapping per route.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := statusOf(err)
	msg := err.Error()

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	_ = c.JSON(code, map[string]string{"message": msg})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrApplicationNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrSelfApplication),
		errors.Is(err, service.ErrInvalidDecision),
		errors.Is(err, service.ErrInvalidWeight):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrDuplicateApplication),
		errors.Is(err, service.ErrAlreadyReviewed):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
