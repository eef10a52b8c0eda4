package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportmeet/sportmeet/internal/service"
)

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	ErrorHandler(err, e.NewContext(req, rec))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestErrorHandlerMapsDomainSentinels(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ErrEventNotFound, http.StatusNotFound},
		{service.ErrApplicationNotFound, http.StatusNotFound},
		{service.ErrUserNotFound, http.StatusNotFound},
		{service.ErrSelfApplication, http.StatusBadRequest},
		{service.ErrInvalidDecision, http.StatusBadRequest},
		{service.ErrInvalidWeight, http.StatusBadRequest},
		{service.ErrDuplicateApplication, http.StatusConflict},
		{service.ErrAlreadyReviewed, http.StatusConflict},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec, body := handleError(t, tc.err)

			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.err.Error(), body["message"])
		})
	}
}

func TestErrorHandlerMapsWrappedSentinels(t *testing.T) {
	rec, _ := handleError(t, fmt.Errorf("apply: %w", service.ErrDuplicateApplication))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestErrorHandlerKeepsExplicitHTTPErrors(t *testing.T) {
	rec, body := handleError(t, echo.NewHTTPError(http.StatusBadRequest, "user_id is required"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "user_id is required", body["message"])
}

func TestErrorHandlerSkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, c.NoContent(http.StatusNoContent))

	ErrorHandler(assert.AnError, c)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
