package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sportmeet/sportmeet/internal/dto"
	"github.com/sportmeet/sportmeet/internal/service"
)

type ApplicationHandler struct {
	svc service.ApplicationService
}

func NewApplicationHandler(svc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

func (h *ApplicationHandler) RegisterRoutes(e *echo.Echo) {
	events := e.Group("/api/v1/events")
	events.POST("/:id/applications", h.Apply)
	events.GET("/:id/applications", h.ListPending)
	events.POST("/:id/participants", h.AddParticipant)
	events.DELETE("/:id/participants/:user_id", h.RemoveParticipant)

	e.POST("/api/v1/applications/:id/review", h.Review)
}

func (h *ApplicationHandler) Apply(c echo.Context) error {
	eventID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.CreateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	// Sentinel errors are mapped to statuses by middleware.ErrorHandler.
	app, err := h.svc.Apply(c.Request().Context(), eventID, req.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.ToApplicationResponse(app))
}

func (h *ApplicationHandler) Review(c echo.Context) error {
	applicationID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid application id")
	}

	var req dto.ReviewApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	app, err := h.svc.Review(c.Request().Context(), applicationID, service.Decision(req.Decision))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}

func (h *ApplicationHandler) ListPending(c echo.Context) error {
	eventID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	apps, err := h.svc.PendingForEvent(c.Request().Context(), eventID)
	if err != nil {
		return err
	}

	resp := make([]dto.ApplicationResponse, len(apps))
	for i := range apps {
		resp[i] = dto.ToApplicationResponse(&apps[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) AddParticipant(c echo.Context) error {
	eventID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.AddParticipantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	participant, already, err := h.svc.AddParticipant(c.Request().Context(), eventID, req.UserID)
	if err != nil {
		return err
	}

	code := http.StatusCreated
	if already {
		code = http.StatusOK
	}
	return c.JSON(code, dto.ToParticipantResponse(participant, already))
}

func (h *ApplicationHandler) RemoveParticipant(c echo.Context) error {
	eventID, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}
	userID, err := parseUintParam(c, "user_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := h.svc.RemoveParticipant(c.Request().Context(), eventID, userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func parseUintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
