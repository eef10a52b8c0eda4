package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sportmeet/sportmeet/internal/chat"
)

// WebhookHandler accepts chat updates pushed over HTTP, for gateways
// that do not go through the message queue.
type WebhookHandler struct {
	router *chat.Router
}

func NewWebhookHandler(router *chat.Router) *WebhookHandler {
	return &WebhookHandler{router: router}
}

func (h *WebhookHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/chat/updates", h.HandleUpdate)
}

func (h *WebhookHandler) HandleUpdate(c echo.Context) error {
	var update chat.Update
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid update payload")
	}
	if update.UserID == 0 || update.ChatID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id and chat_id are required")
	}

	if err := h.router.HandleUpdate(c.Request().Context(), update); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusAccepted)
}
