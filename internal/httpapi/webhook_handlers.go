package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/model"
	"gitlab.com/timkado/api/daisi-wa-archive-service/pkg/utils"
)

func (s *Server) handleWebhook(c echo.Context) error {
	var payload model.WebhookPayload
	if err := c.Bind(&payload); err != nil {
		// Structural decode failure is the only hard webhook error.
		return errorJSON(c, http.StatusInternalServerError, "Failed to process webhook")
	}

	s.service.ProcessWebhook(c.Request().Context(), payload)

	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleHealth(c echo.Context) error {
	database := "connected"
	if err := s.pinger.Ping(c.Request().Context()); err != nil {
		database = "unreachable"
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": utils.FormatISO8601(utils.Now()),
		"database":  database,
	})
}
