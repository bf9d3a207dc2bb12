package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/apperrors"
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/model"
)

func (s *Server) handleCreateMessage(c echo.Context) error {
	var payload model.CreateMessagePayload
	if err := c.Bind(&payload); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Phone number and message text are required")
	}

	id, err := s.service.CreateMessage(c.Request().Context(), payload)
	if err != nil {
		if apperrors.IsValidationError(err) {
			return errorJSON(c, http.StatusBadRequest, "Phone number and message text are required")
		}
		return errorJSON(c, http.StatusInternalServerError, "Failed to store message")
	}

	return okJSON(c, map[string]any{
		"message_id": id,
		"message":    "Message stored successfully",
	})
}

func (s *Server) handleListMessages(c echo.Context) error {
	phoneNumber := c.QueryParam("phone_number")

	// An absent or non-numeric limit falls back to the configured default.
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	messages, err := s.service.ListMessages(c.Request().Context(), phoneNumber, limit)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch messages")
	}

	return okJSON(c, map[string]any{
		"messages": messages,
		"count":    len(messages),
	})
}

func (s *Server) handleGetMessage(c echo.Context) error {
	// A non-numeric id can never match a row, so it reads as not found.
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusNotFound, "Message not found")
	}

	message, err := s.service.GetMessage(c.Request().Context(), id)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return errorJSON(c, http.StatusNotFound, "Message not found")
		}
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch message")
	}

	return okJSON(c, map[string]any{
		"message": message,
	})
}

func (s *Server) handleUpdateMessageStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid message id")
	}

	var payload model.UpdateMessageStatusPayload
	if err := c.Bind(&payload); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Status is required")
	}

	if err := s.service.UpdateMessageStatus(c.Request().Context(), id, payload); err != nil {
		switch {
		case apperrors.IsValidationError(err):
			return errorJSON(c, http.StatusBadRequest, "Status is required")
		case apperrors.IsNotFoundError(err):
			return errorJSON(c, http.StatusNotFound, "Message not found")
		default:
			return errorJSON(c, http.StatusInternalServerError, "Failed to update message status")
		}
	}

	return okJSON(c, map[string]any{
		"message": "Message status updated successfully",
	})
}
