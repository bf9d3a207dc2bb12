package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/apperrors"
	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/model"
)

func (s *Server) handleUpsertUser(c echo.Context) error {
	var payload model.UpsertUserPayload
	if err := c.Bind(&payload); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Phone number is required")
	}

	id, err := s.service.UpsertUser(c.Request().Context(), payload)
	if err != nil {
		if apperrors.IsValidationError(err) {
			return errorJSON(c, http.StatusBadRequest, "Phone number is required")
		}
		return errorJSON(c, http.StatusInternalServerError, "Failed to store user")
	}

	return okJSON(c, map[string]any{
		"user_id": id,
		"message": "User stored successfully",
	})
}

func (s *Server) handleGetUser(c echo.Context) error {
	phoneNumber := c.Param("phone_number")

	user, err := s.service.GetUserByPhone(c.Request().Context(), phoneNumber)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return errorJSON(c, http.StatusNotFound, "User not found")
		}
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch user")
	}

	return okJSON(c, map[string]any{
		"user": user,
	})
}

func (s *Server) handleListUsers(c echo.Context) error {
	users, err := s.service.ListUsers(c.Request().Context())
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch users")
	}

	return okJSON(c, map[string]any{
		"users": users,
		"count": len(users),
	})
}
