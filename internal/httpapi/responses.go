package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Responses mirror the wire format consumers already depend on: success
// bodies carry a top-level "success": true, failures carry only "error".

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

func okJSON(c echo.Context, body map[string]any) error {
	payload := map[string]any{"success": true}
	for k, v := range body {
		payload[k] = v
	}
	return c.JSON(http.StatusOK, payload)
}
