package httpapi

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gitlab.com/timkado/api/daisi-wa-archive-service/internal/observer"
	"gitlab.com/timkado/api/daisi-wa-archive-service/pkg/logger"
)

// RequestObserver assigns each request an ID (honoring an inbound
// X-Request-ID), threads it through the context for scoped logging, and
// records the request metric and access log line once the handler returns.
func RequestObserver() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			ctx := logger.WithRequestID(c.Request().Context(), requestID)
			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			duration := time.Since(start)
			status := c.Response().Status
			routePath := c.Path()
			if routePath == "" {
				routePath = c.Request().URL.Path
			}

			observer.RecordHTTPRequest(c.Request().Method, routePath, strconv.Itoa(status), duration)

			log := logger.FromContext(ctx)
			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", status),
				zap.Duration("duration", duration),
				zap.String("remote_ip", c.RealIP()),
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
			}
			switch {
			case status >= 500:
				log.Error("Request completed", fields...)
			case status >= 400:
				log.Warn("Request completed", fields...)
			default:
				log.Info("Request completed", fields...)
			}

			return err
		}
	}
}
