package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func Logger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			rid, _ := c.Get("request_id").(string)

			err := next(c)

			// The error handler has not run yet, so the response status is
			// not final when err != nil.
			status := c.Response().Status
			evt := logger.Info()
			if err != nil {
				status = errorStatus(err)
				evt = logger.Warn().Err(err)
				if status >= 500 {
					evt = logger.Error().Err(err)
				}
			}

			evt = evt.
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP())
			if doctorID, ok := c.Get("doctor_id").(int64); ok && doctorID > 0 {
				evt = evt.Int64("doctor_id", doctorID)
			}
			evt.Msg("request")

			return err
		}
	}
}

func errorStatus(err error) int {
	status, _ := renderError(err)
	return status
}
