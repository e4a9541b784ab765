package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// Logging writes one structured line per HTTP request. The level follows the response status.
func Logging(log zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogError:    true,
		LogLatency:  true,
		LogMethod:   true,
		HandleError: true,

		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			status := v.Status
			var echoErr *echo.HTTPError
			if v.Error != nil && errors.As(v.Error, &echoErr) {
				status = echoErr.Code
			}

			var e *zerolog.Event
			switch {
			case status >= 500:
				e = log.Error().Err(v.Error)
			case status >= 400:
				e = log.Warn()
			default:
				e = log.Info()
			}

			if rid := RequestIDFromContext(c); rid != "" {
				e = e.Str("request_id", rid)
			}
			if uid, ok := c.Get(ContextKeyUserID).(string); ok && uid != "" {
				e = e.Str("user_id", uid)
			}

			e.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", status).
				Dur("latency", v.Latency).
				Str("ip", c.RealIP()).
				Msg("request")
			return nil
		},
	})
}
