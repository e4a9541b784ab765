package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/mentorlink/api/internal/auth"
)

// Context keys used to store authentication metadata.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
	ContextKeyPrincipal = "principal"
	ContextKeyRequestID = "request_id"
	ContextKeyUpload    = "upload"
)

// PrincipalFromContext returns the caller stored by JWT.
func PrincipalFromContext(c echo.Context) (auth.Principal, bool) {
	p, ok := c.Get(ContextKeyPrincipal).(auth.Principal)
	return p, ok
}

// reject writes the error envelope used across the API.
func reject(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"status": "error", "message": message})
}
